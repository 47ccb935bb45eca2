package materials

import "github.com/vvai/classdesk/internal/tutoring"

// replyDueMsg is sent when a pending reply's delay has elapsed.
type replyDueMsg struct {
	pending tutoring.PendingReply
}

// replyReadyMsg carries the resolved reply text back to the update loop.
type replyReadyMsg struct {
	pending tutoring.PendingReply
	content string
}
