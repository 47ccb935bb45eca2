package tutoring

import (
	"time"

	"github.com/vvai/classdesk/internal/catalog"
)

// Role identifies who authored a transcript entry.
type Role string

const (
	RoleAssistant  Role = "assistant"
	RoleUser       Role = "user"
	RoleSystemCard Role = "system-card"
)

// Message is one transcript entry. Materials is only set on system cards.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Materials []catalog.Material
}

// PendingReply describes an assistant reply scheduled by a send. Every
// field is captured at send time, so later selection changes do not
// affect it.
type PendingReply struct {
	Generation int64
	Due        time.Time
	Input      ReplyInput
}

// ReplyInput is everything an Oracle sees when answering.
type ReplyInput struct {
	SessionID      string
	Text           string
	SelectionCount int
	LessonTitle    string
	Materials      []catalog.Material
	History        []Message
}
