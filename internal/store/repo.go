package store

import (
	"context"
	"time"
)

// QueryOpts configures journal queries.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	After     int64  // sequence > After
	SessionID string // only events of this tutoring session
}

// Tutoring event kinds.
const (
	KindSessionStarted  = "session_started"
	KindMessage         = "message"
	KindReplyDiscarded  = "reply_discarded"
	KindSelectionChange = "selection_changed"
)

// TutoringEventData captures one change to a tutoring session.
type TutoringEventData struct {
	SessionID  string
	LessonID   string
	Kind       string
	Role       string
	Content    string
	Generation int64
	Resolution string
}

// TutoringEvent is a journaled TutoringEventData.
type TutoringEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	TutoringEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a journaled LLMRequestEventData.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append access to the journal.
type EventRepo interface {
	// AppendTutoringEvent records a tutoring session change.
	AppendTutoringEvent(ctx context.Context, data TutoringEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
