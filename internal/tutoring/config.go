package tutoring

import (
	"os"
	"time"
)

// Phrases the session recognises. The start-study phrase doubles as the
// message text sent by RequestStartStudy.
const (
	StartStudyPhrase = "立即开始深度研读"
	SummaryPhrase    = "总结本课资料"
	KeyPointsPhrase  = "核心难点串讲"
	PracticePhrase   = "针对性练习建议"
)

// Chips are the suggested prompts shown above the chat input.
var Chips = []string{SummaryPhrase, KeyPointsPhrase, PracticePhrase}

// EmptySelectionNotice is raised when study starts with nothing selected.
const EmptySelectionNotice = "请至少选择一份资料进行研读"

// Config holds tutoring session settings.
type Config struct {
	// ReplyDelay is how long the assistant "thinks" before replying.
	ReplyDelay time.Duration

	// DefaultLessonID is used when a tutoring view carries no lesson id.
	DefaultLessonID string

	// ReplyTimeout bounds one oracle call. Zero means no limit.
	ReplyTimeout time.Duration
}

// DefaultConfig returns sensible defaults for tutoring.
func DefaultConfig() Config {
	return Config{
		ReplyDelay:      800 * time.Millisecond,
		DefaultLessonID: "l1",
		ReplyTimeout:    20 * time.Second,
	}
}

// ConfigFromEnv applies CLASSDESK_REPLY_DELAY on top of the defaults.
// Unparseable values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("CLASSDESK_REPLY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.ReplyDelay = d
		}
	}
	return cfg
}
