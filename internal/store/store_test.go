package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	j := s.Journal()
	ctx := context.Background()

	require.NoError(t, j.AppendTutoringEvent(ctx, TutoringEventData{SessionID: "s1", Kind: KindSessionStarted}))
	require.NoError(t, j.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "tutoring", Success: true}))
	require.NoError(t, j.AppendTutoringEvent(ctx, TutoringEventData{SessionID: "s1", Kind: KindMessage}))

	tut, err := j.QueryTutoringEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, tut, 2)
	llm, err := j.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, llm, 1)

	assert.Equal(t, int64(3), tut[0].Sequence)
	assert.Equal(t, int64(2), llm[0].Sequence)
	assert.Equal(t, int64(1), tut[1].Sequence)
}

func TestTutoringEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	j := s.Journal()
	ctx := context.Background()

	require.NoError(t, j.AppendTutoringEvent(ctx, TutoringEventData{
		SessionID: "s1", LessonID: "l1", Kind: KindSessionStarted, Generation: 1, Resolution: "resolved",
	}))
	require.NoError(t, j.AppendTutoringEvent(ctx, TutoringEventData{
		SessionID: "s1", LessonID: "l1", Kind: KindMessage, Role: "user", Content: "核心难点串讲", Generation: 1,
	}))
	require.NoError(t, j.AppendTutoringEvent(ctx, TutoringEventData{
		SessionID: "s2", LessonID: "l9", Kind: KindSessionStarted, Generation: 2, Resolution: "defaulted",
	}))

	events, err := j.QueryTutoringEvents(ctx, QueryOpts{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "核心难点串讲", events[0].Content)
	assert.Equal(t, "user", events[0].Role)
	assert.False(t, events[0].Timestamp.IsZero())

	limited, err := j.QueryTutoringEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "defaulted", limited[0].Resolution)

	after, err := j.QueryTutoringEvents(ctx, QueryOpts{After: 2})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "s2", after[0].SessionID)

	ids, err := j.SessionIDs(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"s2", "s1"}, ids)
}

func TestLLMEventsAndUsage(t *testing.T) {
	s := openTestStore(t)
	j := s.Journal()
	ctx := context.Background()

	require.NoError(t, j.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "p", Model: "m", Purpose: "tutoring", InputTokens: 10, OutputTokens: 5,
		LatencyMs: 100, Success: true, RequestBody: "[user]\nhi", ResponseBody: `{"reply":"ok"}`,
	}))
	require.NoError(t, j.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "p", Model: "m", Purpose: "tutoring", InputTokens: 20, OutputTokens: 15,
		LatencyMs: 300, ErrorMessage: "boom",
	}))

	e, err := j.GetLLMEvent(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.True(t, e.Success)
	assert.Equal(t, `{"reply":"ok"}`, e.ResponseBody)

	missing, err := j.GetLLMEvent(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	usage, err := j.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, LLMUsage{Purpose: "tutoring", Calls: 2, InputTokens: 30, OutputTokens: 20, AvgLatencyMs: 200}, usage[0])
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("CLASSDESK_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}
