package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vvai/classdesk/internal/store"
)

var replySchema = &Schema{
	Name: "test-reply",
	Definition: map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"reply": map[string]any{"type": "string"}},
		"required":             []any{"reply"},
		"additionalProperties": false,
	},
}

type recordingRepo struct {
	mu   sync.Mutex
	llm  []store.LLMRequestEventData
	fail bool
}

func (r *recordingRepo) AppendTutoringEvent(context.Context, store.TutoringEventData) error {
	return nil
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("disk full")
	}
	r.llm = append(r.llm, data)
	return nil
}

func TestMockProvider_FIFOAndExhaustion(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Content: ReplyJSON("one")},
		MockResponse{Content: ReplyJSON("two")},
	)

	for _, want := range []string{"one", "two"} {
		resp, err := m.Generate(context.Background(), Request{Schema: replySchema})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var out struct{ Reply string }
		if err := json.Unmarshal(resp.Content, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out.Reply != want {
			t.Fatalf("got %q, want %q", out.Reply, want)
		}
	}

	_, err := m.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if m.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", m.CallCount())
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(`{"answer":"x"}`)})
	_, err := m.Generate(context.Background(), Request{Schema: replySchema})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestLoggingProvider_JournalsRequests(t *testing.T) {
	repo := &recordingRepo{}
	m := NewMockProvider(
		MockResponse{Content: ReplyJSON("ok"), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)
	p := WithLogging(m, "mock", repo, nil)
	ctx := WithPurpose(context.Background(), "tutoring")

	req := Request{
		System:   "tutor",
		Messages: []Message{{Role: RoleUser, Content: "核心难点串讲"}},
		Schema:   replySchema,
	}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.llm) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(repo.llm))
	}
	first, second := repo.llm[0], repo.llm[1]
	if !first.Success || first.Purpose != "tutoring" || first.Provider != "mock" || first.InputTokens != 12 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if !strings.Contains(first.RequestBody, "[user]\n核心难点串讲") {
		t.Fatalf("request body missing user turn: %q", first.RequestBody)
	}
	if !strings.Contains(first.RequestBody, "[schema: test-reply]") {
		t.Fatalf("request body missing schema: %q", first.RequestBody)
	}
	if second.Success || !strings.Contains(second.ErrorMessage, "slow down") {
		t.Fatalf("unexpected second entry: %+v", second)
	}
}

func TestLoggingProvider_JournalFailureIsIgnored(t *testing.T) {
	repo := &recordingRepo{fail: true}
	p := WithLogging(NewMockProvider(MockResponse{Content: ReplyJSON("ok")}), "mock", repo, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("journal failure leaked: %v", err)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: ReplyJSON("ok")}), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPurposeFrom_Default(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("got %q", got)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	cfg.Retry.InitialWait = time.Millisecond

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("got model %q", p.ModelID())
	}
}

func TestNewProvider_RejectsMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}
