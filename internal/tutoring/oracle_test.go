package tutoring

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/llm"
)

func TestStaticReply(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{StartStudyPhrase, "这 3 份资料"},
		{SummaryPhrase, "随自变量增大而增大"},
		{KeyPointsPhrase, "取值、作差、变形、定号"},
		{PracticePhrase, "第 15 分钟"},
		{" 总结本课资料", "第 15 分钟"},
		{"随便问问", "第 15 分钟"},
	}
	for _, tt := range tests {
		got, err := StaticOracle{}.Reply(context.Background(), ReplyInput{Text: tt.text, SelectionCount: 3})
		require.NoError(t, err)
		assert.Contains(t, got, tt.want, "text %q", tt.text)
	}
}

func TestLLMOracle(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: llm.ReplyJSON("先看定义，再看图像。")})
	o := NewLLMOracle(mock, 0)

	in := ReplyInput{
		Text:           "总结本课资料",
		SelectionCount: 1,
		LessonTitle:    "第1课：函数单调性",
		Materials:      []catalog.Material{{ID: "m1", Title: "01.函数单调性精讲课件.pptx", Label: "演示课件", Category: catalog.CategoryPPT}},
		History: []Message{
			{Role: RoleAssistant, Content: Greeting("第1课：函数单调性")},
			{Role: RoleSystemCard, Content: CardTitle},
			{Role: RoleUser, Content: "总结本课资料"},
		},
	}
	got, err := o.Reply(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "先看定义，再看图像。", got)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, ReplySchema, req.Schema)
	assert.Equal(t, 512, req.MaxTokens)
	assert.Contains(t, req.System, "01.函数单调性精讲课件.pptx")
	assert.Contains(t, req.System, "第1课：函数单调性")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Equal(t, "总结本课资料", req.Messages[0].Content)
}

func TestLLMOracleErrors(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: errors.New("boom")}},
		{"empty reply", llm.MockResponse{Content: json.RawMessage(`{"reply":"  "}`)}},
		{"schema mismatch", llm.MockResponse{Content: json.RawMessage(`{"text":"hi"}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewLLMOracle(llm.NewMockProvider(tt.resp), 64)
			_, err := o.Reply(context.Background(), ReplyInput{Text: "问"})
			assert.Error(t, err)
		})
	}
}

func TestBuildConversationWindow(t *testing.T) {
	var history []Message
	for i := 0; i < 30; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		history = append(history, Message{Role: role, Content: strings.Repeat("x", i+1)})
	}
	msgs := buildConversation(ReplyInput{Text: "最后一问", History: history})

	assert.LessOrEqual(t, len(msgs), historyWindow+1)
	assert.Equal(t, llm.RoleUser, msgs[0].Role)
	assert.Equal(t, "最后一问", msgs[len(msgs)-1].Content)
}

func TestFallbackOracle(t *testing.T) {
	in := ReplyInput{Text: KeyPointsPhrase}

	got, err := FallbackOracle{Primary: failingOracle{}}.Reply(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, staticReplies[KeyPointsPhrase], got)

	got, err = FallbackOracle{}.Reply(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, staticReplies[KeyPointsPhrase], got)

	primary := NewLLMOracle(llm.NewMockProvider(llm.MockResponse{Content: llm.ReplyJSON("模型回复")}), 0)
	got, err = FallbackOracle{Primary: primary}.Reply(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "模型回复", got)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CLASSDESK_REPLY_DELAY", "50ms")
	assert.Equal(t, "50ms", ConfigFromEnv().ReplyDelay.String())

	t.Setenv("CLASSDESK_REPLY_DELAY", "soon")
	assert.Equal(t, DefaultConfig().ReplyDelay, ConfigFromEnv().ReplyDelay)
}

func TestReplySchemaCompiles(t *testing.T) {
	require.NoError(t, llm.Compile(ReplySchema))
}

// ctxProvider remembers the context of the last request.
type ctxProvider struct {
	ctx context.Context
}

func (p *ctxProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.ctx = ctx
	return &llm.Response{Content: llm.ReplyJSON("好的")}, nil
}

func (p *ctxProvider) ModelID() string { return "ctx" }

func TestLLMOracleTagsRequest(t *testing.T) {
	p := &ctxProvider{}
	_, err := NewLLMOracle(p, 0).Reply(context.Background(), ReplyInput{SessionID: "sess-1", Text: "你好"})
	require.NoError(t, err)

	assert.Equal(t, "tutoring", llm.PurposeFrom(p.ctx))
	id, ok := llm.SessionFrom(p.ctx)
	assert.True(t, ok)
	assert.Equal(t, "sess-1", id)
}
