package tutoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vvai/classdesk/internal/llm"
)

// Oracle produces the assistant's reply to a learner message.
type Oracle interface {
	Reply(ctx context.Context, in ReplyInput) (string, error)
}

// GenericReply answers anything the static table does not know.
const GenericReply = "关于你的提问，这部分的重点在于理解函数的变化趋势。建议你结合视频回放的第 15 分钟来看判定定理的推导过程。"

var staticReplies = map[string]string{
	SummaryPhrase:   "针对你选中的资料，我为你梳理了一下核心内容：本课主要涵盖了函数单调性的基本定义、图像表现以及判定方法。其中最关键的是理解“随自变量增大而增大”的数学表达。",
	KeyPointsPhrase: "函数单调性的证明是这一章的难点。特别是利用定义证明时，四个步骤：取值、作差、变形、定号，缺一不可。",
}

// StaticOracle answers from a fixed table keyed by the exact message text.
type StaticOracle struct{}

func (StaticOracle) Reply(_ context.Context, in ReplyInput) (string, error) {
	return StaticReply(in), nil
}

// StaticReply is the table lookup behind StaticOracle.
func StaticReply(in ReplyInput) string {
	if in.Text == StartStudyPhrase {
		return fmt.Sprintf("太棒了！我已经准备好和你一起研读这 %d 份资料。我们可以从“函数单调性的定义”开始，或者你对课件中的哪一部分有疑问？", in.SelectionCount)
	}
	if r, ok := staticReplies[in.Text]; ok {
		return r
	}
	return GenericReply
}

// ReplySchema constrains LLM replies to a single string.
var ReplySchema = &llm.Schema{
	Name:        "tutor-reply",
	Description: "The AI study companion's next chat message",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{
				"type":        "string",
				"description": "Reply to the student in Simplified Chinese, 1-4 sentences",
			},
		},
		"required":             []any{"reply"},
		"additionalProperties": false,
	},
}

const tutorSystemPrompt = `你是一名耐心的 AI 伴学助手，正在陪一名中学生研读一节课的教学资料。回答要简洁、准确、鼓励式，只围绕学生选中的资料展开。`

// historyWindow bounds how many prior turns are sent to the model.
const historyWindow = 10

// LLMOracle answers through an llm.Provider.
type LLMOracle struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// NewLLMOracle wraps provider. A non-positive maxTokens uses 512.
func NewLLMOracle(provider llm.Provider, maxTokens int) *LLMOracle {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &LLMOracle{provider: provider, maxTokens: maxTokens, temperature: 0.5}
}

type replyOutput struct {
	Reply string `json:"reply"`
}

func (o *LLMOracle) Reply(ctx context.Context, in ReplyInput) (string, error) {
	ctx = llm.WithPurpose(ctx, "tutoring")
	if in.SessionID != "" {
		ctx = llm.WithSession(ctx, in.SessionID)
	}

	req := llm.Request{
		System:      buildSystemPrompt(in),
		Messages:    buildConversation(in),
		Schema:      ReplySchema,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("tutor reply: %w", err)
	}

	var out replyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse tutor reply: %w", err)
	}
	if strings.TrimSpace(out.Reply) == "" {
		return "", fmt.Errorf("tutor reply: empty")
	}
	return out.Reply, nil
}

func buildSystemPrompt(in ReplyInput) string {
	var b strings.Builder
	b.WriteString(tutorSystemPrompt)
	fmt.Fprintf(&b, "\n\n课程：%s\n", in.LessonTitle)
	fmt.Fprintf(&b, "已选资料（%d 份）：\n", in.SelectionCount)
	for _, m := range in.Materials {
		fmt.Fprintf(&b, "- %s（%s，%s）\n", m.Title, m.Label, m.Category)
	}
	return b.String()
}

// buildConversation maps the recent transcript onto chat turns and ends
// with the new learner message. System cards are folded into the prompt
// instead.
func buildConversation(in ReplyInput) []llm.Message {
	history := in.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var msgs []llm.Message
	for _, m := range history {
		switch m.Role {
		case RoleUser:
			msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: m.Content})
		case RoleAssistant:
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: m.Content})
		}
	}
	// The history may already end with the message being answered.
	if n := len(msgs); n == 0 || msgs[n-1].Role != llm.RoleUser || msgs[n-1].Content != in.Text {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: in.Text})
	}
	// Anthropic rejects conversations that open with an assistant turn.
	for len(msgs) > 0 && msgs[0].Role == llm.RoleAssistant {
		msgs = msgs[1:]
	}
	return msgs
}

// FallbackOracle asks Primary and answers from the static table when it
// fails.
type FallbackOracle struct {
	Primary Oracle
	Logger  *zap.Logger
}

func (f FallbackOracle) Reply(ctx context.Context, in ReplyInput) (string, error) {
	if f.Primary == nil {
		return StaticReply(in), nil
	}
	reply, err := f.Primary.Reply(ctx, in)
	if err != nil {
		if f.Logger != nil {
			f.Logger.Warn("oracle failed, using static reply", zap.Error(err))
		}
		return StaticReply(in), nil
	}
	return reply, nil
}
