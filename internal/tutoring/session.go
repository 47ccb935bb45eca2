// Package tutoring holds the AI tutoring conversation for one lesson: the
// transcript, the material selection, and delayed assistant replies.
package tutoring

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/notify"
	"github.com/vvai/classdesk/internal/store"
)

// CardTitle is the content of the system card listing the lesson's
// materials.
const CardTitle = "本节课核心资料包"

const greetingFormat = "同学你好！我是你的 AI 伴学助手。👋\n\n我已经为你整理好了《%s》的全部教学资料。我们是针对全部资料进行深度研读，还是你先选几份感兴趣的开始互动提问？"

// Greeting returns the assistant's opening message for a lesson.
func Greeting(lessonTitle string) string {
	return fmt.Sprintf(greetingFormat, lessonTitle)
}

// Deps are the collaborators of a Session. Catalog is required; the rest
// may be nil.
type Deps struct {
	Catalog  *catalog.Catalog
	Oracle   Oracle
	Notifier notify.Notifier
	Journal  store.EventRepo
	Logger   *zap.Logger
}

// Session is the tutoring state for the currently open lesson. It is not
// safe for concurrent use except for ResolveReply, which only reads
// immutable dependencies.
type Session struct {
	cfg      Config
	catalog  *catalog.Catalog
	oracle   Oracle
	notifier notify.Notifier
	journal  store.EventRepo
	logger   *zap.Logger

	id          string
	lessonID    string
	lessonTitle string
	resolution  catalog.Resolution
	materials   []catalog.Material
	selected    map[string]struct{}
	transcript  []Message
	generation  int64
	msgSeq      int
}

// New creates an empty session. Call Init before sending messages.
func New(cfg Config, deps Deps) *Session {
	if deps.Oracle == nil {
		deps.Oracle = StaticOracle{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.DefaultLessonID == "" {
		cfg.DefaultLessonID = DefaultConfig().DefaultLessonID
	}
	return &Session{
		cfg:      cfg,
		catalog:  deps.Catalog,
		oracle:   deps.Oracle,
		notifier: deps.Notifier,
		journal:  deps.Journal,
		logger:   deps.Logger.Named("tutoring"),
		selected: make(map[string]struct{}),
	}
}

// Init starts a fresh conversation for a lesson. Every material is
// selected and the transcript becomes the greeting plus the material
// card. Unknown lessons fall back to the default lesson's materials.
func (s *Session) Init(lessonID, lessonTitle string) {
	if lessonID == "" {
		lessonID = s.cfg.DefaultLessonID
	}

	materials, res := s.catalog.MaterialsOrDefault(lessonID)
	if res == catalog.Defaulted {
		s.logger.Warn("lesson has no materials, using default lesson",
			zap.String("lesson_id", lessonID),
			zap.String("default_lesson_id", s.catalog.DefaultLessonID()))
	}

	s.generation++
	s.id = uuid.NewString()
	s.msgSeq = 0
	s.lessonID = lessonID
	s.lessonTitle = lessonTitle
	s.resolution = res
	s.materials = materials

	s.selected = make(map[string]struct{}, len(materials))
	for _, m := range materials {
		s.selected[m.ID] = struct{}{}
	}

	s.transcript = []Message{
		{ID: s.nextID(), Role: RoleAssistant, Content: Greeting(lessonTitle)},
		{ID: s.nextID(), Role: RoleSystemCard, Content: CardTitle, Materials: cloneMaterials(materials)},
	}

	s.logger.Info("tutoring session started",
		zap.String("session_id", s.id),
		zap.String("lesson_id", lessonID),
		zap.Stringer("resolution", res),
		zap.Int("materials", len(materials)))
	s.record(store.TutoringEventData{
		Kind:       store.KindSessionStarted,
		Content:    lessonTitle,
		Resolution: res.String(),
	})
}

// ToggleSelection flips whether a material is selected. Ids are not
// checked against the lesson.
func (s *Session) ToggleSelection(id string) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	s.record(store.TutoringEventData{
		Kind:    store.KindSelectionChange,
		Content: id,
	})
}

// RequestStartStudy sends the start-study phrase. With nothing selected it
// raises a notification instead and leaves the transcript alone.
func (s *Session) RequestStartStudy() (PendingReply, bool) {
	if len(s.selected) == 0 {
		if s.notifier != nil {
			s.notifier.Notify(EmptySelectionNotice)
		}
		return PendingReply{}, false
	}
	return s.SendMessage(StartStudyPhrase)
}

// SendMessage appends the learner's message as typed and describes the
// reply to deliver after the configured delay. Blank text is ignored.
func (s *Session) SendMessage(text string) (PendingReply, bool) {
	if strings.TrimSpace(text) == "" {
		return PendingReply{}, false
	}

	s.transcript = append(s.transcript, Message{ID: s.nextID(), Role: RoleUser, Content: text})
	s.record(store.TutoringEventData{
		Kind:    store.KindMessage,
		Role:    string(RoleUser),
		Content: text,
	})

	return PendingReply{
		Generation: s.generation,
		Due:        time.Now().Add(s.cfg.ReplyDelay),
		Input: ReplyInput{
			SessionID:      s.id,
			Text:           text,
			SelectionCount: len(s.selected),
			LessonTitle:    s.lessonTitle,
			Materials:      s.selectedMaterials(),
			History:        s.Transcript(),
		},
	}, true
}

// ResolveReply asks the oracle for the reply text. Oracle failures fall
// back to the static table. Safe to call off the UI loop.
func (s *Session) ResolveReply(ctx context.Context, p PendingReply) string {
	if s.cfg.ReplyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ReplyTimeout)
		defer cancel()
	}
	reply, err := s.oracle.Reply(ctx, p.Input)
	if err != nil {
		s.logger.Warn("reply oracle failed", zap.Error(err), zap.Int64("generation", p.Generation))
		return StaticReply(p.Input)
	}
	return reply
}

// DeliverReply appends the assistant reply unless the session has moved
// on since it was scheduled. It reports whether the reply was appended.
func (s *Session) DeliverReply(p PendingReply, content string) bool {
	if p.Generation != s.generation {
		s.logger.Debug("discarding stale reply",
			zap.Int64("reply_generation", p.Generation),
			zap.Int64("generation", s.generation))
		s.record(store.TutoringEventData{
			Kind:       store.KindReplyDiscarded,
			Role:       string(RoleAssistant),
			Content:    content,
			Generation: p.Generation,
		})
		return false
	}

	s.transcript = append(s.transcript, Message{ID: s.nextID(), Role: RoleAssistant, Content: content})
	s.record(store.TutoringEventData{
		Kind:    store.KindMessage,
		Role:    string(RoleAssistant),
		Content: content,
	})
	return true
}

// Invalidate makes every outstanding PendingReply stale.
func (s *Session) Invalidate() {
	s.generation++
}

// Reset clears the transcript and selection and invalidates pending replies.
func (s *Session) Reset() {
	s.Invalidate()
	s.transcript = nil
	s.selected = make(map[string]struct{})
	s.materials = nil
	s.lessonID = ""
	s.lessonTitle = ""
	s.resolution = catalog.Resolved
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []Message {
	out := make([]Message, len(s.transcript))
	for i, m := range s.transcript {
		m.Materials = cloneMaterials(m.Materials)
		out[i] = m
	}
	return out
}

func (s *Session) Selected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

func (s *Session) SelectedCount() int { return len(s.selected) }

// SelectedIDs returns the selected material ids in sorted order.
func (s *Session) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Materials returns the lesson's materials in catalog order.
func (s *Session) Materials() []catalog.Material { return cloneMaterials(s.materials) }

func (s *Session) ID() string                     { return s.id }
func (s *Session) LessonID() string               { return s.lessonID }
func (s *Session) LessonTitle() string            { return s.lessonTitle }
func (s *Session) Resolution() catalog.Resolution { return s.resolution }
func (s *Session) Generation() int64              { return s.generation }
func (s *Session) ReplyDelay() time.Duration      { return s.cfg.ReplyDelay }

func (s *Session) selectedMaterials() []catalog.Material {
	var out []catalog.Material
	for _, m := range s.materials {
		if s.Selected(m.ID) {
			out = append(out, m)
		}
	}
	return out
}

func (s *Session) nextID() string {
	s.msgSeq++
	return fmt.Sprintf("%s-%d", s.id, s.msgSeq)
}

// record journals an event. Failures are logged, never surfaced.
func (s *Session) record(data store.TutoringEventData) {
	if s.journal == nil || s.id == "" {
		return
	}
	data.SessionID = s.id
	data.LessonID = s.lessonID
	if data.Generation == 0 {
		data.Generation = s.generation
	}
	if err := s.journal.AppendTutoringEvent(context.Background(), data); err != nil {
		s.logger.Warn("journal tutoring event", zap.Error(err), zap.String("kind", data.Kind))
	}
}

func cloneMaterials(in []catalog.Material) []catalog.Material {
	if in == nil {
		return nil
	}
	out := make([]catalog.Material, len(in))
	copy(out, in)
	return out
}
