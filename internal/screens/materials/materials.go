// Package materials is the materials panel screen: course and personal
// tabs, the lesson drill-down, and the AI tutoring chat.
package materials

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/navigator"
	"github.com/vvai/classdesk/internal/notify"
	"github.com/vvai/classdesk/internal/panel"
	"github.com/vvai/classdesk/internal/screen"
	"github.com/vvai/classdesk/internal/tutoring"
	"github.com/vvai/classdesk/internal/ui/components"
	"github.com/vvai/classdesk/internal/ui/layout"
)

// focus is the active area of the tutoring view.
type focus int

const (
	focusMaterials focus = iota
	focusChips
	focusInput
)

// MaterialsScreen drives a panel.State from key presses.
type MaterialsScreen struct {
	panel    *panel.State
	notifier notify.Notifier

	cursor int

	focus     focus
	checklist components.Checklist
	chip      int
	input     components.TextInput
	inFlight  int
}

var _ screen.Screen = (*MaterialsScreen)(nil)
var _ screen.KeyHintProvider = (*MaterialsScreen)(nil)
var _ screen.BackHandler = (*MaterialsScreen)(nil)
var _ screen.Closer = (*MaterialsScreen)(nil)
var _ screen.SubtitleProvider = (*MaterialsScreen)(nil)

// New opens p and returns a screen showing it. A non-nil initial view is
// the deep-link target.
func New(p *panel.State, notifier notify.Notifier, initial *navigator.View) *MaterialsScreen {
	s := &MaterialsScreen{
		panel:    p,
		notifier: notifier,
		input:    components.NewTextInput("输入你的问题...", 200),
	}
	s.input.Blur()
	p.Open(initial)
	s.sync()
	return s
}

func (s *MaterialsScreen) Init() tea.Cmd {
	return nil
}

func (s *MaterialsScreen) Title() string {
	title, _ := s.panel.Header()
	return title
}

func (s *MaterialsScreen) Subtitle() string {
	_, sub := s.panel.Header()
	return sub
}

// Panel exposes the underlying state.
func (s *MaterialsScreen) Panel() *panel.State {
	return s.panel
}

// Close is called when the router pops the screen.
func (s *MaterialsScreen) Close() {
	s.panel.Close()
	s.inFlight = 0
}

// Back goes up one level inside the panel. It reports false at root so
// the router can pop the screen.
func (s *MaterialsScreen) Back() (bool, tea.Cmd) {
	if s.panel.Depth() == 0 && s.panel.Tab() == panel.TabPersonal {
		if path := s.panel.PersonalPath(); len(path) > 0 {
			s.panel.JumpTo(len(path) - 2)
			s.sync()
			return true, nil
		}
		return false, nil
	}
	if !s.panel.Pop() {
		return false, nil
	}
	s.sync()
	return true, nil
}

func (s *MaterialsScreen) KeyHints() []layout.KeyHint {
	back := layout.KeyHint{Key: "Esc", Description: "返回"}
	if s.panel.InTutoring() {
		switch s.focus {
		case focusMaterials:
			return []layout.KeyHint{
				{Key: "Space", Description: "选择资料"},
				{Key: "Enter", Description: "开始研读"},
				{Key: "D", Description: "下载"},
				{Key: "Tab", Description: "切换"},
				back,
			}
		case focusChips:
			return []layout.KeyHint{
				{Key: "←→", Description: "选择"},
				{Key: "Enter", Description: "发送"},
				{Key: "Tab", Description: "切换"},
				back,
			}
		default:
			return []layout.KeyHint{
				{Key: "Enter", Description: "发送"},
				{Key: "Tab", Description: "切换"},
				back,
			}
		}
	}

	v, ok := s.panel.Current()
	switch {
	case ok && v.Kind == navigator.KindFiles:
		return []layout.KeyHint{
			{Key: "Enter", Description: "打开"},
			{Key: "P", Description: "预览"},
			{Key: "F", Description: "收藏"},
			back,
		}
	case !ok && s.panel.Tab() == panel.TabCourses:
		return []layout.KeyHint{
			{Key: "Tab", Description: "个人资料"},
			{Key: "←→", Description: "学科"},
			{Key: "Enter", Description: "打开"},
			back,
		}
	case !ok:
		return []layout.KeyHint{
			{Key: "Tab", Description: "课程资料"},
			{Key: "Enter", Description: "打开"},
			{Key: "0", Description: "根目录"},
			back,
		}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "打开"}, back}
}

func (s *MaterialsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyDueMsg:
		return s, s.resolve(msg.pending)

	case replyReadyMsg:
		if s.inFlight > 0 {
			s.inFlight--
		}
		s.panel.Session().DeliverReply(msg.pending, msg.content)
		return s, nil

	case tea.KeyPressMsg:
		if s.panel.InTutoring() {
			return s.handleTutoringKey(msg)
		}
		return s.handleBrowseKey(msg)
	}

	if s.panel.InTutoring() && s.focus == focusInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// rows is the number of selectable rows in the current browse view.
func (s *MaterialsScreen) rows() int {
	v, ok := s.panel.Current()
	switch {
	case !ok && s.panel.Tab() == panel.TabPersonal:
		return len(s.panel.PersonalItems())
	case !ok:
		return len(s.panel.Courses())
	case v.Kind == navigator.KindLessons:
		return len(s.panel.Lessons())
	case v.Kind == navigator.KindFiles:
		// The first row enters tutoring.
		return len(s.panel.Files()) + 1
	}
	return 0
}

func (s *MaterialsScreen) handleBrowseKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	v, nested := s.panel.Current()

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case "down", "j":
		if s.cursor < s.rows()-1 {
			s.cursor++
		}
		return s, nil
	case "tab":
		if s.panel.Tab() == panel.TabCourses {
			s.panel.SelectTab(panel.TabPersonal)
		} else {
			s.panel.SelectTab(panel.TabCourses)
		}
		s.sync()
		return s, nil
	case "left", "h", "right", "l":
		if !nested && s.panel.Tab() == panel.TabCourses {
			s.shiftDiscipline(msg.String() == "right" || msg.String() == "l")
		}
		return s, nil
	case "0":
		if !nested && s.panel.Tab() == panel.TabPersonal {
			s.panel.JumpTo(-1)
			s.sync()
		}
		return s, nil
	case "p":
		if nested && v.Kind == navigator.KindFiles && s.cursor > 0 {
			s.notify(notify.PreviewNotice)
		}
		return s, nil
	case "f":
		if nested && v.Kind == navigator.KindFiles && s.cursor > 0 {
			s.notify(notify.FavoriteNotice)
		}
		return s, nil
	case "enter":
		return s, s.activate(v, nested)
	}
	return s, nil
}

func (s *MaterialsScreen) activate(v navigator.View, nested bool) tea.Cmd {
	switch {
	case !nested && s.panel.Tab() == panel.TabPersonal:
		items := s.panel.PersonalItems()
		if s.cursor >= len(items) {
			return nil
		}
		item := items[s.cursor]
		if !item.IsFolder() {
			s.notify(notify.PreviewNotice)
			return nil
		}
		if err := s.panel.OpenFolder(item); err == nil {
			s.sync()
		}
	case !nested:
		courses := s.panel.Courses()
		if s.cursor < len(courses) {
			s.panel.OpenCourse(courses[s.cursor])
			s.sync()
		}
	case v.Kind == navigator.KindLessons:
		lessons := s.panel.Lessons()
		if s.cursor < len(lessons) {
			s.panel.OpenLesson(lessons[s.cursor])
			s.sync()
		}
	case v.Kind == navigator.KindFiles:
		if s.cursor == 0 {
			if s.panel.EnterTutoring() {
				s.sync()
			}
			return nil
		}
		s.notify(notify.PreviewNotice)
	}
	return nil
}

func (s *MaterialsScreen) shiftDiscipline(forward bool) {
	ds := s.panel.Disciplines()
	if len(ds) == 0 {
		return
	}
	cur := 0
	for i, d := range ds {
		if d.ID == s.panel.Discipline() {
			cur = i
		}
	}
	if forward {
		cur = (cur + 1) % len(ds)
	} else {
		cur = (cur - 1 + len(ds)) % len(ds)
	}
	s.panel.SelectDiscipline(ds[cur].ID)
	s.sync()
}

func (s *MaterialsScreen) handleTutoringKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "tab" {
		return s, s.cycleFocus()
	}

	session := s.panel.Session()
	switch s.focus {
	case focusMaterials:
		switch key {
		case "enter", "s":
			return s, s.schedule(session.RequestStartStudy())
		case "d":
			s.notify(notify.DownloadNotice)
			return s, nil
		}
		var toggled string
		s.checklist, toggled = s.checklist.Update(msg)
		if toggled != "" {
			session.ToggleSelection(toggled)
		}
		return s, nil

	case focusChips:
		switch key {
		case "left", "h":
			if s.chip > 0 {
				s.chip--
			}
		case "right", "l":
			if s.chip < len(tutoring.Chips)-1 {
				s.chip++
			}
		case "enter":
			return s, s.schedule(session.SendMessage(tutoring.Chips[s.chip]))
		}
		return s, nil
	}

	if key == "enter" {
		cmd := s.schedule(session.SendMessage(s.input.Value()))
		if cmd != nil {
			s.input.Clear()
		}
		return s, cmd
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *MaterialsScreen) cycleFocus() tea.Cmd {
	s.focus = (s.focus + 1) % 3
	if s.focus == focusInput {
		return s.input.Focus()
	}
	s.input.Blur()
	return nil
}

// schedule waits out the reply delay for a successful send.
func (s *MaterialsScreen) schedule(p tutoring.PendingReply, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	s.inFlight++
	return tea.Tick(time.Until(p.Due), func(time.Time) tea.Msg {
		return replyDueMsg{pending: p}
	})
}

// resolve asks the oracle off the update loop.
func (s *MaterialsScreen) resolve(p tutoring.PendingReply) tea.Cmd {
	session := s.panel.Session()
	return func() tea.Msg {
		return replyReadyMsg{pending: p, content: session.ResolveReply(context.Background(), p)}
	}
}

// sync resets per-view cursors after the panel moved.
func (s *MaterialsScreen) sync() {
	s.cursor = 0
	if !s.panel.InTutoring() {
		return
	}
	s.focus = focusMaterials
	s.chip = 0
	s.input.Blur()
	s.input.Clear()
	s.checklist = components.NewChecklist(checklistItems(s.panel.Session().Materials()))
}

func (s *MaterialsScreen) notify(msg string) {
	if s.notifier != nil {
		s.notifier.Notify(msg)
	}
}

func checklistItems(materials []catalog.Material) []components.ChecklistItem {
	items := make([]components.ChecklistItem, len(materials))
	for i, m := range materials {
		items[i] = components.ChecklistItem{
			ID:       m.ID,
			Label:    m.Title,
			Detail:   m.Size + " · " + m.Label,
			Category: string(m.Category),
		}
	}
	return items
}
