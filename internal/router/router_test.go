package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/vvai/classdesk/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	closed  bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Close()                                  { s.closed = true }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "dashboard"}
	r := New(s1)

	s2 := &stubScreen{title: "materials"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "materials" {
		t.Errorf("expected active 'materials', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "dashboard"}
	r := New(s1)

	s2 := &stubScreen{title: "materials"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "dashboard" {
		t.Errorf("expected active 'dashboard', got %q", r.Active().Title())
	}
}

func TestPopClosesScreen(t *testing.T) {
	r := New(&stubScreen{title: "dashboard"})
	materials := &stubScreen{title: "materials"}
	r.Push(materials)

	r.Update(PopScreenMsg{})

	if !materials.closed {
		t.Error("expected Close() on popped screen")
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "dashboard"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "dashboard"}
	r := New(s1)

	s2 := &stubScreen{title: "materials"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "materials" {
		t.Errorf("expected active 'materials', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "dashboard"}
	r := New(s1)

	s2 := &stubScreen{title: "materials"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "materials" {
		t.Errorf("expected active 'materials', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "dashboard"}
	r := New(s1)

	s2 := &stubScreen{title: "materials"}
	r.Push(s2)

	s3 := &stubScreen{title: "course"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "course" {
		t.Errorf("expected active 'course', got %q", r.Active().Title())
	}
}
