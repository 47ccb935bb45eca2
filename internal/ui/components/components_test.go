package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "签到", Disabled: true},
		{Label: "资料"},
		{Label: "作业", Disabled: true},
		{Label: "评价"},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item, got %d", m.Selected)
	}

	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Fatalf("expected 3 after down, got %d", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyUp))
	if m.Selected != 1 {
		t.Fatalf("expected 1 after up, got %d", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "资料", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(key(tea.KeyEnter))
	if !ran {
		t.Fatal("expected action to run")
	}
}

func TestChecklistToggle(t *testing.T) {
	c := NewChecklist([]ChecklistItem{{ID: "m1", Label: "课件"}, {ID: "m2", Label: "讲义"}})

	c, id := c.Update(key(tea.KeyDown))
	if id != "" || c.Cursor != 1 {
		t.Fatalf("unexpected state cursor=%d id=%q", c.Cursor, id)
	}
	c, id = c.Update(key(tea.KeySpace))
	if id != "m2" {
		t.Fatalf("expected m2 toggled, got %q", id)
	}
	c, _ = c.Update(key(tea.KeyDown))
	if c.Cursor != 1 {
		t.Fatalf("cursor moved past end: %d", c.Cursor)
	}

	view := c.View(func(id string) bool { return id == "m1" }, true)
	if !strings.Contains(view, "[✓]") || !strings.Contains(view, "[ ]") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestSelectionMeter(t *testing.T) {
	p := SelectionMeter(2, 3, 40)
	if !strings.Contains(p.View(), "2/3") {
		t.Fatalf("missing count in %q", p.View())
	}
	if SelectionMeter(0, 0, 40).Percent != 0 {
		t.Fatal("expected zero percent for empty lesson")
	}
}
