package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vvai/classdesk/internal/ui/theme"
)

// ChecklistItem is one selectable row.
type ChecklistItem struct {
	ID       string
	Label    string
	Detail   string
	Category string
}

// Checklist is a cursor over items whose checked state is owned by the
// caller. Space reports the id under the cursor as toggled.
type Checklist struct {
	Items  []ChecklistItem
	Cursor int
}

// NewChecklist creates a checklist with the cursor on the first item.
func NewChecklist(items []ChecklistItem) Checklist {
	return Checklist{Items: items}
}

// Update moves the cursor. The returned id is non-empty when the item
// under the cursor should be toggled.
func (c Checklist) Update(msg tea.Msg) (Checklist, string) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Items) == 0 {
		return c, ""
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space", " ", "x":
		return c, c.Items[c.Cursor].ID
	}
	return c, ""
}

// View renders the items with check boxes. focused controls whether the
// cursor is drawn.
func (c Checklist) View(checked func(id string) bool, focused bool) string {
	var b strings.Builder
	for i, item := range c.Items {
		box := "[ ]"
		if checked(item.ID) {
			box = lipgloss.NewStyle().Foreground(theme.Success).Render("[✓]")
		}
		prefix := "  "
		style := theme.Unselected
		if focused && i == c.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		badge := lipgloss.NewStyle().Foreground(theme.CategoryColor(item.Category)).Render("●")
		line := fmt.Sprintf("%s%s %s %s", prefix, box, badge, style.Render(item.Label))
		if item.Detail != "" {
			line += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
