package materials

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/navigator"
	"github.com/vvai/classdesk/internal/panel"
	"github.com/vvai/classdesk/internal/tutoring"
	"github.com/vvai/classdesk/internal/ui/components"
	"github.com/vvai/classdesk/internal/ui/layout"
	"github.com/vvai/classdesk/internal/ui/theme"
)

var dim = lipgloss.NewStyle().Foreground(theme.TextDim)

func (s *MaterialsScreen) View(width, height int) string {
	cw := min(width-4, 96)
	var content string
	if s.panel.InTutoring() {
		content = s.renderTutoring(cw, height)
	} else {
		content = s.renderBrowse(cw, height)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (s *MaterialsScreen) renderBrowse(cw, height int) string {
	var sections []string
	sections = append(sections, renderTabs(s.panel.Tab()))

	v, nested := s.panel.Current()
	var rows []string
	switch {
	case !nested && s.panel.Tab() == panel.TabPersonal:
		sections = append(sections, renderPersonalPath(s.panel.PersonalPath()))
		rows = s.personalRows(cw)
	case !nested:
		sections = append(sections, s.renderRail())
		for _, c := range s.panel.Courses() {
			rows = append(rows, fmt.Sprintf("%s  %s", c.Name, dim.Render(fmt.Sprintf("%d 个课时", c.Count))))
		}
	case v.Kind == navigator.KindLessons:
		sections = append(sections, renderCrumbs(s.panel.Breadcrumb()))
		for _, l := range s.panel.Lessons() {
			rows = append(rows, fmt.Sprintf("%s  %s", l.Name, dim.Render(fmt.Sprintf("%d 份资料", l.Count))))
		}
	case v.Kind == navigator.KindFiles:
		sections = append(sections, renderCrumbs(s.panel.Breadcrumb()))
		entry := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("进入 AI 答疑辅导模式") +
			"  " + dim.Render("针对本课时资料进行深度互动学习")
		rows = append(rows, entry)
		for _, m := range s.panel.Files() {
			rows = append(rows, materialRow(m))
		}
	}

	if len(rows) == 0 {
		sections = append(sections, dim.Render("  暂无内容"))
	} else {
		sections = append(sections, s.renderRows(rows, cw, height-lipgloss.Height(strings.Join(sections, "\n"))-1))
	}
	return strings.Join(sections, "\n")
}

// renderRows draws the cursor list, scrolled so the cursor stays visible.
func (s *MaterialsScreen) renderRows(rows []string, cw, room int) string {
	room = max(room, 1)
	start := 0
	if s.cursor >= room {
		start = s.cursor - room + 1
	}
	var b strings.Builder
	for i := start; i < len(rows) && i < start+room; i++ {
		line := layout.Truncate(rows[i], cw-4)
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("▸ ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *MaterialsScreen) personalRows(cw int) []string {
	var rows []string
	for _, item := range s.panel.PersonalItems() {
		if item.IsFolder() {
			icon := lipgloss.NewStyle().Foreground(theme.CategoryColor("folder")).Render("▣")
			rows = append(rows, fmt.Sprintf("%s %s  %s", icon, item.Name, dim.Render(item.Date)))
			continue
		}
		icon := lipgloss.NewStyle().Foreground(theme.CategoryColor(string(item.Category))).Render("●")
		rows = append(rows, fmt.Sprintf("%s %s  %s", icon, item.Name, dim.Render(item.Size+" • "+item.Date)))
	}
	return rows
}

func (s *MaterialsScreen) renderRail() string {
	var parts []string
	for _, d := range s.panel.Disciplines() {
		label := strings.TrimSpace(d.Icon + " " + d.Name)
		if d.ID == s.panel.Discipline() {
			parts = append(parts, theme.ButtonActive.Render(label))
		} else {
			parts = append(parts, dim.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ") + "\n"
}

func renderTabs(active panel.Tab) string {
	var parts []string
	for _, t := range []panel.Tab{panel.TabCourses, panel.TabPersonal} {
		if t == active {
			parts = append(parts, theme.Title.Underline(true).Render(t.String()))
		} else {
			parts = append(parts, dim.Render(t.String()))
		}
	}
	return strings.Join(parts, "   ") + "\n"
}

func renderCrumbs(crumbs []string) string {
	return dim.Render(strings.Join(append([]string{panel.TabCourses.String()}, crumbs...), " › ")) + "\n"
}

func renderPersonalPath(path []catalog.FileItem) string {
	names := []string{panel.TabPersonal.String()}
	for _, p := range path {
		names = append(names, p.Name)
	}
	return dim.Render(strings.Join(names, " › ")) + "\n"
}

func materialRow(m catalog.Material) string {
	icon := lipgloss.NewStyle().Foreground(theme.CategoryColor(string(m.Category))).Render("●")
	return fmt.Sprintf("%s %s  %s", icon, m.Title, dim.Render(m.Size+" • "+m.Date))
}

func (s *MaterialsScreen) renderTutoring(cw, height int) string {
	session := s.panel.Session()

	var blocks []string
	for _, m := range session.Transcript() {
		switch m.Role {
		case tutoring.RoleSystemCard:
			blocks = append(blocks, s.renderCard(m, cw))
		case tutoring.RoleUser:
			blocks = append(blocks, lipgloss.PlaceHorizontal(cw, lipgloss.Right, bubble(theme.UserBubble, m.Content, cw)))
		default:
			blocks = append(blocks, bubble(theme.AssistantBubble, m.Content, cw))
		}
	}
	if s.inFlight > 0 {
		blocks = append(blocks, theme.Hint.Render("AI 正在思考..."))
	}

	bottom := s.renderComposer(cw)
	room := max(height-lipgloss.Height(bottom)-1, 1)

	lines := strings.Split(strings.Join(blocks, "\n\n"), "\n")
	if len(lines) > room {
		// Keep the material card in view while it has focus.
		if s.focus == focusMaterials {
			lines = lines[:room]
		} else {
			lines = lines[len(lines)-room:]
		}
	}
	return strings.Join(lines, "\n") + "\n" + bottom
}

func bubble(style lipgloss.Style, text string, cw int) string {
	bw := cw * 3 / 4
	if lipgloss.Width(text) > bw {
		style = style.Width(bw)
	}
	return style.Render(text)
}

func (s *MaterialsScreen) renderCard(m tutoring.Message, cw int) string {
	session := s.panel.Session()
	synced := lipgloss.NewStyle().Foreground(theme.Primary).Render("已同步")

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("EDUSPACE AI"))
	b.WriteString("\n")
	b.WriteString(components.SectionTitle(m.Content, "") + "  " + synced)
	b.WriteString("\n\n")
	b.WriteString(s.checklist.View(session.Selected, s.focus == focusMaterials))
	b.WriteString("\n")
	b.WriteString(components.SelectionMeter(session.SelectedCount(), len(m.Materials), cw-6).View())
	b.WriteString("\n\n")
	b.WriteString(components.NewButton(tutoring.StartStudyPhrase, s.focus == focusMaterials, nil).View())

	return components.Card(b.String(), cw, s.focus == focusMaterials)
}

func (s *MaterialsScreen) renderComposer(cw int) string {
	var chips []string
	for i, c := range tutoring.Chips {
		if s.focus == focusChips && i == s.chip {
			chips = append(chips, theme.ButtonActive.Render(c))
		} else {
			chips = append(chips, theme.Chip.Render(c))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, chips...)
	return row + "\n" + components.Card(s.input.View(), cw, s.focus == focusInput)
}
