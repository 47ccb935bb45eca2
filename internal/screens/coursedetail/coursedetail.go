// Package coursedetail shows one course plan's fulfilment page.
package coursedetail

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/notify"
	"github.com/vvai/classdesk/internal/router"
	"github.com/vvai/classdesk/internal/screen"
	"github.com/vvai/classdesk/internal/ui/components"
	"github.com/vvai/classdesk/internal/ui/layout"
	"github.com/vvai/classdesk/internal/ui/theme"
)

// DetailScreen renders a plan with its evaluation card and action chips.
type DetailScreen struct {
	plan    catalog.CoursePlan
	actions components.Menu
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// New creates the detail page. The homework chip opens the materials
// screen built by openMaterials.
func New(plan catalog.CoursePlan, notifier notify.Notifier, openMaterials func() screen.Screen) *DetailScreen {
	say := func(msg string) func() tea.Cmd {
		return func() tea.Cmd {
			if notifier != nil {
				notifier.Notify(msg)
			}
			return nil
		}
	}
	items := []components.MenuItem{
		{Label: "评价", Action: say(notify.EvalNotice)},
		{Label: "签到", Action: say(notify.CheckInNotice)},
		{Label: "作业", Action: func() tea.Cmd {
			s := openMaterials()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}},
	}
	return &DetailScreen{plan: plan, actions: components.NewMenu(items)}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }

func (d *DetailScreen) Title() string { return "课程履约" }

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "选择"},
		{Key: "Enter", Description: "执行"},
		{Key: "Esc", Description: "返回"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, nil
	}
	// The chips are laid out in a row.
	switch kmsg.String() {
	case "left", "h":
		msg = tea.KeyPressMsg{Code: tea.KeyUp}
	case "right", "l":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	}
	var cmd tea.Cmd
	d.actions, cmd = d.actions.Update(msg)
	return d, cmd
}

func (d *DetailScreen) View(width, height int) string {
	cw := min(width-4, 64)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var head strings.Builder
	head.WriteString(components.SectionTitle(d.plan.Title, d.plan.Status.Label()))
	head.WriteString("\n")
	head.WriteString(dim.Render(fmt.Sprintf("%s  %s-%s  %s", d.plan.Date, d.plan.Time, d.plan.EndTime, d.plan.Location)))

	var eval strings.Builder
	eval.WriteString(components.SectionTitle("学习评价", ""))
	eval.WriteString("\n\n")
	student := d.plan.Student
	if student == "" {
		student = "学生"
	}
	eval.WriteString(lipgloss.PlaceHorizontal(cw-4, lipgloss.Center, theme.ButtonActive.Render(student)))
	eval.WriteString("\n\n")
	eval.WriteString(lipgloss.PlaceHorizontal(cw-4, lipgloss.Center, dim.Render("暂无评价")))
	eval.WriteString("\n")
	eval.WriteString(lipgloss.PlaceHorizontal(cw-4, lipgloss.Center, dim.Render("☆ ☆ ☆ ☆ ☆")))

	var chips []string
	for i, item := range d.actions.Items {
		if i == d.actions.Selected {
			chips = append(chips, theme.ButtonActive.Render(item.Label))
		} else {
			chips = append(chips, theme.Chip.Render(item.Label))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		components.Card(head.String(), cw, false),
		components.Card(eval.String(), cw, false),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, chips...),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}
