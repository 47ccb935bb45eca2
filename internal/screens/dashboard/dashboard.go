// Package dashboard is the workplace screen: today's course plans and the
// quick actions that open the materials panel.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/navigator"
	"github.com/vvai/classdesk/internal/notify"
	"github.com/vvai/classdesk/internal/panel"
	"github.com/vvai/classdesk/internal/router"
	"github.com/vvai/classdesk/internal/screen"
	"github.com/vvai/classdesk/internal/screens/coursedetail"
	"github.com/vvai/classdesk/internal/ui/components"
	"github.com/vvai/classdesk/internal/ui/layout"
	"github.com/vvai/classdesk/internal/ui/theme"
)

// MaterialsOpener builds the materials screen. A nil view opens it at root.
type MaterialsOpener func(initial *navigator.View) screen.Screen

// DashboardScreen lists quick actions followed by the course plans.
type DashboardScreen struct {
	menu          components.Menu
	plans         []catalog.CoursePlan
	planOffset    int
	notifier      notify.Notifier
	openMaterials MaterialsOpener
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard for cat's plans.
func New(cat *catalog.Catalog, notifier notify.Notifier, open MaterialsOpener) *DashboardScreen {
	d := &DashboardScreen{
		plans:         cat.Plans(),
		notifier:      notifier,
		openMaterials: open,
	}

	items := []components.MenuItem{
		{Label: "资料", Detail: "打开我的资料", Action: func() tea.Cmd { return d.push(nil) }},
		{Label: "签到", Action: d.notice(notify.CheckInNotice)},
		{Label: "作业", Action: d.notice(notify.HomeworkNotice)},
		{Label: "评价", Action: d.notice(notify.EvalNotice)},
	}
	d.planOffset = len(items)

	for _, p := range d.plans {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s-%s  %s", p.Time, p.EndTime, p.Title),
			Detail: planDetail(p),
			Action: func() tea.Cmd {
				detail := coursedetail.New(p, notifier, func() screen.Screen { return open(nil) })
				return func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			},
		})
	}

	d.menu = components.NewMenu(items)
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "工作台"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "打开"},
	}
	if _, ok := d.selectedShortcut(); ok {
		hints = append(hints, layout.KeyHint{Key: "T", Description: "AI 辅导"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "退出"})
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "t":
			if sc, ok := d.selectedShortcut(); ok {
				return d, d.push(panel.TutoringView(sc.LessonID, sc.Title))
			}
			return d, nil
		case "m":
			return d, d.push(nil)
		}
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

// SelectedPlan returns the plan under the cursor, if any.
func (d *DashboardScreen) SelectedPlan() (catalog.CoursePlan, bool) {
	i := d.menu.Selected - d.planOffset
	if i < 0 || i >= len(d.plans) {
		return catalog.CoursePlan{}, false
	}
	return d.plans[i], true
}

func (d *DashboardScreen) selectedShortcut() (*catalog.Shortcut, bool) {
	p, ok := d.SelectedPlan()
	if !ok || p.Shortcut == nil {
		return nil, false
	}
	return p.Shortcut, true
}

func (d *DashboardScreen) push(initial *navigator.View) tea.Cmd {
	s := d.openMaterials(initial)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (d *DashboardScreen) notice(msg string) func() tea.Cmd {
	return func() tea.Cmd {
		if d.notifier != nil {
			d.notifier.Notify(msg)
		}
		return nil
	}
}

func (d *DashboardScreen) View(width, height int) string {
	cw := min(width-4, 72)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(components.SectionTitle("快捷入口", "Quick actions"))
	b.WriteString("\n")
	for i, item := range d.menu.Items[:d.planOffset] {
		b.WriteString(d.renderItem(i, item.Label))
		b.WriteString("  ")
	}
	b.WriteString("\n\n")

	b.WriteString(components.SectionTitle("教学计划", fmt.Sprintf("%d 节", len(d.plans))))
	b.WriteString("\n")
	if len(d.plans) == 0 {
		b.WriteString(dim.Render("  今天没有课程计划"))
	}
	for i, p := range d.plans {
		idx := d.planOffset + i
		var card strings.Builder
		card.WriteString(d.renderItem(idx, fmt.Sprintf("%s  %s-%s", p.Title, p.Time, p.EndTime)))
		card.WriteString("  ")
		card.WriteString(statusBadge(p.Status))
		card.WriteString("\n")
		card.WriteString(dim.Render(planDetail(p)))
		if p.Shortcut != nil {
			card.WriteString("\n")
			card.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("AI 辅导 · " + p.Shortcut.Title))
		}
		b.WriteString(components.Card(card.String(), cw, idx == d.menu.Selected))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func (d *DashboardScreen) renderItem(i int, label string) string {
	if i == d.menu.Selected {
		return theme.ButtonActive.Render(label)
	}
	return theme.Unselected.Render(label)
}

func planDetail(p catalog.CoursePlan) string {
	parts := []string{p.Subject, p.Student, p.Location}
	var kept []string
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	kept = append(kept, fmt.Sprintf("资料 %d", p.MaterialCount))
	if p.HomeworkCount > 0 {
		kept = append(kept, fmt.Sprintf("作业 %d", p.HomeworkCount))
	}
	return strings.Join(kept, " · ")
}

func statusBadge(s catalog.PlanStatus) string {
	c := theme.TextDim
	switch s {
	case catalog.PlanOngoing:
		c = theme.Accent
	case catalog.PlanCompleted:
		c = theme.Success
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(s.Label())
}
