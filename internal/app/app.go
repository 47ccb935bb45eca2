// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/navigator"
	"github.com/vvai/classdesk/internal/notify"
	"github.com/vvai/classdesk/internal/panel"
	"github.com/vvai/classdesk/internal/router"
	"github.com/vvai/classdesk/internal/screen"
	"github.com/vvai/classdesk/internal/screens/dashboard"
	"github.com/vvai/classdesk/internal/screens/materials"
	"github.com/vvai/classdesk/internal/screens/welcome"
	"github.com/vvai/classdesk/internal/tutoring"
	"github.com/vvai/classdesk/internal/ui/components"
	"github.com/vvai/classdesk/internal/ui/layout"
)

// Options are the dependencies of the root model. Catalog, Session and
// Notifier are required.
type Options struct {
	Catalog  *catalog.Catalog
	Session  *tutoring.Session
	Notifier *notify.CacheNotifier
	Logger   *zap.Logger

	// Initial opens the materials panel at this view on start.
	Initial *navigator.View

	// Splash shows the welcome animation first.
	Splash bool
}

// toastExpiredMsg is sent when the visible notification may have expired.
type toastExpiredMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	notifier *notify.CacheNotifier
	logger   *zap.Logger
	initCmd  tea.Cmd

	toastTimer bool
	width      int
	height     int
}

// newAppModel builds the screen stack: dashboard at the bottom, with the
// materials panel on top when a deep link is given.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	state := panel.New(opts.Catalog, opts.Session)
	openMaterials := func(initial *navigator.View) screen.Screen {
		logger.Debug("open materials", zap.Bool("deep_link", initial != nil))
		return materials.New(state, opts.Notifier, initial)
	}
	dash := dashboard.New(opts.Catalog, opts.Notifier, openMaterials)

	m := AppModel{
		notifier: opts.Notifier,
		logger:   logger,
	}
	switch {
	case opts.Initial != nil:
		m.router = router.New(dash)
		m.initCmd = m.router.Push(openMaterials(opts.Initial))
	case opts.Splash:
		splash := welcome.New(func() screen.Screen { return dash })
		m.router = router.New(splash)
		m.initCmd = splash.Init()
	default:
		m.router = router.New(dash)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case toastExpiredMsg:
		m.toastTimer = false
		return m, m.watchToast()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok {
				if handled, cmd := bh.Back(); handled {
					return m, cmd
				}
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.watchToast())
}

// watchToast schedules a redraw for when the current notification
// expires. At most one timer is outstanding.
func (m *AppModel) watchToast() tea.Cmd {
	if m.notifier == nil || m.toastTimer {
		return nil
	}
	if _, ok := m.notifier.Current(); !ok {
		return nil
	}
	m.toastTimer = true
	return tea.Tick(m.notifier.TTL(), func(time.Time) tea.Msg { return toastExpiredMsg{} })
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, subtitle string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.SubtitleProvider); ok {
			subtitle = sp.Subtitle()
		}
	}

	header := layout.RenderHeader(title, subtitle, m.width)

	var footerHints []layout.KeyHint
	if kh, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kh.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "返回"},
			{Key: "Ctrl+C", Description: "退出"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "任意键", Description: "继续"},
			{Key: "Ctrl+C", Description: "退出"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	var toast string
	if m.notifier != nil {
		if msg, ok := m.notifier.Current(); ok {
			toast = components.Toast(msg, m.width)
		}
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if toast != "" {
		contentHeight -= lipgloss.Height(toast)
	}
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	if toast != "" {
		content = toast + "\n" + content
	}
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := newAppModel(opts)
	m.logger.Info("tui started", zap.Bool("deep_link", opts.Initial != nil))

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
