package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/notify"
	"github.com/vvai/classdesk/internal/panel"
	"github.com/vvai/classdesk/internal/router"
	"github.com/vvai/classdesk/internal/screens/materials"
	"github.com/vvai/classdesk/internal/tutoring"
)

func newTestOptions(t *testing.T) Options {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	n := notify.NewCacheNotifier(time.Minute)
	return Options{
		Catalog:  cat,
		Notifier: n,
		Session:  tutoring.New(tutoring.DefaultConfig(), tutoring.Deps{Catalog: cat, Notifier: n}),
	}
}

var esc = tea.KeyPressMsg{Code: tea.KeyEscape}

// step runs an update and applies any router message it produces.
func step(m AppModel, msg tea.Msg) AppModel {
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case router.PopScreenMsg, router.PushScreenMsg:
		next, _ = m.Update(out)
		m = next.(AppModel)
	}
	return m
}

func TestDeepLinkStartsInTutoring(t *testing.T) {
	opts := newTestOptions(t)
	opts.Initial = panel.TutoringView("l1", "第1课")
	m := newAppModel(opts)

	require.Equal(t, 2, m.router.Depth())
	ms, ok := m.router.Active().(*materials.MaterialsScreen)
	require.True(t, ok)
	assert.True(t, ms.Panel().InTutoring())
	assert.Len(t, opts.Session.Transcript(), 2)

	// Back to the panel root, then out to the dashboard.
	m = step(m, esc)
	assert.Equal(t, 2, m.router.Depth())
	assert.False(t, ms.Panel().InTutoring())

	gen := opts.Session.Generation()
	m = step(m, esc)
	assert.Equal(t, 1, m.router.Depth())
	assert.False(t, ms.Panel().IsOpen())
	assert.Greater(t, opts.Session.Generation(), gen)

	m = step(m, esc)
	assert.Equal(t, 1, m.router.Depth())
}

func TestSplashComesFirst(t *testing.T) {
	opts := newTestOptions(t)
	opts.Splash = true
	m := newAppModel(opts)

	assert.Equal(t, "", m.router.Active().Title())
	assert.NotNil(t, m.Init())
}

func TestToastRenderedAndWatched(t *testing.T) {
	opts := newTestOptions(t)
	m := newAppModel(opts)
	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	opts.Notifier.Notify(notify.CheckInNotice)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.NotNil(t, cmd)

	assert.True(t, strings.Contains(m.render(), notify.CheckInNotice))
}

func TestTooSmall(t *testing.T) {
	m := newAppModel(newTestOptions(t))
	m = step(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "终端窗口太小")
}
