package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/vvai/classdesk/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens with their own back stack. Back
// reports false when the screen is at its root and the router should pop.
type BackHandler interface {
	Back() (handled bool, cmd tea.Cmd)
}

// Closer is notified when its screen is popped off the router.
type Closer interface {
	Close()
}

// SubtitleProvider overrides the header subtitle.
type SubtitleProvider interface {
	Subtitle() string
}
