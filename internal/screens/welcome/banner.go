package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/vvai/classdesk/internal/ui/theme"
)

// Tagline is shown under the banner.
const Tagline = "AI 伴学，让每一份资料都被读懂"

const bannerArt = `
██╗   ██╗██╗   ██╗ █████╗ ██╗
██║   ██║██║   ██║██╔══██╗██║
██║   ██║██║   ██║███████║██║
╚██╗ ██╔╝╚██╗ ██╔╝██╔══██║██║
 ╚████╔╝  ╚████╔╝ ██║  ██║██║
  ╚═══╝    ╚═══╝  ╚═╝  ╚═╝╚═╝`

const bannerCompact = "V V A I"

// RenderBanner returns the brand banner, compact below 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
