package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vvai/classdesk/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, suffix string, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Suffix:  suffix,
		Width:   width,
	}
}

// SelectionMeter shows how many of total materials are selected.
func SelectionMeter(selected, total, width int) ProgressBar {
	var pct float64
	if total > 0 {
		pct = float64(selected) / float64(total)
	}
	return NewProgressBar("已选资料", pct, fmt.Sprintf("%d/%d", selected, total), width)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	suffixWidth := 0
	if p.Suffix != "" {
		suffixWidth = lipgloss.Width(p.Suffix) + 2
	}

	barWidth := p.Width - labelWidth - suffixWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.Suffix != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + p.Suffix)
	}

	return result
}
