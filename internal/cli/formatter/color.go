package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CapacityStyle maps a utilization band to its color.
func CapacityStyle(s capacity.Status) lipgloss.Style {
	switch s {
	case capacity.StatusOverCapacity:
		return StyleRed
	case capacity.StatusNearCapacity:
		return StyleYellow
	case capacity.StatusGood:
		return StyleGreen
	case capacity.StatusUnder:
		return StyleBlue
	default:
		return StyleDim
	}
}

// CapacityPill renders a utilization band such as "● NEAR CAPACITY".
func CapacityPill(s capacity.Status) string {
	label := strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
	if label == "" {
		label = "UNKNOWN"
	}
	return CapacityStyle(s).Render("● " + label)
}

func SeverityStyle(s conflict.Severity) lipgloss.Style {
	switch s {
	case conflict.SeverityCritical:
		return StyleRed
	case conflict.SeverityWarning:
		return StyleYellow
	default:
		return StyleBlue
	}
}

// SeverityBadge renders a severity as a fixed-width tag.
func SeverityBadge(s conflict.Severity) string {
	return SeverityStyle(s).Render(fmt.Sprintf("%-8s", strings.ToUpper(string(s))))
}

// TimelineBadge renders the pace of a release.
func TimelineBadge(s timeline.State) string {
	switch s {
	case timeline.StateOnTrack:
		return StyleGreen.Render("● ON TRACK")
	case timeline.StateAhead:
		return StyleBlue.Render("▲ AHEAD")
	case timeline.StateBehind:
		return StyleRed.Render("▼ BEHIND")
	case timeline.StateNotStarted:
		return StyleDim.Render("○ NOT STARTED")
	default:
		return StyleDim.Render("? UNKNOWN")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
