package iostreams

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	primaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	infoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

// ColorScheme provides terminal color formatting.
// When colors are disabled, methods return the input string unmodified.
type ColorScheme struct {
	enabled bool
}

// NewColorScheme creates a new ColorScheme.
func NewColorScheme(enabled bool) *ColorScheme {
	return &ColorScheme{enabled: enabled}
}

// Enabled returns whether colors are enabled.
func (cs *ColorScheme) Enabled() bool {
	return cs.enabled
}

func (cs *ColorScheme) render(style lipgloss.Style, s string) string {
	if !cs.enabled {
		return s
	}
	return style.Render(s)
}

// Red returns the string in the error color.
func (cs *ColorScheme) Red(s string) string { return cs.render(errorStyle, s) }

// Yellow returns the string in the warning color.
func (cs *ColorScheme) Yellow(s string) string { return cs.render(warningStyle, s) }

// Green returns the string in the success color.
func (cs *ColorScheme) Green(s string) string { return cs.render(successStyle, s) }

// Blue returns the string in the primary color.
func (cs *ColorScheme) Blue(s string) string { return cs.render(primaryStyle, s) }

// Cyan returns the string in the info color.
func (cs *ColorScheme) Cyan(s string) string { return cs.render(infoStyle, s) }

// Muted returns the string in gray.
func (cs *ColorScheme) Muted(s string) string { return cs.render(mutedStyle, s) }

// Bold returns the string in bold.
func (cs *ColorScheme) Bold(s string) string { return cs.render(boldStyle, s) }

// Mutedf returns a formatted string in gray.
func (cs *ColorScheme) Mutedf(format string, a ...any) string {
	return cs.Muted(fmt.Sprintf(format, a...))
}

// SuccessIcon returns a success indicator.
// With colors: green ✓
// Without colors: [ok]
func (cs *ColorScheme) SuccessIcon() string {
	if cs.enabled {
		return cs.Green("✓")
	}
	return "[ok]"
}

// WarningIcon returns a warning indicator.
// With colors: yellow !
// Without colors: [warn]
func (cs *ColorScheme) WarningIcon() string {
	if cs.enabled {
		return cs.Yellow("!")
	}
	return "[warn]"
}

// FailureIcon returns a failure indicator.
// With colors: red ✗
// Without colors: [error]
func (cs *ColorScheme) FailureIcon() string {
	if cs.enabled {
		return cs.Red("✗")
	}
	return "[error]"
}

// InfoIcon returns an info indicator.
// With colors: cyan ℹ
// Without colors: [info]
func (cs *ColorScheme) InfoIcon() string {
	if cs.enabled {
		return cs.Cyan("ℹ")
	}
	return "[info]"
}
