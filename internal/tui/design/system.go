package design

import (
	"github.com/charmbracelet/lipgloss"
)

// Spacing units, in terminal cells.
const (
	SpaceNone = 0
	SpaceXS   = 1
	SpaceSM   = 2
	SpaceMD   = 3

	// MinContentWidth is the narrowest width the menu renders at.
	MinContentWidth = 40
)

// Color palette with light/dark variants.
var (
	ColorPrimary = lipgloss.AdaptiveColor{
		Light: "#5A56E0",
		Dark:  "#7571F9",
	}
	ColorSecondary = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#059669",
		Dark:  "#10B981",
	}
	ColorError = lipgloss.AdaptiveColor{
		Light: "#DC2626",
		Dark:  "#EF4444",
	}
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#D97706",
		Dark:  "#F59E0B",
	}
	ColorText = lipgloss.AdaptiveColor{
		Light: "#111827",
		Dark:  "#F9FAFB",
	}
	ColorTextSecondary = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#E5E7EB",
		Dark:  "#404040",
	}
	ColorHighlight = lipgloss.AdaptiveColor{
		Light: "#EDE9FE",
		Dark:  "#2E2A5C",
	}
)

// Icons
const (
	IconCheck   = "✔"
	IconCross   = "✘"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconPointer = "▸"
	IconSave    = "💾"
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(SpaceXS)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ItemStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			PaddingLeft(SpaceSM)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Background(ColorHighlight).
				PaddingLeft(SpaceNone)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			MarginTop(SpaceXS)

	StatusSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	StatusErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	StatusInfoStyle    = lipgloss.NewStyle().Foreground(ColorSecondary)

	LogStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	LogErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	LogWarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Containers
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(SpaceNone, SpaceXS)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(SpaceXS, SpaceSM)
)

// StatusStyle picks the style for a status line.
func StatusStyle(isError bool) lipgloss.Style {
	if isError {
		return StatusErrorStyle
	}
	return StatusSuccessStyle
}

// Initialize fixes the background assumption used to pick AdaptiveColor variants.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}
