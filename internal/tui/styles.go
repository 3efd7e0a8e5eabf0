package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorAccent  = lipgloss.Color("39")
	ColorText    = lipgloss.Color("252")
	ColorSubtle  = lipgloss.Color("244")
	ColorOK      = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorBorder  = lipgloss.Color("240")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are package-level by convention
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	ValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle).Italic(true)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	OKStyle = lipgloss.NewStyle().Foreground(ColorOK)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(ColorAccent).
			Padding(0, 1)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(ColorSubtle).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)
)
