package term

import (
	"blinkrest/internal/core/stability"

	"github.com/charmbracelet/lipgloss"
)

// Colors used throughout the terminal UI.
var (
	ColorInk    = lipgloss.Color("#E7E5E4")
	ColorMuted  = lipgloss.Color("#78716C")
	ColorDim    = lipgloss.Color("#44403C")
	ColorIndigo = lipgloss.Color("#818CF8")
	ColorGreen  = lipgloss.Color("#16A34A")
	ColorAmber  = lipgloss.Color("#D97706")
	ColorRed    = lipgloss.Color("#DC2626")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorIndigo)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInk)

	InstructionStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(ColorInk)

	AnnounceStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BarFullStyle = lipgloss.NewStyle().
			Foreground(ColorIndigo)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAmber).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	FrameStyle = lipgloss.NewStyle().
			Padding(1, 3)
)

// CategoryStyle colours a stability result category.
func CategoryStyle(category stability.Category) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch category {
	case stability.CategoryNormal:
		return style.Foreground(ColorGreen)
	case stability.CategoryMarginal:
		return style.Foreground(ColorAmber)
	default:
		return style.Foreground(ColorRed)
	}
}
