package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/roomcore/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Underline(true)

	styleText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleEvent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies how an output line is styled.
type lineKind int

const (
	kindText lineKind = iota
	kindTitle
	kindEvent
	kindExits
	kindInput
	kindSystem
	kindTrace
)

// segmentKind maps an engine segment onto its display style.
func segmentKind(k types.SegmentKind) lineKind {
	switch k {
	case types.SegTitle:
		return kindTitle
	case types.SegEvent:
		return kindEvent
	case types.SegExits:
		return kindExits
	default:
		return kindText
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindTitle:
		return styleTitle.Render(line)
	case kindEvent:
		return styleEvent.Render(line)
	case kindExits:
		return styleExits.Render(line)
	case kindInput:
		return stylePlayerInput.Render(line)
	case kindSystem:
		return styleSystem.Render("[" + line + "]")
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleText.Render(line)
	}
}
