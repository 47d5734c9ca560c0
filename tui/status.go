package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/roomcore/engine/render"
	"github.com/nathoo/roomcore/engine/state"
)

// roomDisplayName prefers the room's authored name and falls back to a
// title-cased id: "great_hall" -> "Great Hall".
func (m Model) roomDisplayName(id string) string {
	if room, ok := m.engine.World.Rooms[id]; ok && room.Name != "" {
		return room.Name
	}
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// statusText builds the left and right halves of the status bar for the
// given width.
func (m Model) statusText() (left, right string) {
	w, s := m.engine.World, m.engine.State

	exits := strings.TrimPrefix(render.ExitLine(w.Rooms[s.CurrentRoom], s.Flags), "Exits: ")
	left = fmt.Sprintf(" %s | Exits: %s", m.roomDisplayName(s.CurrentRoom), exits)
	counts := fmt.Sprintf("T:%d A:%d ", s.TurnCount, s.ActionCount)
	right = counts

	carried := state.Carried(w, s)
	if len(carried) == 0 {
		return left, right
	}

	// Show inventory names if they fit, otherwise just the count.
	names := make([]string, 0, len(carried))
	for _, id := range carried {
		names = append(names, m.engine.ItemName(id))
	}
	candidate := fmt.Sprintf("Inv: %s | %s", strings.Join(names, ", "), counts)
	if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
		return left, candidate
	}
	return left, fmt.Sprintf("Inv: %d | %s", len(carried), counts)
}

// renderStatusBar produces a full-width inverted status line.
func (m Model) renderStatusBar() string {
	left, right := m.statusText()
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
