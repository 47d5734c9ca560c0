// Package tui provides a Bubble Tea terminal UI for the roomcore engine.
package tui

import "strings"

// History keeps recent commands for Up/Down recall.
type History struct {
	entries []string
	limit   int
	cursor  int // -1 while editing fresh input
}

// NewHistory creates a history holding at most limit commands.
func NewHistory(limit int) *History {
	limit = max(limit, 1)
	return &History{entries: make([]string, 0, limit), limit: limit, cursor: -1}
}

// Push records a command. Blank input and repeats of the newest entry are
// ignored.
func (h *History) Push(cmd string) {
	if strings.TrimSpace(cmd) == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = h.entries[over:]
	}
}

// Len returns the number of stored commands.
func (h *History) Len() int { return len(h.entries) }

// Prev steps toward older commands, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps toward newer commands. Moving past the newest returns false
// and leaves the cursor on fresh input.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor returns to fresh input.
func (h *History) ResetCursor() {
	h.cursor = -1
}
