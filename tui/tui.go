package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/roomcore/cli"
	"github.com/nathoo/roomcore/engine"
	"github.com/nathoo/roomcore/types"
)

// rawLine stores an unstyled output line with its kind, so the narrative
// can be re-wrapped and re-styled when the terminal is resized.
type rawLine struct {
	text string
	kind lineKind
}

// Options configures a TUI session.
type Options struct {
	Prompt      string
	HistorySize int
	Trace       bool
}

// Model is the Bubble Tea model for the roomcore TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// gameOutputMsg carries the opening narrative into the Update loop.
type gameOutputMsg struct {
	lines []rawLine
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = opts.Prompt
	if ti.Prompt == "" {
		ti.Prompt = "> "
	}
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		input:   ti,
		history: NewHistory(opts.HistorySize),
		trace:   opts.Trace,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, opts Options) error {
	p := tea.NewProgram(New(eng, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the banner and opening room.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []rawLine
		w := m.engine.World
		if w.Name != "" {
			lines = append(lines, rawLine{text: fmt.Sprintf("Welcome to %s!", w.Name)})
		}
		if w.Desc != "" {
			lines = append(lines, rawLine{text: w.Desc})
		}
		lines = append(lines, rawLine{text: "Type /help for commands."})
		lines = append(lines, segmentLines(m.engine.Start().Segments)...)
		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := max(m.height-2, 1) // status bar + input line

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg.lines)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()
	echo := rawLine{text: "> " + input, kind: kindInput}

	if strings.HasPrefix(input, "/") {
		lines, quit := m.handleMeta(input)
		m = m.appendOutput(append([]rawLine{echo}, lines...))
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput([]rawLine{echo, {text: "Nothing to repeat."}})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	result := m.engine.Step(input)
	lines := append([]rawLine{echo}, segmentLines(result.Segments)...)
	if m.trace {
		lines = append(lines, traceLines(result)...)
	}
	m = m.appendOutput(lines)
	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// segmentLines lays segments out the same way the line front end does,
// keeping each line's kind for styling.
func segmentLines(segments []types.Segment) []rawLine {
	var lines []rawLine
	startedEvents := false
	for _, seg := range segments {
		kind := segmentKind(seg.Kind)
		switch seg.Kind {
		case types.SegTitle, types.SegExits:
			lines = append(lines, rawLine{})
		case types.SegEvent:
			if !startedEvents && len(lines) > 0 {
				lines = append(lines, rawLine{})
			}
			startedEvents = true
		}
		lines = append(lines, rawLine{text: seg.Text, kind: kind})
	}
	return lines
}

func traceLines(result types.Result) []rawLine {
	var lines []rawLine
	for _, t := range result.Trace {
		lines = append(lines, rawLine{text: "[trace] " + t, kind: kindTrace})
	}
	if len(result.ChangedFlags) > 0 {
		lines = append(lines, rawLine{text: "[trace] changed: " + strings.Join(result.ChangedFlags, ", "), kind: kindTrace})
	}
	return lines
}

// appendOutput adds lines plus a turn separator and refreshes the viewport.
func (m Model) appendOutput(lines []rawLine) Model {
	m.rawLines = append(m.rawLines, lines...)
	m.rawLines = append(m.rawLines, rawLine{})
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		styled = append(styled, renderLineKind(wordWrap(rl.text, width), rl.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text at word boundaries to fit within width. Existing
// newlines are kept as paragraph breaks.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	paragraphs := strings.Split(text, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapParagraph(p, width)
	}
	return strings.Join(paragraphs, "\n")
}

func wrapParagraph(text string, width int) string {
	if len(text) <= width {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wLen := len(word)
		switch {
		case i == 0:
			lineLen = wLen
		case lineLen+1+wLen > width:
			b.WriteString("\n")
			lineLen = wLen
		default:
			b.WriteString(" ")
			lineLen += 1 + wLen
		}
		b.WriteString(word)
	}
	return b.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and whether to quit.
func (m *Model) handleMeta(input string) ([]rawLine, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return systemLines("Goodbye."), true

	case "/help":
		var lines []rawLine
		for _, l := range cli.HelpLines {
			lines = append(lines, rawLine{text: l})
		}
		lines = append(lines, rawLine{}, rawLine{text: "Navigation: PgUp/PgDn to scroll, Up/Down for command history"})
		return lines, false

	case "/state":
		return systemLines(cli.StateLines(m.engine)...), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return systemLines("Trace output enabled."), false
		}
		return systemLines("Trace output disabled."), false

	default:
		return systemLines(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)), false
	}
}

func systemLines(texts ...string) []rawLine {
	lines := make([]rawLine, len(texts))
	for i, t := range texts {
		lines[i] = rawLine{text: t, kind: kindSystem}
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled, since
// those keys drive input history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
