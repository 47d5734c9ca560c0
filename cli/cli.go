// Package cli provides line-oriented terminal I/O, output formatting, and
// meta-command dispatch for the roomcore engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/roomcore/engine"
	"github.com/nathoo/roomcore/engine/dialogue"
	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Prompt    string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
		Prompt: "> ",
	}
}

// Run starts the game loop. It shows the world banner, renders the starting
// room, then loops: prompt → input → dispatch → output, until the input ends
// or the player quits.
func (c *CLI) Run() {
	w := c.Engine.World
	if w.Name != "" {
		c.printLine(fmt.Sprintf("Welcome to %s!", w.Name))
	}
	if w.Desc != "" {
		c.printLine(w.Desc)
	}
	c.printLine("Type 'look' to look around, 'quit' to exit. /help lists system commands.")

	c.printResult(c.Engine.Start())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print(c.Prompt)
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)
		if c.Trace {
			c.printTrace(result)
		}
		if result.Quit {
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		for _, line := range HelpLines {
			c.printLine(line)
		}

	case "/state":
		for _, line := range StateLines(c.Engine) {
			c.printSystem(line)
		}

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// HelpLines is the /help text shared by the line and full-screen front ends.
var HelpLines = []string{
	"System:",
	"  /quit         Exit game",
	"  /help         Show this help",
	"  /state        Debug: dump current state",
	"  /trace        Toggle resolver trace output",
	"",
	"Game commands:",
	"  look (l)                    Describe the room",
	"  examine <thing> (x)         Look closely at something",
	"  <direction>                 Move (n/s/e/w/u/d work when unambiguous)",
	"  take/get <item> [from <x>]  Pick something up",
	"  take all [from <x>]         Pick up everything you can",
	"  drop <item> / drop all      Put something down",
	"  put <item> in <container>   Store something",
	"  talk/speak [to] <npc>       Talk to someone",
	"  give <item> to <npc>        Give an item to someone",
	"  inventory (i)               Check what you're carrying",
	"  again (g)                   Repeat your last command",
	"  quit                        Leave the game",
}

// StateLines summarizes the engine state for /state.
func StateLines(eng *engine.Engine) []string {
	s := eng.State

	var carried []string
	for _, id := range state.Carried(eng.World, s) {
		carried = append(carried, eng.ItemName(id))
	}

	var flags []string
	for f := range s.Flags {
		flags = append(flags, f)
	}
	sort.Strings(flags)

	lines := []string{
		fmt.Sprintf("Room: %s", s.CurrentRoom),
		fmt.Sprintf("Turns: %d  Actions: %d", s.TurnCount, s.ActionCount),
		fmt.Sprintf("Inventory: %s", joinOrNone(carried)),
		fmt.Sprintf("Flags: %s", joinOrNone(flags)),
	}

	// Open dialogue entries of the NPCs present.
	for _, id := range state.NpcsInRoom(eng.World, s, s.CurrentRoom) {
		npc := eng.World.Npcs[id]
		if len(npc.Dialogue) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("Dialogue %s: %s", npc.Name, joinOrNone(dialogue.Available(npc, s))))
	}
	return lines
}

func joinOrNone(list []string) string {
	if len(list) == 0 {
		return "(none)"
	}
	return strings.Join(list, ", ")
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range result.Trace {
		c.printSystem("[trace] " + line)
	}
	if len(result.ChangedFlags) > 0 {
		c.printSystem("[trace] changed: " + strings.Join(result.ChangedFlags, ", "))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range Format(result.Segments) {
		c.printLine(line)
	}
}

// Format lays segments out as lines. Titles and the exit line get a blank
// line before them; the first event after other output is set apart too.
func Format(segments []types.Segment) []string {
	var lines []string
	startedEvents := false
	for _, seg := range segments {
		switch seg.Kind {
		case types.SegTitle, types.SegExits:
			lines = append(lines, "", seg.Text)
		case types.SegEvent:
			if !startedEvents && len(lines) > 0 {
				lines = append(lines, "")
			}
			startedEvents = true
			lines = append(lines, seg.Text)
		default:
			lines = append(lines, seg.Text)
		}
	}
	return lines
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
