// Roomcore plays a data-driven room-and-item text adventure.
// Usage: roomcore [--version] [--plain] [--script <file>] [--trace] [--config <file>] [<world>]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/nathoo/roomcore/cli"
	"github.com/nathoo/roomcore/config"
	"github.com/nathoo/roomcore/engine"
	"github.com/nathoo/roomcore/loader"
	"github.com/nathoo/roomcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: roomcore [--version] [--plain] [--script <file>] [--trace] [--config <file>] [<world>]"

func main() {
	log.SetFlags(0)
	log.SetPrefix("roomcore: ")

	var (
		plain, trace bool
		worldPath    string
		scriptFile   string
		configFile   = "roomcore.yaml"
	)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("roomcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--config":
			if i+1 >= len(args) {
				log.Fatalf("%s requires a file path", args[i])
			}
			if args[i] == "--script" {
				scriptFile = args[i+1]
			} else {
				configFile = args[i+1]
			}
			i++
		default:
			if worldPath == "" {
				worldPath = args[i]
			}
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if worldPath == "" {
		worldPath = cfg.World
	}
	if worldPath == "" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	plain = plain || cfg.Plain
	trace = trace || cfg.Trace

	world, warnings, err := loader.Load(worldPath)
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}
	if err != nil {
		log.Fatalf("loading world: %v", err)
	}

	eng := engine.New(world)

	// Script mode: read commands from a file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			log.Fatalf("opening script: %v", err)
		}
		defer f.Close()
		c := newCLI(eng, cfg, trace)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use the plain CLI when asked or when stdout is not a terminal.
	if plain || !isTerminal() {
		newCLI(eng, cfg, trace).Run()
		return
	}

	opts := tui.Options{Prompt: cfg.Prompt, HistorySize: cfg.HistorySize, Trace: trace}
	if err := tui.Run(eng, opts); err != nil {
		log.Fatalf("tui: %v", err)
	}
}

func newCLI(eng *engine.Engine, cfg *config.Config, trace bool) *cli.CLI {
	c := cli.New(eng)
	c.Prompt = cfg.Prompt
	c.Trace = trace
	c.EchoInput = cfg.Echo
	return c
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
