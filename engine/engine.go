// Package engine provides the Step() orchestrator that wires together
// parsing, the built-in verbs, the resolver chain and the global-condition
// pass into a single turn.
package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/roomcore/engine/effects"
	"github.com/nathoo/roomcore/engine/events"
	"github.com/nathoo/roomcore/engine/parser"
	"github.com/nathoo/roomcore/engine/render"
	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

// Engine holds the world and the mutable state. It is not safe for
// concurrent use.
type Engine struct {
	World *types.World
	State *types.State
}

// New creates an engine with a fresh state for the world.
func New(w *types.World) *Engine {
	return &Engine{
		World: w,
		State: state.NewState(w),
	}
}

// turn collects everything produced while processing one command.
type turn struct {
	out      render.Output
	rendered bool
	trace    []string
}

func (t *turn) tracef(format string, args ...any) {
	t.trace = append(t.trace, fmt.Sprintf(format, args...))
}

// Start places the player in the start room and renders it.
func (e *Engine) Start() types.Result {
	e.State.CurrentRoom = e.World.StartRoom
	var t turn
	render.Room(&t.out, e.World, e.State, e.State.CurrentRoom)
	return types.Result{Segments: t.out.Segments()}
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	input = strings.TrimSpace(input)

	// 1. Empty input costs nothing.
	if input == "" {
		return types.Result{Segments: []types.Segment{{Kind: types.SegText, Text: "What do you want to do?"}}}
	}

	// 2. Count and log the command. The action counter seeds block rolls.
	e.State.ActionCount++
	e.State.CommandLog = append(e.State.CommandLog, input)

	// 3. Parse.
	t := &turn{}
	intent := parser.Parse(input)
	t.tracef("parse: verb=%q object=%q target=%q reserved=%v", intent.Verb, intent.Object, intent.Target, intent.Reserved)

	// 4. Built-in verbs, then the resolver chain.
	quit := e.dispatch(t, intent)

	// 5. Global conditions, then a re-render if they changed what the room
	// shows. This runs on quitting turns too.
	changed := e.fireGlobals(t)

	return types.Result{
		Segments:     t.out.Segments(),
		Quit:         quit,
		ChangedFlags: changed,
		Trace:        t.trace,
	}
}

func (e *Engine) dispatch(t *turn, intent types.Intent) (quit bool) {
	if intent.Reserved {
		switch intent.Verb {
		case "quit":
			t.out.Say("Goodbye.")
			return true
		case "inventory":
			e.inventory(t)
			return false
		case "talk":
			e.talk(t, intent.Object)
			return false
		case "give":
			e.give(t, intent)
			return false
		case "take":
			e.takeCommand(t, intent)
			return false
		case "drop":
			e.drop(t, intent)
			return false
		case "examine":
			e.examine(t, intent)
			return false
		}
	}

	if e.tryStore(t, intent.Verb, intent.Rest) {
		return false
	}

	if _, ok := e.World.Rooms[e.State.CurrentRoom]; !ok {
		t.out.Say(fmt.Sprintf("Error: you are in an unknown room '%s'.", e.State.CurrentRoom))
		return true
	}

	if intent.Reserved && intent.Verb == "look" {
		render.Room(&t.out, e.World, e.State, e.State.CurrentRoom)
		t.rendered = true
		return false
	}

	from := e.State.CurrentRoom
	if e.tryMovement(t, intent.Raw) {
		// A blocked or ambiguous move already explained itself; no re-render.
		t.rendered = true
		if e.State.CurrentRoom != from {
			e.State.TurnCount++
			e.roamNpcs(t)
			render.Room(&t.out, e.World, e.State, e.State.CurrentRoom)
		}
		return false
	}

	if e.tryActionChain(t, intent.Raw) {
		return false
	}

	t.out.Say("I don't understand that command.")
	return false
}

// takeCommand routes the shapes of "take": plain, all, from an NPC and
// from a container.
func (e *Engine) takeCommand(t *turn, intent types.Intent) {
	if intent.Rest == "" {
		t.out.Say("Take what?")
		return
	}
	if !hasWord(intent.Rest, "from") {
		e.take(t, intent)
		return
	}
	if intent.Object == "" || intent.Target == "" {
		t.out.Say("I don't understand what you want to take from where.")
		return
	}

	if npcID, handled := e.findNpc(t, intent.Target); handled {
		if npcID != "" {
			e.takeFromNpc(t, npcID, intent.Object)
		}
		return
	}

	if intent.Object == "all" {
		e.takeAllFromContainer(t, intent.Target)
		return
	}
	e.takeFromContainer(t, intent.Object, intent.Target)
}

// tryActionChain offers the input to NPC actions, room actions and global
// actions in that order.
func (e *Engine) tryActionChain(t *turn, input string) bool {
	if e.tryNpcAction(t, input) {
		return true
	}
	if room, ok := e.World.Rooms[e.State.CurrentRoom]; ok {
		if e.runActions(t, "room "+room.ID, room.Actions, input, false) {
			return true
		}
	}
	return e.runActions(t, "global", e.World.GlobalActions, input, false)
}

// runActions evaluates one action list. consume removes the required
// inventory of an executed action from play.
func (e *Engine) runActions(t *turn, scope string, actions []types.Action, input string, consume bool) bool {
	outcome := rules.Evaluate(actions, input, e.World, e.State)
	switch outcome.Kind {
	case rules.Execute:
		action := outcome.Action
		t.tracef("%s: execute %q (score %d)", scope, action.ID, outcome.Score)
		t.out.Say(strings.TrimSpace(action.Response))
		effects.Apply(e.State.Flags, action.Effects)
		if consume {
			for _, id := range action.RequiresInventory {
				effects.Consume(e.State, id)
			}
		}
		return true
	case rules.Blocked:
		t.tracef("%s: blocked %q (score %d)", scope, outcome.Action.ID, outcome.Score)
		t.out.Say(outcome.Message)
		return true
	case rules.Ambiguous:
		t.tracef("%s: ambiguous at score %d", scope, outcome.Score)
		t.out.Say(outcome.Message)
		return true
	default:
		return false
	}
}

func (e *Engine) fireGlobals(t *turn) []string {
	before := effects.Snapshot(e.State.Flags)
	for _, text := range events.Fire(e.World, e.State) {
		t.out.Event(text)
	}
	changed := effects.Changed(before, e.State.Flags)
	if len(changed) > 0 {
		t.tracef("globals: changed %v", changed)
	}

	if len(changed) > 0 && !t.rendered && render.DependsOnAny(e.World, e.State, e.State.CurrentRoom, changed) {
		render.Room(&t.out, e.World, e.State, e.State.CurrentRoom)
	}
	return changed
}

// ItemName returns an item's display name, or the id when unknown.
func (e *Engine) ItemName(id string) string {
	if item, ok := e.World.Items[id]; ok {
		return item.Name
	}
	return id
}
