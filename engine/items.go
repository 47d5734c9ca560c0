package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/roomcore/engine/effects"
	"github.com/nathoo/roomcore/engine/resolve"
	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

// findItem resolves an item and says notFound or ambiguous on failure.
func (e *Engine) findItem(t *turn, query string, scope resolve.Scope, mode resolve.Mode, notFound, ambiguous string) (string, bool) {
	id, err := resolve.FindItem(e.World, e.State, query, scope, mode)
	if err == nil {
		return id, true
	}
	t.tracef("locate %q: %v", query, err)
	var amb *resolve.AmbiguityError
	if errors.As(err, &amb) {
		t.out.Say(ambiguous)
	} else {
		t.out.Say(notFound)
	}
	return "", false
}

func (e *Engine) inventory(t *turn) {
	carried := state.Carried(e.World, e.State)
	if len(carried) == 0 {
		t.out.Say("You are carrying nothing.")
		return
	}

	items := make([]types.Item, 0, len(carried))
	for _, id := range carried {
		items = append(items, e.World.Items[id])
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	t.out.Say("You are carrying:")
	for _, item := range items {
		line := strings.TrimSpace(item.InventoryText)
		if line == "" {
			line = item.Name
		}
		t.out.Say("  " + line)
	}
}

// take handles "take X". When no room item matches, the input is offered to
// the action resolvers before giving up, so scripted scenery still responds.
func (e *Engine) take(t *turn, intent types.Intent) {
	if intent.Object == "" {
		t.out.Say("Take what?")
		return
	}
	if intent.Object == "all" {
		e.takeAll(t)
		return
	}

	id, err := resolve.FindItem(e.World, e.State, intent.Object, resolve.InRoom(e.State.CurrentRoom), resolve.RespectConditions)
	var amb *resolve.AmbiguityError
	switch {
	case errors.As(err, &amb):
		t.tracef("take: %v", amb)
		t.out.Say("Be more specific.")
		return
	case err != nil:
		if e.tryActionChain(t, intent.Raw) {
			return
		}
		t.out.Say("You don't see that here.")
		return
	}

	item := e.World.Items[id]
	if !item.Portable {
		t.out.Say(fmt.Sprintf("You can't take the %s.", item.Name))
		return
	}
	effects.MoveItem(e.State, id, effects.Inventory())
	t.out.Say(fmt.Sprintf("You take the %s.", item.Name))
}

func (e *Engine) takeAll(t *turn) {
	var taken bool
	for _, id := range state.ItemsInRoom(e.World, e.State, e.State.CurrentRoom) {
		item := e.World.Items[id]
		if !item.Portable || !rules.ConditionsMet(item.Conditions, e.State.Flags) {
			continue
		}
		effects.MoveItem(e.State, id, effects.Inventory())
		t.out.Say(fmt.Sprintf("You take the %s.", item.Name))
		taken = true
	}
	if !taken {
		t.out.Say("There is nothing here you can take.")
	}
}

// drop ignores item visibility: possession alone is enough.
func (e *Engine) drop(t *turn, intent types.Intent) {
	if intent.Object == "" {
		t.out.Say("Drop what?")
		return
	}
	if intent.Object == "all" {
		e.dropAll(t)
		return
	}

	id, ok := e.findItem(t, intent.Object, resolve.Carried(), resolve.IgnoreConditions, "You aren't carrying that.", "Be more specific.")
	if !ok {
		return
	}
	item := e.World.Items[id]
	effects.MoveItem(e.State, id, effects.InRoom(e.State.CurrentRoom))
	t.out.Say(fmt.Sprintf("You drop the %s.", item.Name))
}

func (e *Engine) dropAll(t *turn) {
	var dropped bool
	for _, id := range state.Carried(e.World, e.State) {
		item := e.World.Items[id]
		if !item.Portable {
			continue
		}
		effects.MoveItem(e.State, id, effects.InRoom(e.State.CurrentRoom))
		t.out.Say(fmt.Sprintf("You drop the %s.", item.Name))
		dropped = true
	}
	if !dropped {
		t.out.Say("You aren't carrying anything you can drop.")
	}
}

// examine looks in the inventory first, then the room, then at NPCs.
func (e *Engine) examine(t *turn, intent types.Intent) {
	query := intent.Object
	if query == "" {
		t.out.Say("Examine what?")
		return
	}

	var amb *resolve.AmbiguityError

	id, err := resolve.FindItem(e.World, e.State, query, resolve.Carried(), resolve.IgnoreConditions)
	if errors.As(err, &amb) {
		t.out.Say("Be more specific.")
		return
	}
	if err != nil {
		id, err = resolve.FindItem(e.World, e.State, query, resolve.InRoom(e.State.CurrentRoom), resolve.RespectConditions)
		if errors.As(err, &amb) {
			t.out.Say("Be more specific.")
			return
		}
	}
	if err == nil {
		e.examineItem(t, id)
		return
	}

	if npcID, handled := e.findNpc(t, query); handled {
		if npcID != "" {
			e.examineNpc(t, npcID)
		}
		return
	}

	if e.tryActionChain(t, intent.Raw) {
		return
	}
	t.out.Say("You see nothing like that here.")
}

func (e *Engine) examineItem(t *turn, id string) {
	item := e.World.Items[id]
	if text := strings.TrimSpace(item.ExamineText); text != "" {
		t.out.Say(text)
	} else {
		t.out.Say(fmt.Sprintf("You see nothing special about the %s.", item.Name))
	}

	if item.Kind != types.KindContainer || item.Container == nil {
		return
	}
	if !containerOpen(item.Container, e.State.Flags) {
		t.out.Say(closedText(item.Container))
		return
	}

	var names []string
	for _, inner := range state.Contents(e.World, e.State, id) {
		other := e.World.Items[inner]
		if rules.ConditionsMet(other.Conditions, e.State.Flags) {
			names = append(names, other.Name)
		}
	}
	if len(names) == 0 {
		t.out.Say("It is currently empty.")
		return
	}
	sort.Strings(names)
	t.out.Say(fmt.Sprintf("Inside it you see: %s.", strings.Join(names, ", ")))
}

// hasWord reports whether s contains w as a whole word.
func hasWord(s, w string) bool {
	for _, f := range strings.Fields(s) {
		if f == w {
			return true
		}
	}
	return false
}
