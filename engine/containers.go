package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/roomcore/engine/effects"
	"github.com/nathoo/roomcore/engine/parser"
	"github.com/nathoo/roomcore/engine/resolve"
	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

const defaultClosedText = "It is currently closed."

// storePreps always split "put X in Y"; container preps are added per world.
var storePreps = []string{"in", "into", "on", "onto", "inside"}

func containerOpen(props *types.ContainerProps, flags map[string]bool) bool {
	return rules.ConditionsMet(props.Conditions, flags)
}

func closedText(props *types.ContainerProps) string {
	if text := strings.TrimSpace(props.ClosedText); text != "" {
		return text
	}
	return defaultClosedText
}

// findContainer resolves a visible container in the room or inventory.
func (e *Engine) findContainer(t *turn, query string) (types.Item, bool) {
	scope := resolve.Containers(resolve.RoomOrCarried(e.State.CurrentRoom))
	id, ok := e.findItem(t, query, scope, resolve.RespectConditions,
		"You don't see any container like that here.", "Be more specific about which container.")
	if !ok {
		return types.Item{}, false
	}
	return e.World.Items[id], true
}

func (e *Engine) takeFromContainer(t *turn, itemQuery, containerQuery string) {
	container, ok := e.findContainer(t, containerQuery)
	if !ok {
		return
	}
	if !containerOpen(container.Container, e.State.Flags) {
		t.out.Say(closedText(container.Container))
		return
	}

	id, ok := e.findItem(t, itemQuery, resolve.Inside(container.ID), resolve.RespectConditions,
		fmt.Sprintf("You don't see anything like that in the %s.", container.Name), "Be more specific about what to take.")
	if !ok {
		return
	}
	item := e.World.Items[id]
	if !item.Portable {
		t.out.Say(fmt.Sprintf("You can't take the %s.", item.Name))
		return
	}
	effects.MoveItem(e.State, id, effects.Inventory())
	t.out.Say(fmt.Sprintf("You take the %s from the %s.", item.Name, container.Name))
}

func (e *Engine) takeAllFromContainer(t *turn, containerQuery string) {
	container, ok := e.findContainer(t, containerQuery)
	if !ok {
		return
	}
	if !containerOpen(container.Container, e.State.Flags) {
		t.out.Say(closedText(container.Container))
		return
	}

	var taken bool
	for _, id := range state.Contents(e.World, e.State, container.ID) {
		item := e.World.Items[id]
		if !item.Portable || !rules.ConditionsMet(item.Conditions, e.State.Flags) {
			continue
		}
		effects.MoveItem(e.State, id, effects.Inventory())
		t.out.Say(fmt.Sprintf("You take the %s from the %s.", item.Name, container.Name))
		taken = true
	}
	if !taken {
		t.out.Say(fmt.Sprintf("There is nothing in the %s you can take.", container.Name))
	}
}

// tryStore handles "<verb> item [prep] container" for any verb that some
// visible container in reach accepts. It returns false when no container
// accepts the verb, so the command can fall through.
func (e *Engine) tryStore(t *turn, verb, rest string) bool {
	verb = strings.ToLower(strings.TrimSpace(verb))
	if verb == "" || !e.anyContainerAccepts(verb) {
		return false
	}
	if rest == "" {
		t.out.Say(fmt.Sprintf("What do you want to %s?", verb))
		return true
	}

	itemQuery, containerQuery := rest, rest
	if before, after, ok := parser.SplitOn(rest, e.prepositions()); ok && before != "" && after != "" {
		itemQuery, containerQuery = before, after
	}

	itemID, ok := e.findItem(t, itemQuery, resolve.Carried(), resolve.IgnoreConditions,
		"You aren't carrying anything like that.", fmt.Sprintf("Be more specific about what you want to %s.", verb))
	if !ok {
		return true
	}
	item := e.World.Items[itemID]
	if !item.Portable {
		t.out.Say(fmt.Sprintf("You can't %s the %s.", verb, item.Name))
		return true
	}

	scope := resolve.Excluding(resolve.ContainersWithVerb(resolve.RoomOrCarried(e.State.CurrentRoom), verb), itemID)
	containerID, err := resolve.FindItem(e.World, e.State, containerQuery, scope, resolve.RespectConditions)
	if err != nil {
		var amb *resolve.AmbiguityError
		if errors.As(err, &amb) {
			t.out.Say(fmt.Sprintf("Be more specific about where you want to %s it.", verb))
		} else {
			t.out.Say(fmt.Sprintf("Where do you want to %s the %s?", verb, item.Name))
		}
		return true
	}
	container := e.World.Items[containerID]
	props := container.Container

	if !containerOpen(props, e.State.Flags) {
		t.out.Say(closedText(props))
		return true
	}
	if state.Encloses(e.World, e.State, itemID, containerID) {
		t.out.Say(fmt.Sprintf("You can't %s the %s inside the %s.", verb, item.Name, container.Name))
		return true
	}
	if props.Capacity != nil && state.Occupants(e.State, containerID) >= *props.Capacity {
		t.out.Say(fmt.Sprintf("The %s is full.", container.Name))
		return true
	}

	effects.MoveItem(e.State, itemID, effects.InItem(containerID))
	prep := props.Prep
	if prep == "" {
		prep = "in"
	}
	t.out.Say(fmt.Sprintf("You %s the %s %s the %s.", verb, item.Name, prep, container.Name))

	e.checkCompletion(t, containerID)
	return true
}

func (e *Engine) anyContainerAccepts(verb string) bool {
	inReach := resolve.ContainersWithVerb(resolve.RoomOrCarried(e.State.CurrentRoom), verb)
	for _, id := range state.ItemIDs(e.World) {
		loc, ok := state.Location(e.State, id)
		if !ok {
			continue
		}
		item := e.World.Items[id]
		if inReach(&item, loc) && rules.ConditionsMet(item.Conditions, e.State.Flags) {
			return true
		}
	}
	return false
}

func (e *Engine) prepositions() map[string]bool {
	preps := make(map[string]bool, len(storePreps))
	for _, p := range storePreps {
		preps[p] = true
	}
	for _, item := range e.World.Items {
		if item.Container != nil && item.Container.Prep != "" {
			preps[strings.ToLower(item.Container.Prep)] = true
		}
	}
	return preps
}

// checkCompletion sets a container's completion flag the first time every
// required item sits directly inside it.
func (e *Engine) checkCompletion(t *turn, containerID string) {
	props := e.World.Items[containerID].Container
	if props == nil || props.CompleteFlag == "" || len(props.CompleteWhen) == 0 {
		return
	}
	if state.HasFlag(e.State, props.CompleteFlag) {
		return
	}
	for _, needed := range props.CompleteWhen {
		if !state.ItemInside(e.State, needed, containerID) {
			return
		}
	}

	effects.Apply(e.State.Flags, []string{props.CompleteFlag})
	t.tracef("container: %s complete, set %q", containerID, props.CompleteFlag)
	t.out.Say(strings.TrimSpace(props.CompleteText))
}
