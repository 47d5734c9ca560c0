package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled world for referential integrity. It always
// returns a ValidationError; the world is usable when Errors is empty.
func validate(w *types.World, warnings []string) *ValidationError {
	ve := &ValidationError{Warnings: append([]string(nil), warnings...)}

	if w.ID == "" {
		ve.errorf("world id may not be empty")
	}
	if len(w.Rooms) == 0 {
		ve.errorf("world has no rooms")
	}
	if w.StartRoom == "" {
		ve.errorf("start_room may not be empty")
	} else if _, ok := w.Rooms[w.StartRoom]; !ok {
		ve.errorf("start_room %q not found among rooms", w.StartRoom)
	}

	for _, roomID := range sortedKeys(w.Rooms) {
		room := w.Rooms[roomID]
		for _, exit := range room.Exits {
			if strings.TrimSpace(exit.Direction) == "" {
				ve.errorf("room %q has an exit with an empty direction", roomID)
			}
			if _, ok := w.Rooms[exit.Target]; !ok {
				ve.errorf("room %q exit %q targets missing room %q", roomID, exit.Direction, exit.Target)
			}
		}
		validateActions(w, room.Actions, fmt.Sprintf("room %q", roomID), ve)
	}

	for _, itemID := range state.ItemIDs(w) {
		validateItem(w, w.Items[itemID], ve)
	}
	validateContainment(w, ve)

	for _, npcID := range state.NpcIDs(w) {
		npc := w.Npcs[npcID]
		if _, ok := w.Rooms[npc.StartRoom]; !ok {
			ve.errorf("npc %q start_room %q not found", npcID, npc.StartRoom)
		}
		for _, ex := range npc.BlockExits {
			if strings.TrimSpace(ex) == "" {
				ve.errorf("npc %q has an empty block_exits entry", npcID)
			}
		}
		if npc.Roam != nil {
			for _, r := range npc.Roam.AllowedRooms {
				if _, ok := w.Rooms[r]; !ok {
					ve.errorf("npc %q roam_rooms references missing room %q", npcID, r)
				}
			}
		}
		validateActions(w, npc.Actions, fmt.Sprintf("npc %q", npcID), ve)
	}

	validateActions(w, w.GlobalActions, "global actions", ve)

	for _, gc := range w.GlobalConditions {
		for _, r := range gc.AllowedRooms {
			if _, ok := w.Rooms[r]; !ok {
				ve.errorf("global_condition %q allowed_rooms references missing room %q", gc.ID, r)
			}
		}
		for _, r := range gc.DisallowedRooms {
			if _, ok := w.Rooms[r]; !ok {
				ve.errorf("global_condition %q disallowed_rooms references missing room %q", gc.ID, r)
			}
		}
	}

	return ve
}

func validateItem(w *types.World, item types.Item, ve *ValidationError) {
	loc := item.StartLocation
	switch loc.Kind {
	case types.LocRoom:
		if _, ok := w.Rooms[loc.ID]; !ok {
			ve.errorf("item %q start_location room %q not found", item.ID, loc.ID)
		}
	case types.LocItem:
		parent, ok := w.Items[loc.ID]
		switch {
		case loc.ID == item.ID:
			ve.errorf("item %q cannot start inside itself", item.ID)
		case !ok:
			ve.errorf("item %q start_location item %q not found", item.ID, loc.ID)
		case parent.Kind != types.KindContainer:
			ve.errorf("item %q starts inside %q, which is not a container", item.ID, loc.ID)
		}
	case types.LocNpc:
		if _, ok := w.Npcs[loc.ID]; !ok {
			ve.errorf("item %q start_location npc %q not found", item.ID, loc.ID)
		}
	}

	if item.Kind == types.KindContainer && item.Container != nil {
		for _, needed := range item.Container.CompleteWhen {
			if _, ok := w.Items[needed]; !ok {
				ve.errorf("container %q complete_when references missing item %q", item.ID, needed)
			}
		}
		if len(item.Container.CompleteWhen) > 0 && item.Container.CompleteFlag == "" {
			ve.warnf("container %q has complete_when but no complete_flag", item.ID)
		}
	}
}

// validateContainment rejects start locations that nest items in a cycle.
func validateContainment(w *types.World, ve *ValidationError) {
	for _, id := range state.ItemIDs(w) {
		seen := map[string]bool{id: true}
		current := id
		for {
			loc := w.Items[current].StartLocation
			if loc.Kind != types.LocItem {
				break
			}
			if _, ok := w.Items[loc.ID]; !ok || loc.ID == current {
				break
			}
			if seen[loc.ID] {
				if loc.ID == id {
					ve.errorf("item %q is part of a containment cycle", id)
				}
				break
			}
			seen[loc.ID] = true
			current = loc.ID
		}
	}
}

func validateActions(w *types.World, actions []types.Action, label string, ve *ValidationError) {
	for _, action := range actions {
		for _, req := range action.RequiresInventory {
			if _, ok := w.Items[req]; !ok {
				ve.errorf("%s action %q requires missing item %q", label, action.ID, req)
			}
		}
		for _, req := range action.ScopeRequirements {
			if _, ok := w.Items[req]; !ok {
				ve.errorf("%s action %q scope_requirements references missing item %q", label, action.ID, req)
			}
		}
		if len(action.Verbs) == 0 {
			ve.warnf("%s action %q has no verbs and can never match", label, action.ID)
		}
		for _, verb := range action.Verbs {
			if strings.TrimSpace(verb) == "" {
				ve.errorf("%s action %q has an empty verb entry", label, action.ID)
			}
		}
		for _, noun := range action.Nouns {
			if strings.TrimSpace(noun) == "" {
				ve.errorf("%s action %q has an empty noun entry", label, action.ID)
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
