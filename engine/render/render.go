package render

import (
	"sort"
	"strings"

	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

// Room renders a room: its title, one text block made of the description,
// satisfied state descriptions and the room text of visible items and NPCs,
// then the visible exits.
func Room(out *Output, w *types.World, s *types.State, roomID string) {
	room, ok := w.Rooms[roomID]
	if !ok {
		return
	}

	out.Title(room.Name)

	var parts []string
	appendText := func(text string) {
		if t := strings.TrimSpace(text); t != "" {
			parts = append(parts, t)
		}
	}

	appendText(room.Desc)
	for _, sd := range room.StateDescs {
		if rules.ConditionsMet(sd.Conditions, s.Flags) {
			appendText(sd.Text)
		}
	}
	for _, id := range state.ItemsInRoom(w, s, roomID) {
		item := w.Items[id]
		if rules.ConditionsMet(item.Conditions, s.Flags) {
			appendText(item.RoomText)
		}
	}
	for _, id := range state.NpcsInRoom(w, s, roomID) {
		npc := w.Npcs[id]
		if rules.ConditionsMet(npc.Conditions, s.Flags) {
			appendText(npc.RoomText)
		}
	}
	out.Say(strings.Join(parts, " "))

	out.SetExits(ExitLine(room, s.Flags))
}

// ExitLine formats the visible exits of a room, sorted and deduplicated.
func ExitLine(room types.Room, flags map[string]bool) string {
	seen := map[string]bool{}
	var dirs []string
	for _, e := range room.Exits {
		if !rules.ConditionsMet(e.Conditions, flags) || seen[e.Direction] {
			continue
		}
		seen[e.Direction] = true
		dirs = append(dirs, e.Direction)
	}
	if len(dirs) == 0 {
		return "Exits: (none)"
	}
	sort.Strings(dirs)
	return "Exits: " + strings.Join(dirs, ", ")
}

// DependsOnAny reports whether the rendering of a room could differ after
// the given flags changed: a state description, an exit, or a visible item
// or NPC present in the room is conditioned on one of them.
func DependsOnAny(w *types.World, s *types.State, roomID string, changed []string) bool {
	if len(changed) == 0 {
		return false
	}
	room, ok := w.Rooms[roomID]
	if !ok {
		return false
	}

	set := make(map[string]bool, len(changed))
	for _, f := range changed {
		set[f] = true
	}

	for _, sd := range room.StateDescs {
		if rules.References(sd.Conditions, set) {
			return true
		}
	}
	for _, e := range room.Exits {
		if rules.References(e.Conditions, set) {
			return true
		}
	}
	for _, id := range state.ItemsInRoom(w, s, roomID) {
		if rules.References(w.Items[id].Conditions, set) {
			return true
		}
	}
	for _, id := range state.NpcsInRoom(w, s, roomID) {
		if rules.References(w.Npcs[id].Conditions, set) {
			return true
		}
	}
	return false
}
