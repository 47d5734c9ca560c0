// Package state manages the mutable game state and the location lookups
// every resolver shares.
package state

import (
	"sort"

	"github.com/nathoo/roomcore/types"
)

// NewState creates a fresh game state from a world, seeding item and NPC
// locations from their declared starting locations.
func NewState(w *types.World) *types.State {
	s := &types.State{
		CurrentRoom:    w.StartRoom,
		Flags:          map[string]bool{},
		ItemLocations:  make(map[string]types.ItemLocation, len(w.Items)),
		NpcLocations:   make(map[string]string, len(w.Npcs)),
		FiredGlobals:   map[string]bool{},
		FiredDialogues: map[string]bool{},
		CommandLog:     []string{},
	}
	for id, item := range w.Items {
		s.ItemLocations[id] = item.StartLocation
	}
	for id, npc := range w.Npcs {
		s.NpcLocations[id] = npc.StartRoom
	}
	return s
}

// ItemIDs returns item ids in declaration order, or sorted when the world
// carries no order.
func ItemIDs(w *types.World) []string {
	if len(w.ItemOrder) == len(w.Items) {
		return w.ItemOrder
	}
	ids := make([]string, 0, len(w.Items))
	for id := range w.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NpcIDs returns NPC ids in declaration order, or sorted when the world
// carries no order.
func NpcIDs(w *types.World) []string {
	if len(w.NpcOrder) == len(w.Npcs) {
		return w.NpcOrder
	}
	ids := make([]string, 0, len(w.Npcs))
	for id := range w.Npcs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasFlag returns the value of a flag. Unset flags return false.
func HasFlag(s *types.State, name string) bool {
	return s.Flags[name]
}

// Location returns an item's location and whether it still exists.
// Consumed items have no location.
func Location(s *types.State, itemID string) (types.ItemLocation, bool) {
	loc, ok := s.ItemLocations[itemID]
	return loc, ok
}

// ItemInRoom reports whether the item lies directly in the given room.
func ItemInRoom(s *types.State, itemID, roomID string) bool {
	loc, ok := Location(s, itemID)
	return ok && loc.Kind == types.LocRoom && loc.ID == roomID
}

// HasItem reports whether the player carries the item.
func HasItem(s *types.State, itemID string) bool {
	loc, ok := Location(s, itemID)
	return ok && loc.Kind == types.LocInventory
}

// ItemInside reports whether the item sits directly in the given container.
func ItemInside(s *types.State, itemID, containerID string) bool {
	loc, ok := Location(s, itemID)
	return ok && loc.Kind == types.LocItem && loc.ID == containerID
}

// Contents returns the ids of items directly inside a container, in
// declaration order.
func Contents(w *types.World, s *types.State, containerID string) []string {
	var result []string
	for _, id := range ItemIDs(w) {
		if ItemInside(s, id, containerID) {
			result = append(result, id)
		}
	}
	return result
}

// Occupants counts the items directly inside a container.
func Occupants(s *types.State, containerID string) int {
	n := 0
	for _, loc := range s.ItemLocations {
		if loc.Kind == types.LocItem && loc.ID == containerID {
			n++
		}
	}
	return n
}

// ItemsInRoom returns the ids of items lying directly in a room, in
// declaration order.
func ItemsInRoom(w *types.World, s *types.State, roomID string) []string {
	var result []string
	for _, id := range ItemIDs(w) {
		if ItemInRoom(s, id, roomID) {
			result = append(result, id)
		}
	}
	return result
}

// Carried returns the ids of carried items, in declaration order.
func Carried(w *types.World, s *types.State) []string {
	var result []string
	for _, id := range ItemIDs(w) {
		if HasItem(s, id) {
			result = append(result, id)
		}
	}
	return result
}

// NpcsInRoom returns the ids of NPCs standing in a room, in declaration order.
func NpcsInRoom(w *types.World, s *types.State, roomID string) []string {
	var result []string
	for _, id := range NpcIDs(w) {
		if s.NpcLocations[id] == roomID {
			result = append(result, id)
		}
	}
	return result
}

// Encloses reports whether ancestorID is the container holding itemID, or
// holds it transitively. The walk stops after len(items) steps so a
// corrupted cycle cannot hang a turn.
func Encloses(w *types.World, s *types.State, ancestorID, itemID string) bool {
	current := itemID
	for i := 0; i <= len(w.Items); i++ {
		loc, ok := s.ItemLocations[current]
		if !ok || loc.Kind != types.LocItem {
			return false
		}
		if loc.ID == ancestorID {
			return true
		}
		current = loc.ID
	}
	return false
}
