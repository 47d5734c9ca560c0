// Package effects implements centralized state mutation. Flags are only ever
// written through Apply, item locations only through MoveItem and Consume,
// NPC locations only through MoveNpc.
package effects

import (
	"sort"

	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/types"
)

// Apply applies a list of flag effects in order. "flag" sets the flag and
// "!flag" clears it; later entries win over earlier ones.
func Apply(flags map[string]bool, effects []string) {
	for _, eff := range effects {
		flag, negated := rules.SplitCondition(eff)
		if flag == "" {
			continue
		}
		if negated {
			delete(flags, flag)
		} else {
			flags[flag] = true
		}
	}
}

// Snapshot copies the flag set.
func Snapshot(flags map[string]bool) map[string]bool {
	out := make(map[string]bool, len(flags))
	for k, v := range flags {
		if v {
			out[k] = true
		}
	}
	return out
}

// Changed returns the sorted names of flags that differ between two
// snapshots (added or removed).
func Changed(before, after map[string]bool) []string {
	var changed []string
	for f := range after {
		if after[f] && !before[f] {
			changed = append(changed, f)
		}
	}
	for f := range before {
		if before[f] && !after[f] {
			changed = append(changed, f)
		}
	}
	sort.Strings(changed)
	return changed
}

// MoveItem relocates an item.
func MoveItem(s *types.State, itemID string, loc types.ItemLocation) {
	s.ItemLocations[itemID] = loc
}

// Consume removes an item from play. It is neither carried nor visible
// anywhere afterwards.
func Consume(s *types.State, itemID string) {
	delete(s.ItemLocations, itemID)
}

// MoveNpc relocates an NPC to a room.
func MoveNpc(s *types.State, npcID, roomID string) {
	s.NpcLocations[npcID] = roomID
}

// Inventory is the location of carried items.
func Inventory() types.ItemLocation {
	return types.ItemLocation{Kind: types.LocInventory}
}

// InRoom is the location of an item lying in a room.
func InRoom(roomID string) types.ItemLocation {
	return types.ItemLocation{Kind: types.LocRoom, ID: roomID}
}

// InItem is the location of an item inside a container.
func InItem(containerID string) types.ItemLocation {
	return types.ItemLocation{Kind: types.LocItem, ID: containerID}
}

// HeldBy is the location of an item held by an NPC.
func HeldBy(npcID string) types.ItemLocation {
	return types.ItemLocation{Kind: types.LocNpc, ID: npcID}
}
