// Package resolve maps free-text names to item and NPC ids by whole-word
// overlap scoring.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/roomcore/engine/parser"
	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

// AmbiguityError indicates several entities tied for the best score.
// Candidates are display names sorted for stable listing; the tie is never
// resolved on the player's behalf.
type AmbiguityError struct {
	Query      string
	IDs        []string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("which %s? (%s)", e.Query, strings.Join(e.Candidates, ", "))
}

// NotFoundError indicates no entity matched the query.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you don't see %q here", e.Query)
}

// Mode controls whether an item's own visibility conditions gate matching.
type Mode int

const (
	// RespectConditions skips items whose conditions are unmet.
	RespectConditions Mode = iota
	// IgnoreConditions matches on possession alone (drop, store, give).
	IgnoreConditions
)

// Scope decides whether an item at its current location is a candidate.
type Scope func(item *types.Item, loc types.ItemLocation) bool

// InRoom accepts items lying directly in the room.
func InRoom(roomID string) Scope {
	return func(_ *types.Item, loc types.ItemLocation) bool {
		return loc.Kind == types.LocRoom && loc.ID == roomID
	}
}

// Carried accepts items in the player's inventory.
func Carried() Scope {
	return func(_ *types.Item, loc types.ItemLocation) bool {
		return loc.Kind == types.LocInventory
	}
}

// RoomOrCarried accepts items in the room or in the inventory.
func RoomOrCarried(roomID string) Scope {
	return func(_ *types.Item, loc types.ItemLocation) bool {
		return loc.Kind == types.LocInventory || (loc.Kind == types.LocRoom && loc.ID == roomID)
	}
}

// Inside accepts items sitting directly in a container.
func Inside(containerID string) Scope {
	return func(_ *types.Item, loc types.ItemLocation) bool {
		return loc.Kind == types.LocItem && loc.ID == containerID
	}
}

// HeldBy accepts items held by an NPC.
func HeldBy(npcID string) Scope {
	return func(_ *types.Item, loc types.ItemLocation) bool {
		return loc.Kind == types.LocNpc && loc.ID == npcID
	}
}

// Containers narrows a scope to container items.
func Containers(inner Scope) Scope {
	return func(item *types.Item, loc types.ItemLocation) bool {
		return item.Kind == types.KindContainer && item.Container != nil && inner(item, loc)
	}
}

// ContainersWithVerb narrows a scope to containers accepting the store verb.
func ContainersWithVerb(inner Scope, verb string) Scope {
	return func(item *types.Item, loc types.ItemLocation) bool {
		if item.Kind != types.KindContainer || item.Container == nil || !inner(item, loc) {
			return false
		}
		return AcceptsVerb(item.Container, verb)
	}
}

// AcceptsVerb reports whether a container accepts a store verb.
func AcceptsVerb(props *types.ContainerProps, verb string) bool {
	for _, v := range props.Verbs {
		if strings.EqualFold(v, verb) {
			return true
		}
	}
	return false
}

// Excluding drops one id from a scope.
func Excluding(inner Scope, itemID string) Scope {
	return func(item *types.Item, loc types.ItemLocation) bool {
		return item.ID != itemID && inner(item, loc)
	}
}

// FindItem resolves a query to a single item id among in-scope items.
func FindItem(w *types.World, s *types.State, query string, scope Scope, mode Mode) (string, error) {
	words := parser.Tokenize(query)
	if len(words) == 0 {
		return "", &NotFoundError{Query: query}
	}

	var scored []candidate
	for _, id := range state.ItemIDs(w) {
		loc, ok := state.Location(s, id)
		if !ok {
			continue
		}
		item := w.Items[id]
		if !scope(&item, loc) {
			continue
		}
		if mode == RespectConditions && !rules.ConditionsMet(item.Conditions, s.Flags) {
			continue
		}
		if score := Score(words, item.Name, item.Aliases); score > 0 {
			scored = append(scored, candidate{id: id, name: item.Name, score: score})
		}
	}
	return pick(query, scored)
}

// FindNpc resolves a query to a single visible NPC in the current room.
func FindNpc(w *types.World, s *types.State, query string) (string, error) {
	words := parser.Tokenize(query)
	if len(words) == 0 {
		return "", &NotFoundError{Query: query}
	}

	var scored []candidate
	for _, id := range state.NpcsInRoom(w, s, s.CurrentRoom) {
		npc := w.Npcs[id]
		if !rules.ConditionsMet(npc.Conditions, s.Flags) {
			continue
		}
		if score := Score(words, npc.Name, npc.Aliases); score > 0 {
			scored = append(scored, candidate{id: id, name: npc.Name, score: score})
		}
	}
	return pick(query, scored)
}

// Score counts query words that appear as whole words in the name or any
// alias.
func Score(queryWords []string, name string, aliases []string) int {
	known := NameWords(name, aliases)
	score := 0
	for _, qw := range queryWords {
		if known[qw] {
			score++
		}
	}
	return score
}

// NameWords returns the lowercase word set of a name and its aliases.
func NameWords(name string, aliases []string) map[string]bool {
	words := map[string]bool{}
	for _, w := range parser.Tokenize(name) {
		words[w] = true
	}
	for _, a := range aliases {
		for _, w := range parser.Tokenize(a) {
			words[w] = true
		}
	}
	return words
}

type candidate struct {
	id    string
	name  string
	score int
}

func pick(query string, scored []candidate) (string, error) {
	if len(scored) == 0 {
		return "", &NotFoundError{Query: query}
	}

	best := 0
	for _, c := range scored {
		if c.score > best {
			best = c.score
		}
	}
	var top []candidate
	for _, c := range scored {
		if c.score == best {
			top = append(top, c)
		}
	}
	if len(top) == 1 {
		return top[0].id, nil
	}

	sort.SliceStable(top, func(i, j int) bool { return top[i].name < top[j].name })
	amb := &AmbiguityError{Query: query}
	for _, c := range top {
		amb.IDs = append(amb.IDs, c.id)
		amb.Candidates = append(amb.Candidates, c.name)
	}
	return "", amb
}
