package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/roomcore/engine/dialogue"
	"github.com/nathoo/roomcore/engine/effects"
	"github.com/nathoo/roomcore/engine/resolve"
	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

// blockMovement checks the NPCs in the current room, in declaration order,
// for one that blocks the attempted exit. The first qualifying NPC blocks;
// a foe then rolls to attack using the action counter as seed.
func (e *Engine) blockMovement(t *turn, exit types.Exit) bool {
	npc, ok := e.blockingNpc(exit)
	if !ok {
		return false
	}

	text := strings.TrimSpace(npc.BlockText)
	if text == "" {
		text = fmt.Sprintf("%s blocks your way.", npc.Name)
	}
	t.out.Say(text)
	t.tracef("npc: %s blocks %q", npc.ID, exit.Direction)

	if npc.Foe && npc.AttackChance > 0 {
		roll := RollPercent(e.State.ActionCount, npc.ID)
		t.tracef("npc: %s attack roll %d vs %d (seed %d)", npc.ID, roll, npc.AttackChance, e.State.ActionCount)
		if roll < uint64(npc.AttackChance) {
			attack := strings.TrimSpace(npc.AttackText)
			if attack == "" {
				attack = fmt.Sprintf("%s attacks you!", npc.Name)
			}
			t.out.Event(attack)
			effects.Apply(e.State.Flags, npc.AttackEffects)
		}
	}
	return true
}

func (e *Engine) blockingNpc(exit types.Exit) (types.Npc, bool) {
	for _, id := range state.NpcsInRoom(e.World, e.State, e.State.CurrentRoom) {
		npc := e.World.Npcs[id]
		if !npc.BlockMovement {
			continue
		}
		if !rules.ConditionsMet(npc.Conditions, e.State.Flags) || !rules.ConditionsMet(npc.BlockConditions, e.State.Flags) {
			continue
		}
		if len(npc.BlockExits) > 0 && !exitListed(exit, npc.BlockExits) {
			continue
		}
		return npc, true
	}
	return types.Npc{}, false
}

func exitListed(exit types.Exit, list []string) bool {
	for _, b := range list {
		if strings.EqualFold(b, exit.Direction) {
			return true
		}
		for _, v := range exit.Verbs {
			if strings.EqualFold(b, v) {
				return true
			}
		}
	}
	return false
}

// roamNpcs moves roaming NPCs after a successful player move, seeded by the
// turn counter. A target room missing from the world is skipped.
func (e *Engine) roamNpcs(t *turn) {
	seed := e.State.TurnCount
	for _, id := range state.NpcIDs(e.World) {
		roam := e.World.Npcs[id].Roam
		if roam == nil || !roam.Enabled || len(roam.AllowedRooms) == 0 || roam.Chance <= 0 {
			continue
		}
		if !chanceHits(seed, id, roam.Chance) {
			continue
		}
		target := roam.AllowedRooms[Index(seed, id, len(roam.AllowedRooms))]
		if _, ok := e.World.Rooms[target]; !ok {
			t.tracef("roam: %s skipped unknown room %q", id, target)
			continue
		}
		effects.MoveNpc(e.State, id, target)
		t.tracef("roam: %s -> %s", id, target)
	}
}

// findNpc resolves an NPC in the current room. A tie is reported to the
// player and returns handled with an empty id; handled is false only when
// no NPC matched at all.
func (e *Engine) findNpc(t *turn, query string) (npcID string, handled bool) {
	id, err := resolve.FindNpc(e.World, e.State, query)
	if err == nil {
		return id, true
	}
	var amb *resolve.AmbiguityError
	if errors.As(err, &amb) {
		t.tracef("npc: %v", amb)
		t.out.Say("Be more specific.")
		return "", true
	}
	return "", false
}

// tryNpcAction evaluates the actions of the NPC the input mentions.
// Required inventory of an executed NPC action is consumed.
func (e *Engine) tryNpcAction(t *turn, input string) bool {
	id, handled := e.findNpc(t, input)
	if id == "" {
		return handled
	}
	npc := e.World.Npcs[id]
	return e.runActions(t, "npc "+id, npc.Actions, input, true)
}

func (e *Engine) talk(t *turn, query string) {
	if query == "" {
		t.out.Say("Talk to whom?")
		return
	}
	id, handled := e.findNpc(t, query)
	if handled && id == "" {
		return
	}
	if !handled {
		t.out.Say("You don't see anyone like that here.")
		return
	}

	npc := e.World.Npcs[id]
	if len(npc.Dialogue) == 0 {
		t.out.Say(fmt.Sprintf("%s has nothing to say.", npc.Name))
		return
	}
	text, ok := dialogue.Talk(npc, e.State)
	if !ok {
		t.out.Say(fmt.Sprintf("%s has nothing new to say.", npc.Name))
		return
	}
	t.out.Say(text)
}

func (e *Engine) examineNpc(t *turn, id string) {
	npc := e.World.Npcs[id]
	if text := strings.TrimSpace(npc.ExamineText); text != "" {
		t.out.Say(text)
	} else {
		t.out.Say(fmt.Sprintf("You see nothing special about %s.", npc.Name))
	}

	var held []string
	for _, itemID := range state.ItemIDs(e.World) {
		loc, ok := state.Location(e.State, itemID)
		if !ok || loc.Kind != types.LocNpc || loc.ID != id {
			continue
		}
		item := e.World.Items[itemID]
		if rules.ConditionsMet(item.Conditions, e.State.Flags) {
			held = append(held, item.Name)
		}
	}
	if len(held) > 0 {
		sort.Strings(held)
		t.out.Say(fmt.Sprintf("%s is holding: %s.", npc.Name, strings.Join(held, ", ")))
	}
}

// give hands a carried item to an NPC. The NPC's own actions get the first
// chance to react, which is how bribes and trades are scripted.
func (e *Engine) give(t *turn, intent types.Intent) {
	if intent.Rest == "" {
		t.out.Say("Give what to whom?")
		return
	}
	if !hasWord(intent.Rest, "to") {
		t.out.Say("Give it to whom?")
		return
	}
	if intent.Object == "" || intent.Target == "" {
		t.out.Say("I don't understand who you want to give that to.")
		return
	}

	npcID, handled := e.findNpc(t, intent.Target)
	if handled && npcID == "" {
		return
	}
	if !handled {
		t.out.Say("You don't see anyone like that here.")
		return
	}
	npc := e.World.Npcs[npcID]

	if e.runActions(t, "npc "+npcID, npc.Actions, intent.Raw, true) {
		return
	}

	itemID, ok := e.findItem(t, intent.Object, resolve.Carried(), resolve.IgnoreConditions, "You aren't carrying that.", "Be more specific.")
	if !ok {
		return
	}
	item := e.World.Items[itemID]
	effects.MoveItem(e.State, itemID, effects.HeldBy(npcID))
	t.out.Say(fmt.Sprintf("%s takes the %s.", npc.Name, item.Name))
}

// takeFromNpc takes an item held by an NPC. Foes keep what they hold.
func (e *Engine) takeFromNpc(t *turn, npcID, query string) {
	npc := e.World.Npcs[npcID]
	if npc.Foe {
		t.out.Say(fmt.Sprintf("%s won't let you take anything.", npc.Name))
		return
	}

	if query == "all" {
		var taken bool
		for _, id := range state.ItemIDs(e.World) {
			loc, ok := state.Location(e.State, id)
			if !ok || loc.Kind != types.LocNpc || loc.ID != npcID {
				continue
			}
			item := e.World.Items[id]
			if !item.Portable || !rules.ConditionsMet(item.Conditions, e.State.Flags) {
				continue
			}
			effects.MoveItem(e.State, id, effects.Inventory())
			t.out.Say(fmt.Sprintf("You take the %s from %s.", item.Name, npc.Name))
			taken = true
		}
		if !taken {
			t.out.Say(fmt.Sprintf("%s has nothing you can take.", npc.Name))
		}
		return
	}

	itemID, ok := e.findItem(t, query, resolve.HeldBy(npcID), resolve.RespectConditions,
		fmt.Sprintf("%s isn't holding anything like that.", npc.Name), "Be more specific.")
	if !ok {
		return
	}
	item := e.World.Items[itemID]
	if !item.Portable {
		t.out.Say(fmt.Sprintf("You can't take the %s.", item.Name))
		return
	}
	effects.MoveItem(e.State, itemID, effects.Inventory())
	t.out.Say(fmt.Sprintf("You take the %s from %s.", item.Name, npc.Name))
}
