// Package dialogue implements NPC conversation entries.
package dialogue

import (
	"strings"

	"github.com/nathoo/roomcore/engine/effects"
	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/types"
)

// Key identifies a dialogue entry in State.FiredDialogues.
func Key(npcID, dialogueID string) string {
	return npcID + "::" + dialogueID
}

// Available returns the ids of the entries that could be spoken now, in
// declaration order.
func Available(npc types.Npc, s *types.State) []string {
	var ids []string
	for _, d := range npc.Dialogue {
		if usable(npc.ID, d, s) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// Talk speaks the first usable entry: its conditions hold and, if it is
// one-shot, it has not fired yet. Effects are applied and one-shot entries
// are recorded. ok is false when nothing is left to say.
func Talk(npc types.Npc, s *types.State) (text string, ok bool) {
	for _, d := range npc.Dialogue {
		if !usable(npc.ID, d, s) {
			continue
		}
		effects.Apply(s.Flags, d.Effects)
		if d.OneShot {
			s.FiredDialogues[Key(npc.ID, d.ID)] = true
		}
		return strings.TrimSpace(d.Response), true
	}
	return "", false
}

func usable(npcID string, d types.Dialogue, s *types.State) bool {
	if !rules.ConditionsMet(d.Conditions, s.Flags) {
		return false
	}
	return !d.OneShot || !s.FiredDialogues[Key(npcID, d.ID)]
}
