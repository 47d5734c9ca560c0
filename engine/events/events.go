// Package events implements the global-condition pass that runs after every
// command. It is single pass: effects applied by one condition are visible
// to later conditions in the same pass, but nothing is re-evaluated.
package events

import (
	"strings"

	"github.com/nathoo/roomcore/engine/effects"
	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/types"
)

// Fire evaluates every global condition in declaration order, applies the
// effects of those that hold and returns their non-empty responses. One-shot
// conditions are recorded in s.FiredGlobals and never fire again.
func Fire(w *types.World, s *types.State) []string {
	var responses []string

	for _, gc := range w.GlobalConditions {
		if gc.OneShot && s.FiredGlobals[gc.ID] {
			continue
		}
		if !rules.ConditionsMet(gc.Conditions, s.Flags) {
			continue
		}
		if !roomAllowed(gc, s.CurrentRoom) {
			continue
		}

		if text := strings.TrimSpace(gc.Response); text != "" {
			responses = append(responses, text)
		}
		effects.Apply(s.Flags, gc.Effects)

		if gc.OneShot {
			s.FiredGlobals[gc.ID] = true
		}
	}

	return responses
}

func roomAllowed(gc types.GlobalCondition, roomID string) bool {
	if len(gc.AllowedRooms) > 0 && !contains(gc.AllowedRooms, roomID) {
		return false
	}
	return !contains(gc.DisallowedRooms, roomID)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
