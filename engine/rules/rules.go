package rules

import (
	"fmt"
	"strings"

	"github.com/nathoo/roomcore/engine/parser"
	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

// OutcomeKind is the verdict of the action resolver for one input.
type OutcomeKind int

const (
	// NoMatch lets the caller try the next resolver in the chain.
	NoMatch OutcomeKind = iota
	// Execute means Action should run.
	Execute
	// Blocked means the player clearly meant an action that cannot run yet;
	// Message explains why.
	Blocked
	// Ambiguous means several actions tied for the best score.
	Ambiguous
)

// Outcome is the result of Evaluate.
type Outcome struct {
	Kind    OutcomeKind
	Action  *types.Action
	Message string
	Score   int
}

// blockReason ranks why a strongly-intended action could not run.
// Higher is more specific.
type blockReason int

const (
	blockedByConditions blockReason = iota + 1
	missingScope
	missingInventory
)

// AmbiguousMessage is shown when executable actions tie.
const AmbiguousMessage = "Be more specific."

// Evaluate matches input against an ordered action list: room actions,
// global actions, or an NPC's actions.
func Evaluate(actions []types.Action, input string, w *types.World, s *types.State) Outcome {
	tokens := parser.Tokenize(input)
	if len(tokens) == 0 {
		return Outcome{Kind: NoMatch}
	}

	bestExecScore := 0
	var bestExec []*types.Action

	var blocked *Outcome
	var blockedReason blockReason

actionLoop:
	for i := range actions {
		action := &actions[i]

		verbScore := BestPhraseScore(action.Verbs, tokens)
		if verbScore == 0 {
			continue
		}

		// Nouns gate when present; they never merely boost.
		nounScore := 0
		if len(action.Nouns) > 0 {
			nounScore = BestPhraseScore(action.Nouns, tokens)
			if nounScore == 0 {
				continue
			}
		}

		scopeOK, mentionedOK, scopeScore := true, true, 0
		for _, reqID := range action.ScopeRequirements {
			item, ok := w.Items[reqID]
			if !ok {
				scopeOK, mentionedOK = false, false
				break
			}
			// An invisible required item removes the action from
			// consideration entirely so it cannot steal the command.
			if !ConditionsMet(item.Conditions, s.Flags) {
				continue actionLoop
			}
			if !state.ItemInRoom(s, reqID, s.CurrentRoom) {
				scopeOK = false
			}
			if MentionsItem(&item, tokens) {
				scopeScore += ScopeBonus
			} else {
				mentionedOK = false
			}
		}

		invOK, invScore := true, 0
		for _, reqID := range action.RequiresInventory {
			if state.HasItem(s, reqID) {
				invScore += InventoryBonus
			} else {
				invOK = false
			}
		}

		condOK := ConditionsMet(action.Conditions, s.Flags)

		strongIntent := len(action.ScopeRequirements) == 0 || mentionedOK
		total := verbScore + nounScore + scopeScore + invScore

		if strongIntent && scopeOK && invOK && condOK {
			switch {
			case total > bestExecScore:
				bestExecScore = total
				bestExec = []*types.Action{action}
			case total == bestExecScore:
				bestExec = append(bestExec, action)
			}
			continue
		}

		if !strongIntent {
			continue
		}

		var reason blockReason
		var msg string
		switch {
		case !invOK:
			reason, msg = missingInventory, missingInventoryMessage(action, w)
		case !scopeOK:
			reason, msg = missingScope, missingScopeMessage(action, w)
		default:
			reason, msg = blockedByConditions, "You can't do that right now."
		}

		// Reason first, then score; the earliest action keeps full ties.
		if blocked == nil || reason > blockedReason || (reason == blockedReason && total > blocked.Score) {
			blockedReason = reason
			blocked = &Outcome{Kind: Blocked, Action: action, Message: msg, Score: total}
		}
	}

	switch {
	case len(bestExec) == 1:
		return Outcome{Kind: Execute, Action: bestExec[0], Score: bestExecScore}
	case len(bestExec) > 1:
		return Outcome{Kind: Ambiguous, Message: AmbiguousMessage, Score: bestExecScore}
	case blocked != nil:
		return *blocked
	default:
		return Outcome{Kind: NoMatch}
	}
}

func missingInventoryMessage(action *types.Action, w *types.World) string {
	if t := strings.TrimSpace(action.MissingInventoryText); t != "" {
		return t
	}
	names := itemNames(action.RequiresInventory, w)
	switch len(names) {
	case 0:
		return "You don't have what you need."
	case 1:
		return fmt.Sprintf("You need the %s.", names[0])
	default:
		return fmt.Sprintf("You need: %s.", strings.Join(names, ", "))
	}
}

func missingScopeMessage(action *types.Action, w *types.World) string {
	if t := strings.TrimSpace(action.MissingScopeText); t != "" {
		return t
	}
	names := itemNames(action.ScopeRequirements, w)
	switch len(names) {
	case 0:
		return "You don't see that here."
	case 1:
		return fmt.Sprintf("You don't see the %s here.", names[0])
	default:
		return fmt.Sprintf("You don't see those here: %s.", strings.Join(names, ", "))
	}
}

func itemNames(ids []string, w *types.World) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if item, ok := w.Items[id]; ok {
			names = append(names, item.Name)
		} else {
			names = append(names, id)
		}
	}
	return names
}
