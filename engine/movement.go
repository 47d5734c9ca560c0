package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nathoo/roomcore/engine/parser"
	"github.com/nathoo/roomcore/engine/rules"
	"github.com/nathoo/roomcore/types"
)

// tryMovement matches input against the visible exits of the current room.
// Whole-token matches on direction or exit verbs win; only when there are
// none are one-character tokens tried as abbreviations. It returns false
// when the input is not a movement command at all.
func (e *Engine) tryMovement(t *turn, input string) bool {
	room, ok := e.World.Rooms[e.State.CurrentRoom]
	if !ok {
		return false
	}
	tokens := parser.Tokenize(input)
	if len(tokens) == 0 {
		return false
	}

	var visible []types.Exit
	for _, ex := range room.Exits {
		if rules.ConditionsMet(ex.Conditions, e.State.Flags) {
			visible = append(visible, ex)
		}
	}

	matches := exactExitMatches(visible, tokens)
	switch {
	case len(matches) == 1:
		t.tracef("movement: exact match %q", matches[0].Direction)
		e.move(t, matches[0])
		return true
	case len(matches) > 1:
		t.out.Say(fmt.Sprintf("That movement is ambiguous here. Did you mean: %s?", directions(matches)))
		return true
	}

	abbrevs := abbreviations(tokens)
	if len(abbrevs) == 0 {
		return false
	}

	matches = abbrevExitMatches(visible, abbrevs)
	switch {
	case len(matches) == 1:
		t.tracef("movement: abbreviation match %q", matches[0].Direction)
		e.move(t, matches[0])
		return true
	case len(matches) > 1:
		t.out.Say(fmt.Sprintf("That direction is ambiguous here. Did you mean: %s?", directions(matches)))
		return true
	default:
		return false
	}
}

// move runs the blocking check and then relocates the player.
func (e *Engine) move(t *turn, exit types.Exit) {
	if e.blockMovement(t, exit) {
		return
	}
	if _, ok := e.World.Rooms[exit.Target]; !ok {
		t.out.Say(fmt.Sprintf("You try to go %s, but something feels wrong (room not found).", exit.Direction))
		t.tracef("movement: exit %q targets unknown room %q", exit.Direction, exit.Target)
		return
	}
	t.out.Say(fmt.Sprintf("You go %s.", exit.Direction))
	e.State.CurrentRoom = exit.Target
}

func exactExitMatches(exits []types.Exit, tokens []string) []types.Exit {
	var matches []types.Exit
	for _, ex := range exits {
		if exitNamed(ex, tokens) {
			matches = append(matches, ex)
		}
	}
	return matches
}

func exitNamed(ex types.Exit, tokens []string) bool {
	for _, tok := range tokens {
		if strings.EqualFold(ex.Direction, tok) {
			return true
		}
		for _, v := range ex.Verbs {
			if strings.EqualFold(v, tok) {
				return true
			}
		}
	}
	return false
}

// abbreviations returns the runes of tokens that are exactly one character.
func abbreviations(tokens []string) []rune {
	var out []rune
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) == 1 {
			r, _ := utf8.DecodeRuneInString(tok)
			out = append(out, r)
		}
	}
	return out
}

func abbrevExitMatches(exits []types.Exit, abbrevs []rune) []types.Exit {
	var matches []types.Exit
	for _, ex := range exits {
		hit := startsWithAny(ex.Direction, abbrevs)
		for _, v := range ex.Verbs {
			hit = hit || startsWithAny(v, abbrevs)
		}
		if hit {
			matches = append(matches, ex)
		}
	}
	return matches
}

func startsWithAny(word string, runes []rune) bool {
	if word == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(strings.ToLower(word))
	for _, r := range runes {
		if r == first {
			return true
		}
	}
	return false
}

func directions(exits []types.Exit) string {
	dirs := make([]string, len(exits))
	for i, ex := range exits {
		dirs[i] = ex.Direction
	}
	return strings.Join(dirs, ", ")
}
