package rules

import (
	"github.com/nathoo/roomcore/engine/parser"
	"github.com/nathoo/roomcore/types"
)

// Score bonuses on top of verb and noun phrase scores.
const (
	ScopeBonus     = 3
	InventoryBonus = 2
)

// PhraseScore returns the number of words in phrase if every one of them
// appears as a whole token in tokens (in any order), otherwise 0.
func PhraseScore(phrase string, tokens []string) int {
	words := parser.Tokenize(phrase)
	if len(words) == 0 {
		return 0
	}
	for _, w := range words {
		if !containsToken(tokens, w) {
			return 0
		}
	}
	return len(words)
}

// BestPhraseScore returns the highest PhraseScore among phrases.
func BestPhraseScore(phrases []string, tokens []string) int {
	best := 0
	for _, p := range phrases {
		if score := PhraseScore(p, tokens); score > best {
			best = score
		}
	}
	return best
}

// MentionsItem reports whether at least one word of the item's name or any
// alias appears among tokens.
func MentionsItem(item *types.Item, tokens []string) bool {
	for _, phrase := range append([]string{item.Name}, item.Aliases...) {
		for _, w := range parser.Tokenize(phrase) {
			if containsToken(tokens, w) {
				return true
			}
		}
	}
	return false
}

func containsToken(tokens []string, w string) bool {
	for _, t := range tokens {
		if t == w {
			return true
		}
	}
	return false
}
