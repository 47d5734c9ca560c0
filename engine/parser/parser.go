// Package parser splits command strings into Intents and tokens.
// Intentionally dumb: no grammar, just bag-of-words.
package parser

import (
	"strings"

	"github.com/nathoo/roomcore/types"
)

// Reserved commands that are only recognized as the whole input.
var standaloneVerbs = map[string]string{
	"quit":      "quit",
	"exit":      "quit",
	"inventory": "inventory",
	"i":         "inventory",
	"look":      "look",
	"l":         "look",
}

// Reserved verbs recognized as the first word.
var leadingVerbs = map[string]string{
	"take":    "take",
	"get":     "take",
	"drop":    "drop",
	"examine": "examine",
	"x":       "examine",
	"talk":    "talk",
	"speak":   "talk",
	"give":    "give",
}

// Tokenize lowercases input and splits it on whitespace.
func Tokenize(input string) []string {
	return strings.Fields(strings.ToLower(input))
}

// Parse converts a raw command string into an Intent. Reserved commands get
// their canonical verb and split object/target; anything else keeps its first
// word as Verb and is left to the resolver chain.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := Tokenize(input)
	intent := types.Intent{
		Verb: words[0],
		Raw:  input,
		Rest: strings.Join(words[1:], " "),
	}

	if len(words) == 1 {
		if verb, ok := standaloneVerbs[words[0]]; ok {
			intent.Verb = verb
			intent.Reserved = true
			return intent
		}
	}

	words = expandMultiWordVerbs(words)

	verb, ok := leadingVerbs[words[0]]
	if !ok {
		return intent
	}
	intent.Verb = verb
	intent.Reserved = true
	intent.Rest = strings.Join(words[1:], " ")

	switch verb {
	case "take":
		intent.Object, intent.Target = splitFirst(intent.Rest, "from")
	case "give":
		intent.Object, intent.Target = splitLast(intent.Rest, "to")
	case "talk":
		intent.Object = strings.TrimPrefix(intent.Rest, "to ")
		if intent.Object == "to" {
			intent.Object = ""
		}
	default:
		intent.Object = intent.Rest
	}
	return intent
}

// expandMultiWordVerbs handles "look at", "pick up", "talk to".
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look":
		if words[1] == "at" {
			return append([]string{"examine"}, words[2:]...)
		}
	case "pick":
		if words[1] == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	}

	return words
}

// splitFirst splits on the first standalone occurrence of sep.
func splitFirst(rest, sep string) (before, after string) {
	words := strings.Fields(rest)
	for i, w := range words {
		if w == sep {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
		}
	}
	return rest, ""
}

// splitLast splits on the last standalone occurrence of sep. The phrase after
// it never contains sep.
func splitLast(rest, sep string) (before, after string) {
	words := strings.Fields(rest)
	for i := len(words) - 1; i >= 0; i-- {
		if words[i] == sep {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
		}
	}
	return rest, ""
}

// SplitOn splits words on the first token found in seps. ok is false when
// none is present.
func SplitOn(rest string, seps map[string]bool) (before, after string, ok bool) {
	words := strings.Fields(rest)
	for i, w := range words {
		if seps[w] {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " "), true
		}
	}
	return rest, "", false
}
