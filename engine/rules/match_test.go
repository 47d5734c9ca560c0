package rules

import (
	"testing"

	"github.com/nathoo/roomcore/types"
)

func TestPhraseScore(t *testing.T) {
	tokens := []string{"pull", "the", "red", "lever"}

	tests := []struct {
		phrase string
		want   int
	}{
		{"pull", 1},
		{"red lever", 2},
		{"lever red", 2},
		{"blue lever", 0},
		{"", 0},
		{"PULL", 1},
		{"lev", 0},
	}
	for _, tt := range tests {
		if got := PhraseScore(tt.phrase, tokens); got != tt.want {
			t.Errorf("PhraseScore(%q) = %d, want %d", tt.phrase, got, tt.want)
		}
	}
}

func TestBestPhraseScore(t *testing.T) {
	tokens := []string{"pick", "up", "the", "lamp"}
	if got := BestPhraseScore([]string{"pick", "pick up", "grab"}, tokens); got != 2 {
		t.Errorf("BestPhraseScore = %d, want 2", got)
	}
	if got := BestPhraseScore(nil, tokens); got != 0 {
		t.Errorf("BestPhraseScore(nil) = %d, want 0", got)
	}
}

func TestMentionsItem(t *testing.T) {
	item := &types.Item{ID: "lamp", Name: "Brass Lamp", Aliases: []string{"lantern"}}

	if !MentionsItem(item, []string{"light", "lamp"}) {
		t.Error("name word should count as a mention")
	}
	if !MentionsItem(item, []string{"light", "lantern"}) {
		t.Error("alias should count as a mention")
	}
	if MentionsItem(item, []string{"light", "it"}) {
		t.Error("unrelated words should not count")
	}
}
