package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/roomcore/engine"
	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

func loadSample(t *testing.T, path string) *engine.Engine {
	t.Helper()
	w, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s): %v", path, err)
	}
	if len(warnings) != 0 {
		t.Errorf("Load(%s) warnings = %v", path, warnings)
	}
	eng := engine.New(w)
	eng.Start()
	return eng
}

func resultHas(r types.Result, kind types.SegmentKind, text string) bool {
	for _, seg := range r.Segments {
		if seg.Kind == kind && strings.Contains(seg.Text, text) {
			return true
		}
	}
	return false
}

func TestSampleWorld_Lighthouse(t *testing.T) {
	eng := loadSample(t, "../worlds/lighthouse")
	s := eng.State

	steps := []struct {
		input string
		want  string
	}{
		{"take bottle", "You take the bottle of rum."},
		{"take matches from crate", "The lid is nailed shut."},
		{"open crate", "The crate creaks open."},
		{"take matches from crate", "You take the box of matches from the driftwood crate."},
		{"north", "You go north."},
		{"north", "The keeper bars the way."},
		{"give bottle to keeper", "drops a key at your feet"},
		{"take key", "You take the iron key."},
		{"north", "You go north."},
		{"unlock door", "The tower door swings open."},
		{"climb", "You go up."},
		{"light lamp", "The wick catches."},
	}
	var last types.Result
	for _, step := range steps {
		last = eng.Step(step.input)
		if !resultHas(last, types.SegText, step.want) {
			t.Fatalf("%q: segments = %+v, want text containing %q", step.input, last.Segments, step.want)
		}
	}

	if !resultHas(last, types.SegEvent, "a ship changes course") {
		t.Errorf("expected the ship event after lighting the lamp: %+v", last.Segments)
	}
	if s.CurrentRoom != "lamp_room" {
		t.Errorf("CurrentRoom = %q", s.CurrentRoom)
	}
	for _, flag := range []string{"crate_open", "keeper_happy", "door_unlocked", "lamp_lit"} {
		if !state.HasFlag(s, flag) {
			t.Errorf("flag %q not set", flag)
		}
	}
	// The keeper drank the rum.
	if _, ok := state.Location(s, "bottle"); ok {
		t.Error("bottle should be consumed")
	}
}

func TestSampleWorld_Cellar(t *testing.T) {
	eng := loadSample(t, "../worlds/cellar.yaml")

	eng.Step("take bottle")
	eng.Step("down")
	r := eng.Step("slide bottle in rack")

	if !resultHas(r, types.SegText, "Something clicks behind the rack.") {
		t.Errorf("expected completion text: %+v", r.Segments)
	}
	if !resultHas(r, types.SegEvent, "the cellar door swings open") {
		t.Errorf("expected global event: %+v", r.Segments)
	}
	if !state.ItemInside(eng.State, "vintage", "rack") {
		t.Error("bottle should be in the rack")
	}
}
