package events

import (
	"reflect"
	"testing"

	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

func testWorld(gcs ...types.GlobalCondition) *types.World {
	return &types.World{
		StartRoom: "hall",
		Rooms: map[string]types.Room{
			"hall":  {ID: "hall"},
			"crypt": {ID: "crypt"},
		},
		GlobalConditions: gcs,
	}
}

func TestFire_ConditionsGate(t *testing.T) {
	w := testWorld(types.GlobalCondition{
		ID:         "alarm",
		Conditions: []string{"vase_broken"},
		Response:   "An alarm rings!",
		Effects:    []string{"guards_alerted"},
	})
	s := state.NewState(w)

	if got := Fire(w, s); len(got) != 0 {
		t.Fatalf("unmet conditions fired: %v", got)
	}

	s.Flags["vase_broken"] = true
	got := Fire(w, s)
	if !reflect.DeepEqual(got, []string{"An alarm rings!"}) {
		t.Errorf("Fire = %v", got)
	}
	if !s.Flags["guards_alerted"] {
		t.Error("effect not applied")
	}
}

func TestFire_OneShot(t *testing.T) {
	w := testWorld(types.GlobalCondition{
		ID:       "intro",
		Response: "Welcome.",
		OneShot:  true,
	})
	s := state.NewState(w)

	if got := Fire(w, s); len(got) != 1 {
		t.Fatalf("first pass = %v, want one response", got)
	}
	if got := Fire(w, s); len(got) != 0 {
		t.Errorf("second pass = %v, want none", got)
	}
	if !s.FiredGlobals["intro"] {
		t.Error("one-shot not recorded")
	}
}

func TestFire_RepeatingFiresEveryPass(t *testing.T) {
	w := testWorld(types.GlobalCondition{ID: "drip", Response: "Water drips."})
	s := state.NewState(w)

	for i := 0; i < 3; i++ {
		if got := Fire(w, s); len(got) != 1 {
			t.Fatalf("pass %d = %v", i, got)
		}
	}
}

func TestFire_RoomFilters(t *testing.T) {
	w := testWorld(
		types.GlobalCondition{ID: "only_crypt", AllowedRooms: []string{"crypt"}, Response: "Cold air."},
		types.GlobalCondition{ID: "not_crypt", DisallowedRooms: []string{"crypt"}, Response: "Warm air."},
	)
	s := state.NewState(w)

	if got := Fire(w, s); !reflect.DeepEqual(got, []string{"Warm air."}) {
		t.Errorf("in hall: %v", got)
	}
	s.CurrentRoom = "crypt"
	if got := Fire(w, s); !reflect.DeepEqual(got, []string{"Cold air."}) {
		t.Errorf("in crypt: %v", got)
	}
}

func TestFire_SinglePassChaining(t *testing.T) {
	w := testWorld(
		types.GlobalCondition{ID: "second", Conditions: []string{"a"}, Response: "Second."},
		types.GlobalCondition{ID: "first", Response: "First.", Effects: []string{"a"}, OneShot: true},
	)
	s := state.NewState(w)

	// "second" is declared before "first", so it only sees flag a next pass.
	if got := Fire(w, s); !reflect.DeepEqual(got, []string{"First."}) {
		t.Errorf("pass 1 = %v", got)
	}
	if got := Fire(w, s); !reflect.DeepEqual(got, []string{"Second."}) {
		t.Errorf("pass 2 = %v", got)
	}
}

func TestFire_EmptyResponseStillApplies(t *testing.T) {
	w := testWorld(types.GlobalCondition{ID: "silent", Effects: []string{"quiet", "!noisy"}})
	s := state.NewState(w)
	s.Flags["noisy"] = true

	if got := Fire(w, s); len(got) != 0 {
		t.Errorf("Fire = %v, want no text", got)
	}
	if !s.Flags["quiet"] || s.Flags["noisy"] {
		t.Errorf("flags = %v", s.Flags)
	}
}
