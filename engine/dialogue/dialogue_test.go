package dialogue

import (
	"reflect"
	"testing"

	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

func barkeep() types.Npc {
	return types.Npc{
		ID:        "barkeep",
		Name:      "Barkeep",
		StartRoom: "tavern",
		Dialogue: []types.Dialogue{
			{ID: "greeting", Response: "Welcome, stranger!", Effects: []string{"met_barkeep"}, OneShot: true},
			{ID: "rumors", Conditions: []string{"met_barkeep"}, Response: "Treasure in the caves, they say.", OneShot: true},
			{ID: "idle", Conditions: []string{"met_barkeep"}, Response: "Anything else?"},
		},
	}
}

func testState() *types.State {
	w := &types.World{
		StartRoom: "tavern",
		Rooms:     map[string]types.Room{"tavern": {ID: "tavern"}},
		Npcs:      map[string]types.Npc{"barkeep": barkeep()},
	}
	return state.NewState(w)
}

func TestTalk_Sequence(t *testing.T) {
	npc := barkeep()
	s := testState()

	want := []string{"Welcome, stranger!", "Treasure in the caves, they say.", "Anything else?", "Anything else?"}
	for i, w := range want {
		got, ok := Talk(npc, s)
		if !ok || got != w {
			t.Fatalf("talk %d = (%q, %v), want %q", i, got, ok, w)
		}
	}

	if !s.FiredDialogues["barkeep::greeting"] || !s.FiredDialogues["barkeep::rumors"] {
		t.Errorf("fired = %v", s.FiredDialogues)
	}
	if s.FiredDialogues["barkeep::idle"] {
		t.Error("repeating entry should not be recorded")
	}
}

func TestTalk_NothingLeft(t *testing.T) {
	npc := types.Npc{
		ID:       "hermit",
		Dialogue: []types.Dialogue{{ID: "once", Response: "Go away.", OneShot: true}},
	}
	s := testState()

	if _, ok := Talk(npc, s); !ok {
		t.Fatal("first talk should speak")
	}
	if text, ok := Talk(npc, s); ok {
		t.Errorf("second talk = %q, want nothing", text)
	}
}

func TestAvailable(t *testing.T) {
	npc := barkeep()
	s := testState()

	if got := Available(npc, s); !reflect.DeepEqual(got, []string{"greeting"}) {
		t.Errorf("before = %v", got)
	}
	Talk(npc, s)
	if got := Available(npc, s); !reflect.DeepEqual(got, []string{"rumors", "idle"}) {
		t.Errorf("after = %v", got)
	}
}

func TestKey(t *testing.T) {
	if got := Key("npc", "line"); got != "npc::line" {
		t.Errorf("Key = %q", got)
	}
}
