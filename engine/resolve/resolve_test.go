package resolve

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nathoo/roomcore/engine/state"
	"github.com/nathoo/roomcore/types"
)

func testWorld() *types.World {
	return &types.World{
		StartRoom: "hall",
		Rooms: map[string]types.Room{
			"hall":   {ID: "hall"},
			"garden": {ID: "garden"},
		},
		Items: map[string]types.Item{
			"rusty_key":  {ID: "rusty_key", Name: "Rusty Key", StartLocation: types.ItemLocation{Kind: types.LocRoom, ID: "hall"}},
			"silver_key": {ID: "silver_key", Name: "Silver Key", StartLocation: types.ItemLocation{Kind: types.LocRoom, ID: "hall"}},
			"lamp":       {ID: "lamp", Name: "Brass Lamp", Aliases: []string{"lantern"}, StartLocation: types.ItemLocation{Kind: types.LocInventory}},
			"ghost_orb":  {ID: "ghost_orb", Name: "Ghost Orb", Conditions: []string{"seen_ghost"}, StartLocation: types.ItemLocation{Kind: types.LocRoom, ID: "hall"}},
			"rose":       {ID: "rose", Name: "Rose", StartLocation: types.ItemLocation{Kind: types.LocRoom, ID: "garden"}},
			"chest": {
				ID: "chest", Name: "Oak Chest", Kind: types.KindContainer,
				Container:     &types.ContainerProps{Verbs: []string{"put"}},
				StartLocation: types.ItemLocation{Kind: types.LocRoom, ID: "hall"},
			},
			"coin": {ID: "coin", Name: "Gold Coin", StartLocation: types.ItemLocation{Kind: types.LocItem, ID: "chest"}},
			"ring": {ID: "ring", Name: "Ring", StartLocation: types.ItemLocation{Kind: types.LocNpc, ID: "guard"}},
		},
		Npcs: map[string]types.Npc{
			"guard":  {ID: "guard", Name: "Town Guard", Aliases: []string{"sentry"}, StartRoom: "hall"},
			"priest": {ID: "priest", Name: "Old Priest", StartRoom: "hall"},
			"hermit": {ID: "hermit", Name: "Old Hermit", StartRoom: "garden"},
			"shade":  {ID: "shade", Name: "Shade", StartRoom: "hall", Conditions: []string{"seen_ghost"}},
		},
	}
}

func TestFindItem_ByName(t *testing.T) {
	w := testWorld()
	s := state.NewState(w)

	tests := []struct {
		query string
		scope Scope
		want  string
	}{
		{"rusty key", InRoom("hall"), "rusty_key"},
		{"RUSTY", InRoom("hall"), "rusty_key"},
		{"lantern", Carried(), "lamp"},
		{"brass lamp", RoomOrCarried("hall"), "lamp"},
		{"coin", Inside("chest"), "coin"},
		{"ring", HeldBy("guard"), "ring"},
		{"chest", Containers(RoomOrCarried("hall")), "chest"},
		{"chest", ContainersWithVerb(InRoom("hall"), "PUT"), "chest"},
	}
	for _, tt := range tests {
		got, err := FindItem(w, s, tt.query, tt.scope, RespectConditions)
		if err != nil {
			t.Errorf("FindItem(%q): %v", tt.query, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FindItem(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestFindItem_HighestScoreWins(t *testing.T) {
	w := testWorld()
	s := state.NewState(w)

	got, err := FindItem(w, s, "silver key", InRoom("hall"), RespectConditions)
	if err != nil || got != "silver_key" {
		t.Errorf("FindItem = %q, %v; want silver_key", got, err)
	}
}

func TestFindItem_Ambiguity(t *testing.T) {
	w := testWorld()
	s := state.NewState(w)

	_, err := FindItem(w, s, "key", InRoom("hall"), RespectConditions)
	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguityError, got %v", err)
	}
	if !reflect.DeepEqual(amb.Candidates, []string{"Rusty Key", "Silver Key"}) {
		t.Errorf("Candidates = %v", amb.Candidates)
	}
	if !reflect.DeepEqual(amb.IDs, []string{"rusty_key", "silver_key"}) {
		t.Errorf("IDs = %v", amb.IDs)
	}
}

func TestFindItem_NotFound(t *testing.T) {
	w := testWorld()
	s := state.NewState(w)

	tests := []struct {
		name  string
		query string
		scope Scope
	}{
		{"out of scope", "rose", InRoom("hall")},
		{"no word overlap", "sword", RoomOrCarried("hall")},
		{"partial word", "rus", InRoom("hall")},
		{"empty query", "  ", InRoom("hall")},
		{"not a container", "lamp", Containers(Carried())},
		{"wrong verb", "chest", ContainersWithVerb(InRoom("hall"), "hang")},
		{"excluded", "chest", Excluding(InRoom("hall"), "chest")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindItem(w, s, tt.query, tt.scope, RespectConditions)
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Errorf("expected NotFoundError, got %v", err)
			}
		})
	}
}

func TestFindItem_Modes(t *testing.T) {
	w := testWorld()
	s := state.NewState(w)

	if _, err := FindItem(w, s, "orb", InRoom("hall"), RespectConditions); err == nil {
		t.Error("invisible item matched with RespectConditions")
	}
	if got, err := FindItem(w, s, "orb", InRoom("hall"), IgnoreConditions); err != nil || got != "ghost_orb" {
		t.Errorf("IgnoreConditions = %q, %v", got, err)
	}

	s.Flags["seen_ghost"] = true
	if got, err := FindItem(w, s, "orb", InRoom("hall"), RespectConditions); err != nil || got != "ghost_orb" {
		t.Errorf("visible = %q, %v", got, err)
	}
}

func TestFindItem_ConsumedItemsSkipped(t *testing.T) {
	w := testWorld()
	s := state.NewState(w)
	delete(s.ItemLocations, "lamp")

	if _, err := FindItem(w, s, "lamp", Carried(), IgnoreConditions); err == nil {
		t.Error("consumed item should not match")
	}
}

func TestFindNpc(t *testing.T) {
	w := testWorld()
	s := state.NewState(w)

	if got, err := FindNpc(w, s, "sentry"); err != nil || got != "guard" {
		t.Errorf("alias = %q, %v", got, err)
	}
	if got, err := FindNpc(w, s, "talk to the old priest"); err != nil || got != "priest" {
		t.Errorf("priest = %q, %v", got, err)
	}
	if _, err := FindNpc(w, s, "hermit"); err == nil {
		t.Error("NPC in another room matched")
	}
	if _, err := FindNpc(w, s, "shade"); err == nil {
		t.Error("invisible NPC matched")
	}

	s.NpcLocations["hermit"] = "hall"
	_, err := FindNpc(w, s, "old")
	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected ambiguity, got %v", err)
	}
	if !reflect.DeepEqual(amb.Candidates, []string{"Old Hermit", "Old Priest"}) {
		t.Errorf("Candidates = %v", amb.Candidates)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		query []string
		want  int
	}{
		{[]string{"brass", "lamp"}, 2},
		{[]string{"lantern"}, 1},
		{[]string{"the", "lamp"}, 1},
		{[]string{"torch"}, 0},
	}
	for _, tt := range tests {
		if got := Score(tt.query, "Brass Lamp", []string{"lantern"}); got != tt.want {
			t.Errorf("Score(%v) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	amb := &AmbiguityError{Query: "key", Candidates: []string{"Rusty Key", "Silver Key"}}
	if got := amb.Error(); got != "which key? (Rusty Key, Silver Key)" {
		t.Errorf("AmbiguityError = %q", got)
	}
	nf := &NotFoundError{Query: "sword"}
	if got := nf.Error(); got != `you don't see "sword" here` {
		t.Errorf("NotFoundError = %q", got)
	}
}
