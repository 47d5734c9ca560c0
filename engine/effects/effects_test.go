package effects

import (
	"reflect"
	"testing"

	"github.com/nathoo/roomcore/types"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		effects []string
		want    map[string]bool
	}{
		{name: "set", effects: []string{"door_open"}, want: map[string]bool{"door_open": true}},
		{name: "clear", initial: []string{"door_open"}, effects: []string{"!door_open"}, want: map[string]bool{}},
		{name: "clear unknown flag", effects: []string{"!ghost"}, want: map[string]bool{}},
		{name: "later entry wins", effects: []string{"lit", "!lit"}, want: map[string]bool{}},
		{name: "later set wins", effects: []string{"!lit", "lit"}, want: map[string]bool{"lit": true}},
		{name: "empty names skipped", effects: []string{"", "!"}, want: map[string]bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := map[string]bool{}
			for _, f := range tt.initial {
				flags[f] = true
			}
			Apply(flags, tt.effects)
			if !reflect.DeepEqual(flags, tt.want) {
				t.Errorf("flags = %v, want %v", flags, tt.want)
			}
		})
	}
}

func TestSnapshotAndChanged(t *testing.T) {
	flags := map[string]bool{"a": true, "b": true}
	before := Snapshot(flags)

	Apply(flags, []string{"!a", "c"})
	if !before["a"] {
		t.Fatal("snapshot should not alias the live map")
	}

	got := Changed(before, flags)
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Changed = %v, want [a c]", got)
	}
	if got := Changed(flags, Snapshot(flags)); len(got) != 0 {
		t.Errorf("no-op diff = %v", got)
	}
}

func TestMoveAndConsume(t *testing.T) {
	s := &types.State{
		ItemLocations: map[string]types.ItemLocation{"gem": InRoom("hall")},
		NpcLocations:  map[string]string{"cat": "hall"},
	}

	MoveItem(s, "gem", InItem("box"))
	if got := s.ItemLocations["gem"]; got != (types.ItemLocation{Kind: types.LocItem, ID: "box"}) {
		t.Errorf("gem = %v", got)
	}

	MoveItem(s, "gem", Inventory())
	if got := s.ItemLocations["gem"]; got.Kind != types.LocInventory {
		t.Errorf("gem = %v", got)
	}

	MoveItem(s, "gem", HeldBy("cat"))
	if got := s.ItemLocations["gem"]; got != (types.ItemLocation{Kind: types.LocNpc, ID: "cat"}) {
		t.Errorf("gem = %v", got)
	}

	Consume(s, "gem")
	if _, ok := s.ItemLocations["gem"]; ok {
		t.Error("consumed item still has a location")
	}

	MoveNpc(s, "cat", "yard")
	if s.NpcLocations["cat"] != "yard" {
		t.Errorf("cat = %q", s.NpcLocations["cat"])
	}
}
