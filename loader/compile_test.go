package loader

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/roomcore/types"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single line", "  A hall.  ", "A hall."},
		{"wrapped lines join", "A long\n    hall.", "A long hall."},
		{"one blank line", "First.\n\nSecond.", "First.\nSecond."},
		{"paragraph break", "First.\n\n\n\nSecond.", "First.\n\nSecond."},
		{"leading and trailing blanks", "\n\n  Text.\n\n", "Text."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(tt.in); got != tt.want {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		raw     string
		name    string
		aliases []string
	}{
		{"Lamp", "Lamp", nil},
		{"brass lamp | lantern | light", "brass lamp", []string{"lantern", "light"}},
		{"|| Key ||", "Key", nil},
		{"  ", "", nil},
	}
	for _, tt := range tests {
		name, aliases := splitName(tt.raw)
		if name != tt.name {
			t.Errorf("splitName(%q) name = %q, want %q", tt.raw, name, tt.name)
		}
		if len(aliases) != len(tt.aliases) || (len(aliases) > 0 && !reflect.DeepEqual(aliases, tt.aliases)) {
			t.Errorf("splitName(%q) aliases = %v, want %v", tt.raw, aliases, tt.aliases)
		}
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in      string
		want    types.ItemLocation
		wantErr bool
	}{
		{"inventory", types.ItemLocation{Kind: types.LocInventory}, false},
		{"Inventory", types.ItemLocation{Kind: types.LocInventory}, false},
		{"room:hall", types.ItemLocation{Kind: types.LocRoom, ID: "hall"}, false},
		{" item: chest ", types.ItemLocation{Kind: types.LocItem, ID: "chest"}, false},
		{"npc:guard", types.ItemLocation{Kind: types.LocNpc, ID: "guard"}, false},
		{"room:", types.ItemLocation{}, true},
		{"hall", types.ItemLocation{}, true},
		{"", types.ItemLocation{}, true},
	}
	for _, tt := range tests {
		got, err := parseLocation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLocation(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLocation(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func intPtr(n int) *int { return &n }

func TestCompileItem_ContainerDefaults(t *testing.T) {
	item, warnings, err := compileItem(rawItem{
		ID: "box", Name: "Box", Kind: "Container", StartLocation: "room:hall",
		Capacity: intPtr(-3), ContainerPrep: " on ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	c := item.Container
	if item.Kind != types.KindContainer || c == nil {
		t.Fatalf("not a container: %+v", item)
	}
	if c.Capacity == nil || *c.Capacity != 0 || c.Prep != "on" || c.ClosedText != defaultClosedText || !reflect.DeepEqual(c.Verbs, []string{"put"}) {
		t.Errorf("container = %+v", c)
	}
}

func TestCompileItem_Warnings(t *testing.T) {
	tests := []struct {
		name string
		raw  rawItem
		want string
	}{
		{
			name: "unknown kind",
			raw:  rawItem{ID: "sword", Name: "Sword", Kind: "weapon", StartLocation: "inventory"},
			want: `unknown kind "weapon"`,
		},
		{
			name: "container fields on simple item",
			raw:  rawItem{ID: "rock", Name: "Rock", StartLocation: "inventory", Capacity: intPtr(3)},
			want: "not a container",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, warnings, err := compileItem(tt.raw)
			if err != nil {
				t.Fatal(err)
			}
			if item.Kind != types.KindSimple || item.Container != nil {
				t.Errorf("item should compile as simple: %+v", item)
			}
			if len(warnings) != 1 || !strings.Contains(warnings[0], tt.want) {
				t.Errorf("warnings = %v, want one containing %q", warnings, tt.want)
			}
		})
	}
}

func TestCompileItem_Errors(t *testing.T) {
	if _, _, err := compileItem(rawItem{ID: "x", Name: " | ", StartLocation: "inventory"}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, _, err := compileItem(rawItem{ID: "x", Name: "X", StartLocation: "shelf"}); err == nil {
		t.Error("expected error for malformed location")
	}
}

func TestCompileNpc_Roam(t *testing.T) {
	tests := []struct {
		name    string
		raw     rawNpc
		wantNil bool
	}{
		{"enabled", rawNpc{RoamEnabled: true, RoamRooms: []string{"a"}, RoamChance: 50}, false},
		{"disabled", rawNpc{RoamRooms: []string{"a"}, RoamChance: 50}, true},
		{"no rooms", rawNpc{RoamEnabled: true, RoamChance: 50}, true},
		{"zero chance", rawNpc{RoamEnabled: true, RoamRooms: []string{"a"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.raw.ID, tt.raw.Name, tt.raw.StartRoom = "cat", "Cat", "hall"
			npc, err := compileNpc(tt.raw)
			if err != nil {
				t.Fatal(err)
			}
			if (npc.Roam == nil) != tt.wantNil {
				t.Errorf("Roam = %+v, wantNil %v", npc.Roam, tt.wantNil)
			}
		})
	}
}

func TestCompileNpc_Errors(t *testing.T) {
	if _, err := compileNpc(rawNpc{ID: "x", StartRoom: "hall"}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := compileNpc(rawNpc{ID: "x", Name: "X"}); err == nil {
		t.Error("expected error for empty start_room")
	}
}

func TestCompile_MissingHeader(t *testing.T) {
	if _, _, err := compile(&rawWorld{}); err == nil {
		t.Fatal("expected error for missing world header")
	}
}

func TestCompile_DeclarationOrder(t *testing.T) {
	raw := &rawWorld{
		World: &rawHeader{ID: "w", StartRoom: "hall"},
		Rooms: []rawRoom{{ID: "hall"}},
		Items: []rawItem{
			{ID: "zebra", Name: "Zebra", StartLocation: "room:hall"},
			{ID: "apple", Name: "Apple", StartLocation: "room:hall"},
		},
		Npcs: []rawNpc{
			{ID: "yeti", Name: "Yeti", StartRoom: "hall"},
			{ID: "bard", Name: "Bard", StartRoom: "hall"},
		},
	}
	w, _, err := compile(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(w.ItemOrder, []string{"zebra", "apple"}) {
		t.Errorf("ItemOrder = %v", w.ItemOrder)
	}
	if !reflect.DeepEqual(w.NpcOrder, []string{"yeti", "bard"}) {
		t.Errorf("NpcOrder = %v", w.NpcOrder)
	}
}

func TestCompileItem_Capacity(t *testing.T) {
	tests := []struct {
		name string
		raw  *int
		want *int
	}{
		{"unset is unlimited", nil, nil},
		{"explicit zero kept", intPtr(0), intPtr(0)},
		{"positive", intPtr(4), intPtr(4)},
		{"negative clamped", intPtr(-1), intPtr(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, _, err := compileItem(rawItem{ID: "jar", Name: "Jar", Kind: "container", StartLocation: "inventory", Capacity: tt.raw})
			if err != nil {
				t.Fatal(err)
			}
			got := item.Container.Capacity
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("Capacity = %v, want %v", got, tt.want)
			}
		})
	}
}
