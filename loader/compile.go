package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/roomcore/types"
)

// Container defaults applied when the author leaves a field out.
const (
	defaultContainerVerb = "put"
	defaultContainerPrep = "in"
	defaultClosedText    = "It is currently closed."
)

// compile converts the raw world into a types.World. Structural problems that
// make the world unbuildable (duplicate or empty ids, malformed locations)
// are errors; softer problems come back as warnings.
func compile(raw *rawWorld) (*types.World, []string, error) {
	if raw.World == nil {
		return nil, nil, fmt.Errorf("missing world header")
	}

	w := &types.World{
		ID:        strings.TrimSpace(raw.World.ID),
		Name:      raw.World.Name,
		Desc:      normalizeText(raw.World.Desc),
		StartRoom: strings.TrimSpace(raw.World.StartRoom),
		Rooms:     make(map[string]types.Room, len(raw.Rooms)),
		Items:     make(map[string]types.Item, len(raw.Items)),
		Npcs:      make(map[string]types.Npc, len(raw.Npcs)),
	}
	var warnings []string

	for _, rr := range raw.Rooms {
		if rr.ID == "" {
			return nil, nil, fmt.Errorf("room with empty id")
		}
		if _, dup := w.Rooms[rr.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate room id %q", rr.ID)
		}
		w.Rooms[rr.ID] = compileRoom(rr)
	}

	for _, ri := range raw.Items {
		if ri.ID == "" {
			return nil, nil, fmt.Errorf("item with empty id")
		}
		if _, dup := w.Items[ri.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate item id %q", ri.ID)
		}
		item, itemWarnings, err := compileItem(ri)
		if err != nil {
			return nil, nil, fmt.Errorf("item %s: %w", ri.ID, err)
		}
		warnings = append(warnings, itemWarnings...)
		w.Items[item.ID] = item
		w.ItemOrder = append(w.ItemOrder, item.ID)
	}

	for _, rn := range raw.Npcs {
		if rn.ID == "" {
			return nil, nil, fmt.Errorf("npc with empty id")
		}
		if _, dup := w.Npcs[rn.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate npc id %q", rn.ID)
		}
		npc, err := compileNpc(rn)
		if err != nil {
			return nil, nil, fmt.Errorf("npc %s: %w", rn.ID, err)
		}
		w.Npcs[npc.ID] = npc
		w.NpcOrder = append(w.NpcOrder, npc.ID)
	}

	for _, rg := range raw.Globals {
		if strings.TrimSpace(rg.ID) == "" {
			return nil, nil, fmt.Errorf("global condition with empty id")
		}
		w.GlobalConditions = append(w.GlobalConditions, types.GlobalCondition{
			ID:              rg.ID,
			Conditions:      rg.Conditions,
			AllowedRooms:    rg.AllowedRooms,
			DisallowedRooms: rg.DisallowedRooms,
			Response:        normalizeText(rg.Response),
			Effects:         rg.Effects,
			OneShot:         boolOr(rg.OneShot, true),
		})
	}

	w.GlobalActions = compileActions(raw.GlobalActions)
	return w, warnings, nil
}

func compileRoom(rr rawRoom) types.Room {
	room := types.Room{
		ID:      rr.ID,
		Name:    rr.Name,
		Desc:    normalizeText(rr.Desc),
		Actions: compileActions(rr.Actions),
	}
	for _, e := range rr.Exits {
		room.Exits = append(room.Exits, types.Exit{
			Direction:  e.Direction,
			Target:     e.Target,
			Verbs:      e.Verbs,
			Conditions: e.Conditions,
		})
	}
	for _, sd := range rr.StateDescs {
		room.StateDescs = append(room.StateDescs, types.StateDesc{
			Conditions: sd.Conditions,
			Text:       normalizeText(sd.Text),
		})
	}
	return room
}

func compileActions(raw []rawAction) []types.Action {
	var actions []types.Action
	for _, a := range raw {
		actions = append(actions, types.Action{
			ID:                   a.ID,
			Verbs:                a.Verbs,
			Nouns:                a.Nouns,
			Response:             normalizeText(a.Response),
			Effects:              a.Effects,
			Conditions:           a.Conditions,
			ScopeRequirements:    a.ScopeRequirements,
			RequiresInventory:    a.RequiresInventory,
			MissingInventoryText: normalizeText(a.MissingInventoryText),
			MissingScopeText:     normalizeText(a.MissingScopeText),
		})
	}
	return actions
}

func compileItem(ri rawItem) (types.Item, []string, error) {
	name, aliases := splitName(ri.Name)
	if name == "" {
		return types.Item{}, nil, fmt.Errorf("empty name")
	}
	loc, err := parseLocation(ri.StartLocation)
	if err != nil {
		return types.Item{}, nil, err
	}

	item := types.Item{
		ID:            ri.ID,
		Name:          name,
		Aliases:       aliases,
		RoomText:      normalizeText(ri.RoomText),
		InventoryText: normalizeText(ri.InventoryText),
		ExamineText:   normalizeText(ri.ExamineText),
		Conditions:    ri.Conditions,
		Portable:      boolOr(ri.Portable, true),
		StartLocation: loc,
	}
	if item.InventoryText == "" {
		item.InventoryText = name
	}

	var warnings []string
	switch kind := strings.ToLower(strings.TrimSpace(ri.Kind)); kind {
	case "container":
		item.Kind = types.KindContainer
		item.Container = compileContainer(ri)
	case "", "simple":
		if hasContainerFields(ri) {
			warnings = append(warnings, fmt.Sprintf(
				"item %q sets container fields but is not a container", ri.ID))
		}
	default:
		warnings = append(warnings, fmt.Sprintf(
			"item %q has unknown kind %q, treating it as simple", ri.ID, ri.Kind))
	}
	return item, warnings, nil
}

func compileContainer(ri rawItem) *types.ContainerProps {
	props := &types.ContainerProps{
		Conditions:   ri.ContainerConditions,
		CompleteWhen: ri.CompleteWhen,
		CompleteFlag: ri.CompleteFlag,
		CompleteText: normalizeText(ri.CompleteText),
		ClosedText:   normalizeText(ri.ClosedText),
		Verbs:        ri.ContainerVerbs,
		Prep:         strings.TrimSpace(ri.ContainerPrep),
	}
	if ri.Capacity != nil {
		capacity := max(*ri.Capacity, 0)
		props.Capacity = &capacity
	}
	if props.ClosedText == "" {
		props.ClosedText = defaultClosedText
	}
	if len(props.Verbs) == 0 {
		props.Verbs = []string{defaultContainerVerb}
	}
	if props.Prep == "" {
		props.Prep = defaultContainerPrep
	}
	return props
}

func hasContainerFields(ri rawItem) bool {
	return ri.Capacity != nil || len(ri.ContainerConditions) > 0 || len(ri.CompleteWhen) > 0 ||
		ri.CompleteFlag != "" || ri.CompleteText != "" || ri.ClosedText != "" ||
		len(ri.ContainerVerbs) > 0 || ri.ContainerPrep != ""
}

func compileNpc(rn rawNpc) (types.Npc, error) {
	name, aliases := splitName(rn.Name)
	if name == "" {
		return types.Npc{}, fmt.Errorf("empty name")
	}
	if strings.TrimSpace(rn.StartRoom) == "" {
		return types.Npc{}, fmt.Errorf("empty start_room")
	}

	npc := types.Npc{
		ID:              rn.ID,
		Name:            name,
		Aliases:         aliases,
		StartRoom:       rn.StartRoom,
		RoomText:        normalizeText(rn.RoomText),
		ExamineText:     normalizeText(rn.ExamineText),
		Conditions:      rn.Conditions,
		Actions:         compileActions(rn.Actions),
		BlockMovement:   rn.BlockMovement,
		BlockConditions: rn.BlockConditions,
		BlockText:       normalizeText(rn.BlockText),
		BlockExits:      rn.BlockExits,
		Foe:             rn.Foe,
		AttackChance:    clampPercent(rn.AttackChance),
		AttackText:      normalizeText(rn.AttackText),
		AttackEffects:   rn.AttackEffects,
	}

	// Roaming needs all three to mean anything.
	if chance := clampPercent(rn.RoamChance); rn.RoamEnabled && len(rn.RoamRooms) > 0 && chance > 0 {
		npc.Roam = &types.NpcRoam{
			Enabled:      true,
			AllowedRooms: rn.RoamRooms,
			Chance:       chance,
		}
	}

	for _, d := range rn.Dialogue {
		npc.Dialogue = append(npc.Dialogue, types.Dialogue{
			ID:         d.ID,
			Conditions: d.Conditions,
			Response:   normalizeText(d.Response),
			Effects:    d.Effects,
			OneShot:    boolOr(d.OneShot, true),
		})
	}
	return npc, nil
}

// parseLocation parses "room:<id>", "item:<id>", "npc:<id>" or "inventory".
func parseLocation(s string) (types.ItemLocation, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "inventory") {
		return types.ItemLocation{Kind: types.LocInventory}, nil
	}

	prefixes := []struct {
		prefix string
		kind   types.LocationKind
	}{
		{"room:", types.LocRoom},
		{"item:", types.LocItem},
		{"npc:", types.LocNpc},
	}
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p.prefix); ok {
			id := strings.TrimSpace(rest)
			if id == "" {
				return types.ItemLocation{}, fmt.Errorf("invalid start_location %q: empty id", s)
			}
			return types.ItemLocation{Kind: p.kind, ID: id}, nil
		}
	}
	return types.ItemLocation{}, fmt.Errorf(
		"invalid start_location %q: expected room:<id>, item:<id>, npc:<id> or inventory", s)
}

// splitName splits "primary|alias|alias" into the display name and aliases.
func splitName(raw string) (string, []string) {
	var parts []string
	for _, p := range strings.Split(raw, "|") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

// normalizeText reflows authored multi-line text. Lines are trimmed, wrapped
// lines join with a space, one blank line becomes a newline and two or more
// become a paragraph break.
func normalizeText(raw string) string {
	var b strings.Builder
	blanks := 0
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			blanks++
			continue
		}
		if b.Len() > 0 {
			switch blanks {
			case 0:
				b.WriteByte(' ')
			case 1:
				b.WriteByte('\n')
			default:
				b.WriteString("\n\n")
			}
		}
		b.WriteString(line)
		blanks = 0
	}
	return b.String()
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func clampPercent(n int) int {
	return min(max(n, 0), 100)
}
