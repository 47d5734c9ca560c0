package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// rawWorld is the authored world before compilation. YAML files decode into
// it directly; Lua tables are converted into it.
type rawWorld struct {
	World         *rawHeader  `yaml:"world"`
	Rooms         []rawRoom   `yaml:"rooms"`
	Items         []rawItem   `yaml:"items"`
	Npcs          []rawNpc    `yaml:"npcs"`
	Globals       []rawGlobal `yaml:"global_conditions"`
	GlobalActions []rawAction `yaml:"global_actions"`
}

type rawHeader struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	StartRoom string `yaml:"start_room"`
	Desc      string `yaml:"desc"`
}

type rawRoom struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Desc       string         `yaml:"desc"`
	Exits      []rawExit      `yaml:"exits"`
	Actions    []rawAction    `yaml:"actions"`
	StateDescs []rawStateDesc `yaml:"state_descs"`
}

type rawStateDesc struct {
	Conditions []string `yaml:"conditions"`
	Text       string   `yaml:"text"`
}

type rawExit struct {
	Direction  string   `yaml:"direction"`
	Target     string   `yaml:"target"`
	Verbs      []string `yaml:"verbs"`
	Conditions []string `yaml:"conditions"`
}

type rawAction struct {
	ID                   string   `yaml:"id"`
	Verbs                []string `yaml:"verbs"`
	Nouns                []string `yaml:"nouns"`
	Response             string   `yaml:"response"`
	Effects              []string `yaml:"effects"`
	Conditions           []string `yaml:"conditions"`
	ScopeRequirements    []string `yaml:"scope_requirements"`
	RequiresInventory    []string `yaml:"requires_inventory"`
	MissingInventoryText string   `yaml:"missing_inventory_text"`
	MissingScopeText     string   `yaml:"missing_scope_text"`
}

type rawItem struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"` // "primary|alias|alias"
	StartLocation string   `yaml:"start_location"`
	RoomText      string   `yaml:"room_text"`
	InventoryText string   `yaml:"inventory_text"`
	ExamineText   string   `yaml:"examine_text"`
	Conditions    []string `yaml:"conditions"`
	Portable      *bool    `yaml:"portable"`
	Kind          string   `yaml:"kind"`

	// Container fields. Ignored with a warning on simple items.
	Capacity            *int     `yaml:"capacity"` // unset = unlimited
	ContainerConditions []string `yaml:"container_conditions"`
	CompleteWhen        []string `yaml:"complete_when"`
	CompleteFlag        string   `yaml:"complete_flag"`
	CompleteText        string   `yaml:"complete_text"`
	ClosedText          string   `yaml:"container_closed_text"`
	ContainerVerbs      []string `yaml:"container_verbs"`
	ContainerPrep       string   `yaml:"container_prep"`
}

type rawNpc struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	StartRoom   string        `yaml:"start_room"`
	RoomText    string        `yaml:"room_text"`
	ExamineText string        `yaml:"examine_text"`
	Conditions  []string      `yaml:"conditions"`
	Actions     []rawAction   `yaml:"actions"`
	Dialogue    []rawDialogue `yaml:"dialogue"`

	RoamEnabled bool     `yaml:"roam_enabled"`
	RoamRooms   []string `yaml:"roam_rooms"`
	RoamChance  int      `yaml:"roam_chance_percent"`

	BlockMovement   bool     `yaml:"block_movement"`
	BlockConditions []string `yaml:"block_conditions"`
	BlockText       string   `yaml:"block_text"`
	BlockExits      []string `yaml:"block_exits"`

	Foe           bool     `yaml:"foe"`
	AttackChance  int      `yaml:"attack_chance_percent"`
	AttackText    string   `yaml:"attack_text"`
	AttackEffects []string `yaml:"attack_effects"`
}

type rawDialogue struct {
	ID         string   `yaml:"id"`
	Conditions []string `yaml:"conditions"`
	Response   string   `yaml:"response"`
	Effects    []string `yaml:"effects"`
	OneShot    *bool    `yaml:"one_shot"` // default true
}

type rawGlobal struct {
	ID              string   `yaml:"id"`
	Conditions      []string `yaml:"conditions"`
	AllowedRooms    []string `yaml:"allowed_rooms"`
	DisallowedRooms []string `yaml:"disallowed_rooms"`
	Response        string   `yaml:"response"`
	Effects         []string `yaml:"effects"`
	OneShot         *bool    `yaml:"one_shot"` // default true
}

// readYAML decodes a single YAML world file. Unknown keys are rejected so a
// misspelled field does not silently vanish.
func readYAML(path string) (*rawWorld, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw rawWorld
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("world file %s is empty", path)
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &raw, nil
}

// decodeValue converts a generic value tree (from a Lua table) into one of
// the raw structs by round-tripping it through YAML, so both front ends share
// one set of field names.
func decodeValue(v any, out any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}
