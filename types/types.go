// Package types defines the shared data structures for the roomcore engine.
// This package contains only type definitions. No logic, no methods.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb     string // canonical verb ("take", "examine", ...) or the first word
	Object   string // optional
	Target   string // optional
	Raw      string // the full command, trimmed
	Rest     string // everything after the first word, lowercased
	Reserved bool   // true if Verb is one of the built-in commands
}

// World is the immutable world description. It is built once by a loader
// and never mutated during play.
type World struct {
	ID        string
	Name      string
	Desc      string
	StartRoom string

	Rooms map[string]Room
	Items map[string]Item
	Npcs  map[string]Npc

	// Declaration order. Iteration over items and NPCs follows these when set.
	ItemOrder []string
	NpcOrder  []string

	GlobalConditions []GlobalCondition
	GlobalActions    []Action
}

// Room is a location the player can stand in.
type Room struct {
	ID         string
	Name       string
	Desc       string
	Exits      []Exit
	Actions    []Action
	StateDescs []StateDesc
}

// StateDesc is an extra description fragment shown while its conditions hold.
type StateDesc struct {
	Conditions []string
	Text       string
}

// Exit connects a room to another room.
type Exit struct {
	Direction  string
	Target     string
	Verbs      []string // extra words that select this exit ("climb", "out")
	Conditions []string // visibility conditions
}

// Action is a scripted verb/noun response, scoped to a room, an NPC, or the
// whole world.
type Action struct {
	ID                   string
	Verbs                []string
	Nouns                []string
	Response             string
	Effects              []string
	Conditions           []string
	ScopeRequirements    []string // item ids that must be present and mentioned
	RequiresInventory    []string // item ids the player must carry
	MissingInventoryText string
	MissingScopeText     string
}

// ItemKind tags the closed set of item variants.
type ItemKind int

const (
	KindSimple ItemKind = iota
	KindContainer
)

// Item is a thing that can sit in a room, be carried, be held by an NPC, or
// sit inside a container item.
type Item struct {
	ID            string
	Name          string
	Aliases       []string
	RoomText      string
	InventoryText string
	ExamineText   string
	Conditions    []string
	Portable      bool
	Kind          ItemKind
	Container     *ContainerProps // non-nil iff Kind == KindContainer
	StartLocation ItemLocation
}

// ContainerProps carries the container-only fields of an item.
type ContainerProps struct {
	Capacity     *int     // nil means unlimited; 0 is always full
	Conditions   []string // flags required to interact (open/closed gate)
	CompleteWhen []string // item ids that complete the container
	CompleteFlag string
	CompleteText string
	ClosedText   string
	Verbs        []string // accepted store verbs ("put", "place")
	Prep         string   // "in", "on"
}

// LocationKind tags the closed set of item locations.
type LocationKind int

const (
	LocRoom LocationKind = iota
	LocInventory
	LocItem
	LocNpc
)

// ItemLocation is where an item currently is. ID is the room, parent item,
// or holder NPC id; it is empty for LocInventory.
type ItemLocation struct {
	Kind LocationKind
	ID   string
}

// Npc is a non-player character.
type Npc struct {
	ID          string
	Name        string
	Aliases     []string
	StartRoom   string
	RoomText    string
	ExamineText string
	Conditions  []string
	Actions     []Action
	Roam        *NpcRoam

	BlockMovement   bool
	BlockConditions []string
	BlockText       string
	BlockExits      []string // exit directions/verbs to block; empty = all

	Foe           bool
	AttackChance  int // 0..100, rolled when blocking
	AttackText    string
	AttackEffects []string

	Dialogue []Dialogue
}

// NpcRoam describes deterministic wandering between rooms.
type NpcRoam struct {
	Enabled      bool
	AllowedRooms []string
	Chance       int // 0..100 per successful player move
}

// Dialogue is one entry in an NPC's conversation list.
type Dialogue struct {
	ID         string
	Conditions []string
	Response   string
	Effects    []string
	OneShot    bool
}

// GlobalCondition fires after a command when its conditions hold.
type GlobalCondition struct {
	ID              string
	Conditions      []string
	AllowedRooms    []string
	DisallowedRooms []string
	Response        string
	Effects         []string
	OneShot         bool
}

// State is the complete mutable game state.
type State struct {
	CurrentRoom    string
	Flags          map[string]bool // only present flags are stored
	ItemLocations  map[string]ItemLocation
	NpcLocations   map[string]string
	FiredGlobals   map[string]bool
	FiredDialogues map[string]bool // keyed "npc::dialogue"
	TurnCount      uint64          // successful room changes
	ActionCount    uint64          // processed commands
	CommandLog     []string
}

// SegmentKind tags an output segment.
type SegmentKind int

const (
	SegTitle SegmentKind = iota
	SegText
	SegEvent
	SegExits
)

// Segment is one typed piece of narrative output.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Result is the output of a single game step.
type Result struct {
	Segments     []Segment
	Quit         bool
	ChangedFlags []string // flags changed by the global-condition pass
	Trace        []string // resolver decisions, for --trace
}
