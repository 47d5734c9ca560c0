// Package loader builds an immutable world from Lua DSL files or a YAML file,
// then validates it. The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/roomcore/types"
	lua "github.com/yuin/gopher-lua"
)

// Load reads a world from path: a directory of .lua files, a single .lua
// file, or a .yaml/.yml file. It returns the compiled world and any
// validation warnings.
func Load(path string) (*types.World, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening world %s: %w", path, err)
	}

	var raw *rawWorld
	switch {
	case info.IsDir():
		raw, err = readLuaDir(path)
	case isYAML(path):
		raw, err = readYAML(path)
	case strings.HasSuffix(path, ".lua"):
		raw, err = readLuaFiles(filepath.Dir(path), []string{filepath.Base(path)})
	default:
		return nil, nil, fmt.Errorf("unsupported world file %s (want a directory, .lua, .yaml or .yml)", path)
	}
	if err != nil {
		return nil, nil, err
	}

	w, warnings, err := compile(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling world: %w", err)
	}

	ve := validate(w, warnings)
	if len(ve.Errors) > 0 {
		return nil, ve.Warnings, ve
	}
	return w, ve.Warnings, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	world   *lua.LTable
	rooms   []rawTable
	items   []rawTable
	npcs    []rawTable
	globals []rawTable
	actions []luaAction
}

type rawTable struct {
	id    string
	table *lua.LTable
}

type luaAction struct {
	id     string
	table  *lua.LTable
	scoped bool
}

// readLuaDir executes every .lua file in dir, world.lua first.
func readLuaDir(dir string) (*rawWorld, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	return readLuaFiles(dir, sortedLuaFiles(luaFiles))
}

func readLuaFiles(dir string, files []string) (*rawWorld, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}
	return coll.toRaw()
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// World files must not depend on randomness.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}

// sortedLuaFiles returns .lua file names with world.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var worldFile string
	var others []string
	for _, f := range files {
		if f == "world.lua" {
			worldFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if worldFile != "" {
		return append([]string{worldFile}, others...)
	}
	return others
}

// toRaw converts the collected Lua tables into the shared raw form. Action
// markers inside rooms and NPCs are replaced by the action tables they name.
func (c *collector) toRaw() (*rawWorld, error) {
	if c.world == nil {
		return nil, fmt.Errorf("no World{} definition found")
	}

	raw := &rawWorld{World: &rawHeader{}}
	if err := decodeValue(tableToAnyMap(c.world), raw.World); err != nil {
		return nil, fmt.Errorf("World{}: %w", err)
	}

	for _, r := range c.rooms {
		var room rawRoom
		if err := c.decodeScoped(r, &room); err != nil {
			return nil, fmt.Errorf("room %s: %w", r.id, err)
		}
		raw.Rooms = append(raw.Rooms, room)
	}
	for _, r := range c.items {
		var item rawItem
		if err := decodeValue(withID(r), &item); err != nil {
			return nil, fmt.Errorf("item %s: %w", r.id, err)
		}
		raw.Items = append(raw.Items, item)
	}
	for _, r := range c.npcs {
		var npc rawNpc
		if err := c.decodeScoped(r, &npc); err != nil {
			return nil, fmt.Errorf("npc %s: %w", r.id, err)
		}
		raw.Npcs = append(raw.Npcs, npc)
	}
	for _, r := range c.globals {
		var gc rawGlobal
		if err := decodeValue(withID(r), &gc); err != nil {
			return nil, fmt.Errorf("global %s: %w", r.id, err)
		}
		raw.Globals = append(raw.Globals, gc)
	}

	for _, a := range c.actions {
		if a.scoped {
			continue
		}
		var action rawAction
		if err := decodeValue(withID(rawTable{id: a.id, table: a.table}), &action); err != nil {
			return nil, fmt.Errorf("action %s: %w", a.id, err)
		}
		raw.GlobalActions = append(raw.GlobalActions, action)
	}
	return raw, nil
}

// decodeScoped decodes a room or NPC table, resolving action markers.
func (c *collector) decodeScoped(r rawTable, out any) error {
	m := withID(r)
	if list, ok := m["actions"].([]any); ok {
		resolved := make([]any, 0, len(list))
		for _, entry := range list {
			fields, ok := entry.(map[string]any)
			if !ok {
				return fmt.Errorf("actions entries must be tables")
			}
			id, isMarker := fields[actionMarker].(string)
			if !isMarker {
				resolved = append(resolved, fields)
				continue
			}
			action := c.claimAction(id)
			if action == nil {
				return fmt.Errorf("unknown action %q", id)
			}
			resolved = append(resolved, withID(rawTable{id: id, table: action.table}))
		}
		m["actions"] = resolved
	}
	return decodeValue(m, out)
}

func (c *collector) claimAction(id string) *luaAction {
	for i := range c.actions {
		if c.actions[i].id == id {
			c.actions[i].scoped = true
			return &c.actions[i]
		}
	}
	return nil
}

func withID(r rawTable) map[string]any {
	m := tableToAnyMap(r.table)
	m["id"] = r.id
	return m
}

// toGoValue converts a Lua value to a Go value recursively. Tables with
// sequential integer keys become slices; empty tables become nil.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(val)
	case *lua.LTable:
		if maxN := val.MaxN(); maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := tableToAnyMap(val)
		if len(m) == 0 {
			return nil
		}
		return m
	default:
		return nil
	}
}

// tableToAnyMap converts the string-keyed fields of a Lua table.
func tableToAnyMap(tbl *lua.LTable) map[string]any {
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			m[string(ks)] = toGoValue(v)
		}
	})
	return m
}
