package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// actionMarker is the key of the marker table Action returns, which rooms
// and NPCs list to scope the action to themselves.
const actionMarker = "__action_id"

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHelpers(L)
}

// curried registers a constructor of the form Name "id" { ... }.
func curried(L *lua.LState, name string, fn func(id string, tbl *lua.LTable) lua.LValue) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			if ret := fn(id, tbl); ret != nil {
				L.Push(ret)
				return 1
			}
			return 0
		}))
		return 1
	}))
}

func registerConstructors(L *lua.LState, coll *collector) {
	// World { id = "...", name = "...", start_room = "...", desc = "..." }
	L.SetGlobal("World", L.NewFunction(func(L *lua.LState) int {
		coll.world = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... }
	curried(L, "Room", func(id string, tbl *lua.LTable) lua.LValue {
		coll.rooms = append(coll.rooms, rawTable{id: id, table: tbl})
		return nil
	})

	// Item "id" { ... }
	curried(L, "Item", func(id string, tbl *lua.LTable) lua.LValue {
		coll.items = append(coll.items, rawTable{id: id, table: tbl})
		return nil
	})

	// NPC "id" { ... }
	curried(L, "NPC", func(id string, tbl *lua.LTable) lua.LValue {
		coll.npcs = append(coll.npcs, rawTable{id: id, table: tbl})
		return nil
	})

	// Global "id" { conditions = {...}, response = "...", ... }
	curried(L, "Global", func(id string, tbl *lua.LTable) lua.LValue {
		coll.globals = append(coll.globals, rawTable{id: id, table: tbl})
		return nil
	})

	// Action "id" { verbs = {...}, ... } registers a global action and
	// returns a marker. Listing the marker in a room's or NPC's actions
	// scopes the action there instead.
	curried(L, "Action", func(id string, tbl *lua.LTable) lua.LValue {
		coll.actions = append(coll.actions, luaAction{id: id, table: tbl})
		marker := L.NewTable()
		marker.RawSetString(actionMarker, lua.LString(id))
		return marker
	})

	// Dialogue "id" { ... } is a pass-through that fills in the id.
	curried(L, "Dialogue", func(id string, tbl *lua.LTable) lua.LValue {
		tbl.RawSetString("id", lua.LString(id))
		return tbl
	})
}

func registerHelpers(L *lua.LState) {
	// Not("flag") -> "!flag"
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("!" + L.CheckString(1)))
		return 1
	}))

	// Exit("north", "yard" [, { verbs = {...}, conditions = {...} }])
	L.SetGlobal("Exit", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		if opts := L.OptTable(3, nil); opts != nil {
			opts.ForEach(func(k, v lua.LValue) { tbl.RawSet(k, v) })
		}
		tbl.RawSetString("direction", lua.LString(L.CheckString(1)))
		tbl.RawSetString("target", lua.LString(L.CheckString(2)))
		L.Push(tbl)
		return 1
	}))

	// Start locations.
	location := func(prefix string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			L.Push(lua.LString(prefix + L.CheckString(1)))
			return 1
		})
	}
	L.SetGlobal("InRoom", location("room:"))
	L.SetGlobal("InItem", location("item:"))
	L.SetGlobal("HeldBy", location("npc:"))
	L.SetGlobal("Inventory", lua.LString("inventory"))
}
