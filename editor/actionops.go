package editor

import (
	"voidwake/mobs/behavior"
	"voidwake/mobs/tomlval"
)

func defaultCommand() tomlval.Value {
	tab := tomlval.NewTable()
	tab.Set("action", tomlval.StringValue(string(behavior.CmdMoveDown)))
	return tomlval.TableValue(tab)
}

func commandsOf(root *tomlval.Value, path []int, create bool) *tomlval.Value {
	node := NodeAt(root, path)
	kind, ok := behavior.KindOf(node)
	if !ok || kind != behavior.NodeAction {
		return nil
	}
	tab, _ := node.Table()
	behaviors, found := tab.Get("behaviors")
	if !found {
		if !create {
			return nil
		}
		tab.Set("behaviors", tomlval.ArrayValue())
		behaviors, _ = tab.Get("behaviors")
	}
	if behaviors.Kind() != tomlval.KindArray {
		return nil
	}
	return behaviors
}

func commandAt(root *tomlval.Value, path []int, index int) *tomlval.Table {
	behaviors := commandsOf(root, path, false)
	if behaviors == nil {
		return nil
	}
	entry := behaviors.ArrayAt(index)
	if entry == nil {
		return nil
	}
	tab, ok := entry.Table()
	if !ok {
		return nil
	}
	return tab
}

// AddCommand appends a default MoveDown command to the Action node at
// path, creating the behaviors array when it is missing.
func AddCommand(root *tomlval.Value, path []int) bool {
	behaviors := commandsOf(root, path, true)
	if behaviors == nil {
		return false
	}
	behaviors.ArrayAppend(defaultCommand())
	return true
}

// DeleteCommand removes the command at index.
func DeleteCommand(root *tomlval.Value, path []int, index int) bool {
	behaviors := commandsOf(root, path, false)
	if behaviors == nil || index < 0 || index >= behaviors.ArrayLen() {
		return false
	}
	behaviors.ArrayRemove(index)
	return true
}

// MoveCommand swaps the command at index with its neighbor in the
// given direction. Moves past either end do nothing.
func MoveCommand(root *tomlval.Value, path []int, index, direction int) bool {
	behaviors := commandsOf(root, path, false)
	if behaviors == nil {
		return false
	}
	target := index + direction
	if index < 0 || index >= behaviors.ArrayLen() || target < 0 || target >= behaviors.ArrayLen() {
		return false
	}
	behaviors.ArraySwap(index, target)
	return true
}

// RetypeCommand rewrites the command at index as the given kind,
// dropping every parameter and installing the new kind's defaults.
func RetypeCommand(root *tomlval.Value, path []int, index int, kind behavior.CommandKind) bool {
	tab := commandAt(root, path, index)
	if tab == nil {
		return false
	}
	for _, key := range tab.Keys() {
		if key != "action" {
			tab.Delete(key)
		}
	}
	tab.Set("action", tomlval.StringValue(string(kind)))

	switch kind {
	case behavior.CmdMoveTo:
		tab.Set("x", tomlval.FloatValue(0.0))
		tab.Set("y", tomlval.FloatValue(0.0))
	case behavior.CmdDoForTime:
		tab.Set("seconds", tomlval.FloatValue(1.0))
	}
	return true
}

// SetCommandParam writes a parameter on the command at index.
func SetCommandParam(root *tomlval.Value, path []int, index int, key string, value tomlval.Value) bool {
	tab := commandAt(root, path, index)
	if tab == nil {
		return false
	}
	tab.Set(key, value)
	return true
}

// RemoveCommandParam deletes a parameter from the command at index.
func RemoveCommandParam(root *tomlval.Value, path []int, index int, key string) bool {
	tab := commandAt(root, path, index)
	if tab == nil || !tab.Has(key) {
		return false
	}
	tab.Delete(key)
	return true
}
