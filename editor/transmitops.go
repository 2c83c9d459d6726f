package editor

import (
	"voidwake/mobs/behavior"
	"voidwake/mobs/tomlval"
)

// A TransmitMobBehavior command forwards a list of commands to the
// mobs it targets. That list is its own behaviors array, one level
// below the Action node's, and gets the same set of mutations.

func nestedCommandsOf(root *tomlval.Value, path []int, index int, create bool) *tomlval.Value {
	command := commandAt(root, path, index)
	if command == nil {
		return nil
	}
	nested, found := command.Get("behaviors")
	if !found {
		if !create {
			return nil
		}
		command.Set("behaviors", tomlval.ArrayValue())
		nested, _ = command.Get("behaviors")
	}
	if nested.Kind() != tomlval.KindArray {
		return nil
	}
	return nested
}

func nestedCommandAt(root *tomlval.Value, path []int, index, sub int) *tomlval.Table {
	nested := nestedCommandsOf(root, path, index, false)
	if nested == nil {
		return nil
	}
	entry := nested.ArrayAt(sub)
	if entry == nil {
		return nil
	}
	tab, ok := entry.Table()
	if !ok {
		return nil
	}
	return tab
}

// AddNestedCommand appends a default MoveDown command to the nested
// list of the command at index, creating the list when it is missing.
func AddNestedCommand(root *tomlval.Value, path []int, index int) bool {
	nested := nestedCommandsOf(root, path, index, true)
	if nested == nil {
		return false
	}
	nested.ArrayAppend(defaultCommand())
	return true
}

// DeleteNestedCommand removes the nested command at sub.
func DeleteNestedCommand(root *tomlval.Value, path []int, index, sub int) bool {
	nested := nestedCommandsOf(root, path, index, false)
	if nested == nil || sub < 0 || sub >= nested.ArrayLen() {
		return false
	}
	nested.ArrayRemove(sub)
	return true
}

// MoveNestedCommand swaps the nested command at sub with its neighbor
// in the given direction. Moves past either end do nothing.
func MoveNestedCommand(root *tomlval.Value, path []int, index, sub, direction int) bool {
	nested := nestedCommandsOf(root, path, index, false)
	if nested == nil {
		return false
	}
	target := sub + direction
	if sub < 0 || sub >= nested.ArrayLen() || target < 0 || target >= nested.ArrayLen() {
		return false
	}
	nested.ArraySwap(sub, target)
	return true
}

// RetypeNestedCommand rewrites the nested command at sub as the given
// kind, dropping every parameter and installing the kind's defaults.
func RetypeNestedCommand(root *tomlval.Value, path []int, index, sub int, kind behavior.CommandKind) bool {
	tab := nestedCommandAt(root, path, index, sub)
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

// SetNestedCommandParam writes a parameter on the nested command at sub.
func SetNestedCommandParam(root *tomlval.Value, path []int, index, sub int, key string, value tomlval.Value) bool {
	tab := nestedCommandAt(root, path, index, sub)
	if tab == nil {
		return false
	}
	tab.Set(key, value)
	return true
}

// RemoveNestedCommandParam deletes a parameter from the nested command at sub.
func RemoveNestedCommandParam(root *tomlval.Value, path []int, index, sub int, key string) bool {
	tab := nestedCommandAt(root, path, index, sub)
	if tab == nil || !tab.Has(key) {
		return false
	}
	tab.Delete(key)
	return true
}
