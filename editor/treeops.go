package editor

import (
	"voidwake/mobs/behavior"
	"voidwake/mobs/tomlval"
)

// Every mutation here reports whether it applied. A bad path, a
// protected slot or a full slot is a no-op, never a panic: the tree
// view fires these against whatever the user last clicked.

func defaultActionNode() tomlval.Value {
	tab := tomlval.NewTable()
	tab.Set("type", tomlval.StringValue(string(behavior.NodeAction)))
	tab.Set("name", tomlval.StringValue("New Action"))
	tab.Set("behaviors", tomlval.ArrayValue())
	return tomlval.TableValue(tab)
}

func defaultConditionNode() tomlval.Value {
	tab := tomlval.NewTable()
	tab.Set("type", tomlval.StringValue(string(behavior.NodeWait)))
	tab.Set("seconds", tomlval.FloatValue(1.0))
	return tomlval.TableValue(tab)
}

// AddChild inserts a default Action into the first open child slot of
// the node at path: appended for control nodes, the child slot of a
// While, then_child then else_child for an IfThen.
func AddChild(root *tomlval.Value, path []int) bool {
	node := NodeAt(root, path)
	kind, ok := behavior.KindOf(node)
	if !ok {
		return false
	}
	tab, ok := node.Table()
	if !ok {
		return false
	}
	switch {
	case kind.IsControl():
		children, found := tab.Get("children")
		if !found {
			tab.Set("children", tomlval.ArrayValue(defaultActionNode()))
			return true
		}
		if children.Kind() != tomlval.KindArray {
			return false
		}
		children.ArrayAppend(defaultActionNode())
		return true
	case kind == behavior.NodeWhile:
		if tab.Has("child") {
			return false
		}
		tab.Set("child", defaultActionNode())
		return true
	case kind == behavior.NodeIfThen:
		if !tab.Has("then_child") {
			tab.Set("then_child", defaultActionNode())
			return true
		}
		if !tab.Has("else_child") {
			tab.Set("else_child", defaultActionNode())
			return true
		}
		return false
	default:
		return false
	}
}

// AddCondition fills the empty condition slot of the While or IfThen
// node at path with a one-second Wait. An occupied slot rejects.
func AddCondition(root *tomlval.Value, path []int) bool {
	node := NodeAt(root, path)
	kind, ok := behavior.KindOf(node)
	if !ok || (kind != behavior.NodeWhile && kind != behavior.NodeIfThen) {
		return false
	}
	tab, ok := node.Table()
	if !ok || tab.Has("condition") {
		return false
	}
	tab.Set("condition", defaultConditionNode())
	return true
}

// DeleteChild removes the child at index from the node at path. A
// While keeps its body and an IfThen keeps its condition and then
// branch; only the While condition (index 0) and the IfThen else
// branch (index 2) are removable.
func DeleteChild(root *tomlval.Value, path []int, index int) bool {
	node := NodeAt(root, path)
	kind, ok := behavior.KindOf(node)
	if !ok {
		return false
	}
	tab, ok := node.Table()
	if !ok {
		return false
	}
	switch {
	case kind.IsControl():
		children, found := tab.Get("children")
		if !found || index < 0 || index >= children.ArrayLen() {
			return false
		}
		children.ArrayRemove(index)
		return true
	case kind == behavior.NodeWhile:
		if index != 0 || !tab.Has("condition") {
			return false
		}
		tab.Delete("condition")
		return true
	case kind == behavior.NodeIfThen:
		if index != 2 || !tab.Has("else_child") {
			return false
		}
		tab.Delete("else_child")
		return true
	default:
		return false
	}
}

// MoveChild swaps the child at index with its neighbor in the given
// direction (+1 or -1). Moves past either end do nothing.
func MoveChild(root *tomlval.Value, path []int, index, direction int) bool {
	node := NodeAt(root, path)
	kind, ok := behavior.KindOf(node)
	if !ok || !kind.IsControl() {
		return false
	}
	tab, _ := node.Table()
	children, found := tab.Get("children")
	if !found {
		return false
	}
	target := index + direction
	if index < 0 || index >= children.ArrayLen() || target < 0 || target >= children.ArrayLen() {
		return false
	}
	children.ArraySwap(index, target)
	return true
}

// Retype rewrites the node at path as a fresh node of the given kind.
// Everything except the discriminant is dropped, then the new kind's
// defaults are installed so the node is immediately well-formed.
func Retype(root *tomlval.Value, path []int, kind behavior.NodeKind) bool {
	node := NodeAt(root, path)
	if node == nil {
		return false
	}
	tab, ok := node.Table()
	if !ok {
		return false
	}
	for _, key := range tab.Keys() {
		tab.Delete(key)
	}
	tab.Set("type", tomlval.StringValue(string(kind)))

	switch {
	case kind.IsControl():
		tab.Set("children", tomlval.ArrayValue())
	case kind == behavior.NodeWhile:
		tab.Set("child", defaultActionNode())
	case kind == behavior.NodeIfThen:
		tab.Set("condition", defaultConditionNode())
		tab.Set("then_child", defaultActionNode())
	case kind == behavior.NodeWait:
		tab.Set("seconds", tomlval.FloatValue(1.0))
	case kind == behavior.NodeTrigger:
		tab.Set("trigger_type", tomlval.StringValue(""))
	case kind == behavior.NodeAction:
		tab.Set("name", tomlval.StringValue("New Action"))
		tab.Set("behaviors", tomlval.ArrayValue())
	}
	return true
}

// SetField writes a field on the node at path.
func SetField(root *tomlval.Value, path []int, key string, value tomlval.Value) bool {
	node := NodeAt(root, path)
	if node == nil {
		return false
	}
	tab, ok := node.Table()
	if !ok {
		return false
	}
	tab.Set(key, value)
	return true
}

// RemoveField deletes a field from the node at path.
func RemoveField(root *tomlval.Value, path []int, key string) bool {
	node := NodeAt(root, path)
	if node == nil {
		return false
	}
	tab, ok := node.Table()
	if !ok || !tab.Has(key) {
		return false
	}
	tab.Delete(key)
	return true
}
