package editor

import (
	"voidwake/mobs/behavior"
	"voidwake/mobs/tomlval"
)

// NodeAt resolves an ordered index path against a behavior node and
// returns a pointer into the live tree, or nil when the path does not
// resolve. Leaves end the walk: indexing into a Wait, Action or
// Trigger finds nothing rather than failing loudly, matching how the
// tree view probes for children.
func NodeAt(root *tomlval.Value, path []int) *tomlval.Value {
	node := root
	for _, index := range path {
		node = childAt(node, index)
		if node == nil {
			return nil
		}
	}
	return node
}

func childAt(node *tomlval.Value, index int) *tomlval.Value {
	kind, ok := behavior.KindOf(node)
	if !ok {
		return nil
	}
	key, indexed, ok := kind.ChildKey(index)
	if !ok {
		return nil
	}
	tab, ok := node.Table()
	if !ok {
		return nil
	}
	slot, ok := tab.Get(key)
	if !ok {
		return nil
	}
	if indexed {
		return slot.ArrayAt(index)
	}
	return slot
}

// ChildCount reports how many child indexes currently resolve on the
// node. For control nodes that is the children length; for While and
// IfThen it is the number of occupied slots.
func ChildCount(node *tomlval.Value) int {
	kind, ok := behavior.KindOf(node)
	if !ok {
		return 0
	}
	if kind.IsControl() {
		tab, _ := node.Table()
		if children, ok := tab.Get("children"); ok {
			return children.ArrayLen()
		}
		return 0
	}
	count := 0
	for i := 0; i < 3; i++ {
		if _, _, ok := kind.ChildKey(i); !ok {
			break
		}
		if childAt(node, i) != nil {
			count++
		}
	}
	return count
}
