package editor

import (
	"testing"

	"voidwake/mobs/behavior"
	"voidwake/mobs/tomlval"
)

func TestAddChildToControlNode(t *testing.T) {
	root := behaviorFixture(t)

	if !AddChild(&root, nil) {
		t.Fatalf("append to sequence failed")
	}
	if got := ChildCount(&root); got != 4 {
		t.Fatalf("child count = %d", got)
	}
	added := NodeAt(&root, []int{3})
	kind, _ := behavior.KindOf(added)
	if kind != behavior.NodeAction {
		t.Fatalf("default child = %s, want Action", kind)
	}
	tab, _ := added.Table()
	name, _ := tab.Get("name")
	if s, _ := name.AsString(); s != "New Action" {
		t.Fatalf("default child name = %q", s)
	}
	behaviors, _ := tab.Get("behaviors")
	if behaviors.Kind() != tomlval.KindArray || behaviors.ArrayLen() != 0 {
		t.Fatalf("default child behaviors not an empty array")
	}
}

func TestAddChildFillsWhileAndIfThenSlots(t *testing.T) {
	root := behaviorFixture(t)

	// While already has its child.
	if AddChild(&root, []int{1}) {
		t.Fatalf("while with occupied child slot must reject")
	}
	if !DeleteChild(&root, []int{1}, 0) {
		t.Fatalf("removing while condition failed")
	}
	// Still occupied after losing only the condition.
	if AddChild(&root, []int{1}) {
		t.Fatalf("while child survives condition removal")
	}

	// IfThen has both branches; drop the else branch and refill it.
	if !DeleteChild(&root, []int{2}, 2) {
		t.Fatalf("removing else branch failed")
	}
	if !AddChild(&root, []int{2}) {
		t.Fatalf("refilling else branch failed")
	}
	refilled := NodeAt(&root, []int{2, 2})
	kind, _ := behavior.KindOf(refilled)
	if kind != behavior.NodeAction {
		t.Fatalf("refilled else branch = %s", kind)
	}
}

func TestAddConditionRefillsEmptySlot(t *testing.T) {
	root := behaviorFixture(t)

	// Occupied slots reject on both condition-bearing kinds.
	if AddCondition(&root, []int{1}) {
		t.Fatalf("while with a condition must reject")
	}
	if AddCondition(&root, []int{2}) {
		t.Fatalf("ifthen with a condition must reject")
	}

	if !DeleteChild(&root, []int{1}, 0) {
		t.Fatalf("removing while condition failed")
	}
	if NodeAt(&root, []int{1, 0}) != nil {
		t.Fatalf("condition still resolves after delete")
	}
	if !AddCondition(&root, []int{1}) {
		t.Fatalf("refilling while condition failed")
	}
	condition := NodeAt(&root, []int{1, 0})
	kind, _ := behavior.KindOf(condition)
	if kind != behavior.NodeWait {
		t.Fatalf("default condition = %s, want Wait", kind)
	}
	tab, _ := condition.Table()
	secs, ok := tab.Get("seconds")
	if !ok {
		t.Fatalf("default condition has no seconds")
	}
	if n, _ := secs.AsNumber(); n != 1.0 {
		t.Fatalf("default condition seconds = %v", n)
	}
}

func TestAddConditionRejectsOtherKinds(t *testing.T) {
	root := behaviorFixture(t)
	if AddCondition(&root, nil) {
		t.Fatalf("sequence has no condition slot")
	}
	if AddCondition(&root, []int{0}) {
		t.Fatalf("wait has no condition slot")
	}
	if AddCondition(&root, []int{9}) {
		t.Fatalf("bad path must be a no-op")
	}
}

func TestAddChildRejectsLeaves(t *testing.T) {
	root := behaviorFixture(t)
	if AddChild(&root, []int{0}) {
		t.Fatalf("wait node must not accept children")
	}
	if AddChild(&root, []int{9}) {
		t.Fatalf("bad path must be a no-op")
	}
}

func TestDeleteChildProtectedSlots(t *testing.T) {
	root := behaviorFixture(t)

	// While body is protected.
	if DeleteChild(&root, []int{1}, 1) {
		t.Fatalf("while child must be protected")
	}
	// IfThen condition and then branch are protected.
	if DeleteChild(&root, []int{2}, 0) {
		t.Fatalf("ifthen condition must be protected")
	}
	if DeleteChild(&root, []int{2}, 1) {
		t.Fatalf("ifthen then branch must be protected")
	}

	// While condition and IfThen else branch are removable.
	if !DeleteChild(&root, []int{1}, 0) {
		t.Fatalf("while condition should be removable")
	}
	if NodeAt(&root, []int{1, 0}) != nil {
		t.Fatalf("condition still resolves after delete")
	}
	if NodeAt(&root, []int{1, 1}) == nil {
		t.Fatalf("while child lost alongside condition")
	}
	if !DeleteChild(&root, []int{2}, 2) {
		t.Fatalf("else branch should be removable")
	}
}

func TestDeleteChildFromControlNode(t *testing.T) {
	root := behaviorFixture(t)

	if !DeleteChild(&root, nil, 0) {
		t.Fatalf("delete failed")
	}
	if got := ChildCount(&root); got != 2 {
		t.Fatalf("child count = %d", got)
	}
	// Former index 1 (While) moved up.
	kind, _ := behavior.KindOf(NodeAt(&root, []int{0}))
	if kind != behavior.NodeWhile {
		t.Fatalf("first child after splice = %s", kind)
	}
	if DeleteChild(&root, nil, 5) {
		t.Fatalf("out-of-range delete must be a no-op")
	}
}

func TestMoveChildSwapsAndClamps(t *testing.T) {
	root := behaviorFixture(t)

	if !MoveChild(&root, nil, 0, 1) {
		t.Fatalf("move down failed")
	}
	kind, _ := behavior.KindOf(NodeAt(&root, []int{0}))
	if kind != behavior.NodeWhile {
		t.Fatalf("after swap [0] = %s", kind)
	}
	kind, _ = behavior.KindOf(NodeAt(&root, []int{1}))
	if kind != behavior.NodeWait {
		t.Fatalf("after swap [1] = %s", kind)
	}

	if MoveChild(&root, nil, 0, -1) {
		t.Fatalf("move above start must clamp to no-op")
	}
	if MoveChild(&root, nil, 2, 1) {
		t.Fatalf("move past end must clamp to no-op")
	}
	if MoveChild(&root, []int{1}, 0, 1) {
		t.Fatalf("wait node has no movable children")
	}
}

func TestRetypeClearsFieldsAndInstallsDefaults(t *testing.T) {
	cases := []struct {
		name   string
		kind   behavior.NodeKind
		verify func(t *testing.T, tab *tomlval.Table)
	}{
		{"to wait", behavior.NodeWait, func(t *testing.T, tab *tomlval.Table) {
			secs, ok := tab.Get("seconds")
			if !ok {
				t.Fatalf("wait default seconds missing")
			}
			if n, _ := secs.AsNumber(); n != 1.0 {
				t.Fatalf("seconds = %v", n)
			}
		}},
		{"to trigger", behavior.NodeTrigger, func(t *testing.T, tab *tomlval.Table) {
			tt, ok := tab.Get("trigger_type")
			if !ok {
				t.Fatalf("trigger_type missing")
			}
			if s, _ := tt.AsString(); s != "" {
				t.Fatalf("trigger_type = %q, want empty", s)
			}
		}},
		{"to fallback", behavior.NodeFallback, func(t *testing.T, tab *tomlval.Table) {
			children, ok := tab.Get("children")
			if !ok || children.Kind() != tomlval.KindArray || children.ArrayLen() != 0 {
				t.Fatalf("fallback children not an empty array")
			}
		}},
		{"to while", behavior.NodeWhile, func(t *testing.T, tab *tomlval.Table) {
			child, ok := tab.Get("child")
			if !ok {
				t.Fatalf("while child missing")
			}
			kind, _ := behavior.KindOf(child)
			if kind != behavior.NodeAction {
				t.Fatalf("while default child = %s", kind)
			}
		}},
		{"to ifthen", behavior.NodeIfThen, func(t *testing.T, tab *tomlval.Table) {
			condition, ok := tab.Get("condition")
			if !ok || !tab.Has("then_child") {
				t.Fatalf("ifthen defaults missing")
			}
			kind, _ := behavior.KindOf(condition)
			if kind != behavior.NodeWait {
				t.Fatalf("default condition = %s, want Wait", kind)
			}
			if tab.Has("else_child") {
				t.Fatalf("ifthen must not default an else branch")
			}
		}},
		{"to action", behavior.NodeAction, func(t *testing.T, tab *tomlval.Table) {
			if !tab.Has("name") || !tab.Has("behaviors") {
				t.Fatalf("action defaults missing")
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := behaviorFixture(t)
			// Retype the While node; its old condition/child must vanish.
			if !Retype(&root, []int{1}, tc.kind) {
				t.Fatalf("retype failed")
			}
			node := NodeAt(&root, []int{1})
			kind, _ := behavior.KindOf(node)
			if kind != tc.kind {
				t.Fatalf("kind = %s, want %s", kind, tc.kind)
			}
			tab, _ := node.Table()
			if tc.kind != behavior.NodeWhile && tab.Has("condition") {
				t.Fatalf("old condition survived retype")
			}
			tc.verify(t, tab)
		})
	}
}

func TestSetAndRemoveField(t *testing.T) {
	root := behaviorFixture(t)

	if !SetField(&root, []int{0}, "seconds", tomlval.FloatValue(4.5)) {
		t.Fatalf("set field failed")
	}
	node := NodeAt(&root, []int{0})
	tab, _ := node.Table()
	secs, _ := tab.Get("seconds")
	if n, _ := secs.AsNumber(); n != 4.5 {
		t.Fatalf("seconds = %v", n)
	}

	if !RemoveField(&root, []int{0}, "seconds") {
		t.Fatalf("remove field failed")
	}
	if tab.Has("seconds") {
		t.Fatalf("field survived removal")
	}
	if RemoveField(&root, []int{0}, "seconds") {
		t.Fatalf("removing an absent field must be a no-op")
	}
	if SetField(&root, []int{9}, "seconds", tomlval.FloatValue(1)) {
		t.Fatalf("bad path must be a no-op")
	}
}
