package editor

import (
	"testing"

	"voidwake/mobs/behavior"
	"voidwake/mobs/tomlval"
)

// behaviorFixture returns a tree exercising every slot convention:
//
//	Sequence
//	  [0] Wait(1.0)
//	  [1] While (condition: Trigger, child: Action "chase")
//	  [2] IfThen (condition: Trigger, then: Wait(2.0), else: Wait(3.0))
func behaviorFixture(t *testing.T) tomlval.Value {
	t.Helper()
	doc, err := tomlval.Parse([]byte(`
[behavior]
type = "Sequence"

[[behavior.children]]
type = "Wait"
seconds = 1.0

[[behavior.children]]
type = "While"

[behavior.children.condition]
type = "Trigger"
trigger_type = "PlayerNear"

[behavior.children.child]
type = "Action"
name = "chase"
behaviors = [{ action = "MoveToTarget" }]

[[behavior.children]]
type = "IfThen"

[behavior.children.condition]
type = "Trigger"
trigger_type = "LowHealth"

[behavior.children.then_child]
type = "Wait"
seconds = 2.0

[behavior.children.else_child]
type = "Wait"
seconds = 3.0
`))
	if err != nil {
		t.Fatalf("fixture parse failed: %v", err)
	}
	tab, _ := (&doc).Table()
	node, ok := tab.Get("behavior")
	if !ok {
		t.Fatalf("fixture missing behavior")
	}
	return node.Clone()
}

func kindAt(t *testing.T, root *tomlval.Value, path []int) behavior.NodeKind {
	t.Helper()
	node := NodeAt(root, path)
	if node == nil {
		t.Fatalf("path %v did not resolve", path)
	}
	kind, ok := behavior.KindOf(node)
	if !ok {
		t.Fatalf("node at %v has no kind", path)
	}
	return kind
}

func TestNodeAtResolvesSlotConventions(t *testing.T) {
	root := behaviorFixture(t)

	if got := kindAt(t, &root, nil); got != behavior.NodeSequence {
		t.Fatalf("root = %s", got)
	}
	if got := kindAt(t, &root, []int{0}); got != behavior.NodeWait {
		t.Fatalf("[0] = %s", got)
	}
	if got := kindAt(t, &root, []int{1, 0}); got != behavior.NodeTrigger {
		t.Fatalf("[1 0] (while condition) = %s", got)
	}
	if got := kindAt(t, &root, []int{1, 1}); got != behavior.NodeAction {
		t.Fatalf("[1 1] (while child) = %s", got)
	}
	if got := kindAt(t, &root, []int{2, 0}); got != behavior.NodeTrigger {
		t.Fatalf("[2 0] (ifthen condition) = %s", got)
	}
	if got := kindAt(t, &root, []int{2, 1}); got != behavior.NodeWait {
		t.Fatalf("[2 1] (then branch) = %s", got)
	}
	node := NodeAt(&root, []int{2, 2})
	if node == nil {
		t.Fatalf("[2 2] (else branch) did not resolve")
	}
	tab, _ := node.Table()
	secs, _ := tab.Get("seconds")
	if n, _ := secs.AsNumber(); n != 3.0 {
		t.Fatalf("else branch seconds = %v", n)
	}
}

func TestNodeAtLeavesTerminateWalk(t *testing.T) {
	root := behaviorFixture(t)

	cases := [][]int{
		{0, 0},       // indexing into a Wait
		{1, 1, 0},    // indexing into an Action
		{1, 2},       // While has no slot 2
		{2, 3},       // IfThen has no slot 3
		{5},          // out of range child
		{0, 0, 0, 0}, // deep garbage
	}
	for _, path := range cases {
		if node := NodeAt(&root, path); node != nil {
			t.Fatalf("path %v should not resolve", path)
		}
	}
}

func TestNodeAtReturnsLivePointer(t *testing.T) {
	root := behaviorFixture(t)
	node := NodeAt(&root, []int{0})
	tab, _ := node.Table()
	tab.Set("seconds", tomlval.FloatValue(9.0))

	again := NodeAt(&root, []int{0})
	againTab, _ := again.Table()
	secs, _ := againTab.Get("seconds")
	if n, _ := secs.AsNumber(); n != 9.0 {
		t.Fatalf("mutation through NodeAt pointer was lost: %v", n)
	}
}

func TestChildCount(t *testing.T) {
	root := behaviorFixture(t)

	if got := ChildCount(&root); got != 3 {
		t.Fatalf("sequence child count = %d", got)
	}
	if got := ChildCount(NodeAt(&root, []int{1})); got != 2 {
		t.Fatalf("while child count = %d", got)
	}
	if got := ChildCount(NodeAt(&root, []int{2})); got != 3 {
		t.Fatalf("ifthen child count = %d", got)
	}
	if got := ChildCount(NodeAt(&root, []int{0})); got != 0 {
		t.Fatalf("wait child count = %d", got)
	}
}
