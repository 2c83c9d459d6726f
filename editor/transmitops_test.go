package editor

import (
	"testing"

	"voidwake/mobs/behavior"
	"voidwake/mobs/tomlval"
)

func nestedTable(t *testing.T, root *tomlval.Value, sub int) *tomlval.Table {
	t.Helper()
	tab := nestedCommandAt(root, actionPath, 0, sub)
	if tab == nil {
		t.Fatalf("nested command %d not resolvable", sub)
	}
	return tab
}

func nestedAction(t *testing.T, root *tomlval.Value, sub int) string {
	t.Helper()
	action, ok := nestedTable(t, root, sub).Get("action")
	if !ok {
		t.Fatalf("nested command %d missing action", sub)
	}
	s, _ := action.AsString()
	return s
}

func transmitFixture(t *testing.T) tomlval.Value {
	t.Helper()
	root := behaviorFixture(t)
	if !RetypeCommand(&root, actionPath, 0, behavior.CmdTransmitMobBehavior) {
		t.Fatalf("retype to TransmitMobBehavior failed")
	}
	return root
}

func TestAddNestedCommandCreatesList(t *testing.T) {
	root := transmitFixture(t)

	// The command has no nested list yet; adding creates it.
	if !AddNestedCommand(&root, actionPath, 0) {
		t.Fatalf("add nested failed")
	}
	if got := nestedAction(t, &root, 0); got != string(behavior.CmdMoveDown) {
		t.Fatalf("default nested command = %q", got)
	}
	if !AddNestedCommand(&root, actionPath, 0) {
		t.Fatalf("second add nested failed")
	}
	if got := nestedAction(t, &root, 1); got != string(behavior.CmdMoveDown) {
		t.Fatalf("appended nested command = %q", got)
	}

	if AddNestedCommand(&root, actionPath, 9) {
		t.Fatalf("out-of-range command index must be a no-op")
	}
	if AddNestedCommand(&root, []int{0}, 0) {
		t.Fatalf("wait node has no commands to nest under")
	}
}

func TestDeleteAndMoveNestedCommand(t *testing.T) {
	root := transmitFixture(t)
	AddNestedCommand(&root, actionPath, 0)
	AddNestedCommand(&root, actionPath, 0)
	AddNestedCommand(&root, actionPath, 0)
	RetypeNestedCommand(&root, actionPath, 0, 2, behavior.CmdMoveUp)

	// [MoveDown, MoveDown, MoveUp]
	if !MoveNestedCommand(&root, actionPath, 0, 2, -1) {
		t.Fatalf("move up failed")
	}
	if got := nestedAction(t, &root, 1); got != string(behavior.CmdMoveUp) {
		t.Fatalf("after move nested 1 = %q", got)
	}
	if MoveNestedCommand(&root, actionPath, 0, 0, -1) {
		t.Fatalf("move above start must clamp")
	}
	if MoveNestedCommand(&root, actionPath, 0, 2, 1) {
		t.Fatalf("move past end must clamp")
	}

	if !DeleteNestedCommand(&root, actionPath, 0, 1) {
		t.Fatalf("delete failed")
	}
	if got := nestedAction(t, &root, 1); got != string(behavior.CmdMoveDown) {
		t.Fatalf("after delete nested 1 = %q", got)
	}
	if DeleteNestedCommand(&root, actionPath, 0, 9) {
		t.Fatalf("out-of-range delete must be a no-op")
	}
}

func TestRetypeNestedCommandClearsParams(t *testing.T) {
	root := transmitFixture(t)
	AddNestedCommand(&root, actionPath, 0)
	if !SetNestedCommandParam(&root, actionPath, 0, 0, "speed", tomlval.FloatValue(3.0)) {
		t.Fatalf("set nested param failed")
	}

	if !RetypeNestedCommand(&root, actionPath, 0, 0, behavior.CmdMoveTo) {
		t.Fatalf("retype failed")
	}
	tab := nestedTable(t, &root, 0)
	if tab.Has("speed") {
		t.Fatalf("old param survived retype")
	}
	x, okX := tab.Get("x")
	y, okY := tab.Get("y")
	if !okX || !okY {
		t.Fatalf("MoveTo defaults missing")
	}
	if nx, _ := x.AsNumber(); nx != 0 {
		t.Fatalf("x = %v", nx)
	}
	if ny, _ := y.AsNumber(); ny != 0 {
		t.Fatalf("y = %v", ny)
	}

	if !RetypeNestedCommand(&root, actionPath, 0, 0, behavior.CmdDoForTime) {
		t.Fatalf("retype to DoForTime failed")
	}
	tab = nestedTable(t, &root, 0)
	if tab.Has("x") || tab.Has("y") {
		t.Fatalf("MoveTo params survived retype")
	}
	secs, ok := tab.Get("seconds")
	if !ok {
		t.Fatalf("DoForTime default missing")
	}
	if n, _ := secs.AsNumber(); n != 1.0 {
		t.Fatalf("seconds = %v", n)
	}
}

func TestSetAndRemoveNestedCommandParam(t *testing.T) {
	root := transmitFixture(t)
	AddNestedCommand(&root, actionPath, 0)

	if !SetNestedCommandParam(&root, actionPath, 0, 0, "seconds", tomlval.FloatValue(2.5)) {
		t.Fatalf("set nested param failed")
	}
	tab := nestedTable(t, &root, 0)
	secs, ok := tab.Get("seconds")
	if !ok {
		t.Fatalf("param missing after set")
	}
	if n, _ := secs.AsNumber(); n != 2.5 {
		t.Fatalf("seconds = %v", n)
	}

	if !RemoveNestedCommandParam(&root, actionPath, 0, 0, "seconds") {
		t.Fatalf("remove nested param failed")
	}
	if tab.Has("seconds") {
		t.Fatalf("param survived removal")
	}
	if RemoveNestedCommandParam(&root, actionPath, 0, 0, "seconds") {
		t.Fatalf("removing absent param must be a no-op")
	}
	if SetNestedCommandParam(&root, actionPath, 0, 9, "seconds", tomlval.FloatValue(1)) {
		t.Fatalf("out-of-range nested index must be a no-op")
	}
}
