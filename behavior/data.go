package behavior

import (
	"fmt"

	"voidwake/mobs/tomlval"
)

// NodeKind identifies a declarative behavior-tree node. The kind owns
// the child-slot layout, so path addressing and the compiler share one
// description of where children live.
type NodeKind string

const (
	NodeForever  NodeKind = "Forever"
	NodeSequence NodeKind = "Sequence"
	NodeFallback NodeKind = "Fallback"
	NodeWhile    NodeKind = "While"
	NodeIfThen   NodeKind = "IfThen"
	NodeWait     NodeKind = "Wait"
	NodeAction   NodeKind = "Action"
	NodeTrigger  NodeKind = "Trigger"
)

// NodeKinds lists every kind in menu order for editor tooling.
func NodeKinds() []NodeKind {
	return []NodeKind{
		NodeForever, NodeSequence, NodeFallback, NodeWhile,
		NodeIfThen, NodeWait, NodeAction, NodeTrigger,
	}
}

func ParseNodeKind(name string) (NodeKind, error) {
	switch NodeKind(name) {
	case NodeForever, NodeSequence, NodeFallback, NodeWhile,
		NodeIfThen, NodeWait, NodeAction, NodeTrigger:
		return NodeKind(name), nil
	default:
		return "", fmt.Errorf("unknown node type %q", name)
	}
}

// IsControl reports whether the kind keeps an ordered children array.
func (k NodeKind) IsControl() bool {
	switch k {
	case NodeForever, NodeSequence, NodeFallback:
		return true
	default:
		return false
	}
}

// ChildKey maps a path index to the table key holding that child.
// indexed means the key names an array addressed by the same index.
// ok is false when the kind has no slot at that index.
func (k NodeKind) ChildKey(i int) (key string, indexed bool, ok bool) {
	if i < 0 {
		return "", false, false
	}
	switch k {
	case NodeForever, NodeSequence, NodeFallback:
		return "children", true, true
	case NodeWhile:
		switch i {
		case 0:
			return "condition", false, true
		case 1:
			return "child", false, true
		}
	case NodeIfThen:
		switch i {
		case 0:
			return "condition", false, true
		case 1:
			return "then_child", false, true
		case 2:
			return "else_child", false, true
		}
	}
	return "", false, false
}

// KindOf reads the type discriminant out of a raw node table. Nodes
// without a recognizable tag report ok false.
func KindOf(node *tomlval.Value) (NodeKind, bool) {
	tab, isTab := node.Table()
	if !isTab {
		return "", false
	}
	tag, found := tab.Get("type")
	if !found {
		return "", false
	}
	name, isStr := tag.AsString()
	if !isStr {
		return "", false
	}
	kind, err := ParseNodeKind(name)
	if err != nil {
		return "", false
	}
	return kind, true
}

// CommandKind identifies a behavior command inside an Action node.
type CommandKind string

const (
	CmdMoveDown              CommandKind = "MoveDown"
	CmdMoveUp                CommandKind = "MoveUp"
	CmdMoveLeft              CommandKind = "MoveLeft"
	CmdMoveRight             CommandKind = "MoveRight"
	CmdBrakeHorizontal       CommandKind = "BrakeHorizontal"
	CmdBrakeAngular          CommandKind = "BrakeAngular"
	CmdMoveTo                CommandKind = "MoveTo"
	CmdFindPlayerTarget      CommandKind = "FindPlayerTarget"
	CmdMoveToTarget          CommandKind = "MoveToTarget"
	CmdRotateToTarget        CommandKind = "RotateToTarget"
	CmdMoveForward           CommandKind = "MoveForward"
	CmdLoseTarget            CommandKind = "LoseTarget"
	CmdSpawnMob              CommandKind = "SpawnMob"
	CmdSpawnProjectile       CommandKind = "SpawnProjectile"
	CmdDoForTime             CommandKind = "DoForTime"
	CmdTransmitMobBehavior   CommandKind = "TransmitMobBehavior"
	CmdRotateJointsClockwise CommandKind = "RotateJointsClockwise"
)

func CommandKinds() []CommandKind {
	return []CommandKind{
		CmdMoveDown, CmdMoveUp, CmdMoveLeft, CmdMoveRight,
		CmdBrakeHorizontal, CmdBrakeAngular, CmdMoveTo,
		CmdFindPlayerTarget, CmdMoveToTarget, CmdRotateToTarget,
		CmdMoveForward, CmdLoseTarget, CmdSpawnMob, CmdSpawnProjectile,
		CmdDoForTime, CmdTransmitMobBehavior, CmdRotateJointsClockwise,
	}
}

func ParseCommandKind(name string) (CommandKind, error) {
	for _, kind := range CommandKinds() {
		if string(kind) == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", name)
}
