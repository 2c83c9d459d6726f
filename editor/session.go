package editor

import (
	"context"
	"fmt"

	"voidwake/mobs/behavior"
	"voidwake/mobs/logging"
	"voidwake/mobs/logging/editorlog"
	"voidwake/mobs/tomlval"
)

// Edit operation names, shared with the wire protocol.
const (
	OpCreateBehavior     = "createBehavior"
	OpAddChild           = "addChild"
	OpAddCondition       = "addCondition"
	OpDeleteChild        = "deleteChild"
	OpMoveChild          = "moveChild"
	OpRetype             = "retype"
	OpSetField           = "setField"
	OpRemoveField        = "removeField"
	OpAddCommand         = "addCommand"
	OpDeleteCommand      = "deleteCommand"
	OpMoveCommand        = "moveCommand"
	OpRetypeCommand      = "retypeCommand"
	OpSetCommandParam    = "setParam"
	OpRemoveCommandParam = "removeParam"
	OpAddNested          = "addNested"
	OpDeleteNested       = "deleteNested"
	OpMoveNested         = "moveNested"
	OpRetypeNested       = "retypeNested"
	OpSetNestedParam     = "setNestedParam"
	OpRemoveNestedParam  = "removeNestedParam"
)

// Edit is one requested mutation against the behavior tree of the
// session document. Paths address nodes; Index picks a child or a
// command within the addressed node where the op needs one, and
// SubIndex picks a command inside that command's nested list.
type Edit struct {
	Op        string
	Path      []int
	Index     int
	SubIndex  int
	Direction int
	Kind      string
	Field     string
	Value     *tomlval.Value
}

// Session owns one open document: its live value, the saved baseline
// for dirty checks, undo history and the status ring.
type Session struct {
	ref      string
	doc      tomlval.Value
	baseline tomlval.Value
	history  *History
	status   *StatusLog
	pub      logging.Publisher
}

func NewSession(ref string, doc tomlval.Value, pub logging.Publisher) *Session {
	if pub == nil {
		pub = logging.NopPublisher()
	}
	s := &Session{
		ref:      ref,
		doc:      doc.Clone(),
		baseline: doc.Clone(),
		history:  NewHistory(0),
		status:   newStatusLog(),
		pub:      pub,
	}
	editorlog.SessionOpened(context.Background(), pub, ref)
	return s
}

// NewMobDocument builds the starter document for a brand new mob.
func NewMobDocument(name string) tomlval.Value {
	collider := tomlval.NewTable()
	collider.Set("shape", tomlval.StringValue("Rectangle"))
	collider.Set("width", tomlval.FloatValue(10.0))
	collider.Set("height", tomlval.FloatValue(10.0))

	tab := tomlval.NewTable()
	tab.Set("name", tomlval.StringValue(name))
	tab.Set("sprite", tomlval.StringValue(""))
	tab.Set("spawnable", tomlval.BoolValue(true))
	tab.Set("health", tomlval.IntegerValue(50))
	tab.Set("colliders", tomlval.ArrayValue(tomlval.TableValue(collider)))
	return tomlval.TableValue(tab)
}

func (s *Session) Ref() string {
	return s.ref
}

// Document returns a copy of the live document.
func (s *Session) Document() tomlval.Value {
	return s.doc.Clone()
}

// Dirty reports whether the document differs from the saved baseline.
// Comparison coerces numeric kinds, so retyping 50 as 50.0 alone does
// not count as a change.
func (s *Session) Dirty() bool {
	return !tomlval.Equal(s.doc, s.baseline)
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) Undo() bool {
	snapshot, ok := s.history.Undo(s.doc)
	if !ok {
		return false
	}
	s.doc = snapshot
	s.status.Info("undo")
	editorlog.HistoryMoved(context.Background(), s.pub, s.ref, editorlog.HistoryPayload{Direction: "undo"})
	return true
}

func (s *Session) Redo() bool {
	snapshot, ok := s.history.Redo(s.doc)
	if !ok {
		return false
	}
	s.doc = snapshot
	s.status.Info("redo")
	editorlog.HistoryMoved(context.Background(), s.pub, s.ref, editorlog.HistoryPayload{Direction: "redo"})
	return true
}

// MarkSaved resets the dirty baseline to the current document.
func (s *Session) MarkSaved() {
	s.baseline = s.doc.Clone()
	s.status.Info("saved %s", s.ref)
	editorlog.DocumentSaved(context.Background(), s.pub, s.ref)
}

func (s *Session) Status() *StatusLog {
	return s.status
}

// BehaviorValue returns a copy of the document's behavior subtree.
func (s *Session) BehaviorValue() (tomlval.Value, bool) {
	tab, ok := (&s.doc).Table()
	if !ok {
		return tomlval.Value{}, false
	}
	node, ok := tab.Get("behavior")
	if !ok {
		return tomlval.Value{}, false
	}
	return node.Clone(), true
}

func (s *Session) behaviorRoot() *tomlval.Value {
	tab, ok := (&s.doc).Table()
	if !ok {
		return nil
	}
	node, ok := tab.Get("behavior")
	if !ok {
		return nil
	}
	return node
}

// Apply runs one edit against the document. The pre-edit state is
// pushed to history only when the edit actually changes something.
func (s *Session) Apply(ctx context.Context, e Edit) error {
	snapshot := s.doc.Clone()

	applied, err := s.dispatch(e)
	if err == nil && !applied {
		err = fmt.Errorf("editor: %s did not apply at path %v", e.Op, e.Path)
	}
	if err != nil {
		s.status.Warn("%s rejected: %v", e.Op, err)
		editorlog.EditRejected(ctx, s.pub, s.ref, editorlog.RejectPayload{Op: e.Op, Reason: err.Error()})
		return err
	}

	s.history.Push(snapshot)
	s.status.Info("%s applied", e.Op)
	editorlog.EditApplied(ctx, s.pub, s.ref, editorlog.EditPayload{Op: e.Op, Path: e.Path})
	return nil
}

func (s *Session) dispatch(e Edit) (bool, error) {
	if e.Op == OpCreateBehavior {
		return s.createBehavior()
	}

	root := s.behaviorRoot()
	if root == nil {
		return false, fmt.Errorf("editor: document has no behavior tree")
	}

	switch e.Op {
	case OpAddChild:
		return AddChild(root, e.Path), nil
	case OpAddCondition:
		return AddCondition(root, e.Path), nil
	case OpDeleteChild:
		return DeleteChild(root, e.Path, e.Index), nil
	case OpMoveChild:
		return MoveChild(root, e.Path, e.Index, e.Direction), nil
	case OpRetype:
		kind, err := behavior.ParseNodeKind(e.Kind)
		if err != nil {
			return false, err
		}
		return Retype(root, e.Path, kind), nil
	case OpSetField:
		if e.Value == nil {
			return false, fmt.Errorf("editor: %s requires a value", e.Op)
		}
		return SetField(root, e.Path, e.Field, *e.Value), nil
	case OpRemoveField:
		return RemoveField(root, e.Path, e.Field), nil
	case OpAddCommand:
		return AddCommand(root, e.Path), nil
	case OpDeleteCommand:
		return DeleteCommand(root, e.Path, e.Index), nil
	case OpMoveCommand:
		return MoveCommand(root, e.Path, e.Index, e.Direction), nil
	case OpRetypeCommand:
		kind, err := behavior.ParseCommandKind(e.Kind)
		if err != nil {
			return false, err
		}
		return RetypeCommand(root, e.Path, e.Index, kind), nil
	case OpSetCommandParam:
		if e.Value == nil {
			return false, fmt.Errorf("editor: %s requires a value", e.Op)
		}
		return SetCommandParam(root, e.Path, e.Index, e.Field, *e.Value), nil
	case OpRemoveCommandParam:
		return RemoveCommandParam(root, e.Path, e.Index, e.Field), nil
	case OpAddNested:
		return AddNestedCommand(root, e.Path, e.Index), nil
	case OpDeleteNested:
		return DeleteNestedCommand(root, e.Path, e.Index, e.SubIndex), nil
	case OpMoveNested:
		return MoveNestedCommand(root, e.Path, e.Index, e.SubIndex, e.Direction), nil
	case OpRetypeNested:
		kind, err := behavior.ParseCommandKind(e.Kind)
		if err != nil {
			return false, err
		}
		return RetypeNestedCommand(root, e.Path, e.Index, e.SubIndex, kind), nil
	case OpSetNestedParam:
		if e.Value == nil {
			return false, fmt.Errorf("editor: %s requires a value", e.Op)
		}
		return SetNestedCommandParam(root, e.Path, e.Index, e.SubIndex, e.Field, *e.Value), nil
	case OpRemoveNestedParam:
		return RemoveNestedCommandParam(root, e.Path, e.Index, e.SubIndex, e.Field), nil
	default:
		return false, fmt.Errorf("editor: unknown op %q", e.Op)
	}
}

func (s *Session) createBehavior() (bool, error) {
	tab, ok := (&s.doc).Table()
	if !ok {
		return false, fmt.Errorf("editor: document is not a table")
	}
	if tab.Has("behavior") {
		return false, fmt.Errorf("editor: document already has a behavior tree")
	}
	root := tomlval.NewTable()
	root.Set("type", tomlval.StringValue(string(behavior.NodeForever)))
	root.Set("children", tomlval.ArrayValue())
	tab.Set("behavior", tomlval.TableValue(root))
	return true, nil
}
