package behavior

import (
	"fmt"
	"strconv"

	"voidwake/mobs/tomlval"
)

// Node is one compiled behavior-tree node. Which fields are populated
// depends on Kind: control kinds use Children, While uses Child,
// IfThen uses Then, Wait uses Seconds, Action uses Name and Commands.
// Trigger nodes and unrecognized declarations compile to a zero-second
// Wait so the host runtime ticks past them.
type Node struct {
	Kind     NodeKind
	Children []*Node
	Child    *Node
	Then     *Node
	Seconds  float64
	Name     string
	Commands []Command
}

// Command is one compiled behavior command inside an Action node.
type Command struct {
	Kind      CommandKind
	X, Y      float64
	Seconds   float64
	Keys      []string
	MobType   string
	Behaviors []Command
}

// Tree is the compiled form handed to the host behavior runtime.
type Tree struct {
	Root *Node
}

// Diagnostic records a recoverable problem found while compiling. The
// declaration still produces a tree; diagnostics tell the author what
// was skipped or stubbed out.
type Diagnostic struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Compile turns a declarative behavior value into an executable tree.
// Structural damage (a non-table node, a missing or mistyped tag on a
// known slot) is an error; unknown node types and unknown command
// names degrade to diagnostics so one typo does not take down a whole
// definition.
func Compile(root tomlval.Value) (*Tree, []Diagnostic, error) {
	c := &compiler{}
	node, err := c.compileNode(&root, "behavior")
	if err != nil {
		return nil, c.diags, err
	}
	return &Tree{Root: node}, c.diags, nil
}

type compiler struct {
	diags []Diagnostic
}

func (c *compiler) report(path, format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{Path: path, Message: fmt.Sprintf(format, args...)})
}

// noop is the stand-in for nodes the runtime should skip over.
func noop() *Node {
	return &Node{Kind: NodeWait, Seconds: 0}
}

func (c *compiler) compileNode(raw *tomlval.Value, path string) (*Node, error) {
	tab, ok := raw.Table()
	if !ok {
		return nil, fmt.Errorf("behavior: node at %s is %s, want table", path, raw.Kind())
	}
	tag, ok := tab.Get("type")
	if !ok {
		return nil, fmt.Errorf("behavior: node at %s missing type", path)
	}
	name, ok := tag.AsString()
	if !ok {
		return nil, fmt.Errorf("behavior: node at %s has non-string type", path)
	}

	kind, err := ParseNodeKind(name)
	if err != nil {
		c.report(path, "unknown node type %q, compiled as no-op", name)
		return noop(), nil
	}

	switch kind {
	case NodeForever, NodeSequence, NodeFallback:
		return c.compileControl(kind, tab, path)
	case NodeWhile:
		// The condition slot is authored data the runtime does not
		// consume yet. Only the body compiles.
		child, ok := tab.Get("child")
		if !ok {
			return nil, fmt.Errorf("behavior: While at %s missing child", path)
		}
		body, err := c.compileNode(child, path+".child")
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeWhile, Child: body}, nil
	case NodeIfThen:
		// else_child is carried in authored data but not compiled.
		then, ok := tab.Get("then_child")
		if !ok {
			return nil, fmt.Errorf("behavior: IfThen at %s missing then_child", path)
		}
		branch, err := c.compileNode(then, path+".then_child")
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeIfThen, Then: branch}, nil
	case NodeWait:
		secs, ok := tab.Get("seconds")
		if !ok {
			return nil, fmt.Errorf("behavior: Wait at %s missing seconds", path)
		}
		n, ok := secs.AsNumber()
		if !ok {
			return nil, fmt.Errorf("behavior: Wait at %s has non-numeric seconds", path)
		}
		return &Node{Kind: NodeWait, Seconds: n}, nil
	case NodeAction:
		return c.compileAction(tab, path)
	case NodeTrigger:
		return noop(), nil
	default:
		return noop(), nil
	}
}

func (c *compiler) compileControl(kind NodeKind, tab *tomlval.Table, path string) (*Node, error) {
	node := &Node{Kind: kind, Children: []*Node{}}
	raw, ok := tab.Get("children")
	if !ok {
		return node, nil
	}
	count := raw.ArrayLen()
	for i := 0; i < count; i++ {
		childPath := path + ".children[" + strconv.Itoa(i) + "]"
		child, err := c.compileNode(raw.ArrayAt(i), childPath)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	// A repeater takes one body; several authored children become an
	// implicit Sequence.
	if kind == NodeForever && len(node.Children) > 1 {
		node.Children = []*Node{{Kind: NodeSequence, Children: node.Children}}
	}
	return node, nil
}

func (c *compiler) compileAction(tab *tomlval.Table, path string) (*Node, error) {
	node := &Node{Kind: NodeAction}
	if nameVal, ok := tab.Get("name"); ok {
		node.Name, _ = nameVal.AsString()
	}
	raw, ok := tab.Get("behaviors")
	if !ok {
		return node, nil
	}
	cmds, err := c.compileCommands(raw, path+".behaviors")
	if err != nil {
		return nil, err
	}
	node.Commands = cmds
	return node, nil
}

func (c *compiler) compileCommands(raw *tomlval.Value, path string) ([]Command, error) {
	count := raw.ArrayLen()
	cmds := make([]Command, 0, count)
	for i := 0; i < count; i++ {
		entryPath := path + "[" + strconv.Itoa(i) + "]"
		cmd, ok, err := c.compileCommand(raw.ArrayAt(i), entryPath)
		if err != nil {
			return nil, err
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

func (c *compiler) compileCommand(raw *tomlval.Value, path string) (Command, bool, error) {
	tab, ok := raw.Table()
	if !ok {
		return Command{}, false, fmt.Errorf("behavior: command at %s is %s, want table", path, raw.Kind())
	}
	tag, ok := tab.Get("action")
	if !ok {
		return Command{}, false, fmt.Errorf("behavior: command at %s missing action", path)
	}
	name, ok := tag.AsString()
	if !ok {
		return Command{}, false, fmt.Errorf("behavior: command at %s has non-string action", path)
	}
	kind, err := ParseCommandKind(name)
	if err != nil {
		c.report(path, "%v, command skipped", err)
		return Command{}, false, nil
	}

	cmd := Command{Kind: kind}
	switch kind {
	case CmdMoveTo:
		cmd.X = numberField(tab, "x")
		cmd.Y = numberField(tab, "y")
	case CmdDoForTime:
		cmd.Seconds = numberField(tab, "seconds")
	case CmdSpawnMob, CmdSpawnProjectile, CmdRotateJointsClockwise:
		cmd.Keys = stringListField(tab, "keys")
	case CmdTransmitMobBehavior:
		if v, ok := tab.Get("mob_type"); ok {
			cmd.MobType, _ = v.AsString()
		}
		if v, ok := tab.Get("behaviors"); ok {
			nested, err := c.compileCommands(v, path+".behaviors")
			if err != nil {
				return Command{}, false, err
			}
			cmd.Behaviors = nested
		}
	}
	return cmd, true, nil
}

func numberField(tab *tomlval.Table, key string) float64 {
	v, ok := tab.Get(key)
	if !ok {
		return 0
	}
	n, _ := v.AsNumber()
	return n
}

func stringListField(tab *tomlval.Table, key string) []string {
	v, ok := tab.Get(key)
	if !ok {
		return nil
	}
	items, ok := v.Array()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for i := range items {
		if s, ok := items[i].AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}
