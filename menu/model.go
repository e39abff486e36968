// Package menu holds the menu tree and the navigation state machine that
// drives it from canonical commands.
//
// The tree is a flat arena: nodes live in one slice and refer to parents and
// children by index, so Back navigation needs no owning back-pointers.
package menu

import (
	"menucode-go/errcode"
	"menucode-go/types"
)

type NodeID int32

const NoNode NodeID = -1

type Kind uint8

const (
	KindAction Kind = iota + 1
	KindSubMenu
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return types.NodeAction
	case KindSubMenu:
		return types.NodeSubMenu
	case KindValue:
		return types.NodeValue
	default:
		return "unknown"
	}
}

func parseKind(s string) (Kind, bool) {
	switch s {
	case types.NodeAction:
		return KindAction, true
	case types.NodeSubMenu:
		return KindSubMenu, true
	case types.NodeValue:
		return KindValue, true
	}
	return 0, false
}

type node struct {
	label    string
	key      string
	handler  string
	unit     string
	kind     Kind
	parent   NodeID
	depth    int
	children []NodeID
	val      Bounded
}

// HandlerSet answers whether an action handler id is registered.
type HandlerSet interface {
	Has(id string) bool
}

// Tree is immutable after Build except for the current value of value nodes.
type Tree struct {
	nodes    []node
	keys     map[string]NodeID
	maxDepth int // deepest submenu, i.e. the longest possible history
}

// Build validates a menu description and flattens it into a Tree. Any
// problem is returned as a *ConfigError naming the node.
func Build(root *types.MenuNode, handlers HandlerSet) (*Tree, error) {
	if root == nil {
		return nil, &ConfigError{C: errcode.MissingConfig, Msg: "no menu"}
	}
	if k, ok := parseKind(root.Kind); ok && k != KindSubMenu {
		return nil, &ConfigError{C: errcode.RootNotSubMenu, Path: root.Label}
	}
	b := &builder{
		t:        &Tree{keys: map[string]NodeID{}},
		handlers: handlers,
		onPath:   map[*types.MenuNode]bool{},
		seen:     map[*types.MenuNode]bool{},
	}
	if _, err := b.add(root, NoNode, "", 0); err != nil {
		return nil, err
	}
	return b.t, nil
}

type builder struct {
	t        *Tree
	handlers HandlerSet
	onPath   map[*types.MenuNode]bool
	seen     map[*types.MenuNode]bool
}

func (b *builder) add(c *types.MenuNode, parent NodeID, parentPath string, depth int) (NodeID, error) {
	path := c.Label
	if parentPath != "" {
		path = parentPath + "/" + c.Label
	}
	if b.onPath[c] {
		return NoNode, &ConfigError{C: errcode.CycleDetected, Path: path}
	}
	if b.seen[c] {
		return NoNode, &ConfigError{C: errcode.SharedNode, Path: path, Msg: "node has more than one parent"}
	}
	b.seen[c] = true
	b.onPath[c] = true
	defer delete(b.onPath, c)

	if c.Label == "" {
		return NoNode, &ConfigError{C: errcode.EmptyLabel, Path: path}
	}
	kind, ok := parseKind(c.Kind)
	if !ok {
		return NoNode, &ConfigError{C: errcode.UnknownKind, Path: path, Msg: c.Kind}
	}

	n := node{
		label:   c.Label,
		key:     c.Key,
		handler: c.Handler,
		unit:    c.Unit,
		kind:    kind,
		parent:  parent,
		depth:   depth,
	}
	switch kind {
	case KindAction:
		if !b.registered(c.Handler) {
			return NoNode, &ConfigError{C: errcode.UnknownHandler, Path: path, Msg: c.Handler}
		}
	case KindValue:
		n.val = Bounded{Min: c.Min, Max: c.Max, Step: c.Step, Current: c.Value}
		if !n.val.valid() {
			return NoNode, &ConfigError{C: errcode.InvalidBounds, Path: path}
		}
		if c.Handler != "" && !b.registered(c.Handler) {
			return NoNode, &ConfigError{C: errcode.UnknownHandler, Path: path, Msg: c.Handler}
		}
	case KindSubMenu:
		if len(c.Children) == 0 {
			return NoNode, &ConfigError{C: errcode.EmptySubMenu, Path: path}
		}
		if depth > b.t.maxDepth {
			b.t.maxDepth = depth
		}
	}
	if c.Key != "" {
		if _, dup := b.t.keys[c.Key]; dup {
			return NoNode, &ConfigError{C: errcode.DuplicateKey, Path: path, Msg: c.Key}
		}
	}

	id := NodeID(len(b.t.nodes))
	b.t.nodes = append(b.t.nodes, n)
	if c.Key != "" {
		b.t.keys[c.Key] = id
	}

	if kind == KindSubMenu {
		children := make([]NodeID, 0, len(c.Children))
		for _, cc := range c.Children {
			if cc == nil {
				return NoNode, &ConfigError{C: errcode.MissingConfig, Path: path, Msg: "nil child"}
			}
			cid, err := b.add(cc, id, path, depth+1)
			if err != nil {
				return NoNode, err
			}
			children = append(children, cid)
		}
		b.t.nodes[id].children = children
	}
	return id, nil
}

func (b *builder) registered(h string) bool {
	return h != "" && b.handlers != nil && b.handlers.Has(h)
}

// ---- accessors ----

func (t *Tree) Root() NodeID { return 0 }
func (t *Tree) Len() int     { return len(t.nodes) }

// MaxDepth is the depth of the deepest submenu (root is 0).
func (t *Tree) MaxDepth() int { return t.maxDepth }

func (t *Tree) valid(id NodeID) bool { return id >= 0 && int(id) < len(t.nodes) }

func (t *Tree) Label(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].label
}

func (t *Tree) Kind(id NodeID) Kind {
	if !t.valid(id) {
		return 0
	}
	return t.nodes[id].kind
}

func (t *Tree) Key(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].key
}

func (t *Tree) Handler(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].handler
}

func (t *Tree) Unit(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].unit
}

func (t *Tree) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].parent
}

func (t *Tree) Depth(id NodeID) int {
	if !t.valid(id) {
		return 0
	}
	return t.nodes[id].depth
}

// Children returns the ordered children of a submenu. The slice is shared
// with the tree and must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Lookup finds a node by its configured key.
func (t *Tree) Lookup(key string) (NodeID, bool) {
	id, ok := t.keys[key]
	return id, ok
}

// Value returns the bounded value of a value node.
func (t *Tree) Value(id NodeID) (Bounded, bool) {
	if t.Kind(id) != KindValue {
		return Bounded{}, false
	}
	return t.nodes[id].val, true
}

// Adjust moves a value node by dir steps, saturating. It reports whether the
// value changed.
func (t *Tree) Adjust(id NodeID, dir int) bool {
	if t.Kind(id) != KindValue {
		return false
	}
	return t.nodes[id].val.Adjust(dir)
}

// SetValue stores v (clamped) into a value node.
func (t *Tree) SetValue(id NodeID, v int) bool {
	if t.Kind(id) != KindValue {
		return false
	}
	return t.nodes[id].val.Set(v)
}

// Path returns the labels from the root down to id, joined by '/'.
func (t *Tree) Path(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	p := t.nodes[id].label
	for cur := t.nodes[id].parent; cur != NoNode; cur = t.nodes[cur].parent {
		p = t.nodes[cur].label + "/" + p
	}
	return p
}

// Config re-derives the description the tree was built from. Value nodes
// report their current value.
func (t *Tree) Config() *types.MenuNode {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.config(t.Root())
}

func (t *Tree) config(id NodeID) *types.MenuNode {
	n := &t.nodes[id]
	c := &types.MenuNode{
		Label:   n.label,
		Key:     n.key,
		Kind:    n.kind.String(),
		Handler: n.handler,
		Unit:    n.unit,
	}
	switch n.kind {
	case KindValue:
		c.Min, c.Max, c.Step, c.Value = n.val.Min, n.val.Max, n.val.Step, n.val.Current
	case KindSubMenu:
		c.Children = make([]*types.MenuNode, 0, len(n.children))
		for _, cid := range n.children {
			c.Children = append(c.Children, t.config(cid))
		}
	}
	return c
}
