package menu

import (
	"menucode-go/errcode"
	"menucode-go/types"
)

// Outcome is what an action handler asks of the navigator.
type Outcome struct {
	ResetToRoot bool
}

// ActionContext is handed to the dispatcher with every handler call.
type ActionContext struct {
	Tree    *Tree
	Node    NodeID // the action node, or the value node that changed
	Handler string
}

// Dispatcher runs the effect bound to a handler id.
type Dispatcher interface {
	Dispatch(handler string, ctx ActionContext) (Outcome, error)
}

type Options struct {
	// Wrap makes Next on the last item select the first (and Prev the
	// reverse). When false the highlight clamps at the ends.
	Wrap bool
}

// Frame is one history entry: a submenu and the index highlighted in it
// when a child was entered.
type Frame struct {
	Node  NodeID
	Index int
}

// State is the navigation state. It is owned by whoever calls Apply; the
// navigator keeps none of its own, so independent states can share a tree
// shape in tests.
type State struct {
	history []Frame
	current NodeID
	index   int
	editing bool
}

func (s *State) Current() NodeID { return s.current }
func (s *State) Index() int      { return s.index }
func (s *State) Editing() bool   { return s.editing }
func (s *State) Depth() int      { return len(s.history) }

// History returns a copy of the history stack, root first.
func (s *State) History() []Frame {
	out := make([]Frame, len(s.history))
	copy(out, s.history)
	return out
}

// Result reports the effect of one command.
type Result struct {
	Changed bool   // state or a value changed; the view should be refreshed
	Handler string // handler dispatched, if any
	Reset   bool   // a handler requested a return to the root
	Err     error  // dispatch failure
}

type Navigator struct {
	tree *Tree
	disp Dispatcher
	opts Options
}

func NewNavigator(t *Tree, d Dispatcher, opts Options) *Navigator {
	return &Navigator{tree: t, disp: d, opts: opts}
}

func (n *Navigator) Tree() *Tree { return n.tree }

// NewState returns a state at the root. History capacity covers the deepest
// submenu so navigation never grows it.
func (n *Navigator) NewState() *State {
	return &State{
		history: make([]Frame, 0, n.tree.MaxDepth()),
		current: n.tree.Root(),
	}
}

// ResetToRoot clears history and editing. Reports whether anything changed.
func (n *Navigator) ResetToRoot(st *State) bool {
	changed := st.current != n.tree.Root() || st.index != 0 || st.editing || len(st.history) > 0
	st.history = st.history[:0]
	st.current = n.tree.Root()
	st.index = 0
	st.editing = false
	return changed
}

// Highlighted returns the highlighted child of the current submenu.
func (n *Navigator) Highlighted(st *State) NodeID {
	kids := n.tree.Children(st.current)
	if st.index < 0 || st.index >= len(kids) {
		return NoNode
	}
	return kids[st.index]
}

// Apply runs one canonical command against st.
func (n *Navigator) Apply(st *State, cmd types.Command) Result {
	if st.editing {
		return n.applyEditing(st, cmd)
	}
	kids := n.tree.Children(st.current)
	count := len(kids)

	switch cmd {
	case types.CmdNext:
		return n.move(st, count, +1)
	case types.CmdPrev:
		return n.move(st, count, -1)
	case types.CmdOk:
		if count == 0 {
			return Result{}
		}
		child := kids[st.index]
		switch n.tree.Kind(child) {
		case KindSubMenu:
			st.history = append(st.history, Frame{Node: st.current, Index: st.index})
			st.current = child
			st.index = 0
			return Result{Changed: true}
		case KindValue:
			st.editing = true
			return Result{Changed: true}
		case KindAction:
			res := n.dispatch(child)
			if res.Reset {
				n.ResetToRoot(st)
			}
			return res
		}
	case types.CmdBack:
		if len(st.history) == 0 {
			return Result{}
		}
		top := st.history[len(st.history)-1]
		st.history = st.history[:len(st.history)-1]
		st.current = top.Node
		st.index = top.Index
		return Result{Changed: true}
	}
	return Result{}
}

func (n *Navigator) move(st *State, count, dir int) Result {
	if count == 0 {
		return Result{}
	}
	idx := st.index + dir
	switch {
	case idx >= count && n.opts.Wrap:
		idx = 0
	case idx >= count:
		idx = count - 1
	case idx < 0 && n.opts.Wrap:
		idx = count - 1
	case idx < 0:
		idx = 0
	}
	if idx == st.index {
		return Result{}
	}
	st.index = idx
	return Result{Changed: true}
}

func (n *Navigator) applyEditing(st *State, cmd types.Command) Result {
	id := n.Highlighted(st)
	switch cmd {
	case types.CmdNext, types.CmdPrev:
		dir := 1
		if cmd == types.CmdPrev {
			dir = -1
		}
		if !n.tree.Adjust(id, dir) {
			return Result{}
		}
		res := Result{Changed: true}
		if n.tree.Handler(id) != "" {
			// Value handlers see every change; a reset request is not
			// honoured while editing.
			d := n.dispatch(id)
			res.Handler, res.Err = d.Handler, d.Err
		}
		return res
	case types.CmdOk, types.CmdBack:
		st.editing = false
		return Result{Changed: true}
	}
	return Result{}
}

func (n *Navigator) dispatch(id NodeID) Result {
	h := n.tree.Handler(id)
	res := Result{Changed: true, Handler: h}
	if n.disp == nil {
		res.Err = &errcode.E{C: errcode.UnknownHandler, Op: "dispatch", Msg: h}
		return res
	}
	out, err := n.disp.Dispatch(h, ActionContext{Tree: n.tree, Node: id, Handler: h})
	if err != nil {
		res.Err = err
		return res
	}
	res.Reset = out.ResetToRoot
	return res
}
