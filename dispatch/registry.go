// Package dispatch binds menu handler ids to effects.
package dispatch

import (
	"sort"

	"menucode-go/errcode"
	"menucode-go/menu"
)

// Handler is the effect run when a menu action fires or a value changes.
type Handler func(ctx menu.ActionContext) (menu.Outcome, error)

// Registry maps handler ids to handlers. Populate it before building the
// menu tree; it is read-only afterwards and is not locked.
type Registry struct {
	handlers map[string]Handler
}

func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds id to h. Empty ids, nil handlers and duplicates are
// rejected.
func (r *Registry) Register(id string, h Handler) error {
	if id == "" || h == nil {
		return &errcode.E{C: errcode.InvalidParams, Op: "register", Msg: id}
	}
	if _, dup := r.handlers[id]; dup {
		return &errcode.E{C: errcode.DuplicateHandle, Op: "register", Msg: id}
	}
	r.handlers[id] = h
	return nil
}

func (r *Registry) Has(id string) bool {
	_, ok := r.handlers[id]
	return ok
}

// IDs returns the registered ids, sorted.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Dispatch runs the handler bound to id.
func (r *Registry) Dispatch(id string, ctx menu.ActionContext) (menu.Outcome, error) {
	h, ok := r.handlers[id]
	if !ok {
		return menu.Outcome{}, &errcode.E{C: errcode.UnknownHandler, Op: "dispatch", Msg: id}
	}
	return h(ctx)
}
