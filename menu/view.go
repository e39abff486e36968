package menu

import "menucode-go/types"

// View renders st into the snapshot consumed by display back ends.
func (n *Navigator) View(st *State) types.View {
	t := n.tree
	kids := t.Children(st.current)
	v := types.View{
		Title:     t.Label(st.current),
		CanGoBack: len(st.history) > 0,
		Depth:     len(st.history),
		Editing:   st.editing,
		Items:     make([]types.ViewItem, len(kids)),
	}
	for i, id := range kids {
		it := types.ViewItem{
			Label:       t.Label(id),
			Kind:        t.Kind(id).String(),
			Highlighted: i == st.index,
			Unit:        t.Unit(id),
		}
		if b, ok := t.Value(id); ok {
			it.Value = b.Current
		}
		v.Items[i] = it
	}
	if st.editing {
		id := n.Highlighted(st)
		if b, ok := t.Value(id); ok {
			v.Value = &types.ValueView{
				Label:   t.Label(id),
				Current: b.Current,
				Min:     b.Min,
				Max:     b.Max,
				Unit:    t.Unit(id),
			}
		}
	}
	return v
}
