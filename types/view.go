package types

// View is the read-only snapshot handed to renderers. The core never draws.
// Integer CBOR keys keep display-link frames small.
type View struct {
	Title     string     `cbor:"1,keyasint"`
	CanGoBack bool       `cbor:"2,keyasint,omitempty"`
	Depth     int        `cbor:"3,keyasint,omitempty"`
	Items     []ViewItem `cbor:"4,keyasint"`
	Editing   bool       `cbor:"5,keyasint,omitempty"`
	Value     *ValueView `cbor:"6,keyasint,omitempty"` // set while a bounded value is being edited
}

type ViewItem struct {
	Label       string `cbor:"1,keyasint"`
	Kind        string `cbor:"2,keyasint"` // NodeAction, NodeSubMenu or NodeValue
	Highlighted bool   `cbor:"3,keyasint,omitempty"`
	Value       int    `cbor:"4,keyasint,omitempty"` // current value for NodeValue items
	Unit        string `cbor:"5,keyasint,omitempty"`
}

type ValueView struct {
	Label   string `cbor:"1,keyasint"`
	Current int    `cbor:"2,keyasint"`
	Min     int    `cbor:"3,keyasint"`
	Max     int    `cbor:"4,keyasint"`
	Unit    string `cbor:"5,keyasint,omitempty"`
}

// Highlighted returns the index of the highlighted item, or -1.
func (v View) Highlighted() int {
	for i := range v.Items {
		if v.Items[i].Highlighted {
			return i
		}
	}
	return -1
}
