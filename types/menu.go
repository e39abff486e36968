package types

// Menu node kinds as written in device descriptions.
const (
	NodeAction  = "action"
	NodeSubMenu = "submenu"
	NodeValue   = "value"
)

// MenuNode is the static description of one menu entry. Children are
// pointers so that a description which shares or loops nodes can be
// expressed, and rejected, at build time.
type MenuNode struct {
	Label    string      `yaml:"label"`
	Key      string      `yaml:"key,omitempty"`
	Kind     string      `yaml:"kind"`
	Handler  string      `yaml:"handler,omitempty"`
	Children []*MenuNode `yaml:"children,omitempty"`

	// Bounded value fields (Kind == "value").
	Min   int    `yaml:"min,omitempty"`
	Max   int    `yaml:"max,omitempty"`
	Step  int    `yaml:"step,omitempty"`
	Value int    `yaml:"value,omitempty"`
	Unit  string `yaml:"unit,omitempty"`
}
