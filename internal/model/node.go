package model

// Node is one element of a parsed UI tree. Nodes are immutable once built;
// a fresh tree is produced per snapshot and identifiers are unique within
// one snapshot generation.
type Node struct {
	ID            string `yaml:"id"             json:"id"`   // Deterministic identifier
	Type          string `yaml:"type"           json:"type"` // Element type descriptor (e.g. "button", "list")
	Text          string `yaml:"text,omitempty" json:"text,omitempty"`
	Description   string `yaml:"desc,omitempty" json:"desc,omitempty"`
	Bounds        [4]int `yaml:"b"              json:"b"` // [x, y, width, height]
	Clickable     bool   `yaml:"clickable,omitempty"      json:"clickable,omitempty"`
	LongClickable bool   `yaml:"long_clickable,omitempty" json:"long_clickable,omitempty"`
	Scrollable    bool   `yaml:"scrollable,omitempty"     json:"scrollable,omitempty"`
	Editable      bool   `yaml:"editable,omitempty"       json:"editable,omitempty"`
	Enabled       *bool  `yaml:"enabled,omitempty"        json:"enabled,omitempty"` // nil or true = enabled (omit); false = disabled (include)
	Visible       bool   `yaml:"visible,omitempty"        json:"visible,omitempty"`
	Children      []Node `yaml:"children,omitempty"       json:"children,omitempty"`
}

// Window is one on-screen window and its parsed tree.
type Window struct {
	ID       int    `yaml:"id"                 json:"id"`
	Type     string `yaml:"type"               json:"type"` // Window category: application, system, input-method
	App      string `yaml:"app"                json:"app"`  // Owning package / application identifier
	Title    string `yaml:"title,omitempty"    json:"title,omitempty"`
	Activity string `yaml:"activity,omitempty" json:"activity,omitempty"`
	Layer    int    `yaml:"layer"              json:"layer"`
	Focused  bool   `yaml:"focused,omitempty"  json:"focused,omitempty"`
	Root     Node   `yaml:"root"               json:"root"`
}

// Snapshot is the result of one aggregation call: every on-screen window's
// tree, in stacking order. Degraded indicates the single-active-window
// fallback was used because full window enumeration yielded nothing.
type Snapshot struct {
	Windows  []Window `yaml:"windows"            json:"windows"`
	Degraded bool     `yaml:"degraded,omitempty" json:"degraded,omitempty"`
}
