package scene

import (
	"fmt"
	"os"

	"github.com/uiprobe/uiprobe/internal/provider"
	"gopkg.in/yaml.v3"
)

// sceneFile is the YAML layout of a scene file.
type sceneFile struct {
	Ready   *bool        `yaml:"ready"` // default true
	Windows []windowSpec `yaml:"windows"`
	Active  *windowSpec  `yaml:"active"` // single-window fallback target
}

type windowSpec struct {
	ID       int       `yaml:"id"`
	Type     string    `yaml:"type"`
	App      string    `yaml:"app"`
	Title    string    `yaml:"title"`
	Activity string    `yaml:"activity"`
	Layer    int       `yaml:"layer"`
	Focused  bool      `yaml:"focused"`
	Root     *nodeSpec `yaml:"root"`
}

type nodeSpec struct {
	Type          string      `yaml:"type"`
	Text          string      `yaml:"text"`
	Description   string      `yaml:"desc"`
	Bounds        [4]int      `yaml:"bounds"`
	Clickable     bool        `yaml:"clickable"`
	LongClickable bool        `yaml:"long_clickable"`
	Scrollable    bool        `yaml:"scrollable"`
	Editable      bool        `yaml:"editable"`
	Enabled       *bool       `yaml:"enabled"` // default true
	Visible       *bool       `yaml:"visible"` // default true
	Children      []*nodeSpec `yaml:"children"`
}

// Load reads a YAML scene file into a Provider.
func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var sf sceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}

	p := &Provider{ready: sf.Ready == nil || *sf.Ready}
	for i := range sf.Windows {
		p.windows = append(p.windows, buildWindow(&sf.Windows[i], i))
	}
	if sf.Active != nil {
		p.active = buildWindow(sf.Active, len(sf.Windows))
	}
	return p, nil
}

func buildWindow(ws *windowSpec, index int) *Window {
	id := ws.ID
	if id == 0 {
		id = index + 1
	}
	typ := ws.Type
	if typ == "" {
		typ = "application"
	}
	return &Window{
		Info: provider.WindowInfo{
			ID:       id,
			Type:     typ,
			App:      ws.App,
			Title:    ws.Title,
			Activity: ws.Activity,
			Layer:    ws.Layer,
			Focused:  ws.Focused,
		},
		Root: buildNode(ws.Root),
	}
}

func buildNode(ns *nodeSpec) *Node {
	if ns == nil {
		return nil
	}
	n := &Node{
		Type:          ns.Type,
		Text:          ns.Text,
		Description:   ns.Description,
		Bounds:        ns.Bounds,
		Clickable:     ns.Clickable,
		LongClickable: ns.LongClickable,
		Scrollable:    ns.Scrollable,
		Editable:      ns.Editable,
		Enabled:       ns.Enabled == nil || *ns.Enabled,
		Visible:       ns.Visible == nil || *ns.Visible,
	}
	for _, cs := range ns.Children {
		n.Children = append(n.Children, buildNode(cs))
	}
	return n
}
