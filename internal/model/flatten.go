package model

// FlatNode is a node with a path breadcrumb instead of children.
type FlatNode struct {
	ID          string `yaml:"id"             json:"id"`
	Type        string `yaml:"type"           json:"type"`
	Text        string `yaml:"text,omitempty" json:"text,omitempty"`
	Description string `yaml:"desc,omitempty" json:"desc,omitempty"`
	Bounds      [4]int `yaml:"b"              json:"b"`
	Clickable   bool   `yaml:"clickable,omitempty" json:"clickable,omitempty"`
	Path        string `yaml:"p,omitempty"    json:"p,omitempty"`
}

// Flatten converts a snapshot's window trees into a flat list.
// Each node gets a path string showing its location in the tree using
// type descriptors joined with " > ".
func Flatten(windows []Window) []FlatNode {
	var result []FlatNode
	for _, w := range windows {
		flattenRecursive(w.Root, "", &result)
	}
	return result
}

func flattenRecursive(n Node, parentPath string, result *[]FlatNode) {
	currentPath := n.Type
	if parentPath != "" {
		currentPath = parentPath + " > " + n.Type
	}

	*result = append(*result, FlatNode{
		ID:          n.ID,
		Type:        n.Type,
		Text:        n.Text,
		Description: n.Description,
		Bounds:      n.Bounds,
		Clickable:   n.Clickable,
		Path:        currentPath,
	})

	for _, child := range n.Children {
		flattenRecursive(child, currentPath, result)
	}
}
