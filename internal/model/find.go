package model

import "strings"

// MatchField selects which node attribute a search criterion compares.
type MatchField string

const (
	MatchText        MatchField = "text"
	MatchDescription MatchField = "desc"
	MatchType        MatchField = "type"
	MatchID          MatchField = "id"
)

// Find searches every window's tree for nodes matching value on the given
// field. Matching is case-insensitive substring by default; exact requires
// full (case-insensitive) equality. Traversal is pre-order (parent before
// children, children in original index order) across windows in their given
// order, so "first match" is reproducible across repeated calls on the same
// snapshot.
func Find(windows []Window, field MatchField, value string, exact bool) []*Node {
	var matches []*Node
	valueLower := strings.ToLower(value)
	for i := range windows {
		findRecursive(&windows[i].Root, field, valueLower, exact, &matches)
	}
	return matches
}

func findRecursive(n *Node, field MatchField, valueLower string, exact bool, matches *[]*Node) {
	if fieldMatches(fieldValue(n, field), valueLower, exact) {
		*matches = append(*matches, n)
	}
	for i := range n.Children {
		findRecursive(&n.Children[i], field, valueLower, exact, matches)
	}
}

func fieldValue(n *Node, field MatchField) string {
	switch field {
	case MatchText:
		return n.Text
	case MatchDescription:
		return n.Description
	case MatchType:
		return n.Type
	case MatchID:
		return n.ID
	}
	return ""
}

func fieldMatches(field, valueLower string, exact bool) bool {
	if field == "" {
		return false
	}
	if exact {
		return strings.EqualFold(field, valueLower)
	}
	return strings.Contains(strings.ToLower(field), valueLower)
}

// FindByID returns the first node whose identifier equals id, or nil.
// Identifiers are unique within a snapshot, so first is also only.
func FindByID(windows []Window, id string) *Node {
	for i := range windows {
		if found := findByIDRecursive(&windows[i].Root, id); found != nil {
			return found
		}
	}
	return nil
}

func findByIDRecursive(n *Node, id string) *Node {
	if n.ID == id {
		return n
	}
	for i := range n.Children {
		if found := findByIDRecursive(&n.Children[i], id); found != nil {
			return found
		}
	}
	return nil
}
