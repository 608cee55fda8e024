// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

// TreeView is a materialized difference tree. Only nodes on the way to a
// difference are present.
type TreeView struct {
	Node        *Node
	Differences []Difference
	Children    []*TreeView
}

// Tree assembles the locations yielded by BuildDifferenceTree. Children keep
// the order in which they were first reached.
func Tree(locations []DifferenceLocation) *TreeView {
	root := &TreeView{}
	views := map[*Node]*TreeView{}

	for _, loc := range locations {
		parent := root
		if loc.Node != nil {
			chain := loc.Node.Ancestors()
			if root.Node == nil {
				root.Node = chain[0]
			}
			// Distinct roots are merged into one view.
			views[chain[0]] = root
			for _, n := range chain[1:] {
				v, ok := views[n]
				if !ok {
					v = &TreeView{Node: n}
					views[n] = v
					parent.Children = append(parent.Children, v)
				}
				parent = v
			}
		}
		parent.Differences = append(parent.Differences, loc.Difference)
	}
	return root
}

// Label renders the node's own path segment.
func (t *TreeView) Label() string {
	if t.Node == nil {
		return ""
	}
	return t.Node.segment()
}

// Walk visits t and its descendants depth first. Returning false from fn
// skips the children of the visited view.
func (t *TreeView) Walk(fn func(depth int, v *TreeView) bool) {
	t.walk(0, fn)
}

func (t *TreeView) walk(depth int, fn func(int, *TreeView) bool) {
	if !fn(depth, t) {
		return
	}
	for _, c := range t.Children {
		c.walk(depth+1, fn)
	}
}

// Count is the number of differences in t and its descendants.
func (t *TreeView) Count() int {
	n := len(t.Differences)
	for _, c := range t.Children {
		n += c.Count()
	}
	return n
}
