// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"reflect"
	"slices"
)

// Member identifies a named member of a compared value. Field is set only
// when the member is a struct field.
type Member struct {
	Name  string
	Field *reflect.StructField
}

// Node is one element of the difference tree. A node is either the root, a
// member of its ancestor, or an element of an ancestor sequence. Nodes are
// immutable once built.
type Node struct {
	member    *Member
	element   string
	isElement bool
	ancestor  *Node
	data      any
}

// NewRoot returns a node with no ancestor and no member.
func NewRoot() *Node {
	return &Node{}
}

// NewMemberNode returns a child of ancestor describing member m.
func NewMemberNode(ancestor *Node, m Member) *Node {
	return &Node{member: &m, ancestor: ancestor}
}

// NewElementNode returns a child of ancestor describing the sequence element
// labelled label.
func NewElementNode(ancestor *Node, label string) *Node {
	return &Node{element: label, isElement: true, ancestor: ancestor}
}

// WithData returns a copy of n carrying data.
func (n *Node) WithData(data any) *Node {
	c := *n
	c.data = data
	return &c
}

func (n *Node) Member() *Member { return n.member }
func (n *Node) Ancestor() *Node { return n.ancestor }
func (n *Node) Data() any       { return n.data }
func (n *Node) IsRoot() bool    { return n.ancestor == nil }
func (n *Node) IsElement() bool { return n.isElement }
func (n *Node) Element() string { return n.element }
func (n *Node) String() string  { return n.Path() }

func (n *Node) segment() string {
	switch {
	case n.isElement:
		return "[" + n.element + "]"
	case n.member != nil:
		return n.member.Name
	}
	return ""
}

// Depth is the number of ancestors between n and the root.
func (n *Node) Depth() int {
	d := 0
	for a := n.ancestor; a != nil; a = a.ancestor {
		d++
	}
	return d
}

// Path renders the location of n from the root, e.g. "items[2].name".
func (n *Node) Path() string {
	var chain []*Node
	for c := n; c != nil; c = c.ancestor {
		chain = append(chain, c)
	}

	path := ""
	for _, c := range chain {
		path = insertPath(c.segment(), path)
	}
	return path
}

// Ancestors returns the chain from the root down to n, inclusive.
func (n *Node) Ancestors() []*Node {
	var chain []*Node
	for c := n; c != nil; c = c.ancestor {
		chain = append(chain, c)
	}
	slices.Reverse(chain)
	return chain
}
