// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package comparer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodePath(t *testing.T) {
	root := NewRoot()
	a := NewMemberNode(root, Member{Name: "a"})
	a2 := NewElementNode(a, "2")
	b := NewMemberNode(a2, Member{Name: "b"})
	top := NewElementNode(root, "0")
	x := NewMemberNode(top, Member{Name: "x"})

	tests := []struct {
		name      string
		node      *Node
		wantPath  string
		wantDepth int
	}{
		{"root", root, "", 0},
		{"member", a, "a", 1},
		{"element of member", a2, "a[2]", 2},
		{"member of element", b, "a[2].b", 3},
		{"top level element", top, "[0]", 1},
		{"member of top level element", x, "[0].x", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPath, tt.node.Path())
			assert.Equal(t, tt.wantDepth, tt.node.Depth())
		})
	}

	assert.True(t, root.IsRoot())
	assert.True(t, a2.IsElement())
	assert.Equal(t, "2", a2.Element())
	assert.Nil(t, a2.Member())
	assert.Equal(t, "b", b.Member().Name)
	assert.Equal(t, []*Node{root, a, a2, b}, b.Ancestors())
}

func TestNodeWithData(t *testing.T) {
	n := NewMemberNode(NewRoot(), Member{Name: "a"})
	d := n.WithData(42)

	assert.Nil(t, n.Data())
	assert.Equal(t, 42, d.Data())
	assert.Equal(t, n.Path(), d.Path())
}

func TestInsertPath(t *testing.T) {
	tests := []struct {
		segment, path, want string
	}{
		{"a", "", "a"},
		{"", "b", "b"},
		{"a", "b", "a.b"},
		{"a", "[1]", "a[1]"},
		{"[1]", "b", "[1].b"},
		{"[1]", "[2]", "[1][2]"},
	}

	for _, tt := range tests {
		t.Run(tt.segment+"+"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, insertPath(tt.segment, tt.path))
		})
	}
}

func TestKindText(t *testing.T) {
	for k := ValueMismatch; k <= MissingElementInSecond; k++ {
		text, err := k.MarshalText()
		assert.NoError(t, err)

		var back Kind
		assert.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back)
	}

	k, err := ParseKind("typemismatch")
	assert.NoError(t, err)
	assert.Equal(t, TypeMismatch, k)

	_, err = ParseKind("nope")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
