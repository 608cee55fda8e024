// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d73a49")).Strikethrough(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#28a745")).Bold(true)
)

// inline highlights the characters that differ between two string values.
// The first result carries the deletions and the second the insertions.
func inline(one, two string) (string, string) {
	diffs := Segments(one, two)

	var left, right strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			left.WriteString(d.Text)
			right.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			left.WriteString(removedStyle.Render(d.Text))
		case diffmatchpatch.DiffInsert:
			right.WriteString(addedStyle.Render(d.Text))
		}
	}
	return left.String(), right.String()
}

// Segments returns the semantically cleaned character diff of two strings.
func Segments(one, two string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(one, two, false)
	return dmp.DiffCleanupSemantic(diffs)
}
