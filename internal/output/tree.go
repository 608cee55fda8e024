// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/tfctl/objdiff/comparer"
)

// TreeWriter renders a difference tree, one node per line, indented by depth.
// Each difference is listed below the node it was found at.
func TreeWriter(view *comparer.TreeView, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	if view.Count() == 0 {
		return
	}

	nodeStyle := lipgloss.NewStyle()
	diffStyle := lipgloss.NewStyle()
	if opts.Color {
		header, _, odd := getColors("colors")
		nodeStyle = nodeStyle.Bold(true).Foreground(header)
		diffStyle = diffStyle.Foreground(odd)
	}

	view.Walk(func(depth int, v *comparer.TreeView) bool {
		if depth == 0 {
			fmt.Fprintln(w, nodeStyle.Render("."))
		} else {
			fmt.Fprintln(w, indent(depth)+nodeStyle.Render(v.Label()))
		}

		for _, d := range v.Differences {
			line := d.Kind.String() + ": " + cell(d.Value1) + " -> " + cell(d.Value2)
			fmt.Fprintln(w, indent(depth+1)+diffStyle.Render(line))
		}
		return true
	})
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
