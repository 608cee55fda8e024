// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/objdiff/comparer"
	"github.com/tfctl/objdiff/internal/config"
	"github.com/tfctl/objdiff/internal/log"
)

// Formats lists the output formats understood by Render.
var Formats = []string{"text", "json", "yaml", "tree"}

// ErrUnknownFormat is returned by Render for a format it does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Options controls how differences are rendered.
type Options struct {
	Format  string
	Color   bool
	Titles  bool
	Padding int
	// Sort is a comma separated list of fields, see SortDifferences.
	Sort string
	// Summary appends a count line to text and tree output.
	Summary bool
	// Raw adds the unconverted values to json and yaml records.
	Raw bool
}

// record is the serialized shape of a difference.
type record struct {
	Kind   string `json:"kind" yaml:"kind"`
	Path   string `json:"path" yaml:"path"`
	Value1 string `json:"value1" yaml:"value1"`
	Value2 string `json:"value2" yaml:"value2"`
	Raw1   any    `json:"raw_value1,omitempty" yaml:"raw_value1,omitempty"`
	Raw2   any    `json:"raw_value2,omitempty" yaml:"raw_value2,omitempty"`
}

// Render sorts and writes locs to w in the format named by opts. If w is nil,
// os.Stdout is used.
func Render(w io.Writer, locs []comparer.DifferenceLocation, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	SortDifferences(locs, opts.Sort)
	log.Debugf("render: format=%s count=%d", opts.Format, len(locs))

	switch opts.Format {
	case "json":
		out, err := json.Marshal(records(locs, opts.Raw))
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(records(locs, opts.Raw))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "tree":
		TreeWriter(comparer.Tree(locs), opts, w)
	case "", "text":
		TableWriter(locs, opts, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	if opts.Summary {
		fmt.Fprintln(w, Summary(len(locs)))
	}
	return nil
}

// Summary renders a one line count of differences.
func Summary(n int) string {
	switch n {
	case 0:
		return "No differences."
	case 1:
		return "1 difference."
	}
	return humanize.Comma(int64(n)) + " differences."
}

func records(locs []comparer.DifferenceLocation, raw bool) []record {
	out := make([]record, 0, len(locs))
	for _, loc := range locs {
		d := loc.Difference
		r := record{
			Kind:   d.Kind.String(),
			Path:   d.Path,
			Value1: d.Value1,
			Value2: d.Value2,
		}
		if raw {
			r.Raw1, r.Raw2 = d.RawValue1, d.RawValue2
		}
		out = append(out, r)
	}
	return out
}

// TableWriter renders the differences in a tabular form honoring color,
// titles and padding options.
func TableWriter(locs []comparer.DifferenceLocation, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	// We return early if there are no results to display.
	if len(locs) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, loc := range locs {
		d := loc.Difference
		v1, v2 := cell(d.Value1), cell(d.Value2)
		if opts.Color && d.Kind == comparer.ValueMismatch && d.Value1 != "" && d.Value2 != "" {
			v1, v2 = inline(d.Value1, d.Value2)
		}
		rows = append(rows, []string{d.Kind.String(), cell(d.Path), v1, v2})
	}

	pad := opts.Padding
	if pad == 0 {
		pad, _ = config.GetInt("padding", 2)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers("KIND", "PATH", "VALUE1", "VALUE2").BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// cell renders an empty value as a dash so that columns stay aligned.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background so that output is reasonably visible
// for common terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
