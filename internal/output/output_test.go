// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/objdiff/comparer"
)

func sampleLocations(t *testing.T) []comparer.DifferenceLocation {
	t.Helper()
	a := map[string]any{
		"name": "web",
		"port": 80.0,
		"tags": []any{"a"},
		"svc":  map[string]any{"image": "nginx:1.25"},
	}
	b := map[string]any{
		"name":  "api",
		"port":  8080.0,
		"tags":  []any{"a", "b"},
		"svc":   map[string]any{"image": "nginx:1.27"},
		"extra": true,
	}

	c := comparer.New(nil)
	locs, err := comparer.Collect(c.BuildDifferenceTree(reflect.TypeFor[map[string]any](), a, b, comparer.NewRoot()))
	require.NoError(t, err)
	require.Len(t, locs, 5)
	return locs
}

func paths(locs []comparer.DifferenceLocation) []string {
	var out []string
	for _, l := range locs {
		out = append(out, l.Difference.Path)
	}
	return out
}

func TestSortDifferences(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []string
	}{
		{
			name: "found order",
			spec: "",
			want: []string{"extra", "name", "port", "svc.image", "tags"},
		},
		{
			name: "descending by path",
			spec: "-path",
			want: []string{"tags", "svc.image", "port", "name", "extra"},
		},
		{
			name: "by kind then path",
			spec: "kind,path",
			want: []string{"extra", "tags", "name", "port", "svc.image"},
		},
		{
			name: "by depth descending",
			spec: "-depth,path",
			want: []string{"svc.image", "extra", "name", "port", "tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locs := sampleLocations(t)
			SortDifferences(locs, tt.spec)
			assert.Equal(t, tt.want, paths(locs))
		})
	}
}

func TestSortNumeric(t *testing.T) {
	mk := func(v string) comparer.DifferenceLocation {
		return comparer.DifferenceLocation{Difference: comparer.Difference{Path: v, Value1: v}}
	}
	locs := []comparer.DifferenceLocation{mk("10"), mk("9"), mk("100")}

	SortDifferences(locs, "value1")
	assert.Equal(t, []string{"9", "10", "100"}, paths(locs))

	SortDifferences(locs, "-value1")
	assert.Equal(t, []string{"100", "10", "9"}, paths(locs))
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleLocations(t), Options{Format: "json"}))

	var got []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, map[string]string{
		"kind":   "MissingMemberInFirst",
		"path":   "extra",
		"value1": "",
		"value2": "true",
	}, got[0])
	assert.Equal(t, "NumberOfElementsMismatch", got[4]["kind"])
}

func TestRenderRaw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleLocations(t), Options{Format: "json", Raw: true}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 5)
	assert.NotContains(t, got[0], "raw_value1")
	assert.Equal(t, true, got[0]["raw_value2"])
	assert.Equal(t, "web", got[1]["raw_value1"])
	assert.Equal(t, 8080.0, got[2]["raw_value2"])
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleLocations(t), Options{Format: "yaml", Sort: "-path"}))

	var got []record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, record{Kind: "NumberOfElementsMismatch", Path: "tags", Value1: "1", Value2: "2"}, got[0])
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleLocations(t), Options{Format: "text", Titles: true, Padding: 2, Summary: true}))

	out := buf.String()
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "VALUE2")
	assert.Contains(t, out, "MissingMemberInFirst")
	assert.Contains(t, out, "svc.image")
	assert.Contains(t, out, "nginx:1.27")
	assert.Contains(t, out, "5 differences.")
}

func TestRenderTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleLocations(t), Options{Format: "tree"}))

	want := ".\n" +
		"  extra\n" +
		"    MissingMemberInFirst: - -> true\n" +
		"  name\n" +
		"    ValueMismatch: web -> api\n" +
		"  port\n" +
		"    ValueMismatch: 80 -> 8080\n" +
		"  svc\n" +
		"    image\n" +
		"      ValueMismatch: nginx:1.25 -> nginx:1.27\n" +
		"  tags\n" +
		"    NumberOfElementsMismatch: 1 -> 2\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderTreeRenamedMembers(t *testing.T) {
	s := comparer.NewSettings()
	s.DifferenceTree = func(_ *comparer.Node, opts *comparer.TreeOptions) {
		opts.MemberFactory = func(m comparer.Member) *comparer.Member {
			m.Name = "m_" + m.Name
			return &m
		}
	}
	a := map[string]any{"svc": map[string]any{"image": "nginx:1.25"}}
	b := map[string]any{"svc": map[string]any{"image": "nginx:1.27", "port": 80.0}}

	locs, err := comparer.Collect(comparer.New(s).BuildDifferenceTree(reflect.TypeFor[map[string]any](), a, b, comparer.NewRoot()))
	require.NoError(t, err)
	require.Len(t, locs, 2)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, locs, Options{Format: "tree"}))

	want := ".\n" +
		"  m_svc\n" +
		"    m_image\n" +
		"      ValueMismatch: nginx:1.25 -> nginx:1.27\n" +
		"    m_port\n" +
		"      MissingMemberInFirst: - -> 80\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderEmpty(t *testing.T) {
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, nil, Options{Format: format}))
			if format == "text" || format == "tree" {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestRenderUnknown(t *testing.T) {
	err := Render(&bytes.Buffer{}, nil, Options{Format: "xml"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "No differences.", Summary(0))
	assert.Equal(t, "1 difference.", Summary(1))
	assert.Equal(t, "12,345 differences.", Summary(12345))
}

func TestSegments(t *testing.T) {
	diffs := Segments("nginx:1.25", "nginx:1.27")
	require.NotEmpty(t, diffs)
	assert.Equal(t, diffmatchpatch.DiffEqual, diffs[0].Type)
	assert.Equal(t, "nginx:1.2", diffs[0].Text)

	left, right := inline("abc", "abc")
	assert.Equal(t, "abc", left)
	assert.Equal(t, "abc", right)
}
