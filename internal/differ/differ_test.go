// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/objdiff/comparer"
	"github.com/tfctl/objdiff/internal/config"
	"github.com/tfctl/objdiff/internal/document"
)

type row struct {
	Kind   comparer.Kind
	Path   string
	Value1 string
	Value2 string
}

func rows(locs []comparer.DifferenceLocation) []row {
	var out []row
	for _, l := range locs {
		d := l.Difference
		out = append(out, row{d.Kind, d.Path, d.Value1, d.Value2})
	}
	return out
}

func parse(t *testing.T, format document.Format, raw string) *document.Document {
	t.Helper()
	v, err := document.Parse("test."+string(format), format, []byte(raw))
	require.NoError(t, err)
	return &document.Document{Source: "test." + string(format), Format: format, Value: v, Raw: []byte(raw)}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name        string
		profile     config.Profile
		left, right *document.Document
		want        []row
	}{
		{
			name:  "json and yaml agree",
			left:  parse(t, document.JSON, `{"a":1,"b":["x"]}`),
			right: parse(t, document.YAML, "a: 1\nb: [x]\n"),
		},
		{
			name:  "plain values",
			left:  parse(t, document.JSON, `{"name":"web","replicas":2,"extra":true}`),
			right: parse(t, document.JSON, `{"name":"api","replicas":"2"}`),
			want: []row{
				{comparer.MissingMemberInSecond, "extra", "true", ""},
				{comparer.ValueMismatch, "name", "web", "api"},
				{comparer.TypeMismatch, "replicas", "2", "2"},
			},
		},
		{
			name:  "hcl against hcl",
			left:  parse(t, document.HCL, `name = "web"`+"\n"+`ports = [80]`),
			right: parse(t, document.HCL, `name = "api"`+"\n"+`ports = [80]`),
			want:  []row{{comparer.ValueMismatch, "name", "web", "api"}},
		},
		{
			name:  "hcl against json",
			left:  parse(t, document.HCL, `replicas = 2`),
			right: parse(t, document.JSON, `{"replicas":3}`),
			want:  []row{{comparer.ValueMismatch, "replicas", "2", "3"}},
		},
		{
			name:    "keyed lists",
			profile: config.Profile{ByKey: true, Keys: []string{"name"}},
			left:    parse(t, document.JSON, `{"items":[{"name":"a","v":1},{"name":"b","v":2}]}`),
			right:   parse(t, document.JSON, `{"items":[{"name":"b","v":3},{"name":"a","v":1}]}`),
			want:    []row{{comparer.ValueMismatch, "items[b].v", "2", "3"}},
		},
		{
			name:    "ignored member",
			profile: config.Profile{Ignore: []string{"version"}},
			left:    parse(t, document.JSON, `{"version":1,"a":1}`),
			right:   parse(t, document.JSON, `{"version":2,"a":1}`),
		},
		{
			name:    "null and empty lists",
			profile: config.Profile{NullEmpty: true},
			left:    parse(t, document.JSON, `{"tags":null}`),
			right:   parse(t, document.JSON, `{"tags":[]}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locs, err := Compare(tt.profile, tt.left, tt.right)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows(locs))
		})
	}
}

func TestSettings(t *testing.T) {
	off := false
	s := Settings(config.Profile{Recursive: &off, DefaultMissing: true, Unequal: true})

	assert.False(t, s.RecursiveComparison)
	assert.True(t, s.UseDefaultForMissingMember)
	assert.False(t, s.EmptyAndNullSequencesEqual)

	opts := comparer.DefaultListOptions()
	s.ListComparison(comparer.NewRoot(), &opts)
	assert.True(t, opts.CompareUnequalLists)
	assert.Equal(t, comparer.ByIndex, opts.Mode())

	s = Settings(config.Profile{ByKey: true})
	opts = comparer.DefaultListOptions()
	s.ListComparison(comparer.NewRoot(), &opts)
	assert.Equal(t, comparer.ByKey, opts.Mode())

	key, ok := opts.KeyOptions().KeyProvider(map[string]any{"Name": "x"})
	assert.True(t, ok)
	assert.Equal(t, "x", key)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "left.json")
	right := filepath.Join(dir, "right.yaml")
	require.NoError(t, os.WriteFile(left, []byte(`{"spec":{"image":"nginx:1.25","replicas":2},"status":"ok"}`), 0o600))
	require.NoError(t, os.WriteFile(right, []byte("spec:\n  image: nginx:1.27\n  replicas: 3\nstatus: failed\n"), 0o600))

	res, err := Run(context.Background(), Request{Left: left, Right: right})
	require.NoError(t, err)
	assert.Len(t, res.Locations, 3)
	assert.Equal(t, document.JSON, res.Left.Format)
	assert.Equal(t, document.YAML, res.Right.Format)

	res, err = Run(context.Background(), Request{Left: left, Right: right, Select: "spec", Filter: "path=image"})
	require.NoError(t, err)
	assert.Equal(t, []row{{comparer.ValueMismatch, "image", "nginx:1.25", "nginx:1.27"}}, rows(res.Locations))

	_, err = Run(context.Background(), Request{Left: left, Right: filepath.Join(dir, "missing.json")})
	assert.Error(t, err)

	_, err = Run(context.Background(), Request{Left: left, Right: right, Select: "nope"})
	assert.Error(t, err)
}

func TestDelta(t *testing.T) {
	left := parse(t, document.JSON, `{"name":"web","version":1}`)
	right := parse(t, document.JSON, `{"name":"api","version":2}`)

	var buf bytes.Buffer
	modified, err := Delta(&buf, left, right, nil, false)
	require.NoError(t, err)
	assert.True(t, modified)
	assert.Contains(t, buf.String(), `"web"`)
	assert.Contains(t, buf.String(), `"api"`)

	buf.Reset()
	modified, err = Delta(&buf, left, parse(t, document.JSON, `{"name":"web","version":2}`), []string{"version"}, false)
	require.NoError(t, err)
	assert.False(t, modified)
	assert.Empty(t, buf.String())

	modified, err = Delta(&buf, parse(t, document.JSON, `[1,2]`), parse(t, document.JSON, `[1,3]`), nil, false)
	require.NoError(t, err)
	assert.True(t, modified)

	_, err = Delta(&buf, left, parse(t, document.JSON, `[1]`), nil, false)
	assert.Error(t, err)

	_, err = Delta(&buf, parse(t, document.JSON, `"x"`), parse(t, document.JSON, `"y"`), nil, false)
	assert.Error(t, err)
}
