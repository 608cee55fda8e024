// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/objdiff/internal/config"
)

const testConfig = `profiles:
  loose:
    ignore:
      - replicas
`

type result struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Value1 string `json:"value1"`
	Value2 string `json:"value2"`
}

// setup writes a config file and two documents, returning their paths.
func setup(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := filepath.Join(dir, "objdiff.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(testConfig), 0o600))
	t.Setenv(config.EnvFile, cfg)
	t.Setenv("OBJDIFF_CACHE", "0")

	left := filepath.Join(dir, "left.json")
	right := filepath.Join(dir, "right.json")
	require.NoError(t, os.WriteFile(left, []byte(`{"name":"web","replicas":2,"tags":["a"]}`), 0o600))
	require.NoError(t, os.WriteFile(right, []byte(`{"name":"api","replicas":3,"tags":["a","b"]}`), 0o600))
	return left, right
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	full := append([]string{"objdiff"}, args...)

	app, err := InitApp(context.Background(), full)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = io.Discard
	err = app.Run(context.Background(), full)
	return buf.String(), err
}

func decode(t *testing.T, out string) []result {
	t.Helper()
	var got []result
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	return got
}

func TestDiffCommand(t *testing.T) {
	left, right := setup(t)

	tests := []struct {
		name  string
		flags []string
		want  []result
	}{
		{
			name: "defaults",
			want: []result{
				{"ValueMismatch", "name", "web", "api"},
				{"ValueMismatch", "replicas", "2", "3"},
				{"NumberOfElementsMismatch", "tags", "1", "2"},
			},
		},
		{
			name:  "profile",
			flags: []string{"--profile", "loose"},
			want: []result{
				{"ValueMismatch", "name", "web", "api"},
				{"NumberOfElementsMismatch", "tags", "1", "2"},
			},
		},
		{
			name:  "ignore flag",
			flags: []string{"--ignore", "name,tags"},
			want:  []result{{"ValueMismatch", "replicas", "2", "3"}},
		},
		{
			name:  "select unequal list",
			flags: []string{"--select", "tags", "--unequal"},
			want: []result{
				{"NumberOfElementsMismatch", "", "1", "2"},
				{"MissingElementInFirst", "[1]", "", "b"},
			},
		},
		{
			name:  "filter",
			flags: []string{"--filter", "kind=ValueMismatch,value1=web"},
			want:  []result{{"ValueMismatch", "name", "web", "api"}},
		},
		{
			name:  "sort descending",
			flags: []string{"--sort=-path", "--ignore", "tags"},
			want: []result{
				{"ValueMismatch", "replicas", "2", "3"},
				{"ValueMismatch", "name", "web", "api"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"diff", "--output", "json"}, tt.flags...)
			out, err := run(t, append(args, left, right)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, decode(t, out))
		})
	}
}

func TestDiffExitCode(t *testing.T) {
	left, right := setup(t)

	_, err := run(t, "diff", "--exit-code", "--output", "json", left, right)
	assert.ErrorIs(t, err, ErrDifferencesFound)

	out, err := run(t, "diff", "--exit-code", "--output", "json", left, left)
	require.NoError(t, err)
	assert.Empty(t, decode(t, out))
}

func TestDiffDelta(t *testing.T) {
	left, right := setup(t)

	out, err := run(t, "diff", "--output", "delta", left, right)
	require.NoError(t, err)
	assert.Contains(t, out, `"web"`)
	assert.Contains(t, out, `"api"`)
}

func TestDiffRaw(t *testing.T) {
	left, right := setup(t)

	out, err := run(t, "diff", "--output", "json", "--raw", "--ignore", "name,tags", left, right)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0]["raw_value1"])
	assert.Equal(t, 3.0, got[0]["raw_value2"])
}

func TestTreeCommand(t *testing.T) {
	left, right := setup(t)

	out, err := run(t, "tree", "--ignore", "tags", left, right)
	require.NoError(t, err)
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "ValueMismatch: web -> api")
	assert.Contains(t, out, "ValueMismatch: 2 -> 3")
}

func TestCommandErrors(t *testing.T) {
	left, right := setup(t)

	tests := []struct {
		name string
		args []string
	}{
		{"one document", []string{"diff", left}},
		{"three documents", []string{"diff", left, right, right}},
		{"missing document", []string{"diff", left, filepath.Join(t.TempDir(), "nope.json")}},
		{"unknown profile", []string{"diff", "--profile", "nope", left, right}},
		{"bad output", []string{"diff", "--output", "xml", left, right}},
		{"bad filter", []string{"diff", "--filter", "bogus=1", left, right}},
		{"bad format", []string{"diff", "--format", "toml", left, right}},
		{"bad select", []string{"diff", "--select", "missing", left, right}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _objdiff objdiff")

	out, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef objdiff")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, OutputValidator("delta"))
	assert.NoError(t, OutputValidator("tree"))
	assert.Error(t, OutputValidator("raw"))
	assert.NoError(t, FormatValidator("tfvars"))
	assert.Error(t, FormatValidator("toml"))
	assert.NoError(t, FilterValidator("path~spec"))
	assert.Error(t, FilterValidator("bogus=1"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a,,b "))
}
