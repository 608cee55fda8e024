// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package document

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/tfctl/objdiff/internal/cacheutil"
	"github.com/tfctl/objdiff/internal/driller"
)

var app = map[string]any{
	"name":     "web",
	"replicas": 2.0,
	"ports":    []any{80.0, 443.0},
	"labels":   map[string]any{"tier": "frontend"},
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		file   string
		format Format
	}{
		{"app.json", JSON},
		{"app.yaml", YAML},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc, err := Load(context.Background(), filepath.Join("testdata", tt.file))
			require.NoError(t, err)
			assert.Equal(t, tt.format, doc.Format)
			assert.Equal(t, app, doc.Value)
			assert.False(t, doc.IsCty())
			assert.NotEmpty(t, doc.Raw)
		})
	}
}

func TestLoadHCL(t *testing.T) {
	doc, err := Load(context.Background(), filepath.Join("testdata", "app.tfvars"))
	require.NoError(t, err)
	require.True(t, doc.IsCty())
	assert.Equal(t, HCL, doc.Format)

	v := doc.Value.(cty.Value)
	assert.True(t, v.GetAttr("name").RawEquals(cty.StringVal("web")))
	assert.True(t, v.GetAttr("labels").GetAttr("tier").RawEquals(cty.StringVal("frontend")))

	out, err := doc.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"labels":{"tier":"frontend"},"name":"web","ports":[80,443],"replicas":2}`, string(out))
}

func TestLoadStdin(t *testing.T) {
	doc, err := Load(context.Background(), Stdin, WithStdin(strings.NewReader("a: 1\nb: [x]\n")))
	require.NoError(t, err)
	assert.Equal(t, YAML, doc.Format)
	assert.Equal(t, map[string]any{"a": 1.0, "b": []any{"x"}}, doc.Value)

	doc, err = Load(context.Background(), Stdin, WithStdin(strings.NewReader(`[1,"a"]`)))
	require.NoError(t, err)
	assert.Equal(t, JSON, doc.Format)
	assert.Equal(t, []any{1.0, "a"}, doc.Value)
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Load(ctx, filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(ctx, Stdin, WithStdin(strings.NewReader(`{"a":`)), WithFormat(JSON))
	assert.ErrorIs(t, err, ErrParse)

	_, err = Load(ctx, Stdin, WithStdin(strings.NewReader("a: [")), WithFormat(YAML))
	assert.ErrorIs(t, err, ErrParse)

	_, err = Load(ctx, Stdin, WithStdin(strings.NewReader("name = ")), WithFormat(HCL))
	assert.ErrorIs(t, err, ErrParse)

	_, err = Load(ctx, Stdin, WithStdin(strings.NewReader("name = var.x")), WithFormat(HCL))
	assert.ErrorIs(t, err, ErrParse)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		source string
		raw    string
		want   Format
	}{
		{"a.json", "", JSON},
		{"a.tfstate", "", JSON},
		{"a.YML", "", YAML},
		{"a.hcl", "", HCL},
		{"prod.tfvars", "", HCL},
		{"-", `{"a":1}`, JSON},
		{"-", "a: 1", YAML},
		{"noext", "[1, 2]", JSON},
	}

	for _, tt := range tests {
		t.Run(tt.source+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.source, []byte(tt.raw)))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"": "", "JSON": JSON, "yml": YAML, "tfvars": HCL, "tfstate": JSON} {
		got, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNormalize(t *testing.T) {
	in := map[any]any{
		1:   "one",
		"n": int64(2),
		"t": time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		"l": []any{uint64(3), map[string]any{"x": 4}},
	}
	assert.Equal(t, map[string]any{
		"1": "one",
		"n": 2.0,
		"t": "2026-01-02T03:04:05Z",
		"l": []any{3.0, map[string]any{"x": 4.0}},
	}, normalize(in))
}

func TestSelect(t *testing.T) {
	ctx := context.Background()

	doc, err := Load(ctx, filepath.Join("testdata", "app.json"))
	require.NoError(t, err)

	same, err := doc.Select("")
	require.NoError(t, err)
	assert.Same(t, doc, same)

	sel, err := doc.Select("labels.tier")
	require.NoError(t, err)
	assert.Equal(t, "frontend", sel.Value)
	assert.Equal(t, filepath.Join("testdata", "app.json")+"#labels.tier", sel.Source)

	sel, err = doc.Select("ports[1]")
	require.NoError(t, err)
	assert.Equal(t, 443.0, sel.Value)

	_, err = doc.Select("spec")
	assert.ErrorIs(t, err, driller.ErrNotFound)

	hcl, err := Load(ctx, filepath.Join("testdata", "app.tfvars"))
	require.NoError(t, err)
	sel, err = hcl.Select("labels")
	require.NoError(t, err)
	require.True(t, sel.IsCty())
	assert.True(t, sel.Value.(cty.Value).GetAttr("tier").RawEquals(cty.StringVal("frontend")))
}

type countingGetter struct {
	body  string
	calls int
}

func (g *countingGetter) GetObject(_ context.Context, _ *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	g.calls++
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(g.body))}, nil
}

func TestLoadS3(t *testing.T) {
	ctx := context.Background()
	g := &countingGetter{body: `{"a":1}`}
	cache := &cacheutil.Cache{Base: t.TempDir(), TTL: time.Hour}

	for range 2 {
		doc, err := Load(ctx, "s3://bucket/dir/a.json", WithS3Client(g), WithCache(cache))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 1.0}, doc.Value)
	}
	assert.Equal(t, 1, g.calls)

	_, err := Load(ctx, "s3://bucket", WithS3Client(g))
	assert.Error(t, err)
}
