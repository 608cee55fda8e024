// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("OBJDIFF_CACHE_DIR", custom)

	dir, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, custom, dir)

	t.Setenv("OBJDIFF_CACHE_DIR", "")
	if dir, ok := Dir(); ok {
		assert.True(t, filepath.IsAbs(dir))
		assert.Equal(t, "objdiff", filepath.Base(dir))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("OBJDIFF_CACHE", tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("OBJDIFF_CACHE_DIR", t.TempDir())

	t.Setenv("OBJDIFF_CACHE", "0")
	_, ok := Default(time.Hour)
	assert.False(t, ok)

	t.Setenv("OBJDIFF_CACHE", "")
	c, ok := Default(0)
	require.True(t, ok)
	assert.Equal(t, DefaultTTL, c.TTL)
}

func TestPutGet(t *testing.T) {
	c := &Cache{Base: t.TempDir(), TTL: time.Hour}

	_, ok := c.Get("s3", "s3://bucket/a.json")
	assert.False(t, ok)

	data := []byte("{\"a\": 1}\n")
	require.NoError(t, c.Put("s3", "s3://bucket/a.json", data))

	got, ok := c.Get("s3", "s3://bucket/a.json")
	assert.True(t, ok)
	assert.Equal(t, data, got)

	_, ok = c.Get("other", "s3://bucket/a.json")
	assert.False(t, ok)

	p := c.EntryPath("s3", "s3://bucket/a.json")
	assert.Len(t, filepath.Base(p), 64)
	assert.Equal(t, p, c.EntryPath("s3", "s3://bucket/a.json"))
}

func TestExpiryAndPurge(t *testing.T) {
	c := &Cache{Base: t.TempDir(), TTL: time.Hour}
	require.NoError(t, c.Put("s3", "old", []byte("1")))
	require.NoError(t, c.Put("s3", "new", []byte("2")))

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(c.EntryPath("s3", "old"), old, old))

	_, ok := c.Get("s3", "old")
	assert.False(t, ok)

	removed, err := c.Purge()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(c.EntryPath("s3", "old"))
	assert.True(t, os.IsNotExist(err))
	_, ok = c.Get("s3", "new")
	assert.True(t, ok)
}

func TestPurgeMissingBase(t *testing.T) {
	c := &Cache{Base: filepath.Join(t.TempDir(), "missing"), TTL: time.Hour}
	removed, err := c.Purge()
	assert.NoError(t, err)
	assert.Zero(t, removed)
}
