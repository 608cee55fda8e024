// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil keeps fetched remote documents on disk, keyed by a hash
// of their source so repeated comparisons avoid the network.
package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/objdiff/internal/log"
)

// DefaultTTL is the age after which entries are ignored and purged.
const DefaultTTL = 24 * time.Hour

// Cache is a directory of entries grouped in namespaces.
type Cache struct {
	Base string
	TTL  time.Duration
}

// Dir resolves the base cache directory.
// Precedence:
//  1. OBJDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/objdiff
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("OBJDIFF_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "objdiff"), true
	}
	return "", false
}

// Enabled returns true unless OBJDIFF_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled := os.Getenv("OBJDIFF_CACHE")
	return enabled != "0" && enabled != "false"
}

// Default returns the cache at Dir with the given TTL, or false when caching
// is disabled or no directory can be resolved.
func Default(ttl time.Duration) (*Cache, bool) {
	if !Enabled() {
		return nil, false
	}
	base, ok := Dir()
	if !ok {
		return nil, false
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{Base: base, TTL: ttl}, true
}

// EntryPath returns where the entry for key in namespace ns lives.
func (c *Cache) EntryPath(ns, key string) string {
	return filepath.Join(c.Base, ns, encodeKey(key))
}

// Get returns the data cached for key, ignoring entries older than the TTL.
func (c *Cache) Get(ns, key string) ([]byte, bool) {
	p := c.EntryPath(ns, key)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return nil, false
	}
	if c.TTL > 0 && time.Since(info.ModTime()) > c.TTL {
		log.Debugf("cache expired: key=%s", key)
		return nil, false
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", key)
	return b, true
}

// Put stores data for key. Creates directories as needed.
func (c *Cache) Put(ns, key string, data []byte) error {
	dir := filepath.Join(c.Base, ns)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, encodeKey(key)), data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s bytes=%d", key, len(data))
	return nil
}

// Purge removes entries older than the TTL and returns how many went.
func (c *Cache) Purge() (int, error) {
	if c.TTL <= 0 {
		return 0, nil
	}

	removed := 0
	err := filepath.WalkDir(c.Base, func(path string, d fs.DirEntry, walkErr error) error {
		// Entries may vanish while walking when two runs share a cache.
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil || time.Since(info.ModTime()) <= c.TTL {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to purge cache: %w", err)
	}
	return removed, nil
}

func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
