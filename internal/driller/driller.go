// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotFound is returned when a path does not resolve within a document.
var ErrNotFound = errors.New("path not found")

// ErrInvalidPath is returned for a malformed path segment.
var ErrInvalidPath = errors.New("invalid path")

var segmentRE = regexp.MustCompile(`^([^.\[\]]*)((?:\[(?:\d+|\*)?\])*)$`)
var indexRE = regexp.MustCompile(`\[(\d+|\*)?\]`)

// Drill navigates a JSON document using a dot path. A segment may carry one
// or more indexes, as in "resources[2]" or "matrix[0][1]", and "[*]" or "[]"
// keep the whole list. An empty path or "." selects the whole document.
func Drill(doc []byte, path string) (gjson.Result, error) {
	current := gjson.ParseBytes(doc)

	path = strings.TrimPrefix(strings.TrimSpace(path), ".")
	if path == "" {
		return current, nil
	}

	for _, p := range strings.Split(path, ".") {
		matches := segmentRE.FindStringSubmatch(p)
		if matches == nil || (matches[1] == "" && matches[2] == "") {
			return gjson.Result{}, fmt.Errorf("%w: segment %q of %q", ErrInvalidPath, p, path)
		}

		if key := matches[1]; key != "" {
			if !current.IsObject() {
				return gjson.Result{}, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			current = current.Get(escape(key))
			if !current.Exists() {
				return gjson.Result{}, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
		}

		for _, idx := range indexRE.FindAllStringSubmatch(matches[2], -1) {
			if !current.IsArray() {
				return gjson.Result{}, fmt.Errorf("%w: %s is not a list", ErrNotFound, p)
			}
			if idx[1] == "" || idx[1] == "*" {
				continue
			}

			i, err := strconv.Atoi(idx[1])
			if err != nil {
				return gjson.Result{}, fmt.Errorf("%w: %s", ErrInvalidPath, p)
			}
			arr := current.Array()
			if i >= len(arr) {
				return gjson.Result{}, fmt.Errorf("%w: index %d of %s", ErrNotFound, i, p)
			}
			current = arr[i]
		}
	}

	return current, nil
}

// escape quotes the characters gjson treats as path syntax.
func escape(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
