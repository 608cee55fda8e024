// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/tfctl/objdiff/internal/driller"
)

// Format is the syntax a document is written in.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	HCL  Format = "hcl"
)

// Document is a loaded and parsed document.
type Document struct {
	Source string
	Format Format
	// Value is the parsed content, a cty.Value for HCL documents.
	Value any
	// Raw holds the bytes the value was parsed from, after decryption.
	Raw []byte
}

// IsCty reports whether the value of d is a cty.Value.
func (d *Document) IsCty() bool {
	_, ok := d.Value.(cty.Value)
	return ok
}

// Size renders the size of the raw document.
func (d *Document) Size() string {
	return humanize.Bytes(uint64(len(d.Raw)))
}

// JSON renders the value of d as JSON.
func (d *Document) JSON() ([]byte, error) {
	if v, ok := d.Value.(cty.Value); ok {
		out, err := ctyjson.Marshal(v, v.Type())
		if err != nil {
			return nil, fmt.Errorf("failed to render %s as json: %w", d.Source, err)
		}
		return out, nil
	}

	out, err := json.Marshal(d.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s as json: %w", d.Source, err)
	}
	return out, nil
}

// Select returns the part of d found at path, see driller.Drill. An empty
// path returns d unchanged.
func (d *Document) Select(path string) (*Document, error) {
	if path == "" {
		return d, nil
	}

	data, err := d.JSON()
	if err != nil {
		return nil, err
	}

	result, err := driller.Drill(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Source, err)
	}

	sel := &Document{
		Source: d.Source + "#" + path,
		Format: d.Format,
		Raw:    []byte(result.Raw),
	}

	if !d.IsCty() {
		sel.Value = result.Value()
		return sel, nil
	}

	// The selection is turned back into cty so that it is still compared by
	// the cty strategy.
	ty, err := ctyjson.ImpliedType(sel.Raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sel.Source, err)
	}
	v, err := ctyjson.Unmarshal(sel.Raw, ty)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sel.Source, err)
	}
	sel.Value = v
	return sel, nil
}
