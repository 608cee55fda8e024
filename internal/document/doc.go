// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package document loads the documents that objdiff compares. A document is
// read from a local path, from stdin ("-") or from an S3 object
// ("s3://bucket/key") and parsed as JSON, YAML or HCL. Encrypted OpenTofu
// states are decrypted before parsing.
//
// JSON and YAML documents become plain Go values (map[string]any, []any,
// string, float64, bool and nil). HCL documents become a cty.Value object of
// their top level attributes.
package document
