// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package ctycmp teaches the comparer about cty values, the dynamic values
// produced by HCL. Objects and maps are compared as dynamic objects, lists,
// tuples and sets as sequences, and primitives by raw equality.
package ctycmp
