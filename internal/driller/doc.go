// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller selects a sub-tree of a JSON document by a dotted path so
// that only part of two documents is compared.
package driller
