// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two loaded documents and hands the differences to
// the renderers, either as a list, a tree, a JSON delta, or an interactive
// browser.
package differ
