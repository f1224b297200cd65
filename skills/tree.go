// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"maps"
	"slices"
	"strings"

	"github.com/stacklok/skillconnector/validation/name"
)

// Tree is the grouped, ordered view of a skill listing.
type Tree struct {
	Plugins []TreePlugin
}

// TreePlugin lists the function directories found under one plugin.
type TreePlugin struct {
	Name      string
	Functions []string
}

// Len returns the number of functions in the tree.
func (t Tree) Len() int {
	n := 0
	for _, p := range t.Plugins {
		n += len(p.Functions)
	}
	return n
}

// GroupListing groups a flat listing into plugins and functions. Only
// entries of the form plugin/function/skprompt.txt are considered; other
// entries are ignored. Plugins and functions are sorted by name.
//
// The first entry with an invalid plugin or function name fails the whole
// listing with a *ValidationError.
func GroupListing(entries [][]string) (Tree, error) {
	grouped := make(map[string]map[string]struct{})

	for _, entry := range entries {
		if len(entry) != 3 || entry[2] != PromptFileName {
			continue
		}
		pluginName, functionName := entry[0], entry[1]
		path := strings.Join(entry, "/")

		if err := name.Validate("plugin", pluginName); err != nil {
			return Tree{}, &ValidationError{Path: path, Kind: "plugin", Name: pluginName, Err: err}
		}
		if err := name.Validate("function", functionName); err != nil {
			return Tree{}, &ValidationError{Path: path, Kind: "function", Name: functionName, Err: err}
		}

		fns, ok := grouped[pluginName]
		if !ok {
			fns = make(map[string]struct{})
			grouped[pluginName] = fns
		}
		fns[functionName] = struct{}{}
	}

	tree := Tree{Plugins: make([]TreePlugin, 0, len(grouped))}
	for _, pluginName := range slices.Sorted(maps.Keys(grouped)) {
		tree.Plugins = append(tree.Plugins, TreePlugin{
			Name:      pluginName,
			Functions: slices.Sorted(maps.Keys(grouped[pluginName])),
		})
	}
	return tree, nil
}
