// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"context"
	"slices"
	"strings"
	"sync/atomic"
)

// FunctionDefinition is one callable prompt function.
type FunctionDefinition struct {
	Plugin   string
	Name     string
	Template string
	Config   FunctionConfig
}

// Description returns the function's configured description.
func (f FunctionDefinition) Description() string {
	return f.Config.Description
}

// Plugin is a named group of functions ordered by function name.
type Plugin struct {
	Name      string
	Functions []FunctionDefinition
}

// Function returns the plugin's function with the given name.
func (p Plugin) Function(name string) (FunctionDefinition, bool) {
	i, ok := slices.BinarySearchFunc(p.Functions, name, func(f FunctionDefinition, n string) int {
		return strings.Compare(f.Name, n)
	})
	if !ok {
		return FunctionDefinition{}, false
	}
	return p.Functions[i], true
}

// FunctionInfo is a flattened listing entry.
type FunctionInfo struct {
	Plugin      string `json:"plugin_name"`
	Function    string `json:"function_name"`
	Description string `json:"description"`
}

// Registry is an immutable snapshot of plugins. Its accessors return copies,
// so it is safe for concurrent use.
type Registry struct {
	plugins []Plugin
}

// NewRegistry builds a registry from plugins. Plugins and their functions are
// sorted by name and plugins without functions are dropped. The input is
// copied.
func NewRegistry(plugins []Plugin) *Registry {
	r := &Registry{plugins: make([]Plugin, 0, len(plugins))}
	for _, p := range plugins {
		if len(p.Functions) == 0 {
			continue
		}
		fns := cloneFunctions(p.Functions)
		slices.SortFunc(fns, func(a, b FunctionDefinition) int { return strings.Compare(a.Name, b.Name) })
		r.plugins = append(r.plugins, Plugin{Name: p.Name, Functions: fns})
	}
	slices.SortFunc(r.plugins, func(a, b Plugin) int { return strings.Compare(a.Name, b.Name) })
	return r
}

// Plugins returns all plugins ordered by name.
func (r *Registry) Plugins() []Plugin {
	if r == nil {
		return nil
	}
	out := make([]Plugin, len(r.plugins))
	for i, p := range r.plugins {
		out[i] = Plugin{Name: p.Name, Functions: cloneFunctions(p.Functions)}
	}
	return out
}

// Plugin returns the plugin with the given name.
func (r *Registry) Plugin(name string) (Plugin, bool) {
	if r == nil {
		return Plugin{}, false
	}
	i, ok := slices.BinarySearchFunc(r.plugins, name, func(p Plugin, n string) int {
		return strings.Compare(p.Name, n)
	})
	if !ok {
		return Plugin{}, false
	}
	p := r.plugins[i]
	return Plugin{Name: p.Name, Functions: cloneFunctions(p.Functions)}, true
}

func cloneFunctions(fns []FunctionDefinition) []FunctionDefinition {
	if fns == nil {
		return nil
	}
	out := make([]FunctionDefinition, len(fns))
	for i, f := range fns {
		f.Config = f.Config.Clone()
		out[i] = f
	}
	return out
}

// Function returns the function plugin.name.
func (r *Registry) Function(plugin, name string) (FunctionDefinition, bool) {
	p, ok := r.Plugin(plugin)
	if !ok {
		return FunctionDefinition{}, false
	}
	return p.Function(name)
}

// Functions lists every function ordered by plugin, then function name.
func (r *Registry) Functions() []FunctionInfo {
	if r == nil {
		return nil
	}
	var out []FunctionInfo
	for _, p := range r.plugins {
		for _, f := range p.Functions {
			out = append(out, FunctionInfo{Plugin: p.Name, Function: f.Name, Description: f.Description()})
		}
	}
	return out
}

// Len returns the number of functions in the registry.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, p := range r.plugins {
		n += len(p.Functions)
	}
	return n
}

// Engine consumes built registries. Implementations replace any previously
// held registry wholesale.
type Engine interface {
	ReplacePlugins(ctx context.Context, r *Registry) error
}

// Holder is an Engine that keeps the latest registry for in-process readers.
// The zero value holds an empty registry.
type Holder struct {
	current atomic.Pointer[Registry]
}

var _ Engine = (*Holder)(nil)

// ReplacePlugins swaps in r.
func (h *Holder) ReplacePlugins(_ context.Context, r *Registry) error {
	if r == nil {
		r = NewRegistry(nil)
	}
	h.current.Store(r)
	return nil
}

// Load returns the current registry, never nil.
func (h *Holder) Load() *Registry {
	if r := h.current.Load(); r != nil {
		return r
	}
	return NewRegistry(nil)
}
