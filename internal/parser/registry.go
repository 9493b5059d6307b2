package parser

import (
	"path/filepath"
	"strings"

	"sem/internal/model"
)

// Registry maps file extensions to plugins. Registration order matters only
// for duplicate extensions (first registration wins is NOT the rule here:
// later registrations overwrite, matching a deliberate-override workflow).
// The registry is immutable after setup and safe for concurrent readers.
type Registry struct {
	plugins []Plugin
	byExt   map[string]int // ext (lowercase, with dot) → index into plugins
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]int)}
}

// Register adds a plugin and claims its extensions.
func (r *Registry) Register(p Plugin) {
	idx := len(r.plugins)
	r.plugins = append(r.plugins, p)
	for _, ext := range p.Extensions() {
		r.byExt[strings.ToLower(ext)] = idx
	}
}

// GetPlugin returns the plugin responsible for filePath, dispatching on the
// final extension (case-insensitive). Files with no registered extension get
// the fallback plugin, if one is registered.
func (r *Registry) GetPlugin(filePath string) Plugin {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != "" {
		if idx, ok := r.byExt[ext]; ok {
			return r.plugins[idx]
		}
	}
	return r.GetPluginByID("fallback")
}

// GetPluginByID returns the plugin with the given id, or nil.
func (r *Registry) GetPluginByID(id string) Plugin {
	for _, p := range r.plugins {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// ListPlugins returns the registered plugins in registration order.
func (r *Registry) ListPlugins() []Plugin {
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// SimilarityFor returns the plugin's own similarity function if it
// implements Similarer, nil otherwise (callers substitute the default).
func SimilarityFor(p Plugin) func(a, b *model.Entity) float64 {
	if s, ok := p.(Similarer); ok {
		return s.ComputeSimilarity
	}
	return nil
}
