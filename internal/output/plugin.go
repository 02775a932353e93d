// Package output provides the interface and base types for output plugins.
package output

import (
	"embed"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// Plugin renders selector/colour assignments into files.
type Plugin interface {
	// Name returns the plugin's name (e.g., "css", "html").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate creates output file(s) from the given assignment.
	// Returns map of filename -> content to support plugins that generate multiple files.
	Generate(a *Assignment) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// Subdir returns the directory under the output root that this plugin writes to.
	Subdir() string
}

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns all registered plugins.
func (r *Registry) All() map[string]Plugin {
	plugins := make(map[string]Plugin, len(r.plugins))
	for name, plugin := range r.plugins {
		plugins[name] = plugin
	}
	return plugins
}

// LoggerPlugin is implemented by plugins that emit log events.
type LoggerPlugin interface {
	SetLogger(logger hclog.Logger)
}

// TemplateProvider is implemented by plugins that render embedded templates.
type TemplateProvider interface {
	Templates() embed.FS
	SetTemplateBase(dir string)
}
