// Package template loads output templates, preferring user overrides over embedded defaults.
package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// ErrTemplateExists is returned by DumpTemplate when an override is already present.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader reads templates for one plugin from ~/.config/distinct/templates/<plugin>/,
// falling back to the plugin's embedded copy.
type Loader struct {
	pluginName string
	embedFS    embed.FS
	customBase string
	logger     hclog.Logger
}

// DefaultCustomBase returns the user template override root.
func DefaultCustomBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ".config", "distinct", "templates")
}

// New creates a new template loader for the specified plugin.
func New(pluginName string, embedFS embed.FS) *Loader {
	return &Loader{
		pluginName: pluginName,
		embedFS:    embedFS,
		customBase: DefaultCustomBase(),
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets a custom base directory for template overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger used to report which template was chosen.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load reads a template file, checking for custom overrides first.
// Returns the template content and whether it was loaded from a custom override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	customPath := l.CustomPath(filename)

	if content, err := os.ReadFile(customPath); err == nil { // #nosec G304 -- user template directory
		l.logger.Debug("using custom template", "plugin", l.pluginName, "path", customPath)
		return content, true, nil
	}

	l.logger.Trace("using embedded template", "plugin", l.pluginName, "file", filename)
	content, err = l.embedFS.ReadFile(filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}

	return content, false, nil
}

// CustomPath returns the path where a custom template would be located.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customBase, l.pluginName, filename)
}

// CustomDir returns the directory where custom templates for this plugin would be located.
func (l *Loader) CustomDir() string {
	return filepath.Join(l.customBase, l.pluginName)
}

// HasCustomTemplate checks if a custom template exists for the given filename.
func (l *Loader) HasCustomTemplate(filename string) bool {
	_, err := os.Stat(l.CustomPath(filename))
	return err == nil
}

// ListEmbeddedTemplates returns a list of all embedded template files.
func (l *Loader) ListEmbeddedTemplates() ([]string, error) {
	var templates []string

	err := fs.WalkDir(l.embedFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".tmpl" {
			templates = append(templates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}

	return templates, nil
}

// DumpTemplate writes an embedded template to the custom templates directory.
// If force is false, it will not overwrite existing custom templates.
func (l *Loader) DumpTemplate(filename string, force bool) error {
	content, err := l.embedFS.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	outputPath := l.CustomPath(filename)
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrTemplateExists, outputPath)
		}
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", outputDir, err)
	}

	if err := os.WriteFile(outputPath, content, 0o644); err != nil { // #nosec G306 -- templates are not secret
		return fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}

	return nil
}

// DumpAllTemplates writes all embedded templates to the custom templates directory.
// Existing overrides are skipped unless force is set; skipped files are reported
// together in the returned error while the rest are still written.
func (l *Loader) DumpAllTemplates(force bool) ([]string, error) {
	templates, err := l.ListEmbeddedTemplates()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error

	for _, tmpl := range templates {
		if err := l.DumpTemplate(tmpl, force); err != nil {
			if errors.Is(err, ErrTemplateExists) {
				skipped = append(skipped, err)
				continue
			}
			return dumped, err
		}
		dumped = append(dumped, l.CustomPath(tmpl))
	}

	return dumped, errors.Join(skipped...)
}

// TemplateInfo describes where a template would be loaded from.
type TemplateInfo struct {
	Filename       string
	EmbeddedExists bool
	CustomExists   bool
	CustomPath     string
}

// GetInfo returns information about a specific template.
func (l *Loader) GetInfo(filename string) TemplateInfo {
	_, embeddedErr := l.embedFS.ReadFile(filename)

	return TemplateInfo{
		Filename:       filename,
		EmbeddedExists: embeddedErr == nil,
		CustomExists:   l.HasCustomTemplate(filename),
		CustomPath:     l.CustomPath(filename),
	}
}
