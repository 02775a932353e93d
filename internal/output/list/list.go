// Package list provides an output plugin that writes the extracted selector names, one per line.
package list

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/distinct/internal/output"
	"github.com/jmylchreest/distinct/internal/output/common"
	tmplloader "github.com/jmylchreest/distinct/internal/output/template"
)

//go:embed *.tmpl
var templates embed.FS

var (
	_ output.Plugin           = (*Plugin)(nil)
	_ output.LoggerPlugin     = (*Plugin)(nil)
	_ output.TemplateProvider = (*Plugin)(nil)
)

// Plugin implements the output.Plugin interface for plain selector lists.
type Plugin struct {
	logger       hclog.Logger
	templateBase string
}

// New creates a new list output plugin.
func New() *Plugin {
	return &Plugin{logger: hclog.NewNullLogger()}
}

// SetLogger sets the logger used while rendering.
// Implements the output.LoggerPlugin interface.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Templates returns the embedded template filesystem.
// Implements the output.TemplateProvider interface.
func (p *Plugin) Templates() embed.FS {
	return templates
}

// SetTemplateBase overrides the directory searched for custom templates.
// Implements the output.TemplateProvider interface.
func (p *Plugin) SetTemplateBase(dir string) {
	p.templateBase = dir
}

func (p *Plugin) loader() *tmplloader.Loader {
	l := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	if p.templateBase != "" {
		l.WithCustomBase(p.templateBase)
	}
	return l
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "list"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Write the extracted selector names, one per line"
}

// Subdir returns the output subdirectory.
func (p *Plugin) Subdir() string {
	return "txt"
}

// RegisterFlags is a no-op; the list plugin has no options.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	return nil
}

// Generate renders <kind>.txt.
func (p *Plugin) Generate(a *output.Assignment) (map[string][]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("assignment cannot be nil")
	}

	tmplContent, _, err := p.loader().Load("list.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read list template: %w", err)
	}

	tmpl, err := template.New("list").Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse list template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, a); err != nil {
		return nil, fmt.Errorf("failed to execute list template: %w", err)
	}

	return map[string][]byte{
		a.Kind.Plural() + ".txt": buf.Bytes(),
	}, nil
}
