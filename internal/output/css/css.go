// Package css provides an output plugin that writes one CSS rule per selector.
package css

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
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

// DefaultProperty is the CSS property that receives each colour.
const DefaultProperty = "background-color"

var propertyPattern = regexp.MustCompile(`^-?[a-z][a-z-]*$`)

// Plugin implements the output.Plugin interface for CSS stylesheets.
type Plugin struct {
	property     string
	logger       hclog.Logger
	templateBase string
}

// New creates a new CSS output plugin with default settings.
func New() *Plugin {
	return &Plugin{property: DefaultProperty, logger: hclog.NewNullLogger()}
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
	return "css"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate a stylesheet assigning each selector its colour"
}

// Subdir returns the output subdirectory.
func (p *Plugin) Subdir() string {
	return "css"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.property, "css.property", DefaultProperty, "CSS property that receives each colour")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if !propertyPattern.MatchString(p.property) {
		return fmt.Errorf("invalid CSS property name: %q", p.property)
	}
	return nil
}

type cssData struct {
	*output.Assignment
	Prefix   string
	Property string
}

// Generate renders selectors_<kind>.css.
func (p *Plugin) Generate(a *output.Assignment) (map[string][]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("assignment cannot be nil")
	}

	loader := p.loader()
	tmplContent, _, err := loader.Load("selectors.css.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read css template: %w", err)
	}

	tmpl, err := template.New("css").Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse css template: %w", err)
	}

	var buf bytes.Buffer
	data := cssData{Assignment: a, Prefix: a.Kind.Prefix(), Property: p.property}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute css template: %w", err)
	}

	return map[string][]byte{
		fmt.Sprintf("selectors_%s.css", a.Kind.Plural()): buf.Bytes(),
	}, nil
}
