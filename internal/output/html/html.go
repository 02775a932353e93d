// Package html provides an output plugin that renders a browsable preview of the colour assignment.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
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

// Plugin implements the output.Plugin interface for HTML previews.
type Plugin struct {
	title        string
	cardWidth    int
	logger       hclog.Logger
	templateBase string
}

// New creates a new HTML output plugin with default settings.
func New() *Plugin {
	return &Plugin{cardWidth: 150, logger: hclog.NewNullLogger()}
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
	return "html"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate an HTML preview grid of selectors and their colours"
}

// Subdir returns the output subdirectory.
func (p *Plugin) Subdir() string {
	return "html"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.title, "html.title", "", "page title (default: \"<kind> colours\")")
	cmd.Flags().IntVar(&p.cardWidth, "html.card-width", 150, "minimum swatch card width in pixels")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.cardWidth < 50 || p.cardWidth > 1000 {
		return fmt.Errorf("html card width must be between 50 and 1000, got %d", p.cardWidth)
	}
	return nil
}

type htmlData struct {
	*output.Assignment
	Title     string
	Heading   string
	Prefix    string
	CardWidth int
}

// Generate renders selectors_<kind>.html.
func (p *Plugin) Generate(a *output.Assignment) (map[string][]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("assignment cannot be nil")
	}

	loader := p.loader()
	tmplContent, _, err := loader.Load("selectors.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read html template: %w", err)
	}

	tmpl, err := template.New("html").Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html template: %w", err)
	}

	title := p.title
	if title == "" {
		title = fmt.Sprintf("%s colours", a.Kind)
	}

	var buf bytes.Buffer
	data := htmlData{
		Assignment: a,
		Title:      title,
		Heading:    strings.ToUpper(string(a.Kind)),
		Prefix:     a.Kind.Prefix(),
		CardWidth:  p.cardWidth,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute html template: %w", err)
	}

	return map[string][]byte{
		fmt.Sprintf("selectors_%s.html", a.Kind.Plural()): buf.Bytes(),
	}, nil
}
