package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/distinct/internal/colour"
	"github.com/jmylchreest/distinct/internal/config"
	"github.com/jmylchreest/distinct/internal/generator"
	"github.com/jmylchreest/distinct/internal/output"
	"github.com/jmylchreest/distinct/internal/output/css"
	"github.com/jmylchreest/distinct/internal/output/html"
	"github.com/jmylchreest/distinct/internal/output/list"
	"github.com/jmylchreest/distinct/internal/seed"
	"github.com/jmylchreest/distinct/internal/selector"
)

// newOutputRegistry registers every built-in output plugin.
func newOutputRegistry() *output.Registry {
	r := output.NewRegistry()
	r.Register(list.New())
	r.Register(css.New())
	r.Register(html.New())
	return r
}

type processOptions struct {
	search      searchFlags
	outdir      string
	outputs     []string
	templateDir string
	dryRun      bool
	preview     *enumValue
	registry    *output.Registry
}

func newProcessCmd(root *rootOptions) *cobra.Command {
	o := &processOptions{registry: newOutputRegistry()}

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Assign distinct colours to the selectors in a file",
		Long: `Extract every #id and .class selector from a file, generate one distinct
colour set per selector kind and write the results.

Output plugins:
  list  - selector names, one per line      (<outdir>/txt/ids.txt, classes.txt)
  css   - one rule per selector             (<outdir>/css/selectors_ids.css, ...)
  html  - a browsable preview grid          (<outdir>/html/selectors_ids.html, ...)

Randomised strategies are seeded from the file contents unless a seed mode
or seed is given, so the same input always produces the same colours.

Templates can be customised by dumping them with 'distinct templates dump'.

Examples:
  distinct process styles.css
  distinct process page.html --outdir build --outputs css,html
  distinct process page.html -s greedyLab --css.property color
  distinct process page.html --dry-run --preview`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, root, o, args[0])
		},
	}

	o.search.register(cmd)
	cmd.Flags().StringVar(&o.outdir, "outdir", "", "output root directory (default from config: data)")
	cmd.Flags().StringSliceVar(&o.outputs, "outputs", nil, "output plugins, comma-separated (default: all)")
	cmd.Flags().StringVar(&o.templateDir, "template-dir", "", "custom template root (default: ~/.config/distinct/templates)")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "report files without writing them")
	o.preview = addPreviewFlag(cmd)

	for _, name := range o.registry.List() {
		p, _ := o.registry.Get(name)
		p.RegisterFlags(cmd)
	}

	return cmd
}

func runProcess(cmd *cobra.Command, root *rootOptions, o *processOptions, inputPath string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := o.search.apply(cmd, cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("outdir") {
		cfg.OutputDir = o.outdir
	}
	if cmd.Flags().Changed("outputs") {
		cfg.Outputs = o.outputs
	}
	if cmd.Flags().Changed("template-dir") {
		cfg.TemplateDir = o.templateDir
	}

	plugins, err := selectPlugins(o.registry, cfg, root.logger)
	if err != nil {
		return err
	}

	sels, err := selector.ExtractFile(inputPath)
	if err != nil {
		return err
	}
	if sels.Empty() {
		root.logger.Warn("no selectors found", "file", inputPath)
		return nil
	}

	s, err := newSearch(cfg, root.logger, inputPath, seed.ModeContent)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	preview := wantPreview(o.preview.String(), cmd)
	table := NewTable([]string{"Kind", "Selectors", "Min ΔE (Lab)", "Min ΔE (OKLab)"})
	var written []output.WrittenFile

	for _, kind := range selector.Kinds() {
		names := sels.Of(kind)
		if len(names) == 0 {
			root.logger.Debug("no selectors of kind", "kind", kind)
			continue
		}

		colours, err := generateFor(cmd, s, len(names))
		if err != nil {
			return fmt.Errorf("%s selectors: %w", kind, err)
		}
		a, err := output.Zip(kind, s.descriptor.Description, names, colours)
		if err != nil {
			return err
		}

		for _, p := range plugins {
			files, err := output.Write(p, a, cfg.OutputDir, o.dryRun)
			if err != nil {
				return err
			}
			written = append(written, files...)
		}

		table.AddRow([]string{
			kind.Plural(),
			strconv.Itoa(len(names)),
			fmt.Sprintf("%.2f", colour.MinPairwiseLab(colours)),
			fmt.Sprintf("%.4f", colour.MinPairwiseOKLab(colours)),
		})
		if preview {
			printAssignment(out, a)
		}
	}

	if root.quiet {
		return nil
	}

	fmt.Fprintf(out, "Method: %s\n\n", s.descriptor.Description)
	fmt.Fprint(out, table.Render())
	fmt.Fprintln(out)
	printWritten(out, written, o.dryRun)
	return nil
}

// generateFor produces n colours. Even-only strategies are asked for one extra
// colour when n is odd and the surplus is dropped.
func generateFor(cmd *cobra.Command, s *search, n int) ([]colour.RGB, error) {
	want := n
	if s.descriptor.EvenOnly && n%2 != 0 {
		want = n + 1
		s.opts.Logger.Debug("rounding odd selector count up for even-only strategy", "selectors", n, "generated", want)
	}
	colours, err := generator.Generate(cmd.Context(), s.descriptor.Strategy, want, s.opts)
	if err != nil {
		return nil, err
	}
	return colours[:n], nil
}

// selectPlugins resolves and validates the configured output plugins.
func selectPlugins(r *output.Registry, cfg *config.Config, logger hclog.Logger) ([]output.Plugin, error) {
	names := cfg.Outputs
	if len(names) == 0 || slices.Contains(names, "all") {
		names = r.List()
	}

	plugins := make([]output.Plugin, 0, len(names))
	for _, name := range names {
		p, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown output plugin: %s (available: %v)", name, r.List())
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if lp, ok := p.(output.LoggerPlugin); ok {
			lp.SetLogger(logger.Named(name))
		}
		if tp, ok := p.(output.TemplateProvider); ok && cfg.TemplateDir != "" {
			tp.SetTemplateBase(cfg.TemplateDir)
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

func printAssignment(w io.Writer, a *output.Assignment) {
	for _, p := range a.Pairs {
		fmt.Fprintln(w, colour.FormatColourWithLabel(p.Colour, a.FullSelector(p), 4))
	}
	fmt.Fprintln(w)
}

func printWritten(w io.Writer, files []output.WrittenFile, dryRun bool) {
	verb := "Wrote"
	if dryRun {
		verb = "Would write"
	}
	var total uint64
	for _, f := range files {
		fmt.Fprintf(w, "  %-6s %s (%s)\n", f.Plugin, f.Path, humanize.Bytes(uint64(f.Size)))
		total += uint64(f.Size)
	}
	fmt.Fprintf(w, "%s %d files, %s\n", verb, len(files), humanize.Bytes(total))
}
