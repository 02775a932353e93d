package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/distinct/internal/colour"
	"github.com/jmylchreest/distinct/internal/generator"
	"github.com/jmylchreest/distinct/internal/seed"
)

// Output formats for the generate command.
const (
	formatText   = "text"
	formatHex    = "hex"
	formatRGB    = "rgb"
	formatJSON   = "json"
	formatSwatch = "swatch"
)

type generateOptions struct {
	search  searchFlags
	count   int
	format  *enumValue
	preview *enumValue
	output  string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	o := &generateOptions{
		format: newEnumValue(formatText, formatText, formatHex, formatRGB, formatJSON, formatSwatch),
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a set of distinct colours",
		Long: `Generate N colours that are as visually distinct as possible.

Strategies:
  fpsOklab          farthest-point sampling in OKLab (default, randomised)
  greedyLab         greedy max-min search on an RGB grid in CIE Lab
  uniform           equal hue steps
  evenSplit         equal hue steps, second half darkened
  goldenAngle       golden-angle hue steps, second half darkened
  referencePalette  the 20-colour tab20 palette

Every strategy except fpsOklab and uniform requires an even count.

Examples:
  # Ten colours with the default strategy
  distinct generate -n 10

  # Reproducible output
  distinct generate -n 10 --seed 42

  # Greedy Lab search on a finer grid, as JSON
  distinct generate -n 8 -s greedyLab --skip 8 -f json

  # Hex codes with terminal swatches
  distinct generate -n 12 -f hex --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, root, o)
		},
	}

	o.search.register(cmd)
	cmd.Flags().IntVarP(&o.count, "count", "n", 0, "number of colours to generate")
	cmd.Flags().VarP(o.format, "format", "f", "output format (text, hex, rgb, json, swatch)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	o.preview = addPreviewFlag(cmd)
	_ = cmd.MarkFlagRequired("count")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, o *generateOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := o.search.apply(cmd, cfg); err != nil {
		return err
	}

	s, err := newSearch(cfg, root.logger, "", seed.ModeRandom)
	if err != nil {
		return err
	}
	if err := s.descriptor.Validate(o.count); err != nil {
		return err
	}

	colours, err := generator.Generate(cmd.Context(), s.descriptor.Strategy, o.count, s.opts)
	if err != nil {
		return fmt.Errorf("failed to generate colours: %w", err)
	}
	palette := colour.NewPalette(colours, s.descriptor.Description)
	root.logger.Debug("generated colours",
		"count", palette.Len(),
		"min_oklab_delta", colour.MinPairwiseOKLab(colours),
		"min_lab_delta_e", colour.MinPairwiseLab(colours))

	preview := o.output == "" && wantPreview(o.preview.String(), cmd)
	text, err := formatPalette(palette, o.format.String(), preview)
	if err != nil {
		return err
	}

	if o.output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}

	if err := os.WriteFile(o.output, []byte(text), 0o644); err != nil { // #nosec G306 -- palette output is not secret
		return fmt.Errorf("failed to write output file: %w", err)
	}
	root.logger.Info("wrote palette", "path", o.output, "size", humanize.Bytes(uint64(len(text))))
	return nil
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case formatText:
		return palette.StringWithPreview(showPreview), nil
	case formatHex:
		return formatHexList(palette, showPreview), nil
	case formatRGB:
		return formatRGBList(palette, showPreview), nil
	case formatJSON:
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case formatSwatch:
		return formatSwatches(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, hex, rgb, json, swatch)", format)
	}
}

// formatHexList formats the palette as hex colour codes.
func formatHexList(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, c := range palette.Colours {
		if showPreview {
			b.WriteString(colour.FormatColourWithPreview(c, 8))
		} else {
			b.WriteString(c.Hex())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatRGBList formats the palette as CSS rgb() values.
func formatRGBList(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, c := range palette.Colours {
		if showPreview {
			b.WriteString(colour.ColourPreview(c, 8) + "  ")
		}
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// formatSwatches renders rows of labelled swatches, eight per row.
// Without preview the labels are printed bare.
func formatSwatches(palette *colour.Palette, showPreview bool) string {
	const perRow = 8
	var b strings.Builder
	for i, c := range palette.Colours {
		if showPreview {
			b.WriteString(colour.ColourPreviewWithText(c, c.Hex(), 9))
		} else {
			fmt.Fprintf(&b, "%-9s", c.Hex())
		}
		if (i+1)%perRow == 0 || i == palette.Len()-1 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
