package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/distinct/internal/output"
	"github.com/jmylchreest/distinct/internal/output/template"
)

type templatesOptions struct {
	plugins  []string
	force    bool
	location string
}

func newTemplatesCmd(root *rootOptions) *cobra.Command {
	o := &templatesOptions{}

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output plugin templates",
		Long: `Manage the templates used by the output plugins.

Every output plugin renders embedded templates. Dumping a template writes a
copy to the custom template directory, where it takes precedence over the
embedded version and can be edited freely.

Custom template directory: ~/.config/distinct/templates/<plugin>/`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTemplatesList(cmd, root, o)
		},
	}
	listCmd.Flags().StringSliceVarP(&o.plugins, "output-plugins", "o", nil, "output plugins to list, comma-separated (default: all)")

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Write embedded templates to the custom template directory",
		Long: `Write the embedded templates of one or more output plugins to the custom
template directory so they can be edited.

Existing custom templates are kept unless --force is given.

Examples:
  distinct templates dump
  distinct templates dump -o css,html
  distinct templates dump -l ./templates --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTemplatesDump(cmd, root, o)
		},
	}
	dumpCmd.Flags().StringSliceVarP(&o.plugins, "output-plugins", "o", nil, "output plugins to dump, comma-separated (default: all)")
	dumpCmd.Flags().BoolVarP(&o.force, "force", "f", false, "overwrite existing custom templates")
	dumpCmd.Flags().StringVarP(&o.location, "location", "l", "", "custom location to dump templates (default: ~/.config/distinct/templates)")

	cmd.AddCommand(listCmd, dumpCmd)
	return cmd
}

// selectTemplateProviders resolves the named plugins, or every plugin when
// none are named. Only plugins that render templates are returned.
func selectTemplateProviders(names []string) ([]output.Plugin, error) {
	registry := newOutputRegistry()
	if len(names) == 0 {
		names = registry.List()
	}

	var plugins []output.Plugin
	for _, name := range names {
		p, ok := registry.Get(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("output plugin %q not found (available: %s)", name, strings.Join(registry.List(), ", "))
		}
		if _, ok := p.(output.TemplateProvider); ok {
			plugins = append(plugins, p)
		}
	}
	return plugins, nil
}

// templateLoader returns a loader over the plugin's embedded templates.
func templateLoader(p output.Plugin, customBase string) *template.Loader {
	provider := p.(output.TemplateProvider)
	loader := template.New(p.Name(), provider.Templates())
	if customBase != "" {
		loader = loader.WithCustomBase(customBase)
	}
	return loader
}

func runTemplatesList(cmd *cobra.Command, root *rootOptions, o *templatesOptions) error {
	plugins, err := selectTemplateProviders(o.plugins)
	if err != nil {
		return err
	}

	table := NewTable([]string{"Plugin", "Template", "Custom"})
	overrides := 0
	for _, p := range plugins {
		loader := templateLoader(p, "").WithLogger(root.logger)
		names, err := loader.ListEmbeddedTemplates()
		if err != nil {
			return fmt.Errorf("failed to list templates for %s: %w", p.Name(), err)
		}
		for _, name := range names {
			info := loader.GetInfo(name)
			custom := "-"
			if info.CustomExists {
				custom = info.CustomPath
				overrides++
			}
			table.AddRow([]string{p.Name(), name, custom})
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, table.Render())
	if !root.quiet {
		fmt.Fprintf(out, "\nCustom template directory: %s\n", template.DefaultCustomBase())
		if overrides == 0 {
			fmt.Fprintln(out, "To customise a template, use: distinct templates dump -o <plugin>")
		}
	}
	return nil
}

func runTemplatesDump(cmd *cobra.Command, root *rootOptions, o *templatesOptions) error {
	plugins, err := selectTemplateProviders(o.plugins)
	if err != nil {
		return err
	}

	customBase, err := expandHome(o.location)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dumped, skipped := 0, 0
	for _, p := range plugins {
		loader := templateLoader(p, customBase).WithLogger(root.logger)
		written, err := loader.DumpAllTemplates(o.force)
		for _, path := range written {
			if !root.quiet {
				fmt.Fprintf(out, "  %s\n", path)
			}
			dumped++
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, template.ErrTemplateExists) {
			return fmt.Errorf("failed to dump templates for %s: %w", p.Name(), err)
		}
		names, listErr := loader.ListEmbeddedTemplates()
		if listErr != nil {
			return fmt.Errorf("failed to list templates for %s: %w", p.Name(), listErr)
		}
		for _, name := range names {
			if path := loader.CustomPath(name); !slices.Contains(written, path) {
				root.logger.Info("custom template already exists", "path", path)
				skipped++
			}
		}
	}

	if root.quiet {
		return nil
	}
	switch {
	case dumped == 0 && skipped > 0:
		fmt.Fprintf(out, "No templates were dumped, %d already exist. Use --force to overwrite.\n", skipped)
	case dumped == 0:
		fmt.Fprintln(out, "No templates were dumped.")
	case skipped > 0:
		fmt.Fprintf(out, "Dumped %d template(s), skipped %d existing.\n", dumped, skipped)
	default:
		fmt.Fprintf(out, "Dumped %d template(s).\n", dumped)
	}
	return nil
}

// expandHome expands a leading ~/ to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
