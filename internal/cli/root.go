// Package cli provides the command-line interface for distinct.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/distinct/internal/config"
	"github.com/jmylchreest/distinct/internal/version"
)

// rootOptions carries the global flags and the state they produce.
type rootOptions struct {
	verbose    bool
	quiet      bool
	configPath string

	logger hclog.Logger
}

// NewRootCmd builds the distinct command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: hclog.NewNullLogger()}

	cmd := &cobra.Command{
		Use:   "distinct",
		Short: "Generate maximally distinct colour sets",
		Long: `distinct generates sets of colours that are as far apart as possible to the
human eye, using the CIE Lab and OKLab perceptual colour spaces.

Colour sets can be printed directly, or assigned to the #id and .class
selectors found in a file and written out as CSS, an HTML preview and
plain selector lists.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newProcessCmd(opts))
	cmd.AddCommand(newTreeCmd(opts))
	cmd.AddCommand(newStrategiesCmd())
	cmd.AddCommand(newTemplatesCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Warnings are shown by default, everything
// with --verbose and nothing with --quiet.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case quiet:
		level = hclog.Off
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "distinct",
		Level:  level,
		Output: w,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
