package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/distinct/internal/selector"
)

type treeOptions struct {
	output string
	paths  bool
}

func newTreeCmd(root *rootOptions) *cobra.Command {
	o := &treeOptions{}

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Render selector paths as a tree",
		Long: `Read a file of selector paths and render them as a tree.

Each line holds an element type followed by one or more space-separated
selector paths separated by ';', for example:

  div #roombox #header #logo;#header #logo;#logo

The longest path on each line is inserted into the tree. With --paths every
unique path is listed instead.

Examples:
  distinct tree paths.txt
  distinct tree paths.txt -o data/txt/tree.txt
  distinct tree paths.txt --paths`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, root, o, args[0])
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&o.paths, "paths", false, "list every unique path instead of the tree")

	return cmd
}

func runTree(cmd *cobra.Command, root *rootOptions, o *treeOptions, inputPath string) error {
	f, err := os.Open(inputPath) // #nosec G304 -- user-selected input file
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inputPath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if o.paths {
		paths, err := selector.AllPaths(f)
		if err != nil {
			return err
		}
		if err := selector.WriteList(&buf, paths); err != nil {
			return err
		}
		root.logger.Info("collected paths", "unique", len(paths))
	} else {
		tree, err := selector.BuildTree(f)
		if err != nil {
			return err
		}
		if err := tree.Render(&buf); err != nil {
			return err
		}
		stats := tree.Stats()
		root.logger.Info("built tree", "nodes", stats.Nodes, "roots", stats.Roots)
	}

	if o.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := os.MkdirAll(filepath.Dir(o.output), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", o.output, err)
	}
	if err := os.WriteFile(o.output, buf.Bytes(), 0o644); err != nil { // #nosec G306 -- tree output is not secret
		return fmt.Errorf("failed to write %s: %w", o.output, err)
	}
	if !root.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", o.output, humanize.Bytes(uint64(buf.Len())))
	}
	return nil
}
