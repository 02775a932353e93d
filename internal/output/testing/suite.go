// Package testing provides shared test utilities for output plugins.
package testing

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/distinct/internal/colour"
	"github.com/jmylchreest/distinct/internal/output"
	tmplloader "github.com/jmylchreest/distinct/internal/output/template"
	"github.com/jmylchreest/distinct/internal/selector"
)

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName   string   // Plugin name
	ExpectedSubdir string   // Output subdirectory
	ExpectedFiles  []string // Files that Generate() should return for an id assignment
	ExpectedFlags  []string // Flags RegisterFlags() should add
}

// TestBasicInterface tests the basic plugin interface methods that all plugins must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, config TestConfig) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != config.ExpectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), config.ExpectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if p.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("Subdir", func(t *testing.T) {
		if p.Subdir() != config.ExpectedSubdir {
			t.Errorf("Subdir() = %s, want %s", p.Subdir(), config.ExpectedSubdir)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method with various scenarios.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	t.Run("Generate", func(t *testing.T) {
		files, err := p.Generate(CreateTestAssignment(selector.KindID))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if len(files) != len(expectedFiles) {
			t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
		}

		for _, expectedFile := range expectedFiles {
			if content, ok := files[expectedFile]; !ok {
				t.Errorf("Generate() did not return %s", expectedFile)
			} else if len(content) == 0 {
				t.Errorf("Generate() returned empty %s", expectedFile)
			}
		}
	})

	t.Run("GenerateNilAssignment", func(t *testing.T) {
		if _, err := p.Generate(nil); err == nil {
			t.Error("Generate() with nil assignment should return error")
		}
	})

	t.Run("GenerateEmptyAssignment", func(t *testing.T) {
		files, err := p.Generate(&output.Assignment{Kind: selector.KindClass, Method: "empty"})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(files) == 0 {
			t.Error("Generate() returned no files")
		}
	})
}

// TestFlags tests plugin-specific flag registration.
func TestFlags(t *testing.T, p output.Plugin, expectedFlags []string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		p.RegisterFlags(cmd)

		for _, name := range expectedFlags {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("RegisterFlags() did not register %s flag", name)
			}
		}
	})
}

// TestTemplates checks that a template-backed plugin embeds at least one template
// and that every embedded template can be loaded.
func TestTemplates(t *testing.T, p output.Plugin) {
	tp, ok := p.(output.TemplateProvider)
	if !ok {
		return
	}

	t.Run("EmbeddedTemplates", func(t *testing.T) {
		loader := tmplloader.New(p.Name(), tp.Templates()).WithCustomBase(t.TempDir())
		names, err := loader.ListEmbeddedTemplates()
		if err != nil {
			t.Fatalf("ListEmbeddedTemplates() error = %v", err)
		}
		if len(names) == 0 {
			t.Fatal("plugin embeds no templates")
		}
		for _, name := range names {
			if _, fromCustom, err := loader.Load(name); err != nil || fromCustom {
				t.Errorf("Load(%s) = custom %v, error %v", name, fromCustom, err)
			}
		}
	})
}

// CreateTestAssignment returns a small assignment with fixed selectors and colours.
func CreateTestAssignment(kind selector.Kind) *output.Assignment {
	a, err := output.Zip(kind, "Test method",
		[]string{"header", "nav-item", "footer"},
		[]colour.RGB{
			{R: 255, G: 0, B: 0},
			{R: 0, G: 128, B: 0},
			{R: 10, G: 20, B: 30},
		})
	if err != nil {
		panic(err)
	}
	return a
}

// RunAllTests runs all standard tests for a plugin.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	TestBasicInterface(t, p, config)
	TestGeneration(t, p, config.ExpectedFiles)
	TestFlags(t, p, config.ExpectedFlags)
	TestTemplates(t, p)
}
