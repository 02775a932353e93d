package output

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/jmylchreest/distinct/internal/security"
)

// WrittenFile records one file produced by a plugin.
type WrittenFile struct {
	Plugin string
	Path   string
	Size   int
}

// Write runs the plugin against the assignment and writes its files under
// root/<subdir>. With dryRun set nothing touches disk but the paths are still reported.
func Write(p Plugin, a *Assignment, root string, dryRun bool) ([]WrittenFile, error) {
	files, err := p.Generate(a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}

	dir := filepath.Join(root, p.Subdir())
	if !dryRun {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	written := make([]WrittenFile, 0, len(names))
	for _, name := range names {
		if err := security.ValidateFilePath(name, dir); err != nil {
			return written, fmt.Errorf("%s: %w", p.Name(), err)
		}
		path := filepath.Join(dir, name)
		if !dryRun {
			if err := os.WriteFile(path, files[name], 0o644); err != nil { // #nosec G306 -- generated stylesheets are meant to be shared
				return written, fmt.Errorf("failed to write %s: %w", path, err)
			}
		}
		written = append(written, WrittenFile{Plugin: p.Name(), Path: path, Size: len(files[name])})
	}
	return written, nil
}
