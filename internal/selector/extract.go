// Package selector extracts CSS selector names from text and builds selector path trees.
package selector

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/jmylchreest/distinct/internal/security"
)

// Kind is the type of selector.
type Kind string

const (
	// KindID matches #name selectors.
	KindID Kind = "id"
	// KindClass matches .name selectors.
	KindClass Kind = "class"
)

var (
	idPattern    = regexp.MustCompile(`#([a-zA-Z0-9_-]+)`)
	classPattern = regexp.MustCompile(`\.([a-zA-Z0-9_-]+)`)
)

// Prefix returns the CSS prefix for the kind.
func (k Kind) Prefix() string {
	if k == KindID {
		return "#"
	}
	return "."
}

// Plural returns the plural used in output file names ("ids", "classes").
func (k Kind) Plural() string {
	if k == KindClass {
		return "classes"
	}
	return string(k) + "s"
}

// Kinds returns every selector kind in processing order.
func Kinds() []Kind {
	return []Kind{KindID, KindClass}
}

// Selectors holds the unique selector names found in one input, without prefixes.
type Selectors struct {
	IDs     []string
	Classes []string
}

// Of returns the names of the given kind.
func (s Selectors) Of(k Kind) []string {
	if k == KindID {
		return s.IDs
	}
	return s.Classes
}

// Empty reports whether no selectors were found.
func (s Selectors) Empty() bool {
	return len(s.IDs) == 0 && len(s.Classes) == 0
}

// Extract reads r once and returns its sorted unique IDs and classes.
func Extract(r io.Reader) (Selectors, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Selectors{}, fmt.Errorf("failed to read selectors: %w", err)
	}
	return Selectors{
		IDs:     matchAll(idPattern, data),
		Classes: matchAll(classPattern, data),
	}, nil
}

// ExtractFile extracts selectors from the file at path.
func ExtractFile(path string) (Selectors, error) {
	f, err := os.Open(path) // #nosec G304 -- user-selected input file
	if err != nil {
		return Selectors{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Extract(security.NewLimitedReader(f, security.MaxInputSize))
}

// ExtractIDs returns the sorted unique names of #id selectors in r.
func ExtractIDs(r io.Reader) ([]string, error) {
	s, err := Extract(r)
	return s.IDs, err
}

// ExtractClasses returns the sorted unique names of .class selectors in r.
func ExtractClasses(r io.Reader) ([]string, error) {
	s, err := Extract(r)
	return s.Classes, err
}

func matchAll(re *regexp.Regexp, data []byte) []string {
	seen := make(map[string]struct{})
	for _, m := range re.FindAllSubmatch(data, -1) {
		seen[string(m[1])] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WriteList writes one name per line.
func WriteList(w io.Writer, names []string) error {
	if len(names) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(names, "\n")+"\n")
	return err
}
