package output

import (
	"fmt"

	"github.com/jmylchreest/distinct/internal/colour"
	"github.com/jmylchreest/distinct/internal/selector"
	"github.com/jmylchreest/distinct/internal/util"
)

// Pair binds one selector name to its colour.
type Pair struct {
	Selector string
	Colour   colour.RGB
}

// Assignment is the ordered mapping of selectors of one kind to generated colours.
type Assignment struct {
	Kind   selector.Kind
	Method string
	Pairs  []Pair
}

// Zip pairs selectors with colours in order. Both sequences must be the same length.
// A leading # or . on a selector name is dropped.
func Zip(kind selector.Kind, method string, selectors []string, colours []colour.RGB) (*Assignment, error) {
	if len(selectors) != len(colours) {
		return nil, fmt.Errorf("cannot assign %d colours to %d %s selectors", len(colours), len(selectors), kind)
	}

	pairs := make([]Pair, len(selectors))
	for i, name := range selectors {
		pairs[i] = Pair{Selector: util.StripSelectorPrefix(name), Colour: colours[i]}
	}
	return &Assignment{Kind: kind, Method: method, Pairs: pairs}, nil
}

// Len returns the number of pairs.
func (a *Assignment) Len() int {
	return len(a.Pairs)
}

// Colours returns the assigned colours in order.
func (a *Assignment) Colours() []colour.RGB {
	out := make([]colour.RGB, len(a.Pairs))
	for i, p := range a.Pairs {
		out[i] = p.Colour
	}
	return out
}

// FullSelector returns the pair's selector with its CSS prefix.
func (a *Assignment) FullSelector(p Pair) string {
	return a.Kind.Prefix() + p.Selector
}
