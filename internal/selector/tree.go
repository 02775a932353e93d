package selector

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Node is one selector component in a path tree.
type Node struct {
	Name     string
	children map[string]*Node
}

// Tree is a prefix tree of selector paths.
type Tree struct {
	root Node
}

// Stats summarises a tree.
type Stats struct {
	Nodes int
	Roots int
}

// Children returns the node's children sorted by name.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Node) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (n *Node) child(name string) *Node {
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	c, ok := n.children[name]
	if !ok {
		c = &Node{Name: name}
		n.children[name] = c
	}
	return c
}

// Insert adds a path of components to the tree.
func (t *Tree) Insert(components []string) {
	node := &t.root
	for _, c := range components {
		node = node.child(c)
	}
}

// Roots returns the top-level nodes sorted by name.
func (t *Tree) Roots() []*Node {
	return t.root.Children()
}

// BuildTree reads lines of the form "<element> <path>;<path>;..." and inserts the
// longest path of each line, counted in components. Lines without paths are skipped.
func BuildTree(r io.Reader) (*Tree, error) {
	t := &Tree{}
	err := eachPathList(r, func(paths []string) {
		longest := paths[0]
		for _, p := range paths[1:] {
			if len(strings.Fields(p)) > len(strings.Fields(longest)) {
				longest = p
			}
		}
		if components := strings.Fields(longest); len(components) > 0 {
			t.Insert(components)
		}
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// AllPaths reads the same format as BuildTree and returns every unique path, sorted.
func AllPaths(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	err := eachPathList(r, func(paths []string) {
		for _, p := range paths {
			seen[p] = struct{}{}
		}
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.Sort(out)
	return out, nil
}

// eachPathList calls fn with the non-empty trimmed paths of every line that has any.
func eachPathList(r io.Reader, fn func(paths []string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		_, rest, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}

		var paths []string
		for _, p := range strings.Split(rest, ";") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			fn(paths)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read paths: %w", err)
	}
	return nil
}

// Render writes the tree. Roots are written bare; descendants use box-drawing connectors.
func (t *Tree) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, n := range t.Roots() {
		fmt.Fprintln(bw, n.Name)
		renderChildren(bw, n, "")
	}
	return bw.Flush()
}

func renderChildren(w io.Writer, n *Node, prefix string) {
	children := n.Children()
	for i, c := range children {
		connector, extension := "├── ", "│   "
		if i == len(children)-1 {
			connector, extension = "└── ", "    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, c.Name)
		renderChildren(w, c, prefix+extension)
	}
}

// String renders the tree to a string.
func (t *Tree) String() string {
	var sb strings.Builder
	_ = t.Render(&sb)
	return sb.String()
}

// Stats counts every node and the top-level roots.
func (t *Tree) Stats() Stats {
	return Stats{Nodes: countNodes(&t.root), Roots: len(t.root.children)}
}

func countNodes(n *Node) int {
	count := len(n.children)
	for _, c := range n.children {
		count += countNodes(c)
	}
	return count
}
