package output_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/distinct/internal/colour"
	"github.com/jmylchreest/distinct/internal/output"
	"github.com/jmylchreest/distinct/internal/selector"
)

type stubPlugin struct {
	name  string
	files map[string][]byte
	err   error
}

func (s *stubPlugin) Name() string                 { return s.name }
func (s *stubPlugin) Description() string          { return "stub" }
func (s *stubPlugin) RegisterFlags(*cobra.Command) {}
func (s *stubPlugin) Validate() error              { return nil }
func (s *stubPlugin) Subdir() string               { return "stub" }
func (s *stubPlugin) Generate(*output.Assignment) (map[string][]byte, error) {
	return s.files, s.err
}

func TestZip(t *testing.T) {
	colours := []colour.RGB{{R: 1}, {G: 2}}

	a, err := output.Zip(selector.KindID, "m", []string{"a", "#b"}, colours)
	if err != nil {
		t.Fatalf("Zip error = %v", err)
	}
	want := []output.Pair{{Selector: "a", Colour: colour.RGB{R: 1}}, {Selector: "b", Colour: colour.RGB{G: 2}}}
	if diff := cmp.Diff(want, a.Pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(colours, a.Colours()); diff != "" {
		t.Errorf("Colours mismatch (-want +got):\n%s", diff)
	}
	if a.Len() != 2 || a.FullSelector(a.Pairs[0]) != "#a" {
		t.Errorf("Len/FullSelector = %d, %q", a.Len(), a.FullSelector(a.Pairs[0]))
	}

	if _, err := output.Zip(selector.KindClass, "m", []string{"a"}, colours); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestRegistry(t *testing.T) {
	r := output.NewRegistry()
	r.Register(&stubPlugin{name: "b"})
	r.Register(&stubPlugin{name: "a"})

	if diff := cmp.Diff([]string{"a", "b"}, r.List()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
	if _, ok := r.Get("a"); !ok {
		t.Error("Get(a) not found")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) found")
	}

	all := r.All()
	delete(all, "a")
	if len(r.All()) != 2 {
		t.Error("All() returned the internal map")
	}
}

func TestWrite(t *testing.T) {
	root := t.TempDir()
	p := &stubPlugin{name: "stub", files: map[string][]byte{
		"b.txt": []byte("bb"),
		"a.txt": []byte("a"),
	}}
	a := &output.Assignment{Kind: selector.KindID}

	t.Run("dry run", func(t *testing.T) {
		written, err := output.Write(p, a, root, true)
		if err != nil {
			t.Fatalf("Write error = %v", err)
		}
		if len(written) != 2 {
			t.Fatalf("reported %d files, want 2", len(written))
		}
		if _, err := os.Stat(filepath.Join(root, "stub")); !os.IsNotExist(err) {
			t.Error("dry run created the output directory")
		}
	})

	t.Run("writes sorted", func(t *testing.T) {
		written, err := output.Write(p, a, root, false)
		if err != nil {
			t.Fatalf("Write error = %v", err)
		}
		want := []output.WrittenFile{
			{Plugin: "stub", Path: filepath.Join(root, "stub", "a.txt"), Size: 1},
			{Plugin: "stub", Path: filepath.Join(root, "stub", "b.txt"), Size: 2},
		}
		if diff := cmp.Diff(want, written); diff != "" {
			t.Errorf("written mismatch (-want +got):\n%s", diff)
		}
		data, err := os.ReadFile(want[1].Path)
		if err != nil || string(data) != "bb" {
			t.Errorf("file content = %q, %v", data, err)
		}
	})

	t.Run("generate error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := output.Write(&stubPlugin{name: "bad", err: boom}, a, root, false)
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want wrapped boom", err)
		}
	})

	t.Run("rejects traversal", func(t *testing.T) {
		evil := &stubPlugin{name: "evil", files: map[string][]byte{"../../escape.txt": []byte("x")}}
		if _, err := output.Write(evil, a, root, true); err == nil {
			t.Error("expected an error for a file name outside the plugin directory")
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(root), "escape.txt")); !os.IsNotExist(err) {
			t.Error("traversal file was written")
		}
	})
}
