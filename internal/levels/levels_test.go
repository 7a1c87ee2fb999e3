package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/june1016/PAC-MAN/internal/maze"
	"github.com/june1016/PAC-MAN/internal/registry"
)

func TestClassicTemplate(t *testing.T) {
	tpl, err := Classic()
	if err != nil {
		t.Fatalf("Classic() failed: %v", err)
	}

	if tpl.Rows() != 21 || tpl.Cols() != 19 {
		t.Errorf("dimensions = %dx%d, expected 21x19", tpl.Rows(), tpl.Cols())
	}
	if tpl.PlayerSpawn() != maze.C(16, 9) {
		t.Errorf("PlayerSpawn() = %v, expected (16,9)", tpl.PlayerSpawn())
	}
	if tpl.Exit() != maze.C(7, 9) {
		t.Errorf("Exit() = %v, expected (7,9)", tpl.Exit())
	}

	left, right, ok := tpl.Tunnel()
	if !ok || left != maze.C(9, 0) || right != maze.C(9, 18) {
		t.Errorf("Tunnel() = %v, %v, %v", left, right, ok)
	}

	if n := len(tpl.Pellets()); n != 179 {
		t.Errorf("pellets = %d, expected 179", n)
	}
	if n := len(tpl.PowerPellets()); n != 4 {
		t.Errorf("power pellets = %d, expected 4", n)
	}

	wantHomes := []maze.Coord{maze.C(9, 8), maze.C(9, 10), maze.C(10, 8), maze.C(10, 10)}
	for i, want := range wantHomes {
		if got := tpl.Home(i); got != want {
			t.Errorf("Home(%d) = %v, expected %v", i, got, want)
		}
	}
}

func TestClassicRegistered(t *testing.T) {
	if !registry.Exists(registry.DefaultID) {
		t.Fatal("classic should be registered at init")
	}
	tpl, err := registry.Create(registry.DefaultID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if tpl.Name() != "Classic" {
		t.Errorf("Name() = %q, expected Classic", tpl.Name())
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	tpl, err := Classic()
	if err != nil {
		t.Fatal(err)
	}

	data, err := ToYAML(tpl)
	if err != nil {
		t.Fatalf("ToYAML() failed: %v", err)
	}
	level, err := FromYAML(data)
	if err != nil {
		t.Fatalf("FromYAML() failed: %v", err)
	}

	got, want := level.Template.Layout(), tpl.Layout()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, expected %q", i, got[i], want[i])
		}
	}
}

const smallLevel = `id: small
name: Small
layout:
  - "#########"
  - "#o..E..o#"
  - "#.##-##.#"
  - "..#12H#.."
  - "#.#34H#.#"
  - "#...P...#"
  - "#########"
`

const brokenLevel = `id: broken
layout:
  - "#####"
  - "#P..#"
  - "#####"
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.yaml", smallLevel)
	writeFile(t, dir, "broken.yml", brokenLevel)
	writeFile(t, dir, "notes.txt", "not a level")

	loader := NewLoader(dir)
	levels, skipped, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}

	if len(levels) != 1 || levels[0].ID() != "small" {
		t.Fatalf("LoadAll() = %d levels, expected only small", len(levels))
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %d, expected 1 (broken level has no homes)", len(skipped))
	}
	if levels[0].FilePath != filepath.Join(dir, "small.yaml") {
		t.Errorf("FilePath = %q", levels[0].FilePath)
	}

	if _, err := loader.LoadByID("missing"); err == nil {
		t.Error("LoadByID() of a missing level should fail")
	}
}

func TestLoaderRegisterAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.yaml", smallLevel)

	ids, err := NewLoader(dir).RegisterAll()
	if err != nil {
		t.Fatalf("RegisterAll() failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "small" {
		t.Fatalf("RegisterAll() = %v, expected [small]", ids)
	}
	if !registry.Exists("small") {
		t.Error("small should be registered")
	}

	// Second pass skips IDs already taken
	ids, err = NewLoader(dir).RegisterAll()
	if err != nil || len(ids) != 0 {
		t.Errorf("second RegisterAll() = %v, %v; expected nothing new", ids, err)
	}
}

func TestParseYAMLRequiresID(t *testing.T) {
	if _, err := ParseYAML([]byte("name: nameless\nlayout: []\n")); err == nil {
		t.Error("ParseYAML() without id should fail")
	}
}
