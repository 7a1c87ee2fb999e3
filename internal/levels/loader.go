// Package levels provides the level file format, the built-in mazes and
// directory loading. This package depends on maze but maze does not depend
// on levels.
package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/june1016/PAC-MAN/internal/maze"
	"github.com/june1016/PAC-MAN/internal/registry"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level is a parsed and validated level file.
type Level struct {
	Template maze.LevelTemplate
	Metadata map[string]string
	FilePath string
}

// ID returns the level's template ID.
func (l Level) ID() string { return l.Template.ID() }

// FromYAML parses level file data into a validated Level.
func FromYAML(data []byte) (Level, error) {
	yl, err := ParseYAML(data)
	if err != nil {
		return Level{}, err
	}
	tpl, err := maze.ParseLayout(yl.ID, yl.Name, yl.Layout)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}
	return Level{Template: tpl, Metadata: yl.Metadata}, nil
}

// ToYAML converts a template into its level file form.
func ToYAML(tpl maze.LevelTemplate) ([]byte, error) {
	return EncodeYAML(YAMLLevel{ID: tpl.ID(), Name: tpl.Name(), Layout: tpl.Layout()})
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse or validate are returned in skipped instead of
// aborting the scan. Levels are sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() (levels []Level, skipped []error, err error) {
	err = filepath.WalkDir(l.Root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		level, loadErr := l.LoadFile(path)
		if loadErr != nil {
			skipped = append(skipped, loadErr)
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID() < levels[j].ID()
	})
	return levels, skipped, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	level, err := FromYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	level.FilePath = path
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, _, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID() == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// RegisterAll loads the directory and registers every level whose ID is not
// taken yet. It returns the IDs it registered.
func (l *Loader) RegisterAll() ([]string, error) {
	levels, _, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, lvl := range levels {
		if registry.Exists(lvl.ID()) {
			continue
		}
		tpl := lvl.Template
		registry.Register(lvl.ID(), func() (maze.LevelTemplate, error) { return tpl, nil })
		ids = append(ids, lvl.ID())
	}
	return ids, nil
}

// Builtin returns the embedded level with the given ID.
func Builtin(id string) (Level, error) {
	data, err := builtinFS.ReadFile("builtin/" + id + ".yaml")
	if err != nil {
		return Level{}, fmt.Errorf("builtin level %s: %w", id, err)
	}
	level, err := FromYAML(data)
	if err != nil {
		return Level{}, err
	}
	level.FilePath = "builtin/" + id + ".yaml"
	return level, nil
}

// Classic returns the canonical level template.
func Classic() (maze.LevelTemplate, error) {
	level, err := Builtin(registry.DefaultID)
	if err != nil {
		return maze.LevelTemplate{}, err
	}
	return level.Template, nil
}

func init() {
	registry.Register(registry.DefaultID, Classic)
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
