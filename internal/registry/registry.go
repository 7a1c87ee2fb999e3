// Package registry provides a global registry of level templates.
// Level packages register themselves in init() functions, allowing the
// platform to discover and instantiate mazes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/june1016/PAC-MAN/internal/maze"
)

// DefaultID is the template used when no maze is requested explicitly.
const DefaultID = "classic"

// TemplateInfo contains metadata about a registered template.
type TemplateInfo struct {
	ID   string
	Name string
	Rows int
	Cols int
}

// Factory builds a validated level template.
type Factory func() (maze.LevelTemplate, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]TemplateInfo)
	mu        sync.RWMutex
)

// Register adds a template factory to the registry.
// Typically called from a level package's init() function.
// Panics if the ID is already registered or the factory cannot build a
// valid template, since both are programming errors.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: template %q already registered", id))
	}

	tpl, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: template %q: %v", id, err))
	}

	factories[id] = f
	infos[id] = TemplateInfo{ID: id, Name: tpl.Name(), Rows: tpl.Rows(), Cols: tpl.Cols()}
}

// List returns information about all registered templates, sorted by ID.
func List() []TemplateInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]TemplateInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the template registered under id.
func Create(id string) (maze.LevelTemplate, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return maze.LevelTemplate{}, fmt.Errorf("registry: unknown maze %q", id)
	}
	return f()
}

// Exists checks if a template with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
