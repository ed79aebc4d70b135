package tool

import (
	"slices"
	"strings"
	"sync"

	"github.com/leofalp/braveagent/providers/ai"
)

// Catalog manages a collection of tools with thread-safe operations.
// Names are matched case-insensitively.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]GenericTool
}

// NewCatalog creates a new empty tool catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		tools: make(map[string]GenericTool),
	}
}

// NewCatalogWithTools creates a new catalog pre-populated with the given tools.
func NewCatalogWithTools(tools ...GenericTool) *Catalog {
	catalog := NewCatalog()
	catalog.AddTools(tools...)
	return catalog
}

// AddTools adds tools to the catalog, replacing any existing tool with the
// same name.
func (c *Catalog) AddTools(tools ...GenericTool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		c.tools[strings.ToLower(t.ToolInfo().Name)] = t
	}
}

// Get retrieves a tool by name (case-insensitive).
func (c *Catalog) Get(name string) (GenericTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tool, exists := c.tools[strings.ToLower(name)]
	return tool, exists
}

// Size returns the number of tools in the catalog.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Descriptions returns the descriptions of all tools sorted by name, so the
// request sent to the model is stable across runs.
func (c *Catalog) Descriptions() []ai.ToolDescription {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ai.ToolDescription, 0, len(c.tools))
	for _, t := range c.tools {
		out = append(out, t.ToolInfo())
	}
	slices.SortFunc(out, func(a, b ai.ToolDescription) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
