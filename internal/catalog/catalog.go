// Package catalog loads the list of tools shown on the portal.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phronesis/nexus-go/pkg/nexus"
	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrEmpty indicates a catalog without tools.
var ErrEmpty = errors.New("catalog has no tools")

// Catalog is the ordered, read-only list of tools.
type Catalog struct {
	Tools []models.ToolRecord
}

// fileTool mirrors one YAML entry; status is normalized after decoding.
type fileTool struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	Status        string `yaml:"status"`
	Version       string `yaml:"version"`
	Documentation string `yaml:"documentation"`
	Feedback      string `yaml:"feedback"`
	Link          string `yaml:"link"`
	Image         string `yaml:"image"`
}

type catalogFile struct {
	Tools []fileTool `yaml:"tools"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{Tools: make([]models.ToolRecord, 0, len(file.Tools))}
	for i, t := range file.Tools {
		status := models.StatusActive
		if strings.TrimSpace(t.Status) != "" {
			var ok bool
			if status, ok = models.ParseStatus(t.Status); !ok {
				return nil, fmt.Errorf("tool %d (%q): unknown status %q", i+1, t.Name, t.Status)
			}
		}
		c.Tools = append(c.Tools, models.ToolRecord{
			Name:          strings.TrimSpace(t.Name),
			Description:   t.Description,
			Status:        status,
			Version:       t.Version,
			Documentation: t.Documentation,
			Feedback:      t.Feedback,
			Link:          t.Link,
			Image:         t.Image,
		})
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	return c, nil
}

// Validate checks that the catalog has tools and that every tool maps to its
// own feedback sheet.
func (c *Catalog) Validate() error {
	if len(c.Tools) == 0 {
		return ErrEmpty
	}

	names := make(map[string]bool, len(c.Tools))
	sheets := make(map[string]string, len(c.Tools))
	for i, t := range c.Tools {
		if t.Name == "" {
			return fmt.Errorf("tool %d has no name", i+1)
		}
		if names[t.Name] {
			return fmt.Errorf("duplicate tool name %q", t.Name)
		}
		names[t.Name] = true

		sheet, err := nexus.SanitizeSheetName(t.Name)
		if err != nil {
			return fmt.Errorf("tool %q: %w", t.Name, err)
		}
		key := strings.ToLower(sheet)
		if other, ok := sheets[key]; ok {
			return fmt.Errorf("tools %q and %q share the feedback sheet %q", other, t.Name, sheet)
		}
		sheets[key] = t.Name
	}
	return nil
}

// Names returns tool names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Tools))
	for i, t := range c.Tools {
		names[i] = t.Name
	}
	return names
}

// Lookup finds a tool by exact name.
func (c *Catalog) Lookup(name string) (models.ToolRecord, bool) {
	for _, t := range c.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return models.ToolRecord{}, false
}
