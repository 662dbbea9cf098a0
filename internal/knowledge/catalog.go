/*
Package knowledge supplies the catalog of algorithm and data-structure
entries consumed by the retriever.

The catalog is loaded from two JSON files (algorithms.json and
data_structures.json) under the data directory. Missing files are seeded
with the built-in defaults, so the catalog is never empty after a
successful Load. Entries are immutable for the process lifetime.
*/
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry categories.
const (
	CategoryAlgorithms     = "algorithms"
	CategoryDataStructures = "data_structures"
)

// Entry is one knowledge catalog item.
type Entry struct {
	// ID is a stable slug (e.g. "binary-search").
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Category is "algorithms" or "data_structures".
	Category string `json:"category"`

	// Description explains the technique or structure.
	Description string `json:"description"`

	// Applications lists typical problem settings.
	Applications []string `json:"applications,omitempty"`

	// Complexity summarizes time/space behavior.
	Complexity string `json:"complexity,omitempty"`

	// Example names a representative problem.
	Example string `json:"example,omitempty"`

	// Keywords improve retrieval matching; order is preserved.
	Keywords []string `json:"keywords"`
}

// IndexText returns the text blob embedded for this entry: name,
// description, and keywords concatenated.
func (e Entry) IndexText() string {
	return fmt.Sprintf("%s %s %s", e.Name, e.Description, strings.Join(e.Keywords, " "))
}

// Catalog holds the loaded knowledge entries.
type Catalog struct {
	dir            string
	algorithms     []Entry
	dataStructures []Entry
}

// NewCatalog creates a catalog rooted at dir. Call Load before use.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Load reads both category files, seeding defaults for any that is absent.
func (c *Catalog) Load() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create knowledge directory: %w", err)
	}

	algorithms, err := c.loadCategory("algorithms.json", defaultAlgorithms)
	if err != nil {
		return err
	}
	c.algorithms = algorithms

	dataStructures, err := c.loadCategory("data_structures.json", defaultDataStructures)
	if err != nil {
		return err
	}
	c.dataStructures = dataStructures

	return nil
}

// loadCategory reads one category file, writing the defaults first when the
// file does not exist yet.
func (c *Catalog) loadCategory(filename string, defaults func() []Entry) ([]Entry, error) {
	path := filepath.Join(c.dir, filename)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		entries := defaults()
		if err := writeEntries(path, entries); err != nil {
			return nil, err
		}
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return entries, nil
}

// writeEntries persists a category file.
func writeEntries(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return nil
}

// Items returns entries restricted to one category, or all entries when
// category is empty.
func (c *Catalog) Items(category string) []Entry {
	switch category {
	case CategoryAlgorithms:
		return c.algorithms
	case CategoryDataStructures:
		return c.dataStructures
	default:
		all := make([]Entry, 0, len(c.algorithms)+len(c.dataStructures))
		all = append(all, c.algorithms...)
		all = append(all, c.dataStructures...)
		return all
	}
}

// ItemByID returns the entry with the given id, or false when absent.
// Linear scan; the catalog holds tens of entries.
func (c *Catalog) ItemByID(id string) (Entry, bool) {
	for _, e := range c.Items("") {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
