package knowledge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSeedsDefaults(t *testing.T) {
	dir := t.TempDir()
	catalog := NewCatalog(dir)

	if err := catalog.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(catalog.Items("")) == 0 {
		t.Fatal("catalog is empty after load")
	}
	if len(catalog.Items(CategoryAlgorithms)) == 0 {
		t.Error("no algorithm entries seeded")
	}
	if len(catalog.Items(CategoryDataStructures)) == 0 {
		t.Error("no data structure entries seeded")
	}

	// Seeding must persist both category files.
	for _, filename := range []string{"algorithms.json", "data_structures.json"} {
		if _, err := os.Stat(filepath.Join(dir, filename)); err != nil {
			t.Errorf("expected %s to be written: %v", filename, err)
		}
	}
}

func TestLoadReadsExistingFiles(t *testing.T) {
	dir := t.TempDir()

	custom := []Entry{{
		ID:       "union-find",
		Name:     "Union-Find",
		Category: CategoryAlgorithms,
		Keywords: []string{"disjoint set"},
	}}
	data, _ := json.Marshal(custom)
	if err := os.WriteFile(filepath.Join(dir, "algorithms.json"), data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	catalog := NewCatalog(dir)
	if err := catalog.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	algorithms := catalog.Items(CategoryAlgorithms)
	if len(algorithms) != 1 || algorithms[0].ID != "union-find" {
		t.Errorf("expected the custom algorithms file to win, got %+v", algorithms)
	}

	// The absent data_structures.json still gets defaults.
	if len(catalog.Items(CategoryDataStructures)) == 0 {
		t.Error("expected data structure defaults to be seeded")
	}
}

func TestItemByID(t *testing.T) {
	catalog := NewCatalog(t.TempDir())
	if err := catalog.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	entry, ok := catalog.ItemByID("binary-search")
	if !ok {
		t.Fatal("expected to find binary-search")
	}
	if entry.Name != "Binary Search" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	if _, ok := catalog.ItemByID("no-such-entry"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestIndexText(t *testing.T) {
	entry := Entry{
		Name:        "Binary Search",
		Description: "Halve the search space.",
		Keywords:    []string{"bisect", "sorted"},
	}

	text := entry.IndexText()
	for _, want := range []string{"Binary Search", "Halve the search space.", "bisect", "sorted"} {
		if !strings.Contains(text, want) {
			t.Errorf("index text missing %q: %s", want, text)
		}
	}
}
