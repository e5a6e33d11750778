package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Category pairs an asset directory with the item type label its records carry.
type Category struct {
	Dir      string
	ItemType string
}

// Fixed categories, scanned in this order.
var (
	Banners = Category{Dir: "BANNER", ItemType: "BANNER"}
	Avatars = Category{Dir: "AVATARS", ItemType: "AVATAR"}
)

// DefaultCategories is the scan order used by the generator.
var DefaultCategories = []Category{Banners, Avatars}

// Catalog is the assembled manifest plus per-category counts.
type Catalog struct {
	Items  []Item
	Counts map[string]int // keyed by Category.Dir
}

// Build scans each category in order and concatenates the results.
func Build(s *Scanner, categories []Category) (Catalog, error) {
	cat := Catalog{
		Items:  []Item{},
		Counts: make(map[string]int, len(categories)),
	}

	for _, c := range categories {
		items, err := s.Scan(c.Dir, c.ItemType)
		if err != nil {
			return Catalog{}, err
		}
		cat.Counts[c.Dir] = len(items)
		cat.Items = append(cat.Items, items...)
	}

	return cat, nil
}

// Encode renders items as a 4-space indented JSON array.
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves items to path, replacing any existing file.
func Write(path string, items []Item) error {
	data, err := Encode(items)
	if err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", path, err)
	}
	return nil
}

// Read loads a manifest written by Write.
func Read(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return items, nil
}
