// Package imagemap builds the stem -> web path lookup the front end uses to
// resolve item images that have no explicit image field.
package imagemap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"spinsx-assets/internal/catalog"
)

// Extensions lists the image types included in the map.
var Extensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// ErrDirNotFound is returned when the image root does not exist.
var ErrDirNotFound = errors.New("imagemap: directory not found")

// Map keys image stems to web paths.
type Map map[string]string

// Build walks root recursively and maps every image stem to
// <webPrefix>/<path relative to root>. A later file with the same stem
// replaces an earlier one.
func Build(root, webPrefix string) (Map, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirNotFound, root)
		}
		return nil, fmt.Errorf("imagemap: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("imagemap: %s is not a directory", root)
	}

	prefix := strings.TrimSuffix(webPrefix, "/")
	m := make(Map)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(d.Name())
		stem := strings.TrimSuffix(d.Name(), ext)
		// A bare ".png" has no extension as far as the front end is concerned
		if stem == "" || !isImage(ext) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		m[stem] = prefix + "/" + filepath.ToSlash(rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("imagemap: walk %s: %w", root, err)
	}

	return m, nil
}

// Write saves the map as a 2-space indented JSON object with sorted keys.
func Write(path string, m Map) error {
	if m == nil {
		m = Map{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("imagemap: encode: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("imagemap: write %s: %w", path, err)
	}
	return nil
}

// Lookup resolves the image for id the way the front end does: the last item
// with that id supplies its own image, and the map entry for the id's string
// form only fills in for an item without one. Ids with no item resolve to
// nothing.
func Lookup(items []catalog.Item, m Map, id string) (string, bool) {
	var found *catalog.Item
	for i := range items {
		if items[i].ItemID.String() == id {
			found = &items[i]
		}
	}
	if found == nil {
		return "", false
	}
	if found.Image != "" {
		return found.Image, true
	}
	path, ok := m[id]
	return path, ok
}

func isImage(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
