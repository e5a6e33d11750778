package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ImageExt is the only file extension picked up from rarity directories.
const ImageExt = ".png"

// Scanner reads <BaseDir>/<category>/<rarity>/*.png trees.
type Scanner struct {
	BaseDir   string
	WebPrefix string
}

// NewScanner creates a scanner rooted at baseDir that emits image paths
// under webPrefix.
func NewScanner(baseDir, webPrefix string) *Scanner {
	return &Scanner{BaseDir: baseDir, WebPrefix: webPrefix}
}

// Scan returns one item per .png file found two levels below the category
// directory. A missing category directory is logged and yields no items;
// any other filesystem error is returned.
func (s *Scanner) Scan(category, itemType string) ([]Item, error) {
	categoryDir := filepath.Join(s.BaseDir, category)

	if _, err := os.Stat(categoryDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", categoryDir).Msg("Directory not found")
			return []Item{}, nil
		}
		return nil, fmt.Errorf("catalog: stat %s: %w", categoryDir, err)
	}

	rarities, err := os.ReadDir(categoryDir)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", categoryDir, err)
	}

	items := []Item{}
	for _, r := range rarities {
		rarity := r.Name()
		rarityDir := filepath.Join(categoryDir, rarity)
		if !isDir(rarityDir) {
			continue
		}

		files, err := os.ReadDir(rarityDir)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", rarityDir, err)
		}

		before := len(items)
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ImageExt) {
				continue
			}
			items = append(items, NewItem(s.WebPrefix, category, rarity, f.Name(), itemType))
		}
		log.Debug().Str("category", category).Str("rarity", rarity).Int("items", len(items)-before).Msg("scanned rarity")
	}

	return items, nil
}

// isDir follows symlinks; broken links count as non-directories.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
