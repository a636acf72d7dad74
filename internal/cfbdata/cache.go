package cfbdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reallyasi9/select-the-field/internal/cfp"
)

// Cache stores downloaded seasons as JSON files on disk so repeat runs do
// not hit the API.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir. The directory is created on the
// first Save.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) path(year int) string {
	return filepath.Join(c.dir, fmt.Sprintf("games_%d.json", year))
}

// Load reads a cached season. The boolean reports whether the season was
// present in the cache.
func (c *Cache) Load(year int) (cfp.GameLog, bool, error) {
	data, err := os.ReadFile(c.path(year))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: reading %d season: %w", year, err)
	}

	var games []cfp.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, false, fmt.Errorf("cache: parsing %d season: %w", year, err)
	}
	return cfp.NewGameLog(games), true, nil
}

// Save writes a season to the cache, replacing any previous copy.
func (c *Cache) Save(year int, games cfp.GameLog) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("cache: creating %s: %w", c.dir, err)
	}

	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encoding %d season: %w", year, err)
	}
	if err := os.WriteFile(c.path(year), data, 0644); err != nil {
		return fmt.Errorf("cache: writing %d season: %w", year, err)
	}
	return nil
}
