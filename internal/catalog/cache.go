package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Snapshot cache keys. The cache is a flat key-value store of serialized
// text, read only when the remote load fails or comes back empty.
const (
	cacheKeyDishes     = "menu_dishes"
	cacheKeyCategories = "menu_categories"
)

// Cache is the snapshot store the catalog falls back to.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FileCache persists the key-value snapshot as a single JSON file.
type FileCache struct {
	mu   sync.Mutex
	path string
}

// NewFileCache creates a cache backed by the file at path. The file is
// created on first write.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Get returns the value stored under key, if any. A missing or unreadable
// cache file reads as empty.
func (c *FileCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.read()
	if err != nil {
		return "", false
	}
	value, ok := entries[key]
	return value, ok
}

// Set stores value under key, rewriting the file atomically.
func (c *FileCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.read()
	if err != nil {
		entries = map[string]string{}
	}
	entries[key] = value

	buf, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

func (c *FileCache) read() (map[string]string, error) {
	buf, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	entries := map[string]string{}
	if err := json.Unmarshal(buf, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DefaultCachePath places the snapshot next to the working directory unless
// configured otherwise.
func DefaultCachePath(dir string) string {
	return filepath.Join(dir, "menu_cache.json")
}
