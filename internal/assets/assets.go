// Package assets tracks loaded Cast files and builds previews on demand.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/castview/internal/logger"
	"github.com/Faultbox/castview/internal/model"
	"github.com/Faultbox/castview/pkg/cast"
)

// Extension is the file extension of loadable assets.
const Extension = ".cast"

// Status is the load state of an asset.
type Status int

const (
	StatusLoaded Status = iota
	StatusError
)

func (s Status) String() string {
	if s == StatusError {
		return "Error"
	}
	return "Loaded"
}

// Asset is one Cast file known to the manager.
type Asset struct {
	Name   string
	Path   string
	Status Status
}

// TypeName returns the asset type shown in listings.
func (a Asset) TypeName() string {
	return "Model"
}

// Manager holds the loaded asset list and the active search filter.
type Manager struct {
	assets []Asset
	search []int // nil when no search is active
	cache  *Cache
	mu     sync.RWMutex
}

// NewManager creates an empty asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// LoadFiles adds every Cast file among paths, named by file stem.
// Other files are skipped. Returns the number of assets added.
func (m *Manager) LoadFiles(paths []string) int {
	var added []Asset
	for _, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), Extension) {
			logger.Debug("skipping non-cast file", zap.String("path", p))
			continue
		}
		added = append(added, Asset{Name: stem(p), Path: p, Status: StatusLoaded})
	}

	m.mu.Lock()
	m.assets = append(m.assets, added...)
	m.mu.Unlock()
	return len(added)
}

// LoadDir walks dir and adds every Cast file below it.
func (m *Manager) LoadDir(dir string) (int, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return m.LoadFiles(paths), nil
}

// LoadPaths adds files and walks directories.
func (m *Manager) LoadPaths(paths []string) (int, error) {
	total := 0
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return total, fmt.Errorf("loading %s: %w", p, err)
		}
		if info.IsDir() {
			n, err := m.LoadDir(p)
			total += n
			if err != nil {
				return total, err
			}
			continue
		}
		files = append(files, p)
	}
	return total + m.LoadFiles(files), nil
}

// Search filters visible assets by a case-insensitive substring of the name.
// An empty term clears the filter.
func (m *Manager) Search(term string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	term = strings.TrimSpace(term)
	if term == "" {
		m.search = nil
		return
	}

	term = strings.ToLower(term)
	results := make([]int, 0)
	for i, a := range m.assets {
		if strings.Contains(strings.ToLower(a.Name), term) {
			results = append(results, i)
		}
	}
	m.search = results
}

// Len returns the number of visible assets.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.search != nil {
		return len(m.search)
	}
	return len(m.assets)
}

// Total returns the number of loaded assets regardless of search.
func (m *Manager) Total() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assets)
}

// Visible returns a copy of the assets that pass the current search.
func (m *Manager) Visible() []Asset {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.search == nil {
		return append([]Asset(nil), m.assets...)
	}
	out := make([]Asset, len(m.search))
	for i, idx := range m.search {
		out[i] = m.assets[idx]
	}
	return out
}

// Asset returns the visible asset at index.
func (m *Manager) Asset(index int) (Asset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.resolve(index)
	if !ok {
		return Asset{}, false
	}
	return m.assets[idx], true
}

// resolve maps a visible index to an index into m.assets. Caller holds mu.
func (m *Manager) resolve(index int) (int, bool) {
	if m.search != nil {
		if index < 0 || index >= len(m.search) {
			return 0, false
		}
		return m.search[index], true
	}
	if index < 0 || index >= len(m.assets) {
		return 0, false
	}
	return index, true
}

// Preview builds the model of the visible asset at index. Textures resolve
// relative to the asset's directory unless opts.Folder is set. A failed build
// marks the asset with StatusError.
func (m *Manager) Preview(index int, opts model.Options) (*model.Model, error) {
	m.mu.RLock()
	idx, ok := m.resolve(index)
	var asset Asset
	if ok {
		asset = m.assets[idx]
	}
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("asset index %d out of range", index)
	}

	mdl, err := m.build(asset, opts)
	if err != nil {
		m.setStatus(asset.Path, StatusError)
		return nil, fmt.Errorf("previewing %s: %w", asset.Name, err)
	}
	m.setStatus(asset.Path, StatusLoaded)
	if mdl.Name == "" {
		mdl.Name = asset.Name
	}
	return mdl, nil
}

func (m *Manager) build(asset Asset, opts model.Options) (*model.Model, error) {
	data, err := m.Load(asset.Path)
	if err != nil {
		return nil, err
	}
	file, err := cast.Parse(data)
	if err != nil {
		return nil, err
	}
	if opts.Folder == "" {
		opts.Folder = filepath.Dir(asset.Path)
	}
	return model.Build(file.Roots, opts)
}

// setStatus updates the asset registered under path. The list may have
// changed since the asset was resolved, so it is looked up again.
func (m *Manager) setStatus(path string, s Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assets {
		if m.assets[i].Path == path {
			m.assets[i].Status = s
			return
		}
	}
}

// Load returns the bytes of path, reading through the cache.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", path, err)
	}
	m.cache.Set(path, data)
	return data, nil
}

// Clear drops every asset, the search filter and cached data.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assets = nil
	m.search = nil
	m.cache.Clear()
}

// CacheStats returns cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

func stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// Cache is a simple in-memory cache for asset file contents.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
