package texture

import (
	"image"
	"log/slog"
	"os"
	"sync"

	"gecko-animutils/internal/model"
)

// Resolver resolves a texture name to a decoded image.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Names are looked up as a file path
// first and then by stem in the index.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA // nil when loading failed
	index *Index
}

// NewCache creates a texture cache backed by index, which may be nil.
func NewCache(index *Index) *Cache {
	if index == nil {
		index = &Index{entries: make(map[string]string)}
	}
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
	}
}

// Resolve loads and caches a texture. Returns nil if it cannot be found or decoded.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path := texName
	if _, err := os.Stat(path); err != nil {
		var ok bool
		if path, ok = c.index.ResolvePath(texName); !ok {
			return nil
		}
	}

	c.mu.RLock()
	img, exists := c.items[path]
	c.mu.RUnlock()
	if exists {
		return img
	}

	img, err := LoadTexture(path)
	if err != nil {
		slog.Warn("texture unavailable", "path", path, "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, exists := c.items[path]; exists {
		return cached
	}
	c.items[path] = img
	return img
}

// Skin returns the first texture of p that r can resolve.
func Skin(r Resolver, p *model.Project) *image.NRGBA {
	if r == nil {
		return nil
	}
	for _, t := range p.Textures {
		for _, name := range []string{t.Path, t.Name} {
			if name == "" {
				continue
			}
			if img := r.Resolve(name); img != nil {
				return img
			}
		}
	}
	return nil
}
