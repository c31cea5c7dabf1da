package texture

import (
	"image"
	"sync"

	"sdkmesh2obj/internal/logx"
)

// Resolver resolves a material texture name to a decoded image.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Failed loads are cached too.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
	log   *logx.Logger
}

// NewCache creates a texture cache backed by the given index.
func NewCache(index *Index, log *logx.Logger) *Cache {
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
		log:   log,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found or undecodable.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		if texName != "" {
			c.log.Debugf("texture %q not found", texName)
		}
		return nil
	}

	c.mu.RLock()
	img, exists := c.items[path]
	c.mu.RUnlock()
	if exists {
		return img
	}

	img, err := Load(path)
	if err != nil {
		c.log.Warnf("%v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, exists := c.items[path]; exists {
		return cached
	}
	c.items[path] = img
	return img
}

// Len returns how many paths have been loaded or attempted.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
