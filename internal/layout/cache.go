package layout

import (
	"github.com/gompdf/folio/internal/model"
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// DefaultCursorCacheSize is the number of materialized paragraphs kept
const DefaultCursorCacheSize = 200

// CursorCache materializes paragraph cursors on demand and keeps the most
// recently used ones. It is the only owner of ParagraphCursors; everything
// else refers to paragraphs by index. Not safe for concurrent use.
type CursorCache struct {
	model model.Model
	lru   *simplelru.LRU[int, *ParagraphCursor]
}

// NewCursorCache creates a cache over m holding up to size paragraphs
func NewCursorCache(m model.Model, size int) *CursorCache {
	if size <= 0 {
		size = DefaultCursorCacheSize
	}
	lru, err := simplelru.NewLRU[int, *ParagraphCursor](size, nil)
	if err != nil {
		// size is positive, NewLRU cannot fail
		panic(err)
	}
	return &CursorCache{model: m, lru: lru}
}

// Model returns the model the cache materializes
func (c *CursorCache) Model() model.Model {
	return c.model
}

// Get returns the cursor of paragraph i, materializing it on a miss
func (c *CursorCache) Get(i int) *ParagraphCursor {
	if p, ok := c.lru.Get(i); ok {
		return p
	}
	p := newParagraphCursor(c.model, i)
	c.lru.Add(i, p)
	return p
}

// Len returns the number of cached paragraphs
func (c *CursorCache) Len() int {
	return c.lru.Len()
}

// EvictAll drops every cached paragraph
func (c *CursorCache) EvictAll() {
	c.lru.Purge()
}
