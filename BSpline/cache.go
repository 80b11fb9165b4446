package BSpline

import (
	"sync"
)

// Key identifies one specialization of the interpolator
type Key struct {
	NDim, Axis int
	Mode       Mode
}

// Cache memoizes Layouts by Key. It only saves the cost of rebuilding the axis
// bookkeeping and is never required for correct results. Safe for concurrent
// use, entries are never modified after insertion.
type Cache struct {
	mu      sync.Mutex
	layouts map[Key]*Layout
}

func NewCache() *Cache {
	return &Cache{layouts: make(map[Key]*Layout)}
}

// Get returns the Layout for the key, building and inserting it on first use.
// The axis is normalized before it becomes part of the key.
func (c *Cache) Get(ndim, axis int, mode Mode) (l *Layout, err error) {
	if axis < 0 {
		axis += ndim
	}
	key := Key{NDim: ndim, Axis: axis, Mode: mode}
	c.mu.Lock()
	defer c.mu.Unlock()
	if l = c.layouts[key]; l != nil {
		return
	}
	if l, err = NewLayout(ndim, axis); err != nil {
		return
	}
	c.layouts[key] = l
	return
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.layouts)
}

func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layouts = make(map[Key]*Layout)
}
