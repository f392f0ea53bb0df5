package db

import (
	"context"
	"fmt"
	"sync"

	"Gin_memory_redis_rental_catalog/models"
)

// MemoryCatalog keeps items in insertion order. Lookups are linear scans.
type MemoryCatalog struct {
	mu    sync.RWMutex
	items []models.Item
}

var _ Catalog = (*MemoryCatalog)(nil)

func NewMemoryCatalog(seed ...models.Item) *MemoryCatalog {
	c := &MemoryCatalog{items: make([]models.Item, 0, len(seed))}
	for _, it := range seed {
		if it.RentalPeriods == nil {
			it.RentalPeriods = []models.RentalPeriod{}
		}
		c.items = append(c.items, it.Clone())
	}
	return c
}

func (c *MemoryCatalog) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *MemoryCatalog) FindByID(_ context.Context, id string) (*models.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrItemNotFound
	}
	it := c.items[i].Clone()
	return &it, nil
}

func (c *MemoryCatalog) Insert(_ context.Context, it *models.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(it.ID) >= 0 {
		return fmt.Errorf("insert %q: %w", it.ID, ErrDuplicateItem)
	}
	c.items = append(c.items, it.Clone())
	return nil
}

func (c *MemoryCatalog) All(_ context.Context) ([]models.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it.Clone())
	}
	return out, nil
}

func (c *MemoryCatalog) Save(_ context.Context, it *models.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(it.ID)
	if i < 0 {
		return fmt.Errorf("save %q: %w", it.ID, ErrItemNotFound)
	}
	cp := it.Clone()
	c.items[i].Availability = cp.Availability
	c.items[i].RentalPeriods = cp.RentalPeriods
	return nil
}
