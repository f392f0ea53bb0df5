package db

import (
	"context"
	"errors"

	"Gin_memory_redis_rental_catalog/models"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrDuplicateItem = errors.New("item already exists")
)

// Catalog 物品目录；实现方返回深拷贝，调用方修改后通过 Save 写回
type Catalog interface {
	FindByID(ctx context.Context, id string) (*models.Item, error)
	Insert(ctx context.Context, it *models.Item) error
	All(ctx context.Context) ([]models.Item, error)
	// Save replaces availability and rental periods of an existing item.
	Save(ctx context.Context, it *models.Item) error
}
