package db

import (
	"context"
	"errors"
	"fmt"

	"Gin_memory_redis_rental_catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo is the postgres-backed Catalog.
type Repo struct{ DB *gorm.DB }

var _ Catalog = (*Repo)(nil)

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

func orderedPeriods(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }

func (r *Repo) FindByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	err := r.DB.WithContext(ctx).
		Preload("RentalPeriods", orderedPeriods).
		First(&it, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find item %q: %w", id, err)
	}
	if it.RentalPeriods == nil {
		it.RentalPeriods = []models.RentalPeriod{}
	}
	return &it, nil
}

func (r *Repo) Insert(ctx context.Context, it *models.Item) error {
	row := it.Clone()
	row.RentalPeriods = nil // 新物品没有租期；记录由 Save 写入
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Item{}).Where("id = ?", it.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateItem
		}
		return tx.Create(&row).Error
	})
	// 并发插入时仍可能撞主键，由 TranslateError 转成 ErrDuplicatedKey
	if errors.Is(err, ErrDuplicateItem) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("insert %q: %w", it.ID, ErrDuplicateItem)
	}
	if err != nil {
		return fmt.Errorf("insert %q: %w", it.ID, err)
	}
	return nil
}

func (r *Repo) All(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).
		Preload("RentalPeriods", orderedPeriods).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	for i := range items {
		if items[i].RentalPeriods == nil {
			items[i].RentalPeriods = []models.RentalPeriod{}
		}
	}
	return items, nil
}

// Save：原子操作 = 锁住 item → 更新 availability → upsert 租期
func (r *Repo) Save(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.Item
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cur, "id = ?", it.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("save %q: %w", it.ID, ErrItemNotFound)
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Item{}).
			Where("id = ?", it.ID).
			Update("availability", it.Availability).Error; err != nil {
			return err
		}

		for i := range it.RentalPeriods {
			p := it.RentalPeriods[i]
			p.ItemID = it.ID
			p.Seq = i
			// 已有记录只允许改状态和归还日期
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "returned_date"}),
			}).Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
