package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/model"
)

// ItemRepository item data access
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Item, error)
	List(ctx context.Context, includeInactive bool) ([]model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id string) error
	CountEntries(ctx context.Context, itemID string) (int64, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepo creates an ItemRepository
func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Where("item_id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Item, error) {
	var items []model.Item
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Where("item_id IN ?", ids).
		Find(&items).Error
	return items, err
}

func (r *itemRepo) List(ctx context.Context, includeInactive bool) ([]model.Item, error) {
	var items []model.Item
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("item_id = ?", id).
		Delete(&model.Item{}).Error
}

func (r *itemRepo) CountEntries(ctx context.Context, itemID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductionEntry{}).
		Where("item_id = ?", itemID).
		Count(&n).Error
	return n, err
}
