package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/model"
	"github.com/Diwak4r/ERP-System/internal/production"
)

// ProductionEntryRepository production entry data access. Entries are write-once.
type ProductionEntryRepository interface {
	Create(ctx context.Context, entry *model.ProductionEntry) error
	GetByID(ctx context.Context, id string) (*model.ProductionEntry, error)
	// ListByDate entries of a day ordered by section name then worker name;
	// sectionID "" means all sections.
	ListByDate(ctx context.Context, day time.Time, sectionID string) ([]model.ProductionEntry, error)
}

type productionEntryRepo struct {
	db *gorm.DB
}

// NewProductionEntryRepo creates a ProductionEntryRepository
func NewProductionEntryRepo(db *gorm.DB) ProductionEntryRepository {
	return &productionEntryRepo{db: db}
}

func (r *productionEntryRepo) Create(ctx context.Context, entry *model.ProductionEntry) error {
	return r.db.WithContext(ctx).Omit("Section", "Worker", "Item").Create(entry).Error
}

func (r *productionEntryRepo) GetByID(ctx context.Context, id string) (*model.ProductionEntry, error) {
	var entry model.ProductionEntry
	err := r.db.WithContext(ctx).
		Preload("Section").
		Preload("Worker").
		Preload("Item").
		Where("production_entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *productionEntryRepo) ListByDate(ctx context.Context, day time.Time, sectionID string) ([]model.ProductionEntry, error) {
	var entries []model.ProductionEntry
	db := r.db.WithContext(ctx).
		Joins("JOIN sections ON sections.section_id = production_entries.section_id").
		Joins("JOIN workers ON workers.worker_id = production_entries.worker_id").
		Preload("Section").
		Preload("Worker").
		Preload("Item").
		Where("production_entries.entry_date = ?", day.Format(production.DateLayout))
	if sectionID != "" {
		db = db.Where("production_entries.section_id = ?", sectionID)
	}
	err := db.
		Order("sections.name ASC").
		Order("workers.name ASC").
		Order("production_entries.created_at ASC").
		Find(&entries).Error
	return entries, err
}
