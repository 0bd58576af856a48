package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/model"
)

// SectionRepository section data access
type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	GetByID(ctx context.Context, id string) (*model.Section, error)
	List(ctx context.Context, includeInactive bool) ([]model.Section, error)
	ListBySupervisor(ctx context.Context, userID string) ([]model.Section, error)
	Update(ctx context.Context, section *model.Section) error
	Delete(ctx context.Context, id string) error
	SupervisorIDs(ctx context.Context, sectionID string) ([]string, error)
	ReplaceSupervisors(ctx context.Context, sectionID string, userIDs []string) error
	CountEntries(ctx context.Context, sectionID string) (int64, error)
}

type sectionRepo struct {
	db *gorm.DB
}

// NewSectionRepo creates a SectionRepository
func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Omit("Supervisors").Create(section).Error
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*model.Section, error) {
	var section model.Section
	err := r.db.WithContext(ctx).
		Preload("Supervisors").
		Where("section_id = ?", id).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepo) List(ctx context.Context, includeInactive bool) ([]model.Section, error) {
	var sections []model.Section
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&sections).Error
	return sections, err
}

// ListBySupervisor active sections linked to the user
func (r *sectionRepo) ListBySupervisor(ctx context.Context, userID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Joins("JOIN section_supervisors ss ON ss.section_id = sections.section_id").
		Where("ss.user_id = ? AND sections.is_active = ?", userID, true).
		Order("sections.name ASC").
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepo) Update(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Omit("Supervisors").Save(section).Error
}

func (r *sectionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("section_id = ?", id).
		Delete(&model.Section{}).Error
}

func (r *sectionRepo) SupervisorIDs(ctx context.Context, sectionID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.SectionSupervisor{}).
		Where("section_id = ?", sectionID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// ReplaceSupervisors swaps the whole supervisor set in one transaction
func (r *sectionRepo) ReplaceSupervisors(ctx context.Context, sectionID string, userIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", sectionID).
			Delete(&model.SectionSupervisor{}).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		links := make([]model.SectionSupervisor, 0, len(userIDs))
		for _, uid := range userIDs {
			links = append(links, model.SectionSupervisor{SectionID: sectionID, UserID: uid})
		}
		return tx.Create(&links).Error
	})
}

func (r *sectionRepo) CountEntries(ctx context.Context, sectionID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductionEntry{}).
		Where("section_id = ?", sectionID).
		Count(&n).Error
	return n, err
}
