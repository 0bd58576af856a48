package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/model"
	"github.com/Diwak4r/ERP-System/internal/production"
	pkgerrors "github.com/Diwak4r/ERP-System/pkg/errors"
)

// TargetRuleFilter rule list filter
type TargetRuleFilter struct {
	SectionID string
	ItemID    string
}

// TargetRuleRepository target rule data access
type TargetRuleRepository interface {
	Create(ctx context.Context, rule *model.TargetRule) error
	GetByID(ctx context.Context, id string) (*model.TargetRule, error)
	List(ctx context.Context, filter TargetRuleFilter) ([]model.TargetRule, error)
	// ListCovering rules of (section, item) whose interval contains day,
	// newest start first, open/later end next, most recently created last.
	ListCovering(ctx context.Context, sectionID, itemID string, day time.Time) ([]model.TargetRule, error)
	// ListOverlapping rules of (section, item) sharing at least one day with w.
	ListOverlapping(ctx context.Context, sectionID, itemID string, w production.Window, excludeID string) ([]model.TargetRule, error)
	Update(ctx context.Context, rule *model.TargetRule) error
	Delete(ctx context.Context, id string) error
}

type targetRuleRepo struct {
	db *gorm.DB
}

// NewTargetRuleRepo creates a TargetRuleRepository
func NewTargetRuleRepo(db *gorm.DB) TargetRuleRepository {
	return &targetRuleRepo{db: db}
}

func (r *targetRuleRepo) Create(ctx context.Context, rule *model.TargetRule) error {
	return r.db.WithContext(ctx).Omit("Section", "Item").Create(rule).Error
}

func (r *targetRuleRepo) GetByID(ctx context.Context, id string) (*model.TargetRule, error) {
	var rule model.TargetRule
	err := r.db.WithContext(ctx).
		Preload("Section").
		Preload("Item").
		Where("target_rule_id = ?", id).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *targetRuleRepo) List(ctx context.Context, filter TargetRuleFilter) ([]model.TargetRule, error) {
	var rules []model.TargetRule
	db := r.db.WithContext(ctx).Preload("Section").Preload("Item")
	if filter.SectionID != "" {
		db = db.Where("section_id = ?", filter.SectionID)
	}
	if filter.ItemID != "" {
		db = db.Where("item_id = ?", filter.ItemID)
	}
	err := db.Order("start_date DESC").Order("created_at DESC").Find(&rules).Error
	return rules, err
}

func (r *targetRuleRepo) ListCovering(ctx context.Context, sectionID, itemID string, day time.Time) ([]model.TargetRule, error) {
	var rules []model.TargetRule
	d := day.Format(production.DateLayout)
	err := r.db.WithContext(ctx).
		Where("section_id = ? AND item_id = ?", sectionID, itemID).
		Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)", d, d).
		Order("start_date DESC").
		Order("end_date DESC NULLS FIRST").
		Order("created_at DESC").
		Find(&rules).Error
	return rules, err
}

func (r *targetRuleRepo) ListOverlapping(ctx context.Context, sectionID, itemID string, w production.Window, excludeID string) ([]model.TargetRule, error) {
	var rules []model.TargetRule
	db := r.db.WithContext(ctx).
		Where("section_id = ? AND item_id = ?", sectionID, itemID).
		Where("(end_date IS NULL OR end_date >= ?)", w.Start.Format(production.DateLayout))
	if w.End != nil {
		db = db.Where("start_date <= ?", w.End.Format(production.DateLayout))
	}
	if excludeID != "" {
		db = db.Where("target_rule_id <> ?", excludeID)
	}
	err := db.Order("start_date ASC").Find(&rules).Error
	return rules, err
}

// Update writes the editable columns when the stored version still matches.
func (r *targetRuleRepo) Update(ctx context.Context, rule *model.TargetRule) error {
	oldVersion := rule.Version
	result := r.db.WithContext(ctx).
		Model(&model.TargetRule{}).
		Where("target_rule_id = ? AND version = ?", rule.TargetRuleID, oldVersion).
		Updates(map[string]interface{}{
			"target_qty":  rule.TargetQty,
			"shift_hours": rule.ShiftHours,
			"start_date":  rule.StartDate,
			"end_date":    rule.EndDate,
			"updated_by":  rule.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	rule.Version = oldVersion + 1
	return nil
}

func (r *targetRuleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("target_rule_id = ?", id).
		Delete(&model.TargetRule{}).Error
}
