package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/production"
)

// ItemTotal per-item sum of one day
type ItemTotal struct {
	ItemID      string
	ItemName    string
	Unit        string
	TotalActual decimal.Decimal
}

// WorkerTotal per-worker sum of one day
type WorkerTotal struct {
	WorkerID    string
	WorkerName  string
	TotalActual decimal.Decimal
}

// ItemAggregate per-item target attainment of one day
type ItemAggregate struct {
	ItemID      string
	ItemName    string
	TotalTarget decimal.Decimal
	TotalActual decimal.Decimal
	HitCount    int64
	EntryCount  int64
}

// DayTotal per-day sums of one worker in one section
type DayTotal struct {
	EntryDate   time.Time
	TotalTarget decimal.Decimal
	TotalActual decimal.Decimal
}

// ReportRepository grouped read-only aggregations over production_entries.
// sectionID "" means all sections.
type ReportRepository interface {
	ItemTotals(ctx context.Context, day time.Time, sectionID string) ([]ItemTotal, error)
	WorkerTotals(ctx context.Context, day time.Time, sectionID string) ([]WorkerTotal, error)
	DistinctWorkers(ctx context.Context, day time.Time, sectionID string) (int64, error)
	ItemAggregates(ctx context.Context, day time.Time, sectionID string) ([]ItemAggregate, error)
	WorkerDayTotals(ctx context.Context, workerID, sectionID string, start, end time.Time) ([]DayTotal, error)
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepo creates a ReportRepository
func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

// dayScope entries of one day, optionally one section
func (r *reportRepo) dayScope(ctx context.Context, day time.Time, sectionID string) *gorm.DB {
	db := r.db.WithContext(ctx).
		Table("production_entries pe").
		Where("pe.entry_date = ?", day.Format(production.DateLayout))
	if sectionID != "" {
		db = db.Where("pe.section_id = ?", sectionID)
	}
	return db
}

func (r *reportRepo) ItemTotals(ctx context.Context, day time.Time, sectionID string) ([]ItemTotal, error) {
	var rows []ItemTotal
	err := r.dayScope(ctx, day, sectionID).
		Select("i.item_id, i.name AS item_name, i.unit, COALESCE(SUM(pe.actual_qty), 0) AS total_actual").
		Joins("JOIN items i ON i.item_id = pe.item_id").
		Group("i.item_id, i.name, i.unit").
		Order("i.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) WorkerTotals(ctx context.Context, day time.Time, sectionID string) ([]WorkerTotal, error) {
	var rows []WorkerTotal
	err := r.dayScope(ctx, day, sectionID).
		Select("w.worker_id, w.name AS worker_name, COALESCE(SUM(pe.actual_qty), 0) AS total_actual").
		Joins("JOIN workers w ON w.worker_id = pe.worker_id").
		Group("w.worker_id, w.name").
		Order("w.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) DistinctWorkers(ctx context.Context, day time.Time, sectionID string) (int64, error) {
	var n int64
	err := r.dayScope(ctx, day, sectionID).
		Select("COUNT(DISTINCT pe.worker_id)").
		Scan(&n).Error
	return n, err
}

func (r *reportRepo) ItemAggregates(ctx context.Context, day time.Time, sectionID string) ([]ItemAggregate, error) {
	var rows []ItemAggregate
	err := r.dayScope(ctx, day, sectionID).
		Select(`i.item_id, i.name AS item_name,
			COALESCE(SUM(pe.target_qty), 0) AS total_target,
			COALESCE(SUM(pe.actual_qty), 0) AS total_actual,
			COUNT(*) FILTER (WHERE pe.target_met) AS hit_count,
			COUNT(*) AS entry_count`).
		Joins("JOIN items i ON i.item_id = pe.item_id").
		Group("i.item_id, i.name").
		Order("i.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) WorkerDayTotals(ctx context.Context, workerID, sectionID string, start, end time.Time) ([]DayTotal, error) {
	var rows []DayTotal
	err := r.db.WithContext(ctx).
		Table("production_entries pe").
		Select(`pe.entry_date,
			COALESCE(SUM(pe.target_qty), 0) AS total_target,
			COALESCE(SUM(pe.actual_qty), 0) AS total_actual`).
		Where("pe.worker_id = ? AND pe.section_id = ?", workerID, sectionID).
		Where("pe.entry_date BETWEEN ? AND ?",
			start.Format(production.DateLayout), end.Format(production.DateLayout)).
		Group("pe.entry_date").
		Order("pe.entry_date ASC").
		Scan(&rows).Error
	return rows, err
}
