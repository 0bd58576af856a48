package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/model"
)

// WorkerRepository worker data access
type WorkerRepository interface {
	Create(ctx context.Context, worker *model.Worker) error
	GetByID(ctx context.Context, id string) (*model.Worker, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Worker, error)
	GetByEmployeeCode(ctx context.Context, code string) (*model.Worker, error)
	List(ctx context.Context, includeInactive bool) ([]model.Worker, error)
	Update(ctx context.Context, worker *model.Worker) error
	Delete(ctx context.Context, id string) error
	CountEntries(ctx context.Context, workerID string) (int64, error)
}

type workerRepo struct {
	db *gorm.DB
}

// NewWorkerRepo creates a WorkerRepository
func NewWorkerRepo(db *gorm.DB) WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *workerRepo) GetByID(ctx context.Context, id string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", id).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Worker, error) {
	var workers []model.Worker
	if len(ids) == 0 {
		return workers, nil
	}
	err := r.db.WithContext(ctx).
		Where("worker_id IN ?", ids).
		Find(&workers).Error
	return workers, err
}

func (r *workerRepo) GetByEmployeeCode(ctx context.Context, code string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Where("employee_code = ?", code).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) List(ctx context.Context, includeInactive bool) ([]model.Worker, error) {
	var workers []model.Worker
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&workers).Error
	return workers, err
}

func (r *workerRepo) Update(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Save(worker).Error
}

func (r *workerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("worker_id = ?", id).
		Delete(&model.Worker{}).Error
}

func (r *workerRepo) CountEntries(ctx context.Context, workerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductionEntry{}).
		Where("worker_id = ?", workerID).
		Count(&n).Error
	return n, err
}
