package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate entry point for all repositories
type Repository struct {
	db *gorm.DB

	User            UserRepository
	Section         SectionRepository
	Worker          WorkerRepository
	Item            ItemRepository
	TargetRule      TargetRuleRepository
	ProductionEntry ProductionEntryRepository
	Report          ReportRepository
}

// NewRepository builds the aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		User:            NewUserRepo(db),
		Section:         NewSectionRepo(db),
		Worker:          NewWorkerRepo(db),
		Item:            NewItemRepo(db),
		TargetRule:      NewTargetRuleRepo(db),
		ProductionEntry: NewProductionEntryRepo(db),
		Report:          NewReportRepo(db),
	}
}

// BeginTx opens a transaction. Returns (nil, nil) when the aggregate has no
// database attached, which lets unit tests run services against mocks.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx returns an aggregate whose repositories run on tx.
// A nil tx returns the receiver unchanged.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Transaction runs fn inside BeginTx/WithTx, committing on nil and rolling back otherwise.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) (err error) {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(p)
		}
	}()

	if err = fn(r.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	if tx != nil {
		return tx.Commit().Error
	}
	return nil
}
