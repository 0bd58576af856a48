package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/model"
	"github.com/Diwak4r/ERP-System/internal/repository"
)

// ── Worker errors ──

var (
	ErrWorkerNotFound   = errors.New("worker not found")
	ErrWorkerCodeExists = errors.New("employee code already exists")
	ErrWorkerInUse      = errors.New("worker has production entries and cannot be deleted")
	ErrWorkerInactive   = errors.New("worker is inactive")
)

const maxImportRows = 1000

var (
	ErrImportNoData      = errors.New("spreadsheet has no data rows (first row is the header)")
	ErrImportTooManyRows = fmt.Errorf("spreadsheet exceeds %d data rows", maxImportRows)
	ErrImportBadHeader   = errors.New("spreadsheet header must contain name and employee_code columns")
	ErrImportUnreadable  = errors.New("file is not a readable xlsx workbook")
)

// WorkerService worker master data
type WorkerService interface {
	Create(ctx context.Context, req *dto.CreateWorkerRequest, callerID string) (*dto.WorkerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.WorkerResponse, error)
	List(ctx context.Context, req *dto.ActiveFilterRequest) ([]dto.WorkerResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateWorkerRequest, callerID string) (*dto.WorkerResponse, error)
	Delete(ctx context.Context, id string) error
	ParseImportFile(reader io.Reader) ([]ImportWorkerRow, error)
	ImportWorkers(ctx context.Context, rows []ImportWorkerRow, callerID string) (*dto.ImportWorkerResponse, error)
}

// ImportWorkerRow one parsed spreadsheet row
type ImportWorkerRow struct {
	Row          int
	Name         string
	EmployeeCode string
	IsDailyWage  bool
}

type workerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkerService creates a WorkerService
func NewWorkerService(repo *repository.Repository, logger *zap.Logger) WorkerService {
	return &workerService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *workerService) Create(ctx context.Context, req *dto.CreateWorkerRequest, callerID string) (*dto.WorkerResponse, error) {
	worker := &model.Worker{
		Name:         req.Name,
		EmployeeCode: req.EmployeeCode,
		IsDailyWage:  req.IsDailyWage,
		IsActive:     true,
	}
	worker.CreatedBy = &callerID
	worker.UpdatedBy = &callerID

	if err := s.repo.Worker.Create(ctx, worker); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrWorkerCodeExists
		}
		s.logger.Error("create worker failed", zap.Error(err))
		return nil, err
	}
	return toWorkerResponse(worker), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *workerService) GetByID(ctx context.Context, id string) (*dto.WorkerResponse, error) {
	worker, err := s.repo.Worker.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		s.logger.Error("query worker failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toWorkerResponse(worker), nil
}

// ────────────────────── List ──────────────────────

func (s *workerService) List(ctx context.Context, req *dto.ActiveFilterRequest) ([]dto.WorkerResponse, error) {
	workers, err := s.repo.Worker.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("list workers failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		result = append(result, *toWorkerResponse(&workers[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *workerService) Update(ctx context.Context, id string, req *dto.UpdateWorkerRequest, callerID string) (*dto.WorkerResponse, error) {
	worker, err := s.repo.Worker.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		s.logger.Error("query worker failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.EmployeeCode != nil {
		worker.EmployeeCode = *req.EmployeeCode
	}
	if req.IsDailyWage != nil {
		worker.IsDailyWage = *req.IsDailyWage
	}
	if req.IsActive != nil {
		worker.IsActive = *req.IsActive
	}
	worker.UpdatedBy = &callerID

	if err := s.repo.Worker.Update(ctx, worker); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrWorkerCodeExists
		}
		s.logger.Error("update worker failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toWorkerResponse(worker), nil
}

// ────────────────────── Delete ──────────────────────

func (s *workerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Worker.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		s.logger.Error("query worker failed", zap.String("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Worker.CountEntries(ctx, id)
	if err != nil {
		s.logger.Error("count worker entries failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrWorkerInUse
	}

	if err := s.repo.Worker.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrWorkerInUse
		}
		s.logger.Error("delete worker failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ParseImportFile ──────────────────────

// ParseImportFile reads the first sheet of an xlsx workbook. Header columns are
// matched case-insensitively: name, employee_code, daily_wage (optional).
func (s *workerService) ParseImportFile(reader io.Reader) ([]ImportWorkerRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}

	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	colIndex := parseWorkerHeader(excelRows[0])
	if colIndex["name"] < 0 || colIndex["employee_code"] < 0 {
		return nil, ErrImportBadHeader
	}

	var rows []ImportWorkerRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := ImportWorkerRow{Row: i + 1}

		if idx := colIndex["name"]; idx < len(row) {
			item.Name = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["employee_code"]; idx < len(row) {
			item.EmployeeCode = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["daily_wage"]; idx >= 0 && idx < len(row) {
			item.IsDailyWage = parseYes(row[idx])
		}

		// skip blank lines
		if item.Name == "" && item.EmployeeCode == "" {
			continue
		}
		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return rows, nil
}

// parseWorkerHeader maps column name -> index; -1 when absent
func parseWorkerHeader(header []string) map[string]int {
	idx := map[string]int{
		"name":          -1,
		"employee_code": -1,
		"daily_wage":    -1,
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "worker", "worker name":
			idx["name"] = i
		case "employee_code", "employee code", "code":
			idx["employee_code"] = i
		case "daily_wage", "daily wage", "is_daily_wage":
			idx["daily_wage"] = i
		}
	}
	return idx
}

func parseYes(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "y", "yes", "true", "x":
		return true
	}
	return false
}

// ────────────────────── ImportWorkers ──────────────────────

func (s *workerService) ImportWorkers(ctx context.Context, rows []ImportWorkerRow, callerID string) (*dto.ImportWorkerResponse, error) {
	resp := &dto.ImportWorkerResponse{Total: len(rows)}

	// phase 1: validate without writing
	var valid []ImportWorkerRow
	seen := make(map[string]int)
	for _, row := range rows {
		if row.Name == "" || row.EmployeeCode == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportWorkerError{Row: row.Row, Reason: "name and employee_code are required"})
			continue
		}
		if first, dup := seen[row.EmployeeCode]; dup {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportWorkerError{
				Row: row.Row, Reason: fmt.Sprintf("employee code %s repeats row %d", row.EmployeeCode, first),
			})
			continue
		}
		seen[row.EmployeeCode] = row.Row

		if _, err := s.repo.Worker.GetByEmployeeCode(ctx, row.EmployeeCode); err == nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportWorkerError{
				Row: row.Row, Reason: fmt.Sprintf("employee code already exists: %s", row.EmployeeCode),
			})
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("query worker failed", zap.Error(err))
			return nil, err
		}

		valid = append(valid, row)
	}

	// phase 2: all-or-nothing insert of the valid rows
	if len(valid) > 0 {
		err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
			for _, row := range valid {
				worker := &model.Worker{
					Name:         row.Name,
					EmployeeCode: row.EmployeeCode,
					IsDailyWage:  row.IsDailyWage,
					IsActive:     true,
				}
				worker.CreatedBy = &callerID
				worker.UpdatedBy = &callerID
				if err := txRepo.Worker.Create(ctx, worker); err != nil {
					return fmt.Errorf("row %d: %w", row.Row, err)
				}
			}
			return nil
		})
		if err != nil {
			s.logger.Error("worker import rolled back", zap.Error(err))
			return nil, err
		}
		resp.Success = len(valid)
	}

	s.logger.Info("workers imported",
		zap.Int("total", resp.Total), zap.Int("success", resp.Success), zap.Int("failed", resp.Failed))
	return resp, nil
}

// ── internal helpers ──

func toWorkerResponse(w *model.Worker) *dto.WorkerResponse {
	return &dto.WorkerResponse{
		ID:           w.WorkerID,
		Name:         w.Name,
		EmployeeCode: w.EmployeeCode,
		IsDailyWage:  w.IsDailyWage,
		IsActive:     w.IsActive,
		CreatedAt:    formatTimestamp(w.CreatedAt),
	}
}
