package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/config"
	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/model"
	"github.com/Diwak4r/ERP-System/internal/production"
	"github.com/Diwak4r/ERP-System/internal/repository"
)

// ── Production entry errors ──

var (
	ErrEntryBatchEmpty    = errors.New("at least one row is required")
	ErrEntryBatchTooLarge = errors.New("too many rows in one submission")
	ErrEntryRowIncomplete = errors.New("worker_id and item_id are required")
	ErrEntryDuplicateRow  = errors.New("the same worker and item appear more than once")
	ErrEntryNotFound      = errors.New("production entry not found")
)

const duplicateEntryReason = "an entry for this worker and item already exists on this date"

// ProductionService entry intake and listing
type ProductionService interface {
	// Submit records a batch of entries for one section and day on behalf of identity.
	// The whole batch is validated before anything is written; each row is then
	// stored in its own transaction and rows colliding with an existing entry
	// are reported in Failed. A store failure stops the batch and returns the
	// rows already committed together with the error.
	Submit(ctx context.Context, identity production.Identity, req *dto.SubmitEntriesRequest) (*dto.SubmitEntriesResponse, error)
	NewRow(ctx context.Context, identity production.Identity, req *dto.NewRowRequest) (*dto.NewRowResponse, error)
	List(ctx context.Context, identity production.Identity, req *dto.EntryListRequest) ([]dto.ProductionEntryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProductionEntryResponse, error)
	// AvailableSections sections identity may submit for.
	AvailableSections(ctx context.Context, identity production.Identity) ([]dto.SectionResponse, error)
}

type productionService struct {
	cfg    *config.ProductionConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewProductionService creates a ProductionService
func NewProductionService(cfg *config.ProductionConfig, repo *repository.Repository, logger *zap.Logger, now func() time.Time) ProductionService {
	return &productionService{cfg: cfg, repo: repo, logger: logger, now: now}
}

// validRow a batch row that passed validation
type validRow struct {
	index  int // 1-based
	worker *model.Worker
	item   *model.Item
	actual decimal.Decimal
}

// ────────────────────── Submit ──────────────────────

func (s *productionService) Submit(ctx context.Context, identity production.Identity, req *dto.SubmitEntriesRequest) (*dto.SubmitEntriesResponse, error) {
	// 1. authorization, decided once for the whole request
	section, err := s.authorizedSection(ctx, identity, req.SectionID)
	if err != nil {
		return nil, err
	}
	if !section.IsActive {
		return nil, ErrSectionInactive
	}

	day, err := resolveDay(req.EntryDate, s.now, s.cfg.Location())
	if err != nil {
		return nil, err
	}

	// 2. structural validation; any failure leaves the database untouched
	rows, err := s.validateBatch(ctx, req.Rows)
	if err != nil {
		return nil, err
	}

	// 3. resolve, compute, persist per row
	resp := &dto.SubmitEntriesResponse{
		Created:  []dto.ProductionEntryResponse{},
		Warnings: []string{},
		Failed:   []dto.EntryRowFailure{},
	}
	for _, row := range rows {
		rule, err := resolveTargetRule(ctx, s.repo, section.SectionID, row.item.ItemID, day)
		if err != nil {
			s.logger.Error("resolve target rule failed",
				zap.String("section_id", section.SectionID), zap.String("item_id", row.item.ItemID), zap.Error(err))
			return s.abortSubmit(resp, section.SectionID, err)
		}

		entry := &model.ProductionEntry{
			EntryDate:  day,
			SectionID:  section.SectionID,
			WorkerID:   row.worker.WorkerID,
			ItemID:     row.item.ItemID,
			ActualQty:  row.actual,
			TargetQty:  decimal.Zero,
			ShiftHours: decimal.Zero,
		}
		if rule != nil {
			entry.TargetQty = rule.TargetQty
			entry.ShiftHours = rule.ShiftHours
		}
		entry.CreatedBy = &identity.UserID
		entry.UpdatedBy = &identity.UserID

		err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
			return txRepo.ProductionEntry.Create(ctx, entry)
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resp.Failed = append(resp.Failed, dto.EntryRowFailure{
				Row:      row.index,
				WorkerID: row.worker.WorkerID,
				ItemID:   row.item.ItemID,
				Reason:   duplicateEntryReason,
			})
			continue
		}
		if err != nil {
			s.logger.Error("create production entry failed",
				zap.Int("row", row.index), zap.String("section_id", section.SectionID), zap.Error(err))
			return s.abortSubmit(resp, section.SectionID, err)
		}

		// warn only for rows that were actually saved
		if rule == nil {
			resp.Warnings = append(resp.Warnings, noTargetWarning(row.item.Name))
		}
		entry.Section, entry.Worker, entry.Item = section, row.worker, row.item
		resp.Created = append(resp.Created, *toEntryResponse(entry))
	}

	s.logger.Info("production entries submitted",
		zap.String("section_id", section.SectionID),
		zap.String("date", formatDate(day)),
		zap.String("by", identity.UserID),
		zap.Int("created", len(resp.Created)),
		zap.Int("failed", len(resp.Failed)),
		zap.Int("warnings", len(resp.Warnings)))
	return resp, nil
}

// abortSubmit stops a batch after a store failure. Rows written before the
// failure stay committed, so the partial result is returned with the error.
func (s *productionService) abortSubmit(resp *dto.SubmitEntriesResponse, sectionID string, err error) (*dto.SubmitEntriesResponse, error) {
	ids := make([]string, 0, len(resp.Created))
	for _, c := range resp.Created {
		ids = append(ids, c.ID)
	}
	s.logger.Warn("production batch aborted after partial write",
		zap.String("section_id", sectionID),
		zap.Strings("created_ids", ids),
		zap.Int("failed", len(resp.Failed)))
	return resp, err
}

// validateBatch checks every row and loads the referenced workers and items.
func (s *productionService) validateBatch(ctx context.Context, in []dto.EntryRowRequest) ([]validRow, error) {
	if len(in) == 0 {
		return nil, ErrEntryBatchEmpty
	}
	if s.cfg.MaxBatchRows > 0 && len(in) > s.cfg.MaxBatchRows {
		return nil, fmt.Errorf("%w: limit is %d", ErrEntryBatchTooLarge, s.cfg.MaxBatchRows)
	}

	type pair struct{ worker, item string }
	seen := make(map[pair]int, len(in))
	var workerIDs, itemIDs []string
	actuals := make([]decimal.Decimal, len(in))

	for i, r := range in {
		n := i + 1
		workerID, itemID := strings.TrimSpace(r.WorkerID), strings.TrimSpace(r.ItemID)
		if workerID == "" || itemID == "" {
			return nil, fmt.Errorf("row %d: %w", n, ErrEntryRowIncomplete)
		}
		if _, err := uuid.Parse(workerID); err != nil {
			return nil, fmt.Errorf("row %d: %w", n, ErrWorkerNotFound)
		}
		if _, err := uuid.Parse(itemID); err != nil {
			return nil, fmt.Errorf("row %d: %w", n, ErrItemNotFound)
		}

		qty, err := production.ParseQuantity(r.ActualQty.String())
		if err != nil {
			return nil, fmt.Errorf("row %d: actual_qty: %w: %w", n, ErrInvalidQuantity, err)
		}
		actuals[i] = qty

		key := pair{workerID, itemID}
		if first, dup := seen[key]; dup {
			return nil, fmt.Errorf("row %d repeats row %d: %w", n, first, ErrEntryDuplicateRow)
		}
		seen[key] = n
		workerIDs = append(workerIDs, workerID)
		itemIDs = append(itemIDs, itemID)
	}

	workers, err := s.repo.Worker.GetByIDs(ctx, uniqueStrings(workerIDs))
	if err != nil {
		s.logger.Error("load workers failed", zap.Error(err))
		return nil, err
	}
	items, err := s.repo.Item.GetByIDs(ctx, uniqueStrings(itemIDs))
	if err != nil {
		s.logger.Error("load items failed", zap.Error(err))
		return nil, err
	}
	workerByID := make(map[string]*model.Worker, len(workers))
	for i := range workers {
		workerByID[workers[i].WorkerID] = &workers[i]
	}
	itemByID := make(map[string]*model.Item, len(items))
	for i := range items {
		itemByID[items[i].ItemID] = &items[i]
	}

	rows := make([]validRow, 0, len(in))
	for i := range in {
		n := i + 1
		w, ok := workerByID[workerIDs[i]]
		if !ok {
			return nil, fmt.Errorf("row %d: %w", n, ErrWorkerNotFound)
		}
		if !w.IsActive {
			return nil, fmt.Errorf("row %d: %s: %w", n, w.Name, ErrWorkerInactive)
		}
		it, ok := itemByID[itemIDs[i]]
		if !ok {
			return nil, fmt.Errorf("row %d: %w", n, ErrItemNotFound)
		}
		if !it.IsActive {
			return nil, fmt.Errorf("row %d: %s: %w", n, it.Name, ErrItemInactive)
		}
		rows = append(rows, validRow{index: n, worker: w, item: it, actual: actuals[i]})
	}
	return rows, nil
}

// ────────────────────── NewRow ──────────────────────

func (s *productionService) NewRow(ctx context.Context, identity production.Identity, req *dto.NewRowRequest) (*dto.NewRowResponse, error) {
	if _, err := s.authorizedSection(ctx, identity, req.SectionID); err != nil {
		return nil, err
	}

	workers, err := s.repo.Worker.List(ctx, false)
	if err != nil {
		s.logger.Error("list workers failed", zap.Error(err))
		return nil, err
	}
	items, err := s.repo.Item.List(ctx, false)
	if err != nil {
		s.logger.Error("list items failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.NewRowResponse{
		Index:     req.Index,
		NextIndex: req.Index + 1,
		Workers:   make([]dto.OptionResponse, 0, len(workers)),
		Items:     make([]dto.OptionResponse, 0, len(items)),
	}
	for _, w := range workers {
		resp.Workers = append(resp.Workers, dto.OptionResponse{ID: w.WorkerID, Name: w.Name, Code: w.EmployeeCode})
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OptionResponse{ID: it.ItemID, Name: it.Name, Code: it.SKU, Unit: it.Unit})
	}
	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *productionService) List(ctx context.Context, identity production.Identity, req *dto.EntryListRequest) ([]dto.ProductionEntryResponse, error) {
	if req.SectionID != "" {
		if _, err := s.authorizedSection(ctx, identity, req.SectionID); err != nil {
			return nil, err
		}
	}
	day, err := resolveDay(req.Date, s.now, s.cfg.Location())
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ProductionEntry.ListByDate(ctx, day, req.SectionID)
	if err != nil {
		s.logger.Error("list production entries failed", zap.String("date", formatDate(day)), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProductionEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toEntryResponse(&entries[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *productionService) GetByID(ctx context.Context, id string) (*dto.ProductionEntryResponse, error) {
	entry, err := s.repo.ProductionEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("query production entry failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// ────────────────────── AvailableSections ──────────────────────

func (s *productionService) AvailableSections(ctx context.Context, identity production.Identity) ([]dto.SectionResponse, error) {
	var (
		sections []model.Section
		err      error
	)
	switch {
	case identity.IsAdmin():
		sections, err = s.repo.Section.List(ctx, false)
	case identity.Role == production.RoleSupervisor:
		sections, err = s.repo.Section.ListBySupervisor(ctx, identity.UserID)
	}
	if err != nil {
		s.logger.Error("list available sections failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		result = append(result, *toSectionResponse(&sections[i]))
	}
	return result, nil
}

// ── internal helpers ──

// authorizedSection loads the section with its supervisors and applies the capability check.
func (s *productionService) authorizedSection(ctx context.Context, identity production.Identity, sectionID string) (*model.Section, error) {
	section, err := s.repo.Section.GetByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("query section failed", zap.String("id", sectionID), zap.Error(err))
		return nil, err
	}
	if !production.CanSubmitFor(identity, section.SupervisorIDs()) {
		s.logger.Warn("section permission denied",
			zap.String("user_id", identity.UserID), zap.String("role", identity.Role), zap.String("section_id", sectionID))
		return nil, ErrSectionPermissionDenied
	}
	return section, nil
}

func toEntryResponse(e *model.ProductionEntry) *dto.ProductionEntryResponse {
	resp := &dto.ProductionEntryResponse{
		ID:            e.ProductionEntryID,
		EntryDate:     formatDate(e.EntryDate),
		SectionID:     e.SectionID,
		WorkerID:      e.WorkerID,
		ItemID:        e.ItemID,
		TargetQty:     fixed(e.TargetQty),
		ActualQty:     fixed(e.ActualQty),
		ShiftHours:    fixed(e.ShiftHours),
		OvertimeHours: fixed(e.OvertimeHours),
		TargetMet:     e.TargetMet,
		CreatedAt:     formatTimestamp(e.CreatedAt),
	}
	if e.CreatedBy != nil {
		resp.CreatedBy = *e.CreatedBy
	}
	if e.Section != nil {
		resp.SectionName = e.Section.Name
	}
	if e.Worker != nil {
		resp.WorkerName = e.Worker.Name
	}
	if e.Item != nil {
		resp.ItemName = e.Item.Name
		resp.Unit = e.Item.Unit
	}
	return resp
}
