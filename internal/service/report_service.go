package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/config"
	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/production"
	"github.com/Diwak4r/ERP-System/internal/repository"
)

// ── Report errors ──

var (
	ErrReportDateRangeInvalid = errors.New("start_date must not be after end_date")
	ErrReportDateRangeTooLong = errors.New("date range is limited to 366 days")
)

const maxHistorySpanDays = 366

// ReportService read-only grouped aggregations over production entries
type ReportService interface {
	// DailySummary per-item and per-worker actual totals for one day.
	DailySummary(ctx context.Context, req *dto.ReportRequest) (*dto.DailySummaryResponse, error)
	// ItemAggregate per-item target attainment for one day.
	ItemAggregate(ctx context.Context, req *dto.ReportRequest) (*dto.ItemAggregateResponse, error)
	// WorkerHistory per-day totals of one worker in one section over an inclusive range.
	WorkerHistory(ctx context.Context, req *dto.WorkerHistoryRequest) (*dto.WorkerHistoryResponse, error)
}

type reportService struct {
	cfg    *config.ProductionConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a ReportService
func NewReportService(cfg *config.ProductionConfig, repo *repository.Repository, logger *zap.Logger, now func() time.Time) ReportService {
	return &reportService{cfg: cfg, repo: repo, logger: logger, now: now}
}

// ────────────────────── DailySummary ──────────────────────

func (s *reportService) DailySummary(ctx context.Context, req *dto.ReportRequest) (*dto.DailySummaryResponse, error) {
	day, err := s.scope(ctx, req)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Report.ItemTotals(ctx, day, req.SectionID)
	if err != nil {
		s.logger.Error("report item totals failed", zap.Error(err))
		return nil, err
	}
	workers, err := s.repo.Report.WorkerTotals(ctx, day, req.SectionID)
	if err != nil {
		s.logger.Error("report worker totals failed", zap.Error(err))
		return nil, err
	}
	count, err := s.repo.Report.DistinctWorkers(ctx, day, req.SectionID)
	if err != nil {
		s.logger.Error("report worker count failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.DailySummaryResponse{
		Date:        formatDate(day),
		SectionID:   req.SectionID,
		PerItem:     make([]dto.ItemTotalRow, 0, len(items)),
		PerWorker:   make([]dto.WorkerTotalRow, 0, len(workers)),
		WorkerCount: count,
	}
	for _, it := range items {
		resp.PerItem = append(resp.PerItem, dto.ItemTotalRow{
			ItemID:      it.ItemID,
			ItemName:    it.ItemName,
			Unit:        it.Unit,
			TotalActual: fixed(it.TotalActual),
		})
	}
	for _, w := range workers {
		resp.PerWorker = append(resp.PerWorker, dto.WorkerTotalRow{
			WorkerID:    w.WorkerID,
			WorkerName:  w.WorkerName,
			TotalActual: fixed(w.TotalActual),
		})
	}
	return resp, nil
}

// ────────────────────── ItemAggregate ──────────────────────

func (s *reportService) ItemAggregate(ctx context.Context, req *dto.ReportRequest) (*dto.ItemAggregateResponse, error) {
	day, err := s.scope(ctx, req)
	if err != nil {
		return nil, err
	}

	aggs, err := s.repo.Report.ItemAggregates(ctx, day, req.SectionID)
	if err != nil {
		s.logger.Error("report item aggregates failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.ItemAggregateResponse{
		Date:      formatDate(day),
		SectionID: req.SectionID,
		Items:     make([]dto.ItemAggregateRow, 0, len(aggs)),
	}
	for _, a := range aggs {
		resp.Items = append(resp.Items, dto.ItemAggregateRow{
			ItemID:      a.ItemID,
			ItemName:    a.ItemName,
			TotalTarget: fixed(a.TotalTarget),
			TotalActual: fixed(a.TotalActual),
			HitCount:    a.HitCount,
			EntryCount:  a.EntryCount,
			HitRate:     fixed(production.HitRate(a.HitCount, a.EntryCount)),
		})
	}
	return resp, nil
}

// ────────────────────── WorkerHistory ──────────────────────

func (s *reportService) WorkerHistory(ctx context.Context, req *dto.WorkerHistoryRequest) (*dto.WorkerHistoryResponse, error) {
	if _, err := s.repo.Worker.GetByID(ctx, req.WorkerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		s.logger.Error("query worker failed", zap.String("id", req.WorkerID), zap.Error(err))
		return nil, err
	}
	if err := s.ensureSection(ctx, req.SectionID); err != nil {
		return nil, err
	}

	end, err := resolveDay(req.EndDate, s.now, s.cfg.Location())
	if err != nil {
		return nil, err
	}
	var start time.Time
	if req.StartDate == "" {
		days := s.cfg.HistoryDays
		if days <= 0 {
			days = 7
		}
		start = end.AddDate(0, 0, -(days - 1))
	} else if start, err = production.ParseDate(req.StartDate); err != nil {
		return nil, ErrInvalidDate
	}
	if start.After(end) {
		return nil, ErrReportDateRangeInvalid
	}
	if end.Sub(start) >= maxHistorySpanDays*24*time.Hour {
		return nil, ErrReportDateRangeTooLong
	}

	days, err := s.repo.Report.WorkerDayTotals(ctx, req.WorkerID, req.SectionID, start, end)
	if err != nil {
		s.logger.Error("report worker history failed", zap.String("worker_id", req.WorkerID), zap.Error(err))
		return nil, err
	}

	resp := &dto.WorkerHistoryResponse{
		WorkerID:  req.WorkerID,
		SectionID: req.SectionID,
		StartDate: formatDate(start),
		EndDate:   formatDate(end),
		Rows:      make([]dto.WorkerHistoryRow, 0, len(days)),
		Chart: dto.ChartSeries{
			Labels:  make([]string, 0, len(days)),
			Targets: make([]float64, 0, len(days)),
			Actuals: make([]float64, 0, len(days)),
		},
	}
	for _, d := range days {
		label := formatDate(d.EntryDate)
		resp.Rows = append(resp.Rows, dto.WorkerHistoryRow{
			Date:        label,
			TotalTarget: fixed(d.TotalTarget),
			TotalActual: fixed(d.TotalActual),
			TargetMet:   production.DayTargetMet(d.TotalActual, d.TotalTarget),
		})
		resp.Chart.Labels = append(resp.Chart.Labels, label)
		resp.Chart.Targets = append(resp.Chart.Targets, d.TotalTarget.InexactFloat64())
		resp.Chart.Actuals = append(resp.Chart.Actuals, d.TotalActual.InexactFloat64())
	}
	return resp, nil
}

// ── internal helpers ──

// scope resolves the report day and checks the optional section.
func (s *reportService) scope(ctx context.Context, req *dto.ReportRequest) (time.Time, error) {
	day, err := resolveDay(req.Date, s.now, s.cfg.Location())
	if err != nil {
		return time.Time{}, err
	}
	if req.SectionID != "" {
		if err := s.ensureSection(ctx, req.SectionID); err != nil {
			return time.Time{}, err
		}
	}
	return day, nil
}

func (s *reportService) ensureSection(ctx context.Context, id string) error {
	if _, err := s.repo.Section.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		s.logger.Error("query section failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
