package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Diwak4r/ERP-System/config"
	"github.com/Diwak4r/ERP-System/internal/production"
	"github.com/Diwak4r/ERP-System/internal/repository"
	"github.com/Diwak4r/ERP-System/pkg/jwt"
)

// ── Errors shared across modules ──

var (
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// TokenBlacklist revokes tokens by jti. Implemented by pkg/redis.Client.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Service aggregate entry point for all services
type Service struct {
	Auth       AuthService
	User       UserService
	Section    SectionService
	Worker     WorkerService
	Item       ItemService
	TargetRule TargetRuleService
	Production ProductionService
	Report     ReportService
	Export     ExportService
}

// NewService builds the aggregate. blacklist may be nil when Redis is unavailable.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	clock := time.Now
	report := NewReportService(&cfg.Production, repo, logger, clock)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		User:       NewUserService(repo, logger),
		Section:    NewSectionService(repo, logger),
		Worker:     NewWorkerService(repo, logger),
		Item:       NewItemService(repo, logger),
		TargetRule: NewTargetRuleService(&cfg.Production, repo, logger, clock),
		Production: NewProductionService(&cfg.Production, repo, logger, clock),
		Report:     report,
		Export:     NewExportService(report, logger),
	}
}

// ── Helpers ──

const timestampLayout = "2006-01-02T15:04:05Z07:00"

func formatDate(t time.Time) string { return t.Format(production.DateLayout) }

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func formatTimestamp(t time.Time) string { return t.UTC().Format(timestampLayout) }

// fixed renders a NUMERIC(x,2) value.
func fixed(d decimal.Decimal) string { return d.StringFixed(2) }

// resolveDay parses s as a calendar day, defaulting to today in loc.
func resolveDay(s string, now func() time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		return production.Today(now(), loc), nil
	}
	d, err := production.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}
