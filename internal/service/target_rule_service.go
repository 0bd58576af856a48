package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/config"
	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/model"
	"github.com/Diwak4r/ERP-System/internal/production"
	"github.com/Diwak4r/ERP-System/internal/repository"
)

// ── Target rule errors ──

var (
	ErrTargetRuleNotFound    = errors.New("target rule not found")
	ErrTargetRuleDateInvalid = errors.New("end_date must not be before start_date")
	ErrTargetRuleExists      = errors.New("a target rule with the same section, item and interval already exists")
)

// TargetRuleService target rules and their resolution
type TargetRuleService interface {
	Create(ctx context.Context, req *dto.CreateTargetRuleRequest, callerID string) (*dto.TargetRuleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TargetRuleResponse, error)
	List(ctx context.Context, req *dto.TargetRuleListRequest) ([]dto.TargetRuleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTargetRuleRequest, callerID string) (*dto.TargetRuleResponse, error)
	Delete(ctx context.Context, id string) error
	// Resolve returns the rule governing (section, item) on date, or zero
	// defaults plus a warning when none applies.
	Resolve(ctx context.Context, req *dto.ResolveTargetRuleRequest) (*dto.ResolveTargetRuleResponse, error)
	// Calendar renders the filtered rules as an iCalendar feed.
	Calendar(ctx context.Context, req *dto.TargetRuleListRequest) (string, error)
}

type targetRuleService struct {
	cfg    *config.ProductionConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewTargetRuleService creates a TargetRuleService
func NewTargetRuleService(cfg *config.ProductionConfig, repo *repository.Repository, logger *zap.Logger, now func() time.Time) TargetRuleService {
	return &targetRuleService{cfg: cfg, repo: repo, logger: logger, now: now}
}

// resolveTargetRule picks the active rule among those covering day.
// Returns (nil, nil) when no rule applies.
func resolveTargetRule(ctx context.Context, repo *repository.Repository, sectionID, itemID string, day time.Time) (*model.TargetRule, error) {
	candidates, err := repo.TargetRule.ListCovering(ctx, sectionID, itemID, day)
	if err != nil {
		return nil, err
	}
	rule, ok := production.SelectActive(candidates, model.TargetRule.Window, day)
	if !ok {
		return nil, nil
	}
	return &rule, nil
}

func noTargetWarning(itemName string) string {
	return fmt.Sprintf("No target rule found for %s; overtime set to 0", itemName)
}

// ────────────────────── Create ──────────────────────

func (s *targetRuleService) Create(ctx context.Context, req *dto.CreateTargetRuleRequest, callerID string) (*dto.TargetRuleResponse, error) {
	section, item, err := s.loadPair(ctx, req.SectionID, req.ItemID)
	if err != nil {
		return nil, err
	}

	targetQty, err := production.ParseQuantity(req.TargetQty.String())
	if err != nil {
		return nil, fmt.Errorf("target_qty: %w: %w", ErrInvalidQuantity, err)
	}
	shiftHours, err := production.ParseShiftHours(req.ShiftHours.String())
	if err != nil {
		return nil, fmt.Errorf("shift_hours: %w: %w", ErrInvalidQuantity, err)
	}
	window, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	rule := &model.TargetRule{
		SectionID:  section.SectionID,
		ItemID:     item.ItemID,
		TargetQty:  targetQty,
		ShiftHours: shiftHours,
		StartDate:  window.Start,
		EndDate:    window.End,
	}
	rule.Version = 1
	rule.CreatedBy = &callerID
	rule.UpdatedBy = &callerID

	if err := s.repo.TargetRule.Create(ctx, rule); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTargetRuleExists
		}
		s.logger.Error("create target rule failed", zap.Error(err))
		return nil, err
	}
	rule.Section, rule.Item = section, item

	resp := toTargetRuleResponse(rule)
	resp.OverlappingRuleIDs, err = s.overlaps(ctx, rule)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *targetRuleService) GetByID(ctx context.Context, id string) (*dto.TargetRuleResponse, error) {
	rule, err := s.repo.TargetRule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetRuleNotFound
		}
		s.logger.Error("query target rule failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTargetRuleResponse(rule), nil
}

// ────────────────────── List ──────────────────────

func (s *targetRuleService) List(ctx context.Context, req *dto.TargetRuleListRequest) ([]dto.TargetRuleResponse, error) {
	rules, err := s.repo.TargetRule.List(ctx, repository.TargetRuleFilter{
		SectionID: req.SectionID,
		ItemID:    req.ItemID,
	})
	if err != nil {
		s.logger.Error("list target rules failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TargetRuleResponse, 0, len(rules))
	for i := range rules {
		result = append(result, *toTargetRuleResponse(&rules[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *targetRuleService) Update(ctx context.Context, id string, req *dto.UpdateTargetRuleRequest, callerID string) (*dto.TargetRuleResponse, error) {
	rule, err := s.repo.TargetRule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetRuleNotFound
		}
		s.logger.Error("query target rule failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.TargetQty != nil {
		v, err := production.ParseQuantity(req.TargetQty.String())
		if err != nil {
			return nil, fmt.Errorf("target_qty: %w: %w", ErrInvalidQuantity, err)
		}
		rule.TargetQty = v
	}
	if req.ShiftHours != nil {
		v, err := production.ParseShiftHours(req.ShiftHours.String())
		if err != nil {
			return nil, fmt.Errorf("shift_hours: %w: %w", ErrInvalidQuantity, err)
		}
		rule.ShiftHours = v
	}
	if req.StartDate != nil {
		d, err := production.ParseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("start_date: %w", ErrInvalidDate)
		}
		rule.StartDate = d
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			rule.EndDate = nil
		} else {
			d, err := production.ParseDate(*req.EndDate)
			if err != nil {
				return nil, fmt.Errorf("end_date: %w", ErrInvalidDate)
			}
			rule.EndDate = &d
		}
	}
	if !rule.Window().Valid() {
		return nil, ErrTargetRuleDateInvalid
	}

	// the client's version guards against lost updates
	rule.Version = req.Version
	rule.UpdatedBy = &callerID

	if err := s.repo.TargetRule.Update(ctx, rule); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTargetRuleExists
		}
		s.logger.Warn("update target rule failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toTargetRuleResponse(rule)
	resp.OverlappingRuleIDs, err = s.overlaps(ctx, rule)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *targetRuleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.TargetRule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTargetRuleNotFound
		}
		s.logger.Error("query target rule failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.TargetRule.Delete(ctx, id); err != nil {
		s.logger.Error("delete target rule failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Resolve ──────────────────────

func (s *targetRuleService) Resolve(ctx context.Context, req *dto.ResolveTargetRuleRequest) (*dto.ResolveTargetRuleResponse, error) {
	_, item, err := s.loadPair(ctx, req.SectionID, req.ItemID)
	if err != nil {
		return nil, err
	}
	day, err := resolveDay(req.Date, s.now, s.cfg.Location())
	if err != nil {
		return nil, err
	}

	rule, err := resolveTargetRule(ctx, s.repo, req.SectionID, req.ItemID, day)
	if err != nil {
		s.logger.Error("resolve target rule failed",
			zap.String("section_id", req.SectionID), zap.String("item_id", req.ItemID), zap.Error(err))
		return nil, err
	}

	resp := &dto.ResolveTargetRuleResponse{Date: formatDate(day)}
	if rule == nil {
		resp.TargetQty = fixed(decimal.Zero)
		resp.ShiftHours = fixed(decimal.Zero)
		resp.Warning = noTargetWarning(item.Name)
		return resp, nil
	}
	resp.Rule = toTargetRuleResponse(rule)
	resp.TargetQty = fixed(rule.TargetQty)
	resp.ShiftHours = fixed(rule.ShiftHours)
	return resp, nil
}

// ────────────────────── Calendar ──────────────────────

// Calendar emits one all-day event per rule. Open-ended rules run until
// open_rule_horizon_days past the later of their start and today.
func (s *targetRuleService) Calendar(ctx context.Context, req *dto.TargetRuleListRequest) (string, error) {
	rules, err := s.repo.TargetRule.List(ctx, repository.TargetRuleFilter{
		SectionID: req.SectionID,
		ItemID:    req.ItemID,
	})
	if err != nil {
		s.logger.Error("list target rules failed", zap.Error(err))
		return "", err
	}

	now := s.now()
	today := production.Today(now, s.cfg.Location())
	horizon := s.cfg.OpenRuleHorizonDays
	if horizon <= 0 {
		horizon = 365
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//production-tracker//target rules//EN")
	cal.SetXWRCalName("Production targets")

	for i := range rules {
		r := &rules[i]
		last := r.StartDate
		if r.EndDate != nil {
			last = *r.EndDate
		} else {
			if today.After(last) {
				last = today
			}
			last = last.AddDate(0, 0, horizon)
		}

		event := cal.AddEvent(r.TargetRuleID + "@production-tracker")
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(r.StartDate)
		// DTEND is exclusive for all-day events
		event.SetAllDayEndAt(last.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("%s / %s: target %s",
			sectionName(r.Section), itemName(r.Item), fixed(r.TargetQty)))
		event.SetDescription(fmt.Sprintf("target_qty=%s shift_hours=%s start=%s end=%s",
			fixed(r.TargetQty), fixed(r.ShiftHours), formatDate(r.StartDate), endLabel(r.EndDate)))
	}

	return cal.Serialize(), nil
}

// ── internal helpers ──

// loadPair fetches section and item, mapping misses to NotFound.
func (s *targetRuleService) loadPair(ctx context.Context, sectionID, itemID string) (*model.Section, *model.Item, error) {
	section, err := s.repo.Section.GetByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSectionNotFound
		}
		s.logger.Error("query section failed", zap.String("id", sectionID), zap.Error(err))
		return nil, nil, err
	}
	item, err := s.repo.Item.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrItemNotFound
		}
		s.logger.Error("query item failed", zap.String("id", itemID), zap.Error(err))
		return nil, nil, err
	}
	return section, item, nil
}

// overlaps lists other rules of the same pair sharing a day with rule.
func (s *targetRuleService) overlaps(ctx context.Context, rule *model.TargetRule) ([]string, error) {
	others, err := s.repo.TargetRule.ListOverlapping(ctx, rule.SectionID, rule.ItemID, rule.Window(), rule.TargetRuleID)
	if err != nil {
		s.logger.Error("query overlapping rules failed", zap.String("id", rule.TargetRuleID), zap.Error(err))
		return nil, err
	}
	if len(others) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(others))
	for _, o := range others {
		ids = append(ids, o.TargetRuleID)
	}
	s.logger.Info("target rule overlaps existing rules",
		zap.String("id", rule.TargetRuleID), zap.Strings("overlapping", ids))
	return ids, nil
}

func parseWindow(start string, end *string) (production.Window, error) {
	s, err := production.ParseDate(start)
	if err != nil {
		return production.Window{}, fmt.Errorf("start_date: %w", ErrInvalidDate)
	}
	w := production.Window{Start: s}
	if end != nil && *end != "" {
		e, err := production.ParseDate(*end)
		if err != nil {
			return production.Window{}, fmt.Errorf("end_date: %w", ErrInvalidDate)
		}
		w.End = &e
	}
	if !w.Valid() {
		return production.Window{}, ErrTargetRuleDateInvalid
	}
	return w, nil
}

func toTargetRuleResponse(r *model.TargetRule) *dto.TargetRuleResponse {
	resp := &dto.TargetRuleResponse{
		ID:         r.TargetRuleID,
		SectionID:  r.SectionID,
		ItemID:     r.ItemID,
		TargetQty:  fixed(r.TargetQty),
		ShiftHours: fixed(r.ShiftHours),
		StartDate:  formatDate(r.StartDate),
		EndDate:    formatDatePtr(r.EndDate),
		Version:    r.Version,
	}
	if r.Section != nil {
		resp.SectionName = r.Section.Name
	}
	if r.Item != nil {
		resp.ItemName = r.Item.Name
	}
	return resp
}

func sectionName(s *model.Section) string {
	if s == nil {
		return "section"
	}
	return s.Name
}

func itemName(it *model.Item) string {
	if it == nil {
		return "item"
	}
	return it.Name
}

func endLabel(end *time.Time) string {
	if end == nil {
		return "open"
	}
	return formatDate(*end)
}
