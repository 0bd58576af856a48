package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/model"
	"github.com/Diwak4r/ERP-System/internal/repository"
)

// ── Item errors ──

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrItemSKUExists   = errors.New("item sku already exists")
	ErrItemInUse       = errors.New("item has production entries and cannot be deleted")
	ErrItemInactive    = errors.New("item is inactive")
	ErrItemUnitInvalid = errors.New("unit must be KG, PCS or OTHER")
)

// ItemService item master data
type ItemService interface {
	Create(ctx context.Context, req *dto.CreateItemRequest, callerID string) (*dto.ItemResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ItemResponse, error)
	List(ctx context.Context, req *dto.ActiveFilterRequest) ([]dto.ItemResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateItemRequest, callerID string) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id string) error
}

type itemService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewItemService creates an ItemService
func NewItemService(repo *repository.Repository, logger *zap.Logger) ItemService {
	return &itemService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *itemService) Create(ctx context.Context, req *dto.CreateItemRequest, callerID string) (*dto.ItemResponse, error) {
	unit := req.Unit
	if unit == "" {
		unit = model.UnitPCS
	}
	if !model.ValidUnit(unit) {
		return nil, ErrItemUnitInvalid
	}

	item := &model.Item{
		Name:     req.Name,
		SKU:      req.SKU,
		Unit:     unit,
		IsActive: true,
	}
	item.CreatedBy = &callerID
	item.UpdatedBy = &callerID

	if err := s.repo.Item.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrItemSKUExists
		}
		s.logger.Error("create item failed", zap.Error(err))
		return nil, err
	}
	return toItemResponse(item), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *itemService) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := s.repo.Item.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("query item failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toItemResponse(item), nil
}

// ────────────────────── List ──────────────────────

func (s *itemService) List(ctx context.Context, req *dto.ActiveFilterRequest) ([]dto.ItemResponse, error) {
	items, err := s.repo.Item.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("list items failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, *toItemResponse(&items[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *itemService) Update(ctx context.Context, id string, req *dto.UpdateItemRequest, callerID string) (*dto.ItemResponse, error) {
	item, err := s.repo.Item.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("query item failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.SKU != nil {
		item.SKU = *req.SKU
	}
	if req.Unit != nil {
		if !model.ValidUnit(*req.Unit) {
			return nil, ErrItemUnitInvalid
		}
		item.Unit = *req.Unit
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.UpdatedBy = &callerID

	if err := s.repo.Item.Update(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrItemSKUExists
		}
		s.logger.Error("update item failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toItemResponse(item), nil
}

// ────────────────────── Delete ──────────────────────

func (s *itemService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Item.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		s.logger.Error("query item failed", zap.String("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Item.CountEntries(ctx, id)
	if err != nil {
		s.logger.Error("count item entries failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrItemInUse
	}

	if err := s.repo.Item.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrItemInUse
		}
		s.logger.Error("delete item failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── internal helpers ──

func toItemResponse(it *model.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        it.ItemID,
		Name:      it.Name,
		SKU:       it.SKU,
		Unit:      it.Unit,
		IsActive:  it.IsActive,
		CreatedAt: formatTimestamp(it.CreatedAt),
	}
}
