package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/model"
	"github.com/Diwak4r/ERP-System/internal/production"
	"github.com/Diwak4r/ERP-System/internal/repository"
)

// ── Section errors ──

var (
	ErrSectionNotFound         = errors.New("section not found")
	ErrSectionCodeExists       = errors.New("section code already exists")
	ErrSectionInUse            = errors.New("section has production entries and cannot be deleted")
	ErrSectionInactive         = errors.New("section is inactive")
	ErrSupervisorInvalid       = errors.New("supervisors must be existing users with the supervisor role")
	ErrSectionPermissionDenied = errors.New("you are not allowed to record production for this section")
)

// SectionService section master data and supervisor assignment
type SectionService interface {
	Create(ctx context.Context, req *dto.CreateSectionRequest, callerID string) (*dto.SectionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SectionResponse, error)
	List(ctx context.Context, req *dto.ActiveFilterRequest) ([]dto.SectionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSectionRequest, callerID string) (*dto.SectionResponse, error)
	Delete(ctx context.Context, id string) error
	// SetSupervisors replaces the set of users authorized to submit for the section.
	SetSupervisors(ctx context.Context, id string, req *dto.SetSupervisorsRequest) (*dto.SectionResponse, error)
}

type sectionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSectionService creates a SectionService
func NewSectionService(repo *repository.Repository, logger *zap.Logger) SectionService {
	return &sectionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *sectionService) Create(ctx context.Context, req *dto.CreateSectionRequest, callerID string) (*dto.SectionResponse, error) {
	section := &model.Section{
		Name:     req.Name,
		Code:     req.Code,
		IsActive: true,
	}
	section.CreatedBy = &callerID
	section.UpdatedBy = &callerID

	if err := s.repo.Section.Create(ctx, section); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSectionCodeExists
		}
		s.logger.Error("create section failed", zap.Error(err))
		return nil, err
	}

	return toSectionResponse(section), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *sectionService) GetByID(ctx context.Context, id string) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("query section failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSectionResponse(section), nil
}

// ────────────────────── List ──────────────────────

func (s *sectionService) List(ctx context.Context, req *dto.ActiveFilterRequest) ([]dto.SectionResponse, error) {
	sections, err := s.repo.Section.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("list sections failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		result = append(result, *toSectionResponse(&sections[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *sectionService) Update(ctx context.Context, id string, req *dto.UpdateSectionRequest, callerID string) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("query section failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		section.Name = *req.Name
	}
	if req.Code != nil {
		section.Code = *req.Code
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}
	section.UpdatedBy = &callerID

	if err := s.repo.Section.Update(ctx, section); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSectionCodeExists
		}
		s.logger.Error("update section failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSectionResponse(section), nil
}

// ────────────────────── Delete ──────────────────────

func (s *sectionService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Section.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		s.logger.Error("query section failed", zap.String("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Section.CountEntries(ctx, id)
	if err != nil {
		s.logger.Error("count section entries failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrSectionInUse
	}

	// target rules and supervisor links cascade
	if err := s.repo.Section.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrSectionInUse
		}
		s.logger.Error("delete section failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── SetSupervisors ──────────────────────

func (s *sectionService) SetSupervisors(ctx context.Context, id string, req *dto.SetSupervisorsRequest) (*dto.SectionResponse, error) {
	if _, err := s.repo.Section.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("query section failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	userIDs := uniqueStrings(req.UserIDs)
	users, err := s.repo.User.GetByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Error("query users failed", zap.Error(err))
		return nil, err
	}
	if len(users) != len(userIDs) {
		return nil, ErrSupervisorInvalid
	}
	for _, u := range users {
		if u.Role != production.RoleSupervisor {
			return nil, ErrSupervisorInvalid
		}
	}

	if err := s.repo.Section.ReplaceSupervisors(ctx, id, userIDs); err != nil {
		s.logger.Error("replace supervisors failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("section supervisors replaced", zap.String("section_id", id), zap.Int("count", len(userIDs)))
	return s.GetByID(ctx, id)
}

// ── internal helpers ──

func toSectionResponse(section *model.Section) *dto.SectionResponse {
	return &dto.SectionResponse{
		ID:            section.SectionID,
		Name:          section.Name,
		Code:          section.Code,
		IsActive:      section.IsActive,
		SupervisorIDs: section.SupervisorIDs(),
		CreatedAt:     formatTimestamp(section.CreatedAt),
	}
}

// uniqueStrings drops blanks and duplicates, keeping first-seen order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
