// Command seed creates an administrator and a small demo data set.
// Running it again leaves existing rows untouched.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/config"
	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/model"
	"github.com/Diwak4r/ERP-System/internal/production"
	"github.com/Diwak4r/ERP-System/internal/repository"
	"github.com/Diwak4r/ERP-System/internal/service"
	"github.com/Diwak4r/ERP-System/pkg/database"
	"github.com/Diwak4r/ERP-System/pkg/jwt"
	applogger "github.com/Diwak4r/ERP-System/pkg/logger"
)

const (
	defaultAdminPassword = "ChangeMe123!"
	// fixed so that reruns hit the unique rule interval instead of adding rules
	sampleRuleStart = "2024-01-01"
)

func main() {
	cfg, err := config.Load(os.Getenv("PROD_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s := &seeder{cfg: cfg, repo: repo, svc: svc, logger: logger}
	if err := s.run(ctx); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seeded sample data")
}

type seeder struct {
	cfg    *config.Config
	repo   *repository.Repository
	svc    *service.Service
	logger *zap.Logger
}

func (s *seeder) run(ctx context.Context) error {
	admin, err := s.ensureAdmin(ctx)
	if err != nil {
		return err
	}
	adminID := admin.UserID

	section, err := s.ensureSection(ctx, "Assembly", "ASM", adminID)
	if err != nil {
		return err
	}

	alice, err := s.ensureWorker(ctx, "Alice", "W1", adminID)
	if err != nil {
		return err
	}
	bob, err := s.ensureWorker(ctx, "Bob", "W2", adminID)
	if err != nil {
		return err
	}

	widget, err := s.ensureItem(ctx, "Widget", "ITM1", adminID)
	if err != nil {
		return err
	}
	gadget, err := s.ensureItem(ctx, "Gadget", "ITM2", adminID)
	if err != nil {
		return err
	}

	today := time.Now().In(s.cfg.Production.Location()).Format(production.DateLayout)
	for _, r := range []struct {
		itemID string
		target string
	}{
		{widget, "100"},
		{gadget, "80"},
	} {
		_, err := s.svc.TargetRule.Create(ctx, &dto.CreateTargetRuleRequest{
			SectionID:  section,
			ItemID:     r.itemID,
			TargetQty:  json.Number(r.target),
			ShiftHours: json.Number("8"),
			StartDate:  sampleRuleStart,
		}, adminID)
		if err != nil && !errors.Is(err, service.ErrTargetRuleExists) {
			return fmt.Errorf("create target rule: %w", err)
		}
	}

	// collisions with entries from a previous run come back in Failed
	result, err := s.svc.Production.Submit(ctx,
		production.Identity{UserID: adminID, Role: production.RoleAdmin},
		&dto.SubmitEntriesRequest{
			SectionID: section,
			EntryDate: today,
			Rows: []dto.EntryRowRequest{
				{WorkerID: alice, ItemID: widget, ActualQty: json.Number("110")},
				{WorkerID: bob, ItemID: gadget, ActualQty: json.Number("70")},
			},
		})
	if err != nil {
		return fmt.Errorf("submit entries: %w", err)
	}
	s.logger.Info("sample entries",
		zap.Int("created", len(result.Created)),
		zap.Int("already_present", len(result.Failed)),
	)
	return nil
}

func (s *seeder) ensureAdmin(ctx context.Context) (*model.User, error) {
	existing, err := s.repo.User.GetByUsername(ctx, "admin")
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up admin: %w", err)
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.User{
		Username:           "admin",
		Name:               "Administrator",
		PasswordHash:       string(hash),
		Role:               production.RoleAdmin,
		IsActive:           true,
		MustChangePassword: true,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.logger.Info("created admin user", zap.String("username", admin.Username))
	return admin, nil
}

func (s *seeder) ensureSection(ctx context.Context, name, code, callerID string) (string, error) {
	sections, err := s.repo.Section.List(ctx, true)
	if err != nil {
		return "", fmt.Errorf("list sections: %w", err)
	}
	for _, sec := range sections {
		if sec.Code == code {
			return sec.SectionID, nil
		}
	}
	created, err := s.svc.Section.Create(ctx, &dto.CreateSectionRequest{Name: name, Code: code}, callerID)
	if err != nil {
		return "", fmt.Errorf("create section %s: %w", code, err)
	}
	return created.ID, nil
}

func (s *seeder) ensureWorker(ctx context.Context, name, code, callerID string) (string, error) {
	existing, err := s.repo.Worker.GetByEmployeeCode(ctx, code)
	if err == nil {
		return existing.WorkerID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("look up worker %s: %w", code, err)
	}
	created, err := s.svc.Worker.Create(ctx, &dto.CreateWorkerRequest{Name: name, EmployeeCode: code}, callerID)
	if err != nil {
		return "", fmt.Errorf("create worker %s: %w", code, err)
	}
	return created.ID, nil
}

func (s *seeder) ensureItem(ctx context.Context, name, sku, callerID string) (string, error) {
	items, err := s.repo.Item.List(ctx, true)
	if err != nil {
		return "", fmt.Errorf("list items: %w", err)
	}
	for _, it := range items {
		if it.SKU == sku {
			return it.ItemID, nil
		}
	}
	created, err := s.svc.Item.Create(ctx, &dto.CreateItemRequest{Name: name, SKU: sku}, callerID)
	if err != nil {
		return "", fmt.Errorf("create item %s: %w", sku, err)
	}
	return created.ID, nil
}
