package handler

import "github.com/Diwak4r/ERP-System/internal/service"

// Handler aggregate entry point for all handlers
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Section    *SectionHandler
	Worker     *WorkerHandler
	Item       *ItemHandler
	TargetRule *TargetRuleHandler
	Production *ProductionHandler
	Report     *ReportHandler
	Export     *ExportHandler
}

// NewHandler creates the Handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Section:    NewSectionHandler(svc.Section, svc.Production),
		Worker:     NewWorkerHandler(svc.Worker),
		Item:       NewItemHandler(svc.Item),
		TargetRule: NewTargetRuleHandler(svc.TargetRule),
		Production: NewProductionHandler(svc.Production),
		Report:     NewReportHandler(svc.Report),
		Export:     NewExportHandler(svc.Export),
	}
}
