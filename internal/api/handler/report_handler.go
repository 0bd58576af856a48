package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/service"
	"github.com/Diwak4r/ERP-System/pkg/response"
)

// ReportHandler reporting HTTP handler
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// DailySummary per-item and per-worker totals of a day
// GET /api/v1/reports/daily?date=&section_id=
func (h *ReportHandler) DailySummary(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.reportSvc.DailySummary(c.Request.Context(), &req)
	if err != nil {
		handleReportError(c, err)
		return
	}
	response.OK(c, result)
}

// ItemAggregate per-item target attainment of a day
// GET /api/v1/reports/item-aggregate?date=&section_id=
func (h *ReportHandler) ItemAggregate(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.reportSvc.ItemAggregate(c.Request.Context(), &req)
	if err != nil {
		handleReportError(c, err)
		return
	}
	response.OK(c, result)
}

// WorkerHistory per-day totals of a worker in a section
// GET /api/v1/reports/worker-history?worker_id=&section_id=&start_date=&end_date=
func (h *ReportHandler) WorkerHistory(c *gin.Context) {
	var req dto.WorkerHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.reportSvc.WorkerHistory(c.Request.Context(), &req)
	if err != nil {
		handleReportError(c, err)
		return
	}
	response.OK(c, result)
}

func handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrWorkerNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 18001, err.Error())
	case errors.Is(err, service.ErrReportDateRangeInvalid):
		response.BadRequest(c, 18002, err.Error())
	case errors.Is(err, service.ErrReportDateRangeTooLong):
		response.BadRequest(c, 18003, err.Error())
	default:
		response.InternalError(c)
	}
}
