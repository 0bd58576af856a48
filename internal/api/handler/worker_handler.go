package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/service"
	"github.com/Diwak4r/ERP-System/pkg/response"
)

// WorkerHandler worker HTTP handler
type WorkerHandler struct {
	workerSvc service.WorkerService
}

// NewWorkerHandler creates a WorkerHandler
func NewWorkerHandler(workerSvc service.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerSvc: workerSvc}
}

// List workers
// GET /api/v1/workers
func (h *WorkerHandler) List(c *gin.Context) {
	var req dto.ActiveFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	list, err := h.workerSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleWorkerError(c, err)
		return
	}
	response.OK(c, list)
}

// Get worker detail
// GET /api/v1/workers/:id
func (h *WorkerHandler) Get(c *gin.Context) {
	worker, err := h.workerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleWorkerError(c, err)
		return
	}
	response.OK(c, worker)
}

// Create creates a worker
// POST /api/v1/workers
func (h *WorkerHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	worker, err := h.workerSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleWorkerError(c, err)
		return
	}
	response.Created(c, worker)
}

// Update updates a worker
// PUT /api/v1/workers/:id
func (h *WorkerHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	worker, err := h.workerSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleWorkerError(c, err)
		return
	}
	response.OK(c, worker)
}

// Delete deletes an unreferenced worker
// DELETE /api/v1/workers/:id
func (h *WorkerHandler) Delete(c *gin.Context) {
	if err := h.workerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleWorkerError(c, err)
		return
	}
	response.OK(c, nil)
}

// Import bulk-creates workers from an xlsx upload
// POST /api/v1/workers/import
//
// multipart/form-data, field="file". Columns: name, employee_code, daily_wage (optional).
func (h *WorkerHandler) Import(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 14010, "upload an xlsx file in the \"file\" field")
		return
	}
	defer file.Close()

	rows, err := h.workerSvc.ParseImportFile(file)
	if err != nil {
		handleWorkerError(c, err)
		return
	}

	result, err := h.workerSvc.ImportWorkers(c.Request.Context(), rows, callerID)
	if err != nil {
		handleWorkerError(c, err)
		return
	}
	response.OK(c, result)
}

func handleWorkerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkerNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrWorkerCodeExists):
		response.Conflict(c, 14002, err.Error())
	case errors.Is(err, service.ErrWorkerInUse):
		response.Conflict(c, 14003, err.Error())
	case errors.Is(err, service.ErrImportUnreadable):
		response.ErrorWithDetails(c, http.StatusBadRequest, 14011, service.ErrImportUnreadable.Error(), err.Error())
	case errors.Is(err, service.ErrImportNoData):
		response.BadRequest(c, 14012, err.Error())
	case errors.Is(err, service.ErrImportTooManyRows):
		response.BadRequest(c, 14013, err.Error())
	case errors.Is(err, service.ErrImportBadHeader):
		response.BadRequest(c, 14014, err.Error())
	default:
		response.InternalError(c)
	}
}
