package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/service"
	"github.com/Diwak4r/ERP-System/pkg/response"
)

// ProductionHandler production entry HTTP handler
type ProductionHandler struct {
	productionSvc service.ProductionService
}

// NewProductionHandler creates a ProductionHandler
func NewProductionHandler(productionSvc service.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionSvc: productionSvc}
}

// Submit records a batch of entries for one section and day
// POST /api/v1/production/entries
func (h *ProductionHandler) Submit(c *gin.Context) {
	identity, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.SubmitEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.productionSvc.Submit(c.Request.Context(), identity, &req)
	if err != nil {
		handleProductionError(c, err)
		return
	}
	response.Created(c, result)
}

// NewRow choices for one more entry row
// GET /api/v1/production/entries/row?section_id=&index=
func (h *ProductionHandler) NewRow(c *gin.Context) {
	identity, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.NewRowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.productionSvc.NewRow(c.Request.Context(), identity, &req)
	if err != nil {
		handleProductionError(c, err)
		return
	}
	response.OK(c, result)
}

// List entries of a day
// GET /api/v1/production/entries?date=&section_id=
func (h *ProductionHandler) List(c *gin.Context) {
	identity, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.EntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	list, err := h.productionSvc.List(c.Request.Context(), identity, &req)
	if err != nil {
		handleProductionError(c, err)
		return
	}
	response.OK(c, list)
}

// Get entry detail
// GET /api/v1/production/entries/:id
func (h *ProductionHandler) Get(c *gin.Context) {
	entry, err := h.productionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleProductionError(c, err)
		return
	}
	response.OK(c, entry)
}

// Batch validation errors are wrapped with the offending row, so the
// wrapped text goes out as details.
func handleProductionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSectionPermissionDenied):
		response.Forbidden(c, 17001, err.Error())
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 17002, err.Error())
	case errors.Is(err, service.ErrWorkerNotFound):
		response.ErrorWithDetails(c, http.StatusNotFound, 14001, service.ErrWorkerNotFound.Error(), err.Error())
	case errors.Is(err, service.ErrItemNotFound):
		response.ErrorWithDetails(c, http.StatusNotFound, 15001, service.ErrItemNotFound.Error(), err.Error())
	case errors.Is(err, service.ErrSectionInactive):
		response.BadRequest(c, 13005, err.Error())
	case errors.Is(err, service.ErrWorkerInactive):
		response.ErrorWithDetails(c, http.StatusBadRequest, 14004, service.ErrWorkerInactive.Error(), err.Error())
	case errors.Is(err, service.ErrItemInactive):
		response.ErrorWithDetails(c, http.StatusBadRequest, 15005, service.ErrItemInactive.Error(), err.Error())
	case errors.Is(err, service.ErrEntryBatchEmpty):
		response.BadRequest(c, 17003, err.Error())
	case errors.Is(err, service.ErrEntryBatchTooLarge):
		response.ErrorWithDetails(c, http.StatusBadRequest, 17004, service.ErrEntryBatchTooLarge.Error(), err.Error())
	case errors.Is(err, service.ErrEntryRowIncomplete):
		response.ErrorWithDetails(c, http.StatusBadRequest, 17005, service.ErrEntryRowIncomplete.Error(), err.Error())
	case errors.Is(err, service.ErrEntryDuplicateRow):
		response.ErrorWithDetails(c, http.StatusBadRequest, 17006, service.ErrEntryDuplicateRow.Error(), err.Error())
	case errors.Is(err, service.ErrInvalidQuantity):
		response.ErrorWithDetails(c, http.StatusBadRequest, 17007, service.ErrInvalidQuantity.Error(), err.Error())
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 17008, err.Error())
	default:
		response.InternalError(c)
	}
}
