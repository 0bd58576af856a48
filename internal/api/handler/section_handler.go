package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/service"
	"github.com/Diwak4r/ERP-System/pkg/response"
)

// SectionHandler section HTTP handler
type SectionHandler struct {
	sectionSvc    service.SectionService
	productionSvc service.ProductionService
}

// NewSectionHandler creates a SectionHandler
func NewSectionHandler(sectionSvc service.SectionService, productionSvc service.ProductionService) *SectionHandler {
	return &SectionHandler{sectionSvc: sectionSvc, productionSvc: productionSvc}
}

// List sections
// GET /api/v1/sections
func (h *SectionHandler) List(c *gin.Context) {
	var req dto.ActiveFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	list, err := h.sectionSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleSectionError(c, err)
		return
	}
	response.OK(c, list)
}

// Available sections the caller may record production for
// GET /api/v1/sections/available
func (h *SectionHandler) Available(c *gin.Context) {
	identity, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	list, err := h.productionSvc.AvailableSections(c.Request.Context(), identity)
	if err != nil {
		handleSectionError(c, err)
		return
	}
	response.OK(c, list)
}

// Get section detail with supervisor ids
// GET /api/v1/sections/:id
func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.sectionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleSectionError(c, err)
		return
	}
	response.OK(c, section)
}

// Create creates a section
// POST /api/v1/sections
func (h *SectionHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	section, err := h.sectionSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleSectionError(c, err)
		return
	}
	response.Created(c, section)
}

// Update updates a section
// PUT /api/v1/sections/:id
func (h *SectionHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	section, err := h.sectionSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleSectionError(c, err)
		return
	}
	response.OK(c, section)
}

// Delete deletes an unreferenced section
// DELETE /api/v1/sections/:id
func (h *SectionHandler) Delete(c *gin.Context) {
	if err := h.sectionSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleSectionError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetSupervisors replaces the section's supervisor set
// PUT /api/v1/sections/:id/supervisors
func (h *SectionHandler) SetSupervisors(c *gin.Context) {
	var req dto.SetSupervisorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	section, err := h.sectionSvc.SetSupervisors(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleSectionError(c, err)
		return
	}
	response.OK(c, section)
}

func handleSectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrSectionCodeExists):
		response.Conflict(c, 13002, err.Error())
	case errors.Is(err, service.ErrSectionInUse):
		response.Conflict(c, 13003, err.Error())
	case errors.Is(err, service.ErrSupervisorInvalid):
		response.BadRequest(c, 13004, err.Error())
	default:
		response.InternalError(c)
	}
}
