package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/service"
	pkgerrors "github.com/Diwak4r/ERP-System/pkg/errors"
	"github.com/Diwak4r/ERP-System/pkg/response"
)

// TargetRuleHandler target rule HTTP handler
type TargetRuleHandler struct {
	ruleSvc service.TargetRuleService
}

// NewTargetRuleHandler creates a TargetRuleHandler
func NewTargetRuleHandler(ruleSvc service.TargetRuleService) *TargetRuleHandler {
	return &TargetRuleHandler{ruleSvc: ruleSvc}
}

// List target rules, optionally filtered by section and item
// GET /api/v1/target-rules
func (h *TargetRuleHandler) List(c *gin.Context) {
	var req dto.TargetRuleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	list, err := h.ruleSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleTargetRuleError(c, err)
		return
	}
	response.OK(c, list)
}

// Get target rule detail
// GET /api/v1/target-rules/:id
func (h *TargetRuleHandler) Get(c *gin.Context) {
	rule, err := h.ruleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleTargetRuleError(c, err)
		return
	}
	response.OK(c, rule)
}

// Create creates a target rule
// POST /api/v1/target-rules
func (h *TargetRuleHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTargetRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	rule, err := h.ruleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleTargetRuleError(c, err)
		return
	}
	response.Created(c, rule)
}

// Update updates a target rule; the request carries the version it was read at
// PUT /api/v1/target-rules/:id
func (h *TargetRuleHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTargetRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	rule, err := h.ruleSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleTargetRuleError(c, err)
		return
	}
	response.OK(c, rule)
}

// Delete deletes a target rule
// DELETE /api/v1/target-rules/:id
func (h *TargetRuleHandler) Delete(c *gin.Context) {
	if err := h.ruleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleTargetRuleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Resolve returns the rule governing a section and item on a date
// GET /api/v1/target-rules/resolve?section_id=&item_id=&date=
func (h *TargetRuleHandler) Resolve(c *gin.Context) {
	var req dto.ResolveTargetRuleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.ruleSvc.Resolve(c.Request.Context(), &req)
	if err != nil {
		handleTargetRuleError(c, err)
		return
	}
	response.OK(c, result)
}

// Calendar target rule validity intervals as an iCalendar feed
// GET /api/v1/target-rules/calendar.ics?section_id=&item_id=
func (h *TargetRuleHandler) Calendar(c *gin.Context) {
	var req dto.TargetRuleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	body, err := h.ruleSvc.Calendar(c.Request.Context(), &req)
	if err != nil {
		handleTargetRuleError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=target-rules.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func handleTargetRuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTargetRuleNotFound):
		response.NotFound(c, 16001, err.Error())
	case errors.Is(err, service.ErrTargetRuleExists):
		response.Conflict(c, 16002, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 16003, err.Error())
	case errors.Is(err, service.ErrTargetRuleDateInvalid):
		response.BadRequest(c, 16004, err.Error())
	case errors.Is(err, service.ErrInvalidQuantity):
		response.BadRequest(c, 16005, err.Error())
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 16006, err.Error())
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrItemNotFound):
		response.NotFound(c, 15001, err.Error())
	default:
		response.InternalError(c)
	}
}
