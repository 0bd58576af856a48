package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/service"
	"github.com/Diwak4r/ERP-System/pkg/response"
)

// ItemHandler item HTTP handler
type ItemHandler struct {
	itemSvc service.ItemService
}

// NewItemHandler creates an ItemHandler
func NewItemHandler(itemSvc service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

// List items
// GET /api/v1/items
func (h *ItemHandler) List(c *gin.Context) {
	var req dto.ActiveFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	list, err := h.itemSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleItemError(c, err)
		return
	}
	response.OK(c, list)
}

// Get item detail
// GET /api/v1/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.itemSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleItemError(c, err)
		return
	}
	response.OK(c, item)
}

// Create creates an item
// POST /api/v1/items
func (h *ItemHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	item, err := h.itemSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleItemError(c, err)
		return
	}
	response.Created(c, item)
}

// Update updates an item
// PUT /api/v1/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	item, err := h.itemSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleItemError(c, err)
		return
	}
	response.OK(c, item)
}

// Delete deletes an unreferenced item
// DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.itemSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleItemError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		response.NotFound(c, 15001, err.Error())
	case errors.Is(err, service.ErrItemSKUExists):
		response.Conflict(c, 15002, err.Error())
	case errors.Is(err, service.ErrItemInUse):
		response.Conflict(c, 15003, err.Error())
	case errors.Is(err, service.ErrItemUnitInvalid):
		response.BadRequest(c, 15004, err.Error())
	default:
		response.InternalError(c)
	}
}
