package dto

// ── Item DTOs ──

// CreateItemRequest create item
type CreateItemRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	SKU  string `json:"sku"  binding:"required,min=1,max=100"`
	Unit string `json:"unit" binding:"omitempty,oneof=KG PCS OTHER"` // default PCS
}

// UpdateItemRequest partial item update
type UpdateItemRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=1,max=255"`
	SKU      *string `json:"sku"       binding:"omitempty,min=1,max=100"`
	Unit     *string `json:"unit"      binding:"omitempty,oneof=KG PCS OTHER"`
	IsActive *bool   `json:"is_active"`
}

// ItemResponse item
type ItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Unit      string `json:"unit"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}
