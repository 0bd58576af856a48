package dto

// ── Section DTOs ──

// ActiveFilterRequest list filter shared by master data
type ActiveFilterRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// CreateSectionRequest create section
type CreateSectionRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	Code string `json:"code" binding:"required,min=1,max=50"`
}

// UpdateSectionRequest partial section update
type UpdateSectionRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=1,max=255"`
	Code     *string `json:"code"      binding:"omitempty,min=1,max=50"`
	IsActive *bool   `json:"is_active"`
}

// SetSupervisorsRequest replaces the supervisor set
type SetSupervisorsRequest struct {
	UserIDs []string `json:"user_ids" binding:"omitempty,dive,uuid"`
}

// SectionResponse section
type SectionResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	IsActive      bool     `json:"is_active"`
	SupervisorIDs []string `json:"supervisor_ids,omitempty"`
	CreatedAt     string   `json:"created_at"`
}
