package dto

// ── User DTOs ──

// UserListRequest user list query
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin supervisor viewer"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// CreateUserRequest admin creates an account
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,alphanum"`
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Role     string `json:"role"     binding:"required,oneof=admin supervisor viewer"`
}

// UpdateUserRequest partial user update
type UpdateUserRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=1,max=100"`
	Role     *string `json:"role"      binding:"omitempty,oneof=admin supervisor viewer"`
	IsActive *bool   `json:"is_active"`
}

// ResetPasswordResponse temporary password
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}
