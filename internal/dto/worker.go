package dto

// ── Worker DTOs ──

// CreateWorkerRequest create worker
type CreateWorkerRequest struct {
	Name         string `json:"name"          binding:"required,min=1,max=255"`
	EmployeeCode string `json:"employee_code" binding:"required,min=1,max=50"`
	IsDailyWage  bool   `json:"is_daily_wage"`
}

// UpdateWorkerRequest partial worker update
type UpdateWorkerRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=255"`
	EmployeeCode *string `json:"employee_code" binding:"omitempty,min=1,max=50"`
	IsDailyWage  *bool   `json:"is_daily_wage"`
	IsActive     *bool   `json:"is_active"`
}

// WorkerResponse worker
type WorkerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	IsDailyWage  bool   `json:"is_daily_wage"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

// ImportWorkerResponse bulk worker import result
type ImportWorkerResponse struct {
	Total   int                 `json:"total"`
	Success int                 `json:"success"`
	Failed  int                 `json:"failed"`
	Errors  []ImportWorkerError `json:"errors,omitempty"`
}

// ImportWorkerError rejected import row
type ImportWorkerError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
