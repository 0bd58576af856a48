package model

// Worker factory worker (table workers)
type Worker struct {
	WorkerID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"worker_id"`
	Name         string `gorm:"type:varchar(255);not null"                     json:"name"`
	EmployeeCode string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"employee_code"`
	IsDailyWage  bool   `gorm:"not null;default:false"                         json:"is_daily_wage"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName table name
func (Worker) TableName() string { return "workers" }
