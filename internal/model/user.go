package model

// User login account (table users)
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username           string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'viewer'"     json:"role"`
	IsActive           bool   `gorm:"not null;default:true"                          json:"is_active"`
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }
