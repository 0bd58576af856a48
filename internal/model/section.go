package model

import "time"

// Section production area (table sections)
type Section struct {
	SectionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	Name      string `gorm:"type:varchar(255);not null"                     json:"name"`
	Code      string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"code"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Supervisors []SectionSupervisor `gorm:"foreignKey:SectionID;references:SectionID;constraint:OnDelete:CASCADE" json:"supervisors,omitempty"`
}

// TableName table name
func (Section) TableName() string { return "sections" }

// SupervisorIDs returns the user ids linked to the section. Supervisors must be preloaded.
func (s *Section) SupervisorIDs() []string {
	ids := make([]string, 0, len(s.Supervisors))
	for _, sup := range s.Supervisors {
		ids = append(ids, sup.UserID)
	}
	return ids
}

// SectionSupervisor authorizes a user to record entries for a section (table section_supervisors)
type SectionSupervisor struct {
	SectionID string    `gorm:"type:uuid;primaryKey"                        json:"section_id"`
	UserID    string    `gorm:"type:uuid;primaryKey"                        json:"user_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName table name
func (SectionSupervisor) TableName() string { return "section_supervisors" }
