package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Diwak4r/ERP-System/internal/production"
)

// TargetRule expected output of an item in a section over a date interval (table target_rules)
type TargetRule struct {
	TargetRuleID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"target_rule_id"`
	SectionID    string          `gorm:"type:uuid;not null;index:idx_target_rules_lookup" json:"section_id"`
	ItemID       string          `gorm:"type:uuid;not null;index:idx_target_rules_lookup" json:"item_id"`
	TargetQty    decimal.Decimal `gorm:"type:numeric(12,2);not null"                    json:"target_qty"`
	ShiftHours   decimal.Decimal `gorm:"type:numeric(5,2);not null"                     json:"shift_hours"`
	StartDate    time.Time       `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      *time.Time      `gorm:"type:date"                                      json:"end_date,omitempty"`
	VersionedModel

	// associations
	Section *Section `gorm:"foreignKey:SectionID;references:SectionID" json:"section,omitempty"`
	Item    *Item    `gorm:"foreignKey:ItemID;references:ItemID"       json:"item,omitempty"`
}

// TableName table name
func (TargetRule) TableName() string { return "target_rules" }

// Window is the rule's validity interval.
func (r TargetRule) Window() production.Window {
	return production.Window{Start: r.StartDate, End: r.EndDate}
}
