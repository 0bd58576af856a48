package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/internal/production"
)

// ProductionEntry one worker's output of one item on one day (table production_entries)
type ProductionEntry struct {
	ProductionEntryID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"production_entry_id"`
	EntryDate         time.Time       `gorm:"type:date;not null"                             json:"entry_date"`
	SectionID         string          `gorm:"type:uuid;not null"                             json:"section_id"`
	WorkerID          string          `gorm:"type:uuid;not null"                             json:"worker_id"`
	ItemID            string          `gorm:"type:uuid;not null"                             json:"item_id"`
	TargetQty         decimal.Decimal `gorm:"type:numeric(12,2);not null"                    json:"target_qty"`
	ActualQty         decimal.Decimal `gorm:"type:numeric(12,2);not null"                    json:"actual_qty"`
	ShiftHours        decimal.Decimal `gorm:"type:numeric(5,2);not null"                     json:"shift_hours"`
	OvertimeHours     decimal.Decimal `gorm:"type:numeric(7,2);not null;default:0"           json:"overtime_hours"`
	TargetMet         bool            `gorm:"not null;default:false"                         json:"target_met"`
	BaseModel

	// associations
	Section *Section `gorm:"foreignKey:SectionID;references:SectionID" json:"section,omitempty"`
	Worker  *Worker  `gorm:"foreignKey:WorkerID;references:WorkerID"   json:"worker,omitempty"`
	Item    *Item    `gorm:"foreignKey:ItemID;references:ItemID"       json:"item,omitempty"`
}

// TableName table name
func (ProductionEntry) TableName() string { return "production_entries" }

// Recompute refreshes the derived columns from the raw quantities.
func (e *ProductionEntry) Recompute() {
	out := production.ComputeOutcome(e.ActualQty, e.TargetQty, e.ShiftHours)
	e.TargetMet = out.TargetMet
	e.OvertimeHours = out.OvertimeHours
}

// BeforeSave derived values are never trusted from the caller.
func (e *ProductionEntry) BeforeSave(_ *gorm.DB) error {
	e.Recompute()
	return nil
}
