package dto

import "encoding/json"

// ── Production entry DTOs ──

// SubmitEntriesRequest batch entry for one section and day
type SubmitEntriesRequest struct {
	SectionID string            `json:"section_id" binding:"required,uuid"`
	EntryDate string            `json:"entry_date" binding:"omitempty,datetime=2006-01-02"` // default today
	Rows      []EntryRowRequest `json:"rows"`
}

// EntryRowRequest one worker/item line
type EntryRowRequest struct {
	WorkerID  string      `json:"worker_id"`
	ItemID    string      `json:"item_id"`
	ActualQty json.Number `json:"actual_qty"`
}

// SubmitEntriesResponse batch outcome
type SubmitEntriesResponse struct {
	Created  []ProductionEntryResponse `json:"created"`
	Warnings []string                  `json:"warnings"`
	Failed   []EntryRowFailure         `json:"failed"`
}

// EntryRowFailure a row rejected at write time
type EntryRowFailure struct {
	Row      int    `json:"row"` // 1-based
	WorkerID string `json:"worker_id"`
	ItemID   string `json:"item_id"`
	Reason   string `json:"reason"`
}

// ProductionEntryResponse stored entry
type ProductionEntryResponse struct {
	ID            string `json:"id"`
	EntryDate     string `json:"entry_date"`
	SectionID     string `json:"section_id"`
	SectionName   string `json:"section_name,omitempty"`
	WorkerID      string `json:"worker_id"`
	WorkerName    string `json:"worker_name,omitempty"`
	ItemID        string `json:"item_id"`
	ItemName      string `json:"item_name,omitempty"`
	Unit          string `json:"unit,omitempty"`
	TargetQty     string `json:"target_qty"`
	ActualQty     string `json:"actual_qty"`
	ShiftHours    string `json:"shift_hours"`
	OvertimeHours string `json:"overtime_hours"`
	TargetMet     bool   `json:"target_met"`
	CreatedBy     string `json:"created_by,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// EntryListRequest entries of one day
type EntryListRequest struct {
	Date      string `form:"date"       binding:"omitempty,datetime=2006-01-02"`
	SectionID string `form:"section_id" binding:"omitempty,uuid"`
}

// NewRowRequest blank-row affordance
type NewRowRequest struct {
	SectionID string `form:"section_id" binding:"required,uuid"`
	Index     int    `form:"index"      binding:"omitempty,min=0"`
}

// NewRowResponse choices for one more entry row
type NewRowResponse struct {
	Index     int              `json:"index"`
	NextIndex int              `json:"next_index"`
	Workers   []OptionResponse `json:"workers"`
	Items     []OptionResponse `json:"items"`
}

// OptionResponse select option
type OptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Unit string `json:"unit,omitempty"`
}
