package dto

import "encoding/json"

// ── Target rule DTOs ──

// TargetRuleListRequest rule list filter
type TargetRuleListRequest struct {
	SectionID string `form:"section_id" binding:"omitempty,uuid"`
	ItemID    string `form:"item_id"    binding:"omitempty,uuid"`
}

// CreateTargetRuleRequest create rule; quantities accept JSON numbers or decimal strings
type CreateTargetRuleRequest struct {
	SectionID  string      `json:"section_id"  binding:"required,uuid"`
	ItemID     string      `json:"item_id"     binding:"required,uuid"`
	TargetQty  json.Number `json:"target_qty"  binding:"required"`
	ShiftHours json.Number `json:"shift_hours" binding:"required"`
	StartDate  string      `json:"start_date"  binding:"required,datetime=2006-01-02"`
	EndDate    *string     `json:"end_date"    binding:"omitempty,datetime=2006-01-02"` // nil = open-ended
}

// UpdateTargetRuleRequest partial rule update guarded by version
type UpdateTargetRuleRequest struct {
	TargetQty  *json.Number `json:"target_qty"`
	ShiftHours *json.Number `json:"shift_hours"`
	StartDate  *string      `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string      `json:"end_date"` // "" makes the rule open-ended
	Version    int          `json:"version"    binding:"required,min=1"`
}

// TargetRuleResponse rule
type TargetRuleResponse struct {
	ID                 string   `json:"id"`
	SectionID          string   `json:"section_id"`
	SectionName        string   `json:"section_name,omitempty"`
	ItemID             string   `json:"item_id"`
	ItemName           string   `json:"item_name,omitempty"`
	TargetQty          string   `json:"target_qty"`
	ShiftHours         string   `json:"shift_hours"`
	StartDate          string   `json:"start_date"`
	EndDate            *string  `json:"end_date"`
	Version            int      `json:"version"`
	OverlappingRuleIDs []string `json:"overlapping_rule_ids,omitempty"`
}

// ResolveTargetRuleRequest resolve query
type ResolveTargetRuleRequest struct {
	SectionID string `form:"section_id" binding:"required,uuid"`
	ItemID    string `form:"item_id"    binding:"required,uuid"`
	Date      string `form:"date"       binding:"omitempty,datetime=2006-01-02"`
}

// ResolveTargetRuleResponse applicable rule, or zero defaults with a warning
type ResolveTargetRuleResponse struct {
	Date       string              `json:"date"`
	Rule       *TargetRuleResponse `json:"rule"`
	TargetQty  string              `json:"target_qty"`
	ShiftHours string              `json:"shift_hours"`
	Warning    string              `json:"warning,omitempty"`
}
