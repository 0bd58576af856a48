package dto

// ── Report DTOs ──

// ReportRequest date + optional section
type ReportRequest struct {
	Date      string `form:"date"       binding:"omitempty,datetime=2006-01-02"`
	SectionID string `form:"section_id" binding:"omitempty,uuid"`
}

// DailySummaryResponse per-item and per-worker totals of one day
type DailySummaryResponse struct {
	Date        string           `json:"date"`
	SectionID   string           `json:"section_id,omitempty"`
	PerItem     []ItemTotalRow   `json:"per_item"`
	PerWorker   []WorkerTotalRow `json:"per_worker"`
	WorkerCount int64            `json:"worker_count"`
}

// ItemTotalRow item total
type ItemTotalRow struct {
	ItemID      string `json:"item_id"`
	ItemName    string `json:"item_name"`
	Unit        string `json:"unit"`
	TotalActual string `json:"total_actual"`
}

// WorkerTotalRow worker total
type WorkerTotalRow struct {
	WorkerID    string `json:"worker_id"`
	WorkerName  string `json:"worker_name"`
	TotalActual string `json:"total_actual"`
}

// ItemAggregateResponse item hit rates of one day
type ItemAggregateResponse struct {
	Date      string             `json:"date"`
	SectionID string             `json:"section_id,omitempty"`
	Items     []ItemAggregateRow `json:"items"`
}

// ItemAggregateRow item hit rate
type ItemAggregateRow struct {
	ItemID      string `json:"item_id"`
	ItemName    string `json:"item_name"`
	TotalTarget string `json:"total_target"`
	TotalActual string `json:"total_actual"`
	HitCount    int64  `json:"hit_count"`
	EntryCount  int64  `json:"entry_count"`
	HitRate     string `json:"hit_rate"`
}

// WorkerHistoryRequest worker history window
type WorkerHistoryRequest struct {
	WorkerID  string `form:"worker_id"  binding:"required,uuid"`
	SectionID string `form:"section_id" binding:"required,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// WorkerHistoryResponse daily totals with chart series
type WorkerHistoryResponse struct {
	WorkerID  string             `json:"worker_id"`
	SectionID string             `json:"section_id"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Rows      []WorkerHistoryRow `json:"rows"`
	Chart     ChartSeries        `json:"chart"`
}

// WorkerHistoryRow one day
type WorkerHistoryRow struct {
	Date        string `json:"date"`
	TotalTarget string `json:"total_target"`
	TotalActual string `json:"total_actual"`
	TargetMet   bool   `json:"target_met"`
}

// ChartSeries parallel arrays for a line chart
type ChartSeries struct {
	Labels  []string  `json:"labels"`
	Targets []float64 `json:"targets"`
	Actuals []float64 `json:"actuals"`
}
