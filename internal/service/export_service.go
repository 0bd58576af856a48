package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Diwak4r/ERP-System/internal/dto"
)

// ── Export errors ──

var (
	ErrExportGenerateFail = errors.New("failed to generate the xlsx file")
)

// ExportService spreadsheet exports
//
// The workbook is returned as a bytes.Buffer; the handler sets the download
// headers and writes it to the response.
type ExportService interface {
	// DailyWorkbook renders the daily summary and item aggregate of one day.
	// Sheets: Items, Workers, Item Aggregate.
	DailyWorkbook(ctx context.Context, req *dto.ReportRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	report ReportService
	logger *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(report ReportService, logger *zap.Logger) ExportService {
	return &exportService{report: report, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// DailyWorkbook
// ═══════════════════════════════════════════════════════════
//
// Layout per sheet:
//   - row 1: title (merged)
//   - row 2: header
//   - row 3+: data, followed by a totals line where it makes sense

func (s *exportService) DailyWorkbook(ctx context.Context, req *dto.ReportRequest) (*bytes.Buffer, string, error) {
	summary, err := s.report.DailySummary(ctx, req)
	if err != nil {
		return nil, "", err
	}
	agg, err := s.report.ItemAggregate(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})
	numStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00

	scope := "all sections"
	if summary.SectionID != "" {
		scope = "section " + summary.SectionID
	}

	// ── Items ──
	const itemsSheet = "Items"
	idx, _ := f.NewSheet(itemsSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	writeSheetHeader(f, itemsSheet, fmt.Sprintf("Item totals %s (%s)", summary.Date, scope),
		[]string{"Item", "Unit", "Total actual"}, titleStyle, headerStyle)
	row := 3
	for _, it := range summary.PerItem {
		f.SetCellValue(itemsSheet, cell("A", row), it.ItemName)
		f.SetCellValue(itemsSheet, cell("B", row), it.Unit)
		setNumber(f, itemsSheet, cell("C", row), it.TotalActual, numStyle)
		row++
	}
	f.SetColWidth(itemsSheet, "A", "A", 30)
	f.SetColWidth(itemsSheet, "B", "C", 14)

	// ── Workers ──
	const workersSheet = "Workers"
	f.NewSheet(workersSheet)
	writeSheetHeader(f, workersSheet, fmt.Sprintf("Worker totals %s (%s)", summary.Date, scope),
		[]string{"Worker", "Total actual"}, titleStyle, headerStyle)
	row = 3
	for _, w := range summary.PerWorker {
		f.SetCellValue(workersSheet, cell("A", row), w.WorkerName)
		setNumber(f, workersSheet, cell("B", row), w.TotalActual, numStyle)
		row++
	}
	f.SetCellValue(workersSheet, cell("A", row+1), "Workers")
	f.SetCellValue(workersSheet, cell("B", row+1), summary.WorkerCount)
	f.SetColWidth(workersSheet, "A", "A", 30)
	f.SetColWidth(workersSheet, "B", "B", 14)

	// ── Item Aggregate ──
	const aggSheet = "Item Aggregate"
	f.NewSheet(aggSheet)
	writeSheetHeader(f, aggSheet, fmt.Sprintf("Target attainment %s (%s)", summary.Date, scope),
		[]string{"Item", "Total target", "Total actual", "Hits", "Entries", "Hit rate %"}, titleStyle, headerStyle)
	row = 3
	for _, a := range agg.Items {
		f.SetCellValue(aggSheet, cell("A", row), a.ItemName)
		setNumber(f, aggSheet, cell("B", row), a.TotalTarget, numStyle)
		setNumber(f, aggSheet, cell("C", row), a.TotalActual, numStyle)
		f.SetCellValue(aggSheet, cell("D", row), a.HitCount)
		f.SetCellValue(aggSheet, cell("E", row), a.EntryCount)
		setNumber(f, aggSheet, cell("F", row), a.HitRate, numStyle)
		row++
	}
	f.SetColWidth(aggSheet, "A", "A", 30)
	f.SetColWidth(aggSheet, "B", "F", 14)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("production_%s.xlsx", summary.Date)
	return buf, filename, nil
}

// ── helpers ──

func writeSheetHeader(f *excelize.File, sheet, title string, headers []string, titleStyle, headerStyle int) {
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheet, "A2", cell(colName(len(headers)-1), 2), headerStyle)
}

// setNumber writes a fixed-point string as a numeric cell so totals stay summable.
func setNumber(f *excelize.File, sheet, axis, value string, style int) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		f.SetCellValue(sheet, axis, value)
		return
	}
	f.SetCellValue(sheet, axis, d.InexactFloat64())
	f.SetCellStyle(sheet, axis, axis, style)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
