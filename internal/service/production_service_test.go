package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/production"
)

func setupTestProductionService() (ProductionService, *mockRepos) {
	m := newMockRepos()
	m.seed()
	svc := NewProductionService(testProductionConfig(), m.repository(), newTestLogger(), fixedClock)
	return svc, m
}

func row(workerID, itemID, qty string) dto.EntryRowRequest {
	return dto.EntryRowRequest{WorkerID: workerID, ItemID: itemID, ActualQty: json.Number(qty)}
}

func TestProductionService_Submit_ComputesOutcome(t *testing.T) {
	svc, m := setupTestProductionService()
	m.addRule("rule-1", sectionA, itemWidget, "100", "8", "2024-01-01", nil)

	resp, err := svc.Submit(context.Background(), supervisor, &dto.SubmitEntriesRequest{
		SectionID: sectionA,
		EntryDate: "2024-03-15",
		Rows:      []dto.EntryRowRequest{row(workerAlice, itemWidget, "120")},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(resp.Created) != 1 || len(resp.Failed) != 0 || len(resp.Warnings) != 0 {
		t.Fatalf("unexpected result: %+v", resp)
	}

	got := resp.Created[0]
	if got.TargetQty != "100.00" || got.ActualQty != "120.00" || got.ShiftHours != "8.00" {
		t.Errorf("unexpected quantities: %+v", got)
	}
	if got.OvertimeHours != "1.60" {
		t.Errorf("expected overtime 1.60, got %s", got.OvertimeHours)
	}
	if !got.TargetMet {
		t.Error("expected target_met")
	}
	if got.WorkerName != "Alice" || got.ItemName != "Widget" || got.SectionName != "Assembly" {
		t.Errorf("expected names to be filled, got %+v", got)
	}
	if got.CreatedBy != supervisorID {
		t.Errorf("expected created_by %s, got %s", supervisorID, got.CreatedBy)
	}
	if len(m.entries.entries) != 1 {
		t.Errorf("expected 1 stored entry, got %d", len(m.entries.entries))
	}
}

func TestProductionService_Submit_NoRuleWarns(t *testing.T) {
	svc, m := setupTestProductionService()

	resp, err := svc.Submit(context.Background(), admin, &dto.SubmitEntriesRequest{
		SectionID: sectionA,
		EntryDate: "2024-03-15",
		Rows:      []dto.EntryRowRequest{row(workerAlice, itemWidget, "50")},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(resp.Created) != 1 {
		t.Fatalf("expected the entry to be stored, got %+v", resp)
	}
	got := resp.Created[0]
	if got.TargetQty != "0.00" || got.OvertimeHours != "0.00" || got.TargetMet {
		t.Errorf("expected zero target outcome, got %+v", got)
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "Widget") {
		t.Errorf("expected a no-target warning naming Widget, got %v", resp.Warnings)
	}
	if !m.entries.entries[0].TargetQty.IsZero() {
		t.Error("stored target should be zero")
	}
}

func TestProductionService_Submit_UsesRuleActiveOnEntryDate(t *testing.T) {
	svc, m := setupTestProductionService()
	m.addRule("rule-old", sectionA, itemWidget, "80", "8", "2024-01-01", datePtr("2024-02-29"))
	m.addRule("rule-new", sectionA, itemWidget, "100", "8", "2024-03-01", nil)

	resp, err := svc.Submit(context.Background(), admin, &dto.SubmitEntriesRequest{
		SectionID: sectionA,
		EntryDate: "2024-02-10",
		Rows:      []dto.EntryRowRequest{row(workerAlice, itemWidget, "90")},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if resp.Created[0].TargetQty != "80.00" {
		t.Errorf("expected the February rule target 80.00, got %s", resp.Created[0].TargetQty)
	}
	if resp.Created[0].OvertimeHours != "1.00" {
		t.Errorf("expected overtime 1.00, got %s", resp.Created[0].OvertimeHours)
	}
}

func TestProductionService_Submit_DefaultsToToday(t *testing.T) {
	svc, _ := setupTestProductionService()

	resp, err := svc.Submit(context.Background(), admin, &dto.SubmitEntriesRequest{
		SectionID: sectionA,
		Rows:      []dto.EntryRowRequest{row(workerAlice, itemWidget, "1")},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if resp.Created[0].EntryDate != "2024-03-15" {
		t.Errorf("expected today's date, got %s", resp.Created[0].EntryDate)
	}
}

func TestProductionService_Submit_PermissionDenied(t *testing.T) {
	svc, m := setupTestProductionService()

	for name, identity := range map[string]production.Identity{
		"unlinked supervisor": otherSup,
		"viewer":              viewer,
		"anonymous":           {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), identity, &dto.SubmitEntriesRequest{
				SectionID: sectionA,
				EntryDate: "2024-03-15",
				Rows:      []dto.EntryRowRequest{row(workerAlice, itemWidget, "10")},
			})
			if !errors.Is(err, ErrSectionPermissionDenied) {
				t.Fatalf("expected ErrSectionPermissionDenied, got %v", err)
			}
		})
	}
	if len(m.entries.entries) != 0 {
		t.Errorf("expected nothing persisted, got %d entries", len(m.entries.entries))
	}
}

func TestProductionService_Submit_SectionErrors(t *testing.T) {
	svc, m := setupTestProductionService()
	m.sections.sections[sectionB].IsActive = false

	_, err := svc.Submit(context.Background(), admin, &dto.SubmitEntriesRequest{
		SectionID: "33333333-3333-3333-3333-00000000ffff",
		Rows:      []dto.EntryRowRequest{row(workerAlice, itemWidget, "10")},
	})
	if !errors.Is(err, ErrSectionNotFound) {
		t.Errorf("expected ErrSectionNotFound, got %v", err)
	}

	_, err = svc.Submit(context.Background(), admin, &dto.SubmitEntriesRequest{
		SectionID: sectionB,
		Rows:      []dto.EntryRowRequest{row(workerAlice, itemWidget, "10")},
	})
	if !errors.Is(err, ErrSectionInactive) {
		t.Errorf("expected ErrSectionInactive, got %v", err)
	}
}

func TestProductionService_Submit_BatchValidation(t *testing.T) {
	svc, m := setupTestProductionService()
	unknownWorker := "11111111-1111-1111-1111-00000000ffff"

	tests := []struct {
		name    string
		date    string
		rows    []dto.EntryRowRequest
		wantErr error
		wantRow string
	}{
		{"empty batch", "", nil, ErrEntryBatchEmpty, ""},
		{"too many rows", "", []dto.EntryRowRequest{
			row(workerAlice, itemWidget, "1"), row(workerBob, itemWidget, "1"),
			row(workerAlice, itemBolt, "1"), row(workerBob, itemBolt, "1"),
			row(workerAlice, itemOld, "1"), row(workerBob, itemOld, "1"),
		}, ErrEntryBatchTooLarge, ""},
		{"bad date", "15/03/2024", []dto.EntryRowRequest{row(workerAlice, itemWidget, "1")}, ErrInvalidDate, ""},
		{"missing worker", "", []dto.EntryRowRequest{row("", itemWidget, "1")}, ErrEntryRowIncomplete, "row 1"},
		{"negative qty", "", []dto.EntryRowRequest{
			row(workerAlice, itemWidget, "1"), row(workerBob, itemWidget, "-5"),
		}, ErrInvalidQuantity, "row 2"},
		{"three decimals", "", []dto.EntryRowRequest{row(workerAlice, itemWidget, "1.234")}, ErrInvalidQuantity, "row 1"},
		{"duplicate pair", "", []dto.EntryRowRequest{
			row(workerAlice, itemWidget, "1"), row(workerAlice, itemWidget, "2"),
		}, ErrEntryDuplicateRow, "row 2"},
		{"malformed worker id", "", []dto.EntryRowRequest{row("alice", itemWidget, "1")}, ErrWorkerNotFound, "row 1"},
		{"unknown worker", "", []dto.EntryRowRequest{
			row(workerAlice, itemWidget, "1"), row(unknownWorker, itemWidget, "1"),
		}, ErrWorkerNotFound, "row 2"},
		{"inactive worker", "", []dto.EntryRowRequest{row(workerGone, itemWidget, "1")}, ErrWorkerInactive, "row 1"},
		{"inactive item", "", []dto.EntryRowRequest{row(workerAlice, itemOld, "1")}, ErrItemInactive, "row 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), admin, &dto.SubmitEntriesRequest{
				SectionID: sectionA,
				EntryDate: tt.date,
				Rows:      tt.rows,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantRow != "" && !strings.Contains(err.Error(), tt.wantRow) {
				t.Errorf("expected error to mention %q, got %q", tt.wantRow, err.Error())
			}
		})
	}

	if len(m.entries.entries) != 0 {
		t.Errorf("rejected batches must not persist anything, got %d entries", len(m.entries.entries))
	}
}

func TestProductionService_Submit_CollisionReportedAsFailed(t *testing.T) {
	svc, m := setupTestProductionService()
	ctx := context.Background()
	req := &dto.SubmitEntriesRequest{
		SectionID: sectionA,
		EntryDate: "2024-03-15",
		Rows:      []dto.EntryRowRequest{row(workerAlice, itemWidget, "10")},
	}
	if _, err := svc.Submit(ctx, admin, req); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}

	req.Rows = []dto.EntryRowRequest{row(workerAlice, itemWidget, "12"), row(workerBob, itemWidget, "7")}
	resp, err := svc.Submit(ctx, admin, req)
	if err != nil {
		t.Fatalf("second Submit failed: %v", err)
	}
	if len(resp.Created) != 1 || resp.Created[0].WorkerID != workerBob {
		t.Errorf("expected only Bob's row created, got %+v", resp.Created)
	}
	if len(resp.Failed) != 1 || resp.Failed[0].Row != 1 || resp.Failed[0].WorkerID != workerAlice {
		t.Errorf("expected row 1 reported as failed, got %+v", resp.Failed)
	}
	if len(m.entries.entries) != 2 {
		t.Errorf("expected 2 stored entries, got %d", len(m.entries.entries))
	}
	if !m.entries.entries[0].ActualQty.Equal(dec("10")) {
		t.Errorf("existing entry must keep its quantity, got %s", m.entries.entries[0].ActualQty)
	}
}

func TestProductionService_Submit_StoreErrorAborts(t *testing.T) {
	svc, m := setupTestProductionService()
	boom := errors.New("connection reset")
	m.entries.failOn = map[string]error{workerBob: boom}

	resp, err := svc.Submit(context.Background(), admin, &dto.SubmitEntriesRequest{
		SectionID: sectionA,
		Rows:      []dto.EntryRowRequest{row(workerAlice, itemWidget, "1"), row(workerBob, itemWidget, "1")},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	// row 1 is already committed and must still be reported
	if resp == nil || len(resp.Created) != 1 || resp.Created[0].WorkerID != workerAlice {
		t.Fatalf("expected the committed row in the partial result, got %+v", resp)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("expected a warning only for the saved row, got %v", resp.Warnings)
	}
	if len(m.entries.entries) != 1 {
		t.Errorf("expected 1 stored entry, got %d", len(m.entries.entries))
	}
}

func TestProductionService_Submit_NoWarningForCollidingRow(t *testing.T) {
	svc, m := setupTestProductionService()
	ctx := context.Background()
	req := &dto.SubmitEntriesRequest{
		SectionID: sectionA,
		EntryDate: "2024-03-15",
		Rows:      []dto.EntryRowRequest{row(workerAlice, itemBolt, "3")},
	}
	if _, err := svc.Submit(ctx, admin, req); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}

	resp, err := svc.Submit(ctx, admin, req)
	if err != nil {
		t.Fatalf("second Submit failed: %v", err)
	}
	if len(resp.Created) != 0 || len(resp.Failed) != 1 {
		t.Fatalf("expected the row reported as failed, got %+v", resp)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("a row that was not saved must not warn, got %v", resp.Warnings)
	}
	if len(m.entries.entries) != 1 {
		t.Errorf("expected 1 stored entry, got %d", len(m.entries.entries))
	}
}

func TestProductionService_NewRow(t *testing.T) {
	svc, _ := setupTestProductionService()

	resp, err := svc.NewRow(context.Background(), supervisor, &dto.NewRowRequest{SectionID: sectionA, Index: 3})
	if err != nil {
		t.Fatalf("NewRow failed: %v", err)
	}
	if resp.Index != 3 || resp.NextIndex != 4 {
		t.Errorf("expected index 3 next 4, got %d/%d", resp.Index, resp.NextIndex)
	}
	if len(resp.Workers) != 2 {
		t.Errorf("expected only active workers, got %d", len(resp.Workers))
	}
	if len(resp.Items) != 2 || resp.Items[0].Name != "Bolt" || resp.Items[0].Unit != "KG" {
		t.Errorf("unexpected items: %+v", resp.Items)
	}

	if _, err := svc.NewRow(context.Background(), otherSup, &dto.NewRowRequest{SectionID: sectionA}); !errors.Is(err, ErrSectionPermissionDenied) {
		t.Errorf("expected ErrSectionPermissionDenied, got %v", err)
	}
}

func TestProductionService_ListAndGet(t *testing.T) {
	svc, _ := setupTestProductionService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, admin, &dto.SubmitEntriesRequest{
		SectionID: sectionA,
		EntryDate: "2024-03-15",
		Rows:      []dto.EntryRowRequest{row(workerBob, itemWidget, "5"), row(workerAlice, itemBolt, "2.5")},
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	entries, err := svc.List(ctx, supervisor, &dto.EntryListRequest{Date: "2024-03-15", SectionID: sectionA})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 || entries[0].WorkerName != "Alice" {
		t.Fatalf("expected 2 entries ordered by worker, got %+v", entries)
	}
	if entries[0].ActualQty != "2.50" {
		t.Errorf("expected 2.50, got %s", entries[0].ActualQty)
	}

	if _, err := svc.List(ctx, otherSup, &dto.EntryListRequest{SectionID: sectionA}); !errors.Is(err, ErrSectionPermissionDenied) {
		t.Errorf("expected ErrSectionPermissionDenied, got %v", err)
	}

	got, err := svc.GetByID(ctx, entries[1].ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.WorkerID != workerBob {
		t.Errorf("expected Bob's entry, got %+v", got)
	}
	if _, err := svc.GetByID(ctx, "missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestProductionService_AvailableSections(t *testing.T) {
	svc, _ := setupTestProductionService()
	ctx := context.Background()

	all, err := svc.AvailableSections(ctx, admin)
	if err != nil || len(all) != 2 {
		t.Fatalf("admin should see 2 sections, got %d (%v)", len(all), err)
	}
	mine, err := svc.AvailableSections(ctx, supervisor)
	if err != nil || len(mine) != 1 || mine[0].ID != sectionA {
		t.Fatalf("supervisor should see only Assembly, got %+v (%v)", mine, err)
	}
	none, err := svc.AvailableSections(ctx, viewer)
	if err != nil || len(none) != 0 {
		t.Fatalf("viewer should see none, got %+v (%v)", none, err)
	}
}
