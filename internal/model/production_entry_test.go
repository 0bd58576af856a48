package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductionEntry_BeforeSaveRecomputes(t *testing.T) {
	e := &ProductionEntry{
		TargetQty:     decimal.NewFromInt(100),
		ActualQty:     decimal.NewFromInt(120),
		ShiftHours:    decimal.NewFromInt(8),
		OvertimeHours: decimal.NewFromInt(99), // stale
		TargetMet:     false,
	}
	if err := e.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if !e.TargetMet {
		t.Error("expected target_met true")
	}
	if got := e.OvertimeHours.StringFixed(2); got != "1.60" {
		t.Errorf("expected overtime 1.60, got %s", got)
	}

	e.ActualQty = decimal.NewFromInt(50)
	_ = e.BeforeSave(nil)
	if e.TargetMet || !e.OvertimeHours.IsZero() {
		t.Errorf("expected recomputed miss, got met=%v overtime=%s", e.TargetMet, e.OvertimeHours)
	}
}

func TestSection_SupervisorIDs(t *testing.T) {
	s := &Section{Supervisors: []SectionSupervisor{{UserID: "a"}, {UserID: "b"}}}
	ids := s.SupervisorIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("unexpected ids %v", ids)
	}
}

func TestValidUnit(t *testing.T) {
	for _, u := range []string{UnitKG, UnitPCS, UnitOther} {
		if !ValidUnit(u) {
			t.Errorf("expected %s valid", u)
		}
	}
	if ValidUnit("LITRE") {
		t.Error("expected LITRE invalid")
	}
}
