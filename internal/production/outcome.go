// Package production holds the pure business rules of production tracking:
// outcome computation, target-rule selection, quantity parsing and the
// section submission capability check. Nothing here touches storage.
package production

import (
	"github.com/shopspring/decimal"
)

// Outcome is the derived result of one production entry.
type Outcome struct {
	TargetMet     bool
	OvertimeHours decimal.Decimal
}

// hundred is used for percentage math.
var hundred = decimal.NewFromInt(100)

// ComputeOutcome derives target_met and overtime_hours from the raw quantities.
// A zero target is never met. It is pure and must be re-run whenever any of
// its inputs change.
func ComputeOutcome(actualQty, targetQty, shiftHours decimal.Decimal) Outcome {
	return Outcome{
		TargetMet:     targetQty.IsPositive() && actualQty.GreaterThanOrEqual(targetQty),
		OvertimeHours: ComputeOvertime(actualQty, targetQty, shiftHours),
	}
}

// ComputeOvertime credits shift hours in proportion to output above target:
//
//	round((actual/target - 1) * shift, 2)   half-up, zero when at or below target
//
// Evaluated as (actual-target)*shift/target so the only rounding is the final one.
func ComputeOvertime(actualQty, targetQty, shiftHours decimal.Decimal) decimal.Decimal {
	if !targetQty.IsPositive() || !shiftHours.IsPositive() {
		return decimal.Zero
	}
	excess := actualQty.Sub(targetQty)
	if !excess.IsPositive() {
		return decimal.Zero
	}
	return excess.Mul(shiftHours).DivRound(targetQty, 2)
}

// HitRate is round(hits/count*100, 2), or zero when count is zero.
func HitRate(hits, count int64) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(hits).Mul(hundred).DivRound(decimal.NewFromInt(count), 2)
}

// DayTargetMet is the per-day verdict used by worker history: a day with no
// target never counts as met.
func DayTargetMet(totalActual, totalTarget decimal.Decimal) bool {
	if totalTarget.IsZero() {
		return false
	}
	return totalActual.GreaterThanOrEqual(totalTarget)
}
