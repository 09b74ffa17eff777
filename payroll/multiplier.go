/*
multiplier.go - Salary multiplier resolution

PURPOSE:
  A SalaryMultiplier is a named, schedulable pay adjustment: a
  multiplicative factor plus rules for when it applies and how it stacks.
  ResolveMultipliers composes the factors of an already-filtered set onto
  a base amount under either compounding or highest-only semantics.

STACKING SEMANTICS:
  With no HighestOnly multiplier present, every factor compounds in the
  order given (the order must be stable so results are reproducible).

  With at least one HighestOnly multiplier present, the single greatest
  HighestOnly factor wins (first encountered on ties). AlwaysApply
  multipliers of any behavior still compound into the base first, then
  the winning factor applies once on top. Compound-behavior multipliers
  that are not AlwaysApply are excluded from this branch entirely.

  This is a rate-composition policy, not a generic reducer: callers
  pre-filter the set to multipliers whose schedule and time window apply
  to the specific shift before resolving.
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SALARY MULTIPLIER
// =============================================================================

type MultiplierBehavior string

const (
	BehaviorCompound    MultiplierBehavior = "compound"
	BehaviorHighestOnly MultiplierBehavior = "highest_only"
)

type MultiplierPriority string

const (
	PriorityAlwaysApply MultiplierPriority = "always_apply"
	PriorityLow         MultiplierPriority = "low"
	PriorityMedium      MultiplierPriority = "medium"
	PriorityHigh        MultiplierPriority = "high"
)

type SalaryMultiplier struct {
	ID    MultiplierID
	JobID JobID

	Name        string
	Description string

	Behavior MultiplierBehavior
	Priority MultiplierPriority

	Schedule   RecurrenceSchedule
	Factor     decimal.Decimal
	TimeWindow *TimeWindow
}

// AppliesTo reports whether the multiplier's schedule fires on the shift's
// date and, when a time window is configured, whether the shift overlaps it.
// Used by callers to pre-filter the set handed to ResolveMultipliers.
func (m SalaryMultiplier) AppliesTo(shift Shift) bool {
	if !m.Schedule.AppliesOn(shift.Date) {
		return false
	}
	if m.TimeWindow != nil {
		return m.TimeWindow.OverlapSeconds(shift.Start, shift.Finish) > 0
	}
	return true
}

// =============================================================================
// RESOLUTION
// =============================================================================

type MultiplierResult struct {
	TakenAmount Pence
	FinalAmount Pence

	// Applied lists the multipliers that were compounded into the result,
	// excluding the top multiplier.
	Applied []SalaryMultiplier

	// Top is set when a HighestOnly multiplier won; its factor was applied
	// once after the Applied set compounded.
	Top *SalaryMultiplier
}

// ResolveMultipliers composes the given multipliers onto amount.
// The input order is the tie-break order: among equal HighestOnly factors
// the first encountered wins, and compounding follows input order.
func ResolveMultipliers(amount Pence, multipliers []SalaryMultiplier) MultiplierResult {
	var highest []SalaryMultiplier
	for _, m := range multipliers {
		if m.Behavior == BehaviorHighestOnly {
			highest = append(highest, m)
		}
	}

	if len(highest) > 0 {
		top := highest[0]
		for _, m := range highest[1:] {
			if m.Factor.GreaterThan(top.Factor) {
				top = m
			}
		}

		var applied []SalaryMultiplier
		value := amount.Decimal()
		for _, m := range multipliers {
			if m.Priority == PriorityAlwaysApply && m.ID != top.ID {
				applied = append(applied, m)
				value = value.Mul(m.Factor)
			}
		}
		value = value.Mul(top.Factor)

		return MultiplierResult{
			TakenAmount: amount,
			FinalAmount: TruncatePence(value),
			Applied:     applied,
			Top:         &top,
		}
	}

	value := amount.Decimal()
	for _, m := range multipliers {
		value = value.Mul(m.Factor)
	}

	return MultiplierResult{
		TakenAmount: amount,
		FinalAmount: TruncatePence(value),
		Applied:     multipliers,
	}
}
