/*
pay.go - Shift pay calculator

PURPOSE:
  Turns one worked shift plus its job configuration into itemized payment
  lines. Lines are never merged into one total: each distinct rate and
  day-type combination is its own line so calculations stay auditable.

ALGORITHM:
  1. Split the worked seconds into unsociable vs. basic time using the
     job's unsociable window (midnight-crossing windows handled by the
     per-day segmentation in TimeWindow.OverlapSeconds).
  2. Pick the single applicable day-type band, checked in precedence
     order: Saturday, then Sunday, then bank holiday, then basic. A date
     never matches two bands (a bank holiday falling on a Sunday is paid
     as a Sunday).
  3. Price unsociable and basic seconds independently within the band,
     truncating each line to whole pence.

  Sick, Holiday and PaidLeave shifts short-circuit to a single zero line.
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT PAYMENT - Derived line item
// =============================================================================

type ShiftPayment struct {
	ShiftID ShiftID
	JobID   JobID
	Amount  Pence
	Type    PaymentType

	// Name is set on custom payment lines.
	Name string

	// Deductions attached downstream when a PAYE summary is built.
	Deductions []Deduction
}

// TotalAmount sums a run of payment lines.
func TotalAmount(payments []ShiftPayment) Pence {
	var total Pence
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// =============================================================================
// PAY CALCULATION
// =============================================================================

// PayForShift computes the payment lines for one shift. The calendar
// supplies bank-holiday lookups; pass NoHolidays{} when none apply.
func PayForShift(shift Shift, job Job, calendar HolidayCalendar) []ShiftPayment {
	switch shift.Type {
	case ShiftSick:
		// Zero statutory pay until sick-pay rules are configured.
		return []ShiftPayment{{ShiftID: shift.ID, JobID: shift.JobID, Amount: 0, Type: PaySick}}

	case ShiftHoliday, ShiftPaidLeave:
		return []ShiftPayment{{ShiftID: shift.ID, JobID: shift.JobID, Amount: 0, Type: PayBasic}}
	}

	totalSeconds := int64(shift.Finish.Sub(shift.Start) / time.Second)

	var unsociableSeconds int64
	if job.UnsociableWindow != nil {
		unsociableSeconds = job.UnsociableWindow.OverlapSeconds(shift.Start, shift.Finish)
	}
	basicSeconds := totalSeconds - unsociableSeconds

	basicAmount := decimal.NewFromInt(basicSeconds).Mul(job.BasicRatePerSecond())
	unsociableAmount := decimal.NewFromInt(unsociableSeconds).Mul(job.UnsociableRatePerSecond())

	band := dayBand(shift.Date, job, calendar)

	var payments []ShiftPayment
	if unsociableSeconds > 0 && job.UnsociableMultiplier != nil {
		payments = append(payments, ShiftPayment{
			ShiftID: shift.ID,
			JobID:   shift.JobID,
			Amount:  TruncatePence(unsociableAmount.Mul(band.multiplier)),
			Type:    band.unsociableType,
		})
	}
	if basicAmount.IsPositive() {
		payments = append(payments, ShiftPayment{
			ShiftID: shift.ID,
			JobID:   shift.JobID,
			Amount:  TruncatePence(basicAmount.Mul(band.multiplier)),
			Type:    band.basicType,
		})
	}
	return payments
}

// dayTypeBand is the single multiplier band applied to one shift's date.
type dayTypeBand struct {
	multiplier     decimal.Decimal
	basicType      PaymentType
	unsociableType PaymentType
}

// dayBand selects the band in precedence order Saturday, Sunday, bank
// holiday, basic. Only bands with a configured multiplier are candidates.
func dayBand(date Date, job Job, calendar HolidayCalendar) dayTypeBand {
	switch {
	case date.Weekday() == time.Saturday && job.SaturdayMultiplier != nil:
		return dayTypeBand{*job.SaturdayMultiplier, PaySaturday, PayUnsociableSaturday}

	case date.Weekday() == time.Sunday && job.SundayMultiplier != nil:
		return dayTypeBand{*job.SundayMultiplier, PaySunday, PayUnsociableSunday}

	case calendar != nil && calendar.IsBankHoliday(date) && job.BankHolidayMultiplier != nil:
		return dayTypeBand{*job.BankHolidayMultiplier, PayBankHoliday, PayUnsociableBankHoliday}

	default:
		return dayTypeBand{decimal.NewFromInt(1), PayBasic, PayUnsociableBasic}
	}
}

// =============================================================================
// CUSTOM PAYMENT LINES
// =============================================================================

// CustomPayments emits Custom lines for every payment definition whose
// schedule fires on the shift's date. A definition can add a fixed
// amount, scale the shift's unmultiplied base pay, or both. Callers fetch
// the definitions for the job; the engine stays free of persistence.
func CustomPayments(shift Shift, job Job, defs []CustomPaymentDef) []ShiftPayment {
	var payments []ShiftPayment

	totalSeconds := int64(shift.Finish.Sub(shift.Start) / time.Second)
	basePay := decimal.NewFromInt(totalSeconds).Mul(job.BasicRatePerSecond())

	for _, def := range defs {
		if !def.Schedule.AppliesOn(shift.Date) {
			continue
		}

		var amount Pence
		if def.Amount != nil {
			amount += *def.Amount
		}
		if def.Multiplier != nil {
			amount += TruncatePence(basePay.Mul(decimal.NewFromFloat(*def.Multiplier)))
		}
		if amount == 0 {
			continue
		}

		payments = append(payments, ShiftPayment{
			ShiftID: shift.ID,
			JobID:   shift.JobID,
			Amount:  amount,
			Type:    PayCustom,
			Name:    def.Name,
		})
	}
	return payments
}
