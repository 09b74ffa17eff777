/*
Package payroll provides the core rota and wages engine.

PURPOSE:
  This package contains the domain types and algorithms for working out
  which calendar days a job works under a recurring shift pattern, and how
  much a worked shift pays once day-type multipliers, unsociable-hours
  windows, and UK tax/National-Insurance bands are applied.

KEY CONCEPTS IN THIS FILE (types.go):
  - Pence: integer minor-currency amount (all money is whole pence)
  - Typed identifiers: JobID, ShiftID, DeductionID, MultiplierID
  - Closed enumerations: ShiftStatus, ShiftType, PaymentType, Region

DESIGN PRINCIPLES:
  1. Pure computation: the engines never read a clock or perform I/O
  2. Precision: money is integer pence; fractional rates use decimal.Decimal
  3. Type safety: strong typing for IDs prevents mixing entity kinds
  4. Auditability: every distinct rate/day-type combination is its own
     payment line, never merged into one total

USAGE:
  job := payroll.NewJob(1, "Senior Technician", 2550).
      WithShiftPattern(payroll.SixOnTwoOff()).
      WithFirstDay(payroll.NewDate(2026, time.March, 16))
  schedule := job.ScheduledShifts(payroll.NewDate(2026, time.April, 30))

SEE ALSO:
  - schedule.go: shift pattern state machine
  - pay.go: shift pay calculator
  - tax.go: income tax and National Insurance bands
*/
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PENCE - Integer minor-currency amount
// =============================================================================

// Pence is a monetary amount in integer minor-currency units.
// £25.50 is Pence(2550). All engine arithmetic stays in whole pence;
// fractional intermediate values (per-second rates, multiplier factors)
// are carried as decimal.Decimal and truncated back to Pence at line-item
// boundaries.
type Pence int64

func (p Pence) Add(q Pence) Pence { return p + q }
func (p Pence) Sub(q Pence) Pence { return p - q }

// SaturatingSub subtracts q, flooring at zero. Used for allowance tapers
// and net-pay figures which must never go negative.
func (p Pence) SaturatingSub(q Pence) Pence {
	if q >= p {
		return 0
	}
	return p - q
}

func (p Pence) IsZero() bool             { return p == 0 }
func (p Pence) Decimal() decimal.Decimal { return decimal.NewFromInt(int64(p)) }

func (p Pence) String() string {
	neg := ""
	v := int64(p)
	if v < 0 {
		neg = "-"
		v = -v
	}
	return fmt.Sprintf("%s£%d.%02d", neg, v/100, v%100)
}

// TruncatePence truncates a decimal amount to whole pence.
// Truncation (not rounding) is deliberate: it matches the banded tax
// arithmetic, so pay and tax figures reproduce exactly.
func TruncatePence(d decimal.Decimal) Pence {
	return Pence(d.IntPart())
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type (
	JobID        int64
	ShiftID      int64
	DeductionID  int64
	MultiplierID int64
	PaymentDefID int64
)

// =============================================================================
// SHIFT STATUS & TYPE
// =============================================================================

// ShiftStatus is the per-day ON/OFF outcome of schedule generation.
type ShiftStatus string

const (
	StatusOn  ShiftStatus = "on"
	StatusOff ShiftStatus = "off"
)

// ShiftType classifies a concrete shift occurrence.
type ShiftType string

const (
	ShiftScheduled ShiftType = "scheduled"
	ShiftExtra     ShiftType = "extra"
	ShiftSick      ShiftType = "sick"
	ShiftHoliday   ShiftType = "holiday"
	ShiftPaidLeave ShiftType = "paid_leave"
)

// =============================================================================
// PAYMENT TYPE - Tag on each emitted payment line
// =============================================================================

type PaymentType string

const (
	PayBasic                 PaymentType = "basic"
	PayUnsociableBasic       PaymentType = "unsociable_basic"
	PaySaturday              PaymentType = "saturday"
	PayUnsociableSaturday    PaymentType = "unsociable_saturday"
	PaySunday                PaymentType = "sunday"
	PayUnsociableSunday      PaymentType = "unsociable_sunday"
	PayBankHoliday           PaymentType = "bank_holiday"
	PayUnsociableBankHoliday PaymentType = "unsociable_bank_holiday"
	PayOvertime              PaymentType = "overtime"
	PayUnsociableOvertime    PaymentType = "unsociable_overtime"
	PayChristmas             PaymentType = "christmas"
	PaySick                  PaymentType = "sick"
	PayCustom                PaymentType = "custom"
)

// =============================================================================
// UK REGION - Selects the income-tax band table
// =============================================================================

type Region string

const (
	RegionEngland         Region = "england"
	RegionWales           Region = "wales"
	RegionNorthernIreland Region = "northern_ireland"
	RegionScotland        Region = "scotland"
)
