/*
job.go - Job configuration and shift patterns

PURPOSE:
  A Job bundles everything the engines need to know about one employment:
  the hourly rate, the recurring shift pattern and its anchor day, the
  optional fixed start time/duration, the day-type multipliers, and the
  unsociable-hours window.

PATTERN VARIANTS:
  SixOnTwoOff:   fixed 6-on/2-off cadence anchored to the block's weekday
  FourOnFourOff: fixed 8-day cycle, 4 on then 4 off, optionally pay-averaged
  Custom:        explicit working weekdays, no cycle memory

  Patterns are a closed variant enumeration: a Kind tag plus the payload
  fields the variant uses. Switches over Kind are exhaustive.

OPTIONAL CONFIGURATION:
  Optional fields are pointers; nil means "not configured". A missing
  anchor day or pattern makes the job unschedulable (empty schedule, not
  an error), and a missing multiplier simply leaves that premium off.
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT PATTERN - Closed variant enumeration
// =============================================================================

type PatternKind string

const (
	PatternSixOnTwoOff   PatternKind = "six_on_two_off"
	PatternFourOnFourOff PatternKind = "four_on_four_off"
	PatternCustom        PatternKind = "custom"
)

type ShiftPattern struct {
	Kind PatternKind

	// PaidOnAverage applies to FourOnFourOff only: weekly base hours are
	// averaged over the cycle rather than taken from actual rota weeks.
	PaidOnAverage bool

	// Weekdays applies to Custom only: the set of working weekdays.
	Weekdays []time.Weekday
}

func SixOnTwoOff() ShiftPattern { return ShiftPattern{Kind: PatternSixOnTwoOff} }

func FourOnFourOff(paidOnAverage bool) ShiftPattern {
	return ShiftPattern{Kind: PatternFourOnFourOff, PaidOnAverage: paidOnAverage}
}

func CustomDays(days ...time.Weekday) ShiftPattern {
	return ShiftPattern{Kind: PatternCustom, Weekdays: days}
}

func (p ShiftPattern) worksOn(wd time.Weekday) bool {
	for _, d := range p.Weekdays {
		if d == wd {
			return true
		}
	}
	return false
}

// =============================================================================
// JOB
// =============================================================================

type Job struct {
	ID       JobID
	Name     string
	BasicPay Pence // hourly rate in pence

	// BaseHours is the contracted hours per pay period; nil disables
	// overtime calculation.
	BaseHours *int

	Pattern  *ShiftPattern
	FirstDay *Date // anchor day of the pattern; nil = not schedulable

	FixedStartTime     *TimeOfDay
	FixedShiftDuration *time.Duration

	OvertimeMultiplier    *decimal.Decimal
	SaturdayMultiplier    *decimal.Decimal
	SundayMultiplier      *decimal.Decimal
	BankHolidayMultiplier *decimal.Decimal
	ChristmasMultiplier   *decimal.Decimal

	UnsociableMultiplier *decimal.Decimal
	UnsociableWindow     *TimeWindow

	TaxWeekStart *TaxWeekStart
}

func NewJob(id JobID, name string, basicPay Pence) Job {
	return Job{ID: id, Name: name, BasicPay: basicPay}
}

// Builder-style setters for the optional fields.

func (j Job) WithBaseHours(hours int) Job { j.BaseHours = &hours; return j }

func (j Job) WithShiftPattern(p ShiftPattern) Job { j.Pattern = &p; return j }

func (j Job) WithFirstDay(d Date) Job { j.FirstDay = &d; return j }

func (j Job) WithFixedStartTime(t TimeOfDay) Job { j.FixedStartTime = &t; return j }

func (j Job) WithFixedShiftDuration(d time.Duration) Job { j.FixedShiftDuration = &d; return j }

func (j Job) WithOvertimeMultiplier(m float64) Job {
	d := decimal.NewFromFloat(m)
	j.OvertimeMultiplier = &d
	return j
}

func (j Job) WithSaturdayMultiplier(m float64) Job {
	d := decimal.NewFromFloat(m)
	j.SaturdayMultiplier = &d
	return j
}

func (j Job) WithSundayMultiplier(m float64) Job {
	d := decimal.NewFromFloat(m)
	j.SundayMultiplier = &d
	return j
}

func (j Job) WithBankHolidayMultiplier(m float64) Job {
	d := decimal.NewFromFloat(m)
	j.BankHolidayMultiplier = &d
	return j
}

func (j Job) WithChristmasMultiplier(m float64) Job {
	d := decimal.NewFromFloat(m)
	j.ChristmasMultiplier = &d
	return j
}

func (j Job) WithUnsociableMultiplier(m float64) Job {
	d := decimal.NewFromFloat(m)
	j.UnsociableMultiplier = &d
	return j
}

func (j Job) WithUnsociableWindow(w TimeWindow) Job { j.UnsociableWindow = &w; return j }

func (j Job) WithTaxWeekStart(s TaxWeekStart) Job { j.TaxWeekStart = &s; return j }

// WeekStart returns the job's tax-week convention, defaulting to Sunday.
func (j Job) WeekStart() TaxWeekStart {
	if j.TaxWeekStart == nil {
		return WeekStartsSunday
	}
	return *j.TaxWeekStart
}

// =============================================================================
// RATES
// =============================================================================

var secondsPerHour = decimal.NewFromInt(3600)

// BasicRatePerSecond converts the hourly rate to pence per second.
// Pence(2550) -> 0.7083... pence/second.
func (j Job) BasicRatePerSecond() decimal.Decimal {
	return j.BasicPay.Decimal().Div(secondsPerHour)
}

// UnsociableRatePerSecond is the basic per-second rate scaled by the
// unsociable multiplier (1.0 when unset).
func (j Job) UnsociableRatePerSecond() decimal.Decimal {
	rate := j.BasicRatePerSecond()
	if j.UnsociableMultiplier == nil {
		return rate
	}
	return rate.Mul(*j.UnsociableMultiplier)
}
