/*
recurrence.go - Recurrence schedules, deductions, and custom payment types

PURPOSE:
  A RecurrenceSchedule says on which calendar dates a user-defined
  adjustment applies: a single date, a weekly weekday set, a monthly
  day-of-month set, or an explicit date list. Deductions and custom
  payment definitions are both keyed by one.

VARIANTS:
  OneTime:       fires on exactly one date (optionally tied to a shift)
  Weekly:        fires on the listed weekdays between start and end
  Monthly:       fires on the listed days of month between start and end
  SpecificDates: fires on each listed date

  Weekly and Monthly bounds are inclusive; a nil end date repeats forever.
*/
package payroll

import (
	"time"
)

// =============================================================================
// RECURRENCE SCHEDULE - Closed variant enumeration
// =============================================================================

type RecurrenceKind string

const (
	RecurOneTime       RecurrenceKind = "one_time"
	RecurWeekly        RecurrenceKind = "weekly"
	RecurMonthly       RecurrenceKind = "monthly"
	RecurSpecificDates RecurrenceKind = "specific_dates"
)

type RecurrenceSchedule struct {
	Kind RecurrenceKind

	// OneTime
	Date    Date
	ShiftID *ShiftID // set when tied to a specific shift

	// Weekly
	Weekdays []time.Weekday

	// Monthly
	DaysOfMonth []int // 1-31

	// Weekly / Monthly bounds
	StartDate Date
	EndDate   *Date // nil = repeats forever

	// SpecificDates
	Dates []Date
}

func OneTimeOn(date Date) RecurrenceSchedule {
	return RecurrenceSchedule{Kind: RecurOneTime, Date: date}
}

func WeeklyOn(start Date, weekdays ...time.Weekday) RecurrenceSchedule {
	return RecurrenceSchedule{Kind: RecurWeekly, StartDate: start, Weekdays: weekdays}
}

func MonthlyOn(start Date, daysOfMonth ...int) RecurrenceSchedule {
	return RecurrenceSchedule{Kind: RecurMonthly, StartDate: start, DaysOfMonth: daysOfMonth}
}

func OnDates(dates ...Date) RecurrenceSchedule {
	return RecurrenceSchedule{Kind: RecurSpecificDates, Dates: dates}
}

// Until bounds a Weekly or Monthly schedule with an inclusive end date.
func (r RecurrenceSchedule) Until(end Date) RecurrenceSchedule {
	r.EndDate = &end
	return r
}

// AppliesOn reports whether the schedule fires on the given date.
func (r RecurrenceSchedule) AppliesOn(date Date) bool {
	switch r.Kind {
	case RecurOneTime:
		return r.Date.Equal(date)

	case RecurWeekly:
		if !r.inBounds(date) {
			return false
		}
		for _, wd := range r.Weekdays {
			if wd == date.Weekday() {
				return true
			}
		}
		return false

	case RecurMonthly:
		if !r.inBounds(date) {
			return false
		}
		for _, dom := range r.DaysOfMonth {
			if dom == date.Day() {
				return true
			}
		}
		return false

	case RecurSpecificDates:
		for _, d := range r.Dates {
			if d.Equal(date) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// AppliesWithin reports whether the schedule fires on any date in
// [start, end] inclusive.
func (r RecurrenceSchedule) AppliesWithin(start, end Date) bool {
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if r.AppliesOn(d) {
			return true
		}
	}
	return false
}

func (r RecurrenceSchedule) inBounds(date Date) bool {
	if date.Before(r.StartDate) {
		return false
	}
	if r.EndDate != nil && date.After(*r.EndDate) {
		return false
	}
	return true
}

// =============================================================================
// DEDUCTION - User-defined recurring deduction
// =============================================================================

type Deduction struct {
	ID      DeductionID
	JobID   JobID
	ShiftID ShiftID

	Name        string
	Description string
	Amount      Pence

	// IsPreTax: true reduces taxable income, false is a post-tax deduction.
	IsPreTax bool

	Schedule RecurrenceSchedule
}

// =============================================================================
// CUSTOM PAYMENT DEF - User-defined recurring payment line
// =============================================================================

// CustomPaymentDef is a user-defined payment that recurs on a schedule,
// e.g. a weekend bonus. It can add a fixed amount, scale the shift's base
// pay by a multiplier, or both.
type CustomPaymentDef struct {
	ID      PaymentDefID
	JobID   JobID
	ShiftID ShiftID

	Name       string
	IsTaxable  bool
	Day        *Date
	Multiplier *float64
	Amount     *Pence
	Schedule   RecurrenceSchedule

	// IsPreTax: true increases taxable income, false is a post-tax
	// addition (e.g. a bonus paid outside PAYE).
	IsPreTax bool
}
