/*
schedule.go - Shift schedule generator

PURPOSE:
  Produces the ordered per-day ON/OFF sequence for a job's shift pattern,
  from the pattern's anchor day up to a target date. The generator is a
  deterministic calendar state machine: patterns carry state (the weekday
  a block started on) that is cheapest to track by walking day by day,
  so generation is intentionally O(days) rather than closed-form.

CYCLE RULES:
  SixOnTwoOff blocks are 8 days long, or 9 when the block started on a
  Saturday. A Monday-started block goes OFF from day 6 (5 ON days); any
  other start weekday goes OFF from day 7 (6 ON days). The Saturday
  9-day cycle is an explicit rule, not an approximation: it keeps every
  block ending with a full weekend off unless it started mid-week.

  FourOnFourOff is a fixed 8-day cycle: days 1-4 ON, days 5-8 OFF.

  Custom has no cycle memory: a date is ON iff its weekday is in the
  configured set. DayInCycle is unused (always 0).

ERROR CONDITIONS:
  None surfaced. A job with no pattern or no anchor day yields an empty
  schedule, signalling "not schedulable" rather than failing.
*/
package payroll

import (
	"time"
)

// =============================================================================
// SCHEDULED SHIFT - Derived per-day status, never persisted
// =============================================================================

type ScheduledShift struct {
	JobID      JobID
	Date       Date
	Status     ShiftStatus
	DayInCycle int
}

// Schedule is an ordered (date-ascending) run of scheduled days.
type Schedule []ScheduledShift

// WorkingOn reports whether the schedule marks the given date ON.
// Dates outside the generated range are not working days.
func (s Schedule) WorkingOn(date Date) bool {
	for _, day := range s {
		if day.Date.Equal(date) {
			return day.Status == StatusOn
		}
	}
	return false
}

// OnCount returns how many days in the schedule are ON.
func (s Schedule) OnCount() int {
	n := 0
	for _, day := range s {
		if day.Status == StatusOn {
			n++
		}
	}
	return n
}

// =============================================================================
// GENERATION
// =============================================================================

// ScheduledShifts generates the schedule from the job's anchor day through
// target inclusive. Jobs without a pattern or anchor day are not
// schedulable and yield an empty schedule.
func (j Job) ScheduledShifts(target Date) Schedule {
	if j.Pattern == nil || j.FirstDay == nil {
		return nil
	}

	switch j.Pattern.Kind {
	case PatternSixOnTwoOff:
		return j.sixOnTwoOffUpTo(target)
	case PatternFourOnFourOff:
		return j.fourOnFourOffUpTo(target)
	case PatternCustom:
		return j.customUpTo(target)
	default:
		return nil
	}
}

// ScheduledShiftsBetween generates up to end and trims to [start, end].
func (j Job) ScheduledShiftsBetween(start, end Date) Schedule {
	full := j.ScheduledShifts(end)

	var out Schedule
	for _, day := range full {
		if day.Date.AfterOrEqual(start) && day.Date.BeforeOrEqual(end) {
			out = append(out, day)
		}
	}
	return out
}

// ScheduledShiftsForMonth trims the schedule to one calendar month.
// The last day is derived from the first of the next month, since
// AddDate on an end-of-month date normalizes (Jan 31 + 1 month = Mar 3).
func (j Job) ScheduledShiftsForMonth(year int, month time.Month) Schedule {
	first := NewDate(year, month, 1)
	last := DateOf(first.Time.AddDate(0, 1, 0)).AddDays(-1)
	return j.ScheduledShiftsBetween(first, last)
}

func (j Job) sixOnTwoOffUpTo(target Date) Schedule {
	var schedule Schedule

	current := ScheduledShift{
		JobID:      j.ID,
		Date:       *j.FirstDay,
		Status:     StatusOn,
		DayInCycle: 1,
	}
	blockStart := j.FirstDay.Weekday()

	for current.Date.BeforeOrEqual(target) {
		schedule = append(schedule, current)

		nextDate := current.Date.AddDays(1)

		// Saturday-started blocks run a 9-day cycle so the block still
		// ends with a complete weekend off.
		cycleLimit := 8
		if blockStart == time.Saturday {
			cycleLimit = 9
		}

		nextDay := current.DayInCycle + 1
		if nextDay > cycleLimit {
			nextDay = 1
			blockStart = nextDate.Weekday()
		}

		offFrom := 7
		if blockStart == time.Monday {
			offFrom = 6
		}
		status := StatusOn
		if nextDay >= offFrom {
			status = StatusOff
		}

		current = ScheduledShift{JobID: j.ID, Date: nextDate, Status: status, DayInCycle: nextDay}
	}
	return schedule
}

func (j Job) fourOnFourOffUpTo(target Date) Schedule {
	var schedule Schedule

	current := ScheduledShift{
		JobID:      j.ID,
		Date:       *j.FirstDay,
		Status:     StatusOn,
		DayInCycle: 1,
	}

	for current.Date.BeforeOrEqual(target) {
		schedule = append(schedule, current)

		nextDay := current.DayInCycle + 1
		if nextDay > 8 {
			nextDay = 1
		}
		status := StatusOn
		if nextDay > 4 {
			status = StatusOff
		}

		current = ScheduledShift{
			JobID:      j.ID,
			Date:       current.Date.AddDays(1),
			Status:     status,
			DayInCycle: nextDay,
		}
	}
	return schedule
}

func (j Job) customUpTo(target Date) Schedule {
	var schedule Schedule

	for date := *j.FirstDay; date.BeforeOrEqual(target); date = date.AddDays(1) {
		status := StatusOff
		if j.Pattern.worksOn(date.Weekday()) {
			status = StatusOn
		}
		schedule = append(schedule, ScheduledShift{JobID: j.ID, Date: date, Status: status})
	}
	return schedule
}

// =============================================================================
// BASE DAYS ON - Weekly base for pay-averaging
// =============================================================================

// BaseDaysOn returns the number of base working days in the tax week
// containing date. SixOnTwoOff is always 5. FourOnFourOff varies week by
// week, so the generator is asked for the ON-day count inside that tax
// week (week start through +6 days). Custom is the size of the weekday set.
func (j Job) BaseDaysOn(date Date) int {
	if j.Pattern == nil {
		return 0
	}

	switch j.Pattern.Kind {
	case PatternSixOnTwoOff:
		return 5
	case PatternFourOnFourOff:
		week := NewTaxWeek(date, j.WeekStart())
		first := week.WeekStartDate
		last := first.AddDays(6)
		return j.ScheduledShiftsBetween(first, last).OnCount()
	case PatternCustom:
		return len(j.Pattern.Weekdays)
	default:
		return 0
	}
}
