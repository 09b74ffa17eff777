/*
calendar.go - Calendar dates, time-of-day windows, and UK tax weeks

PURPOSE:
  Date is the engine's calendar-day value (UTC midnight, no clock reads).
  TimeWindow computes the per-second overlap between a worked shift and a
  configured time-of-day window, including windows that cross midnight.
  TaxWeek resolves a date into its UK payroll week number and financial
  year (financial years start on 6 April).

SEE ALSO:
  - schedule.go: iterates Dates day by day from a pattern's anchor
  - pay.go: uses TimeWindow overlap to split unsociable vs. basic seconds
*/
package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day (UTC midnight)
// =============================================================================

type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Year() int           { return d.Time.Year() }
func (d Date) Month() time.Month   { return d.Time.Month() }
func (d Date) Day() int            { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool        { return d.Time.IsZero() }

func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool  { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Key is the sortable integer form year*10000 + month*100 + day,
// used as the secondary index for date-range scans in the stores.
func (d Date) Key() int {
	return d.Year()*10000 + int(d.Month())*100 + d.Day()
}

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// ParseDate accepts the wire form produced by String (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// =============================================================================
// TIME OF DAY & TIME WINDOW
// =============================================================================

// TimeOfDay is seconds since midnight (0 .. 86399).
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

func NewTimeOfDay(hour, min, sec int) TimeOfDay {
	return TimeOfDay(hour*3600 + min*60 + sec)
}

func (t TimeOfDay) Seconds() int { return int(t) }

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// At anchors the time of day onto a calendar date.
func (t TimeOfDay) At(d Date) time.Time {
	return d.Time.Add(time.Duration(t) * time.Second)
}

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// TimeWindow is a daily-recurring time-of-day span, e.g. 22:00-06:00.
// End before Start means the window crosses midnight.
type TimeWindow struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w TimeWindow) CrossesMidnight() bool { return w.End < w.Start }

// OverlapSeconds returns how many seconds of [start, finish) fall inside
// the window. The shift is split into per-calendar-day segments; for a
// midnight-crossing window each segment contributes its evening portion
// (window start to midnight) and its morning portion (midnight to window
// end) separately.
func (w TimeWindow) OverlapSeconds(start, finish time.Time) int64 {
	if !finish.After(start) {
		return 0
	}

	var total int64
	day := DateOf(start)
	for day.Time.Before(finish) {
		dayStart := day.Time
		dayEnd := day.AddDays(1).Time

		segStart := start
		if segStart.Before(dayStart) {
			segStart = dayStart
		}
		segEnd := finish
		if segEnd.After(dayEnd) {
			segEnd = dayEnd
		}

		// Segment bounds as seconds since this day's midnight; the end may
		// legitimately be 86400.
		ss := int64(segStart.Sub(dayStart) / time.Second)
		se := int64(segEnd.Sub(dayStart) / time.Second)

		if w.CrossesMidnight() {
			total += spanOverlap(ss, se, int64(w.Start), secondsPerDay)
			total += spanOverlap(ss, se, 0, int64(w.End))
		} else {
			total += spanOverlap(ss, se, int64(w.Start), int64(w.End))
		}

		day = day.AddDays(1)
	}
	return total
}

func spanOverlap(aStart, aEnd, bStart, bEnd int64) int64 {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}

// =============================================================================
// TAX WEEK - UK payroll week within a financial year
// =============================================================================

// TaxWeekStart selects the week-start convention for a job's rota.
type TaxWeekStart string

const (
	WeekStartsSunday TaxWeekStart = "sunday"
	WeekStartsMonday TaxWeekStart = "monday"
)

// TaxWeek is the resolved payroll week for a date: week-commencing number
// (1-53), "YYYY/YYYY" financial-year label, and the start date of the
// literal week span containing the date.
type TaxWeek struct {
	WeekCommencing int
	FinancialYear  string
	Start          TaxWeekStart
	WeekStartDate  Date
}

// NewTaxWeek resolves the tax week for a date under a week-start convention.
// Under the Sunday convention a date that is itself a Sunday counts toward
// the following week block, while WeekStartDate still anchors to the
// Sunday-to-Saturday span containing the original date.
func NewTaxWeek(date Date, start TaxWeekStart) TaxWeek {
	fixed := date
	if start == WeekStartsSunday && date.Weekday() == time.Sunday {
		fixed = date.AddDays(1)
	}

	return TaxWeek{
		WeekCommencing: weekCommencing(fixed),
		FinancialYear:  financialYearLabel(fixed),
		Start:          start,
		WeekStartDate:  date.AddDays(-daysFromWeekStart(date.Weekday(), start)),
	}
}

func daysFromWeekStart(wd time.Weekday, start TaxWeekStart) int {
	if start == WeekStartsSunday {
		return int(wd) // time.Sunday == 0
	}
	return (int(wd) + 6) % 7
}

func weekCommencing(date Date) int {
	fyStart := NewDate(financialYearStartYear(date), time.April, 6)
	daysElapsed := int(date.Time.Sub(fyStart.Time).Hours() / 24)
	return daysElapsed/7 + 1
}

// financialYearStartYear returns the calendar year in which the financial
// year containing date began. The boundary is always 6 April.
func financialYearStartYear(date Date) int {
	if date.Month() < time.April || (date.Month() == time.April && date.Day() < 6) {
		return date.Year() - 1
	}
	return date.Year()
}

func financialYearLabel(date Date) string {
	y := financialYearStartYear(date)
	return fmt.Sprintf("%d/%d", y, y+1)
}
