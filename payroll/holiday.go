/*
holiday.go - Bank holiday calendar

PURPOSE:
  The pay calculator needs to know whether a shift's date is a bank
  holiday. The calendar is an explicitly constructed, read-only object
  passed into the engines - built once at startup (typically from
  configuration) and never mutated during a calculation batch.
*/
package payroll

// BankHoliday is one named holiday date.
type BankHoliday struct {
	Date Date
	Name string
}

// HolidayCalendar answers exact-date bank holiday lookups.
type HolidayCalendar interface {
	IsBankHoliday(date Date) bool

	// HolidayName returns the holiday's name and true when date is a
	// bank holiday.
	HolidayName(date Date) (string, bool)
}

// =============================================================================
// STATIC CALENDAR
// =============================================================================

// StaticHolidayCalendar is a fixed holiday set with O(1) date lookup.
type StaticHolidayCalendar struct {
	names map[int]string // Date.Key() -> name
}

func NewHolidayCalendar(holidays ...BankHoliday) *StaticHolidayCalendar {
	names := make(map[int]string, len(holidays))
	for _, h := range holidays {
		names[h.Date.Key()] = h.Name
	}
	return &StaticHolidayCalendar{names: names}
}

func (c *StaticHolidayCalendar) IsBankHoliday(date Date) bool {
	_, ok := c.names[date.Key()]
	return ok
}

func (c *StaticHolidayCalendar) HolidayName(date Date) (string, bool) {
	name, ok := c.names[date.Key()]
	return name, ok
}

// NoHolidays is the calendar for jobs with no holiday premiums configured.
type NoHolidays struct{}

func (NoHolidays) IsBankHoliday(Date) bool         { return false }
func (NoHolidays) HolidayName(Date) (string, bool) { return "", false }
