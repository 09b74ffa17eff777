package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rota-engine/payroll"
)

// =============================================================================
// DATE TESTS
// =============================================================================

func TestDate_Key_SortsChronologically(t *testing.T) {
	earlier := payroll.NewDate(2026, time.April, 30)
	later := payroll.NewDate(2026, time.May, 1)

	assert.Equal(t, 20260430, earlier.Key())
	assert.Equal(t, 20260501, later.Key())
	assert.Less(t, earlier.Key(), later.Key())
}

func TestParseDate_RoundTrip(t *testing.T) {
	date, err := payroll.ParseDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", date.String())
	assert.Equal(t, time.Tuesday, date.Weekday())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := payroll.ParseDate("01/09/2026")
	assert.Error(t, err)
}

// =============================================================================
// TIME WINDOW TESTS
// =============================================================================

func TestTimeWindow_Overlap_MidnightCrossing(t *testing.T) {
	// GIVEN: An unsociable window of 22:00-06:00
	// WHEN: A shift runs 20:00 to 04:00 the next morning
	// THEN: 6 hours overlap (22:00-00:00 plus 00:00-04:00)

	window := payroll.TimeWindow{
		Start: payroll.NewTimeOfDay(22, 0, 0),
		End:   payroll.NewTimeOfDay(6, 0, 0),
	}
	require.True(t, window.CrossesMidnight())

	start := time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC)
	finish := time.Date(2026, time.March, 11, 4, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(21600), window.OverlapSeconds(start, finish))
}

func TestTimeWindow_Overlap_SameDay(t *testing.T) {
	// GIVEN: A 09:00-17:00 window
	// WHEN: A shift runs 08:00-12:00
	// THEN: 3 hours overlap

	window := payroll.TimeWindow{
		Start: payroll.NewTimeOfDay(9, 0, 0),
		End:   payroll.NewTimeOfDay(17, 0, 0),
	}
	require.False(t, window.CrossesMidnight())

	start := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	finish := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(10800), window.OverlapSeconds(start, finish))
}

func TestTimeWindow_Overlap_Disjoint(t *testing.T) {
	window := payroll.TimeWindow{
		Start: payroll.NewTimeOfDay(22, 0, 0),
		End:   payroll.NewTimeOfDay(6, 0, 0),
	}

	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	finish := time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(0), window.OverlapSeconds(start, finish))
}

func TestTimeWindow_Overlap_EmptyShift(t *testing.T) {
	window := payroll.TimeWindow{
		Start: payroll.NewTimeOfDay(22, 0, 0),
		End:   payroll.NewTimeOfDay(6, 0, 0),
	}

	at := time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(0), window.OverlapSeconds(at, at))
}

func TestTimeWindow_Overlap_MultiDayShift(t *testing.T) {
	// A 32-hour shift spans two nights; each night contributes its own
	// overlap with the window.
	window := payroll.TimeWindow{
		Start: payroll.NewTimeOfDay(22, 0, 0),
		End:   payroll.NewTimeOfDay(6, 0, 0),
	}

	start := time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC)
	finish := time.Date(2026, time.March, 12, 4, 0, 0, 0, time.UTC)

	// Night 1: 22:00-06:00 = 8h. Night 2: 22:00-24:00 + 00:00-04:00 = 6h.
	assert.Equal(t, int64(14*3600), window.OverlapSeconds(start, finish))
}

func TestParseTimeOfDay(t *testing.T) {
	short, err := payroll.ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, payroll.NewTimeOfDay(8, 30, 0), short)

	long, err := payroll.ParseTimeOfDay("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, payroll.NewTimeOfDay(23, 59, 59), long)

	_, err = payroll.ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

// =============================================================================
// TAX WEEK TESTS
// =============================================================================

func TestTaxWeek_MidYear(t *testing.T) {
	// GIVEN: 2026-09-01, a Tuesday; the financial year started 2026-04-06
	// WHEN: Resolving under the Sunday convention
	// THEN: 148 days elapsed puts it in week 22 of 2026/2027

	date := payroll.NewDate(2026, time.September, 1)
	week := payroll.NewTaxWeek(date, payroll.WeekStartsSunday)

	assert.Equal(t, 22, week.WeekCommencing)
	assert.Equal(t, "2026/2027", week.FinancialYear)
	assert.Equal(t, payroll.NewDate(2026, time.August, 30), week.WeekStartDate)
}

func TestTaxWeek_SundayCountsTowardFollowingWeek(t *testing.T) {
	// GIVEN: 2026-04-12, a Sunday
	// WHEN: Resolving under the Sunday convention
	// THEN: The week number is computed from the following Monday (week 2),
	//       while the literal week span still starts on the Sunday itself

	date := payroll.NewDate(2026, time.April, 12)
	require.Equal(t, time.Sunday, date.Weekday())

	week := payroll.NewTaxWeek(date, payroll.WeekStartsSunday)

	assert.Equal(t, 2, week.WeekCommencing)
	assert.Equal(t, "2026/2027", week.FinancialYear)
	assert.Equal(t, date, week.WeekStartDate)
}

func TestTaxWeek_SundayRule_OnlyUnderSundayConvention(t *testing.T) {
	date := payroll.NewDate(2026, time.April, 12)
	require.Equal(t, time.Sunday, date.Weekday())

	week := payroll.NewTaxWeek(date, payroll.WeekStartsMonday)

	// Under the Monday convention the Sunday stays in its own week.
	assert.Equal(t, 1, week.WeekCommencing)
	assert.Equal(t, payroll.NewDate(2026, time.April, 6), week.WeekStartDate)
}

func TestTaxWeek_FinancialYearBoundary(t *testing.T) {
	// 2026-04-05 is the last day of 2025/2026 under the Monday convention.
	lastDay := payroll.NewDate(2026, time.April, 5)
	week := payroll.NewTaxWeek(lastDay, payroll.WeekStartsMonday)

	assert.Equal(t, 53, week.WeekCommencing)
	assert.Equal(t, "2025/2026", week.FinancialYear)

	firstDay := payroll.NewDate(2026, time.April, 6)
	week = payroll.NewTaxWeek(firstDay, payroll.WeekStartsMonday)

	assert.Equal(t, 1, week.WeekCommencing)
	assert.Equal(t, "2026/2027", week.FinancialYear)
}

func TestTaxWeek_BoundarySunday_RollsIntoNewYear(t *testing.T) {
	// 2026-04-05 is a Sunday; under the Sunday convention it counts toward
	// the following Monday, which is already in the new financial year.
	date := payroll.NewDate(2026, time.April, 5)
	require.Equal(t, time.Sunday, date.Weekday())

	week := payroll.NewTaxWeek(date, payroll.WeekStartsSunday)

	assert.Equal(t, 1, week.WeekCommencing)
	assert.Equal(t, "2026/2027", week.FinancialYear)
	assert.Equal(t, date, week.WeekStartDate)
}
