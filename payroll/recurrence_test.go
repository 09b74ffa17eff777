package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/rota-engine/payroll"
)

func TestRecurrence_OneTime(t *testing.T) {
	date := payroll.NewDate(2026, time.April, 10)
	schedule := payroll.OneTimeOn(date)

	assert.True(t, schedule.AppliesOn(date))
	assert.False(t, schedule.AppliesOn(date.AddDays(1)))
	assert.False(t, schedule.AppliesOn(date.AddDays(-1)))
}

func TestRecurrence_Weekly(t *testing.T) {
	// Fridays from 2026-04-06.
	start := payroll.NewDate(2026, time.April, 6)
	schedule := payroll.WeeklyOn(start, time.Friday)

	friday := payroll.NewDate(2026, time.April, 10)
	assert.True(t, schedule.AppliesOn(friday))
	assert.True(t, schedule.AppliesOn(friday.AddDays(7)))
	assert.False(t, schedule.AppliesOn(friday.AddDays(1)))

	// Not before the start date, even on a matching weekday.
	assert.False(t, schedule.AppliesOn(friday.AddDays(-7)))
}

func TestRecurrence_Weekly_Bounded(t *testing.T) {
	start := payroll.NewDate(2026, time.April, 6)
	end := payroll.NewDate(2026, time.April, 30)
	schedule := payroll.WeeklyOn(start, time.Friday).Until(end)

	assert.True(t, schedule.AppliesOn(payroll.NewDate(2026, time.April, 24)))
	assert.False(t, schedule.AppliesOn(payroll.NewDate(2026, time.May, 1)), "after end date")
}

func TestRecurrence_Monthly(t *testing.T) {
	start := payroll.NewDate(2026, time.January, 1)
	schedule := payroll.MonthlyOn(start, 1, 15)

	assert.True(t, schedule.AppliesOn(payroll.NewDate(2026, time.April, 1)))
	assert.True(t, schedule.AppliesOn(payroll.NewDate(2026, time.April, 15)))
	assert.False(t, schedule.AppliesOn(payroll.NewDate(2026, time.April, 16)))
	assert.False(t, schedule.AppliesOn(payroll.NewDate(2025, time.December, 15)), "before start")
}

func TestRecurrence_SpecificDates(t *testing.T) {
	christmas := payroll.NewDate(2026, time.December, 25)
	boxing := payroll.NewDate(2026, time.December, 26)
	schedule := payroll.OnDates(christmas, boxing)

	assert.True(t, schedule.AppliesOn(christmas))
	assert.True(t, schedule.AppliesOn(boxing))
	assert.False(t, schedule.AppliesOn(payroll.NewDate(2026, time.December, 27)))
}

func TestRecurrence_AppliesWithin(t *testing.T) {
	start := payroll.NewDate(2026, time.April, 6)
	schedule := payroll.WeeklyOn(start, time.Friday)

	// 2026-04-10 is the Friday inside the range.
	assert.True(t, schedule.AppliesWithin(
		payroll.NewDate(2026, time.April, 8),
		payroll.NewDate(2026, time.April, 12)))

	// A Monday-to-Thursday range contains no Friday.
	assert.False(t, schedule.AppliesWithin(
		payroll.NewDate(2026, time.April, 6),
		payroll.NewDate(2026, time.April, 9)))
}
