package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rota-engine/payroll"
	"github.com/warp/rota-engine/payroll/store"
	"github.com/warp/rota-engine/report"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func seededStore(t *testing.T) (*store.Memory, payroll.Job) {
	t.Helper()

	mem := store.NewMemory()
	ctx := context.Background()

	job := payroll.NewJob(1, "warehouse", 1000).WithSaturdayMultiplier(1.5)
	require.NoError(t, mem.PutJob(ctx, job))

	return mem, job
}

func putShift(t *testing.T, mem *store.Memory, id int64, date payroll.Date) payroll.Shift {
	t.Helper()

	shift := payroll.NewShift(payroll.ShiftID(id), 1, date, payroll.ShiftScheduled,
		payroll.NewTimeOfDay(9, 0, 0).At(date),
		payroll.NewTimeOfDay(17, 0, 0).At(date))
	require.NoError(t, mem.PutShift(context.Background(), shift))
	return shift
}

// =============================================================================
// PERIOD SUMMARY
// =============================================================================

func TestBuilder_Summarize(t *testing.T) {
	// GIVEN: A weekday shift and a Saturday shift at £10/hour, Saturday 1.5x
	// WHEN: Summarizing the week
	// THEN: Gross is £80 + £120; PAYE on that gross is zero (below allowance)

	mem, job := seededStore(t)
	ctx := context.Background()

	friday := payroll.NewDate(2026, time.April, 10)
	saturday := payroll.NewDate(2026, time.April, 11)
	putShift(t, mem, 1, friday)
	putShift(t, mem, 2, saturday)

	builder := report.NewBuilder(mem, nil, payroll.RegionEngland)
	summary, err := builder.Summarize(ctx, job.ID, friday, saturday)
	require.NoError(t, err)

	require.Len(t, summary.Payments, 2)
	assert.Equal(t, payroll.PayBasic, summary.Payments[0].Type)
	assert.Equal(t, payroll.Pence(8000), summary.Payments[0].Amount)
	assert.Equal(t, payroll.PaySaturday, summary.Payments[1].Type)
	assert.Equal(t, payroll.Pence(12000), summary.Payments[1].Amount)

	assert.Equal(t, payroll.Pence(20000), summary.Gross)
	assert.Equal(t, payroll.Pence(0), summary.Tax)
	assert.Equal(t, payroll.Pence(0), summary.NI)
	assert.Equal(t, payroll.Pence(20000), summary.Net)
}

func TestBuilder_Summarize_ExcludesShiftsOutsidePeriod(t *testing.T) {
	mem, job := seededStore(t)
	ctx := context.Background()

	inside := payroll.NewDate(2026, time.April, 8)
	outside := payroll.NewDate(2026, time.May, 8)
	putShift(t, mem, 1, inside)
	putShift(t, mem, 2, outside)

	builder := report.NewBuilder(mem, nil, payroll.RegionEngland)
	summary, err := builder.Summarize(ctx, job.ID, inside.AddDays(-1), inside.AddDays(1))
	require.NoError(t, err)

	require.Len(t, summary.Payments, 1)
	assert.Equal(t, payroll.ShiftID(1), summary.Payments[0].ShiftID)
}

func TestBuilder_Summarize_CustomPaymentsAndDeductions(t *testing.T) {
	// GIVEN: A weekly Friday allowance and a deduction firing in the period
	// WHEN: Summarizing
	// THEN: The allowance adds a custom line; the deduction reduces net

	mem, job := seededStore(t)
	ctx := context.Background()

	friday := payroll.NewDate(2026, time.April, 10)
	putShift(t, mem, 1, friday)

	amount := payroll.Pence(500)
	require.NoError(t, mem.PutPaymentDef(ctx, payroll.CustomPaymentDef{
		ID:       1,
		JobID:    job.ID,
		Name:     "standby allowance",
		Amount:   &amount,
		Schedule: payroll.WeeklyOn(payroll.NewDate(2026, time.April, 6), time.Friday),
	}))
	require.NoError(t, mem.PutDeduction(ctx, payroll.Deduction{
		ID:       1,
		JobID:    job.ID,
		Name:     "union dues",
		Amount:   1500,
		Schedule: payroll.WeeklyOn(payroll.NewDate(2026, time.April, 6), time.Friday),
	}))

	builder := report.NewBuilder(mem, nil, payroll.RegionEngland)
	summary, err := builder.Summarize(ctx, job.ID, friday, friday)
	require.NoError(t, err)

	require.Len(t, summary.Payments, 2)
	assert.Equal(t, payroll.PayCustom, summary.Payments[1].Type)
	assert.Equal(t, "standby allowance", summary.Payments[1].Name)

	assert.Equal(t, payroll.Pence(8500), summary.Gross)
	assert.Equal(t, payroll.Pence(1500), summary.TotalDeductions)
	assert.Equal(t, payroll.Pence(7000), summary.Net)
}

func TestBuilder_Summarize_UnknownJob(t *testing.T) {
	mem := store.NewMemory()
	builder := report.NewBuilder(mem, nil, payroll.RegionEngland)

	_, err := builder.Summarize(context.Background(), 99,
		payroll.NewDate(2026, time.April, 1), payroll.NewDate(2026, time.April, 30))

	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrJobNotFound)
}

// =============================================================================
// SINGLE SHIFT
// =============================================================================

func TestBuilder_ShiftPayments(t *testing.T) {
	mem, _ := seededStore(t)
	ctx := context.Background()

	saturday := payroll.NewDate(2026, time.April, 11)
	shift := putShift(t, mem, 1, saturday)

	builder := report.NewBuilder(mem, nil, payroll.RegionEngland)
	payments, err := builder.ShiftPayments(ctx, shift.ID)
	require.NoError(t, err)

	require.Len(t, payments, 1)
	assert.Equal(t, payroll.PaySaturday, payments[0].Type)
	assert.Equal(t, payroll.Pence(12000), payments[0].Amount)
}
