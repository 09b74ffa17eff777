package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rota-engine/payroll"
	"github.com/warp/rota-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testShift(id int64, jobID int64, date payroll.Date) payroll.Shift {
	return payroll.NewShift(payroll.ShiftID(id), payroll.JobID(jobID), date,
		payroll.ShiftScheduled,
		payroll.NewTimeOfDay(9, 0, 0).At(date),
		payroll.NewTimeOfDay(17, 0, 0).At(date))
}

// =============================================================================
// JOBS
// =============================================================================

func TestStore_JobRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := payroll.NewJob(1, "warehouse nights", 1250).
		WithShiftPattern(payroll.SixOnTwoOff()).
		WithFirstDay(payroll.NewDate(2026, time.April, 6)).
		WithUnsociableWindow(payroll.TimeWindow{
			Start: payroll.NewTimeOfDay(22, 0, 0),
			End:   payroll.NewTimeOfDay(6, 0, 0),
		}).
		WithUnsociableMultiplier(1.5).
		WithSaturdayMultiplier(1.5).
		WithTaxWeekStart(payroll.WeekStartsMonday)

	require.NoError(t, store.PutJob(ctx, job))

	loaded, err := store.Job(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, job.Name, loaded.Name)
	assert.Equal(t, job.BasicPay, loaded.BasicPay)
	require.NotNil(t, loaded.Pattern)
	assert.Equal(t, payroll.PatternSixOnTwoOff, loaded.Pattern.Kind)
	require.NotNil(t, loaded.FirstDay)
	assert.Equal(t, "2026-04-06", loaded.FirstDay.String())
	require.NotNil(t, loaded.UnsociableWindow)
	assert.Equal(t, payroll.NewTimeOfDay(22, 0, 0), loaded.UnsociableWindow.Start)
	require.NotNil(t, loaded.UnsociableMultiplier)
	assert.True(t, loaded.UnsociableMultiplier.Equal(decimal.NewFromFloat(1.5)))
	require.NotNil(t, loaded.TaxWeekStart)
	assert.Equal(t, payroll.WeekStartsMonday, *loaded.TaxWeekStart)
}

func TestStore_JobNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Job(context.Background(), 99)
	assert.ErrorIs(t, err, payroll.ErrJobNotFound)
	assert.True(t, payroll.IsNotFound(err))
}

func TestStore_PutJobUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutJob(ctx, payroll.NewJob(1, "before", 1000)))
	require.NoError(t, store.PutJob(ctx, payroll.NewJob(1, "after", 1100)))

	jobs, err := store.Jobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "after", jobs[0].Name)
	assert.Equal(t, payroll.Pence(1100), jobs[0].BasicPay)
}

// =============================================================================
// SHIFTS
// =============================================================================

func TestStore_ShiftRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	date := payroll.NewDate(2026, time.April, 7)
	shift := testShift(1, 1, date)
	require.NoError(t, store.PutShift(ctx, shift))

	loaded, err := store.Shift(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, shift.JobID, loaded.JobID)
	assert.Equal(t, shift.Date, loaded.Date)
	assert.Equal(t, 20260407, loaded.DateKey)
	assert.True(t, shift.Start.Equal(loaded.Start))
	assert.True(t, shift.Finish.Equal(loaded.Finish))
	assert.Equal(t, payroll.ShiftScheduled, loaded.Type)
}

func TestStore_ShiftNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Shift(context.Background(), 42)
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)
}

func TestStore_ShiftsInRange(t *testing.T) {
	// GIVEN: Shifts across April for two jobs
	// WHEN: Querying a one-week range for one job
	// THEN: Only that job's shifts inside the range return, date-ordered

	store := newTestStore(t)
	ctx := context.Background()

	april := func(day int) payroll.Date { return payroll.NewDate(2026, time.April, day) }
	require.NoError(t, store.PutShift(ctx, testShift(1, 1, april(6))))
	require.NoError(t, store.PutShift(ctx, testShift(2, 1, april(20))))
	require.NoError(t, store.PutShift(ctx, testShift(3, 1, april(8))))
	require.NoError(t, store.PutShift(ctx, testShift(4, 2, april(7))))

	jobID := payroll.JobID(1)
	shifts, err := store.ShiftsInRange(ctx, april(6), april(12), &jobID)
	require.NoError(t, err)

	require.Len(t, shifts, 2)
	assert.Equal(t, payroll.ShiftID(1), shifts[0].ID)
	assert.Equal(t, payroll.ShiftID(3), shifts[1].ID)

	// Without a job filter the other job's shift shows up too.
	all, err := store.ShiftsInRange(ctx, april(6), april(12), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// =============================================================================
// ADJUSTMENTS
// =============================================================================

func TestStore_MultiplierRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mult := payroll.SalaryMultiplier{
		ID:       1,
		JobID:    1,
		Name:     "bank holiday",
		Behavior: payroll.BehaviorHighestOnly,
		Priority: payroll.PriorityHigh,
		Schedule: payroll.OneTimeOn(payroll.NewDate(2026, time.May, 4)),
		Factor:   decimal.NewFromFloat(2.0),
	}
	require.NoError(t, store.PutMultiplier(ctx, mult))

	loaded, err := store.MultipliersForJob(ctx, 1)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	assert.Equal(t, mult.Name, loaded[0].Name)
	assert.Equal(t, mult.Behavior, loaded[0].Behavior)
	assert.True(t, mult.Factor.Equal(loaded[0].Factor))
	assert.True(t, loaded[0].Schedule.AppliesOn(payroll.NewDate(2026, time.May, 4)))
}

func TestStore_DeductionAndPaymentDefRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	deduction := payroll.Deduction{
		ID:       1,
		JobID:    1,
		Name:     "union dues",
		Amount:   1500,
		Schedule: payroll.MonthlyOn(payroll.NewDate(2026, time.January, 1), 1),
	}
	require.NoError(t, store.PutDeduction(ctx, deduction))

	amount := payroll.Pence(500)
	def := payroll.CustomPaymentDef{
		ID:       1,
		JobID:    1,
		Name:     "standby allowance",
		Amount:   &amount,
		Schedule: payroll.WeeklyOn(payroll.NewDate(2026, time.April, 6), time.Friday),
	}
	require.NoError(t, store.PutPaymentDef(ctx, def))

	deductions, err := store.DeductionsForJob(ctx, 1)
	require.NoError(t, err)
	require.Len(t, deductions, 1)
	assert.Equal(t, payroll.Pence(1500), deductions[0].Amount)

	defs, err := store.PaymentDefsForJob(ctx, 1)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.NotNil(t, defs[0].Amount)
	assert.Equal(t, payroll.Pence(500), *defs[0].Amount)
	assert.True(t, defs[0].Schedule.AppliesOn(payroll.NewDate(2026, time.April, 10)))
}

// =============================================================================
// ID SEEDING
// =============================================================================

func TestStore_MaxIDAndSequenceSeeding(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutJob(ctx, payroll.NewJob(3, "a", 1000)))
	require.NoError(t, store.PutJob(ctx, payroll.NewJob(7, "b", 1000)))
	require.NoError(t, store.PutShift(ctx, testShift(12, 3, payroll.NewDate(2026, time.April, 6))))

	max, err := store.MaxID(ctx, payroll.KindJob)
	require.NoError(t, err)
	assert.Equal(t, int64(7), max)

	max, err = store.MaxID(ctx, payroll.KindMultiplier)
	require.NoError(t, err)
	assert.Equal(t, int64(0), max, "empty table seeds from zero")

	seq := payroll.NewSequences()
	require.NoError(t, payroll.SeedSequences(ctx, store, seq))

	assert.Equal(t, payroll.JobID(8), seq.NextJobID())
	assert.Equal(t, payroll.ShiftID(13), seq.NextShiftID())
	assert.Equal(t, payroll.MultiplierID(1), seq.NextMultiplierID())
}
