/*
Package report builds period payment summaries for a job.

PURPOSE:
  Gathers a job's shifts for a period via the store's date-key range
  scan, computes the payment lines for each shift (day-type bands plus
  custom payment definitions), and derives the PAYE figures: gross,
  income tax, National Insurance, custom deductions, and net.

  The report layer owns all persistence access so the payroll engines
  stay pure; every store failure is propagated to the caller unwrapped
  of any retry policy.
*/
package report

import (
	"context"
	"fmt"

	"github.com/warp/rota-engine/payroll"
)

// PaymentSummary is one job's itemized pay for a period.
type PaymentSummary struct {
	JobID       payroll.JobID
	PeriodStart payroll.Date
	PeriodEnd   payroll.Date

	// Payments holds every line item in shift order, band lines first,
	// then custom lines, per shift. Lines are never merged.
	Payments []payroll.ShiftPayment

	Deductions []payroll.Deduction

	Gross           payroll.Pence
	Tax             payroll.Pence
	NI              payroll.Pence
	TotalDeductions payroll.Pence
	Net             payroll.Pence
}

// Builder computes payment summaries from a store.
type Builder struct {
	Store    payroll.Store
	Calendar payroll.HolidayCalendar
	Region   payroll.Region
}

func NewBuilder(store payroll.Store, calendar payroll.HolidayCalendar, region payroll.Region) *Builder {
	if calendar == nil {
		calendar = payroll.NoHolidays{}
	}
	return &Builder{Store: store, Calendar: calendar, Region: region}
}

// Summarize builds the payment summary for one job over [start, end].
func (b *Builder) Summarize(ctx context.Context, jobID payroll.JobID, start, end payroll.Date) (*PaymentSummary, error) {
	job, err := b.Store.Job(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}

	shifts, err := b.Store.ShiftsInRange(ctx, start, end, &jobID)
	if err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}

	defs, err := payroll.PaymentDefsForPeriod(ctx, b.Store, jobID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load payment definitions: %w", err)
	}

	deductions, err := payroll.DeductionsForPeriod(ctx, b.Store, jobID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load deductions: %w", err)
	}

	summary := &PaymentSummary{
		JobID:       jobID,
		PeriodStart: start,
		PeriodEnd:   end,
		Deductions:  deductions,
	}

	for _, shift := range shifts {
		summary.Payments = append(summary.Payments, payroll.PayForShift(shift, job, b.Calendar)...)
		summary.Payments = append(summary.Payments, payroll.CustomPayments(shift, job, defs)...)
	}

	summary.Gross = payroll.TotalAmount(summary.Payments)

	paye := payroll.NewPayeSummary(summary.Gross, b.Region, deductions...)
	summary.Tax = paye.Tax()
	summary.NI = paye.NationalInsurance()
	summary.TotalDeductions = paye.TotalDeductions()
	summary.Net = paye.Net()

	return summary, nil
}

// ShiftPayments computes the payment lines (band plus custom) for one
// stored shift.
func (b *Builder) ShiftPayments(ctx context.Context, shiftID payroll.ShiftID) ([]payroll.ShiftPayment, error) {
	shift, err := b.Store.Shift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("load shift: %w", err)
	}
	job, err := b.Store.Job(ctx, shift.JobID)
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}
	defs, err := b.Store.PaymentDefsForJob(ctx, shift.JobID)
	if err != nil {
		return nil, fmt.Errorf("load payment definitions: %w", err)
	}

	payments := payroll.PayForShift(shift, job, b.Calendar)
	payments = append(payments, payroll.CustomPayments(shift, job, defs)...)
	return payments, nil
}
