package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/rota-engine/payroll"
)

// =============================================================================
// INCOME TAX
// =============================================================================

func TestIncomeTax_RestOfUK(t *testing.T) {
	// GIVEN: £60,000 gross in England
	// WHEN: Computing income tax
	// THEN: Taxable £47,430; basic band £7,540.00 + higher band £3,892.00

	tax := payroll.IncomeTax(6_000_000, payroll.RegionEngland)
	assert.Equal(t, payroll.Pence(1_143_200), tax)
}

func TestIncomeTax_BelowAllowance(t *testing.T) {
	assert.Equal(t, payroll.Pence(0), payroll.IncomeTax(1_000_000, payroll.RegionEngland))
	assert.Equal(t, payroll.Pence(0), payroll.IncomeTax(1_257_000, payroll.RegionScotland))
	assert.Equal(t, payroll.Pence(0), payroll.IncomeTax(0, payroll.RegionWales))
}

func TestIncomeTax_ScottishBands(t *testing.T) {
	// £20,000 gross: taxable £7,430. Starter £3,957 at 19% = £751.83,
	// remainder £3,473 at 20% = £694.60.
	tax := payroll.IncomeTax(2_000_000, payroll.RegionScotland)
	assert.Equal(t, payroll.Pence(144_643), tax)
}

func TestIncomeTax_ScotlandHigherThanRUKAtSameGross(t *testing.T) {
	gross := payroll.Pence(6_000_000)
	assert.Greater(t,
		payroll.IncomeTax(gross, payroll.RegionScotland),
		payroll.IncomeTax(gross, payroll.RegionEngland))
}

func TestIncomeTax_AllowanceTaper(t *testing.T) {
	// £110,000 gross tapers the allowance by £5,000 to £7,570.
	// Taxable £102,430: basic £7,540.00 + higher £25,892.00.
	tax := payroll.IncomeTax(11_000_000, payroll.RegionEngland)
	assert.Equal(t, payroll.Pence(3_343_200), tax)
}

func TestIncomeTax_AllowanceFullyTapered(t *testing.T) {
	// At £125,140 and above the allowance is gone entirely; the whole
	// gross is taxable.
	gross := payroll.Pence(12_514_000)
	tax := payroll.IncomeTax(gross, payroll.RegionEngland)

	// Basic 3,770,000 at 20% + higher 7,487,000 at 40% + additional
	// 1,257,000 at 45%.
	want := payroll.Pence(754_000 + 2_994_800 + 565_650)
	assert.Equal(t, want, tax)
}

func TestIncomeTax_RegionsOutsideScotlandShareBands(t *testing.T) {
	gross := payroll.Pence(6_000_000)
	england := payroll.IncomeTax(gross, payroll.RegionEngland)

	assert.Equal(t, england, payroll.IncomeTax(gross, payroll.RegionWales))
	assert.Equal(t, england, payroll.IncomeTax(gross, payroll.RegionNorthernIreland))
}

// =============================================================================
// NATIONAL INSURANCE
// =============================================================================

func TestNationalInsurance_BelowPrimaryThreshold(t *testing.T) {
	assert.Equal(t, payroll.Pence(0), payroll.NationalInsurance(1_257_000))
	assert.Equal(t, payroll.Pence(0), payroll.NationalInsurance(0))
}

func TestNationalInsurance_AtUpperEarningsLimit(t *testing.T) {
	// The full main band (£50,270 - £12,570 = £37,700) at 8%.
	ni := payroll.NationalInsurance(5_027_000)
	assert.Equal(t, payroll.Pence(301_600), ni)
}

func TestNationalInsurance_AboveUpperEarningsLimit(t *testing.T) {
	// £60,000: full main band plus £9,730 at 2% = £194.60.
	ni := payroll.NationalInsurance(6_000_000)
	assert.Equal(t, payroll.Pence(301_600+19_460), ni)
}

// =============================================================================
// PAYE SUMMARY
// =============================================================================

func TestPayeSummary_Totals(t *testing.T) {
	// GIVEN: £60,000 gross in England with a 10,000p custom deduction
	// WHEN: Deriving the PAYE figures
	// THEN: Net = gross - tax - NI - custom

	deduction := payroll.Deduction{ID: 1, JobID: 1, Name: "union dues", Amount: 10_000}
	summary := payroll.NewPayeSummary(6_000_000, payroll.RegionEngland, deduction)

	assert.Equal(t, payroll.Pence(1_143_200), summary.Tax())
	assert.Equal(t, payroll.Pence(321_060), summary.NationalInsurance())
	assert.Equal(t, payroll.Pence(1_474_260), summary.TotalDeductions())
	assert.Equal(t, payroll.Pence(4_525_740), summary.Net())
}

func TestPayeSummary_NetSaturatesAtZero(t *testing.T) {
	// A deduction larger than gross never drives net negative.
	deduction := payroll.Deduction{ID: 1, JobID: 1, Name: "clawback", Amount: 2_000_000}
	summary := payroll.NewPayeSummary(1_000_000, payroll.RegionEngland, deduction)

	assert.Equal(t, payroll.Pence(0), summary.Net())
}
