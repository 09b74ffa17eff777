/*
tax.go - UK income tax and National Insurance bands

PURPOSE:
  Pure banded calculations over annual gross amounts in pence. Band
  tables are hard-coded for the current tax year; parameterizing by year
  is future work.

ARITHMETIC:
  Everything is integer pence. Band slices use integer multiply-then-
  divide by the percentage, truncating. Truncation is part of the
  contract: results must reproduce exactly.

BANDS:
  Scotland has six bands (Starter 19%, Basic 20%, Intermediate 21%,
  Higher 42%, Advanced 45%, Top 48%); the rest of the UK has three
  (Basic 20%, Higher 40%, Additional 45%). The £12,570 personal
  allowance tapers by £1 per £2 of gross above £100,000, floored at
  zero. National Insurance is 8% between the primary threshold and the
  upper earnings limit, 2% above, with no allowance taper.
*/
package payroll

// Annual thresholds in pence.
const (
	personalAllowance = Pence(1_257_000)  // £12,570
	taperThreshold    = Pence(10_000_000) // £100,000

	niPrimaryThreshold   = Pence(1_257_000) // £12,570
	niUpperEarningsLimit = Pence(5_027_000) // £50,270
)

// taxBand is one progressive slice: its width in pence (0 = unbounded
// top band) and its rate as a whole percentage.
type taxBand struct {
	width Pence
	rate  int64
}

var scottishBands = []taxBand{
	{width: 395_700, rate: 19},   // Starter
	{width: 1_298_900, rate: 20}, // Basic
	{width: 1_413_600, rate: 21}, // Intermediate
	{width: 3_133_800, rate: 42}, // Higher
	{width: 5_014_000, rate: 45}, // Advanced
	{width: 0, rate: 48},         // Top
}

var rukBands = []taxBand{
	{width: 3_770_000, rate: 20}, // Basic
	{width: 7_487_000, rate: 40}, // Higher
	{width: 0, rate: 45},         // Additional
}

// =============================================================================
// INCOME TAX
// =============================================================================

// IncomeTax computes annual income tax on gross pence for a region.
func IncomeTax(gross Pence, region Region) Pence {
	bands := rukBands
	if region == RegionScotland {
		bands = scottishBands
	}

	allowance := adjustedAllowance(gross)
	if gross <= allowance {
		return 0
	}
	taxable := gross - allowance

	var tax Pence
	remaining := taxable
	for _, band := range bands {
		slice := remaining
		if band.width > 0 && slice > band.width {
			slice = band.width
		}
		tax += Pence(int64(slice) * band.rate / 100)
		remaining -= slice
		if remaining <= 0 {
			break
		}
	}
	return tax
}

// adjustedAllowance tapers the personal allowance by £1 for every £2 of
// gross above the taper threshold, never going negative.
func adjustedAllowance(gross Pence) Pence {
	if gross <= taperThreshold {
		return personalAllowance
	}
	reduction := (gross - taperThreshold) / 2
	return personalAllowance.SaturatingSub(reduction)
}

// =============================================================================
// NATIONAL INSURANCE
// =============================================================================

// NationalInsurance computes annual Class 1 employee contributions on
// gross pence. No allowance taper applies.
func NationalInsurance(gross Pence) Pence {
	if gross <= niPrimaryThreshold {
		return 0
	}

	var ni Pence

	mainBand := gross - niPrimaryThreshold
	if mainBand > niUpperEarningsLimit-niPrimaryThreshold {
		mainBand = niUpperEarningsLimit - niPrimaryThreshold
	}
	ni += Pence(int64(mainBand) * 8 / 100)

	if gross > niUpperEarningsLimit {
		ni += Pence(int64(gross-niUpperEarningsLimit) * 2 / 100)
	}
	return ni
}

// =============================================================================
// PAYE SUMMARY
// =============================================================================

// PayeSummary bundles a gross amount with its region and any custom
// deductions, and derives the tax, NI, and net figures.
type PayeSummary struct {
	Gross  Pence
	Region Region
	Custom []Deduction
}

func NewPayeSummary(gross Pence, region Region, custom ...Deduction) PayeSummary {
	return PayeSummary{Gross: gross, Region: region, Custom: custom}
}

func (s PayeSummary) Tax() Pence { return IncomeTax(s.Gross, s.Region) }

func (s PayeSummary) NationalInsurance() Pence { return NationalInsurance(s.Gross) }

// TotalDeductions is tax plus NI plus every attached custom deduction.
func (s PayeSummary) TotalDeductions() Pence {
	total := s.Tax() + s.NationalInsurance()
	for _, d := range s.Custom {
		total += d.Amount
	}
	return total
}

// Net is gross minus total deductions, saturating at zero.
func (s PayeSummary) Net() Pence {
	return s.Gross.SaturatingSub(s.TotalDeductions())
}
