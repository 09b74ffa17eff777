/*
store.go - Persistence interfaces for payroll records

PURPOSE:
  Defines the contract between the engines and whatever durable store
  backs them. Any store offering primary-key point lookup, list-by-kind,
  and range scan by a secondary integer key suffices; shifts are scanned
  by their integer date key, adjustments by job id.

IMPLEMENTATIONS:
  - payroll/store (memory.go): in-memory, for tests and dev
  - store/sqlite: production SQLite

  Persistence failures are propagated to the caller as opaque errors and
  never retried here; retry policy belongs to the collaborator.

SEE ALSO:
  - ids.go: Sequences are seeded from MaxID per kind
  - report: builds period summaries on top of these interfaces
*/
package payroll

import "context"

// JobStore holds job configurations. Jobs are few and read-mostly, so
// callers typically load them all up front.
type JobStore interface {
	Jobs(ctx context.Context) ([]Job, error)
	Job(ctx context.Context, id JobID) (Job, error)
	PutJob(ctx context.Context, job Job) error
}

// ShiftStore holds concrete shift occurrences. Range queries run against
// the integer date key (year*10000+month*100+day).
type ShiftStore interface {
	PutShift(ctx context.Context, shift Shift) error
	Shift(ctx context.Context, id ShiftID) (Shift, error)

	// ShiftsInRange returns shifts with date keys in [from.Key(), to.Key()],
	// optionally filtered to one job, ordered by date key ascending.
	ShiftsInRange(ctx context.Context, from, to Date, jobID *JobID) ([]Shift, error)

	// ShiftsForJob returns a job's entire shift history.
	ShiftsForJob(ctx context.Context, jobID JobID) ([]Shift, error)
}

// AdjustmentStore holds the user-defined recurring adjustments: salary
// multipliers, deductions, and custom payment definitions, all scanned by
// job id.
type AdjustmentStore interface {
	PutMultiplier(ctx context.Context, m SalaryMultiplier) error
	MultipliersForJob(ctx context.Context, jobID JobID) ([]SalaryMultiplier, error)

	PutDeduction(ctx context.Context, d Deduction) error
	DeductionsForJob(ctx context.Context, jobID JobID) ([]Deduction, error)

	PutPaymentDef(ctx context.Context, p CustomPaymentDef) error
	PaymentDefsForJob(ctx context.Context, jobID JobID) ([]CustomPaymentDef, error)
}

// Store is the full persistence collaborator.
type Store interface {
	JobStore
	ShiftStore
	AdjustmentStore

	// MaxID returns the highest issued id for a kind (0 when empty),
	// used to seed Sequences at startup.
	MaxID(ctx context.Context, kind EntityKind) (int64, error)
}

// SeedSequences primes every counter from the store.
func SeedSequences(ctx context.Context, store Store, seq *Sequences) error {
	for _, kind := range []EntityKind{KindJob, KindShift, KindDeduction, KindMultiplier, KindPaymentDef} {
		max, err := store.MaxID(ctx, kind)
		if err != nil {
			return err
		}
		seq.Seed(kind, max)
	}
	return nil
}

// =============================================================================
// PERIOD FILTERS
// =============================================================================

// DeductionsForPeriod returns the job's deductions whose schedule fires at
// least once inside [start, end].
func DeductionsForPeriod(ctx context.Context, store AdjustmentStore, jobID JobID, start, end Date) ([]Deduction, error) {
	all, err := store.DeductionsForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var applicable []Deduction
	for _, d := range all {
		if d.Schedule.AppliesWithin(start, end) {
			applicable = append(applicable, d)
		}
	}
	return applicable, nil
}

// PaymentDefsForPeriod returns the job's custom payment definitions whose
// schedule fires at least once inside [start, end].
func PaymentDefsForPeriod(ctx context.Context, store AdjustmentStore, jobID JobID, start, end Date) ([]CustomPaymentDef, error) {
	all, err := store.PaymentDefsForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var applicable []CustomPaymentDef
	for _, p := range all {
		if p.Schedule.AppliesWithin(start, end) {
			applicable = append(applicable, p)
		}
	}
	return applicable, nil
}
