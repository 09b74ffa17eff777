// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/rota-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	jobs        map[payroll.JobID]payroll.Job
	shifts      map[payroll.ShiftID]payroll.Shift
	multipliers map[payroll.JobID][]payroll.SalaryMultiplier
	deductions  map[payroll.JobID][]payroll.Deduction
	paymentDefs map[payroll.JobID][]payroll.CustomPaymentDef
}

func NewMemory() *Memory {
	return &Memory{
		jobs:        make(map[payroll.JobID]payroll.Job),
		shifts:      make(map[payroll.ShiftID]payroll.Shift),
		multipliers: make(map[payroll.JobID][]payroll.SalaryMultiplier),
		deductions:  make(map[payroll.JobID][]payroll.Deduction),
		paymentDefs: make(map[payroll.JobID][]payroll.CustomPaymentDef),
	}
}

// -----------------------------------------------------------------------------
// Jobs
// -----------------------------------------------------------------------------

func (m *Memory) Jobs(_ context.Context) ([]payroll.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]payroll.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
	return jobs, nil
}

func (m *Memory) Job(_ context.Context, id payroll.JobID) (payroll.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return payroll.Job{}, payroll.ErrJobNotFound
	}
	return job, nil
}

func (m *Memory) PutJob(_ context.Context, job payroll.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

// -----------------------------------------------------------------------------
// Shifts
// -----------------------------------------------------------------------------

func (m *Memory) PutShift(_ context.Context, shift payroll.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[shift.ID] = shift
	return nil
}

func (m *Memory) Shift(_ context.Context, id payroll.ShiftID) (payroll.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shift, ok := m.shifts[id]
	if !ok {
		return payroll.Shift{}, payroll.ErrShiftNotFound
	}
	return shift, nil
}

func (m *Memory) ShiftsInRange(_ context.Context, from, to payroll.Date, jobID *payroll.JobID) ([]payroll.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fromKey, toKey := from.Key(), to.Key()
	var result []payroll.Shift
	for _, s := range m.shifts {
		if s.DateKey < fromKey || s.DateKey > toKey {
			continue
		}
		if jobID != nil && s.JobID != *jobID {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, k int) bool {
		if result[i].DateKey != result[k].DateKey {
			return result[i].DateKey < result[k].DateKey
		}
		return result[i].ID < result[k].ID
	})
	return result, nil
}

func (m *Memory) ShiftsForJob(_ context.Context, jobID payroll.JobID) ([]payroll.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []payroll.Shift
	for _, s := range m.shifts {
		if s.JobID == jobID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, k int) bool { return result[i].DateKey < result[k].DateKey })
	return result, nil
}

// -----------------------------------------------------------------------------
// Adjustments
// -----------------------------------------------------------------------------

func (m *Memory) PutMultiplier(_ context.Context, mult payroll.SalaryMultiplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.multipliers[mult.JobID] = append(m.multipliers[mult.JobID], mult)
	return nil
}

func (m *Memory) MultipliersForJob(_ context.Context, jobID payroll.JobID) ([]payroll.SalaryMultiplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]payroll.SalaryMultiplier(nil), m.multipliers[jobID]...), nil
}

func (m *Memory) PutDeduction(_ context.Context, d payroll.Deduction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deductions[d.JobID] = append(m.deductions[d.JobID], d)
	return nil
}

func (m *Memory) DeductionsForJob(_ context.Context, jobID payroll.JobID) ([]payroll.Deduction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]payroll.Deduction(nil), m.deductions[jobID]...), nil
}

func (m *Memory) PutPaymentDef(_ context.Context, p payroll.CustomPaymentDef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentDefs[p.JobID] = append(m.paymentDefs[p.JobID], p)
	return nil
}

func (m *Memory) PaymentDefsForJob(_ context.Context, jobID payroll.JobID) ([]payroll.CustomPaymentDef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]payroll.CustomPaymentDef(nil), m.paymentDefs[jobID]...), nil
}

// -----------------------------------------------------------------------------
// ID seeding
// -----------------------------------------------------------------------------

func (m *Memory) MaxID(_ context.Context, kind payroll.EntityKind) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var max int64
	switch kind {
	case payroll.KindJob:
		for id := range m.jobs {
			if int64(id) > max {
				max = int64(id)
			}
		}
	case payroll.KindShift:
		for id := range m.shifts {
			if int64(id) > max {
				max = int64(id)
			}
		}
	case payroll.KindMultiplier:
		for _, ms := range m.multipliers {
			for _, mult := range ms {
				if int64(mult.ID) > max {
					max = int64(mult.ID)
				}
			}
		}
	case payroll.KindDeduction:
		for _, ds := range m.deductions {
			for _, d := range ds {
				if int64(d.ID) > max {
					max = int64(d.ID)
				}
			}
		}
	case payroll.KindPaymentDef:
		for _, ps := range m.paymentDefs {
			for _, p := range ps {
				if int64(p.ID) > max {
					max = int64(p.ID)
				}
			}
		}
	}
	return max, nil
}
