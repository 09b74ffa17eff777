/*
ids.go - Monotonic ID issuance

PURPOSE:
  One atomic counter per entity kind. Callers obtain a unique integer id
  before constructing an entity; two issuance calls for the same kind
  never race to the same value. There is no ordering guarantee across
  kinds. Counters are seeded from the store's current maximum id so
  issuance survives restarts.
*/
package payroll

import (
	"sync/atomic"
)

// EntityKind names a counter in Sequences.
type EntityKind string

const (
	KindJob        EntityKind = "job"
	KindShift      EntityKind = "shift"
	KindDeduction  EntityKind = "deduction"
	KindMultiplier EntityKind = "multiplier"
	KindPaymentDef EntityKind = "payment_def"
)

// Sequences issues monotonic ids per entity kind.
type Sequences struct {
	counters map[EntityKind]*atomic.Int64
}

func NewSequences() *Sequences {
	s := &Sequences{counters: make(map[EntityKind]*atomic.Int64)}
	for _, kind := range []EntityKind{KindJob, KindShift, KindDeduction, KindMultiplier, KindPaymentDef} {
		s.counters[kind] = &atomic.Int64{}
	}
	return s
}

// Seed raises a kind's counter to at least max. Called once at startup
// with the store's current maximum id per kind.
func (s *Sequences) Seed(kind EntityKind, max int64) {
	c := s.counters[kind]
	for {
		cur := c.Load()
		if cur >= max {
			return
		}
		if c.CompareAndSwap(cur, max) {
			return
		}
	}
}

// Next returns the next id for a kind.
func (s *Sequences) Next(kind EntityKind) int64 {
	return s.counters[kind].Add(1)
}

// Typed conveniences.

func (s *Sequences) NextJobID() JobID               { return JobID(s.Next(KindJob)) }
func (s *Sequences) NextShiftID() ShiftID           { return ShiftID(s.Next(KindShift)) }
func (s *Sequences) NextDeductionID() DeductionID   { return DeductionID(s.Next(KindDeduction)) }
func (s *Sequences) NextMultiplierID() MultiplierID { return MultiplierID(s.Next(KindMultiplier)) }
func (s *Sequences) NextPaymentDefID() PaymentDefID { return PaymentDefID(s.Next(KindPaymentDef)) }
