/*
shift.go - Concrete worked shift occurrences

PURPOSE:
  A Shift is one concrete worked (or absent) occurrence: a calendar date,
  a start/finish timestamp pair, and a type tag. Shifts are owned by the
  persistence layer and immutable once created; correction edits happen
  upstream, never inside the engines.

DATE KEY:
  Every shift carries the sortable integer form of its date
  (year*10000 + month*100 + day) so stores can range-scan shifts by date
  without parsing anything.
*/
package payroll

import (
	"fmt"
	"time"
)

type Shift struct {
	ID    ShiftID
	JobID JobID

	Date Date
	// DateKey is Date.Key(), duplicated on the record for secondary-index
	// range scans.
	DateKey int

	Type   ShiftType
	Start  time.Time
	Finish time.Time
}

func NewShift(id ShiftID, jobID JobID, date Date, shiftType ShiftType, start, finish time.Time) Shift {
	return Shift{
		ID:      id,
		JobID:   jobID,
		Date:    date,
		DateKey: date.Key(),
		Type:    shiftType,
		Start:   start,
		Finish:  finish,
	}
}

// PlannedShift materializes a concrete shift for a rota day from the
// job's fixed start time and duration. ok is false when the job has no
// fixed shift times configured.
func (j Job) PlannedShift(id ShiftID, date Date) (Shift, bool) {
	if j.FixedStartTime == nil || j.FixedShiftDuration == nil {
		return Shift{}, false
	}
	start := j.FixedStartTime.At(date)
	return NewShift(id, j.ID, date, ShiftScheduled, start, start.Add(*j.FixedShiftDuration)), true
}

// TimeWorked is the worked span, finish minus start.
func (s Shift) TimeWorked() time.Duration {
	return s.Finish.Sub(s.Start)
}

// PrettyTimeWorked formats the worked span as "8h, 15m, 30s".
func (s Shift) PrettyTimeWorked() string {
	d := s.TimeWorked()
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh, %dm, %ds", h, m, sec)
}
