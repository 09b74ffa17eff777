/*
dto.go - Request/response shapes for the HTTP API

PURPOSE:
  Wire-format structs with validation tags, plus the conversions to and
  from the payroll domain types. Dates travel as "2006-01-02", times of
  day as "15:04:05", money as integer pence.
*/
package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/rota-engine/payroll"
)

// =============================================================================
// JOB
// =============================================================================

type JobRequest struct {
	Name     string `json:"name" validate:"required"`
	BasicPay int64  `json:"basic_pay" validate:"required,gt=0"` // pence per hour

	BaseHours *int `json:"base_hours,omitempty" validate:"omitempty,gt=0"`

	Pattern  *PatternRequest `json:"pattern,omitempty"`
	FirstDay string          `json:"first_day,omitempty"`

	FixedStartTime        string `json:"fixed_start_time,omitempty"`
	FixedDurationSeconds  *int64 `json:"fixed_duration_seconds,omitempty" validate:"omitempty,gt=0"`

	OvertimeMultiplier    *float64 `json:"overtime_multiplier,omitempty" validate:"omitempty,gt=0"`
	SaturdayMultiplier    *float64 `json:"saturday_multiplier,omitempty" validate:"omitempty,gt=0"`
	SundayMultiplier      *float64 `json:"sunday_multiplier,omitempty" validate:"omitempty,gt=0"`
	BankHolidayMultiplier *float64 `json:"bank_holiday_multiplier,omitempty" validate:"omitempty,gt=0"`
	ChristmasMultiplier   *float64 `json:"christmas_multiplier,omitempty" validate:"omitempty,gt=0"`
	UnsociableMultiplier  *float64 `json:"unsociable_multiplier,omitempty" validate:"omitempty,gt=0"`

	UnsociableWindow *WindowRequest `json:"unsociable_window,omitempty"`

	TaxWeekStart string `json:"tax_week_start,omitempty" validate:"omitempty,oneof=sunday monday"`
}

type PatternRequest struct {
	Kind          string   `json:"kind" validate:"required,oneof=six_on_two_off four_on_four_off custom"`
	PaidOnAverage bool     `json:"paid_on_average,omitempty"`
	Weekdays      []string `json:"weekdays,omitempty"`
}

type WindowRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// ToJob converts a validated request to a domain Job.
func (r JobRequest) ToJob(id payroll.JobID) (payroll.Job, error) {
	job := payroll.NewJob(id, r.Name, payroll.Pence(r.BasicPay))

	if r.BaseHours != nil {
		job = job.WithBaseHours(*r.BaseHours)
	}
	if r.Pattern != nil {
		pattern, err := r.Pattern.toPattern()
		if err != nil {
			return payroll.Job{}, err
		}
		job = job.WithShiftPattern(pattern)
	}
	if r.FirstDay != "" {
		day, err := payroll.ParseDate(r.FirstDay)
		if err != nil {
			return payroll.Job{}, err
		}
		job = job.WithFirstDay(day)
	}
	if r.FixedStartTime != "" {
		t, err := payroll.ParseTimeOfDay(r.FixedStartTime)
		if err != nil {
			return payroll.Job{}, err
		}
		job = job.WithFixedStartTime(t)
	}
	if r.FixedDurationSeconds != nil {
		job = job.WithFixedShiftDuration(time.Duration(*r.FixedDurationSeconds) * time.Second)
	}

	if r.OvertimeMultiplier != nil {
		job = job.WithOvertimeMultiplier(*r.OvertimeMultiplier)
	}
	if r.SaturdayMultiplier != nil {
		job = job.WithSaturdayMultiplier(*r.SaturdayMultiplier)
	}
	if r.SundayMultiplier != nil {
		job = job.WithSundayMultiplier(*r.SundayMultiplier)
	}
	if r.BankHolidayMultiplier != nil {
		job = job.WithBankHolidayMultiplier(*r.BankHolidayMultiplier)
	}
	if r.ChristmasMultiplier != nil {
		job = job.WithChristmasMultiplier(*r.ChristmasMultiplier)
	}
	if r.UnsociableMultiplier != nil {
		job = job.WithUnsociableMultiplier(*r.UnsociableMultiplier)
	}

	if r.UnsociableWindow != nil {
		start, err := payroll.ParseTimeOfDay(r.UnsociableWindow.Start)
		if err != nil {
			return payroll.Job{}, err
		}
		end, err := payroll.ParseTimeOfDay(r.UnsociableWindow.End)
		if err != nil {
			return payroll.Job{}, err
		}
		job = job.WithUnsociableWindow(payroll.TimeWindow{Start: start, End: end})
	}
	if r.TaxWeekStart != "" {
		job = job.WithTaxWeekStart(payroll.TaxWeekStart(r.TaxWeekStart))
	}
	return job, nil
}

func (p PatternRequest) toPattern() (payroll.ShiftPattern, error) {
	switch payroll.PatternKind(p.Kind) {
	case payroll.PatternSixOnTwoOff:
		return payroll.SixOnTwoOff(), nil
	case payroll.PatternFourOnFourOff:
		return payroll.FourOnFourOff(p.PaidOnAverage), nil
	case payroll.PatternCustom:
		if len(p.Weekdays) == 0 {
			return payroll.ShiftPattern{}, fmt.Errorf("custom pattern needs at least one weekday")
		}
		days := make([]time.Weekday, 0, len(p.Weekdays))
		for _, name := range p.Weekdays {
			wd, err := parseWeekday(name)
			if err != nil {
				return payroll.ShiftPattern{}, err
			}
			days = append(days, wd)
		}
		return payroll.CustomDays(days...), nil
	default:
		return payroll.ShiftPattern{}, fmt.Errorf("unknown pattern kind %q", p.Kind)
	}
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return wd, nil
}

type JobResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	BasicPay int64  `json:"basic_pay"`
	Pattern  string `json:"pattern,omitempty"`
	FirstDay string `json:"first_day,omitempty"`
}

func toJobResponse(job payroll.Job) JobResponse {
	resp := JobResponse{
		ID:       int64(job.ID),
		Name:     job.Name,
		BasicPay: int64(job.BasicPay),
	}
	if job.Pattern != nil {
		resp.Pattern = string(job.Pattern.Kind)
	}
	if job.FirstDay != nil {
		resp.FirstDay = job.FirstDay.String()
	}
	return resp
}

// =============================================================================
// SCHEDULE
// =============================================================================

type ScheduledDayResponse struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	Status     string `json:"status"`
	DayInCycle int    `json:"day_in_cycle,omitempty"`
}

func toScheduleResponse(schedule payroll.Schedule) []ScheduledDayResponse {
	out := make([]ScheduledDayResponse, 0, len(schedule))
	for _, day := range schedule {
		out = append(out, ScheduledDayResponse{
			Date:       day.Date.String(),
			Weekday:    day.Date.Weekday().String(),
			Status:     string(day.Status),
			DayInCycle: day.DayInCycle,
		})
	}
	return out
}

// =============================================================================
// SHIFT
// =============================================================================

type ShiftRequest struct {
	JobID int64  `json:"job_id" validate:"required,gt=0"`
	Date  string `json:"date" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=scheduled extra sick holiday paid_leave"`

	// Start/Finish are RFC3339. Both may be omitted when the job carries
	// a fixed start time and duration; the shift is then planned from those.
	Start  string `json:"start,omitempty"`
	Finish string `json:"finish,omitempty"`
}

func (r ShiftRequest) ToShift(id payroll.ShiftID) (payroll.Shift, error) {
	date, err := payroll.ParseDate(r.Date)
	if err != nil {
		return payroll.Shift{}, err
	}
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return payroll.Shift{}, fmt.Errorf("invalid start %q: %w", r.Start, err)
	}
	finish, err := time.Parse(time.RFC3339, r.Finish)
	if err != nil {
		return payroll.Shift{}, fmt.Errorf("invalid finish %q: %w", r.Finish, err)
	}
	if !finish.After(start) {
		return payroll.Shift{}, fmt.Errorf("finish must be after start")
	}
	return payroll.NewShift(id, payroll.JobID(r.JobID), date, payroll.ShiftType(r.Type), start, finish), nil
}

type ShiftResponse struct {
	ID     int64  `json:"id"`
	JobID  int64  `json:"job_id"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	Start  string `json:"start"`
	Finish string `json:"finish"`
	Worked string `json:"worked"`
}

func toShiftResponse(s payroll.Shift) ShiftResponse {
	return ShiftResponse{
		ID:     int64(s.ID),
		JobID:  int64(s.JobID),
		Date:   s.Date.String(),
		Type:   string(s.Type),
		Start:  s.Start.UTC().Format(time.RFC3339),
		Finish: s.Finish.UTC().Format(time.RFC3339),
		Worked: s.PrettyTimeWorked(),
	}
}

// =============================================================================
// PAYMENTS & SUMMARY
// =============================================================================

type PaymentResponse struct {
	ShiftID int64  `json:"shift_id"`
	JobID   int64  `json:"job_id"`
	Amount  int64  `json:"amount"` // pence
	Display string `json:"display"`
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
}

func toPaymentResponses(payments []payroll.ShiftPayment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentResponse{
			ShiftID: int64(p.ShiftID),
			JobID:   int64(p.JobID),
			Amount:  int64(p.Amount),
			Display: p.Amount.String(),
			Type:    string(p.Type),
			Name:    p.Name,
		})
	}
	return out
}

type SummaryResponse struct {
	JobID           int64             `json:"job_id"`
	PeriodStart     string            `json:"period_start"`
	PeriodEnd       string            `json:"period_end"`
	Payments        []PaymentResponse `json:"payments"`
	Gross           int64             `json:"gross"`
	Tax             int64             `json:"tax"`
	NI              int64             `json:"ni"`
	TotalDeductions int64             `json:"total_deductions"`
	Net             int64             `json:"net"`
}

// =============================================================================
// TAX WEEK & TAX ESTIMATE
// =============================================================================

type TaxWeekResponse struct {
	WeekCommencing int    `json:"week_commencing"`
	FinancialYear  string `json:"financial_year"`
	WeekStartDate  string `json:"week_start_date"`
	Convention     string `json:"convention"`
}

type TaxEstimateResponse struct {
	Gross  int64  `json:"gross"`
	Region string `json:"region"`
	Tax    int64  `json:"tax"`
	NI     int64  `json:"ni"`
	Net    int64  `json:"net"`
}

// =============================================================================
// MULTIPLIERS
// =============================================================================

type MultiplierRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Behavior    string  `json:"behavior" validate:"required,oneof=compound highest_only"`
	Priority    string  `json:"priority" validate:"required,oneof=always_apply low medium high"`
	Factor      float64 `json:"factor" validate:"required,gt=0"`

	// Schedule: which dates the multiplier applies on.
	ScheduleKind string   `json:"schedule_kind" validate:"required,oneof=one_time weekly monthly specific_dates"`
	Date         string   `json:"date,omitempty"`
	Weekdays     []string `json:"weekdays,omitempty"`
	DaysOfMonth  []int    `json:"days_of_month,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Dates        []string `json:"dates,omitempty"`

	Window *WindowRequest `json:"time_window,omitempty"`
}

func (r MultiplierRequest) toSchedule() (payroll.RecurrenceSchedule, error) {
	switch payroll.RecurrenceKind(r.ScheduleKind) {
	case payroll.RecurOneTime:
		date, err := payroll.ParseDate(r.Date)
		if err != nil {
			return payroll.RecurrenceSchedule{}, err
		}
		return payroll.OneTimeOn(date), nil

	case payroll.RecurWeekly:
		start, err := payroll.ParseDate(r.StartDate)
		if err != nil {
			return payroll.RecurrenceSchedule{}, err
		}
		days := make([]time.Weekday, 0, len(r.Weekdays))
		for _, name := range r.Weekdays {
			wd, err := parseWeekday(name)
			if err != nil {
				return payroll.RecurrenceSchedule{}, err
			}
			days = append(days, wd)
		}
		schedule := payroll.WeeklyOn(start, days...)
		return r.bound(schedule)

	case payroll.RecurMonthly:
		start, err := payroll.ParseDate(r.StartDate)
		if err != nil {
			return payroll.RecurrenceSchedule{}, err
		}
		schedule := payroll.MonthlyOn(start, r.DaysOfMonth...)
		return r.bound(schedule)

	case payroll.RecurSpecificDates:
		dates := make([]payroll.Date, 0, len(r.Dates))
		for _, s := range r.Dates {
			d, err := payroll.ParseDate(s)
			if err != nil {
				return payroll.RecurrenceSchedule{}, err
			}
			dates = append(dates, d)
		}
		return payroll.OnDates(dates...), nil

	default:
		return payroll.RecurrenceSchedule{}, fmt.Errorf("unknown schedule kind %q", r.ScheduleKind)
	}
}

func (r MultiplierRequest) bound(schedule payroll.RecurrenceSchedule) (payroll.RecurrenceSchedule, error) {
	if r.EndDate == "" {
		return schedule, nil
	}
	end, err := payroll.ParseDate(r.EndDate)
	if err != nil {
		return payroll.RecurrenceSchedule{}, err
	}
	return schedule.Until(end), nil
}

type MultiplierResponse struct {
	ID       int64   `json:"id"`
	JobID    int64   `json:"job_id"`
	Name     string  `json:"name"`
	Behavior string  `json:"behavior"`
	Priority string  `json:"priority"`
	Factor   float64 `json:"factor"`
}

func toMultiplierResponse(m payroll.SalaryMultiplier) MultiplierResponse {
	factor, _ := m.Factor.Float64()
	return MultiplierResponse{
		ID:       int64(m.ID),
		JobID:    int64(m.JobID),
		Name:     m.Name,
		Behavior: string(m.Behavior),
		Priority: string(m.Priority),
		Factor:   factor,
	}
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
