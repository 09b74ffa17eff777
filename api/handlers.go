/*
handlers.go - HTTP API handlers for the rota and pay engine

PURPOSE:
  Exposes the scheduling and payroll engines via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Jobs:
    GET    /api/jobs                    List all jobs
    POST   /api/jobs                    Create job
    GET    /api/jobs/{id}               Get job details
    GET    /api/jobs/{id}/schedule      Projected rota for a date range
    GET    /api/jobs/{id}/summary       Payment summary for a period
    GET    /api/jobs/{id}/multipliers   List salary multipliers
    POST   /api/jobs/{id}/multipliers   Create salary multiplier

  Shifts:
    POST   /api/shifts                  Record a worked shift
    GET    /api/shifts/{id}             Get shift details
    GET    /api/shifts/{id}/payments    Itemized pay for one shift

  Reference:
    GET    /api/taxweek                 Resolve a date to its tax week
    GET    /api/tax/estimate            PAYE estimate for a gross figure
    GET    /api/holidays                Configured bank holidays

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/warp/rota-engine/payroll"
	"github.com/warp/rota-engine/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    payroll.Store
	Seq      *payroll.Sequences
	Builder  *report.Builder
	Calendar payroll.HolidayCalendar

	// Region and week-start defaults for requests that don't carry
	// their own.
	Region    payroll.Region
	WeekStart payroll.TaxWeekStart

	Holidays []payroll.BankHoliday

	validate *validator.Validate
}

// NewHandler creates a new handler over the given store.
func NewHandler(store payroll.Store, seq *payroll.Sequences, calendar payroll.HolidayCalendar, region payroll.Region, weekStart payroll.TaxWeekStart) *Handler {
	if calendar == nil {
		calendar = payroll.NoHolidays{}
	}
	return &Handler{
		Store:     store,
		Seq:       seq,
		Builder:   report.NewBuilder(store, calendar, region),
		Calendar:  calendar,
		Region:    region,
		WeekStart: weekStart,
		validate:  validator.New(),
	}
}

// =============================================================================
// JOB HANDLERS
// =============================================================================

// ListJobs returns all jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Store.Jobs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list jobs", err)
		return
	}

	dtos := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		dtos = append(dtos, toJobResponse(job))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateJob creates a new job.
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	job, err := req.ToJob(h.Seq.NextJobID())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job definition", err)
		return
	}

	if err := h.Store.PutJob(r.Context(), job); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store job", err)
		return
	}
	writeJSON(w, http.StatusCreated, toJobResponse(job))
}

// GetJob returns a single job.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(job))
}

// GetSchedule projects the job's rota over ?from=&to= (inclusive).
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}

	schedule := job.ScheduledShiftsBetween(from, to)
	writeJSON(w, http.StatusOK, toScheduleResponse(schedule))
}

// GetSummary builds the payment summary for ?from=&to= (inclusive).
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}

	summary, err := h.Builder.Summarize(r.Context(), job.ID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build summary", err)
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		JobID:           int64(summary.JobID),
		PeriodStart:     summary.PeriodStart.String(),
		PeriodEnd:       summary.PeriodEnd.String(),
		Payments:        toPaymentResponses(summary.Payments),
		Gross:           int64(summary.Gross),
		Tax:             int64(summary.Tax),
		NI:              int64(summary.NI),
		TotalDeductions: int64(summary.TotalDeductions),
		Net:             int64(summary.Net),
	})
}

// ListMultipliers returns the job's salary multipliers.
func (h *Handler) ListMultipliers(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}

	multipliers, err := h.Store.MultipliersForJob(r.Context(), job.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list multipliers", err)
		return
	}

	dtos := make([]MultiplierResponse, 0, len(multipliers))
	for _, m := range multipliers {
		dtos = append(dtos, toMultiplierResponse(m))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateMultiplier attaches a salary multiplier to the job.
func (h *Handler) CreateMultiplier(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}

	var req MultiplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	schedule, err := req.toSchedule()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule", err)
		return
	}

	mult := payroll.SalaryMultiplier{
		ID:          h.Seq.NextMultiplierID(),
		JobID:       job.ID,
		Name:        req.Name,
		Description: req.Description,
		Behavior:    payroll.MultiplierBehavior(req.Behavior),
		Priority:    payroll.MultiplierPriority(req.Priority),
		Schedule:    schedule,
		Factor:      decimal.NewFromFloat(req.Factor),
	}
	if req.Window != nil {
		start, err := payroll.ParseTimeOfDay(req.Window.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid window start", err)
			return
		}
		end, err := payroll.ParseTimeOfDay(req.Window.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid window end", err)
			return
		}
		mult.TimeWindow = &payroll.TimeWindow{Start: start, End: end}
	}

	if err := h.Store.PutMultiplier(r.Context(), mult); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store multiplier", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMultiplierResponse(mult))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// CreateShift records a worked shift.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	// The job must exist before a shift can reference it.
	job, err := h.Store.Job(r.Context(), payroll.JobID(req.JobID))
	if err != nil {
		if payroll.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Job not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load job", err)
		return
	}

	var shift payroll.Shift
	if req.Start == "" && req.Finish == "" {
		// Plan the shift from the job's fixed start time and duration.
		date, err := payroll.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
		planned, ok := job.PlannedShift(h.Seq.NextShiftID(), date)
		if !ok {
			writeError(w, http.StatusBadRequest, "Shift times required: job has no fixed start time and duration", nil)
			return
		}
		planned.Type = payroll.ShiftType(req.Type)
		shift = planned
	} else {
		shift, err = req.ToShift(h.Seq.NextShiftID())
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid shift", err)
			return
		}
	}

	if err := h.Store.PutShift(r.Context(), shift); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftResponse(shift))
}

// GetShift returns a single shift.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift, ok := h.loadShift(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toShiftResponse(shift))
}

// GetShiftPayments returns the itemized pay lines for one shift, with any
// applicable salary multipliers resolved over the total.
func (h *Handler) GetShiftPayments(w http.ResponseWriter, r *http.Request) {
	shift, ok := h.loadShift(w, r)
	if !ok {
		return
	}

	payments, err := h.Builder.ShiftPayments(r.Context(), shift.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute payments", err)
		return
	}

	multipliers, err := h.Store.MultipliersForJob(r.Context(), shift.JobID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load multipliers", err)
		return
	}
	applicable := make([]payroll.SalaryMultiplier, 0, len(multipliers))
	for _, m := range multipliers {
		if m.AppliesTo(shift) {
			applicable = append(applicable, m)
		}
	}

	total := payroll.TotalAmount(payments)
	result := payroll.ResolveMultipliers(total, applicable)

	resp := struct {
		ShiftID  int64             `json:"shift_id"`
		Payments []PaymentResponse `json:"payments"`
		Total    int64             `json:"total"`
		Adjusted int64             `json:"adjusted"`
		Applied  []string          `json:"applied_multipliers,omitempty"`
	}{
		ShiftID:  int64(shift.ID),
		Payments: toPaymentResponses(payments),
		Total:    int64(total),
		Adjusted: int64(result.FinalAmount),
	}
	for _, m := range result.Applied {
		resp.Applied = append(resp.Applied, m.Name)
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// REFERENCE HANDLERS
// =============================================================================

// GetTaxWeek resolves ?date= into its UK tax week. An optional ?start=
// (sunday|monday) overrides the configured convention.
func (h *Handler) GetTaxWeek(w http.ResponseWriter, r *http.Request) {
	date, err := payroll.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	start := h.WeekStart
	if s := r.URL.Query().Get("start"); s != "" {
		start = payroll.TaxWeekStart(s)
		if start != payroll.WeekStartsSunday && start != payroll.WeekStartsMonday {
			writeError(w, http.StatusBadRequest, "Invalid week start", nil)
			return
		}
	}

	week := payroll.NewTaxWeek(date, start)
	writeJSON(w, http.StatusOK, TaxWeekResponse{
		WeekCommencing: week.WeekCommencing,
		FinancialYear:  week.FinancialYear,
		WeekStartDate:  week.WeekStartDate.String(),
		Convention:     string(week.Start),
	})
}

// GetTaxEstimate computes income tax and NI for ?gross= pence. An optional
// ?region= overrides the configured region.
func (h *Handler) GetTaxEstimate(w http.ResponseWriter, r *http.Request) {
	gross, err := strconv.ParseInt(r.URL.Query().Get("gross"), 10, 64)
	if err != nil || gross < 0 {
		writeError(w, http.StatusBadRequest, "Invalid gross amount", err)
		return
	}

	region := h.Region
	if s := r.URL.Query().Get("region"); s != "" {
		region = payroll.Region(s)
		switch region {
		case payroll.RegionEngland, payroll.RegionWales, payroll.RegionNorthernIreland, payroll.RegionScotland:
		default:
			writeError(w, http.StatusBadRequest, "Invalid region", nil)
			return
		}
	}

	paye := payroll.NewPayeSummary(payroll.Pence(gross), region)
	writeJSON(w, http.StatusOK, TaxEstimateResponse{
		Gross:  gross,
		Region: string(region),
		Tax:    int64(paye.Tax()),
		NI:     int64(paye.NationalInsurance()),
		Net:    int64(paye.Net()),
	})
}

// ListHolidays returns the configured bank holidays.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	type holidayDTO struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	dtos := make([]holidayDTO, 0, len(h.Holidays))
	for _, bh := range h.Holidays {
		dtos = append(dtos, holidayDTO{Date: bh.Date.String(), Name: bh.Name})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) loadJob(w http.ResponseWriter, r *http.Request) (payroll.Job, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job id", err)
		return payroll.Job{}, false
	}

	job, err := h.Store.Job(r.Context(), payroll.JobID(id))
	if err != nil {
		if payroll.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Job not found", nil)
			return payroll.Job{}, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to load job", err)
		return payroll.Job{}, false
	}
	return job, true
}

func (h *Handler) loadShift(w http.ResponseWriter, r *http.Request) (payroll.Shift, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift id", err)
		return payroll.Shift{}, false
	}

	shift, err := h.Store.Shift(r.Context(), payroll.ShiftID(id))
	if err != nil {
		if payroll.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Shift not found", nil)
			return payroll.Shift{}, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to load shift", err)
		return payroll.Shift{}, false
	}
	return shift, true
}

func dateRange(w http.ResponseWriter, r *http.Request) (payroll.Date, payroll.Date, bool) {
	from, err := payroll.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date", err)
		return payroll.Date{}, payroll.Date{}, false
	}
	to, err := payroll.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date", err)
		return payroll.Date{}, payroll.Date{}, false
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "Range end before start", nil)
		return payroll.Date{}, payroll.Date{}, false
	}
	return from, to, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
