/*
Package sqlite provides a SQLite-backed implementation of payroll.Store.

PURPOSE:
  Persists jobs, shifts, and the recurring adjustments (multipliers,
  deductions, custom payment definitions). In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  jobs:         job configuration (rich optional config as JSON)
  shifts:       concrete shift occurrences, date_key for range scans
  multipliers:  salary multipliers by job
  deductions:   recurring deductions by job
  payment_defs: custom payment definitions by job

DATE KEY:
  Shifts carry date_key = year*10000 + month*100 + day. Range queries
  over a period are a single indexed integer BETWEEN, no date parsing.

CONCURRENCY:
  Opened with WAL (Write-Ahead Logging): multiple readers don't block
  and a single writer at a time is enough for this workload.

USAGE:
  store, err := sqlite.New("./data/rota.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - payroll/store.go: interface definitions
  - payroll/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/rota-engine/payroll"
)

// Store implements payroll.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		basic_pay INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shifts (
		id INTEGER PRIMARY KEY,
		job_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		date_key INTEGER NOT NULL,
		shift_type TEXT NOT NULL,
		start_at TEXT NOT NULL,
		finish_at TEXT NOT NULL
	);

	-- Hot path: period queries scan by the integer date key.
	CREATE INDEX IF NOT EXISTS idx_shifts_date_key ON shifts(date_key);
	CREATE INDEX IF NOT EXISTS idx_shifts_job ON shifts(job_id);
	CREATE INDEX IF NOT EXISTS idx_shifts_job_date_key ON shifts(job_id, date_key);

	CREATE TABLE IF NOT EXISTS multipliers (
		id INTEGER PRIMARY KEY,
		job_id INTEGER NOT NULL,
		payload_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_multipliers_job ON multipliers(job_id);

	CREATE TABLE IF NOT EXISTS deductions (
		id INTEGER PRIMARY KEY,
		job_id INTEGER NOT NULL,
		payload_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_deductions_job ON deductions(job_id);

	CREATE TABLE IF NOT EXISTS payment_defs (
		id INTEGER PRIMARY KEY,
		job_id INTEGER NOT NULL,
		payload_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_payment_defs_job ON payment_defs(job_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// JOBS
// =============================================================================

func (s *Store) PutJob(ctx context.Context, job payroll.Job) error {
	config, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %d: %w", job.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, name, basic_pay, config_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			basic_pay = excluded.basic_pay,
			config_json = excluded.config_json`,
		int64(job.ID), job.Name, int64(job.BasicPay), string(config),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to put job %d: %w", job.ID, err)
	}
	return nil
}

func (s *Store) Job(ctx context.Context, id payroll.JobID) (payroll.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT config_json FROM jobs WHERE id = ?`, int64(id))

	var config string
	if err := row.Scan(&config); err != nil {
		if err == sql.ErrNoRows {
			return payroll.Job{}, payroll.ErrJobNotFound
		}
		return payroll.Job{}, fmt.Errorf("failed to load job %d: %w", id, err)
	}
	return decodeJob(config)
}

func (s *Store) Jobs(ctx context.Context) ([]payroll.Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT config_json FROM jobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []payroll.Job
	for rows.Next() {
		var config string
		if err := rows.Scan(&config); err != nil {
			return nil, err
		}
		job, err := decodeJob(config)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func decodeJob(config string) (payroll.Job, error) {
	var job payroll.Job
	if err := json.Unmarshal([]byte(config), &job); err != nil {
		return payroll.Job{}, fmt.Errorf("failed to decode job config: %w", err)
	}
	return job, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

func (s *Store) PutShift(ctx context.Context, shift payroll.Shift) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (id, job_id, date, date_key, shift_type, start_at, finish_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			job_id = excluded.job_id,
			date = excluded.date,
			date_key = excluded.date_key,
			shift_type = excluded.shift_type,
			start_at = excluded.start_at,
			finish_at = excluded.finish_at`,
		int64(shift.ID), int64(shift.JobID), shift.Date.String(), shift.DateKey,
		string(shift.Type),
		shift.Start.UTC().Format(time.RFC3339),
		shift.Finish.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to put shift %d: %w", shift.ID, err)
	}
	return nil
}

func (s *Store) Shift(ctx context.Context, id payroll.ShiftID) (payroll.Shift, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, job_id, date, shift_type, start_at, finish_at
		FROM shifts WHERE id = ?`, int64(id))

	shift, err := scanShift(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return payroll.Shift{}, payroll.ErrShiftNotFound
		}
		return payroll.Shift{}, fmt.Errorf("failed to load shift %d: %w", id, err)
	}
	return shift, nil
}

func (s *Store) ShiftsInRange(ctx context.Context, from, to payroll.Date, jobID *payroll.JobID) ([]payroll.Shift, error) {
	query := `
		SELECT id, job_id, date, shift_type, start_at, finish_at
		FROM shifts WHERE date_key BETWEEN ? AND ?`
	args := []any{from.Key(), to.Key()}
	if jobID != nil {
		query += ` AND job_id = ?`
		args = append(args, int64(*jobID))
	}
	query += ` ORDER BY date_key, id`

	return s.queryShifts(ctx, query, args...)
}

func (s *Store) ShiftsForJob(ctx context.Context, jobID payroll.JobID) ([]payroll.Shift, error) {
	return s.queryShifts(ctx, `
		SELECT id, job_id, date, shift_type, start_at, finish_at
		FROM shifts WHERE job_id = ? ORDER BY date_key, id`, int64(jobID))
}

func (s *Store) queryShifts(ctx context.Context, query string, args ...any) ([]payroll.Shift, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []payroll.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (payroll.Shift, error) {
	var (
		id, jobID               int64
		date, shiftType, st, fi string
	)
	if err := row.Scan(&id, &jobID, &date, &shiftType, &st, &fi); err != nil {
		return payroll.Shift{}, err
	}

	d, err := payroll.ParseDate(date)
	if err != nil {
		return payroll.Shift{}, err
	}
	start, err := time.Parse(time.RFC3339, st)
	if err != nil {
		return payroll.Shift{}, fmt.Errorf("failed to parse shift start: %w", err)
	}
	finish, err := time.Parse(time.RFC3339, fi)
	if err != nil {
		return payroll.Shift{}, fmt.Errorf("failed to parse shift finish: %w", err)
	}

	return payroll.NewShift(payroll.ShiftID(id), payroll.JobID(jobID), d,
		payroll.ShiftType(shiftType), start, finish), nil
}

// =============================================================================
// ADJUSTMENTS - JSON payloads scanned by job id
// =============================================================================

func (s *Store) PutMultiplier(ctx context.Context, m payroll.SalaryMultiplier) error {
	return s.putPayload(ctx, "multipliers", int64(m.ID), int64(m.JobID), m)
}

func (s *Store) MultipliersForJob(ctx context.Context, jobID payroll.JobID) ([]payroll.SalaryMultiplier, error) {
	return queryPayloads[payroll.SalaryMultiplier](ctx, s, "multipliers", jobID)
}

func (s *Store) PutDeduction(ctx context.Context, d payroll.Deduction) error {
	return s.putPayload(ctx, "deductions", int64(d.ID), int64(d.JobID), d)
}

func (s *Store) DeductionsForJob(ctx context.Context, jobID payroll.JobID) ([]payroll.Deduction, error) {
	return queryPayloads[payroll.Deduction](ctx, s, "deductions", jobID)
}

func (s *Store) PutPaymentDef(ctx context.Context, p payroll.CustomPaymentDef) error {
	return s.putPayload(ctx, "payment_defs", int64(p.ID), int64(p.JobID), p)
}

func (s *Store) PaymentDefsForJob(ctx context.Context, jobID payroll.JobID) ([]payroll.CustomPaymentDef, error) {
	return queryPayloads[payroll.CustomPaymentDef](ctx, s, "payment_defs", jobID)
}

func (s *Store) putPayload(ctx context.Context, table string, id, jobID int64, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s row %d: %w", table, id, err)
	}
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, job_id, payload_json) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			job_id = excluded.job_id,
			payload_json = excluded.payload_json`, table),
		id, jobID, string(data))
	if err != nil {
		return fmt.Errorf("failed to put %s row %d: %w", table, id, err)
	}
	return nil
}

func queryPayloads[T any](ctx context.Context, s *Store, table string, jobID payroll.JobID) ([]T, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT payload_json FROM %s WHERE job_id = ? ORDER BY id`, table),
		int64(jobID))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var result []T
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var item T
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", table, err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// =============================================================================
// ID SEEDING
// =============================================================================

var kindTables = map[payroll.EntityKind]string{
	payroll.KindJob:        "jobs",
	payroll.KindShift:      "shifts",
	payroll.KindDeduction:  "deductions",
	payroll.KindMultiplier: "multipliers",
	payroll.KindPaymentDef: "payment_defs",
}

func (s *Store) MaxID(ctx context.Context, kind payroll.EntityKind) (int64, error) {
	table, ok := kindTables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown entity kind %q", kind)
	}

	var max int64
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COALESCE(MAX(id), 0) FROM %s`, table))
	if err := row.Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to read max id for %s: %w", table, err)
	}
	return max, nil
}
