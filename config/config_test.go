package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rota-engine/config"
	"github.com/warp/rota-engine/payroll"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rota.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// A missing file is not an error: everything falls back to defaults.
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "rota.db", cfg.DatabasePath)
	assert.Equal(t, payroll.RegionEngland, cfg.Region)
	assert.Equal(t, payroll.WeekStartsSunday, cfg.TaxWeekStart)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database_path: /tmp/test-rota.db
region: scotland
tax_week_start: monday
bank_holidays:
  - date: 2026-05-04
    name: Early May bank holiday
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/test-rota.db", cfg.DatabasePath)
	assert.Equal(t, payroll.RegionScotland, cfg.Region)
	assert.Equal(t, payroll.WeekStartsMonday, cfg.TaxWeekStart)
	require.Len(t, cfg.BankHolidays, 1)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
region: england
`)
	t.Setenv("ROTA_SERVER_PORT", "7070")
	t.Setenv("ROTA_REGION", "wales")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, payroll.RegionWales, cfg.Region)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	_, err := config.Load(writeConfig(t, "region: mars\n"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "tax_week_start: wednesday\n"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, `
bank_holidays:
  - date: 04/05/2026
    name: bad format
`))
	assert.Error(t, err)
}

func TestHolidayCalendar(t *testing.T) {
	path := writeConfig(t, `
bank_holidays:
  - date: 2026-05-04
    name: Early May bank holiday
  - date: 2026-12-25
    name: Christmas Day
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	calendar := cfg.HolidayCalendar()
	assert.True(t, calendar.IsBankHoliday(payroll.NewDate(2026, time.May, 4)))
	assert.False(t, calendar.IsBankHoliday(payroll.NewDate(2026, time.May, 5)))

	name, ok := calendar.HolidayName(payroll.NewDate(2026, time.December, 25))
	require.True(t, ok)
	assert.Equal(t, "Christmas Day", name)
}
