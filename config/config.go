// Package config loads the engine configuration from a YAML file with
// environment-variable overrides. The bank-holiday table lives here so the
// calendar is built once at startup and passed into the engines read-only.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/warp/rota-engine/payroll"
)

type Config struct {
	Server struct {
		Port            int `yaml:"port" env:"ROTA_SERVER_PORT"`
		ReadTimeout     int `yaml:"read_timeout" env:"ROTA_SERVER_READ_TIMEOUT"`
		WriteTimeout    int `yaml:"write_timeout" env:"ROTA_SERVER_WRITE_TIMEOUT"`
		IdleTimeout     int `yaml:"idle_timeout" env:"ROTA_SERVER_IDLE_TIMEOUT"`
		ShutdownTimeout int `yaml:"shutdown_timeout" env:"ROTA_SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	DatabasePath string         `yaml:"database_path" env:"ROTA_DATABASE_PATH"`
	Region       payroll.Region `yaml:"region" env:"ROTA_REGION"`

	// TaxWeekStart is the default rota convention for jobs that don't set
	// their own.
	TaxWeekStart payroll.TaxWeekStart `yaml:"tax_week_start" env:"ROTA_TAX_WEEK_START"`

	BankHolidays []Holiday `yaml:"bank_holidays"`
}

type Holiday struct {
	Date string `yaml:"date"` // 2006-01-02
	Name string `yaml:"name"`
}

// Load reads the YAML file at path (missing file = defaults), then applies
// environment overrides, then fills remaining defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config environment: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "rota.db"
	}
	if c.Region == "" {
		c.Region = payroll.RegionEngland
	}
	if c.TaxWeekStart == "" {
		c.TaxWeekStart = payroll.WeekStartsSunday
	}
}

func (c *Config) validate() error {
	switch c.Region {
	case payroll.RegionEngland, payroll.RegionWales, payroll.RegionNorthernIreland, payroll.RegionScotland:
	default:
		return fmt.Errorf("config: unknown region %q", c.Region)
	}
	switch c.TaxWeekStart {
	case payroll.WeekStartsSunday, payroll.WeekStartsMonday:
	default:
		return fmt.Errorf("config: unknown tax week start %q", c.TaxWeekStart)
	}
	for _, h := range c.BankHolidays {
		if _, err := payroll.ParseDate(h.Date); err != nil {
			return fmt.Errorf("config: bank holiday %q: %w", h.Name, err)
		}
	}
	return nil
}

// HolidayCalendar builds the read-only calendar from the configured table.
func (c *Config) HolidayCalendar() *payroll.StaticHolidayCalendar {
	holidays := make([]payroll.BankHoliday, 0, len(c.BankHolidays))
	for _, h := range c.BankHolidays {
		date, err := payroll.ParseDate(h.Date)
		if err != nil {
			// validate() already rejected malformed dates.
			continue
		}
		holidays = append(holidays, payroll.BankHoliday{Date: date, Name: h.Name})
	}
	return payroll.NewHolidayCalendar(holidays...)
}
