package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/warp/rota-engine/config"
	"github.com/warp/rota-engine/payroll"
	"github.com/warp/rota-engine/report"
	"github.com/warp/rota-engine/store/sqlite"
)

var (
	cfg     *config.Config
	db      *sqlite.Store
	seq     *payroll.Sequences
	builder *report.Builder
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "rota",
	Short: "Shift rota and UK pay calculator",
	Long:  `Rota projects shift schedules, itemizes shift pay, and estimates UK income tax and National Insurance.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		db, err = sqlite.New(cfg.DatabasePath)
		if err != nil {
			return err
		}
		seq = payroll.NewSequences()
		if err := payroll.SeedSequences(context.Background(), db, seq); err != nil {
			return err
		}
		builder = report.NewBuilder(db, cfg.HolidayCalendar(), cfg.Region)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "rota.yaml", "path to config file")

	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(taxweekCmd)
	rootCmd.AddCommand(taxCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
