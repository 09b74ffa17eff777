package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/warp/rota-engine/payroll"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List configured jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := db.Jobs(cmd.Context())
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Println("No jobs configured.")
			return nil
		}
		for _, job := range jobs {
			pattern := "none"
			if job.Pattern != nil {
				pattern = string(job.Pattern.Kind)
			}
			fmt.Printf("%d  %s  basic %s/h  pattern %s\n", job.ID, job.Name, job.BasicPay, pattern)
		}
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <job-id> <from> <to>",
	Short: "Project a job's rota over a date range",
	Long:  `Project the on/off pattern for a job between two dates (inclusive). Dates are YYYY-MM-DD.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := parseJobID(args[0])
		if err != nil {
			return err
		}
		from, to, err := parseRange(args[1], args[2])
		if err != nil {
			return err
		}

		job, err := db.Job(cmd.Context(), jobID)
		if err != nil {
			return err
		}

		schedule := job.ScheduledShiftsBetween(from, to)
		if len(schedule) == 0 {
			fmt.Println("No schedule: the job has no shift pattern or first day.")
			return nil
		}
		for _, day := range schedule {
			marker := "off"
			if day.Status == payroll.StatusOn {
				marker = "ON "
			}
			fmt.Printf("%s  %-9s  %s  (day %d)\n", day.Date, day.Date.Weekday(), marker, day.DayInCycle)
		}
		fmt.Printf("\n%d of %d days on\n", schedule.OnCount(), len(schedule))
		return nil
	},
}

var payCmd = &cobra.Command{
	Use:   "pay <job-id> <from> <to>",
	Short: "Payment summary for a period",
	Long:  `Itemize the pay for a job's recorded shifts between two dates (inclusive), with PAYE deductions.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := parseJobID(args[0])
		if err != nil {
			return err
		}
		from, to, err := parseRange(args[1], args[2])
		if err != nil {
			return err
		}

		summary, err := builder.Summarize(cmd.Context(), jobID, from, to)
		if err != nil {
			return err
		}

		for _, p := range summary.Payments {
			label := string(p.Type)
			if p.Name != "" {
				label = p.Name
			}
			fmt.Printf("shift %-6d %-24s %s\n", p.ShiftID, label, p.Amount)
		}
		fmt.Printf("\nGross        %s\n", summary.Gross)
		fmt.Printf("Income tax   %s\n", summary.Tax)
		fmt.Printf("NI           %s\n", summary.NI)
		fmt.Printf("Deductions   %s\n", summary.TotalDeductions)
		fmt.Printf("Net          %s\n", summary.Net)
		return nil
	},
}

var taxweekCmd = &cobra.Command{
	Use:   "taxweek <date>",
	Short: "Resolve a date to its UK tax week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := payroll.ParseDate(args[0])
		if err != nil {
			return err
		}

		start := cfg.TaxWeekStart
		if s, _ := cmd.Flags().GetString("start"); s != "" {
			start = payroll.TaxWeekStart(s)
			if start != payroll.WeekStartsSunday && start != payroll.WeekStartsMonday {
				return fmt.Errorf("invalid week start %q", s)
			}
		}

		week := payroll.NewTaxWeek(date, start)
		fmt.Printf("Week %d of %s (week starting %s, %s convention)\n",
			week.WeekCommencing, week.FinancialYear, week.WeekStartDate, week.Start)
		return nil
	},
}

var taxCmd = &cobra.Command{
	Use:   "tax <gross-pence>",
	Short: "Estimate income tax and NI for an annual gross",
	Long:  `Estimate UK income tax and National Insurance for an annual gross amount given in pence.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gross, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || gross < 0 {
			return fmt.Errorf("invalid gross amount %q", args[0])
		}

		region := cfg.Region
		if s, _ := cmd.Flags().GetString("region"); s != "" {
			region = payroll.Region(s)
			switch region {
			case payroll.RegionEngland, payroll.RegionWales, payroll.RegionNorthernIreland, payroll.RegionScotland:
			default:
				return fmt.Errorf("invalid region %q", s)
			}
		}

		paye := payroll.NewPayeSummary(payroll.Pence(gross), region)
		fmt.Printf("Gross        %s (%s)\n", paye.Gross, region)
		fmt.Printf("Income tax   %s\n", paye.Tax())
		fmt.Printf("NI           %s\n", paye.NationalInsurance())
		fmt.Printf("Net          %s\n", paye.Net())
		return nil
	},
}

func init() {
	taxweekCmd.Flags().String("start", "", "week start convention (sunday|monday)")
	taxCmd.Flags().String("region", "", "tax region (england|wales|northern_ireland|scotland)")
}

func parseJobID(s string) (payroll.JobID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid job id %q", s)
	}
	return payroll.JobID(id), nil
}

func parseRange(fromStr, toStr string) (payroll.Date, payroll.Date, error) {
	from, err := payroll.ParseDate(fromStr)
	if err != nil {
		return payroll.Date{}, payroll.Date{}, err
	}
	to, err := payroll.ParseDate(toStr)
	if err != nil {
		return payroll.Date{}, payroll.Date{}, err
	}
	if to.Before(from) {
		return payroll.Date{}, payroll.Date{}, fmt.Errorf("range end %s before start %s", to, from)
	}
	return from, to, nil
}
