package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shiftclock/internal/parser"
	"shiftclock/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show tracked hours per day",
	Long: `Sum closed sessions into per-day actual hours.

Examples:
  shiftclock report                          # last 7 days
  shiftclock report --from "2 weeks"
  shiftclock report --from 01/08/2026 --to 31/08/2026`,
	Run: withApp(func(cmd *cobra.Command, args []string) {
		fromArg, _ := cmd.Flags().GetString("from")
		toArg, _ := cmd.Flags().GetString("to")

		from, err := parser.ParseDay(fromArg)
		if err != nil {
			fmt.Printf("Error: invalid --from: %v\n", err)
			return
		}
		to, err := parser.ParseDay(toArg)
		if err != nil {
			fmt.Printf("Error: invalid --to: %v\n", err)
			return
		}

		sessions, err := st.SessionsInRange(from, parser.EndOfDay(to))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		actuals := report.BuildDailyActuals(sessions)
		if len(actuals) == 0 {
			fmt.Println("No closed sessions in this range.")
			return
		}

		fmt.Printf("%-12s %-8s %-9s %s\n", "DATE", "HOURS", "SESSIONS", "SOURCE")
		fmt.Println(strings.Repeat("-", 42))

		var total float64
		for _, day := range actuals {
			fmt.Printf("%-12s %-8.2f %-9d %s\n",
				day.Date.Format("02/01/2006"), day.ActualHours, day.Sessions, day.Source)
			total += day.ActualHours
		}

		fmt.Println(strings.Repeat("-", 42))
		fmt.Printf("%-12s %.2f\n", "TOTAL", total)
	}),
}

func init() {
	defaultFrom := time.Now().AddDate(0, 0, -7).Format("02/01/2006")
	reportCmd.Flags().String("from", defaultFrom, "Start day (today, yesterday, dd/mm/yyyy, X days, X weeks)")
	reportCmd.Flags().String("to", "today", "End day (same formats)")
}
