package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shiftclock/internal/models"
)

var historyCmd = &cobra.Command{
	Use:   "history <location>",
	Short: "Show session history for a location",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		location, err := findLocation(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		sessions, err := trk.History(location.ID, limit)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(sessions) == 0 {
			fmt.Printf("No sessions recorded at \"%s\" yet.\n", location.Name)
			return
		}

		fmt.Printf("Sessions at \"%s\":\n\n", location.Name)
		fmt.Printf("%-12s %-8s %-8s %-9s %-13s %s\n", "DATE", "IN", "OUT", "DURATION", "METHOD", "STATE")
		fmt.Println(strings.Repeat("-", 62))

		for _, s := range sessions {
			out := "-"
			if s.ClockOut != nil {
				out = s.ClockOut.Format("15:04")
			}

			duration := "-"
			if s.DurationMinutes != nil {
				duration = formatDuration(time.Duration(*s.DurationMinutes) * time.Minute)
			}

			fmt.Printf("%-12s %-8s %-8s %-9s %-13s %s\n",
				s.ClockIn.Format("02/01/2006"),
				s.ClockIn.Format("15:04"),
				out,
				duration,
				s.TrackingMethod,
				s.State)
		}
	}),
}

var eventsCmd = &cobra.Command{
	Use:   "events <location>",
	Short: "Show the geofence audit log for a location",
	Long:  "Show every enter/exit event the sensor reported, including ignored ones. Useful for diagnosing false exits.",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		location, err := findLocation(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		events, err := st.EventLog(location.ID, limit)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(events) == 0 {
			fmt.Printf("No geofence events recorded for \"%s\" yet.\n", location.Name)
			return
		}

		fmt.Printf("Geofence events for \"%s\":\n\n", location.Name)
		fmt.Printf("%-20s %-6s %-9s %-8s %s\n", "TIME", "TYPE", "HANDLED", "GPS", "REASON")
		fmt.Println(strings.Repeat("-", 62))

		for _, e := range events {
			handled := "yes"
			if e.Ignored {
				handled = "ignored"
			}
			fmt.Printf("%-20s %-6s %-9s %-8s %s\n",
				e.Timestamp.Format("02/01/2006 15:04:05"),
				e.EventType,
				handled,
				accuracyHint(e),
				e.IgnoreReason)
		}
	}),
}

// accuracyHint renders an optional accuracy in meters
func accuracyHint(e models.GeofenceEvent) string {
	if e.Accuracy == nil {
		return ""
	}
	return fmt.Sprintf("±%.0fm", *e.Accuracy)
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")
	eventsCmd.Flags().Int("limit", 50, "Maximum number of events to show")
}
