package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shiftclock/internal/tracker"
)

var clockinCmd = &cobra.Command{
	Use:   "clockin <location>",
	Short: "Manually clock in at a location",
	Long: `Manually start a tracking session, bypassing the geofence sensor.

Example:
  shiftclock clockin "St. Mary Hospital"`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		location, err := findLocation(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session, err := trk.ClockIn(location.ID)
		if errors.Is(err, tracker.ErrAlreadyClockedIn) {
			fmt.Printf("Already clocked in at \"%s\". Use 'shiftclock clockout' first.\n", location.Name)
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("⏱️  Clocked in at \"%s\"\n", location.Name)
		fmt.Printf("Started at: %s\n", session.ClockIn.Format("15:04:05"))
	}),
}

var clockoutCmd = &cobra.Command{
	Use:   "clockout <location>",
	Short: "Manually clock out of a location",
	Long:  "Close the open session immediately. No grace period applies to manual clock-out.",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		location, err := findLocation(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session, err := trk.ClockOut(location.ID)
		if errors.Is(err, tracker.ErrNoActiveSession) {
			fmt.Printf("Not clocked in at \"%s\".\n", location.Name)
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		minutes := 0
		if session.DurationMinutes != nil {
			minutes = *session.DurationMinutes
		}
		fmt.Printf("⏹️  Clocked out of \"%s\"\n", location.Name)
		fmt.Printf("Session duration: %s\n", formatDuration(time.Duration(minutes)*time.Minute))
	}),
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}
