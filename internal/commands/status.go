package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shiftclock/internal/models"
	"shiftclock/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status [location]",
	Short: "Show current tracking status",
	Long: `Show the open session for one location, or for all locations when no
argument is given. Use --watch for a live view.`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		watch, _ := cmd.Flags().GetBool("watch")

		if len(args) == 1 {
			location, err := findLocation(args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}

			if watch {
				if err := tui.RunStatusTUI(trk, location, cfg.GracePeriod()); err != nil {
					fmt.Printf("Error: %v\n", err)
				}
				return
			}

			session, err := trk.ActiveSession(location.ID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			printStatus(location, session)
			return
		}

		locations, err := st.ListLocations(false)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		open := 0
		for i := range locations {
			session, err := trk.ActiveSession(locations[i].ID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if session != nil {
				printStatus(&locations[i], session)
				open++
			}
		}
		if open == 0 {
			fmt.Println("No active tracking session")
		}
	}),
}

func printStatus(location *models.UserLocation, session *models.TrackingSession) {
	if session == nil {
		fmt.Printf("Not clocked in at \"%s\"\n", location.Name)
		return
	}

	elapsed := time.Since(session.ClockIn)
	fmt.Printf("⏱️  Tracking at \"%s\" (%s)\n", location.Name, session.TrackingMethod)
	fmt.Printf("Clocked in: %s\n", session.ClockIn.Format("15:04:05"))
	fmt.Printf("Elapsed: %s\n", formatDuration(elapsed))

	if session.State == models.SessionPendingExit && session.PendingExitAt != nil {
		fmt.Printf("⚠️  Pending exit since %s - re-enter to keep the session open\n",
			session.PendingExitAt.Format("15:04:05"))
	}
}

func init() {
	statusCmd.Flags().Bool("watch", false, "Live status view")
}
