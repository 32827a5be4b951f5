package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"shiftclock/internal/geofence"
	"shiftclock/internal/tracker"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the tracking engine until interrupted",
	Long: `Register all enabled locations with the geofence sensor and keep the
engine running: incoming events drive sessions, and a background sweep
finalizes sessions whose grace period elapsed (including sessions left
pending by a previous run).`,
	Run: withApp(func(cmd *cobra.Command, args []string) {
		locations, err := st.ListLocations(true)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(locations) == 0 {
			fmt.Println("No enabled locations. Use 'shiftclock locations add' first.")
			return
		}

		sensor := geofence.NewSimulatedSensor()
		adapter := geofence.NewAdapter(sensor, trk.HandleEvent, logger)
		sensor.SetCallback(adapter.HandleCallback)

		for i := range locations {
			if err := adapter.RegisterLocation(&locations[i]); err != nil {
				if errors.Is(err, geofence.ErrPermissionDenied) {
					fmt.Println("Error: location permission not granted. Grant it and retry.")
					return
				}
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		sweeper := tracker.NewSweeper(trk, logger, cfg.SweepInterval)
		sweeper.Start()
		defer sweeper.Stop()

		fmt.Printf("👁  Watching %d location(s). Ctrl+C to stop.\n", len(locations))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		fmt.Println("\nStopping.")
	}),
}
