package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"shiftclock/internal/geofence"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <enter|exit> <location>",
	Short: "Feed a simulated geofence event through the full pipeline",
	Long: `Deliver a fake sensor callback for a location, exactly as the platform
would: the event is normalized by the adapter, audited, and applied by the
tracking state machine. Useful for demos and for field debugging.

Examples:
  shiftclock simulate enter "St. Mary Hospital"
  shiftclock simulate exit "St. Mary Hospital"`,
	Args: cobra.ExactArgs(2),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		location, err := findLocation(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		var kind geofence.RawEventKind
		switch args[0] {
		case "enter":
			kind = geofence.RawEventEnter
		case "exit":
			kind = geofence.RawEventExit
		default:
			fmt.Printf("Error: unknown event type %q (want enter or exit)\n", args[0])
			return
		}

		sensor := geofence.NewSimulatedSensor()
		adapter := geofence.NewAdapter(sensor, trk.HandleEvent, logger)
		if err := adapter.RegisterLocation(location); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		sensor.SetCallback(adapter.HandleCallback)

		sensor.Deliver(geofence.RawEvent{
			RegionID:  location.ID,
			Kind:      kind,
			Latitude:  &location.Latitude,
			Longitude: &location.Longitude,
		})

		session, err := trk.ActiveSession(location.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📡 Delivered %s event for \"%s\"\n", args[0], location.Name)
		printStatus(location, session)
	}),
}
