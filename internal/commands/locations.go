package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shiftclock/internal/store"
)

var locationsCmd = &cobra.Command{
	Use:     "locations",
	Aliases: []string{"loc"},
	Short:   "Manage tracked work locations",
}

var locationsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a work location geofence",
	Long: `Add a named work location to track.

Example:
  shiftclock locations add "St. Mary Hospital" --lat 48.1374 --lon 11.5755 --radius 150`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")
		radius, _ := cmd.Flags().GetFloat64("radius")

		location, err := st.CreateLocation(store.CreateLocationRequest{
			Name:         args[0],
			Latitude:     lat,
			Longitude:    lon,
			RadiusMeters: radius,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📍 Added location \"%s\" (%.4f, %.4f, %.0fm) - id %s\n",
			location.Name, location.Latitude, location.Longitude, location.RadiusMeters, location.ID)
	}),
}

var locationsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List work locations",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		activeOnly, _ := cmd.Flags().GetBool("active")

		locations, err := st.ListLocations(activeOnly)
		if err != nil {
			fmt.Printf("Error fetching locations: %v\n", err)
			return
		}

		if len(locations) == 0 {
			fmt.Println("No locations found. Use 'shiftclock locations add' to create your first one.")
			return
		}

		fmt.Printf("%-36s %-25s %-10s %-11s %-8s %s\n", "ID", "NAME", "LAT", "LON", "RADIUS", "TRACKING")
		fmt.Println(strings.Repeat("-", 100))

		for _, loc := range locations {
			name := loc.Name
			if len(name) > 23 {
				name = name[:20] + "..."
			}

			tracking := "on"
			if !loc.IsActive {
				tracking = "off"
			}

			fmt.Printf("%-36s %-25s %-10.4f %-11.4f %-8.0f %s\n",
				loc.ID, name, loc.Latitude, loc.Longitude, loc.RadiusMeters, tracking)
		}
	}),
}

var locationsRemoveCmd = &cobra.Command{
	Use:     "rm <location>",
	Aliases: []string{"remove"},
	Short:   "Remove a work location",
	Long:    "Remove a location and stop tracking it. Historical sessions are kept.",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		location, err := findLocation(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := st.DeleteLocation(location.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🗑️  Removed location \"%s\". Session history is preserved.\n", location.Name)
	}),
}

var locationsEnableCmd = &cobra.Command{
	Use:   "enable <location>",
	Short: "Resume tracking at a location",
	Args:  cobra.ExactArgs(1),
	Run:   withApp(setLocationActive(true)),
}

var locationsDisableCmd = &cobra.Command{
	Use:   "disable <location>",
	Short: "Pause tracking at a location without deleting it",
	Args:  cobra.ExactArgs(1),
	Run:   withApp(setLocationActive(false)),
}

func setLocationActive(active bool) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		location, err := findLocation(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		location, err = st.SetLocationActive(location.ID, active)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if active {
			fmt.Printf("▶️  Tracking enabled for \"%s\"\n", location.Name)
		} else {
			fmt.Printf("⏸️  Tracking paused for \"%s\"\n", location.Name)
		}
	}
}

func init() {
	locationsAddCmd.Flags().Float64("lat", 0, "Latitude of the geofence center")
	locationsAddCmd.Flags().Float64("lon", 0, "Longitude of the geofence center")
	locationsAddCmd.Flags().Float64("radius", 150, "Geofence radius in meters")
	locationsAddCmd.MarkFlagRequired("lat")
	locationsAddCmd.MarkFlagRequired("lon")

	locationsListCmd.Flags().Bool("active", false, "Show only locations with tracking enabled")

	locationsCmd.AddCommand(locationsAddCmd)
	locationsCmd.AddCommand(locationsListCmd)
	locationsCmd.AddCommand(locationsRemoveCmd)
	locationsCmd.AddCommand(locationsEnableCmd)
	locationsCmd.AddCommand(locationsDisableCmd)
}
