package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shiftclock/internal/config"
	"shiftclock/internal/models"
	"shiftclock/internal/notify"
	"shiftclock/internal/store"
	"shiftclock/internal/tracker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "shiftclock",
	Short: "Location-triggered time tracking for shift workers",
	Long: `shiftclock turns geofence enter/exit events into durable clock-in/clock-out
sessions per work location, with a grace period that absorbs sensor flicker
and manual override when the sensor gets it wrong.`,
}

// Shared app state initialized by withApp
var (
	cfg    *config.Config
	logger *zap.Logger
	st     *store.Store
	trk    *tracker.Tracker
)

// initApp wires config, logging, store, and tracker. Panics on failures a
// CLI invocation cannot recover from.
func initApp() {
	cfg = config.Load()

	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}

	st, err = store.Open(cfg.DBPath, store.Options{
		MinRadiusMeters: cfg.MinRadiusMeters,
		MaxRadiusMeters: cfg.MaxRadiusMeters,
	})
	if err != nil {
		panic(err)
	}

	trk = tracker.New(st, notify.NewLogNotifier(logger), logger, tracker.Options{
		GracePeriod:           cfg.GracePeriod(),
		ShortSessionThreshold: cfg.ShortSessionThreshold(),
	})
}

// withApp wraps a command function to initialize the app first
func withApp(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		initApp()
		defer logger.Sync()
		fn(cmd, args)
	}
}

// findLocation resolves a location argument by id, then by unique name.
func findLocation(arg string) (*models.UserLocation, error) {
	if loc, err := st.GetLocation(arg); err == nil {
		return loc, nil
	}

	locations, err := st.ListLocations(false)
	if err != nil {
		return nil, err
	}

	var matches []models.UserLocation
	for _, loc := range locations {
		if strings.EqualFold(loc.Name, arg) {
			matches = append(matches, loc)
		}
	}
	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, fmt.Errorf("no location matching %q. Use 'shiftclock locations ls' to list locations", arg)
	default:
		return nil, fmt.Errorf("%d locations named %q, use the id instead", len(matches), arg)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shiftclock %s (commit %s, built %s)\n", version, commit, date)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(clockinCmd)
	rootCmd.AddCommand(clockoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
