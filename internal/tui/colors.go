package tui

// Color constants for the shiftclock TUI theme
const (
	// Base Colors
	ColorAppBackground = "" // Use terminal default background
	ColorBorder        = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#0EA5E9" // Accent elements, active borders
	ColorAccentBright = "#7DD3FC" // Highlights, the running clock

	// State Colors
	ColorError   = "#EF4444" // Errors
	ColorSuccess = "#22C55E" // Active tracking
	ColorWarning = "#F59E0B" // Pending exit countdown
)
