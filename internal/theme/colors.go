package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Priority colors
const (
	ColorPriorityHigh   Color = "196" // Bright red
	ColorPriorityLow    Color = "33"  // Blue
	ColorPriorityMedium Color = "214" // Orange
	ColorPriorityNone   Color = "245" // Light gray
)

// Outcome colors
const (
	ColorFailure Color = "1" // Red - failed runs and gates
	ColorPending Color = "3" // Yellow - running, stopped, skipped
	ColorSuccess Color = "2" // Green - committed runs, passed gates
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
)
