package tui

// Color constants for the sleeplog TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#111827" // Night navy
	ColorBorder         = "#334155" // Slate

	// Text Colors
	ColorPrimaryText   = "#E5E7EB" // Primary text (labels, user input, titles)
	ColorSecondaryText = "#A5B4CB" // Secondary text, cool blue-grey
	ColorDisabledText  = "#64748B" // Disabled/muted text, empty days
	ColorPlaceholder   = "#A5B4CB" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Moonlight theme)
	ColorAccentMain   = "#6366F1" // Logo, accent elements, active borders
	ColorAccentBright = "#A5B4FC" // Cursor, highlights, current step
	ColorMoon         = "#FDE68A" // Clock digits, stars

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Goal reached, confirmations
	ColorWarning = "#F59E0B" // Short nights
)
