package model

// Centralized icons for report and TUI rendering
// Using simple single-width characters for consistent terminal rendering
const (
	IconPresent   = "✓" // Friend found next to the primary header
	IconAlternate = "→" // Friend found elsewhere under the search root
	IconMissing   = "✗" // Friend not found
	IconMatched   = "◆" // Record matched to the detected board
	IconOK        = " " // Space (OK - no icon to reduce noise)
)

// Report tags, mirroring the icons in plain ASCII.
const (
	TagPresent   = "[OK]"
	TagAlternate = "[ALT]"
	TagMissing   = "[MISS]"
)
