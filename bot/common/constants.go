package common

import "time"

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287
	ColorDanger  = 0xED4245
	ColorWarning = 0xFEE75C
	ColorInfo    = 0x3498DB
)

// UI constants
const (
	MaxButtonsPerRow = 5
	MaxActionRows    = 5
	MaxMessageLength = 2000

	MaxEmbedDescriptionLength = 4096
	MaxButtonLabelLength      = 80
)

// PlatformTimeout bounds every database or Discord call made from an event handler
const PlatformTimeout = 10 * time.Second
