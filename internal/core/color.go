package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Base palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightBlue
	ColorBrightWhite
	ColorPink
	ColorOrange
	ColorGray
)

// Board roles. Renderers refer to these rather than raw palette entries.
const (
	ColorWall        = ColorBlue
	ColorGate        = ColorPink
	ColorPellet      = ColorWhite
	ColorPowerPellet = ColorBrightWhite
	ColorPlayer      = ColorYellow
	ColorVulnerable  = ColorBrightBlue
	ColorCaptured    = ColorGray
	ColorHUD         = ColorBrightWhite
)
