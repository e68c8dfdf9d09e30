package utils

// ColourScheme defines the Catppuccin colour scheme used throughout the
// application.
type ColourScheme struct {
	Red      string
	Peach    string
	Yellow   string
	Green    string
	Teal     string
	Blue     string
	Lavender string
	Text     string
	Subtext0 string
	Overlay1 string
	Surface1 string
	Surface0 string
	Base     string
}

// Colours provides the default Catppuccin (Mocha) palette.
var Colours = ColourScheme{
	Red:      "#f38ba8",
	Peach:    "#fab387",
	Yellow:   "#f9e2af",
	Green:    "#a6e3a1",
	Teal:     "#94e2d5",
	Blue:     "#89b4fa",
	Lavender: "#b4befe",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Overlay1: "#7f849c",
	Surface1: "#45475a",
	Surface0: "#313244",
	Base:     "#1e1e2e",
}
