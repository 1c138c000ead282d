// Package color implements the color policy of §4.2: a deterministic, pure
// mapping from a process record and a view context to an RGB color,
// parameterized by color mode and theme.
//
// The RGB type and palette table are adapted from the teacher's
// pkg/color/defines.go ColorMap/ColorScheme tables (there keyed by ANSI
// 8/256-color scheme name and used to colorize printed text); here they are
// repurposed as RGB theme palettes (Vivid | Pastel | Light) keyed by §3's
// Theme enum and used to fill treemap rectangles instead of ANSI-wrapping
// strings.
package color

// RGB is a 24-bit color, adapted from the teacher's ColorMap{R,G,B,Ansi}
// with the unused Ansi string dropped since the renderer always emits
// truecolor/256-color escapes itself.
type RGB struct {
	R, G, B uint8
}

// Mode selects which process attribute drives the color mapping (§4.2).
type Mode int

const (
	ModeName Mode = iota
	ModeMemory
	ModeCPU
	ModeUser
	ModeGroup
	ModeMonochrome
)

func (m Mode) Next() Mode {
	return (m + 1) % (ModeMonochrome + 1)
}

// Theme selects the palette and gradient stops used by the color policy.
type Theme int

const (
	ThemeVivid Theme = iota
	ThemePastel
	ThemeLight
)

func (t Theme) Next() Theme {
	return (t + 1) % (ThemeLight + 1)
}

// Palette is the set of hues used to color-by-hash (Name/User/Group modes),
// plus the three-stop heat gradient used by Memory/CPU modes and the base
// tone for Monochrome.
type Palette struct {
	Hues           []RGB
	HeatLow        RGB
	HeatMid        RGB
	HeatHigh       RGB
	MonochromeBase RGB
}

// Palettes maps each theme to its concrete palette, mirroring the structure
// (if not the content) of the teacher's ColorSchemes map.
var Palettes = map[Theme]Palette{
	ThemeVivid: {
		Hues: []RGB{
			{R: 230, G: 57, B: 70}, {R: 241, G: 143, B: 1}, {R: 244, G: 208, B: 63},
			{R: 46, G: 204, B: 113}, {R: 26, G: 188, B: 156}, {R: 52, G: 152, B: 219},
			{R: 155, G: 89, B: 182}, {R: 231, G: 76, B: 60}, {R: 52, G: 73, B: 94},
			{R: 230, G: 126, B: 34},
		},
		HeatLow:        RGB{R: 46, G: 204, B: 113},
		HeatMid:        RGB{R: 241, G: 196, B: 15},
		HeatHigh:       RGB{R: 231, G: 76, B: 60},
		MonochromeBase: RGB{R: 210, G: 210, B: 210},
	},
	ThemePastel: {
		Hues: []RGB{
			{R: 255, G: 179, B: 186}, {R: 255, G: 223, B: 186}, {R: 255, G: 255, B: 186},
			{R: 186, G: 255, B: 201}, {R: 186, G: 225, B: 255}, {R: 202, G: 186, B: 255},
			{R: 255, G: 186, B: 246}, {R: 186, G: 255, B: 255}, {R: 222, G: 222, B: 222},
			{R: 255, G: 214, B: 165},
		},
		HeatLow:        RGB{R: 186, G: 255, B: 201},
		HeatMid:        RGB{R: 255, G: 255, B: 186},
		HeatHigh:       RGB{R: 255, G: 179, B: 186},
		MonochromeBase: RGB{R: 225, G: 225, B: 225},
	},
	ThemeLight: {
		Hues: []RGB{
			{R: 211, G: 47, B: 47}, {R: 245, G: 124, B: 0}, {R: 251, G: 192, B: 45},
			{R: 56, G: 142, B: 60}, {R: 0, G: 151, B: 167}, {R: 25, G: 118, B: 210},
			{R: 103, G: 58, B: 183}, {R: 194, G: 24, B: 91}, {R: 84, G: 110, B: 122},
			{R: 230, G: 81, B: 0},
		},
		HeatLow:        RGB{R: 56, G: 142, B: 60},
		HeatMid:        RGB{R: 251, G: 192, B: 45},
		HeatHigh:       RGB{R: 211, G: 47, B: 47},
		MonochromeBase: RGB{R: 120, G: 120, B: 120},
	},
}
