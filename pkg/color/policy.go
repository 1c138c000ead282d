package color

import (
	"hash/fnv"
	"math"

	"github.com/gdanko/squaretop/pkg/process"
)

// Context is the subset of the layout's view context the color policy needs
// (spec.md §4.2): the active mode, theme, and the snapshot's total memory
// (the denominator for Memory-mode's fraction).
type Context struct {
	Mode             Mode
	Theme            Theme
	TotalMemoryBytes uint64

	// HeatLow/HeatMid/HeatHigh override the active theme's gradient stops
	// when set (spec.md §6's configurable heat colors). The zero RGB{}
	// value means "use the theme palette's stop."
	HeatLow  RGB
	HeatMid  RGB
	HeatHigh RGB
}

// For computes the deterministic color for a record under ctx. Equal inputs
// always produce equal outputs (spec.md §8).
func For(rec process.Record, ctx Context) RGB {
	pal := Palettes[ctx.Theme]
	if len(pal.Hues) == 0 {
		pal = Palettes[ThemeVivid]
	}

	low, mid, high := resolveHeatStops(pal, ctx)

	switch ctx.Mode {
	case ModeMemory:
		return gradient(low, mid, high, memoryFraction(rec, ctx))
	case ModeCPU:
		return gradient(low, mid, high, cpuFraction(rec))
	case ModeUser:
		return pal.Hues[hashString(rec.User)%uint32(len(pal.Hues))]
	case ModeGroup:
		key := rec.Group
		if !rec.HasGroup || key == "" {
			key = "\x00no-group"
		}
		return pal.Hues[hashString(key)%uint32(len(pal.Hues))]
	case ModeMonochrome:
		return monochrome(pal, memoryFraction(rec, ctx))
	case ModeName:
		fallthrough
	default:
		return pal.Hues[hashString(rec.Name)%uint32(len(pal.Hues))]
	}
}

func memoryFraction(rec process.Record, ctx Context) float64 {
	if ctx.TotalMemoryBytes == 0 {
		return 0
	}
	f := float64(rec.MemoryBytes) / float64(ctx.TotalMemoryBytes)
	return clamp01(f)
}

func cpuFraction(rec process.Record) float64 {
	return clamp01(rec.CPUPercent / 100)
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// resolveHeatStops returns the gradient stops ctx.For should use: a
// configured heat color override when ctx sets one, else the theme
// palette's own stop.
func resolveHeatStops(pal Palette, ctx Context) (low, mid, high RGB) {
	low, mid, high = pal.HeatLow, pal.HeatMid, pal.HeatHigh
	if ctx.HeatLow != (RGB{}) {
		low = ctx.HeatLow
	}
	if ctx.HeatMid != (RGB{}) {
		mid = ctx.HeatMid
	}
	if ctx.HeatHigh != (RGB{}) {
		high = ctx.HeatHigh
	}
	return low, mid, high
}

// gradient linearly interpolates across the three-stop heat gradient
// (heat_low, heat_mid, heat_high) over fraction t in [0,1].
func gradient(low, mid, high RGB, t float64) RGB {
	if t <= 0.5 {
		return lerp(low, mid, t/0.5)
	}
	return lerp(mid, high, (t-0.5)/0.5)
}

func lerp(a, b RGB, t float64) RGB {
	t = clamp01(t)
	return RGB{
		R: lerpByte(a.R, b.R, t),
		G: lerpByte(a.G, b.G, t),
		B: lerpByte(a.B, b.B, t),
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// monochrome returns a gray value proportional to the memory fraction,
// scaled against the theme's monochrome base tone.
func monochrome(pal Palette, t float64) RGB {
	v := uint8(math.Round(float64(pal.MonochromeBase.R) * (0.25 + 0.75*t)))
	return RGB{R: v, G: v, B: v}
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// Luminance returns the perceived sRGB-relative luminance of c in [0,1].
func Luminance(c RGB) float64 {
	lin := func(v uint8) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastText returns the foreground color (black or white) with the best
// contrast against background, using the 0.5 relative-luminance threshold
// from spec.md §4.2.
func ContrastText(background RGB) RGB {
	if Luminance(background) > 0.5 {
		return RGB{0, 0, 0}
	}
	return RGB{255, 255, 255}
}
