package render

import (
	"fmt"

	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/layout"
)

// HeaderInfo is the subset of app/snapshot state the header row shows
// (spec.md §7's "stale indicator in the header" plus basic system stats).
type HeaderInfo struct {
	Stale        bool
	ProcessCount int
	UsedMemory   uint64
	TotalMemory  uint64
	LoadPresent  bool
	Load1        float64
	Load5        float64
	Load15       float64
	Sort         layout.SortMode
	ColorMode    color.Mode
	Filter       string
	StatusLine   string
}

var colorModeNames = map[color.Mode]string{
	color.ModeName:       "Name",
	color.ModeMemory:     "Memory",
	color.ModeCPU:        "CPU",
	color.ModeUser:       "User",
	color.ModeGroup:      "Group",
	color.ModeMonochrome: "Mono",
}

// RenderHeader draws a single status row into bounds (spec.md §7): process
// count, memory, load average, sort/color mode, active filter, and a
// staleness indicator when the last collector pass failed. bounds.H is
// expected to be 1; rows beyond the first are left untouched.
func RenderHeader(buf *Buffer, bounds geometry.CellRect, info HeaderInfo) {
	if bounds.H <= 0 || bounds.W <= 0 {
		return
	}
	bg := color.RGB{R: 30, G: 30, B: 30}
	fg := color.RGB{R: 220, G: 220, B: 220}
	if info.Stale {
		bg = color.RGB{R: 120, G: 30, B: 30}
	}
	for x := bounds.X; x < bounds.X+bounds.W; x++ {
		buf.Set(x, bounds.Y, Cell{Rune: ' ', FG: fg, BG: bg})
	}

	text := headerText(info)
	writeText(buf, bounds.X+1, bounds.Y, truncateToWidth(text, bounds.W-2), fg, bg)
}

func headerText(info HeaderInfo) string {
	text := fmt.Sprintf("procs:%d  mem:%s/%s  sort:%s  color:%s",
		info.ProcessCount,
		layout.FormatBytes(info.UsedMemory),
		layout.FormatBytes(info.TotalMemory),
		info.Sort,
		colorModeNames[info.ColorMode],
	)
	if info.LoadPresent {
		text += fmt.Sprintf("  load:%.2f %.2f %.2f", info.Load1, info.Load5, info.Load15)
	}
	if info.Filter != "" {
		text += fmt.Sprintf("  filter:%q", info.Filter)
	}
	if info.Stale {
		text = "STALE  " + text
	}
	if info.StatusLine != "" {
		text += "  " + info.StatusLine
	}
	return text
}
