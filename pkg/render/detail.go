package render

import (
	"fmt"

	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/layout"
)

// DetailInfo is the selected process's detail-panel content (spec.md §3):
// its identity, current stats, and pre-rendered memory/cpu sparklines
// (built by sparkline.RenderMemory/RenderCPU over its sample history).
type DetailInfo struct {
	Valid       bool
	PID         uint32
	Name        string
	CommandLine string
	User        string
	State       string
	MemoryBytes uint64
	CPUPercent  float64
	MemorySpark string
	CPUSpark    string
}

// RenderDetailPanel draws the selected process's details into bounds,
// called only when the detail panel is toggled on (spec.md §4.6
// ToggleDetail).
func RenderDetailPanel(buf *Buffer, bounds geometry.CellRect, info DetailInfo) {
	if bounds.H <= 0 || bounds.W <= 0 {
		return
	}
	bg := color.RGB{R: 20, G: 20, B: 20}
	fg := color.RGB{R: 220, G: 220, B: 220}
	for y := bounds.Y; y < bounds.Y+bounds.H; y++ {
		for x := bounds.X; x < bounds.X+bounds.W; x++ {
			buf.Set(x, y, Cell{Rune: ' ', FG: fg, BG: bg})
		}
	}
	if !info.Valid {
		return
	}

	lines := []string{
		fmt.Sprintf("%s (%d)", info.Name, info.PID),
		fmt.Sprintf("user: %s", info.User),
		fmt.Sprintf("state: %s", info.State),
		fmt.Sprintf("mem: %s", layout.FormatBytes(info.MemoryBytes)),
		fmt.Sprintf("cpu: %.1f%%", info.CPUPercent),
		fmt.Sprintf("cmd: %s", info.CommandLine),
	}
	if info.MemorySpark != "" {
		lines = append(lines, "", fmt.Sprintf("mem %s", info.MemorySpark))
	}
	if info.CPUSpark != "" {
		lines = append(lines, fmt.Sprintf("cpu %s", info.CPUSpark))
	}

	for i, line := range lines {
		y := bounds.Y + i
		if y >= bounds.Y+bounds.H {
			break
		}
		writeText(buf, bounds.X+1, y, truncateToWidth(line, bounds.W-2), fg, bg)
	}
}
