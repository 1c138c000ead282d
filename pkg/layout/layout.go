// Package layout implements the layout pipeline (spec.md §4.4): given a
// snapshot and a view context, it produces a sequence of laid-out,
// colored, labeled rectangles ready for interpolation and rendering.
package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/process"
	"github.com/gdanko/squaretop/pkg/snapshot"
	"github.com/gdanko/squaretop/pkg/treemap"
)

// SortMode orders the flat process list before layout.
type SortMode int

const (
	SortMemory SortMode = iota
	SortCPU
	SortName
)

// Next cycles Memory -> CPU -> Name -> Memory (spec.md §4.6 CycleSort).
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}

func (m SortMode) String() string {
	switch m {
	case SortMemory:
		return "Memory"
	case SortCPU:
		return "CPU"
	case SortName:
		return "Name"
	default:
		return "Memory"
	}
}

// BorderStyle selects the seam glyph weight the renderer uses (spec.md §4.8).
type BorderStyle int

const (
	BorderThin BorderStyle = iota
	BorderThick
	BorderNone
)

// OtherPID is the sentinel identifier for the aggregated "Other" rect.
const OtherPID uint32 = 0xFFFFFFFF

// ViewContext bundles the user-selected rendering preferences passed to the
// layout pipeline (spec.md §3).
type ViewContext struct {
	Sort             SortMode
	ColorMode        color.Mode
	Theme            color.Theme
	Filter           string
	ZoomStack        []uint32
	Bounds           geometry.CellRect
	MaxVisibleProcs  int
	GroupThreshold   float64
	MinRectWidth     int
	MinRectHeight    int
	BorderStyle      BorderStyle
	AnimationFrames  int
	SparklineLength  int
	HeatLow          color.RGB
	HeatMid          color.RGB
	HeatHigh         color.RGB
}

// LayoutRect is one laid-out, colored, labeled rectangle (spec.md §3).
type LayoutRect struct {
	Rect     geometry.Rect
	ID       uint32
	Label    string // "name  formatted_bytes", composed from Name and ByteLabel
	Name     string
	ByteLabel string
	Weight   uint64
	Depth    int
	Color    color.RGB
	Selected bool
	Visible  bool
}

// OtherSummary describes the synthetic "Other" aggregate rect, when present.
type OtherSummary struct {
	Count  int
	Weight uint64
}

// Layout is the output of the pipeline (spec.md §4.4).
type Layout struct {
	Rects             []LayoutRect
	OtherSummary      *OtherSummary
	TotalVisibleMemory uint64
}

// Build runs the seven-step layout pipeline over snap under ctx.
func Build(snap snapshot.Snapshot, ctx ViewContext) Layout {
	if snap.Tree == nil {
		return Layout{}
	}

	scope := scopeRecords(snap.Tree, ctx.ZoomStack)
	if len(scope) == 0 {
		return Layout{}
	}

	filtered := filterRecords(scope, ctx.Filter)
	if len(filtered) == 0 {
		return Layout{}
	}

	sortRecords(filtered, ctx.Sort)

	visible, other := capAndGroup(filtered, ctx.MaxVisibleProcs, ctx.GroupThreshold, snap.TotalMemoryBytes())

	items := make([]treemap.Item, 0, len(visible)+1)
	for _, r := range visible {
		items = append(items, treemap.Item{ID: r.PID, Weight: r.MemoryBytes})
	}
	if other != nil && other.Weight > 0 {
		items = append(items, treemap.Item{ID: OtherPID, Weight: other.Weight})
	}

	bounds := geometry.ToFloatRect(ctx.Bounds)
	rects := treemap.Squarify(items, bounds)

	colorCtx := color.Context{
		Mode:             ctx.ColorMode,
		Theme:            ctx.Theme,
		TotalMemoryBytes: snap.TotalMemoryBytes(),
		HeatLow:          ctx.HeatLow,
		HeatMid:          ctx.HeatMid,
		HeatHigh:         ctx.HeatHigh,
	}

	out := make([]LayoutRect, len(items))
	var totalVisible uint64
	for i, item := range items {
		lr := LayoutRect{
			Rect:   rects[i],
			ID:     item.ID.(uint32),
			Weight: item.Weight,
			Depth:  len(ctx.ZoomStack),
		}
		if lr.ID == OtherPID {
			lr.Name = fmt.Sprintf("Other (%d)", other.Count)
			lr.ByteLabel = FormatBytes(other.Weight)
			lr.Color = color.RGB{}
		} else {
			rec, _ := snap.Tree.ByPID(lr.ID)
			lr.Name = rec.Name
			lr.ByteLabel = FormatBytes(rec.MemoryBytes)
			lr.Color = color.For(rec, colorCtx)
		}
		lr.Label = lr.Name + "  " + lr.ByteLabel
		cell := geometry.ToCellRect(lr.Rect, ctx.Bounds)
		lr.Visible = cell.W >= ctx.MinRectWidth && cell.H >= ctx.MinRectHeight && !cell.Empty()
		totalVisible += item.Weight
		out[i] = lr
	}

	return Layout{Rects: out, OtherSummary: other, TotalVisibleMemory: totalVisible}
}

func scopeRecords(tree *process.Tree, zoomStack []uint32) []process.Record {
	if len(zoomStack) == 0 {
		return tree.All()
	}
	innermost := zoomStack[len(zoomStack)-1]
	return tree.Subtree(innermost)
}

func filterRecords(records []process.Record, filter string) []process.Record {
	if filter == "" {
		return records
	}
	needle := strings.ToLower(filter)
	out := make([]process.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), needle) || strings.Contains(strings.ToLower(r.CommandLine), needle) {
			out = append(out, r)
		}
	}
	return out
}

func sortRecords(records []process.Record, mode SortMode) {
	switch mode {
	case SortMemory:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].MemoryBytes != records[j].MemoryBytes {
				return records[i].MemoryBytes > records[j].MemoryBytes
			}
			return records[i].PID < records[j].PID
		})
	case SortCPU:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].CPUPercent != records[j].CPUPercent {
				return records[i].CPUPercent > records[j].CPUPercent
			}
			return records[i].PID < records[j].PID
		})
	case SortName:
		sort.SliceStable(records, func(i, j int) bool {
			ni, nj := strings.ToLower(records[i].Name), strings.ToLower(records[j].Name)
			if ni != nj {
				return ni < nj
			}
			return records[i].PID < records[j].PID
		})
	}
}

// capAndGroup applies the visibility cap, taken from the sorted sequence
// first, then aggregates the remainder plus any sub-threshold item from
// among the retained set into "Other" (spec.md §9's resolved Open
// Question: count cap before threshold grouping).
func capAndGroup(records []process.Record, maxVisible int, threshold float64, totalMemory uint64) ([]process.Record, *OtherSummary) {
	if maxVisible <= 0 || maxVisible >= len(records) {
		maxVisible = len(records)
	}
	capped := records[:maxVisible]
	excluded := records[maxVisible:]

	var visible []process.Record
	other := &OtherSummary{}
	for _, r := range excluded {
		other.Count++
		other.Weight += r.MemoryBytes
	}
	for _, r := range capped {
		if threshold > 0 && totalMemory > 0 && float64(r.MemoryBytes)/float64(totalMemory) < threshold {
			other.Count++
			other.Weight += r.MemoryBytes
			continue
		}
		visible = append(visible, r)
	}
	if other.Count == 0 {
		other = nil
	}
	return visible, other
}

// FormatBytes renders n as a human-readable byte size ("512B", "1.0KiB",
// ...), shared by the layout pipeline's own labels and the header/detail
// panel renderers.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	units := "KMGTPE"
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), units[exp])
}
