// Package interpolate animates between two layouts keyed by PID (spec.md
// §4.5), producing the frame a still-animating App shows for one tick of
// the animation clock.
package interpolate

import (
	"math"

	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/layout"
)

// Frame computes the interpolated layout at the given frame out of total
// (both >= 1, frame in [0, total]). Rects present in both from and to are
// eased toward to; rects only in to fade in from their own centroid; rects
// only in from are omitted entirely (spec.md §9: no fade-out, to avoid
// showing dead processes).
func Frame(from, to layout.Layout, frame, total int) layout.Layout {
	if total <= 0 {
		return to
	}
	if frame >= total {
		return to
	}
	if frame < 0 {
		frame = 0
	}

	t := float64(frame) / float64(total)
	eased := 1 - (1-t)*(1-t)

	fromByID := make(map[uint32]layout.LayoutRect, len(from.Rects))
	for _, r := range from.Rects {
		fromByID[r.ID] = r
	}

	out := make([]layout.LayoutRect, len(to.Rects))
	for i, toRect := range to.Rects {
		if fromRect, ok := fromByID[toRect.ID]; ok {
			out[i] = toRect
			out[i].Rect = lerpRect(fromRect.Rect, toRect.Rect, eased)
		} else {
			out[i] = toRect
			out[i].Rect = fadeInRect(toRect.Rect, eased)
		}
	}

	return layout.Layout{
		Rects:              out,
		OtherSummary:       to.OtherSummary,
		TotalVisibleMemory: to.TotalVisibleMemory,
	}
}

func lerpRect(a, b geometry.Rect, t float64) geometry.Rect {
	return geometry.Rect{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		W: a.W + (b.W-a.W)*t,
		H: a.H + (b.H-a.H)*t,
	}
}

// fadeInRect grows a rect from its own centroid at t=0 to its full extent
// at t=1 (spec.md §4.5: "fade in by scaling from the centroid of to").
func fadeInRect(r geometry.Rect, t float64) geometry.Rect {
	t = math.Max(0, math.Min(1, t))
	cx := r.X + r.W/2
	cy := r.Y + r.H/2
	w := r.W * t
	h := r.H * t
	return geometry.Rect{
		X: cx - w/2,
		Y: cy - h/2,
		W: w,
		H: h,
	}
}
