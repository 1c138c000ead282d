// Package treemap implements the squarified treemap layout algorithm: a pure
// geometric function mapping a weighted list of items onto a rectangle with
// aspect ratios close to 1.
//
// This is new code grounded directly in spec.md §4.1 rather than adapted from
// the teacher, which has no layout algorithm of its own — the teacher's
// pkg/pstree/tree_map.go builds a map-shaped process hierarchy, not a
// geometric layout, despite the similar name.
package treemap

import (
	"math"
	"sort"

	"github.com/gdanko/squaretop/pkg/geometry"
)

// Item is one entry in the weighted sequence handed to Squarify. Weight must
// be non-negative; callers guarantee the sequence sums to S > 0 for a
// non-empty result.
type Item struct {
	ID     any
	Weight uint64
}

// Squarify lays items out within bounds using the squarified treemap
// algorithm and returns one rectangle per item, in input order.
//
// bounds with non-positive width or height, or any item weight that would
// produce a NaN/Inf computation, yields an empty result. A bounds.Area() of
// zero or a weight sum of zero likewise yields an empty result — both are
// defined failure modes, not errors.
func Squarify(items []Item, bounds geometry.Rect) []geometry.Rect {
	out := make([]geometry.Rect, len(items))
	if len(items) == 0 || bounds.W <= 0 || bounds.H <= 0 {
		return out[:0]
	}
	if math.IsNaN(bounds.W) || math.IsNaN(bounds.H) || math.IsInf(bounds.W, 0) || math.IsInf(bounds.H, 0) {
		return out[:0]
	}

	var total uint64
	var order []int
	for i, it := range items {
		if it.Weight == 0 {
			// Zero-weight items occupy no area; they never need to compete
			// for row membership, so keep them out of the squarifier
			// entirely and leave their output rectangle zeroed.
			continue
		}
		total += it.Weight
		order = append(order, i)
	}
	if total == 0 {
		return out[:0]
	}

	// Order the remaining (index, weight) pairs by weight descending, ties
	// broken by original input order, so results can be re-sequenced
	// afterward.
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Weight > items[order[b]].Weight
	})

	s := &squarifier{
		free:      bounds,
		remaining: float64(total),
	}

	row := make([]int, 0, len(order))
	for _, idx := range order {
		if len(row) == 0 {
			row = append(row, idx)
			continue
		}
		if s.worstWithCandidate(row, items, idx) <= s.worstWithCandidate(row, items, -1) {
			row = append(row, idx)
			continue
		}
		s.layoutRow(row, items, out)
		row = row[:0]
		row = append(row, idx)
	}
	if len(row) > 0 {
		s.layoutRow(row, items, out)
	}

	return out
}

type squarifier struct {
	free      geometry.Rect // remaining free rectangle
	remaining float64       // remaining weight total (as float for division)
}

func rowWeight(row []int, items []Item, extra int) float64 {
	var sum uint64
	for _, idx := range row {
		sum += items[idx].Weight
	}
	if extra >= 0 {
		sum += items[extra].Weight
	}
	return float64(sum)
}

// worstWithCandidate computes the worst (maximum) aspect ratio that would
// result from laying out row (optionally plus the candidate at index
// `candidate`, or no candidate if candidate < 0) along the shorter side of
// the current free rectangle.
func (s *squarifier) worstWithCandidate(row []int, items []Item, candidate int) float64 {
	if len(row) == 0 && candidate < 0 {
		return math.Inf(1)
	}
	shortSide := math.Min(s.free.W, s.free.H)
	if shortSide <= 0 {
		return math.Inf(1)
	}

	sum := rowWeight(row, items, candidate)
	if sum <= 0 || s.remaining <= 0 {
		return math.Inf(1)
	}

	// Strip length along the long side: area of strip = sum/remaining * free.Area()
	stripArea := sum / s.remaining * s.free.Area()
	stripLength := stripArea / shortSide // length of the strip along the long axis

	worst := 0.0
	for _, idx := range row {
		worst = math.Max(worst, itemAspect(float64(items[idx].Weight), sum, shortSide, stripLength))
	}
	if candidate >= 0 {
		worst = math.Max(worst, itemAspect(float64(items[candidate].Weight), sum, shortSide, stripLength))
	}
	return worst
}

// itemAspect returns the aspect ratio of a single row member's rectangle: it
// occupies a fraction (weight/sum) of stripLength along the short side, and
// shortSide along the long side's perpendicular.
func itemAspect(weight, sum, shortSide, stripLength float64) float64 {
	if weight <= 0 || sum <= 0 || shortSide <= 0 || stripLength <= 0 {
		return math.Inf(1)
	}
	memberLength := weight / sum * shortSide
	r := geometry.Rect{W: memberLength, H: stripLength}
	return r.AspectRatio()
}

// layoutRow finalizes the current row: carves a strip off the shorter side of
// the free rectangle, sized so its area equals the row's weight share of the
// remaining area, then subdivides the strip among row members proportional
// to weight.
func (s *squarifier) layoutRow(row []int, items []Item, out []geometry.Rect) {
	sum := rowWeight(row, items, -1)
	if sum <= 0 || s.remaining <= 0 {
		return
	}

	stripArea := sum / s.remaining * s.free.Area()
	vertical := s.free.W >= s.free.H // strip runs along the shorter side

	var stripLength float64
	if vertical {
		stripLength = stripArea / s.free.H
		if stripLength > s.free.W {
			stripLength = s.free.W
		}
	} else {
		stripLength = stripArea / s.free.W
		if stripLength > s.free.H {
			stripLength = s.free.H
		}
	}

	offset := 0.0
	for _, idx := range row {
		frac := float64(items[idx].Weight) / sum
		if vertical {
			memberH := frac * s.free.H
			out[idx] = geometry.Rect{X: s.free.X, Y: s.free.Y + offset, W: stripLength, H: memberH}
			offset += memberH
		} else {
			memberW := frac * s.free.W
			out[idx] = geometry.Rect{X: s.free.X + offset, Y: s.free.Y, W: memberW, H: stripLength}
			offset += memberW
		}
	}

	if vertical {
		s.free = geometry.Rect{X: s.free.X + stripLength, Y: s.free.Y, W: s.free.W - stripLength, H: s.free.H}
	} else {
		s.free = geometry.Rect{X: s.free.X, Y: s.free.Y + stripLength, W: s.free.W, H: s.free.H - stripLength}
	}
	s.remaining -= sum
}
