package treemap

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func epsFor(bounds geometry.Rect) float64 {
	return math.Max(1e-6, 1e-9*bounds.Area())
}

func totalWeight(items []Item) uint64 {
	var s uint64
	for _, it := range items {
		s += it.Weight
	}
	return s
}

func assertInvariants(t *testing.T, items []Item, bounds geometry.Rect, rects []geometry.Rect) {
	t.Helper()
	require.Len(t, rects, len(items))
	eps := epsFor(bounds)

	var areaSum float64
	for i, r := range rects {
		areaSum += r.Area()
		assert.True(t, bounds.Contains(r, eps), "rect %d %+v not contained in bounds %+v", i, r, bounds)
		if items[i].Weight > 0 {
			assert.Greater(t, r.W, 0.0, "rect %d should have positive width", i)
			assert.Greater(t, r.H, 0.0, "rect %d should have positive height", i)
		}
	}
	assert.InDelta(t, bounds.Area(), areaSum, eps, "area conservation")

	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			assert.False(t, rects[i].Intersects(rects[j]), "rects %d and %d overlap", i, j)
		}
	}

	total := totalWeight(items)
	if total == 0 {
		return
	}
	for i := range rects {
		for j := range rects {
			if items[j].Weight == 0 {
				continue
			}
			gotRatio := rects[i].Area() / rects[j].Area()
			wantRatio := float64(items[i].Weight) / float64(items[j].Weight)
			assert.InDelta(t, wantRatio, gotRatio, eps+1e-6, "proportionality between %d and %d", i, j)
		}
	}
}

func TestSquarifyBasicThreeItems(t *testing.T) {
	items := []Item{
		{ID: 1, Weight: 4096},
		{ID: 2, Weight: 2048},
		{ID: 3, Weight: 2048},
	}
	bounds := geometry.Rect{X: 0, Y: 0, W: 100, H: 50}
	rects := Squarify(items, bounds)
	assertInvariants(t, items, bounds, rects)

	// Largest item should occupy half the bounds.
	assert.InDelta(t, 2500, rects[0].Area(), 1e-6)
}

func TestSquarifySingleItemFillsBounds(t *testing.T) {
	items := []Item{{ID: "solo", Weight: 500}}
	bounds := geometry.Rect{X: 0, Y: 0, W: 80, H: 24}
	rects := Squarify(items, bounds)
	require.Len(t, rects, 1)
	assert.InDelta(t, bounds.X, rects[0].X, 1e-9)
	assert.InDelta(t, bounds.Y, rects[0].Y, 1e-9)
	assert.InDelta(t, bounds.W, rects[0].W, 1e-9)
	assert.InDelta(t, bounds.H, rects[0].H, 1e-9)
}

func TestSquarifyEmptyInputs(t *testing.T) {
	bounds := geometry.Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.Empty(t, Squarify(nil, bounds))
	assert.Empty(t, Squarify([]Item{}, bounds))
	assert.Empty(t, Squarify([]Item{{ID: 1, Weight: 0}}, bounds))
}

func TestSquarifyZeroOrNegativeBounds(t *testing.T) {
	items := []Item{{ID: 1, Weight: 10}}
	assert.Empty(t, Squarify(items, geometry.Rect{W: 0, H: 10}))
	assert.Empty(t, Squarify(items, geometry.Rect{W: 10, H: 0}))
	assert.Empty(t, Squarify(items, geometry.Rect{W: -5, H: 10}))
}

func TestSquarifyNaNInfInputs(t *testing.T) {
	items := []Item{{ID: 1, Weight: 10}}
	assert.Empty(t, Squarify(items, geometry.Rect{W: math.NaN(), H: 10}))
	assert.Empty(t, Squarify(items, geometry.Rect{W: math.Inf(1), H: 10}))
}

func TestSquarifyZeroWeightItemIsDegenerate(t *testing.T) {
	items := []Item{
		{ID: 1, Weight: 100},
		{ID: 2, Weight: 0},
		{ID: 3, Weight: 50},
	}
	bounds := geometry.Rect{X: 0, Y: 0, W: 60, H: 40}
	rects := Squarify(items, bounds)
	assertInvariants(t, items, bounds, rects)
	assert.Equal(t, geometry.Rect{}, rects[1])
}

func TestSquarifyPreservesInputOrder(t *testing.T) {
	items := []Item{
		{ID: "small", Weight: 1},
		{ID: "big", Weight: 1000},
		{ID: "mid", Weight: 100},
	}
	bounds := geometry.Rect{X: 0, Y: 0, W: 200, H: 60}
	rects := Squarify(items, bounds)
	require.Len(t, rects, 3)
	// "big" (index 1) should have the largest area even though it's not
	// first in input order.
	assert.Greater(t, rects[1].Area(), rects[0].Area())
	assert.Greater(t, rects[1].Area(), rects[2].Area())
}

func TestSquarifyZoomedChildrenRatio(t *testing.T) {
	items := []Item{
		{ID: 10, Weight: 300},
		{ID: 11, Weight: 100},
	}
	bounds := geometry.Rect{X: 0, Y: 0, W: 40, H: 20}
	rects := Squarify(items, bounds)
	assertInvariants(t, items, bounds, rects)
	assert.InDelta(t, 3.0, rects[0].Area()/rects[1].Area(), 1e-6)
}

func TestSquarifyDeterministic(t *testing.T) {
	items := []Item{
		{ID: 1, Weight: 77}, {ID: 2, Weight: 42}, {ID: 3, Weight: 13},
		{ID: 4, Weight: 900}, {ID: 5, Weight: 5},
	}
	bounds := geometry.Rect{X: 0, Y: 0, W: 123, H: 45}
	a := Squarify(items, bounds)
	b := Squarify(items, bounds)
	assert.Equal(t, a, b)
}

// TestSquarifyPropertyFuzz exercises the invariants from spec.md §8 over
// randomized bounded weight sequences and positive bounds.
func TestSquarifyPropertyFuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(20260801))
	for trial := 0; trial < 300; trial++ {
		n := 1 + rng.Intn(40)
		items := make([]Item, n)
		for i := range items {
			items[i] = Item{ID: i, Weight: uint64(1 + rng.Intn(100000))}
		}
		bounds := geometry.Rect{
			X: rng.Float64()*100 - 50,
			Y: rng.Float64()*100 - 50,
			W: 1 + rng.Float64()*500,
			H: 1 + rng.Float64()*500,
		}
		rects := Squarify(items, bounds)
		assertInvariants(t, items, bounds, rects)
	}
}

func TestSquarifySmallBoundsNeverPanics(t *testing.T) {
	// Item.Weight is unsigned, so negative weights cannot reach the engine;
	// this asserts that ordinary weights in small bounds lay out without a
	// panic.
	assert.NotPanics(t, func() {
		Squarify([]Item{{ID: 1, Weight: 10}, {ID: 2, Weight: 20}}, geometry.Rect{W: 10, H: 10})
	})
}
