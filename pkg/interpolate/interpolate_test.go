package interpolate

import (
	"testing"

	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/layout"
	"github.com/stretchr/testify/assert"
)

func rectLayout(rects ...layout.LayoutRect) layout.Layout {
	return layout.Layout{Rects: rects}
}

func TestFrameAtTotalEqualsTo(t *testing.T) {
	from := rectLayout(layout.LayoutRect{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 10}})
	to := rectLayout(layout.LayoutRect{ID: 1, Rect: geometry.Rect{X: 5, Y: 5, W: 20, H: 20}})
	got := Frame(from, to, 5, 5)
	assert.Equal(t, to, got)
}

func TestFrameAtZeroEqualsFromGeometry(t *testing.T) {
	from := rectLayout(layout.LayoutRect{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 10}})
	to := rectLayout(layout.LayoutRect{ID: 1, Rect: geometry.Rect{X: 10, Y: 10, W: 10, H: 10}})
	got := Frame(from, to, 0, 5)
	assert.Equal(t, from.Rects[0].Rect, got.Rects[0].Rect)
}

func TestFrameMonotonicApproachesTarget(t *testing.T) {
	from := rectLayout(layout.LayoutRect{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 10}})
	to := rectLayout(layout.LayoutRect{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 20, H: 10}})
	var prevW float64
	for frame := 0; frame <= 5; frame++ {
		got := Frame(from, to, frame, 5)
		assert.GreaterOrEqual(t, got.Rects[0].Rect.W, prevW)
		prevW = got.Rects[0].Rect.W
	}
	assert.Equal(t, 20.0, prevW)
}

func TestFrameNewRectFadesInFromCentroid(t *testing.T) {
	to := rectLayout(layout.LayoutRect{ID: 99, Rect: geometry.Rect{X: 10, Y: 10, W: 10, H: 10}})
	got := Frame(layout.Layout{}, to, 0, 5)
	require := assert.New(t)
	require.InDelta(15.0, got.Rects[0].Rect.X+got.Rects[0].Rect.W/2, 1e-9)
	require.InDelta(15.0, got.Rects[0].Rect.Y+got.Rects[0].Rect.H/2, 1e-9)
	require.Equal(0.0, got.Rects[0].Rect.W)
}

func TestFrameDroppedRectIsOmitted(t *testing.T) {
	from := rectLayout(
		layout.LayoutRect{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 10}},
		layout.LayoutRect{ID: 2, Rect: geometry.Rect{X: 10, Y: 0, W: 10, H: 10}},
	)
	to := rectLayout(layout.LayoutRect{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 10}})
	got := Frame(from, to, 2, 5)
	assert.Len(t, got.Rects, 1)
	assert.Equal(t, uint32(1), got.Rects[0].ID)
}

func TestFrameColorComesFromTo(t *testing.T) {
	from := rectLayout(layout.LayoutRect{ID: 1, Color: color.RGB{R: 1, G: 1, B: 1}})
	to := rectLayout(layout.LayoutRect{ID: 1, Color: color.RGB{R: 9, G: 9, B: 9}})
	got := Frame(from, to, 2, 5)
	assert.Equal(t, to.Rects[0].Color, got.Rects[0].Color)
}
