package render

import (
	"testing"

	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRectLayout() layout.Layout {
	return layout.Layout{Rects: []layout.LayoutRect{
		{ID: 1, Name: "alpha", ByteLabel: "4.0KiB", Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 10}, Color: color.RGB{R: 200}, Visible: true},
		{ID: 2, Name: "beta", ByteLabel: "2.0KiB", Rect: geometry.Rect{X: 10, Y: 0, W: 10, H: 10}, Color: color.RGB{B: 200}, Visible: true},
	}}
}

func TestRenderIsIdempotent(t *testing.T) {
	bounds := geometry.CellRect{W: 20, H: 10}
	frame := twoRectLayout()

	buf1 := NewBuffer(20, 10)
	Render(buf1, frame, bounds, layout.BorderThin, 0)

	buf2 := NewBuffer(20, 10)
	Render(buf2, frame, bounds, layout.BorderThin, 0)

	assert.True(t, buf1.Equal(buf2))
}

func TestRenderFillsBackgroundForEachRect(t *testing.T) {
	bounds := geometry.CellRect{W: 20, H: 10}
	buf := NewBuffer(20, 10)
	Render(buf, twoRectLayout(), bounds, layout.BorderNone, 0)

	assert.Equal(t, color.RGB{R: 200}, buf.Get(2, 5).BG)
	assert.Equal(t, color.RGB{B: 200}, buf.Get(15, 5).BG)
}

func TestRenderDrawsSeamBetweenAdjacentRects(t *testing.T) {
	bounds := geometry.CellRect{W: 20, H: 10}
	buf := NewBuffer(20, 10)
	Render(buf, twoRectLayout(), bounds, layout.BorderThin, 0)

	seamCell := buf.Get(9, 5)
	assert.NotEqual(t, rune(' '), seamCell.Rune)
}

func TestRenderOmitsSeamsWhenBorderNone(t *testing.T) {
	bounds := geometry.CellRect{W: 20, H: 10}
	buf := NewBuffer(20, 10)
	Render(buf, twoRectLayout(), bounds, layout.BorderNone, 0)

	for x := 0; x < 20; x++ {
		for y := 0; y < 10; y++ {
			r := buf.Get(x, y).Rune
			assert.True(t, r == ' ' || isAlpha(r), "unexpected glyph %q at (%d,%d)", r, x, y)
		}
	}
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == 'K' || r == 'i' || r == 'B'
}

func TestRenderWritesLabelsForWideEnoughRects(t *testing.T) {
	bounds := geometry.CellRect{W: 20, H: 10}
	buf := NewBuffer(20, 10)
	Render(buf, twoRectLayout(), bounds, layout.BorderNone, 0)

	assert.Equal(t, 'a', buf.Get(1, 0).Rune)
}

func TestRenderSkipsInvisibleRects(t *testing.T) {
	frame := layout.Layout{Rects: []layout.LayoutRect{
		{ID: 1, Name: "tiny", Rect: geometry.Rect{X: 0, Y: 0, W: 1, H: 1}, Visible: false},
	}}
	bounds := geometry.CellRect{W: 10, H: 10}
	buf := NewBuffer(10, 10)
	Render(buf, frame, bounds, layout.BorderThin, 0)
	assert.Equal(t, ' ', buf.Get(0, 0).Rune)
}

func TestRenderHighlightsSelection(t *testing.T) {
	bounds := geometry.CellRect{W: 20, H: 10}
	buf := NewBuffer(20, 10)
	Render(buf, twoRectLayout(), bounds, layout.BorderThin, 1)

	corner := buf.Get(0, 0)
	assert.Equal(t, '┏', corner.Rune)
}

func TestTruncateToWidthAddsEllipsis(t *testing.T) {
	got := truncateToWidth("supercalifragilisticexpialidocious", 10)
	require.LessOrEqual(t, len([]rune(got)), 10)
	assert.Contains(t, got, "…")
}

func TestTruncateToWidthLeavesShortStringsAlone(t *testing.T) {
	assert.Equal(t, "abc", truncateToWidth("abc", 10))
}

func TestBufferClearResetsCells(t *testing.T) {
	buf := NewBuffer(3, 3)
	buf.Set(1, 1, Cell{Rune: 'x'})
	buf.Clear()
	assert.Equal(t, ' ', buf.Get(1, 1).Rune)
}
