package render

import (
	"testing"

	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/layout"
	"github.com/stretchr/testify/assert"
)

func TestRenderHeaderShowsStaleIndicator(t *testing.T) {
	bounds := geometry.CellRect{W: 40, H: 1}

	fresh := NewBuffer(40, 1)
	RenderHeader(fresh, bounds, HeaderInfo{ProcessCount: 3, Sort: layout.SortMemory, ColorMode: color.ModeMemory})
	assert.NotEqual(t, color.RGB{R: 120, G: 30, B: 30}, fresh.Get(0, 0).BG)

	stale := NewBuffer(40, 1)
	RenderHeader(stale, bounds, HeaderInfo{Stale: true, ProcessCount: 3, Sort: layout.SortMemory, ColorMode: color.ModeMemory})
	assert.Equal(t, color.RGB{R: 120, G: 30, B: 30}, stale.Get(0, 0).BG)
}

func TestRenderHeaderNoopOnEmptyBounds(t *testing.T) {
	buf := NewBuffer(10, 1)
	RenderHeader(buf, geometry.CellRect{W: 0, H: 0}, HeaderInfo{})
	assert.Equal(t, Cell{Rune: ' '}, buf.Get(0, 0))
}
