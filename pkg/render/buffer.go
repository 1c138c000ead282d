// Package render implements the seam-based renderer (spec.md §4.8): a
// deterministic four-pass draw of a frame layout into a cell buffer.
package render

import "github.com/gdanko/squaretop/pkg/color"

// Attr is a bitmask of cell display attributes.
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << iota
	AttrReverse
)

// Cell is one terminal cell: a glyph plus foreground/background color and
// attributes.
type Cell struct {
	Rune rune
	FG   color.RGB
	BG   color.RGB
	Attr Attr
}

// Buffer is a W×H grid of cells, owned exclusively by the renderer during a
// draw call (spec.md §5).
type Buffer struct {
	W, H  int
	cells []Cell
}

// NewBuffer allocates a cleared buffer of the given dimensions.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{W: w, H: h, cells: make([]Cell, w*h)}
	b.Clear()
	return b
}

// Clear resets every cell to a blank space on the zero-value background.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{Rune: ' '}
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.W && y < b.H
}

// Get returns the cell at (x, y); out-of-bounds reads return a blank cell.
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.W+x]
}

// Set writes a cell at (x, y); out-of-bounds writes are silently dropped.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.W+x] = c
}

// Equal reports whether two buffers hold identical cells (used by
// idempotence tests: two renders of the same frame into freshly cleared
// buffers must be byte-identical).
func (b *Buffer) Equal(other *Buffer) bool {
	if b.W != other.W || b.H != other.H {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
