package render

import (
	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/layout"
	"github.com/mattn/go-runewidth"
)

const voidOwner = -1

// Bit layout for the wall masks below: bit0=North, bit1=South, bit2=East,
// bit3=West.
const (
	maskN = 1 << 0
	maskS = 1 << 1
	maskE = 1 << 2
	maskW = 1 << 3
)

// box-drawing glyphs indexed by the N|S|E|W presence mask. Degenerate
// single-bit masks (a wall with no perpendicular neighbor, which only
// happens at the outer edge of the bounds) fall back to a straight line.
var lightGlyphs = map[int]rune{
	maskN | maskS:                 '│',
	maskE | maskW:                 '─',
	maskS | maskE:                 '┌',
	maskS | maskW:                 '┐',
	maskN | maskE:                 '└',
	maskN | maskW:                 '┘',
	maskN | maskS | maskE:         '├',
	maskN | maskS | maskW:         '┤',
	maskS | maskE | maskW:         '┬',
	maskN | maskE | maskW:         '┴',
	maskN | maskS | maskE | maskW: '┼',
	maskN: '│',
	maskS: '│',
	maskE: '─',
	maskW: '─',
}

var heavyGlyphs = map[int]rune{
	maskN | maskS:                 '┃',
	maskE | maskW:                 '━',
	maskS | maskE:                 '┏',
	maskS | maskW:                 '┓',
	maskN | maskE:                 '┗',
	maskN | maskW:                 '┛',
	maskN | maskS | maskE:         '┣',
	maskN | maskS | maskW:         '┫',
	maskS | maskE | maskW:         '┳',
	maskN | maskE | maskW:         '┻',
	maskN | maskS | maskE | maskW: '╋',
	maskN: '┃',
	maskS: '┃',
	maskE: '━',
	maskW: '━',
}

// Render draws frame into buf within bounds using the seam-based four-pass
// algorithm (spec.md §4.8). It is deterministic and idempotent: rendering
// the same frame into two freshly cleared buffers yields identical output.
func Render(buf *Buffer, frame layout.Layout, bounds geometry.CellRect, border layout.BorderStyle, selectedID uint32) {
	owner := buildOwnerGrid(frame, bounds)

	// Pass 1: background fill.
	for _, r := range frame.Rects {
		if !r.Visible {
			continue
		}
		cell := geometry.ToCellRect(r.Rect, bounds)
		for y := cell.Y; y < cell.Y+cell.H; y++ {
			for x := cell.X; x < cell.X+cell.W; x++ {
				buf.Set(x, y, Cell{Rune: ' ', BG: r.Color})
			}
		}
	}

	// Pass 2: seam computation.
	if border != layout.BorderNone {
		glyphs := lightGlyphs
		if border == layout.BorderThick {
			glyphs = heavyGlyphs
		}
		drawSeams(buf, owner, bounds, glyphs)
	}

	// Pass 3: labels.
	for _, r := range frame.Rects {
		if !r.Visible {
			continue
		}
		drawLabel(buf, r, geometry.ToCellRect(r.Rect, bounds))
	}

	// Pass 4: selection highlight.
	if selectedID != 0 {
		for _, r := range frame.Rects {
			if r.ID == selectedID && r.Visible {
				highlightSelection(buf, geometry.ToCellRect(r.Rect, bounds))
				break
			}
		}
	}
}

// buildOwnerGrid assigns each cell in bounds the index (within frame.Rects)
// of the visible rect that owns it, or voidOwner if none does. Rects are
// painted in layout order so a later rect wins any rounding overlap,
// mirroring the background-fill pass's paint order.
func buildOwnerGrid(frame layout.Layout, bounds geometry.CellRect) [][]int {
	grid := make([][]int, bounds.H)
	for y := range grid {
		grid[y] = make([]int, bounds.W)
		for x := range grid[y] {
			grid[y][x] = voidOwner
		}
	}
	for idx, r := range frame.Rects {
		if !r.Visible {
			continue
		}
		cell := geometry.ToCellRect(r.Rect, bounds)
		for y := cell.Y; y < cell.Y+cell.H; y++ {
			gy := y - bounds.Y
			if gy < 0 || gy >= bounds.H {
				continue
			}
			for x := cell.X; x < cell.X+cell.W; x++ {
				gx := x - bounds.X
				if gx < 0 || gx >= bounds.W {
					continue
				}
				grid[gy][gx] = idx
			}
		}
	}
	return grid
}

func ownerAt(grid [][]int, bounds geometry.CellRect, x, y int) int {
	gx, gy := x-bounds.X, y-bounds.Y
	if gy < 0 || gy >= len(grid) || gx < 0 || gx >= len(grid[gy]) {
		return voidOwner
	}
	return grid[gy][gx]
}

// drawSeams walks every owned cell and, wherever a neighbor belongs to a
// different owner, overlays a box-drawing glyph selected by the set of
// differing directions (spec.md §4.8 pass 2). This traces the polyomino
// boundary between regions, which is exactly where seams and junctions
// belong.
func drawSeams(buf *Buffer, grid [][]int, bounds geometry.CellRect, glyphs map[int]rune) {
	for y := bounds.Y; y < bounds.Y+bounds.H; y++ {
		for x := bounds.X; x < bounds.X+bounds.W; x++ {
			o := ownerAt(grid, bounds, x, y)
			if o == voidOwner {
				continue
			}
			mask := 0
			if ownerAt(grid, bounds, x, y-1) != o {
				mask |= maskN
			}
			if ownerAt(grid, bounds, x, y+1) != o {
				mask |= maskS
			}
			if ownerAt(grid, bounds, x+1, y) != o {
				mask |= maskE
			}
			if ownerAt(grid, bounds, x-1, y) != o {
				mask |= maskW
			}
			if mask == 0 {
				continue
			}
			glyph, ok := glyphs[mask]
			if !ok {
				continue
			}
			existing := buf.Get(x, y)
			buf.Set(x, y, Cell{Rune: glyph, BG: existing.BG, FG: color.ContrastText(existing.BG)})
		}
	}
}

// drawLabel writes r's name (truncated by display width) and, if there's
// room, its formatted byte size, per spec.md §4.8 pass 3.
func drawLabel(buf *Buffer, r layout.LayoutRect, cell geometry.CellRect) {
	if cell.W < 4 || cell.H < 1 {
		return
	}
	bg := buf.Get(cell.X, cell.Y).BG
	fg := color.ContrastText(bg)
	writeText(buf, cell.X+1, cell.Y, truncateToWidth(r.Name, cell.W-2), fg, bg)

	if cell.H >= 2 && cell.W >= 6 {
		writeText(buf, cell.X+1, cell.Y+1, truncateToWidth(r.ByteLabel, cell.W-2), fg, bg)
	}
}

func writeText(buf *Buffer, x, y int, s string, fg, bg color.RGB) {
	for _, r := range s {
		buf.Set(x, y, Cell{Rune: r, FG: fg, BG: bg})
		x += runewidth.RuneWidth(r)
	}
}

func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	out := make([]rune, 0, len(s))
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > width-1 {
			break
		}
		out = append(out, r)
		w += rw
	}
	return string(out) + "…"
}

func highlightSelection(buf *Buffer, cell geometry.CellRect) {
	highlight := color.RGB{R: 255, G: 255, B: 255}
	for x := cell.X; x < cell.X+cell.W; x++ {
		setBorderGlyph(buf, x, cell.Y, '━', highlight)
		setBorderGlyph(buf, x, cell.Y+cell.H-1, '━', highlight)
	}
	for y := cell.Y; y < cell.Y+cell.H; y++ {
		setBorderGlyph(buf, cell.X, y, '┃', highlight)
		setBorderGlyph(buf, cell.X+cell.W-1, y, '┃', highlight)
	}
	setBorderGlyph(buf, cell.X, cell.Y, '┏', highlight)
	setBorderGlyph(buf, cell.X+cell.W-1, cell.Y, '┓', highlight)
	setBorderGlyph(buf, cell.X, cell.Y+cell.H-1, '┗', highlight)
	setBorderGlyph(buf, cell.X+cell.W-1, cell.Y+cell.H-1, '┛', highlight)
}

func setBorderGlyph(buf *Buffer, x, y int, glyph rune, fg color.RGB) {
	existing := buf.Get(x, y)
	buf.Set(x, y, Cell{Rune: glyph, BG: existing.BG, FG: fg, Attr: AttrBold})
}
