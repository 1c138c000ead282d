// Package term defines the terminal-backend capability abstraction
// (spec.md §6) and its real tcell-backed implementation. The choice of
// github.com/gdamore/tcell/v2 is grounded on the peco terminal UI's go.mod
// in the example pack, the same library that package peco uses to drive
// its own raw-mode/alt-screen/cell-buffer terminal loop.
package term

import (
	"context"

	"github.com/gdanko/squaretop/pkg/input"
	"github.com/gdanko/squaretop/pkg/render"
)

// Size is the terminal's current dimensions in cells.
type Size struct {
	Cols, Rows int
}

// ColorSupport selects how a Backend degrades the renderer's 24-bit RGB
// cells for the attached terminal (spec.md §6's color-support override).
type ColorSupport int

const (
	ColorSupportAuto ColorSupport = iota
	ColorSupportTrueColor
	ColorSupport256
	ColorSupportMono
)

// ResizeEvent is delivered on the event stream when the terminal is
// resized.
type ResizeEvent struct {
	Size Size
}

// Backend is the terminal-backend capability consumed by the event loop
// (spec.md §6): size queries, raw mode, alternate screen, input events,
// and committing a drawn cell buffer to the screen.
type Backend interface {
	// Size returns the current terminal dimensions in cells.
	Size() Size
	// EnterRawMode/LeaveRawMode toggle raw input mode. LeaveRawMode must be
	// safe to call even if EnterRawMode was never called or already failed
	// (spec.md §5: "guaranteed release on every exit path, including panic").
	EnterRawMode() error
	LeaveRawMode() error
	// EnterAltScreen/LeaveAltScreen toggle the alternate screen buffer.
	EnterAltScreen() error
	LeaveAltScreen() error
	// PollEvent blocks until the next input or resize event, or ctx is
	// canceled.
	PollEvent(ctx context.Context) (input.Event, *ResizeEvent, error)
	// Commit writes buf to the physical screen.
	Commit(buf *render.Buffer) error
	// SetColorSupport changes how Commit downgrades cell colors for
	// terminals that can't display 24-bit RGB.
	SetColorSupport(level ColorSupport)
	// Close releases any backend resources.
	Close() error
}
