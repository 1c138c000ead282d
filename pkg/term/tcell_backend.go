package term

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/input"
	"github.com/gdanko/squaretop/pkg/render"
)

// TcellBackend is the real Backend, built on github.com/gdamore/tcell/v2.
type TcellBackend struct {
	screen       tcell.Screen
	colorSupport ColorSupport
}

// NewTcellBackend initializes and starts a tcell screen.
func NewTcellBackend() (*TcellBackend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	return &TcellBackend{screen: screen}, nil
}

func (b *TcellBackend) Size() Size {
	cols, rows := b.screen.Size()
	return Size{Cols: cols, Rows: rows}
}

func (b *TcellBackend) EnterRawMode() error {
	// tcell.Screen.Init already places the terminal into raw/cbreak mode;
	// nothing further is required, but the capability is still named so
	// the event loop's lifecycle is explicit and backend-agnostic.
	return nil
}

func (b *TcellBackend) LeaveRawMode() error {
	return nil
}

func (b *TcellBackend) EnterAltScreen() error {
	b.screen.EnableMouse()
	return nil
}

func (b *TcellBackend) LeaveAltScreen() error {
	b.screen.DisableMouse()
	return nil
}

func (b *TcellBackend) PollEvent(ctx context.Context) (input.Event, *ResizeEvent, error) {
	done := make(chan struct{})
	var ev tcell.Event
	go func() {
		ev = b.screen.PollEvent()
		close(done)
	}()

	select {
	case <-ctx.Done():
		b.screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-done
		return input.Event{}, nil, ctx.Err()
	case <-done:
	}

	switch e := ev.(type) {
	case *tcell.EventKey:
		return translateKey(e), nil, nil
	case *tcell.EventResize:
		cols, rows := e.Size()
		return input.Event{}, &ResizeEvent{Size: Size{Cols: cols, Rows: rows}}, nil
	default:
		return input.Event{}, nil, nil
	}
}

func translateKey(e *tcell.EventKey) input.Event {
	if e.Key() == tcell.KeyCtrlC {
		return input.Event{Key: input.NamedKey("c-c")}
	}
	switch e.Key() {
	case tcell.KeyEnter:
		return input.Event{Key: input.NamedKey("enter")}
	case tcell.KeyEsc:
		return input.Event{Key: input.NamedKey("esc")}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Event{Key: input.NamedKey("backspace")}
	case tcell.KeyUp:
		return input.Event{Key: input.NamedKey("up")}
	case tcell.KeyDown:
		return input.Event{Key: input.NamedKey("down")}
	case tcell.KeyLeft:
		return input.Event{Key: input.NamedKey("left")}
	case tcell.KeyRight:
		return input.Event{Key: input.NamedKey("right")}
	case tcell.KeyRune:
		return input.Event{Key: input.RuneKey(e.Rune())}
	default:
		return input.Event{}
	}
}

// SetColorSupport changes how Commit downgrades cell colors on subsequent
// draws.
func (b *TcellBackend) SetColorSupport(level ColorSupport) {
	b.colorSupport = level
}

func (b *TcellBackend) Commit(buf *render.Buffer) error {
	b.screen.Clear()
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			c := buf.Get(x, y)
			style := tcell.StyleDefault.
				Foreground(tcellColor(c.FG, b.colorSupport)).
				Background(tcellColor(c.BG, b.colorSupport))
			if c.Attr&render.AttrBold != 0 {
				style = style.Bold(true)
			}
			if c.Attr&render.AttrReverse != 0 {
				style = style.Reverse(true)
			}
			b.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	b.screen.Show()
	return nil
}

// tcellColor converts c to a tcell.Color appropriate for level: full 24-bit
// RGB for Auto/TrueColor, a quantized 6x6x6 color-cube index for 256, and
// black/white by relative luminance for Mono (spec.md §6).
func tcellColor(c color.RGB, level ColorSupport) tcell.Color {
	switch level {
	case ColorSupport256:
		cube := func(v uint8) int32 {
			return int32(v) * 5 / 255
		}
		r, g, b := cube(c.R), cube(c.G), cube(c.B)
		return tcell.PaletteColor(int(16 + 36*r + 6*g + b))
	case ColorSupportMono:
		if color.Luminance(c) > 0.5 {
			return tcell.ColorWhite
		}
		return tcell.ColorBlack
	default:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

func (b *TcellBackend) Close() error {
	b.screen.Fini()
	return nil
}
