package term

import (
	"context"
	"errors"

	"github.com/gdanko/squaretop/pkg/input"
	"github.com/gdanko/squaretop/pkg/render"
)

// FakeBackend is an in-memory Backend for tests (spec.md §9's "tests
// substitute in-memory fakes"). Events queued with QueueEvent/QueueResize
// are returned in order by PollEvent; once drained, PollEvent returns
// ctx.Err() if ctx is already done and ErrFakeBackendDrained otherwise,
// without blocking.
type FakeBackend struct {
	size Size

	events       []input.Event
	resizes      []*ResizeEvent
	commits      []*render.Buffer
	rawMode      bool
	altScreen    bool
	closed       bool
	colorSupport ColorSupport
}

func NewFakeBackend(size Size) *FakeBackend {
	return &FakeBackend{size: size}
}

func (b *FakeBackend) QueueEvent(ev input.Event) {
	b.events = append(b.events, ev)
}

func (b *FakeBackend) QueueResize(sz Size) {
	b.resizes = append(b.resizes, &ResizeEvent{Size: sz})
	b.size = sz
}

func (b *FakeBackend) Commits() []*render.Buffer {
	return b.commits
}

func (b *FakeBackend) Size() Size { return b.size }

func (b *FakeBackend) EnterRawMode() error  { b.rawMode = true; return nil }
func (b *FakeBackend) LeaveRawMode() error  { b.rawMode = false; return nil }
func (b *FakeBackend) EnterAltScreen() error { b.altScreen = true; return nil }
func (b *FakeBackend) LeaveAltScreen() error { b.altScreen = false; return nil }

func (b *FakeBackend) InRawMode() bool   { return b.rawMode }
func (b *FakeBackend) InAltScreen() bool { return b.altScreen }

var ErrFakeBackendDrained = errors.New("term: fake backend has no more queued events")

func (b *FakeBackend) PollEvent(ctx context.Context) (input.Event, *ResizeEvent, error) {
	if len(b.resizes) > 0 {
		r := b.resizes[0]
		b.resizes = b.resizes[1:]
		return input.Event{}, r, nil
	}
	if len(b.events) > 0 {
		ev := b.events[0]
		b.events = b.events[1:]
		return ev, nil, nil
	}
	select {
	case <-ctx.Done():
		return input.Event{}, nil, ctx.Err()
	default:
		return input.Event{}, nil, ErrFakeBackendDrained
	}
}

func (b *FakeBackend) Commit(buf *render.Buffer) error {
	b.commits = append(b.commits, buf)
	return nil
}

func (b *FakeBackend) SetColorSupport(level ColorSupport) { b.colorSupport = level }

func (b *FakeBackend) ColorSupport() ColorSupport { return b.colorSupport }

func (b *FakeBackend) Close() error {
	b.closed = true
	return nil
}

func (b *FakeBackend) Closed() bool { return b.closed }
