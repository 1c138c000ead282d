package collect

import (
	"context"
	"sync"
)

// FakeSource is an in-memory ProcessSource for tests, per spec.md §9's
// capability-abstraction design note: tests substitute fakes rather than
// talking to the real OS.
type FakeSource struct {
	mu   sync.Mutex
	snap RawSnapshot
	err  error
}

func NewFakeSource(snap RawSnapshot) *FakeSource {
	return &FakeSource{snap: snap}
}

// SetSnapshot swaps in a new snapshot for the next Collect call, letting a
// test drive the source through successive ticks.
func (f *FakeSource) SetSnapshot(snap RawSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
}

// SetErr makes the next Collect call (and all subsequent ones, until cleared)
// fail with err.
func (f *FakeSource) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *FakeSource) Collect(ctx context.Context) (RawSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return RawSnapshot{}, f.err
	}
	return f.snap, nil
}

// FakeSink is an in-memory SignalSink that records Terminate calls instead
// of sending real signals.
type FakeSink struct {
	mu    sync.Mutex
	Calls []FakeTerminateCall
	// Result, keyed by PID, lets a test script a specific outcome. Absent
	// entries default to success.
	Result map[uint32]error
}

type FakeTerminateCall struct {
	PID   uint32
	Force bool
}

func NewFakeSink() *FakeSink {
	return &FakeSink{Result: map[uint32]error{}}
}

func (f *FakeSink) Terminate(ctx context.Context, pid uint32, force bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, FakeTerminateCall{PID: pid, Force: force})
	if err, ok := f.Result[pid]; ok {
		return err
	}
	return nil
}
