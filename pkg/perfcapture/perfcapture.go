// Package perfcapture records span durations to a jsonl file in headless
// perf mode (spec.md §6: "one JSON object per line ... produced only in
// headless perf mode"). It does not alter scheduling (spec.md §5).
package perfcapture

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Span is one recorded jsonl line.
type Span struct {
	Name       string         `json:"span"`
	StartUS    uint64         `json:"start_us"`
	DurationUS uint64         `json:"duration_us"`
	Iteration  uint32         `json:"iteration"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// Recorder writes Spans to w, one JSON object per line.
type Recorder struct {
	w     io.Writer
	epoch time.Time
}

// NewRecorder returns a Recorder whose start_us values are monotonic
// microseconds since the recorder was created.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w, epoch: time.Now()}
}

// Start begins timing a span; call the returned function to record it,
// passing the iteration number and any extra fields.
func (r *Recorder) Start(name string) func(iteration uint32, extra map[string]any) error {
	startedAt := time.Since(r.epoch)
	t0 := time.Now()
	return func(iteration uint32, extra map[string]any) error {
		return r.record(Span{
			Name:       name,
			StartUS:    uint64(startedAt.Microseconds()),
			DurationUS: uint64(time.Since(t0).Microseconds()),
			Iteration:  iteration,
			Extra:      extra,
		})
	}
}

func (r *Recorder) record(s Span) error {
	line, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("perfcapture: marshal span %q: %w", s.Name, err)
	}
	line = append(line, '\n')
	_, err = r.w.Write(line)
	return err
}
