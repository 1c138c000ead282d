// Package collect defines the process-info source and signal sink
// collaborators (spec.md §6) that the core snapshot pipeline consumes, plus
// one real gopsutil-backed implementation of each and an in-memory fake used
// across the test suite.
//
// These interfaces are new — the teacher calls gopsutil directly from
// pkg/pstree and pkg/metrics with no seam for substitution. Separating the
// seam here is what spec.md §9 calls a capability abstraction: at most one
// implementation is linked per platform, and tests substitute fakes.
package collect

import "context"

// RawRecord is one raw per-process record as delivered by a ProcessSource,
// prior to the snapshot builder's normalization pass.
type RawRecord struct {
	PID         uint32
	PPID        uint32
	Name        string
	CommandLine string
	MemoryBytes uint64
	CPUPercent  float64
	User        string
	State       string // platform-reported state string; normalized by the builder
	Group       string
	HasGroup    bool
	Priority    int
	HasPriority bool
	IOReadBytes  uint64
	IOWriteBytes uint64
	HasIO        bool
}

// LoadAverage is the three-element system load average. Present is false on
// platforms that don't report one (spec.md §3).
type LoadAverage struct {
	Load1, Load5, Load15 float64
	Present               bool
}

// RawSnapshot is the full enumeration returned by one ProcessSource.Collect
// call: every process record plus system-wide aggregates.
type RawSnapshot struct {
	Records         []RawRecord
	PerCoreCPU      []float64
	TotalMemory     uint64
	UsedMemory      uint64
	FreeMemory      uint64
	TotalSwap       uint64
	UsedSwap        uint64
	Load            LoadAverage
	TimestampUnixNS int64
}

// ProcessSource enumerates the system's processes and aggregates on demand.
// Each call returns a full enumeration; there is no cursor (spec.md §6).
type ProcessSource interface {
	Collect(ctx context.Context) (RawSnapshot, error)
}

// TerminateError classifies why a SignalSink.Terminate call failed.
type TerminateError int

const (
	TerminateErrNone TerminateError = iota
	TerminateErrNoSuchProcess
	TerminateErrPermissionDenied
	TerminateErrOther
)

func (e TerminateError) Error() string {
	switch e {
	case TerminateErrNoSuchProcess:
		return "no such process"
	case TerminateErrPermissionDenied:
		return "permission denied"
	case TerminateErrOther:
		return "signal error"
	default:
		return "none"
	}
}

// SignalSink requests termination of a process by PID (spec.md §6).
type SignalSink interface {
	Terminate(ctx context.Context, pid uint32, force bool) error
}
