// Package snapshot builds the immutable, point-in-time Snapshot (spec.md
// §3/§4.3) consumed by the layout pipeline, from a pkg/collect.RawSnapshot.
package snapshot

import (
	"strings"
	"unicode"

	"github.com/gdanko/squaretop/pkg/collect"
	"github.com/gdanko/squaretop/pkg/process"
)

// Snapshot is an immutable point-in-time view of system and per-process
// metrics (spec.md §3). It is replaced as a whole on each refresh tick.
type Snapshot struct {
	TimestampUnixNS int64
	PerCoreCPU      []float64
	TotalMemory     uint64
	UsedMemory      uint64
	FreeMemory      uint64
	TotalSwap       uint64
	UsedSwap        uint64
	Load            collect.LoadAverage
	Tree            *process.Tree
}

// TotalMemoryBytes is the denominator the color policy's Memory mode uses;
// it is the tree's summed RSS, not the system-wide total, per spec.md §4.2
// ("fraction of total memory represented by this subtree").
func (s Snapshot) TotalMemoryBytes() uint64 {
	if s.Tree == nil {
		return 0
	}
	return s.Tree.TotalMemory()
}

// Build normalizes raw a collector snapshot into an immutable Snapshot
// (spec.md §4.3): names are trimmed and unprintables replaced with '?',
// records with invalid PID (0, except as the root sentinel already handled
// by pkg/process.Build) are rejected, and the parent/child tree is built
// with union-find cycle breaking.
func Build(raw collect.RawSnapshot, now int64) Snapshot {
	records := make([]process.Record, 0, len(raw.Records))
	for _, r := range raw.Records {
		if r.PID == 0 {
			continue
		}
		records = append(records, normalize(r))
	}

	return Snapshot{
		TimestampUnixNS: now,
		PerCoreCPU:      raw.PerCoreCPU,
		TotalMemory:     raw.TotalMemory,
		UsedMemory:      raw.UsedMemory,
		FreeMemory:      raw.FreeMemory,
		TotalSwap:       raw.TotalSwap,
		UsedSwap:        raw.UsedSwap,
		Load:            raw.Load,
		Tree:            process.Build(records),
	}
}

func normalize(r collect.RawRecord) process.Record {
	return process.Record{
		PID:         r.PID,
		PPID:        r.PPID,
		Name:        sanitize(r.Name),
		CommandLine: sanitize(r.CommandLine),
		MemoryBytes: r.MemoryBytes,
		CPUPercent:  r.CPUPercent,
		User:        sanitize(r.User),
		State:       normalizeState(r.State),
		Group:       sanitize(r.Group),
		HasGroup:    r.HasGroup,
		Priority:    r.Priority,
		HasPriority: r.HasPriority,
		IO: process.IO{
			ReadBytes:  r.IOReadBytes,
			WriteBytes: r.IOWriteBytes,
		},
		HasIO: r.HasIO,
	}
}

// sanitize trims surrounding whitespace and replaces non-printable runes
// with '?', per spec.md §4.3.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

func normalizeState(raw string) process.State {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "running", "r":
		return process.StateRunning
	case "sleep", "sleeping", "s":
		return process.StateSleeping
	case "stop", "stopped", "t":
		return process.StateStopped
	case "zombie", "z":
		return process.StateZombie
	case "idle", "i":
		return process.StateIdle
	default:
		return process.StateUnknown
	}
}
