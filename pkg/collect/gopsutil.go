package collect

import (
	"context"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// GopsutilSource is the real ProcessSource, built on
// github.com/shirou/gopsutil/v4 — the teacher's primary domain dependency.
// Per-process field gathering fans out across goroutines in the style of
// the teacher's pkg/metrics package (one goroutine per process, fanned in
// over a channel); §5 of the spec permits this since the Collect call as a
// whole is still synchronous from the tick handler's point of view.
type GopsutilSource struct{}

func NewGopsutilSource() *GopsutilSource {
	return &GopsutilSource{}
}

func (s *GopsutilSource) Collect(ctx context.Context) (RawSnapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return RawSnapshot{}, err
	}

	records := make([]RawRecord, len(procs))
	type result struct {
		idx int
		rec RawRecord
	}
	resultsCh := make(chan result, len(procs))

	for i, p := range procs {
		go func(idx int, p *process.Process) {
			resultsCh <- result{idx: idx, rec: gatherOne(ctx, p)}
		}(i, p)
	}
	for range procs {
		r := <-resultsCh
		records[r.idx] = r.rec
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		vm = &mem.VirtualMemoryStat{}
	}
	sm, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		sm = &mem.SwapMemoryStat{}
	}
	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		perCore = nil
	}

	var la LoadAverage
	if runtime.GOOS != "windows" {
		if avg, err := load.AvgWithContext(ctx); err == nil {
			la = LoadAverage{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15, Present: true}
		}
	}

	return RawSnapshot{
		Records:     records,
		PerCoreCPU:  perCore,
		TotalMemory: vm.Total,
		UsedMemory:  vm.Used,
		FreeMemory:  vm.Free,
		TotalSwap:   sm.Total,
		UsedSwap:    sm.Used,
		Load:        la,
	}, nil
}

func gatherOne(ctx context.Context, p *process.Process) RawRecord {
	rec := RawRecord{PID: uint32(p.Pid)}

	if ppid, err := p.PpidWithContext(ctx); err == nil && ppid >= 0 {
		rec.PPID = uint32(ppid)
	}
	rec.Name = commandName(ctx, p)
	if args, err := p.CmdlineWithContext(ctx); err == nil {
		rec.CommandLine = args
	}
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		rec.MemoryBytes = mi.RSS
	}
	if cp, err := p.CPUPercentWithContext(ctx); err == nil {
		rec.CPUPercent = cp
	}
	if uids, err := p.UidsWithContext(ctx); err == nil && len(uids) > 0 {
		if u, err := user.LookupId(strconv.Itoa(int(uids[0]))); err == nil {
			rec.User = u.Username
		}
	}
	if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
		rec.State = st[0]
	}
	if nice, err := p.NiceWithContext(ctx); err == nil {
		rec.Priority = int(nice)
		rec.HasPriority = true
	}
	if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
		rec.IOReadBytes = io.ReadBytes
		rec.IOWriteBytes = io.WriteBytes
		rec.HasIO = true
	}
	rec.Group, rec.HasGroup = platformGroup(ctx, p)

	return rec
}

// commandName mirrors the teacher's pkg/metrics.ProcessCommandName fallback
// chain: executable path, then argv[0], then the bare process name, then a
// PID placeholder.
func commandName(ctx context.Context, p *process.Process) string {
	if exe, err := p.ExeWithContext(ctx); err == nil && exe != "" {
		return exe
	}
	if args, err := p.CmdlineSliceWithContext(ctx); err == nil && len(args) > 0 {
		return args[0]
	}
	if name, err := p.NameWithContext(ctx); err == nil && name != "" {
		return name
	}
	return "[PID " + strconv.Itoa(int(p.Pid)) + "]"
}

// platformGroup reports the cgroup/bundle/service label where the platform
// exposes one. Linux processes carry a cgroup path in /proc/<pid>/cgroup;
// the path on its first line is reported. Other platforms have no
// equivalent and report absent.
func platformGroup(ctx context.Context, p *process.Process) (string, bool) {
	if runtime.GOOS != "linux" {
		return "", false
	}
	data, err := os.ReadFile("/proc/" + strconv.Itoa(int(p.Pid)) + "/cgroup")
	if err != nil {
		return "", false
	}
	line := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)[0]
	parts := strings.SplitN(line, ":", 3)
	if len(parts) != 3 || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

// GopsutilSink is the real SignalSink, built on the same gopsutil module.
type GopsutilSink struct{}

func NewGopsutilSink() *GopsutilSink {
	return &GopsutilSink{}
}

func (s *GopsutilSink) Terminate(ctx context.Context, pid uint32, force bool) error {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return TerminateErrNoSuchProcess
	}
	if force {
		err = p.KillWithContext(ctx)
	} else {
		err = p.TerminateWithContext(ctx)
	}
	if err == nil {
		return nil
	}
	return classifyTerminateError(err)
}

func classifyTerminateError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such process"), strings.Contains(msg, "not exist"):
		return TerminateErrNoSuchProcess
	case strings.Contains(msg, "permission"), strings.Contains(msg, "denied"), strings.Contains(msg, "access is denied"):
		return TerminateErrPermissionDenied
	default:
		return TerminateErrOther
	}
}
