package layout

import (
	"testing"

	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/collect"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseCtx(bounds geometry.CellRect) ViewContext {
	return ViewContext{
		Sort:            SortMemory,
		ColorMode:       color.ModeMemory,
		Theme:           color.ThemeVivid,
		Bounds:          bounds,
		MaxVisibleProcs: 100,
		MinRectWidth:    1,
		MinRectHeight:   1,
	}
}

func threeProcSnapshot() snapshot.Snapshot {
	raw := collect.RawSnapshot{Records: []collect.RawRecord{
		{PID: 1, Name: "a", MemoryBytes: 4096},
		{PID: 2, Name: "b", MemoryBytes: 2048},
		{PID: 3, Name: "c", MemoryBytes: 2048},
	}}
	return snapshot.Build(raw, 0)
}

func TestBuildThreeProcessesAreaRatios(t *testing.T) {
	snap := threeProcSnapshot()
	ctx := baseCtx(geometry.CellRect{W: 100, H: 50})
	lay := Build(snap, ctx)
	require.Len(t, lay.Rects, 3)
	total := lay.Rects[0].Rect.Area() + lay.Rects[1].Rect.Area() + lay.Rects[2].Rect.Area()
	assert.InDelta(t, 5000.0, total, 1.0)
	// Largest (PID 1) should be twice the area of each of the other two.
	assert.InDelta(t, 2.0, lay.Rects[0].Rect.Area()/lay.Rects[1].Rect.Area(), 0.05)
}

func TestBuildEmptyScopeProducesEmptyLayout(t *testing.T) {
	snap := snapshot.Build(collect.RawSnapshot{}, 0)
	ctx := baseCtx(geometry.CellRect{W: 80, H: 24})
	lay := Build(snap, ctx)
	assert.Empty(t, lay.Rects)
	assert.Nil(t, lay.OtherSummary)
}

func TestBuildFilterNoMatchIsEmptyWithNoOther(t *testing.T) {
	snap := threeProcSnapshot()
	ctx := baseCtx(geometry.CellRect{W: 80, H: 24})
	ctx.Filter = "zzz-nomatch"
	lay := Build(snap, ctx)
	assert.Empty(t, lay.Rects)
	assert.Nil(t, lay.OtherSummary)
}

func TestBuildFilterMatchesNameCaseInsensitive(t *testing.T) {
	snap := threeProcSnapshot()
	ctx := baseCtx(geometry.CellRect{W: 80, H: 24})
	ctx.Filter = "A"
	lay := Build(snap, ctx)
	require.Len(t, lay.Rects, 1)
	assert.Equal(t, uint32(1), lay.Rects[0].ID)
}

func TestBuildVisibilityCapProducesOther(t *testing.T) {
	records := make([]collect.RawRecord, 0, 30)
	for i := 1; i <= 30; i++ {
		records = append(records, collect.RawRecord{PID: uint32(i), Name: "p", MemoryBytes: uint64(i)})
	}
	snap := snapshot.Build(collect.RawSnapshot{Records: records}, 0)
	ctx := baseCtx(geometry.CellRect{W: 200, H: 60})
	ctx.MaxVisibleProcs = 25
	ctx.GroupThreshold = 0
	lay := Build(snap, ctx)
	assert.LessOrEqual(t, len(lay.Rects), 26)
	require.NotNil(t, lay.OtherSummary)
	assert.Equal(t, 5, lay.OtherSummary.Count)
}

func TestBuildMaxVisibleLargerThanCountHasNoOther(t *testing.T) {
	snap := threeProcSnapshot()
	ctx := baseCtx(geometry.CellRect{W: 80, H: 24})
	ctx.MaxVisibleProcs = 1000
	ctx.GroupThreshold = 0
	lay := Build(snap, ctx)
	assert.Nil(t, lay.OtherSummary)
	assert.Len(t, lay.Rects, 3)
}

func TestBuildIsDeterministic(t *testing.T) {
	snap := threeProcSnapshot()
	ctx := baseCtx(geometry.CellRect{W: 137, H: 53})
	a := Build(snap, ctx)
	b := Build(snap, ctx)
	assert.Equal(t, a, b)
}

func TestBuildZoomRestrictsToSubtree(t *testing.T) {
	raw := collect.RawSnapshot{Records: []collect.RawRecord{
		{PID: 10, Name: "root", MemoryBytes: 1},
		{PID: 2, PPID: 10, Name: "child-a", MemoryBytes: 300},
		{PID: 3, PPID: 10, Name: "child-b", MemoryBytes: 100},
	}}
	snap := snapshot.Build(raw, 0)
	ctx := baseCtx(geometry.CellRect{W: 100, H: 100})
	ctx.ZoomStack = []uint32{10}
	lay := Build(snap, ctx)
	require.Len(t, lay.Rects, 3) // subtree includes the zoomed root itself
	ids := map[uint32]bool{}
	for _, r := range lay.Rects {
		ids[r.ID] = true
	}
	assert.True(t, ids[10] && ids[2] && ids[3])
}

func TestSortModeNextCycles(t *testing.T) {
	assert.Equal(t, SortCPU, SortMemory.Next())
	assert.Equal(t, SortName, SortCPU.Next())
	assert.Equal(t, SortMemory, SortName.Next())
}

func TestFormatBytesHumanReadable(t *testing.T) {
	assert.Equal(t, "512B", FormatBytes(512))
	assert.Equal(t, "1.0KiB", FormatBytes(1024))
}
