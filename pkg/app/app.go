// Package app implements the interaction state machine (spec.md §4.6/§4.7):
// it owns the current snapshot, view context, selection, input mode, zoom
// stack, and animation phase, and applies the action table.
package app

import (
	"context"
	"fmt"
	"math"

	"github.com/gdanko/squaretop/pkg/collect"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/input"
	"github.com/gdanko/squaretop/pkg/interpolate"
	"github.com/gdanko/squaretop/pkg/layout"
	"github.com/gdanko/squaretop/pkg/snapshot"
	"github.com/gdanko/squaretop/pkg/sparkline"
)

// sparklineRetention is how many consecutive Compact calls (collector
// ticks) a PID's history survives after it disappears from the process
// table, before its ring buffer is evicted.
const sparklineRetention = 5

// AnimationPhase tracks whether the app is easing between two layouts
// (spec.md §3).
type AnimationPhase struct {
	Animating  bool
	From       layout.Layout
	To         layout.Layout
	FrameIndex int
	TotalFrames int
}

// noSelection is the sentinel meaning "no process selected"; PID 0 is
// already rejected by the snapshot builder so it's unambiguous.
const noSelection uint32 = 0

// App is the interaction state machine.
type App struct {
	Snapshot         snapshot.Snapshot
	View             layout.ViewContext
	Selection        uint32
	Mode             input.Mode
	FilterBuffer     string
	DetailPanel      bool
	Phase            AnimationPhase
	StatusLine       string
	Stale            bool
	Quit             bool
	RefreshRequested bool
	Sparklines       *sparkline.Store

	resolver *input.Resolver
	sink     collect.SignalSink
}

// New constructs an App with an initial (possibly empty) snapshot and view.
func New(snap snapshot.Snapshot, view layout.ViewContext, binds input.Keybinds, sink collect.SignalSink) *App {
	length := view.SparklineLength
	if length <= 0 {
		length = 60
	}
	a := &App{
		Snapshot:   snap,
		View:       view,
		resolver:   input.NewResolver(binds),
		sink:       sink,
		Sparklines: sparkline.NewStore(length, sparklineRetention),
	}
	a.recordSamples()
	a.rebuildAndResetSelection()
	return a
}

// CurrentLayout returns the layout the renderer should draw for this
// instant: the interpolated in-between frame while animating, or the
// settled layout otherwise.
func (a *App) CurrentLayout() layout.Layout {
	if a.Phase.Animating {
		return interpolate.Frame(a.Phase.From, a.Phase.To, a.Phase.FrameIndex, a.Phase.TotalFrames)
	}
	return a.Phase.To
}

// HandleKey resolves ev through the input resolver and applies its effect.
func (a *App) HandleKey(ctx context.Context, ev input.Event) {
	action := a.resolver.Resolve(ev, a.Mode)
	switch action {
	case input.ActionFilterInput:
		a.FilterBuffer += string(ev.Key.Rune)
		return
	default:
		a.Dispatch(ctx, action)
	}
}

// Dispatch applies the effect of action (spec.md §4.6's table) that needs
// no extra payload beyond FilterBuffer/Selection already held on App.
func (a *App) Dispatch(ctx context.Context, action input.Action) {
	switch action {
	case input.ActionQuit:
		a.Quit = true
	case input.ActionEnterFilter:
		if a.Mode == input.ModeNormal {
			a.Mode = input.ModeFilter
			a.FilterBuffer = ""
		}
	case input.ActionFilterBackspace:
		if a.Mode == input.ModeFilter && len(a.FilterBuffer) > 0 {
			r := []rune(a.FilterBuffer)
			a.FilterBuffer = string(r[:len(r)-1])
		}
	case input.ActionCommitFilter:
		if a.Mode == input.ModeFilter {
			a.Mode = input.ModeNormal
			a.View.Filter = a.FilterBuffer
			a.rebuildAndResetSelection()
		}
	case input.ActionCancelFilter:
		if a.Mode == input.ModeFilter {
			a.Mode = input.ModeNormal
			a.View.Filter = ""
			a.rebuildAndResetSelection()
		}
	case input.ActionKillSoft:
		a.kill(ctx, false)
	case input.ActionKillForce:
		a.kill(ctx, true)
	case input.ActionCycleColor:
		if a.Mode == input.ModeNormal {
			a.View.ColorMode = a.View.ColorMode.Next()
			a.rebuildInPlace()
		}
	case input.ActionCycleTheme:
		if a.Mode == input.ModeNormal {
			a.View.Theme = a.View.Theme.Next()
			a.rebuildInPlace()
		}
	case input.ActionToggleDetail:
		if a.Mode == input.ModeNormal {
			a.DetailPanel = !a.DetailPanel
		}
	case input.ActionCycleSort:
		if a.Mode == input.ModeNormal {
			a.View.Sort = a.View.Sort.Next()
			a.rebuildAndResetSelection()
		}
	case input.ActionZoomIn:
		a.zoomIn()
	case input.ActionZoomOut:
		a.zoomOut()
	case input.ActionToggleHelp:
		if a.Mode == input.ModeHelp {
			a.Mode = input.ModeNormal
		} else if a.Mode == input.ModeNormal {
			a.Mode = input.ModeHelp
		}
	case input.ActionNavigateUp:
		a.navigate(input.DirUp)
	case input.ActionNavigateDown:
		a.navigate(input.DirDown)
	case input.ActionNavigateLeft:
		a.navigate(input.DirLeft)
	case input.ActionNavigateRight:
		a.navigate(input.DirRight)
	case input.ActionRefresh:
		if a.Mode == input.ModeNormal {
			a.RefreshRequested = true
		}
	}
}

func (a *App) kill(ctx context.Context, force bool) {
	if a.Mode != input.ModeNormal || a.Selection == noSelection || a.sink == nil {
		return
	}
	pid := a.Selection
	err := a.sink.Terminate(ctx, pid, force)
	if err == nil {
		a.StatusLine = fmt.Sprintf("kill %d: ok", pid)
		return
	}
	a.StatusLine = fmt.Sprintf("kill %d: %s", pid, err.Error())
}

func (a *App) zoomIn() {
	if a.Mode != input.ModeNormal || a.Selection == noSelection || a.Snapshot.Tree == nil {
		return
	}
	if !a.Snapshot.Tree.HasChildren(a.Selection) {
		return
	}
	a.View.ZoomStack = append(a.View.ZoomStack, a.Selection)
	a.Selection = noSelection
	a.rebuildAndResetSelection()
}

func (a *App) zoomOut() {
	if a.Mode != input.ModeNormal || len(a.View.ZoomStack) == 0 {
		return
	}
	a.View.ZoomStack = a.View.ZoomStack[:len(a.View.ZoomStack)-1]
	a.rebuildAndResetSelection()
}

// OnNewSnapshot replaces the snapshot and starts an animation from the
// currently interpolated layout to the freshly built one (spec.md §4.6's
// Tick action, §5's full-replacement ordering guarantee).
func (a *App) OnNewSnapshot(snap snapshot.Snapshot) {
	from := a.CurrentLayout()
	a.Snapshot = snap
	a.Stale = false
	a.recordSamples()
	newLayout := layout.Build(a.Snapshot, a.View)
	a.startAnimation(from, newLayout)
	a.resetSelectionIfInvalid(newLayout)
}

// recordSamples pushes one (memory, cpu) sample per current record into the
// sparkline store, then compacts out entries for PIDs no longer present
// (spec.md §3).
func (a *App) recordSamples() {
	if a.Sparklines == nil || a.Snapshot.Tree == nil {
		return
	}
	records := a.Snapshot.Tree.All()
	present := make(map[uint32]bool, len(records))
	for _, rec := range records {
		present[rec.PID] = true
		a.Sparklines.Push(rec.PID, sparkline.Sample{MemoryBytes: rec.MemoryBytes, CPUPercent: rec.CPUPercent})
	}
	a.Sparklines.Compact(present)
}

// OnCollectorError marks the snapshot stale; the previous snapshot (and
// its layout) is retained (spec.md §7).
func (a *App) OnCollectorError() {
	a.Stale = true
	if a.Snapshot.Tree != nil {
		a.Snapshot.Tree = a.Snapshot.Tree.WithStale(true)
	}
}

// AdvanceAnimation steps the animation clock by one frame (spec.md §5, 40ms
// per frame). Once FrameIndex reaches TotalFrames the phase settles Idle
// and CurrentLayout becomes exactly Phase.To (spec.md §4.5).
func (a *App) AdvanceAnimation() {
	if !a.Phase.Animating {
		return
	}
	a.Phase.FrameIndex++
	if a.Phase.FrameIndex >= a.Phase.TotalFrames {
		a.Phase.Animating = false
		a.Phase.FrameIndex = a.Phase.TotalFrames
	}
}

func (a *App) startAnimation(from, to layout.Layout) {
	total := a.View.AnimationFrames
	if total <= 0 {
		total = 5
	}
	a.Phase = AnimationPhase{Animating: true, From: from, To: to, FrameIndex: 0, TotalFrames: total}
}

// Resize updates the view bounds and immediately relays out without
// animating, since a terminal resize is a discontinuity the ease-out curve
// has no meaningful "from" state for.
func (a *App) Resize(bounds geometry.CellRect) {
	a.View.Bounds = bounds
	a.rebuildAndResetSelection()
}

// rebuildAndResetSelection recomputes the layout from the current
// snapshot/view with no animation (used after filter/sort/zoom changes,
// which invalidate selection per spec.md §4.6).
func (a *App) rebuildAndResetSelection() {
	l := layout.Build(a.Snapshot, a.View)
	a.Phase = AnimationPhase{To: l}
	a.resetSelectionIfInvalid(l)
}

// rebuildInPlace recomputes color/label-only changes (color mode, theme)
// without touching selection or animation.
func (a *App) rebuildInPlace() {
	l := layout.Build(a.Snapshot, a.View)
	a.Phase.To = l
	if !a.Phase.Animating {
		a.Phase.From = l
	}
}

func (a *App) resetSelectionIfInvalid(l layout.Layout) {
	if a.hasVisibleID(l, a.Selection) {
		return
	}
	a.Selection = firstVisible(l)
}

func (a *App) hasVisibleID(l layout.Layout, id uint32) bool {
	if id == noSelection {
		return false
	}
	for _, r := range l.Rects {
		if r.ID == id && r.Visible {
			return true
		}
	}
	return false
}

// firstVisible returns the ID of the first visible rect in layout order
// (the largest one under the Memory sort), or noSelection.
func firstVisible(l layout.Layout) uint32 {
	for _, r := range l.Rects {
		if r.Visible {
			return r.ID
		}
	}
	return noSelection
}

// navigate moves Selection to the nearest visible rect in the half-plane
// dir from the current selection's centroid (spec.md §4.7).
func (a *App) navigate(dir input.Direction) {
	if a.Mode != input.ModeNormal {
		return
	}
	l := a.Phase.To
	var cur *layout.LayoutRect
	for i := range l.Rects {
		if l.Rects[i].ID == a.Selection && l.Rects[i].Visible {
			cur = &l.Rects[i]
			break
		}
	}
	if cur == nil {
		a.Selection = firstVisible(l)
		return
	}
	cx, cy := centroid(cur.Rect)

	type candidate struct {
		rect   layout.LayoutRect
		d      float64
		cx, cy float64
	}
	var best *candidate
	for _, r := range l.Rects {
		if !r.Visible || r.ID == a.Selection {
			continue
		}
		rx, ry := centroid(r.Rect)
		if !inHalfPlane(dir, cx, cy, rx, ry) {
			continue
		}
		d := weightedDistance(dir, cx, cy, rx, ry)
		better := best == nil || d < best.d ||
			(d == best.d && (ry < best.cy || (ry == best.cy && rx < best.cx)))
		if better {
			best = &candidate{rect: r, d: d, cx: rx, cy: ry}
		}
	}
	if best != nil {
		a.Selection = best.rect.ID
	}
}

func centroid(r geometry.Rect) (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func inHalfPlane(dir input.Direction, cx, cy, rx, ry float64) bool {
	switch dir {
	case input.DirUp:
		return ry < cy
	case input.DirDown:
		return ry > cy
	case input.DirLeft:
		return rx < cx
	case input.DirRight:
		return rx > cx
	default:
		return false
	}
}

func weightedDistance(dir input.Direction, cx, cy, rx, ry float64) float64 {
	switch dir {
	case input.DirUp, input.DirDown:
		return math.Abs(ry-cy) + 2*math.Abs(rx-cx)
	default:
		return math.Abs(rx-cx) + 2*math.Abs(ry-cy)
	}
}

