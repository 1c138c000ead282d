package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gdanko/squaretop/pkg/app"
	"github.com/gdanko/squaretop/pkg/collect"
	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/config"
	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/gdanko/squaretop/pkg/globals"
	"github.com/gdanko/squaretop/pkg/input"
	"github.com/gdanko/squaretop/pkg/layout"
	"github.com/gdanko/squaretop/pkg/logging"
	"github.com/gdanko/squaretop/pkg/perfcapture"
	"github.com/gdanko/squaretop/pkg/render"
	"github.com/gdanko/squaretop/pkg/snapshot"
	"github.com/gdanko/squaretop/pkg/sparkline"
	"github.com/gdanko/squaretop/pkg/term"
	"github.com/gdanko/squaretop/util"
	"github.com/giancarlosio/gorainbow"
	"github.com/spf13/cobra"
)

var (
	colorSupport bool
	colorCount   int
	version      string = "0.1.0"
	rootCmd      = &cobra.Command{
		Use:   "squaretop",
		Short: "A squarified-treemap process monitor",
		Long:  fmt.Sprintf("squaretop $Revision: %s $", version),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			globals.SetDebugLevel(debugLevel)
		},
		RunE: squaretopRunCmd,
	}
)

// Execute runs the root command of the squaretop application.
func Execute() error {
	return rootCmd.Execute()
}

// init wires the CLI flags and a colorized usage banner, following the
// teacher's init()-time terminal-capability probing in cmd/root.go.
func init() {
	colorSupport, colorCount = util.HasColorSupport()

	GetPersistentFlags(rootCmd)

	banner := "Display processes as a squarified treemap of memory usage."
	if colorSupport && colorCount >= 256 {
		banner = gorainbow.Rainbow(banner)
	}
	rootCmd.Long = fmt.Sprintf("squaretop $Revision: %s $\n\n%s", version, banner)
}

func squaretopRunCmd(cmd *cobra.Command, args []string) error {
	if debugLevel > 0 {
		logging.Init(slog.LevelDebug, os.Stderr)
	} else {
		logging.Init(slog.LevelInfo, os.Stderr)
	}
	globals.SetLogger(logging.Logger)

	cfg, err := loadConfig()
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, cfgErr.Error())
			os.Exit(2)
		}
		return err
	}
	applyFlagOverrides(&cfg)

	if flagPerfCapture {
		if err := runPerfCapture(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return nil
	}

	if err := runInteractive(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}

func loadConfig() (config.Config, error) {
	if flagConfigPath == "" {
		return config.Default(), nil
	}
	if _, err := os.Stat(flagConfigPath); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(flagConfigPath)
}

// applyFlagOverrides layers CLI flags over the loaded config, matching the
// teacher's pattern of package-level flag vars winning over defaults only
// when the user actually set them.
func applyFlagOverrides(cfg *config.Config) {
	if flagRefreshRateMS > 0 {
		cfg.General.RefreshRateMS = flagRefreshRateMS
	}
	if flagColorMode != "" {
		switch strings.ToLower(flagColorMode) {
		case "name":
			cfg.General.DefaultColorMode = color.ModeName
		case "memory":
			cfg.General.DefaultColorMode = color.ModeMemory
		case "cpu":
			cfg.General.DefaultColorMode = color.ModeCPU
		case "user":
			cfg.General.DefaultColorMode = color.ModeUser
		case "group":
			cfg.General.DefaultColorMode = color.ModeGroup
		case "monochrome":
			cfg.General.DefaultColorMode = color.ModeMonochrome
		}
	}
	if flagColor != "" {
		switch strings.ToLower(flagColor) {
		case "auto":
			cfg.General.ColorSupport = config.ColorSupportAuto
		case "truecolor":
			cfg.General.ColorSupport = config.ColorSupportTrueColor
		case "256":
			cfg.General.ColorSupport = config.ColorSupport256
		case "mono":
			cfg.General.ColorSupport = config.ColorSupportMono
		}
	}
}

// termColorSupport translates the config/CLI color-support level into the
// term package's own enum, which the terminal backend consults directly.
func termColorSupport(s config.ColorSupport) term.ColorSupport {
	switch s {
	case config.ColorSupportTrueColor:
		return term.ColorSupportTrueColor
	case config.ColorSupport256:
		return term.ColorSupport256
	case config.ColorSupportMono:
		return term.ColorSupportMono
	default:
		return term.ColorSupportAuto
	}
}

func viewContextFromConfig(cfg config.Config, bounds geometry.CellRect) layout.ViewContext {
	return layout.ViewContext{
		Sort:            cfg.General.DefaultSort,
		ColorMode:       cfg.General.DefaultColorMode,
		Theme:           cfg.Colors.Theme,
		Bounds:          bounds,
		MaxVisibleProcs: int(cfg.Treemap.MaxVisibleProcs),
		GroupThreshold:  float64(cfg.Treemap.GroupThreshold),
		MinRectWidth:    int(cfg.Treemap.MinRectWidth),
		MinRectHeight:   int(cfg.Treemap.MinRectHeight),
		BorderStyle:     cfg.Treemap.BorderStyle,
		AnimationFrames: int(cfg.Treemap.AnimationFrames),
		SparklineLength: int(cfg.General.SparklineLength),
		HeatLow:         cfg.Colors.HeatLow,
		HeatMid:         cfg.Colors.HeatMid,
		HeatHigh:        cfg.Colors.HeatHigh,
	}
}

// runInteractive drives the single-threaded cooperative event loop of
// spec.md §5: it multiplexes input events, a periodic collector tick, and
// an animation clock, never handling more than one source at a time.
func runInteractive(cfg config.Config) error {
	backend, err := term.NewTcellBackend()
	if err != nil {
		return fmt.Errorf("squaretop: terminal init: %w", err)
	}
	defer backend.Close()
	defer backend.LeaveRawMode()
	defer backend.LeaveAltScreen()

	if err := backend.EnterRawMode(); err != nil {
		return fmt.Errorf("squaretop: enter raw mode: %w", err)
	}
	if err := backend.EnterAltScreen(); err != nil {
		return fmt.Errorf("squaretop: enter alt screen: %w", err)
	}
	backend.SetColorSupport(termColorSupport(cfg.General.ColorSupport))

	source := collect.NewGopsutilSource()
	sink := collect.NewGopsutilSink()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	size := backend.Size()
	full := geometry.CellRect{X: 0, Y: 0, W: size.Cols, H: size.Rows}
	_, content, _ := splitScreen(full, cfg.General.ShowDetailPanel)
	view := viewContextFromConfig(cfg, content)

	raw, err := source.Collect(ctx)
	if err != nil {
		return fmt.Errorf("squaretop: initial collection: %w", err)
	}
	snap := snapshot.Build(raw, time.Now().UnixNano())
	a := app.New(snap, view, cfg.Keybinds, sink)
	a.DetailPanel = cfg.General.ShowDetailPanel

	events := make(chan input.Event)
	resizes := make(chan term.ResizeEvent)
	pollErrs := make(chan error, 1)
	go func() {
		for {
			ev, resize, err := backend.PollEvent(ctx)
			if err != nil {
				pollErrs <- err
				return
			}
			if resize != nil {
				resizes <- *resize
				continue
			}
			events <- ev
		}
	}()

	tick := time.NewTicker(time.Duration(cfg.General.RefreshRateMS) * time.Millisecond)
	defer tick.Stop()
	animClock := time.NewTicker(40 * time.Millisecond)
	defer animClock.Stop()

	for {
		header, content, detail := splitScreen(full, a.DetailPanel)
		if content != a.View.Bounds {
			a.Resize(content)
		}
		draw(backend, a, header, content, detail)

		select {
		case <-ctx.Done():
			return nil
		case err := <-pollErrs:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case ev := <-events:
			a.HandleKey(ctx, ev)
		case rs := <-resizes:
			full = geometry.CellRect{X: 0, Y: 0, W: rs.Size.Cols, H: rs.Size.Rows}
		case <-tick.C:
			collectTick(ctx, source, a)
		case <-animClock.C:
			if a.Phase.Animating {
				a.AdvanceAnimation()
			}
		}

		if a.RefreshRequested {
			a.RefreshRequested = false
			collectTick(ctx, source, a)
		}

		if a.Quit {
			return nil
		}
	}
}

// splitScreen carves the terminal's full bounds into a one-row header, the
// treemap's content area, and (when detailPanel is set) a right-hand detail
// column (spec.md §3/§7).
func splitScreen(full geometry.CellRect, detailPanel bool) (header, content, detail geometry.CellRect) {
	if full.H <= 0 || full.W <= 0 {
		return full, full, geometry.CellRect{}
	}
	header = geometry.CellRect{X: full.X, Y: full.Y, W: full.W, H: 1}
	rest := geometry.CellRect{X: full.X, Y: full.Y + 1, W: full.W, H: full.H - 1}
	if !detailPanel {
		return header, rest, geometry.CellRect{}
	}

	detailWidth := rest.W / 3
	if detailWidth > 40 {
		detailWidth = 40
	}
	if detailWidth < 20 {
		detailWidth = 20
	}
	if detailWidth >= rest.W {
		return header, rest, geometry.CellRect{}
	}
	content = geometry.CellRect{X: rest.X, Y: rest.Y, W: rest.W - detailWidth, H: rest.H}
	detail = geometry.CellRect{X: rest.X + rest.W - detailWidth, Y: rest.Y, W: detailWidth, H: rest.H}
	return header, content, detail
}

// collectTick runs one collector pass and feeds the result to a, used by
// both the periodic ticker and an explicit Refresh action (spec.md §4.6).
func collectTick(ctx context.Context, source collect.ProcessSource, a *app.App) {
	raw, err := source.Collect(ctx)
	if err != nil {
		logging.Stale(err)
		a.OnCollectorError()
		return
	}
	a.OnNewSnapshot(snapshot.Build(raw, time.Now().UnixNano()))
}

func draw(backend term.Backend, a *app.App, header, content, detail geometry.CellRect) {
	size := backend.Size()
	buf := render.NewBuffer(size.Cols, size.Rows)

	frame := a.CurrentLayout()
	render.Render(buf, frame, content, a.View.BorderStyle, a.Selection)
	render.RenderHeader(buf, header, headerInfo(a))
	if a.DetailPanel {
		render.RenderDetailPanel(buf, detail, detailInfo(a))
	}

	backend.Commit(buf)
}

func headerInfo(a *app.App) render.HeaderInfo {
	snap := a.Snapshot
	count := 0
	if snap.Tree != nil {
		count = snap.Tree.Len()
	}
	return render.HeaderInfo{
		Stale:        a.Stale,
		ProcessCount: count,
		UsedMemory:   snap.UsedMemory,
		TotalMemory:  snap.TotalMemory,
		LoadPresent:  snap.Load.Present,
		Load1:        snap.Load.Load1,
		Load5:        snap.Load.Load5,
		Load15:       snap.Load.Load15,
		Sort:         a.View.Sort,
		ColorMode:    a.View.ColorMode,
		Filter:       a.View.Filter,
		StatusLine:   a.StatusLine,
	}
}

func detailInfo(a *app.App) render.DetailInfo {
	if a.Snapshot.Tree == nil || a.Selection == 0 {
		return render.DetailInfo{}
	}
	rec, ok := a.Snapshot.Tree.ByPID(a.Selection)
	if !ok {
		return render.DetailInfo{}
	}
	var memSpark, cpuSpark string
	if a.Sparklines != nil {
		history := a.Sparklines.History(a.Selection)
		memSpark = sparkline.RenderMemory(history)
		cpuSpark = sparkline.RenderCPU(history)
	}
	return render.DetailInfo{
		Valid:       true,
		PID:         rec.PID,
		Name:        rec.Name,
		CommandLine: rec.CommandLine,
		User:        rec.User,
		State:       rec.State.String(),
		MemoryBytes: rec.MemoryBytes,
		CPUPercent:  rec.CPUPercent,
		MemorySpark: memSpark,
		CPUSpark:    cpuSpark,
	}
}

// runPerfCapture drives the layout/render pipeline headlessly for
// --perf-iterations iterations against a synthetic bounds, writing span
// timings to --perf-output (spec.md §6: "produced only in headless perf
// mode").
func runPerfCapture(cfg config.Config) error {
	width := int(flagPerfWidth)
	if width == 0 {
		width = util.GetScreenWidth()
	}
	height := int(flagPerfHeight)

	source := collect.NewGopsutilSource()
	ctx := context.Background()
	raw, err := source.Collect(ctx)
	if err != nil {
		return fmt.Errorf("squaretop: perf capture collection: %w", err)
	}
	snap := snapshot.Build(raw, time.Now().UnixNano())

	bounds := geometry.CellRect{X: 0, Y: 0, W: width, H: height}
	view := viewContextFromConfig(cfg, bounds)

	f, err := os.Create(flagPerfOutput)
	if err != nil {
		return fmt.Errorf("squaretop: create perf output: %w", err)
	}
	defer f.Close()
	rec := perfcapture.NewRecorder(f)

	for i := uint32(0); i < flagPerfIterations; i++ {
		doneLayout := rec.Start("layout.build")
		l := layout.Build(snap, view)
		if err := doneLayout(i, map[string]any{"rects": len(l.Rects)}); err != nil {
			return err
		}

		doneRender := rec.Start("render.frame")
		buf := render.NewBuffer(width, height)
		render.Render(buf, l, bounds, view.BorderStyle, 0)
		if err := doneRender(i, nil); err != nil {
			return err
		}
	}
	return nil
}
