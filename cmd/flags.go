package cmd

import (
	"github.com/spf13/cobra"
)

var (
	flagRefreshRateMS  uint32
	flagConfigPath     string
	flagColor          string
	flagColorMode      string
	flagPerfCapture    bool
	flagPerfIterations uint32
	flagPerfWidth      uint16
	flagPerfHeight     uint16
	flagPerfOutput     string
	debugLevel         int
)

// GetPersistentFlags registers squaretop's CLI surface (spec.md §6) on cmd,
// following the teacher's GetPersistentFlags shape: a single function, one
// flag registration per line, package-level vars bound via cobra's *VarP
// helpers.
func GetPersistentFlags(cmd *cobra.Command) {
	// Refresh and config
	cmd.PersistentFlags().Uint32VarP(&flagRefreshRateMS, "refresh-rate", "r", 0, "collector tick interval in milliseconds, minimum 100 (default from config: 2000)")
	cmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "f", "", "path to a squaretop.toml configuration file")

	// Color
	cmd.PersistentFlags().StringVarP(&flagColor, "color", "c", "", "color support override: auto|truecolor|256|mono")
	cmd.PersistentFlags().StringVarP(&flagColorMode, "color-mode", "m", "", "initial color mode: name|memory|cpu|user|group|monochrome")

	// Headless perf capture
	cmd.PersistentFlags().BoolVar(&flagPerfCapture, "perf-capture", false, "run headless, capturing layout/render span timings instead of drawing to a terminal")
	cmd.PersistentFlags().Uint32Var(&flagPerfIterations, "perf-iterations", 100, "number of layout/render iterations to capture in perf mode")
	cmd.PersistentFlags().Uint16Var(&flagPerfWidth, "perf-width", 0, "terminal width in cells to simulate in perf mode (default: detected screen width)")
	cmd.PersistentFlags().Uint16Var(&flagPerfHeight, "perf-height", 50, "terminal height in cells to simulate in perf mode")
	cmd.PersistentFlags().StringVar(&flagPerfOutput, "perf-output", "squaretop-perf.jsonl", "jsonl output path for perf-capture mode")

	// Debugging
	cmd.PersistentFlags().CountVarP(&debugLevel, "debug", "d", "increase debugging level (-d, -dd, -ddd)")
}
