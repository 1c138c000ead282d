// Package config loads and validates the configuration record consumed by
// the app (spec.md §6). Configuration is parsed from TOML once at startup
// and passed by value from then on (spec.md §9: "Configuration and
// keybinds are loaded once at startup and passed by value").
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdanko/squaretop/pkg/color"
	"github.com/gdanko/squaretop/pkg/input"
	"github.com/gdanko/squaretop/pkg/layout"
)

// ColorSupport selects how aggressively the renderer downgrades RGB colors
// for the attached terminal.
type ColorSupport int

const (
	ColorSupportAuto ColorSupport = iota
	ColorSupportTrueColor
	ColorSupport256
	ColorSupportMono
)

// General holds the top-level [general] TOML section.
type General struct {
	RefreshRateMS    uint32
	DefaultColorMode color.Mode
	ShowDetailPanel  bool
	SparklineLength  uint16
	ColorSupport     ColorSupport
	DefaultSort      layout.SortMode
}

// Treemap holds the [treemap] TOML section.
type Treemap struct {
	MinRectWidth    uint16
	MinRectHeight   uint16
	GroupThreshold  float32
	MaxVisibleProcs uint16
	BorderStyle     layout.BorderStyle
	AnimationFrames uint8
}

// Colors holds the [colors] TOML section.
type Colors struct {
	Theme    color.Theme
	HeatLow  color.RGB
	HeatMid  color.RGB
	HeatHigh color.RGB
}

// Config is the fully validated, in-memory configuration record.
type Config struct {
	General  General
	Treemap  Treemap
	Colors   Colors
	Keybinds input.Keybinds
}

// Default returns the configuration described by spec.md §6's defaults.
func Default() Config {
	return Config{
		General: General{
			RefreshRateMS:    2000,
			DefaultColorMode: color.ModeMemory,
			ShowDetailPanel:  false,
			SparklineLength:  60,
			ColorSupport:     ColorSupportAuto,
			DefaultSort:      layout.SortMemory,
		},
		Treemap: Treemap{
			MinRectWidth:    6,
			MinRectHeight:   2,
			GroupThreshold:  0.01,
			MaxVisibleProcs: 25,
			BorderStyle:     layout.BorderThin,
			AnimationFrames: 5,
		},
		Colors: Colors{
			Theme:    color.ThemeVivid,
			HeatLow:  color.Palettes[color.ThemeVivid].HeatLow,
			HeatMid:  color.Palettes[color.ThemeVivid].HeatMid,
			HeatHigh: color.Palettes[color.ThemeVivid].HeatHigh,
		},
		Keybinds: input.DefaultKeybinds(),
	}
}

// file is the raw TOML decoding target, kept separate from Config so every
// enum-valued field can be validated and translated explicitly rather than
// relying on toml to unmarshal directly into domain enums.
type file struct {
	General struct {
		RefreshRateMS    uint32 `toml:"refresh_rate_ms"`
		DefaultColorMode string `toml:"default_color_mode"`
		ShowDetailPanel  bool   `toml:"show_detail_panel"`
		SparklineLength  uint16 `toml:"sparkline_length"`
		ColorSupport     string `toml:"color_support"`
		DefaultSort      string `toml:"default_sort"`
	} `toml:"general"`
	Treemap struct {
		MinRectWidth    uint16  `toml:"min_rect_width"`
		MinRectHeight   uint16  `toml:"min_rect_height"`
		GroupThreshold  float32 `toml:"group_threshold"`
		MaxVisibleProcs uint16  `toml:"max_visible_procs"`
		BorderStyle     string  `toml:"border_style"`
		AnimationFrames uint8   `toml:"animation_frames"`
	} `toml:"treemap"`
	Colors struct {
		Theme    string `toml:"theme"`
		HeatLow  string `toml:"heat_low"`
		HeatMid  string `toml:"heat_mid"`
		HeatHigh string `toml:"heat_high"`
	} `toml:"colors"`
	Keybinds map[string]string `toml:"keybinds"`
}

// Error is a configuration error (spec.md §7: "surfaced at startup with
// explanatory message; exit code 2").
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func errf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Load reads and validates the TOML file at path, layering it over
// Default(). A missing or unreadable file is reported as an *Error like any
// parse failure; callers that treat "no config file found" as fine check
// for the file before calling Load.
func Load(path string) (Config, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Config{}, errf("config: parse %s: %v", path, err)
	}
	return fromFile(f)
}

// Parse validates TOML already read into memory, used by tests and by
// callers that already hold the file contents.
func Parse(data string) (Config, error) {
	var f file
	if _, err := toml.Decode(data, &f); err != nil {
		return Config{}, errf("config: parse: %v", err)
	}
	return fromFile(f)
}

func fromFile(f file) (Config, error) {
	cfg := Default()

	if f.General.RefreshRateMS != 0 {
		if f.General.RefreshRateMS < 100 {
			return Config{}, errf("config: general.refresh_rate_ms must be >= 100, got %d", f.General.RefreshRateMS)
		}
		cfg.General.RefreshRateMS = f.General.RefreshRateMS
	}
	if f.General.DefaultColorMode != "" {
		m, err := parseColorMode(f.General.DefaultColorMode)
		if err != nil {
			return Config{}, err
		}
		cfg.General.DefaultColorMode = m
	}
	cfg.General.ShowDetailPanel = f.General.ShowDetailPanel
	if f.General.SparklineLength != 0 {
		cfg.General.SparklineLength = f.General.SparklineLength
	}
	if f.General.ColorSupport != "" {
		s, err := parseColorSupport(f.General.ColorSupport)
		if err != nil {
			return Config{}, err
		}
		cfg.General.ColorSupport = s
	}
	if f.General.DefaultSort != "" {
		s, err := parseSortMode(f.General.DefaultSort)
		if err != nil {
			return Config{}, err
		}
		cfg.General.DefaultSort = s
	}

	if f.Treemap.MinRectWidth != 0 {
		cfg.Treemap.MinRectWidth = f.Treemap.MinRectWidth
	}
	if f.Treemap.MinRectHeight != 0 {
		cfg.Treemap.MinRectHeight = f.Treemap.MinRectHeight
	}
	if f.Treemap.GroupThreshold != 0 {
		if f.Treemap.GroupThreshold < 0 || f.Treemap.GroupThreshold > 1 {
			return Config{}, errf("config: treemap.group_threshold must be in [0,1], got %v", f.Treemap.GroupThreshold)
		}
		cfg.Treemap.GroupThreshold = f.Treemap.GroupThreshold
	}
	if f.Treemap.MaxVisibleProcs != 0 {
		cfg.Treemap.MaxVisibleProcs = f.Treemap.MaxVisibleProcs
	}
	if f.Treemap.BorderStyle != "" {
		b, err := parseBorderStyle(f.Treemap.BorderStyle)
		if err != nil {
			return Config{}, err
		}
		cfg.Treemap.BorderStyle = b
	}
	if f.Treemap.AnimationFrames != 0 {
		cfg.Treemap.AnimationFrames = f.Treemap.AnimationFrames
	}

	if f.Colors.Theme != "" {
		th, err := parseTheme(f.Colors.Theme)
		if err != nil {
			return Config{}, err
		}
		cfg.Colors.Theme = th
	}
	if f.Colors.HeatLow != "" {
		rgb, err := parseHexField(f.Colors.HeatLow, "colors.heat_low")
		if err != nil {
			return Config{}, err
		}
		cfg.Colors.HeatLow = rgb
	}
	if f.Colors.HeatMid != "" {
		rgb, err := parseHexField(f.Colors.HeatMid, "colors.heat_mid")
		if err != nil {
			return Config{}, err
		}
		cfg.Colors.HeatMid = rgb
	}
	if f.Colors.HeatHigh != "" {
		rgb, err := parseHexField(f.Colors.HeatHigh, "colors.heat_high")
		if err != nil {
			return Config{}, err
		}
		cfg.Colors.HeatHigh = rgb
	}

	if len(f.Keybinds) > 0 {
		binds, err := applyKeybinds(cfg.Keybinds, f.Keybinds)
		if err != nil {
			return Config{}, err
		}
		cfg.Keybinds = binds
	}

	return cfg, nil
}

func parseColorMode(s string) (color.Mode, error) {
	switch strings.ToLower(s) {
	case "name":
		return color.ModeName, nil
	case "memory":
		return color.ModeMemory, nil
	case "cpu":
		return color.ModeCPU, nil
	case "user":
		return color.ModeUser, nil
	case "group":
		return color.ModeGroup, nil
	case "monochrome":
		return color.ModeMonochrome, nil
	default:
		return 0, errf("config: general.default_color_mode: unknown value %q", s)
	}
}

func parseColorSupport(s string) (ColorSupport, error) {
	switch strings.ToLower(s) {
	case "auto":
		return ColorSupportAuto, nil
	case "truecolor":
		return ColorSupportTrueColor, nil
	case "256":
		return ColorSupport256, nil
	case "mono":
		return ColorSupportMono, nil
	default:
		return 0, errf("config: general.color_support: unknown value %q", s)
	}
}

func parseSortMode(s string) (layout.SortMode, error) {
	switch strings.ToLower(s) {
	case "memory":
		return layout.SortMemory, nil
	case "cpu":
		return layout.SortCPU, nil
	case "name":
		return layout.SortName, nil
	default:
		return 0, errf("config: general.default_sort: unknown value %q", s)
	}
}

func parseBorderStyle(s string) (layout.BorderStyle, error) {
	switch strings.ToLower(s) {
	case "thin":
		return layout.BorderThin, nil
	case "thick":
		return layout.BorderThick, nil
	case "none":
		return layout.BorderNone, nil
	default:
		return 0, errf("config: treemap.border_style: unknown value %q", s)
	}
}

func parseTheme(s string) (color.Theme, error) {
	switch strings.ToLower(s) {
	case "vivid":
		return color.ThemeVivid, nil
	case "pastel":
		return color.ThemePastel, nil
	case "light":
		return color.ThemeLight, nil
	default:
		return 0, errf("config: colors.theme: unknown value %q", s)
	}
}

func parseHexField(s, field string) (color.RGB, error) {
	rgb, err := color.ParseHex(s)
	if err != nil {
		return color.RGB{}, errf("config: %s: not a hex color: %q", field, s)
	}
	return rgb, nil
}

// keybindFields maps a TOML keybinds key (spec.md §6: "12 remappable
// action->key strings") to the Keybinds field it fills.
var keybindFields = map[string]func(*input.Keybinds, input.Key){
	"enter_filter":  func(k *input.Keybinds, v input.Key) { k.EnterFilter = v },
	"commit_filter": func(k *input.Keybinds, v input.Key) { k.CommitFilter = v },
	"cancel_filter": func(k *input.Keybinds, v input.Key) { k.CancelFilter = v },
	"kill_soft":     func(k *input.Keybinds, v input.Key) { k.KillSoft = v },
	"kill_force":    func(k *input.Keybinds, v input.Key) { k.KillForce = v },
	"cycle_color":   func(k *input.Keybinds, v input.Key) { k.CycleColor = v },
	"cycle_theme":   func(k *input.Keybinds, v input.Key) { k.CycleTheme = v },
	"toggle_detail": func(k *input.Keybinds, v input.Key) { k.ToggleDetail = v },
	"cycle_sort":    func(k *input.Keybinds, v input.Key) { k.CycleSort = v },
	"zoom_in":       func(k *input.Keybinds, v input.Key) { k.ZoomIn = v },
	"zoom_out":      func(k *input.Keybinds, v input.Key) { k.ZoomOut = v },
	"refresh":       func(k *input.Keybinds, v input.Key) { k.Refresh = v },
	"toggle_help":   func(k *input.Keybinds, v input.Key) { k.ToggleHelp = v },
	"quit":          func(k *input.Keybinds, v input.Key) { k.Quit = v },
}

func applyKeybinds(base input.Keybinds, raw map[string]string) (input.Keybinds, error) {
	for action, keyStr := range raw {
		set, ok := keybindFields[action]
		if !ok {
			return input.Keybinds{}, errf("config: keybinds: unknown action %q", action)
		}
		key, err := parseKey(keyStr)
		if err != nil {
			return input.Keybinds{}, errf("config: keybinds.%s: %v", action, err)
		}
		set(&base, key)
	}
	return base, nil
}

// parseKey accepts either a single printable rune ("k") or a
// "<name>"-bracketed special key ("<enter>", "<esc>", "<c-c>"), mirroring
// the label convention pkg/input already uses for named keys.
func parseKey(s string) (input.Key, error) {
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") && len(s) > 2 {
		return input.NamedKey(s[1 : len(s)-1]), nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return input.Key{}, fmt.Errorf("expected a single character or <name>, got %q", s)
	}
	return input.RuneKey(runes[0]), nil
}
