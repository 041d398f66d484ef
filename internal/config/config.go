package config

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/strandwm/strand/internal/layout"
)

// LayoutSettings controls the geometry policy of the tiling strip. All pixel
// values are logical pixels.
type LayoutSettings struct {
	Gap                float64 `yaml:"gap"`
	MinColumnWidth     float64 `yaml:"min_column_width"`
	MaxColumnWidth     float64 `yaml:"max_column_width"` // 0 = work-area width
	MinTileHeight      float64 `yaml:"min_tile_height"`
	DefaultColumnWidth float64 `yaml:"default_column_width"` // proportion of the work area, (0, 1]
	FocusWrap          bool    `yaml:"focus_wrap"`
}

// AnimationSpec is one animation's timing curve.
type AnimationSpec struct {
	DurationMs int    `yaml:"duration_ms"`
	Easing     string `yaml:"easing"`
}

// Animations holds the per-kind animation curves. A zero duration disables
// that animation; Enabled false disables all of them at once.
type Animations struct {
	Enabled         bool          `yaml:"enabled"`
	WindowMove      AnimationSpec `yaml:"window_move"`
	WindowResize    AnimationSpec `yaml:"window_resize"`
	ViewMovement    AnimationSpec `yaml:"view_movement"`
	WorkspaceSwitch AnimationSpec `yaml:"workspace_switch"`
	WindowFade      AnimationSpec `yaml:"window_fade"`
}

// Config is the effective daemon configuration.
type Config struct {
	LogLevel    string         `yaml:"log_level"`
	Layout      LayoutSettings `yaml:"layout"`
	Animations  Animations     `yaml:"animations"`
	WindowRules []WindowRule   `yaml:"window_rules,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Layout: LayoutSettings{
			Gap:                16,
			MinColumnWidth:     80,
			MaxColumnWidth:     0,
			MinTileHeight:      40,
			DefaultColumnWidth: 0.5,
			FocusWrap:          false,
		},
		Animations: Animations{
			Enabled:         true,
			WindowMove:      AnimationSpec{DurationMs: 250, Easing: "ease-out-cubic"},
			WindowResize:    AnimationSpec{DurationMs: 250, Easing: "ease-out-cubic"},
			ViewMovement:    AnimationSpec{DurationMs: 250, Easing: "ease-out-cubic"},
			WorkspaceSwitch: AnimationSpec{DurationMs: 300, Easing: "ease-in-out-cubic"},
			WindowFade:      AnimationSpec{DurationMs: 150, Easing: "ease-out-quad"},
		},
	}
}

// easings maps the config-facing curve names onto tween functions.
var easings = map[string]ease.TweenFunc{
	"linear":            ease.Linear,
	"ease-in-quad":      ease.InQuad,
	"ease-out-quad":     ease.OutQuad,
	"ease-in-out-quad":  ease.InOutQuad,
	"ease-in-cubic":     ease.InCubic,
	"ease-out-cubic":    ease.OutCubic,
	"ease-in-out-cubic": ease.InOutCubic,
	"ease-out-expo":     ease.OutExpo,
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.Layout.Gap < 0 {
		return &ValidationError{Path: "layout.gap", Err: fmt.Errorf("gap must be >= 0")}
	}
	if c.Layout.MinColumnWidth <= 0 {
		return &ValidationError{Path: "layout.min_column_width", Err: fmt.Errorf("min_column_width must be > 0")}
	}
	if c.Layout.MaxColumnWidth < 0 {
		return &ValidationError{Path: "layout.max_column_width", Err: fmt.Errorf("max_column_width must be >= 0")}
	}
	if c.Layout.MaxColumnWidth > 0 && c.Layout.MaxColumnWidth < c.Layout.MinColumnWidth {
		return &ValidationError{Path: "layout.max_column_width", Err: fmt.Errorf("max_column_width must be >= min_column_width")}
	}
	if c.Layout.MinTileHeight <= 0 {
		return &ValidationError{Path: "layout.min_tile_height", Err: fmt.Errorf("min_tile_height must be > 0")}
	}
	if c.Layout.DefaultColumnWidth <= 0 || c.Layout.DefaultColumnWidth > 1 {
		return &ValidationError{Path: "layout.default_column_width", Err: fmt.Errorf("default_column_width must be in (0, 1]")}
	}
	for path, spec := range map[string]AnimationSpec{
		"animations.window_move":      c.Animations.WindowMove,
		"animations.window_resize":    c.Animations.WindowResize,
		"animations.view_movement":    c.Animations.ViewMovement,
		"animations.workspace_switch": c.Animations.WorkspaceSwitch,
		"animations.window_fade":      c.Animations.WindowFade,
	} {
		if spec.DurationMs < 0 {
			return &ValidationError{Path: path + ".duration_ms", Err: fmt.Errorf("duration_ms must be >= 0")}
		}
		if spec.Easing != "" {
			if _, ok := easings[spec.Easing]; !ok {
				return &ValidationError{Path: path + ".easing", Err: fmt.Errorf("unknown easing %q", spec.Easing)}
			}
		}
	}
	for i := range c.WindowRules {
		if err := c.WindowRules[i].validate(); err != nil {
			return &ValidationError{Path: fmt.Sprintf("window_rules[%d]", i), Err: err}
		}
	}
	return nil
}

// EngineOptions converts the configuration into layout engine options.
func (c *Config) EngineOptions() layout.Options {
	opts := layout.Options{
		Gap:                c.Layout.Gap,
		MinColumnWidth:     c.Layout.MinColumnWidth,
		MaxColumnWidth:     c.Layout.MaxColumnWidth,
		MinTileHeight:      c.Layout.MinTileHeight,
		DefaultColumnWidth: c.Layout.DefaultColumnWidth,
		MoveAnim:           c.Animations.WindowMove.params(),
		ResizeAnim:         c.Animations.WindowResize.params(),
		ScrollAnim:         c.Animations.ViewMovement.params(),
		SwitchAnim:         c.Animations.WorkspaceSwitch.params(),
		FadeAnim:           c.Animations.WindowFade.params(),
	}
	if !c.Animations.Enabled {
		opts.MoveAnim = layout.AnimationParams{}
		opts.ResizeAnim = layout.AnimationParams{}
		opts.ScrollAnim = layout.AnimationParams{}
		opts.SwitchAnim = layout.AnimationParams{}
		opts.FadeAnim = layout.AnimationParams{}
	}
	return opts
}

func (s AnimationSpec) params() layout.AnimationParams {
	fn := easings[s.Easing]
	if fn == nil {
		fn = ease.OutCubic
	}
	return layout.AnimationParams{
		Duration: time.Duration(s.DurationMs) * time.Millisecond,
		Ease:     fn,
	}
}
