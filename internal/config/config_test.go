package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/strandwm/strand/internal/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Layout.Gap != def.Layout.Gap || cfg.LogLevel != def.LogLevel {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "layout:\n  gap: 8\n")
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Layout.Gap != 8 {
		t.Fatalf("expected gap 8, got %v", cfg.Layout.Gap)
	}
	if cfg.Layout.DefaultColumnWidth != 0.5 {
		t.Fatalf("unset fields should keep defaults, got %v", cfg.Layout.DefaultColumnWidth)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
layout:
  gap: 12
  min_column_width: 100
  max_column_width: 1200
  min_tile_height: 50
  default_column_width: 0.33
  focus_wrap: true
animations:
  enabled: true
  window_move:
    duration_ms: 200
    easing: linear
window_rules:
  - match:
      app_id: "^firefox$"
    default_column_width_proportion: 0.66
  - match:
      title: "Picture-in-Picture"
    open_on_output: "HDMI-A-1"
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Layout.MaxColumnWidth != 1200 || !cfg.Layout.FocusWrap {
		t.Fatalf("layout not parsed: %+v", cfg.Layout)
	}
	if cfg.Animations.WindowMove.Easing != "linear" {
		t.Fatalf("animations not parsed: %+v", cfg.Animations.WindowMove)
	}
	if len(cfg.WindowRules) != 2 {
		t.Fatalf("expected 2 window rules, got %d", len(cfg.WindowRules))
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative gap", func(c *Config) { c.Layout.Gap = -1 }},
		{"zero min column width", func(c *Config) { c.Layout.MinColumnWidth = 0 }},
		{"max below min", func(c *Config) { c.Layout.MaxColumnWidth = 10 }},
		{"proportion above one", func(c *Config) { c.Layout.DefaultColumnWidth = 1.5 }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"unknown easing", func(c *Config) { c.Animations.WindowFade.Easing = "bounce" }},
		{"bad rule regex", func(c *Config) {
			c.WindowRules = []WindowRule{{Match: WindowRuleMatch{AppID: "("}}}
		}},
		{"both widths set", func(c *Config) {
			c.WindowRules = []WindowRule{{DefaultColumnWidthProportion: 0.5, DefaultColumnWidthFixed: 300}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestEngineOptionsMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.Gap = 10
	cfg.Animations.WindowMove = AnimationSpec{DurationMs: 200, Easing: "linear"}

	opts := cfg.EngineOptions()
	if opts.Gap != 10 {
		t.Fatalf("gap not mapped: %v", opts.Gap)
	}
	if opts.MoveAnim.Duration != 200*time.Millisecond {
		t.Fatalf("duration not mapped: %v", opts.MoveAnim.Duration)
	}
	if opts.MoveAnim.Ease == nil {
		t.Fatalf("easing not mapped")
	}
}

func TestEngineOptionsDisabledAnimations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Animations.Enabled = false
	opts := cfg.EngineOptions()
	if opts.MoveAnim.Duration != 0 || opts.FadeAnim.Duration != 0 {
		t.Fatalf("disabled animations should have zero durations: %+v", opts)
	}
}

func TestRulesResolve(t *testing.T) {
	rules, err := CompileRules([]WindowRule{
		{Match: WindowRuleMatch{AppID: "^firefox$"}, DefaultColumnWidthProportion: 0.66},
		{Match: WindowRuleMatch{AppID: "^firefox$", Title: "Picture-in-Picture"}, OpenOnOutput: "HDMI-A-1"},
		{Match: WindowRuleMatch{AppID: "^mpv$"}, DefaultColumnWidthFixed: 960},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	p := rules.Resolve("firefox", "Mozilla Firefox")
	if p.Width == nil || p.Width.Mode != layout.WidthProportional || p.Width.Value != 0.66 {
		t.Fatalf("expected proportional 0.66, got %+v", p.Width)
	}
	if p.Output != "" {
		t.Fatalf("title rule should not match: %+v", p)
	}

	// Later matching rules layer on top of earlier ones.
	p = rules.Resolve("firefox", "Picture-in-Picture")
	if p.Width == nil || p.Width.Value != 0.66 {
		t.Fatalf("width from the first rule should survive: %+v", p.Width)
	}
	if p.Output != "HDMI-A-1" {
		t.Fatalf("expected output override, got %q", p.Output)
	}

	p = rules.Resolve("mpv", "")
	if p.Width == nil || p.Width.Mode != layout.WidthFixed || p.Width.Value != 960 {
		t.Fatalf("expected fixed 960, got %+v", p.Width)
	}

	if p := rules.Resolve("kitty", "shell"); p.Width != nil || p.Output != "" {
		t.Fatalf("no rule should match kitty: %+v", p)
	}
}
