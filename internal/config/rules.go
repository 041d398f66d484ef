package config

import (
	"fmt"
	"regexp"

	"github.com/strandwm/strand/internal/layout"
)

// WindowRuleMatch selects windows by regular expressions over their app id
// and title. Both patterns must match when both are set; an empty pattern
// matches everything.
type WindowRuleMatch struct {
	AppID string `yaml:"app_id,omitempty"`
	Title string `yaml:"title,omitempty"`
}

// WindowRule applies placement overrides to matching windows when they open.
type WindowRule struct {
	Match WindowRuleMatch `yaml:"match"`

	// DefaultColumnWidthProportion / Fixed pick the opening column width.
	// At most one may be set.
	DefaultColumnWidthProportion float64 `yaml:"default_column_width_proportion,omitempty"`
	DefaultColumnWidthFixed      float64 `yaml:"default_column_width_fixed,omitempty"`

	// OpenOnOutput routes the window to a specific output by connector name.
	OpenOnOutput string `yaml:"open_on_output,omitempty"`
}

func (r *WindowRule) validate() error {
	if r.Match.AppID != "" {
		if _, err := regexp.Compile(r.Match.AppID); err != nil {
			return fmt.Errorf("match.app_id: %w", err)
		}
	}
	if r.Match.Title != "" {
		if _, err := regexp.Compile(r.Match.Title); err != nil {
			return fmt.Errorf("match.title: %w", err)
		}
	}
	if r.DefaultColumnWidthProportion != 0 && r.DefaultColumnWidthFixed != 0 {
		return fmt.Errorf("default_column_width_proportion and default_column_width_fixed are mutually exclusive")
	}
	if r.DefaultColumnWidthProportion < 0 || r.DefaultColumnWidthProportion > 1 {
		return fmt.Errorf("default_column_width_proportion must be in (0, 1]")
	}
	if r.DefaultColumnWidthFixed < 0 {
		return fmt.Errorf("default_column_width_fixed must be >= 0")
	}
	return nil
}

// Placement is the resolved effect of the window rules on one window.
type Placement struct {
	Width  *layout.ColumnWidth
	Output layout.OutputID
}

type compiledRule struct {
	appID *regexp.Regexp
	title *regexp.Regexp
	rule  WindowRule
}

// Rules is the compiled window-rule list, ready for matching on the open
// path. Compile once per config load.
type Rules struct {
	rules []compiledRule
}

// CompileRules compiles the rule regexes. The config must have passed
// Validate, so compile errors are reported but not expected.
func CompileRules(rules []WindowRule) (*Rules, error) {
	r := &Rules{}
	for i, wr := range rules {
		var cr compiledRule
		cr.rule = wr
		var err error
		if wr.Match.AppID != "" {
			if cr.appID, err = regexp.Compile(wr.Match.AppID); err != nil {
				return nil, fmt.Errorf("window_rules[%d]: match.app_id: %w", i, err)
			}
		}
		if wr.Match.Title != "" {
			if cr.title, err = regexp.Compile(wr.Match.Title); err != nil {
				return nil, fmt.Errorf("window_rules[%d]: match.title: %w", i, err)
			}
		}
		r.rules = append(r.rules, cr)
	}
	return r, nil
}

// Resolve runs every rule against the window in order; later matches win per
// property. The zero Placement means "no overrides".
func (r *Rules) Resolve(appID, title string) Placement {
	var p Placement
	if r == nil {
		return p
	}
	for _, cr := range r.rules {
		if cr.appID != nil && !cr.appID.MatchString(appID) {
			continue
		}
		if cr.title != nil && !cr.title.MatchString(title) {
			continue
		}
		if cr.rule.DefaultColumnWidthProportion > 0 {
			p.Width = &layout.ColumnWidth{Mode: layout.WidthProportional, Value: cr.rule.DefaultColumnWidthProportion}
		}
		if cr.rule.DefaultColumnWidthFixed > 0 {
			p.Width = &layout.ColumnWidth{Mode: layout.WidthFixed, Value: cr.rule.DefaultColumnWidthFixed}
		}
		if cr.rule.OpenOnOutput != "" {
			p.Output = layout.OutputID(cr.rule.OpenOnOutput)
		}
	}
	return p
}
