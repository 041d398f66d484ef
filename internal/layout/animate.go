package layout

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimationParams describes how one class of animated scalar moves: how long
// a transition takes and which easing curve shapes it.
type AnimationParams struct {
	Duration time.Duration
	Ease     ease.TweenFunc
}

// Disabled reports whether animations of this class complete instantly.
func (p AnimationParams) Disabled() bool {
	return p.Duration <= 0
}

// animated is a single animated scalar. It is either at rest (tween == nil,
// current == target) or running a tween toward target. Setting a new target
// while running retargets in place: the in-flight value becomes the new
// tween's starting point, so rapid successive actions never cause a visual
// jump back to the pre-animation value.
type animated struct {
	current float64
	target  float64
	tween   *gween.Tween
}

// newAnimated returns a scalar at rest on v.
func newAnimated(v float64) animated {
	return animated{current: v, target: v}
}

// Current returns the in-flight value.
func (a *animated) Current() float64 { return a.current }

// Target returns the value the scalar is heading toward.
func (a *animated) Target() float64 { return a.target }

// Running reports whether a transition is in progress.
func (a *animated) Running() bool { return a.tween != nil }

// Set retargets the scalar toward v. A no-op when v is already the target.
// With animations disabled (or a zero-length distance) the scalar snaps.
func (a *animated) Set(v float64, p AnimationParams) {
	if a.target == v {
		return
	}
	a.target = v
	if p.Disabled() || a.current == v {
		a.Snap(v)
		return
	}
	fn := p.Ease
	if fn == nil {
		fn = ease.OutCubic
	}
	a.tween = gween.New(float32(a.current), float32(v), float32(p.Duration.Seconds()), fn)
}

// Snap moves the scalar to v immediately, cancelling any running tween.
func (a *animated) Snap(v float64) {
	a.current = v
	a.target = v
	a.tween = nil
}

// Tick advances the scalar by dt and reports whether it is still running.
// Ticking with dt == 0 leaves the value unchanged.
func (a *animated) Tick(dt time.Duration) bool {
	if a.tween == nil {
		return false
	}
	if dt <= 0 {
		return true
	}
	v, done := a.tween.Update(float32(dt.Seconds()))
	a.current = float64(v)
	if done {
		a.current = a.target
		a.tween = nil
		return false
	}
	return true
}
