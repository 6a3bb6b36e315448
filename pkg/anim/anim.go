// Package anim drives time-based layer animation through the plugin
// bus. A Timeline owns a set of tweens and advances them from the
// render manager's frame hook; each tween writes its interpolated value
// through a caller-supplied apply function, so any mutable layer
// property can animate.
package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/matzehuels/layercake/pkg/canvas"
)

// Tween animates one float value over a duration and applies it each
// frame. Create via [Timeline.Tween].
type Tween struct {
	tw    *gween.Tween
	apply func(float64)
	loop  bool
	done  bool
}

// SetLoop restarts the tween from its initial value whenever it
// finishes.
func (t *Tween) SetLoop(loop bool) *Tween { t.loop = loop; return t }

// Done reports whether the tween has finished and is not looping.
func (t *Tween) Done() bool { return t.done }

func (t *Tween) update(dt float64) {
	if t.done {
		return
	}
	val, finished := t.tw.Update(float32(dt))
	t.apply(float64(val))
	if finished {
		if t.loop {
			t.tw.Reset()
		} else {
			t.done = true
		}
	}
}

func (t *Tween) reset() {
	t.tw.Reset()
	t.done = false
}

// Timeline is a canvas plugin that advances tweens on every animated
// frame. Frame zero rewinds all tweens, so repeated renders of the same
// canvas replay the animation from the start.
type Timeline struct {
	tweens []*Tween
	lastT  float64
}

// NewTimeline returns an empty timeline. Register it with
// [canvas.Plugins.Use] before rendering.
func NewTimeline() *Timeline { return &Timeline{} }

func (tl *Timeline) Name() string    { return "timeline" }
func (tl *Timeline) Version() string { return "1.0.0" }

func (tl *Timeline) Install(*canvas.Canvas) error { return nil }

// Tween adds an animation from one value to another over duration
// seconds. fn shapes the interpolation (see gween/ease); apply receives
// the current value once per frame.
func (tl *Timeline) Tween(from, to, duration float64, fn ease.TweenFunc, apply func(float64)) *Tween {
	t := &Tween{tw: gween.New(float32(from), float32(to), float32(duration), fn), apply: apply}
	tl.tweens = append(tl.tweens, t)
	return t
}

// Len returns the number of registered tweens.
func (tl *Timeline) Len() int { return len(tl.tweens) }

// Done reports whether every tween has finished.
func (tl *Timeline) Done() bool {
	for _, t := range tl.tweens {
		if !t.done {
			return false
		}
	}
	return true
}

// Reset rewinds every tween to its initial value.
func (tl *Timeline) Reset() {
	tl.lastT = 0
	for _, t := range tl.tweens {
		t.reset()
	}
}

// OnAnimationFrame advances all tweens to the frame's timestamp. The
// hook receives absolute seconds; tweens advance by the delta since the
// previous frame.
func (tl *Timeline) OnAnimationFrame(_ *canvas.Canvas, frame int, t float64) {
	if frame == 0 {
		tl.Reset()
	}
	dt := t - tl.lastT
	tl.lastT = t
	for _, tw := range tl.tweens {
		tw.update(dt)
	}
}
