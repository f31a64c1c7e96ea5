package perch

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenOwner is anything whose fields a TweenGroup may write to.
type tweenOwner interface {
	Destroyed() bool
}

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenOpacity or TweenExtremes and call Update(dt) each frame; the chart
// runtime does this for tooltips and axes it owns. If the owner is
// destroyed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	ends   [4]float64
	owner  tweenOwner
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the owner has been destroyed, Done is set and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}

	if g.owner != nil && g.owner.Destroyed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			*g.fields[i] = g.ends[i]
			continue
		}
		*g.fields[i] = float64(val)
		allDone = false
	}
	g.Done = allDone
}

// Finish jumps every field to its end value.
func (g *TweenGroup) Finish() {
	if g == nil || g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.ends[i]
	}
	g.Done = true
}

// TweenOpacity animates a tooltip's label opacity to the target value over
// duration seconds.
func TweenOpacity(t *Tooltip, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, owner: t}
	g.tweens[0] = gween.New(float32(t.opacity), float32(to), duration, fn)
	g.fields[0] = &t.opacity
	g.ends[0] = to
	return g
}

// TweenExtremes animates a linear axis' visible range to [min, max] over
// duration seconds.
func TweenExtremes(a *LinearAxis, min, max float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, owner: a}
	g.tweens[0] = gween.New(float32(a.min), float32(min), duration, fn)
	g.tweens[1] = gween.New(float32(a.max), float32(max), duration, fn)
	g.fields[0] = &a.min
	g.fields[1] = &a.max
	g.ends[0], g.ends[1] = min, max
	return g
}
