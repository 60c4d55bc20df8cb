// Package animator drives time-varying component properties (spec.md
// §4.9): an ordered list of channels, each easing one property of one
// named component over a period, evaluated against a single
// monotonically advancing clock. Property is the compile-time
// enumeration Design Note §9 asks for in place of the source's
// dot-addressed runtime property paths; setProperty is the matching
// dispatcher, covering exactly the documented kinds (position/rotation
// axes plus the scanner-specific angles spec.md §4.4 introduces).
package animator

import (
	"math"

	"github.com/optobench/opticore/pkg/components"
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Property is the closed set of animatable quantities. Position and
// rotation apply to any component whose embedded scenegraph.Base
// exposes SetPosition/SetRotation (i.e. every concrete component);
// the remaining four are the runtime-driven scanner angles spec.md
// §4.4 names (Galvo.ScanAngleRad, DualGalvo's two axes,
// PolygonScanner.RotationAngleRad).
type Property int

const (
	PositionX Property = iota
	PositionY
	PositionZ
	RotationEulerX
	RotationEulerY
	RotationEulerZ
	GalvoScanAngleRad
	DualGalvoScanAngleXRad
	DualGalvoScanAngleYRad
	PolygonScannerRotationAngleRad
)

// Easing is one of the three curves spec.md §4.9 names.
type Easing int

const (
	Linear Easing = iota
	Sinusoidal
	Discrete
)

// Channel animates one property of one component over PeriodMS,
// evaluated against the Animator's shared clock.
type Channel struct {
	ID          string
	ComponentID string
	Prop        Property
	From, To    float64
	PeriodMS    float64
	Repeat      bool
	Easing      Easing
	// DiscreteSteps is N for Easing == Discrete (filter-wheel style
	// step animation); ignored otherwise.
	DiscreteSteps int
	// Restore, when true, writes the property back to its
	// pre-animation value when this channel is removed.
	Restore bool

	preValue     float64
	havePreValue bool
}

// phase maps the shared clock to this channel's t in [0,1]: repeat
// folds the clock modulo the period into [0,1), non-repeat clamps at 1.
func phase(clockMS, periodMS float64, repeat bool) float64 {
	if periodMS <= 0 {
		return 0
	}
	raw := clockMS / periodMS
	if repeat {
		return raw - math.Floor(raw)
	}
	if raw > 1 {
		return 1
	}
	if raw < 0 {
		return 0
	}
	return raw
}

// evaluate applies the channel's easing to t in [0,1].
func evaluate(easing Easing, from, to, t float64, discreteSteps int) float64 {
	rng := to - from
	switch easing {
	case Sinusoidal:
		return (from+to)/2 + (rng/2)*math.Sin(2*math.Pi*t)
	case Discrete:
		n := discreteSteps
		if n < 2 {
			n = 2
		}
		step := math.Floor(t * float64(n))
		if step > float64(n-1) {
			step = float64(n - 1)
		}
		return from + step*rng/float64(n-1)
	default: // Linear
		return from + rng*t
	}
}

// positionSettable and rotationSettable match scenegraph.Base's
// exported mutators; every concrete component satisfies both via
// embedding, so a failed type assertion here only ever means the
// caller passed something that isn't a real scene component.
type positionSettable interface{ SetPosition(core.Vec3) }
type rotationSettable interface{ SetRotation(core.Quaternion) }

// Animator holds the channel list and the shared clock. RestRotation
// and per-axis Euler state are tracked per component id here rather
// than on the component itself, since a Quaternion can't be split back
// into three independently-settable axes the way a Vec3 position can.
type Animator struct {
	ClockMS float64

	channels      []*Channel
	restRotations map[string]core.Quaternion
	eulerState    map[string]*core.Vec3
}

func NewAnimator() *Animator {
	return &Animator{
		restRotations: make(map[string]core.Quaternion),
		eulerState:    make(map[string]*core.Vec3),
	}
}

// AddChannel appends ch to the animator's channel list, capturing the
// property's current value first if ch.Restore is set.
func (a *Animator) AddChannel(ch *Channel, scene *scenegraph.Scene) {
	if ch.Restore {
		if component := scene.ByID(ch.ComponentID); component != nil {
			if v, ok := a.getProperty(component, ch.Prop); ok {
				ch.preValue = v
				ch.havePreValue = true
			}
		}
	}
	a.channels = append(a.channels, ch)
}

// RemoveChannel drops the channel with the given id, restoring its
// property's pre-animation value first if it was added with Restore
// set. Returns false if no channel with that id was found.
func (a *Animator) RemoveChannel(id string, scene *scenegraph.Scene) bool {
	for i, ch := range a.channels {
		if ch.ID != id {
			continue
		}
		if ch.Restore && ch.havePreValue {
			if component := scene.ByID(ch.ComponentID); component != nil {
				a.setProperty(component, ch.Prop, ch.preValue)
			}
		}
		a.channels = append(a.channels[:i], a.channels[i+1:]...)
		return true
	}
	return false
}

// Tick advances the clock by dtMS, evaluates every channel, resolves
// its target component by id, and applies the eased value. Returns
// true if any property actually changed, so the caller knows whether
// to re-run Solver 1/2/3.
func (a *Animator) Tick(dtMS float64, scene *scenegraph.Scene) bool {
	a.ClockMS += dtMS
	changed := false
	for _, ch := range a.channels {
		component := scene.ByID(ch.ComponentID)
		if component == nil {
			continue
		}
		t := phase(a.ClockMS, ch.PeriodMS, ch.Repeat)
		value := evaluate(ch.Easing, ch.From, ch.To, t, ch.DiscreteSteps)
		if a.setProperty(component, ch.Prop, value) {
			changed = true
		}
	}
	return changed
}

// setProperty is the set_property(component, Property, f64) dispatcher
// Design Note §9 asks for, covering exactly the Property kinds above.
func (a *Animator) setProperty(component scenegraph.Component, prop Property, value float64) bool {
	switch prop {
	case PositionX, PositionY, PositionZ:
		setter, ok := component.(positionSettable)
		if !ok {
			return false
		}
		pos := component.Pose().Position
		switch prop {
		case PositionX:
			pos.X = value
		case PositionY:
			pos.Y = value
		case PositionZ:
			pos.Z = value
		}
		setter.SetPosition(pos)
		return true

	case RotationEulerX, RotationEulerY, RotationEulerZ:
		setter, ok := component.(rotationSettable)
		if !ok {
			return false
		}
		id := component.ID()
		rest, known := a.restRotations[id]
		if !known {
			rest = component.Pose().Rotation
			a.restRotations[id] = rest
		}
		euler := a.eulerState[id]
		if euler == nil {
			zero := core.Vec3{}
			euler = &zero
			a.eulerState[id] = euler
		}
		switch prop {
		case RotationEulerX:
			euler.X = value
		case RotationEulerY:
			euler.Y = value
		case RotationEulerZ:
			euler.Z = value
		}
		rotation := rest.
			Mul(core.FromAxisAngle(core.NewVec3(1, 0, 0), euler.X)).
			Mul(core.FromAxisAngle(core.NewVec3(0, 1, 0), euler.Y)).
			Mul(core.FromAxisAngle(core.NewVec3(0, 0, 1), euler.Z))
		setter.SetRotation(rotation)
		return true

	case GalvoScanAngleRad:
		g, ok := component.(*components.Galvo)
		if !ok {
			return false
		}
		g.SetScanAngleRad(value)
		return true

	case DualGalvoScanAngleXRad:
		dg, ok := component.(*components.DualGalvo)
		if !ok {
			return false
		}
		dg.First.SetScanAngleRad(value)
		return true

	case DualGalvoScanAngleYRad:
		dg, ok := component.(*components.DualGalvo)
		if !ok {
			return false
		}
		dg.Second.SetScanAngleRad(value)
		return true

	case PolygonScannerRotationAngleRad:
		ps, ok := component.(*components.PolygonScanner)
		if !ok {
			return false
		}
		ps.SetRotationAngleRad(value)
		return true
	}
	return false
}

// getProperty reads a property's current value, used only to capture
// the pre-animation value a Restore-flagged channel writes back on
// removal.
func (a *Animator) getProperty(component scenegraph.Component, prop Property) (float64, bool) {
	switch prop {
	case PositionX:
		return component.Pose().Position.X, true
	case PositionY:
		return component.Pose().Position.Y, true
	case PositionZ:
		return component.Pose().Position.Z, true

	case RotationEulerX, RotationEulerY, RotationEulerZ:
		euler := a.eulerState[component.ID()]
		if euler == nil {
			return 0, true
		}
		switch prop {
		case RotationEulerX:
			return euler.X, true
		case RotationEulerY:
			return euler.Y, true
		default:
			return euler.Z, true
		}

	case GalvoScanAngleRad:
		if g, ok := component.(*components.Galvo); ok {
			return g.ScanAngleRad, true
		}
	case DualGalvoScanAngleXRad:
		if dg, ok := component.(*components.DualGalvo); ok {
			return dg.First.ScanAngleRad, true
		}
	case DualGalvoScanAngleYRad:
		if dg, ok := component.(*components.DualGalvo); ok {
			return dg.Second.ScanAngleRad, true
		}
	case PolygonScannerRotationAngleRad:
		if ps, ok := component.(*components.PolygonScanner); ok {
			return ps.RotationAngleRad, true
		}
	}
	return 0, false
}
