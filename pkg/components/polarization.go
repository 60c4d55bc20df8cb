package components

import (
	"math"
	"math/cmplx"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Waveplate applies a Jones retarder matrix at FastAxisAngleRad
// (measured from local X) with phase retardance RetardanceRad between
// its fast and slow axes — spec.md §4.4's waveplate entry, generalized
// to any retardance (quarter-wave = pi/2, half-wave = pi) rather than
// two hardcoded special cases.
type Waveplate struct {
	scenegraph.Base

	RadiusMM        float64
	FastAxisAngleRad float64
	RetardanceRad   float64
}

func NewWaveplate(name string, pose core.Pose, radiusMM, fastAxisAngleRad, retardanceRad float64) *Waveplate {
	bounds := core.NewAABB(core.NewVec3(-radiusMM, -radiusMM, -1e-3), core.NewVec3(radiusMM, radiusMM, 1e-3))
	return &Waveplate{
		Base:             scenegraph.NewBase(name, pose, bounds, 0),
		RadiusMM:         radiusMM,
		FastAxisAngleRad: fastAxisAngleRad,
		RetardanceRad:    retardanceRad,
	}
}

func (w *Waveplate) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	return intersectDiscLocal(localRay, 0, w.RadiusMM)
}

func (w *Waveplate) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	child := ray.CloneForChild(hit.WorldPoint, ray.Direction)
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	child.Polarization = applyRetarder(ray.Polarization, w.FastAxisAngleRad, w.RetardanceRad)
	return core.InteractionResult{Rays: []core.Ray{child}, Passthrough: true}
}

func (w *Waveplate) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Symmetric(core.IdentityABCD), true }
func (w *Waveplate) ApertureRadiusMM() (float64, bool)         { return w.RadiusMM, true }
func (w *Waveplate) TypeName() string                           { return "waveplate" }

// applyRetarder rotates the Jones vector into the waveplate's
// fast/slow-axis frame, applies the retardance as a relative phase on
// the slow component, then rotates back.
func applyRetarder(j core.Jones, fastAxisAngleRad, retardanceRad float64) core.Jones {
	cosT, sinT := math.Cos(fastAxisAngleRad), math.Sin(fastAxisAngleRad)
	fast := j.Ex*complex(cosT, 0) + j.Ey*complex(sinT, 0)
	slow := -j.Ex*complex(sinT, 0) + j.Ey*complex(cosT, 0)
	slow *= cmplx.Exp(complex(0, retardanceRad))
	ex := fast*complex(cosT, 0) - slow*complex(sinT, 0)
	ey := fast*complex(sinT, 0) + slow*complex(cosT, 0)
	return core.Jones{Ex: ex, Ey: ey}
}

// Polarizer passes only the Jones component aligned with its
// TransmissionAxisAngleRad and removes the orthogonal component
// entirely (an ideal linear polarizer).
type Polarizer struct {
	scenegraph.Base

	RadiusMM                 float64
	TransmissionAxisAngleRad float64
}

func NewPolarizer(name string, pose core.Pose, radiusMM, transmissionAxisAngleRad float64) *Polarizer {
	bounds := core.NewAABB(core.NewVec3(-radiusMM, -radiusMM, -1e-3), core.NewVec3(radiusMM, radiusMM, 1e-3))
	return &Polarizer{
		Base:                     scenegraph.NewBase(name, pose, bounds, 0),
		RadiusMM:                 radiusMM,
		TransmissionAxisAngleRad: transmissionAxisAngleRad,
	}
}

func (p *Polarizer) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	return intersectDiscLocal(localRay, 0, p.RadiusMM)
}

func (p *Polarizer) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	cosT, sinT := math.Cos(p.TransmissionAxisAngleRad), math.Sin(p.TransmissionAxisAngleRad)
	aligned := ray.Polarization.Ex*complex(cosT, 0) + ray.Polarization.Ey*complex(sinT, 0)
	transmitted := core.Jones{
		Ex: aligned * complex(cosT, 0),
		Ey: aligned * complex(sinT, 0),
	}

	child := ray.CloneForChild(hit.WorldPoint, ray.Direction)
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	child.Polarization = transmitted
	child.Intensity = ray.Intensity * transmitted.Intensity() / math.Max(ray.Polarization.Intensity(), 1e-12)
	if child.Intensity <= core.MinThroughput {
		return core.InteractionResult{}
	}
	return core.InteractionResult{Rays: []core.Ray{child}, Passthrough: true}
}

func (p *Polarizer) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Symmetric(core.IdentityABCD), true }
func (p *Polarizer) ApertureRadiusMM() (float64, bool)         { return p.RadiusMM, true }
func (p *Polarizer) TypeName() string                           { return "polarizer" }
