package components

import (
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Mirror is a flat circular or rectangular reflector. Reflects with a
// pi phase shift, applied by negating both Jones components (spec.md
// §4.4's "Mirror" entry).
type Mirror struct {
	scenegraph.Base

	Circular       bool
	RadiusMM       float64
	HalfWidthMM    float64
	HalfHeightMM   float64
}

func NewCircularMirror(name string, pose core.Pose, radiusMM float64) *Mirror {
	bounds := core.NewAABB(core.NewVec3(-radiusMM, -radiusMM, -1e-3), core.NewVec3(radiusMM, radiusMM, 1e-3))
	return &Mirror{
		Base:     scenegraph.NewBase(name, pose, bounds, 0),
		Circular: true,
		RadiusMM: radiusMM,
	}
}

func NewRectangularMirror(name string, pose core.Pose, halfWidthMM, halfHeightMM float64) *Mirror {
	bounds := core.NewAABB(core.NewVec3(-halfWidthMM, -halfHeightMM, -1e-3), core.NewVec3(halfWidthMM, halfHeightMM, 1e-3))
	return &Mirror{
		Base:         scenegraph.NewBase(name, pose, bounds, 0),
		Circular:     false,
		HalfWidthMM:  halfWidthMM,
		HalfHeightMM: halfHeightMM,
	}
}

func (m *Mirror) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	if m.Circular {
		return intersectDiscLocal(localRay, 0, m.RadiusMM)
	}
	return intersectRectLocal(localRay, 0, m.HalfWidthMM, m.HalfHeightMM)
}

func (m *Mirror) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	reflected := core.Reflect(ray.Direction, hit.WorldNormal)
	child := ray.CloneForChild(hit.WorldPoint, reflected)
	child.Polarization = ray.Polarization.Negate()
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	return core.InteractionResult{Rays: []core.Ray{child}}
}

func (m *Mirror) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	return core.Symmetric(core.IdentityABCD), true
}

func (m *Mirror) ApertureRadiusMM() (float64, bool) {
	if m.Circular {
		return m.RadiusMM, true
	}
	return 0, false
}

func (m *Mirror) TypeName() string { return "mirror" }
