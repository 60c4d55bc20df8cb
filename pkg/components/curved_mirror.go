package components

import (
	"math"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// CurvedMirror is a spherical-cap reflector. Its vertex sits at local
// z=0 with the sphere of curvature centered at (0,0,-RadiusOfCurvatureMM);
// a positive radius is concave toward -Z (converging for light arriving
// from -Z), matching the sign convention the teacher's dielectric code
// uses for front/back face curvature. Rim hits (outside the aperture,
// inside a housing cylinder) are absorbed.
type CurvedMirror struct {
	scenegraph.Base

	RadiusOfCurvatureMM float64
	ApertureRadiusMM_   float64
	HousingDepthMM      float64
}

func NewCurvedMirror(name string, pose core.Pose, radiusOfCurvatureMM, apertureRadiusMM, housingDepthMM float64) *CurvedMirror {
	sag := apertureRadiusMM * apertureRadiusMM / (2 * math.Abs(radiusOfCurvatureMM))
	bounds := core.NewAABB(
		core.NewVec3(-apertureRadiusMM, -apertureRadiusMM, -sag),
		core.NewVec3(apertureRadiusMM, apertureRadiusMM, housingDepthMM),
	)
	return &CurvedMirror{
		Base:                scenegraph.NewBase(name, pose, bounds, 0),
		RadiusOfCurvatureMM: radiusOfCurvatureMM,
		ApertureRadiusMM_:   apertureRadiusMM,
		HousingDepthMM:      housingDepthMM,
	}
}

func (m *CurvedMirror) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	if math.Abs(m.RadiusOfCurvatureMM) < 1e-9 {
		return intersectDiscLocal(localRay, 0, m.ApertureRadiusMM_)
	}

	sag := m.ApertureRadiusMM_ * m.ApertureRadiusMM_ / (2 * math.Abs(m.RadiusOfCurvatureMM))
	var capZMin, capZMax float64
	if m.RadiusOfCurvatureMM > 0 {
		capZMin, capZMax = -sag, 0
	} else {
		capZMin, capZMax = 0, sag
	}

	if hit, ok := sphericalCapHit(localRay, -m.RadiusOfCurvatureMM, m.RadiusOfCurvatureMM, m.ApertureRadiusMM_, capZMin, capZMax); ok {
		return hit, true
	}

	// Rim: the housing cylinder behind the cap, absorbed.
	if hit, ok := cylinderRimHit(localRay, m.ApertureRadiusMM_, capZMin, m.HousingDepthMM); ok {
		hit.SurfaceIndex = -1 // sentinel marking an absorbing rim hit
		return hit, true
	}
	return core.HitRecord{}, false
}

func (m *CurvedMirror) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	if hit.SurfaceIndex == -1 {
		// Rim hit: absorbed, no child ray to spawn.
		return core.InteractionResult{}
	}

	reflected := core.Reflect(ray.Direction, hit.WorldNormal)
	child := ray.CloneForChild(hit.WorldPoint, reflected)
	child.Polarization = ray.Polarization.Negate()
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	return core.InteractionResult{Rays: []core.Ray{child}}
}

func (m *CurvedMirror) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	if math.Abs(m.RadiusOfCurvatureMM) < 1e-9 {
		return core.Symmetric(core.IdentityABCD), true
	}
	abcd := core.ABCD{A: 1, B: 0, C: -2 / m.RadiusOfCurvatureMM, D: 1}
	return core.Symmetric(abcd), true
}

func (m *CurvedMirror) ApertureRadiusMM() (float64, bool) { return m.ApertureRadiusMM_, true }
func (m *CurvedMirror) TypeName() string                  { return "curved_mirror" }
