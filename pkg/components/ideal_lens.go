package components

import (
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// IdealLens is a thin-lens abstraction with no physical thickness or
// surface curvature: every ray through the aperture bends toward a
// single focal point on the optical axis, per spec.md §4.4's "ideal
// lens" entry — useful for system layout before committing to a real
// glass prescription.
type IdealLens struct {
	scenegraph.Base

	ApertureRadiusMM_ float64
	FocalLengthMM     float64
}

func NewIdealLens(name string, pose core.Pose, apertureRadiusMM, focalLengthMM float64) *IdealLens {
	bounds := core.NewAABB(
		core.NewVec3(-apertureRadiusMM, -apertureRadiusMM, -1e-3),
		core.NewVec3(apertureRadiusMM, apertureRadiusMM, 1e-3),
	)
	return &IdealLens{
		Base:              scenegraph.NewBase(name, pose, bounds, 0),
		ApertureRadiusMM_: apertureRadiusMM,
		FocalLengthMM:     focalLengthMM,
	}
}

func (l *IdealLens) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	return intersectDiscLocal(localRay, 0, l.ApertureRadiusMM_)
}

func (l *IdealLens) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	// The focal point lies on the local optical axis at z=FocalLengthMM,
	// lifted to world space through the same pose the hit was lifted
	// through.
	localFocus := core.NewVec3(0, 0, l.FocalLengthMM)
	worldFocus := l.Pose().LocalToWorld().TransformPoint(localFocus)

	direction := worldFocus.Subtract(hit.WorldPoint).Normalize()
	child := ray.CloneForChild(hit.WorldPoint, direction)
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	return core.InteractionResult{Rays: []core.Ray{child}, Passthrough: true}
}

func (l *IdealLens) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	abcd := core.ABCD{A: 1, B: 0, C: -1 / l.FocalLengthMM, D: 1}
	return core.Symmetric(abcd), true
}

func (l *IdealLens) ApertureRadiusMM() (float64, bool) { return l.ApertureRadiusMM_, true }
func (l *IdealLens) TypeName() string                   { return "ideal_lens" }
