package components

import (
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Objective is a compound body: a sequence of internal refracting
// elements (typically SphericalLens/CylindricalLens values) positioned
// in the objective's own local frame, plus the aggregate specs a real
// microscope/camera objective is spec'd by (working distance, NA,
// magnification, parfocal distance) that spec.md §4.4 calls out and
// that don't fall naturally out of the element list alone. Intersect
// dispatches to whichever internal element is nearest, the same
// "parallel candidate list, pick smallest t" shape scenegraph.Scene
// itself uses one level up.
type Objective struct {
	scenegraph.Base

	Elements              []scenegraph.Component
	WorkingDistanceMM     float64
	NA                    float64
	MagnificationX        float64
	ParfocalDistanceMM    float64
}

func NewObjective(name string, pose core.Pose, elements []scenegraph.Component, workingDistanceMM, na, magnificationX, parfocalDistanceMM float64) *Objective {
	bounds := core.NewAABBFromPoints(core.NewVec3(-25, -25, 0), core.NewVec3(25, 25, parfocalDistanceMM))
	return &Objective{
		Base:               scenegraph.NewBase(name, pose, bounds, 0),
		Elements:           elements,
		WorkingDistanceMM:  workingDistanceMM,
		NA:                 na,
		MagnificationX:     magnificationX,
		ParfocalDistanceMM: parfocalDistanceMM,
	}
}

// elementCode packs an element index and its own sub-surface index
// into the single int HitRecord.SurfaceIndex carries, so Interact can
// recover both without mutable shared state on the Objective itself
// (multiple rays may be in flight against the same Objective at once).
func elementCode(elementIndex, subSurfaceIndex int) int {
	return elementIndex*8 + (subSurfaceIndex + 1)
}

func decodeElementCode(code int) (elementIndex, subSurfaceIndex int) {
	return code / 8, code%8 - 1
}

func (o *Objective) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	var candidates []struct {
		Hit core.HitRecord
		OK  bool
	}
	for i, el := range o.Elements {
		subLocalRay := el.Pose().ToLocal(localRay)
		hit, ok := el.Intersect(subLocalRay)
		if !ok {
			candidates = append(candidates, struct {
				Hit core.HitRecord
				OK  bool
			}{core.HitRecord{}, false})
			continue
		}
		l2p := el.Pose().LocalToWorld()
		hit.LocalPoint = l2p.TransformPoint(hit.LocalPoint)
		hit.LocalNormal = l2p.TransformDirection(hit.LocalNormal).Normalize()
		subIdx := hit.SurfaceIndex
		hit.SurfaceIndex = elementCode(i, subIdx)
		candidates = append(candidates, struct {
			Hit core.HitRecord
			OK  bool
		}{hit, true})
	}
	return nearestOf(candidates...)
}

func (o *Objective) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	elementIndex, subSurfaceIndex := decodeElementCode(hit.SurfaceIndex)
	if elementIndex < 0 || elementIndex >= len(o.Elements) {
		return core.InteractionResult{}
	}
	subHit := hit
	subHit.SurfaceIndex = subSurfaceIndex
	return o.Elements[elementIndex].Interact(ray, subHit)
}

func (o *Objective) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	tangential := core.IdentityABCD
	sagittal := core.IdentityABCD
	for _, el := range o.Elements {
		a, ok := el.ABCD(ray)
		if !ok {
			continue
		}
		tangential = a.Tangential.Mul(tangential)
		sagittal = a.Sagittal.Mul(sagittal)
	}
	return core.Astigmatic{Tangential: tangential, Sagittal: sagittal}, true
}

func (o *Objective) ApertureRadiusMM() (float64, bool) {
	na := o.NA
	if na <= 0 || na >= 1 {
		return 0, false
	}
	// Paraxial back-aperture radius implied by NA and working distance.
	return o.WorkingDistanceMM * na, true
}

func (o *Objective) TypeName() string { return "objective" }
