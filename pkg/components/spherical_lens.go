package components

import (
	"math"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// SphericalLens is a thick spherical-surfaced refractor: a front cap at
// local z=0, a back cap at local z=ThicknessMM, and an absorbing rim
// cylinder joining them. A zero radius means that face is flat. Follows
// the teacher's Dielectric.Scatter reflect-or-refract branch (see
// pkg/material/dielectric.go) but, per spec.md §4.5's recursive
// branching model, emits BOTH the reflected and refracted child rays
// (weighted by Fresnel reflectance) rather than stochastically picking
// one — Solver 3 is the one that later collapses this list with
// core.WeightedChoice.
type SphericalLens struct {
	scenegraph.Base

	FrontRadiusMM    float64
	BackRadiusMM     float64
	ThicknessMM      float64
	ApertureRadiusMM_ float64
	RefractiveIndex  float64
	Dispersion       core.Dispersion
}

// NewSphericalLens builds a lens whose index is fixed at refractiveIndex
// (abbeNumber <= 0) or follows a Cauchy dispersion curve anchored at
// refractiveIndex with the given Abbe number otherwise.
func NewSphericalLens(name string, pose core.Pose, frontRadiusMM, backRadiusMM, thicknessMM, apertureRadiusMM, refractiveIndex, abbeNumber, absorptionCoefficient float64) *SphericalLens {
	bounds := core.NewAABB(
		core.NewVec3(-apertureRadiusMM, -apertureRadiusMM, -apertureRadiusMM),
		core.NewVec3(apertureRadiusMM, apertureRadiusMM, thicknessMM+apertureRadiusMM),
	)
	return &SphericalLens{
		Base:              scenegraph.NewBase(name, pose, bounds, absorptionCoefficient),
		FrontRadiusMM:     frontRadiusMM,
		BackRadiusMM:      backRadiusMM,
		ThicknessMM:       thicknessMM,
		ApertureRadiusMM_: apertureRadiusMM,
		RefractiveIndex:   refractiveIndex,
		Dispersion:        core.NewDispersion(refractiveIndex, abbeNumber),
	}
}

// RefractiveIndexAt reports this lens's index at the ray's wavelength,
// implementing solver2's RefractiveBody interface.
func (l *SphericalLens) RefractiveIndexAt(wavelengthM float64) float64 {
	return l.Dispersion.IndexAt(core.MToNm(wavelengthM))
}

func capExtent(vertexZ, radiusOfCurvatureMM, apertureRadiusMM float64) (centerZ, capZMin, capZMax float64) {
	if math.Abs(radiusOfCurvatureMM) < 1e-9 {
		return vertexZ, vertexZ, vertexZ
	}
	sag := apertureRadiusMM * apertureRadiusMM / (2 * math.Abs(radiusOfCurvatureMM))
	centerZ = vertexZ + radiusOfCurvatureMM
	if radiusOfCurvatureMM > 0 {
		return centerZ, vertexZ, vertexZ + sag
	}
	return centerZ, vertexZ-sag, vertexZ
}

func (l *SphericalLens) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	var candidates []struct {
		Hit core.HitRecord
		OK  bool
	}

	frontCenterZ, frontZMin, frontZMax := capExtent(0, l.FrontRadiusMM, l.ApertureRadiusMM_)
	if math.Abs(l.FrontRadiusMM) < 1e-9 {
		hit, ok := intersectDiscLocal(localRay, 0, l.ApertureRadiusMM_)
		hit.SurfaceIndex = 0
		candidates = append(candidates, struct {
			Hit core.HitRecord
			OK  bool
		}{hit, ok})
	} else {
		hit, ok := sphericalCapHit(localRay, frontCenterZ, l.FrontRadiusMM, l.ApertureRadiusMM_, frontZMin, frontZMax)
		hit.SurfaceIndex = 0
		candidates = append(candidates, struct {
			Hit core.HitRecord
			OK  bool
		}{hit, ok})
	}

	// Back face: radius sign is relative to light travelling toward +Z,
	// so flip it the way a textbook lensmaker convention does for the
	// second surface.
	backCenterZ, backZMin, backZMax := capExtent(l.ThicknessMM, -l.BackRadiusMM, l.ApertureRadiusMM_)
	if math.Abs(l.BackRadiusMM) < 1e-9 {
		hit, ok := intersectDiscLocal(localRay, l.ThicknessMM, l.ApertureRadiusMM_)
		hit.SurfaceIndex = 1
		candidates = append(candidates, struct {
			Hit core.HitRecord
			OK  bool
		}{hit, ok})
	} else {
		hit, ok := sphericalCapHit(localRay, backCenterZ, -l.BackRadiusMM, l.ApertureRadiusMM_, backZMin, backZMax)
		hit.SurfaceIndex = 1
		candidates = append(candidates, struct {
			Hit core.HitRecord
			OK  bool
		}{hit, ok})
	}

	if hit, ok := cylinderRimHit(localRay, l.ApertureRadiusMM_, frontZMin, backZMax); ok {
		hit.SurfaceIndex = -1
		candidates = append(candidates, struct {
			Hit core.HitRecord
			OK  bool
		}{hit, true})
	}

	return nearestOf(candidates...)
}

func (l *SphericalLens) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	if hit.SurfaceIndex == -1 {
		return core.InteractionResult{}
	}

	unitDir := ray.Direction.Normalize()
	index := l.RefractiveIndexAt(ray.WavelengthM)
	var etaiOverEtat float64
	if hit.FrontFace {
		etaiOverEtat = 1.0 / index
	} else {
		etaiOverEtat = index
	}

	cosTheta := math.Min(-unitDir.Dot(hit.WorldNormal), 1.0)
	reflectance := core.Reflectance(cosTheta, etaiOverEtat)

	intensity := ray.Intensity
	if hit.SurfaceIndex == 1 && ray.EntryPoint != nil {
		pathLengthMM := hit.WorldPoint.Subtract(*ray.EntryPoint).Length()
		intensity *= math.Exp(-l.AbsorptionCoefficient() * pathLengthMM)
	}

	var rays []core.Ray

	reflected := core.Reflect(unitDir, hit.WorldNormal)
	reflectedChild := ray.CloneForChild(hit.WorldPoint, reflected)
	reflectedChild.Polarization = ray.Polarization
	reflectedChild.OpticalPathLengthMM += hit.T
	reflectedChild.IsMainRay = false
	reflectedChild.Intensity = intensity * reflectance
	if reflectedChild.Intensity > core.MinThroughput {
		rays = append(rays, reflectedChild)
	}

	if refracted, ok := core.Refract(unitDir, hit.WorldNormal, etaiOverEtat); ok {
		refractedChild := ray.CloneForChild(hit.WorldPoint, refracted)
		refractedChild.Polarization = ray.Polarization
		refractedChild.OpticalPathLengthMM += hit.T * l.opticalPathFactor(ray, index)
		refractedChild.IsMainRay = ray.IsMainRay
		refractedChild.Intensity = intensity * (1 - reflectance)
		if hit.SurfaceIndex == 0 {
			entry := hit.WorldPoint
			refractedChild.EntryPoint = &entry
		}
		if refractedChild.Intensity > core.MinThroughput {
			rays = append(rays, refractedChild)
		}
	}

	return core.InteractionResult{Rays: rays}
}

// opticalPathFactor scales the geometric segment length by the local
// refractive index so OpticalPathLengthMM accumulates true optical path
// rather than geometric path, matching spec.md §4.5/§4.6's OPL
// definition.
func (l *SphericalLens) opticalPathFactor(ray core.Ray, index float64) float64 {
	if ray.EntryPoint != nil {
		return index
	}
	return 1.0
}

func (l *SphericalLens) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	n := l.RefractiveIndex
	frontPower := (n - 1) / l.FrontRadiusMM
	if math.Abs(l.FrontRadiusMM) < 1e-9 {
		frontPower = 0
	}
	backPower := (1 - n) / l.BackRadiusMM
	if math.Abs(l.BackRadiusMM) < 1e-9 {
		backPower = 0
	}
	front := core.ABCD{A: 1, B: 0, C: -frontPower, D: 1}
	gap := core.Translation(l.ThicknessMM, n)
	back := core.ABCD{A: 1, B: 0, C: -backPower, D: 1}
	combined := back.Mul(gap.Mul(front))
	return core.Symmetric(combined), true
}

func (l *SphericalLens) ApertureRadiusMM() (float64, bool) { return l.ApertureRadiusMM_, true }
func (l *SphericalLens) TypeName() string                  { return "spherical_lens" }
