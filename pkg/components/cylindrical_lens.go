package components

import (
	"math"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// CylindricalLens curves only in the Y-Z plane (its cylinder axis runs
// along local X); the X direction is flat. Front and back faces are
// planes offset along Z when their radius is zero. Power is carried
// entirely by the tangential (Y-Z) plane; the sagittal (X-Z) plane sees
// an identity ABCD — the astigmatic split spec.md §9 requires for any
// non-rotationally-symmetric element.
type CylindricalLens struct {
	scenegraph.Base

	FrontRadiusMM    float64
	BackRadiusMM     float64
	ThicknessMM      float64
	HalfWidthMM      float64
	ApertureHeightMM float64
	RefractiveIndex  float64
	Dispersion       core.Dispersion
}

// NewCylindricalLens builds a lens whose index is fixed at
// refractiveIndex (abbeNumber <= 0) or follows a Cauchy dispersion
// curve anchored at refractiveIndex with the given Abbe number
// otherwise.
func NewCylindricalLens(name string, pose core.Pose, frontRadiusMM, backRadiusMM, thicknessMM, halfWidthMM, apertureHeightMM, refractiveIndex, abbeNumber, absorptionCoefficient float64) *CylindricalLens {
	bounds := core.NewAABB(
		core.NewVec3(-halfWidthMM, -apertureHeightMM, -apertureHeightMM),
		core.NewVec3(halfWidthMM, apertureHeightMM, thicknessMM+apertureHeightMM),
	)
	return &CylindricalLens{
		Base:             scenegraph.NewBase(name, pose, bounds, absorptionCoefficient),
		FrontRadiusMM:    frontRadiusMM,
		BackRadiusMM:     backRadiusMM,
		ThicknessMM:      thicknessMM,
		HalfWidthMM:      halfWidthMM,
		ApertureHeightMM: apertureHeightMM,
		RefractiveIndex:  refractiveIndex,
		Dispersion:       core.NewDispersion(refractiveIndex, abbeNumber),
	}
}

// RefractiveIndexAt reports this lens's index at the ray's wavelength,
// implementing solver2's RefractiveBody interface.
func (l *CylindricalLens) RefractiveIndexAt(wavelengthM float64) float64 {
	return l.Dispersion.IndexAt(core.MToNm(wavelengthM))
}

func (l *CylindricalLens) faceHit(localRay core.Ray, vertexZ, radiusOfCurvatureMM float64, surfaceIndex int) (core.HitRecord, bool) {
	if math.Abs(radiusOfCurvatureMM) < 1e-9 {
		hit, ok := intersectRectLocal(localRay, vertexZ, l.HalfWidthMM, l.ApertureHeightMM)
		hit.SurfaceIndex = surfaceIndex
		return hit, ok
	}
	centerZ, zMin, zMax := capExtent(vertexZ, radiusOfCurvatureMM, l.ApertureHeightMM)
	hit, ok := cylindricalCapHit(localRay, centerZ, radiusOfCurvatureMM, l.HalfWidthMM, l.ApertureHeightMM, zMin, zMax)
	hit.SurfaceIndex = surfaceIndex
	return hit, ok
}

func (l *CylindricalLens) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	front, frontOK := l.faceHit(localRay, 0, l.FrontRadiusMM, 0)
	back, backOK := l.faceHit(localRay, l.ThicknessMM, -l.BackRadiusMM, 1)

	return nearestOf(
		struct {
			Hit core.HitRecord
			OK  bool
		}{front, frontOK},
		struct {
			Hit core.HitRecord
			OK  bool
		}{back, backOK},
	)
}

func (l *CylindricalLens) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
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
	reflectedChild.IsMainRay = false
	reflectedChild.OpticalPathLengthMM += hit.T
	reflectedChild.Intensity = intensity * reflectance
	if reflectedChild.Intensity > core.MinThroughput {
		rays = append(rays, reflectedChild)
	}

	if refracted, ok := core.Refract(unitDir, hit.WorldNormal, etaiOverEtat); ok {
		refractedChild := ray.CloneForChild(hit.WorldPoint, refracted)
		refractedChild.OpticalPathLengthMM += hit.T
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

func (l *CylindricalLens) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	n := l.RefractiveIndex
	frontPower := 0.0
	if math.Abs(l.FrontRadiusMM) > 1e-9 {
		frontPower = (n - 1) / l.FrontRadiusMM
	}
	backPower := 0.0
	if math.Abs(l.BackRadiusMM) > 1e-9 {
		backPower = (1 - n) / l.BackRadiusMM
	}
	front := core.ABCD{A: 1, B: 0, C: -frontPower, D: 1}
	gap := core.Translation(l.ThicknessMM, n)
	back := core.ABCD{A: 1, B: 0, C: -backPower, D: 1}
	tangential := back.Mul(gap.Mul(front))
	return core.Astigmatic{Tangential: tangential, Sagittal: core.IdentityABCD}, true
}

func (l *CylindricalLens) ApertureRadiusMM() (float64, bool) { return l.ApertureHeightMM, true }
func (l *CylindricalLens) TypeName() string                   { return "cylindrical_lens" }
