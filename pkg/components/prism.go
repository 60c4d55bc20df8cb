package components

import (
	"math"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Prism is a triangular-cross-section refractor extruded along local Y.
// Its base (entry) face sits flat at local z=0; two slanted faces rise
// to an apex at z=ApexHeightMM, built from Design Note §9's triangle
// kernel since a slanted face isn't expressible as a z=const plane or a
// quadric. A ray that total-internally-reflects off one slanted face and
// exits through the other needs no special-cased bounce logic: the
// scene's ordinary repeated NearestHit/Interact loop walks it face to
// face, the same way it would for any other sequence of components.
// ABCD reports the identity matrix for both planes: the prism does not
// distinguish a tangential (dispersion) plane from a sagittal one for
// Solver 2.
type Prism struct {
	scenegraph.Base

	BaseHalfWidthMM float64
	ApexHeightMM    float64
	HalfDepthMM     float64 // extrusion half-length along Y
	RefractiveIndex float64
	Dispersion      core.Dispersion
}

// NewPrism builds a prism whose index is fixed at refractiveIndex for
// every wavelength (abbeNumber <= 0) or follows a Cauchy dispersion
// curve anchored at refractiveIndex (the nominal d-line index) with
// the given Abbe number otherwise, per spec.md's dispersion scenario.
func NewPrism(name string, pose core.Pose, apexAngleDeg, baseHalfWidthMM, depthMM, refractiveIndex, abbeNumber, absorptionCoefficient float64) *Prism {
	apexHeight := baseHalfWidthMM / math.Tan(apexAngleDeg*math.Pi/360)
	bounds := core.NewAABB(
		core.NewVec3(-baseHalfWidthMM, -depthMM/2, 0),
		core.NewVec3(baseHalfWidthMM, depthMM/2, apexHeight),
	)
	return &Prism{
		Base:            scenegraph.NewBase(name, pose, bounds, absorptionCoefficient),
		BaseHalfWidthMM: baseHalfWidthMM,
		ApexHeightMM:    apexHeight,
		HalfDepthMM:     depthMM / 2,
		RefractiveIndex: refractiveIndex,
		Dispersion:      core.NewDispersion(refractiveIndex, abbeNumber),
	}
}

// RefractiveIndexAt reports this prism's index at the ray's wavelength,
// implementing solver2's RefractiveBody interface.
func (p *Prism) RefractiveIndexAt(wavelengthM float64) float64 {
	return p.Dispersion.IndexAt(core.MToNm(wavelengthM))
}

func (p *Prism) vertices() (a, b, c core.Vec3) {
	a = core.NewVec3(-p.BaseHalfWidthMM, 0, 0)
	b = core.NewVec3(p.BaseHalfWidthMM, 0, 0)
	c = core.NewVec3(0, 0, p.ApexHeightMM)
	return
}

// slantFaceHit tests one of the two slanted rectangular faces (split
// into two triangles) spanning from cross-section edge (p, q) across
// the prism's Y extrusion.
func (p *Prism) slantFaceHit(ray core.Ray, q, r core.Vec3) (core.HitRecord, bool) {
	q0 := core.NewVec3(q.X, -p.HalfDepthMM, q.Z)
	q1 := core.NewVec3(q.X, p.HalfDepthMM, q.Z)
	r0 := core.NewVec3(r.X, -p.HalfDepthMM, r.Z)
	r1 := core.NewVec3(r.X, p.HalfDepthMM, r.Z)

	tryTriangle := func(a, b, c core.Vec3) (core.HitRecord, bool) {
		th, ok := core.IntersectTriangle(ray, a, b, c, core.Epsilon, math.MaxFloat64)
		if !ok {
			return core.HitRecord{}, false
		}
		point := core.BarycentricPoint(th, a, b, c)
		edge1 := b.Subtract(a)
		edge2 := c.Subtract(a)
		outward := edge1.Cross(edge2).Normalize()
		normal, frontFace := core.SetFaceNormal(ray.Direction, outward)
		return core.HitRecord{T: th.T, LocalPoint: point, LocalNormal: normal, LocalDirection: ray.Direction, FrontFace: frontFace}, true
	}

	h1, ok1 := tryTriangle(q0, r0, r1)
	h2, ok2 := tryTriangle(q0, r1, q1)
	return nearestOf(
		struct {
			Hit core.HitRecord
			OK  bool
		}{h1, ok1},
		struct {
			Hit core.HitRecord
			OK  bool
		}{h2, ok2},
	)
}

func (p *Prism) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	a, b, c := p.vertices()

	base, baseOK := intersectRectLocal(localRay, 0, p.BaseHalfWidthMM, p.HalfDepthMM)
	left, leftOK := p.slantFaceHit(localRay, a, c)
	right, rightOK := p.slantFaceHit(localRay, c, b)

	return nearestOf(
		struct {
			Hit core.HitRecord
			OK  bool
		}{base, baseOK},
		struct {
			Hit core.HitRecord
			OK  bool
		}{left, leftOK},
		struct {
			Hit core.HitRecord
			OK  bool
		}{right, rightOK},
	)
}

func (p *Prism) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	unitDir := ray.Direction.Normalize()
	index := p.RefractiveIndexAt(ray.WavelengthM)
	var etaiOverEtat float64
	if hit.FrontFace {
		etaiOverEtat = 1.0 / index
	} else {
		etaiOverEtat = index
	}

	cosTheta := math.Min(-unitDir.Dot(hit.WorldNormal), 1.0)
	reflectance := core.Reflectance(cosTheta, etaiOverEtat)

	intensity := ray.Intensity
	if !hit.FrontFace && ray.EntryPoint != nil {
		pathLengthMM := hit.WorldPoint.Subtract(*ray.EntryPoint).Length()
		intensity *= math.Exp(-p.AbsorptionCoefficient() * pathLengthMM)
	}

	var rays []core.Ray

	refracted, canRefract := core.Refract(unitDir, hit.WorldNormal, etaiOverEtat)
	if !canRefract {
		reflectance = 1
	}

	reflected := core.Reflect(unitDir, hit.WorldNormal)
	reflectedChild := ray.CloneForChild(hit.WorldPoint, reflected)
	reflectedChild.IsMainRay = false
	reflectedChild.OpticalPathLengthMM += hit.T
	reflectedChild.Intensity = intensity * reflectance
	if hit.FrontFace {
		entry := hit.WorldPoint
		reflectedChild.EntryPoint = &entry
	} else {
		reflectedChild.EntryPoint = ray.EntryPoint
	}
	if reflectedChild.Intensity > core.MinThroughput {
		rays = append(rays, reflectedChild)
	}

	if canRefract {
		refractedChild := ray.CloneForChild(hit.WorldPoint, refracted)
		refractedChild.IsMainRay = ray.IsMainRay
		refractedChild.OpticalPathLengthMM += hit.T
		refractedChild.Intensity = intensity * (1 - reflectance)
		if hit.FrontFace {
			entry := hit.WorldPoint
			refractedChild.EntryPoint = &entry
		}
		if refractedChild.Intensity > core.MinThroughput {
			rays = append(rays, refractedChild)
		}
	}

	return core.InteractionResult{Rays: rays}
}

func (p *Prism) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	// Thin-prism approximation: negligible optical power, only angular
	// deviation (handled by the direction change in Interact, not ABCD).
	return core.Symmetric(core.IdentityABCD), true
}

func (p *Prism) ApertureRadiusMM() (float64, bool) { return p.BaseHalfWidthMM, true }
func (p *Prism) TypeName() string                   { return "prism" }
