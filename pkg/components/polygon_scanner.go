package components

import (
	"math"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// PolygonScanner is a rotating mirrored polygon with FacetCount flat
// facets around local Y; RotationAngleRad (set externally, typically by
// an animator.Channel) selects which facet currently faces the beam.
// Only the facet nearest to facing the incoming ray is tested, matching
// a real polygon scanner's single active facet at any instant.
type PolygonScanner struct {
	scenegraph.Base

	FacetCount       int
	FacetHalfWidthMM float64
	FacetHalfHeightMM float64
	RadiusMM         float64
	RotationAngleRad float64
}

func NewPolygonScanner(name string, pose core.Pose, facetCount int, radiusMM, facetHalfHeightMM float64) *PolygonScanner {
	facetHalfWidthMM := radiusMM * math.Tan(math.Pi/float64(facetCount))
	bounds := core.NewAABB(
		core.NewVec3(-radiusMM-facetHalfWidthMM, -facetHalfHeightMM, -radiusMM-facetHalfWidthMM),
		core.NewVec3(radiusMM+facetHalfWidthMM, facetHalfHeightMM, radiusMM+facetHalfWidthMM),
	)
	return &PolygonScanner{
		Base:              scenegraph.NewBase(name, pose, bounds, 0),
		FacetCount:        facetCount,
		FacetHalfWidthMM:  facetHalfWidthMM,
		FacetHalfHeightMM: facetHalfHeightMM,
		RadiusMM:          radiusMM,
	}
}

func (s *PolygonScanner) SetRotationAngleRad(angleRad float64) {
	s.RotationAngleRad = angleRad
	s.Touch()
}

// activeFacetAngle picks the facet whose outward normal is closest to
// facing back at -localRay.Direction.
func (s *PolygonScanner) activeFacetAngle(localRay core.Ray) float64 {
	step := 2 * math.Pi / float64(s.FacetCount)
	best := s.RotationAngleRad
	bestDot := math.Inf(-1)
	for i := 0; i < s.FacetCount; i++ {
		angle := s.RotationAngleRad + step*float64(i)
		outward := core.NewVec3(math.Sin(angle), 0, math.Cos(angle))
		dot := -localRay.Direction.Dot(outward)
		if dot > bestDot {
			bestDot = dot
			best = angle
		}
	}
	return best
}

func (s *PolygonScanner) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	angle := s.activeFacetAngle(localRay)
	outward := core.NewVec3(math.Sin(angle), 0, math.Cos(angle))
	center := outward.Multiply(s.RadiusMM)

	denom := localRay.Direction.Dot(outward)
	if math.Abs(denom) < core.GrazingCosine {
		return core.HitRecord{}, false
	}
	t := center.Subtract(localRay.Origin).Dot(outward) / denom
	if t <= core.Epsilon {
		return core.HitRecord{}, false
	}
	point := localRay.At(t)
	local := point.Subtract(center)
	tangent := core.NewVec3(math.Cos(angle), 0, -math.Sin(angle))
	u := local.Dot(tangent)
	v := local.Y
	if math.Abs(u) > s.FacetHalfWidthMM || math.Abs(v) > s.FacetHalfHeightMM {
		return core.HitRecord{}, false
	}
	normal, frontFace := core.SetFaceNormal(localRay.Direction, outward)
	return core.HitRecord{T: t, LocalPoint: point, LocalNormal: normal, LocalDirection: localRay.Direction, FrontFace: frontFace}, true
}

func (s *PolygonScanner) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	reflected := core.Reflect(ray.Direction, hit.WorldNormal)
	child := ray.CloneForChild(hit.WorldPoint, reflected)
	child.Polarization = ray.Polarization.Negate()
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	return core.InteractionResult{Rays: []core.Ray{child}}
}

func (s *PolygonScanner) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	return core.Symmetric(core.IdentityABCD), true
}
func (s *PolygonScanner) ApertureRadiusMM() (float64, bool) { return s.FacetHalfWidthMM, true }
func (s *PolygonScanner) TypeName() string                   { return "polygon_scanner" }
