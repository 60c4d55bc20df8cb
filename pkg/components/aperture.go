package components

import (
	"math"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Aperture is a flat opaque stop with a circular clear opening: rays
// through the opening pass untouched; rays hitting the housing outside
// it are absorbed. SlitAperture is the rectangular variant with
// independent X/Y half-widths for ray hits; for Solver 2 it reports a
// single clip radius, the smaller of the two half-widths, so the beam
// is clipped the same in both planes (there is no separate X/Y clip).
type Aperture struct {
	scenegraph.Base

	OpeningRadiusMM  float64
	HousingRadiusMM  float64
	Slit             bool
	SlitHalfWidthMM  float64
	SlitHalfHeightMM float64
}

func NewAperture(name string, pose core.Pose, openingRadiusMM, housingRadiusMM float64) *Aperture {
	bounds := core.NewAABB(core.NewVec3(-housingRadiusMM, -housingRadiusMM, -1e-3), core.NewVec3(housingRadiusMM, housingRadiusMM, 1e-3))
	return &Aperture{
		Base:            scenegraph.NewBase(name, pose, bounds, 0),
		OpeningRadiusMM: openingRadiusMM,
		HousingRadiusMM: housingRadiusMM,
	}
}

func NewSlitAperture(name string, pose core.Pose, slitHalfWidthMM, slitHalfHeightMM, housingRadiusMM float64) *Aperture {
	bounds := core.NewAABB(core.NewVec3(-housingRadiusMM, -housingRadiusMM, -1e-3), core.NewVec3(housingRadiusMM, housingRadiusMM, 1e-3))
	return &Aperture{
		Base:             scenegraph.NewBase(name, pose, bounds, 0),
		HousingRadiusMM:  housingRadiusMM,
		Slit:             true,
		SlitHalfWidthMM:  slitHalfWidthMM,
		SlitHalfHeightMM: slitHalfHeightMM,
	}
}

func (a *Aperture) insideOpening(point core.Vec3) bool {
	if a.Slit {
		return math.Abs(point.X) <= a.SlitHalfWidthMM && math.Abs(point.Y) <= a.SlitHalfHeightMM
	}
	r2 := point.X*point.X + point.Y*point.Y
	return r2 <= a.OpeningRadiusMM*a.OpeningRadiusMM
}

func (a *Aperture) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	hit, ok := intersectDiscLocal(localRay, 0, a.HousingRadiusMM)
	if !ok {
		return core.HitRecord{}, false
	}
	if a.insideOpening(hit.LocalPoint) {
		return core.HitRecord{}, false
	}
	return hit, true
}

// Interact absorbs the ray: Intersect only reports a hit for rays
// striking the opaque housing, so there is no child to spawn.
func (a *Aperture) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	return core.InteractionResult{}
}

func (a *Aperture) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	return core.Symmetric(core.IdentityABCD), true
}

func (a *Aperture) ApertureRadiusMM() (float64, bool) {
	if a.Slit {
		return math.Min(a.SlitHalfWidthMM, a.SlitHalfHeightMM), true
	}
	return a.OpeningRadiusMM, true
}

func (a *Aperture) TypeName() string {
	if a.Slit {
		return "slit_aperture"
	}
	return "aperture"
}
