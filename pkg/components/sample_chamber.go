package components

import (
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Sample is a fluorescent/scattering volume bounded by a box in local
// coordinates. Unlike every other element here it answers two
// non-standard queries beyond the Component contract — VolumeIntersect
// (entry/exit parametric range) and ChordLengthMM — which Solver 3's
// light-source/Sample special case (spec.md §4.7) needs to decide how
// much of a probe ray's path lies inside fluorescing material, rather
// than treating the sample as a single opaque or refractive surface
// like every other component.
type Sample struct {
	scenegraph.Base

	HalfExtents        core.Vec3
	FluorescenceYield  float64
	EmissionWavelengthM float64
}

func NewSample(name string, pose core.Pose, halfExtents core.Vec3, fluorescenceYield, emissionWavelengthM, absorptionCoefficient float64) *Sample {
	bounds := core.NewAABBFromPoints(halfExtents.Negate(), halfExtents)
	return &Sample{
		Base:                scenegraph.NewBase(name, pose, bounds, absorptionCoefficient),
		HalfExtents:         halfExtents,
		FluorescenceYield:   fluorescenceYield,
		EmissionWavelengthM: emissionWavelengthM,
	}
}

// VolumeIntersect returns the entry/exit ray parameters of localRay
// against the chamber's box, or ok=false if the ray misses the box
// entirely (a thin wrapper over core.AABB's slab test that also reports
// the entry parameter, which Hit alone doesn't surface).
func (s *Sample) VolumeIntersect(localRay core.Ray) (tEntry, tExit float64, ok bool) {
	box := core.NewAABBFromPoints(s.HalfExtents.Negate(), s.HalfExtents)
	tMin, tMax := 0.0, float64(core.EscapeDistanceMM)
	for axis := 0; axis < 3; axis++ {
		origin := component(localRay.Origin, axis)
		dir := component(localRay.Direction, axis)
		lo := component(box.Min, axis)
		hi := component(box.Max, axis)
		if dir == 0 {
			if origin < lo || origin > hi {
				return 0, 0, false
			}
			continue
		}
		t0 := (lo - origin) / dir
		t1 := (hi - origin) / dir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

// ChordLengthMM is the length of localRay's path through the chamber.
func (s *Sample) ChordLengthMM(localRay core.Ray) float64 {
	tEntry, tExit, ok := s.VolumeIntersect(localRay)
	if !ok {
		return 0
	}
	return tExit - tEntry
}

func component(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (s *Sample) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	tEntry, _, ok := s.VolumeIntersect(localRay)
	if !ok || tEntry <= core.Epsilon {
		return core.HitRecord{}, false
	}
	point := localRay.At(tEntry)
	return core.HitRecord{T: tEntry, LocalPoint: point, LocalNormal: core.NewVec3(0, 0, -1), LocalDirection: localRay.Direction}, true
}

func (s *Sample) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	// A probe ray passes straight through; fluorescent re-emission is
	// computed by Solver 3, not a child of this interaction.
	child := ray.CloneForChild(hit.WorldPoint, ray.Direction)
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	return core.InteractionResult{Rays: []core.Ray{child}, Passthrough: true}
}

func (s *Sample) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Astigmatic{}, false }
func (s *Sample) ApertureRadiusMM() (float64, bool)         { return 0, false }
func (s *Sample) TypeName() string                           { return "sample" }

// SampleChamber is a box-shaped Sample whose fluorescence yield,
// emission wavelength and absorption start at zero until the caller
// sets them. It holds no nested Sample volumes and models no immersion
// medium.
type SampleChamber struct {
	*Sample
}

func NewSampleChamber(name string, pose core.Pose, halfExtents core.Vec3) *SampleChamber {
	return &SampleChamber{Sample: NewSample(name, pose, halfExtents, 0, 0, 0)}
}

func (c *SampleChamber) TypeName() string { return "sample_chamber" }
