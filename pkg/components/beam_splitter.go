package components

import (
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
	"github.com/optobench/opticore/pkg/spectral"
)

// BeamSplitter is a flat plate that divides one incident ray into a
// transmitted and a reflected child. A fixed BeamSplitter uses a
// constant transmission ratio; a DichroicMirror or Filter (constructed
// via NewDichroicMirror/NewFilter below) instead looks transmission up
// from a spectral.Profile keyed on the ray's wavelength. Filter discards
// the reflected branch entirely (DiscardReflected), matching spec.md
// §4.4's "Filter" entry.
type BeamSplitter struct {
	scenegraph.Base

	Circular          bool
	RadiusMM          float64
	HalfWidthMM       float64
	HalfHeightMM      float64
	FixedRatio        float64 // used when Spectral is nil
	Spectral          *spectral.Profile
	DiscardReflected  bool
}

func NewBeamSplitter(name string, pose core.Pose, radiusMM, transmission float64) *BeamSplitter {
	bounds := core.NewAABB(core.NewVec3(-radiusMM, -radiusMM, -1e-3), core.NewVec3(radiusMM, radiusMM, 1e-3))
	return &BeamSplitter{
		Base:       scenegraph.NewBase(name, pose, bounds, 0),
		Circular:   true,
		RadiusMM:   radiusMM,
		FixedRatio: transmission,
	}
}

func NewDichroicMirror(name string, pose core.Pose, radiusMM float64, profile spectral.Profile) *BeamSplitter {
	bounds := core.NewAABB(core.NewVec3(-radiusMM, -radiusMM, -1e-3), core.NewVec3(radiusMM, radiusMM, 1e-3))
	return &BeamSplitter{
		Base:     scenegraph.NewBase(name, pose, bounds, 0),
		Circular: true,
		RadiusMM: radiusMM,
		Spectral: &profile,
	}
}

func NewFilter(name string, pose core.Pose, radiusMM float64, profile spectral.Profile) *BeamSplitter {
	f := NewDichroicMirror(name, pose, radiusMM, profile)
	f.DiscardReflected = true
	return f
}

func (b *BeamSplitter) transmission(wavelengthM float64) float64 {
	if b.Spectral != nil {
		return b.Spectral.Transmission(core.MToNm(wavelengthM))
	}
	return b.FixedRatio
}

func (b *BeamSplitter) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	if b.Circular {
		return intersectDiscLocal(localRay, 0, b.RadiusMM)
	}
	return intersectRectLocal(localRay, 0, b.HalfWidthMM, b.HalfHeightMM)
}

func (b *BeamSplitter) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	t := b.transmission(ray.WavelengthM)

	var rays []core.Ray

	transmitted := ray.CloneForChild(hit.WorldPoint, ray.Direction)
	transmitted.OpticalPathLengthMM += hit.T
	transmitted.IsMainRay = ray.IsMainRay
	transmitted.Intensity = ray.Intensity * t
	if transmitted.Intensity > 0 {
		rays = append(rays, transmitted)
	}

	if !b.DiscardReflected {
		reflectedDir := core.Reflect(ray.Direction, hit.WorldNormal)
		reflected := ray.CloneForChild(hit.WorldPoint, reflectedDir)
		reflected.OpticalPathLengthMM += hit.T
		reflected.IsMainRay = false
		reflected.Polarization = ray.Polarization.Negate()
		reflected.Intensity = ray.Intensity * (1 - t)
		if reflected.Intensity > 0 {
			rays = append(rays, reflected)
		}
	}

	return core.InteractionResult{Rays: rays, Passthrough: b.DiscardReflected}
}

func (b *BeamSplitter) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	return core.Symmetric(core.IdentityABCD), true
}

func (b *BeamSplitter) ApertureRadiusMM() (float64, bool) {
	if b.Circular {
		return b.RadiusMM, true
	}
	return 0, false
}

func (b *BeamSplitter) TypeName() string {
	if b.DiscardReflected {
		return "filter"
	}
	if b.Spectral != nil {
		return "dichroic_mirror"
	}
	return "beam_splitter"
}
