package components

import (
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Laser is an opaque single-wavelength source housing. pkg/sourcerays
// is what actually generates the emitted ring of rays from a Laser's
// pose/aperture; as a scene Component it only needs to behave as an
// opaque body so a stray ray that wanders back into the housing is
// absorbed rather than leaking through it.
type Laser struct {
	scenegraph.Base

	ApertureRadiusMM_ float64
	WavelengthM       float64
	PowerW            float64
}

func NewLaser(name string, pose core.Pose, apertureRadiusMM, wavelengthM, powerW float64) *Laser {
	bounds := core.NewAABB(core.NewVec3(-apertureRadiusMM, -apertureRadiusMM, -apertureRadiusMM), core.NewVec3(apertureRadiusMM, apertureRadiusMM, apertureRadiusMM))
	return &Laser{
		Base:              scenegraph.NewBase(name, pose, bounds, 0),
		ApertureRadiusMM_: apertureRadiusMM,
		WavelengthM:       wavelengthM,
		PowerW:            powerW,
	}
}

func (l *Laser) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	return intersectDiscLocal(localRay, 0, l.ApertureRadiusMM_)
}

func (l *Laser) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	return core.InteractionResult{}
}

func (l *Laser) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Astigmatic{}, false }
func (l *Laser) ApertureRadiusMM() (float64, bool)         { return l.ApertureRadiusMM_, true }
func (l *Laser) TypeName() string                           { return "laser" }

// Lamp is a broadband/multi-wavelength-band incoherent source housing;
// Bands lists the emitted wavelength bands (in meters) that
// pkg/sourcerays samples from, halving ring density per band per
// spec.md §4.8's lamp-specific ray-count handling.
type Lamp struct {
	scenegraph.Base

	ApertureRadiusMM_ float64
	BandsM            []float64
	PowerW            float64
}

func NewLamp(name string, pose core.Pose, apertureRadiusMM, powerW float64, bandsM []float64) *Lamp {
	bounds := core.NewAABB(core.NewVec3(-apertureRadiusMM, -apertureRadiusMM, -apertureRadiusMM), core.NewVec3(apertureRadiusMM, apertureRadiusMM, apertureRadiusMM))
	return &Lamp{
		Base:              scenegraph.NewBase(name, pose, bounds, 0),
		ApertureRadiusMM_: apertureRadiusMM,
		BandsM:            bandsM,
		PowerW:            powerW,
	}
}

func (l *Lamp) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	return intersectDiscLocal(localRay, 0, l.ApertureRadiusMM_)
}

func (l *Lamp) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	return core.InteractionResult{}
}

func (l *Lamp) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Astigmatic{}, false }
func (l *Lamp) ApertureRadiusMM() (float64, bool)         { return l.ApertureRadiusMM_, true }
func (l *Lamp) TypeName() string                           { return "lamp" }
