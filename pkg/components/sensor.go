package components

import (
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Camera is a rectangular imaging sensor: Solver 3 samples one cone
// per pixel back through the system from here (spec.md §4.7), and this
// component's own Interact is only exercised by Solver 1's forward
// trace, where it simply absorbs whatever reaches it.
type Camera struct {
	scenegraph.Base

	WidthMM, HeightMM     float64
	ResolutionX, ResolutionY int
	SamplesPerPixel       int
	NA                    float64
}

func NewCamera(name string, pose core.Pose, widthMM, heightMM float64, resolutionX, resolutionY, samplesPerPixel int, na float64) *Camera {
	bounds := core.NewAABB(core.NewVec3(-widthMM/2, -heightMM/2, -1e-3), core.NewVec3(widthMM/2, heightMM/2, 1e-3))
	return &Camera{
		Base:            scenegraph.NewBase(name, pose, bounds, 0),
		WidthMM:         widthMM,
		HeightMM:        heightMM,
		ResolutionX:     resolutionX,
		ResolutionY:     resolutionY,
		SamplesPerPixel: samplesPerPixel,
		NA:              na,
	}
}

func (c *Camera) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	return intersectRectLocal(localRay, 0, c.WidthMM/2, c.HeightMM/2)
}

func (c *Camera) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	return core.InteractionResult{}
}

func (c *Camera) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Astigmatic{}, false }
func (c *Camera) ApertureRadiusMM() (float64, bool)         { return 0, false }
func (c *Camera) TypeName() string                           { return "camera" }

// PMT is a point-like single-pixel detector (photomultiplier tube):
// same absorbing contract as Camera, with a circular active area and no
// per-pixel resolution.
type PMT struct {
	scenegraph.Base

	ActiveAreaRadiusMM float64
	NA                 float64
}

func NewPMT(name string, pose core.Pose, activeAreaRadiusMM, na float64) *PMT {
	bounds := core.NewAABB(core.NewVec3(-activeAreaRadiusMM, -activeAreaRadiusMM, -1e-3), core.NewVec3(activeAreaRadiusMM, activeAreaRadiusMM, 1e-3))
	return &PMT{
		Base:               scenegraph.NewBase(name, pose, bounds, 0),
		ActiveAreaRadiusMM: activeAreaRadiusMM,
		NA:                 na,
	}
}

func (p *PMT) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	return intersectDiscLocal(localRay, 0, p.ActiveAreaRadiusMM)
}

func (p *PMT) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	return core.InteractionResult{}
}

func (p *PMT) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Astigmatic{}, false }
func (p *PMT) ApertureRadiusMM() (float64, bool)         { return p.ActiveAreaRadiusMM, true }
func (p *PMT) TypeName() string                           { return "pmt" }

// Card is a thin probe surface that records where a beam crosses it
// (hit point and a copy of the incident ray) without perturbing the
// beam at all — a single passthrough child identical to the parent
// ray's direction, used to visualize a beam profile mid-system.
type Card struct {
	scenegraph.Base

	RadiusMM  float64
	LastHit   *core.Vec3
	LastRay   *core.Ray
}

func NewCard(name string, pose core.Pose, radiusMM float64) *Card {
	bounds := core.NewAABB(core.NewVec3(-radiusMM, -radiusMM, -1e-3), core.NewVec3(radiusMM, radiusMM, 1e-3))
	return &Card{Base: scenegraph.NewBase(name, pose, bounds, 0), RadiusMM: radiusMM}
}

func (c *Card) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	return intersectDiscLocal(localRay, 0, c.RadiusMM)
}

func (c *Card) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	point := hit.WorldPoint
	rayCopy := ray
	c.LastHit = &point
	c.LastRay = &rayCopy

	child := ray.CloneForChild(hit.WorldPoint, ray.Direction)
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	return core.InteractionResult{Rays: []core.Ray{child}, Passthrough: true}
}

func (c *Card) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Symmetric(core.IdentityABCD), true }
func (c *Card) ApertureRadiusMM() (float64, bool)         { return c.RadiusMM, true }
func (c *Card) TypeName() string                           { return "card" }
