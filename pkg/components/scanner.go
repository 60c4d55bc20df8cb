package components

import (
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Galvo is a flat circular mirror mounted on a single scan axis; its
// tilt is driven externally (typically by an animator.Channel writing
// ScanAngleRad) rather than fixed at construction, per spec.md §4.4's
// galvo-mirror entry. Reflection itself is identical to Mirror.
type Galvo struct {
	scenegraph.Base

	RadiusMM       float64
	AxisLocal      core.Vec3 // rotation axis in the galvo's own rest frame
	RestRotation   core.Quaternion
	ScanAngleRad   float64
}

func NewGalvo(name string, pose core.Pose, radiusMM float64, axisLocal core.Vec3) *Galvo {
	bounds := core.NewAABB(core.NewVec3(-radiusMM, -radiusMM, -1e-3), core.NewVec3(radiusMM, radiusMM, 1e-3))
	return &Galvo{
		Base:         scenegraph.NewBase(name, pose, bounds, 0),
		RadiusMM:     radiusMM,
		AxisLocal:    axisLocal.Normalize(),
		RestRotation: pose.Rotation,
	}
}

// SetScanAngleRad rotates the mirror about its scan axis relative to
// its rest orientation, bumping the pose's cache version.
func (g *Galvo) SetScanAngleRad(angleRad float64) {
	g.ScanAngleRad = angleRad
	delta := core.FromAxisAngle(g.AxisLocal, angleRad)
	g.SetRotation(g.RestRotation.Mul(delta))
}

func (g *Galvo) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	return intersectDiscLocal(localRay, 0, g.RadiusMM)
}

func (g *Galvo) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	reflected := core.Reflect(ray.Direction, hit.WorldNormal)
	child := ray.CloneForChild(hit.WorldPoint, reflected)
	child.Polarization = ray.Polarization.Negate()
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	return core.InteractionResult{Rays: []core.Ray{child}}
}

func (g *Galvo) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Symmetric(core.IdentityABCD), true }
func (g *Galvo) ApertureRadiusMM() (float64, bool)         { return g.RadiusMM, true }
func (g *Galvo) TypeName() string                           { return "galvo" }

// DualGalvo pairs an X-axis and a Y-axis galvo a fixed separationMM
// (set at construction) apart along the local Z axis, the common raster-scan arrangement —
// a single addressable component rather than two independent scene
// entries so an animation channel can drive both angles through one
// named component (see pkg/animator).
type DualGalvo struct {
	scenegraph.Base

	First, Second *Galvo
}

func NewDualGalvo(name string, pose core.Pose, radiusMM, separationMM float64) *DualGalvo {
	firstPose := core.NewPose(core.Vec3{}, core.IdentityQuaternion)
	secondPose := core.NewPose(core.NewVec3(0, 0, separationMM), core.IdentityQuaternion)
	bounds := core.NewAABB(
		core.NewVec3(-radiusMM, -radiusMM, -1e-3),
		core.NewVec3(radiusMM, radiusMM, separationMM+1e-3),
	)
	return &DualGalvo{
		Base:   scenegraph.NewBase(name, pose, bounds, 0),
		First:  NewGalvo(name+".x", firstPose, radiusMM, core.NewVec3(0, 1, 0)),
		Second: NewGalvo(name+".y", secondPose, radiusMM, core.NewVec3(1, 0, 0)),
	}
}

func (d *DualGalvo) SetScanAnglesRad(xRad, yRad float64) {
	d.First.SetScanAngleRad(xRad)
	d.Second.SetScanAngleRad(yRad)
}

// subHit intersects localRay (already expressed in the DualGalvo's own
// local frame) against one internal galvo, re-expressing the result
// back in that same frame — sub.Pose() here plays the role of an
// offset within the parent's local space, not a second trip to world
// space, so only Local* fields are lifted (via LocalToWorld, reused as
// the sub-to-parent-local transform) and tagged with which sub-mirror
// it belongs to.
func (d *DualGalvo) subHit(sub *Galvo, tag int, localRay core.Ray) (core.HitRecord, bool) {
	subLocalRay := sub.Pose().ToLocal(localRay)
	hit, ok := sub.Intersect(subLocalRay)
	if !ok {
		return core.HitRecord{}, false
	}
	l2p := sub.Pose().LocalToWorld()
	hit.LocalPoint = l2p.TransformPoint(hit.LocalPoint)
	hit.LocalNormal = l2p.TransformDirection(hit.LocalNormal).Normalize()
	hit.SurfaceIndex = tag
	return hit, true
}

func (d *DualGalvo) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	first, firstOK := d.subHit(d.First, 0, localRay)
	second, secondOK := d.subHit(d.Second, 1, localRay)
	return nearestOf(
		struct {
			Hit core.HitRecord
			OK  bool
		}{first, firstOK},
		struct {
			Hit core.HitRecord
			OK  bool
		}{second, secondOK},
	)
}

func (d *DualGalvo) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	reflected := core.Reflect(ray.Direction, hit.WorldNormal)
	child := ray.CloneForChild(hit.WorldPoint, reflected)
	child.Polarization = ray.Polarization.Negate()
	child.OpticalPathLengthMM += hit.T
	child.IsMainRay = ray.IsMainRay
	return core.InteractionResult{Rays: []core.Ray{child}}
}

func (d *DualGalvo) ABCD(ray core.Ray) (core.Astigmatic, bool) { return core.Symmetric(core.IdentityABCD), true }
func (d *DualGalvo) ApertureRadiusMM() (float64, bool)         { return d.First.RadiusMM, true }
func (d *DualGalvo) TypeName() string                           { return "dual_galvo" }
