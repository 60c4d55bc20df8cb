// Package scenegraph implements the optical bench's component base
// type and scene aggregate: pose, world↔local transforms, the
// chkIntersection wrapper, and the registry external serialization
// round-trips through.
package scenegraph

import (
	"github.com/google/uuid"

	"github.com/optobench/opticore/pkg/core"
)

// Component is the uniform interaction contract every concrete
// optical element in pkg/components implements (spec.md §4.4).
// Intersect and Interact operate in local coordinates/world
// coordinates respectively, exactly as chkIntersection arranges below.
//
// ABCD/ApertureRadiusMM are capability methods rather than a separate
// interface: every component answers them, but elements with no
// meaningful aperture (a mirror with no rim test beyond its body, say)
// return ok=false and Solver 2 skips the clipping step for them. This
// is the trait-table Design Note §9 asks for in place of dynamic
// dispatch by registered type name.
type Component interface {
	ID() string
	Name() string
	Pose() *core.Pose
	Version() uint64
	LocalBounds() core.AABB
	AbsorptionCoefficient() float64

	// Intersect tests a local-frame ray against this component's body
	// and returns the nearest valid hit with t > core.Epsilon, or ok=false.
	Intersect(localRay core.Ray) (hit core.HitRecord, ok bool)

	// Interact computes this component's response to an incoming
	// world-frame ray and its (already world-lifted) hit record.
	Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult

	// ABCD reports the component's ray-transfer matrix for Solver 2.
	// ok is false for components Solver 2 doesn't propagate through
	// (absorbers: camera, PMT, lamp/laser housings).
	ABCD(ray core.Ray) (abcd core.Astigmatic, ok bool)

	// ApertureRadiusMM reports a finite aperture radius for Solver 2's
	// clipping step; ok is false when the component imposes no
	// aperture-driven beam truncation.
	ApertureRadiusMM() (radiusMM float64, ok bool)

	// TypeName is the stable string used by the registry to
	// reconstruct this component from serialized scene state.
	TypeName() string
}

// Base is embedded by every concrete component in pkg/components. It
// carries identity, pose, the version counter, bounds, and absorption
// per spec.md §3's OpticalComponent data model, and implements every
// Component method except Intersect/Interact/ABCD/ApertureRadiusMM/
// TypeName, which each concrete element supplies.
type Base struct {
	id   string
	name string
	pose core.Pose

	version    uint64
	localBounds core.AABB
	absorption  float64
}

// NewBase constructs a Base with a freshly generated id. Scene presets
// that need a stable id for serialization round-trips use NewBaseWithID.
func NewBase(name string, pose core.Pose, bounds core.AABB, absorptionCoefficient float64) Base {
	return NewBaseWithID(uuid.NewString(), name, pose, bounds, absorptionCoefficient)
}

func NewBaseWithID(id, name string, pose core.Pose, bounds core.AABB, absorptionCoefficient float64) Base {
	return Base{
		id:          id,
		name:        name,
		pose:        pose,
		localBounds: bounds,
		absorption:  absorptionCoefficient,
	}
}

func (b *Base) ID() string                     { return b.id }
func (b *Base) Name() string                   { return b.name }
func (b *Base) Pose() *core.Pose               { return &b.pose }
func (b *Base) Version() uint64                { return b.version }
func (b *Base) LocalBounds() core.AABB         { return b.localBounds }
func (b *Base) AbsorptionCoefficient() float64 { return b.absorption }

// bump records a mutation; every setter below calls it, and Pose's own
// version counter (used for the world/local matrix cache) is bumped
// independently by the Pose setters themselves.
func (b *Base) bump() { b.version++ }

// SetPosition updates the component's world position.
func (b *Base) SetPosition(position core.Vec3) {
	b.pose.SetPosition(position)
	b.bump()
}

// SetRotation updates the component's orientation.
func (b *Base) SetRotation(rotation core.Quaternion) {
	b.pose.SetRotation(rotation)
	b.bump()
}

// PointAlong reorients the component so its local +Z axis points along
// the given world-space direction, the "pointAlong(axis)" helper
// spec.md §4.3 names for aimable sources (lasers, lamps, cameras).
func (b *Base) PointAlong(direction core.Vec3) {
	b.SetRotation(core.LookRotation(direction, core.Vec3{X: 0, Y: 1, Z: 0}))
}

// Touch bumps the version counter without otherwise mutating the
// component, for setters whose animatable state lives outside Pose
// (a polygon scanner's facet rotation angle, say) but still needs to
// invalidate anything that caches on Version().
func (b *Base) Touch() { b.bump() }

// SetLocalBounds replaces the cached local AABB (used by components
// whose body size depends on constructor parameters resolved after
// NewBase, e.g. a lens built from radii/aperture/thickness).
func (b *Base) SetLocalBounds(bounds core.AABB) {
	b.localBounds = bounds
	b.bump()
}

// ChkIntersection is the wrapper spec.md §4.3 names: transform the
// world ray into local space, delegate to Intersect, lift the hit back
// to world coordinates. Every solver calls this, never Intersect directly.
func ChkIntersection(c Component, worldRay core.Ray) (core.HitRecord, bool) {
	localRay := c.Pose().ToLocal(worldRay)
	hit, ok := c.Intersect(localRay)
	if !ok {
		return core.HitRecord{}, false
	}
	c.Pose().HitToWorld(&hit)
	return hit, true
}
