package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
)

// planeComponent is a minimal test double: an infinite plane at local
// z=0, normal +Z, absorbing everything that hits it. Exercises
// ChkIntersection's world<->local transform without pulling in any
// pkg/components concrete element.
type planeComponent struct {
	Base
}

func newPlaneComponent(name string, pose core.Pose) *planeComponent {
	b := NewBase(name, pose, core.NewAABB(core.NewVec3(-1e6, -1e6, -1e-6), core.NewVec3(1e6, 1e6, 1e-6)), 0)
	return &planeComponent{Base: b}
}

func (p *planeComponent) Intersect(localRay core.Ray) (core.HitRecord, bool) {
	if localRay.Direction.Z == 0 {
		return core.HitRecord{}, false
	}
	t := -localRay.Origin.Z / localRay.Direction.Z
	if t <= core.Epsilon {
		return core.HitRecord{}, false
	}
	localPoint := localRay.At(t)
	return core.HitRecord{
		T:              t,
		LocalPoint:     localPoint,
		LocalNormal:    core.NewVec3(0, 0, 1),
		LocalDirection: localRay.Direction,
	}, true
}

func (p *planeComponent) Interact(ray core.Ray, hit core.HitRecord) core.InteractionResult {
	return core.InteractionResult{}
}

func (p *planeComponent) ABCD(ray core.Ray) (core.Astigmatic, bool) {
	return core.Astigmatic{}, false
}

func (p *planeComponent) ApertureRadiusMM() (float64, bool) { return 0, false }
func (p *planeComponent) TypeName() string                 { return "test.plane" }

func TestChkIntersectionTransformsWorldRay(t *testing.T) {
	pose := core.NewPose(core.NewVec3(0, 0, 10), core.IdentityQuaternion)
	plane := newPlaneComponent("plane", pose)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := ChkIntersection(plane, ray)
	require.True(t, ok)
	assert.InDelta(t, 10.0, hit.T, 1e-9)
	assert.InDelta(t, 10.0, hit.WorldPoint.Z, 1e-9)
}

func TestSceneNearestHitTieBreakIsSceneOrder(t *testing.T) {
	scene := NewScene()
	pose := core.NewPose(core.NewVec3(0, 0, 10), core.IdentityQuaternion)
	first := newPlaneComponent("first", pose)
	second := newPlaneComponent("second", pose)
	scene.Add(first)
	scene.Add(second)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	winner, _, ok := scene.NearestHit(ray, 1e9)
	require.True(t, ok)
	assert.Equal(t, "first", winner.Name())
}

func TestSceneNearestHitSkipsEpsilonRange(t *testing.T) {
	scene := NewScene()
	// A plane essentially at the ray origin should be rejected by the
	// epsilon guard (shadow-acne prevention).
	pose := core.NewPose(core.NewVec3(0, 0, core.Epsilon/2), core.IdentityQuaternion)
	scene.Add(newPlaneComponent("too close", pose))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	_, _, ok := scene.NearestHit(ray, 1e9)
	assert.False(t, ok)
}

func TestRegistryRoundTrip(t *testing.T) {
	reg := NewRegistry()
	reg.Register("test.plane", func(id string, params map[string]interface{}) (Component, error) {
		return newPlaneComponent(id, core.NewPose(core.Vec3{}, core.IdentityQuaternion)), nil
	})

	tag, ok := reg.Tag("test.plane")
	require.True(t, ok)
	name, ok := reg.TypeNameForTag(tag)
	require.True(t, ok)
	assert.Equal(t, "test.plane", name)

	c, err := reg.Construct("test.plane", "abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", c.Name())
}
