package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

func TestCircularMirrorReflectsAndFlipsPolarization(t *testing.T) {
	m := NewCircularMirror("m1", core.NewPose(core.NewVec3(0, 0, 10), core.IdentityQuaternion), 5.0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	ray.Polarization = core.NewLinearJones(0)

	hit, ok := scenegraph.ChkIntersection(m, ray)
	require.True(t, ok)
	assert.InDelta(t, 10.0, hit.T, 1e-9)

	result := m.Interact(ray, hit)
	require.Len(t, result.Rays, 1)
	child := result.Rays[0]
	assert.InDelta(t, -1.0, child.Direction.Z, 1e-9)
	assert.Equal(t, ray.Polarization.Negate(), child.Polarization)
}

func TestCircularMirrorMissesOutsideRadius(t *testing.T) {
	m := NewCircularMirror("m1", core.NewPose(core.NewVec3(0, 0, 10), core.IdentityQuaternion), 5.0)
	ray := core.NewRay(core.NewVec3(10, 0, 0), core.NewVec3(0, 0, 1))
	_, ok := scenegraph.ChkIntersection(m, ray)
	assert.False(t, ok)
}

func TestRectangularMirrorApertureRadiusReportsFalse(t *testing.T) {
	m := NewRectangularMirror("m2", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 10, 5)
	_, ok := m.ApertureRadiusMM()
	assert.False(t, ok)

	ray := core.NewRay(core.NewVec3(9, 4, -1), core.NewVec3(0, 0, 1))
	_, hit := scenegraph.ChkIntersection(m, ray)
	assert.True(t, hit)

	ray2 := core.NewRay(core.NewVec3(11, 0, -1), core.NewVec3(0, 0, 1))
	_, hit2 := scenegraph.ChkIntersection(m, ray2)
	assert.False(t, hit2)
}

func TestMirrorABCDIsIdentity(t *testing.T) {
	m := NewCircularMirror("m3", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 5.0)
	abcd, ok := m.ABCD(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)))
	require.True(t, ok)
	assert.Equal(t, core.IdentityABCD, abcd.Tangential)
	assert.Equal(t, core.IdentityABCD, abcd.Sagittal)
}
