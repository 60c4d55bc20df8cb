package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
)

func TestCurvedMirrorOnAxisRayReflectsBackAlongAxis(t *testing.T) {
	m := NewCurvedMirror("m1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 100.0, 5.0, 2.0)

	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	hit, ok := m.Intersect(ray)
	require.True(t, ok)
	assert.NotEqual(t, -1, hit.SurfaceIndex)

	worldHit := hit
	worldHit.WorldPoint = hit.LocalPoint
	worldHit.WorldNormal = hit.LocalNormal
	result := m.Interact(ray, worldHit)
	require.Len(t, result.Rays, 1)
	assert.InDelta(t, -1.0, result.Rays[0].Direction.Z, 1e-9)
}

func TestCurvedMirrorRimHitIsAbsorbed(t *testing.T) {
	m := NewCurvedMirror("m1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 100.0, 5.0, 2.0)

	ray := core.NewRay(core.NewVec3(10, 0, 0.5), core.NewVec3(-1, 0, 0))
	hit, ok := m.Intersect(ray)
	require.True(t, ok)
	require.Equal(t, -1, hit.SurfaceIndex)

	worldHit := hit
	worldHit.WorldPoint = hit.LocalPoint
	result := m.Interact(ray, worldHit)
	assert.Empty(t, result.Rays)
}

func TestCurvedMirrorABCDMatchesMirrorFormula(t *testing.T) {
	m := NewCurvedMirror("m1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 100.0, 5.0, 2.0)
	abcd, ok := m.ABCD(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)))
	require.True(t, ok)
	assert.InDelta(t, -2.0/100.0, abcd.Tangential.C, 1e-12)
}

func TestCurvedMirrorFlatSpecialCaseIsADisc(t *testing.T) {
	m := NewCurvedMirror("m1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 0.0, 5.0, 2.0)
	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	hit, ok := m.Intersect(ray)
	require.True(t, ok)
	assert.InDelta(t, 10.0, hit.T, 1e-9)
}
