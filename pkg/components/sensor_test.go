package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

func TestCameraAbsorbsAndReportsNoAperture(t *testing.T) {
	cam := NewCamera("cam1", core.NewPose(core.NewVec3(0, 0, 10), core.IdentityQuaternion), 10, 10, 64, 64, 4, 0.1)

	ray := core.NewRay(core.NewVec3(1, 1, 0), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(cam, ray)
	require.True(t, ok)

	result := cam.Interact(ray, hit)
	assert.Empty(t, result.Rays)
	_, abcdOK := cam.ABCD(ray)
	assert.False(t, abcdOK)
	_, apOK := cam.ApertureRadiusMM()
	assert.False(t, apOK)
}

func TestPMTIsACircularAbsorber(t *testing.T) {
	pmt := NewPMT("pmt1", core.NewPose(core.NewVec3(0, 0, 10), core.IdentityQuaternion), 3.0, 0.2)

	onAxis := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	_, ok := scenegraph.ChkIntersection(pmt, onAxis)
	assert.True(t, ok)

	offAxis := core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(0, 0, 1))
	_, ok2 := scenegraph.ChkIntersection(pmt, offAxis)
	assert.False(t, ok2)

	radius, apOK := pmt.ApertureRadiusMM()
	assert.True(t, apOK)
	assert.Equal(t, 3.0, radius)
}

func TestCardRecordsLastHitAndPassesThrough(t *testing.T) {
	card := NewCard("card1", core.NewPose(core.NewVec3(0, 0, 5), core.IdentityQuaternion), 2.0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(card, ray)
	require.True(t, ok)

	result := card.Interact(ray, hit)
	require.Len(t, result.Rays, 1)
	assert.True(t, result.Passthrough)
	assert.Equal(t, ray.Direction, result.Rays[0].Direction)
	require.NotNil(t, card.LastHit)
	assert.InDelta(t, 5.0, card.LastHit.Z, 1e-9)
	require.NotNil(t, card.LastRay)
}
