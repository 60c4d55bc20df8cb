package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

func TestLaserAbsorbsAStrayReturningRay(t *testing.T) {
	laser := NewLaser("laser1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 2.0, 488e-9, 0.02)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(laser, ray)
	require.True(t, ok)

	result := laser.Interact(ray, hit)
	assert.Empty(t, result.Rays)

	_, abcdOK := laser.ABCD(ray)
	assert.False(t, abcdOK)
	radius, radiusOK := laser.ApertureRadiusMM()
	assert.True(t, radiusOK)
	assert.Equal(t, 2.0, radius)
}

func TestLampHasNoABCDAndExposesBands(t *testing.T) {
	bands := []float64{450e-9, 550e-9}
	lamp := NewLamp("lamp1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 3.0, 0.5, bands)

	assert.Equal(t, bands, lamp.BandsM)
	_, abcdOK := lamp.ABCD(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)))
	assert.False(t, abcdOK)

	ray := core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(lamp, ray)
	require.True(t, ok)
	result := lamp.Interact(ray, hit)
	assert.Empty(t, result.Rays)
}
