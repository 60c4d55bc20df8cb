package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

func TestApertureRayInsideOpeningPassesThroughUntouched(t *testing.T) {
	a := NewAperture("a1", core.NewPose(core.NewVec3(0, 0, 5), core.IdentityQuaternion), 2.0, 10.0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	_, ok := scenegraph.ChkIntersection(a, ray)
	assert.False(t, ok)
}

func TestApertureRayOnHousingIsAbsorbed(t *testing.T) {
	a := NewAperture("a1", core.NewPose(core.NewVec3(0, 0, 5), core.IdentityQuaternion), 2.0, 10.0)

	ray := core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(a, ray)
	require.True(t, ok)

	result := a.Interact(ray, hit)
	assert.Empty(t, result.Rays)
}

func TestApertureRayBeyondHousingMisses(t *testing.T) {
	a := NewAperture("a1", core.NewPose(core.NewVec3(0, 0, 5), core.IdentityQuaternion), 2.0, 10.0)

	ray := core.NewRay(core.NewVec3(20, 0, 0), core.NewVec3(0, 0, 1))
	_, ok := scenegraph.ChkIntersection(a, ray)
	assert.False(t, ok)
}

func TestSlitApertureUsesIndependentHalfExtents(t *testing.T) {
	s := NewSlitAperture("s1", core.NewPose(core.NewVec3(0, 0, 5), core.IdentityQuaternion), 1.0, 4.0, 10.0)

	inSlit := core.NewRay(core.NewVec3(0.5, 3.0, 0), core.NewVec3(0, 0, 1))
	_, ok := scenegraph.ChkIntersection(s, inSlit)
	assert.False(t, ok)

	onHousing := core.NewRay(core.NewVec3(2.0, 3.0, 0), core.NewVec3(0, 0, 1))
	_, ok2 := scenegraph.ChkIntersection(s, onHousing)
	assert.True(t, ok2)

	radius, apOK := s.ApertureRadiusMM()
	assert.True(t, apOK)
	assert.Equal(t, 1.0, radius)
	assert.Equal(t, "slit_aperture", s.TypeName())
}
