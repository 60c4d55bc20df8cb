package components

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

func TestPolygonScannerReflectsOffActiveFacet(t *testing.T) {
	s := NewPolygonScanner("p1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 6, 20.0, 5.0)

	ray := core.NewRay(core.NewVec3(0, 0, -50), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(s, ray)
	require.True(t, ok)

	result := s.Interact(ray, hit)
	require.Len(t, result.Rays, 1)
	assert.InDelta(t, -1.0, result.Rays[0].Direction.Z, 1e-9)
}

func TestPolygonScannerRotationSelectsDifferentFacet(t *testing.T) {
	s := NewPolygonScanner("p1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 6, 20.0, 5.0)

	ray := core.NewRay(core.NewVec3(0, 0, -50), core.NewVec3(0, 0, 1))
	hit0, ok := scenegraph.ChkIntersection(s, ray)
	require.True(t, ok)

	s.SetRotationAngleRad(math.Pi / 12)
	hit1, ok := scenegraph.ChkIntersection(s, ray)
	require.True(t, ok)

	assert.NotEqual(t, hit0.WorldNormal, hit1.WorldNormal)
}

func TestPolygonScannerSetRotationAngleBumpsVersion(t *testing.T) {
	s := NewPolygonScanner("p1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 6, 20.0, 5.0)
	before := s.Version()
	s.SetRotationAngleRad(0.2)
	assert.Greater(t, s.Version(), before)
}
