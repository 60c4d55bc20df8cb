package components

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

func TestGalvoSetScanAngleTiltsReflection(t *testing.T) {
	g := NewGalvo("g1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 5.0, core.NewVec3(0, 1, 0))

	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	hit0, ok := scenegraph.ChkIntersection(g, ray)
	require.True(t, ok)
	result0 := g.Interact(ray, hit0)
	require.Len(t, result0.Rays, 1)
	assert.InDelta(t, -1.0, result0.Rays[0].Direction.Z, 1e-9)

	g.SetScanAngleRad(math.Pi / 8)
	hit1, ok := scenegraph.ChkIntersection(g, ray)
	require.True(t, ok)
	result1 := g.Interact(ray, hit1)
	require.Len(t, result1.Rays, 1)
	assert.Greater(t, math.Abs(result1.Rays[0].Direction.X), 1e-6)
}

func TestGalvoVersionBumpsOnScanAngleChange(t *testing.T) {
	g := NewGalvo("g1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 5.0, core.NewVec3(0, 1, 0))
	before := g.Version()
	g.SetScanAngleRad(0.1)
	assert.Greater(t, g.Version(), before)
}

func TestDualGalvoDrivesIndependentAxes(t *testing.T) {
	d := NewDualGalvo("d1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 5.0, 20.0)
	d.SetScanAnglesRad(math.Pi/6, math.Pi/9)
	assert.InDelta(t, math.Pi/6, d.First.ScanAngleRad, 1e-9)
	assert.InDelta(t, math.Pi/9, d.Second.ScanAngleRad, 1e-9)
}

func TestDualGalvoIntersectFindsNearestSubMirror(t *testing.T) {
	d := NewDualGalvo("d1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 5.0, 20.0)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(d, ray)
	require.True(t, ok)
	assert.InDelta(t, 5.0, hit.T, 1e-9)
}
