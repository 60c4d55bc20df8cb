package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

func TestIdealLensBendsOnAxisRayTowardFocus(t *testing.T) {
	lens := NewIdealLens("lens1", core.NewPose(core.NewVec3(0, 0, 10), core.IdentityQuaternion), 6.0, 40.0)

	ray := core.NewRay(core.NewVec3(3, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(lens, ray)
	require.True(t, ok)

	result := lens.Interact(ray, hit)
	require.Len(t, result.Rays, 1)
	assert.True(t, result.Passthrough)

	child := result.Rays[0]
	// The focal point sits on-axis 40mm beyond the lens (world z = 50);
	// an off-axis ray bent toward it must gain a negative X component.
	assert.Less(t, child.Direction.X, 0.0)
}

func TestIdealLensOnAxisRayIsUndeviated(t *testing.T) {
	lens := NewIdealLens("lens1", core.NewPose(core.NewVec3(0, 0, 10), core.IdentityQuaternion), 6.0, 40.0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(lens, ray)
	require.True(t, ok)

	result := lens.Interact(ray, hit)
	require.Len(t, result.Rays, 1)
	child := result.Rays[0]
	assert.InDelta(t, 0.0, child.Direction.X, 1e-9)
	assert.InDelta(t, 1.0, child.Direction.Z, 1e-9)
}

func TestIdealLensABCDMatchesThinLensFormula(t *testing.T) {
	lens := NewIdealLens("lens1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 6.0, 40.0)
	abcd, ok := lens.ABCD(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)))
	require.True(t, ok)
	assert.InDelta(t, -1.0/40.0, abcd.Tangential.C, 1e-12)
	assert.Equal(t, abcd.Tangential, abcd.Sagittal)
}
