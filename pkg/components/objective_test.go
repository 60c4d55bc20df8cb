package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

func TestObjectiveIntersectDispatchesToNearestElement(t *testing.T) {
	mirror := NewCircularMirror("mirror1", core.NewPose(core.NewVec3(0, 0, 5), core.IdentityQuaternion), 5.0)
	obj := NewObjective("obj1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion),
		[]scenegraph.Component{mirror}, 3.0, 0.8, 40.0, 45.0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(obj, ray)
	require.True(t, ok)
	assert.InDelta(t, 5.0, hit.T, 1e-9)
}

func TestObjectiveInteractDelegatesToHitElement(t *testing.T) {
	mirror := NewCircularMirror("mirror1", core.NewPose(core.NewVec3(0, 0, 5), core.IdentityQuaternion), 5.0)
	obj := NewObjective("obj1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion),
		[]scenegraph.Component{mirror}, 3.0, 0.8, 40.0, 45.0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := scenegraph.ChkIntersection(obj, ray)
	require.True(t, ok)

	result := obj.Interact(ray, hit)
	require.Len(t, result.Rays, 1)
	assert.InDelta(t, -1.0, result.Rays[0].Direction.Z, 1e-9)
}

func TestObjectiveApertureRadiusDerivedFromNAAndWorkingDistance(t *testing.T) {
	obj := NewObjective("obj1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion),
		nil, 3.0, 0.8, 40.0, 45.0)
	radius, ok := obj.ApertureRadiusMM()
	require.True(t, ok)
	assert.InDelta(t, 2.4, radius, 1e-9)
}

func TestObjectiveApertureRadiusInvalidForDegenerateNA(t *testing.T) {
	obj := NewObjective("obj1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion),
		nil, 3.0, 1.0, 40.0, 45.0)
	_, ok := obj.ApertureRadiusMM()
	assert.False(t, ok)
}

func TestObjectiveABCDComposesElementMatrices(t *testing.T) {
	lens := NewIdealLens("lens1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 5.0, 20.0)
	obj := NewObjective("obj1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion),
		[]scenegraph.Component{lens}, 3.0, 0.8, 40.0, 45.0)

	abcd, ok := obj.ABCD(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)))
	require.True(t, ok)
	assert.InDelta(t, -1.0/20.0, abcd.Tangential.C, 1e-9)
}
