package animator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/components"
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

func TestPhaseRepeatFoldsModuloPeriod(t *testing.T) {
	assert.InDelta(t, 0.5, phase(1500, 1000, true), 1e-9)
	assert.InDelta(t, 0.0, phase(2000, 1000, true), 1e-9)
}

func TestPhaseNonRepeatClampsAtOne(t *testing.T) {
	assert.InDelta(t, 1.0, phase(5000, 1000, false), 1e-9)
	assert.InDelta(t, 0.25, phase(250, 1000, false), 1e-9)
}

func TestEvaluateLinearInterpolates(t *testing.T) {
	assert.InDelta(t, 5.0, evaluate(Linear, 0, 10, 0.5, 0), 1e-9)
}

func TestEvaluateSinusoidalStartsAtMidpointAndPeaksAtQuarter(t *testing.T) {
	v := evaluate(Sinusoidal, 0, 10, 0, 0)
	assert.InDelta(t, 5.0, v, 1e-9)
	vQuarter := evaluate(Sinusoidal, 0, 10, 0.25, 0)
	assert.InDelta(t, 10.0, vQuarter, 1e-9)
}

func TestEvaluateDiscreteSteps(t *testing.T) {
	// 4 discrete steps over [0,30]: values 0, 10, 20, 30.
	assert.InDelta(t, 0.0, evaluate(Discrete, 0, 30, 0.0, 4), 1e-9)
	assert.InDelta(t, 10.0, evaluate(Discrete, 0, 30, 0.3, 4), 1e-9)
	assert.InDelta(t, 30.0, evaluate(Discrete, 0, 30, 0.999, 4), 1e-9)
}

func newTestScene() (*scenegraph.Scene, *components.Galvo) {
	scene := scenegraph.NewScene()
	pose := core.NewPose(core.NewVec3(1, 2, 3), core.IdentityQuaternion)
	galvo := components.NewGalvo("galvo1", pose, 5, core.NewVec3(0, 1, 0))
	scene.Add(galvo)
	return scene, galvo
}

func TestTickLinearPositionChannelMovesComponent(t *testing.T) {
	scene, galvo := newTestScene()
	a := NewAnimator()
	before := galvo.Version()

	a.AddChannel(&Channel{
		ID: "pos-x", ComponentID: galvo.ID(), Prop: PositionX,
		From: 0, To: 10, PeriodMS: 1000, Repeat: false, Easing: Linear,
	}, scene)

	changed := a.Tick(500, scene)
	assert.True(t, changed)
	assert.InDelta(t, 5.0, galvo.Pose().Position.X, 1e-9)
	assert.Greater(t, galvo.Version(), before)
}

func TestTickGalvoScanAngleDispatch(t *testing.T) {
	scene, galvo := newTestScene()
	a := NewAnimator()
	a.AddChannel(&Channel{
		ID: "scan", ComponentID: galvo.ID(), Prop: GalvoScanAngleRad,
		From: 0, To: math.Pi / 4, PeriodMS: 1000, Repeat: false, Easing: Linear,
	}, scene)

	a.Tick(1000, scene)
	assert.InDelta(t, math.Pi/4, galvo.ScanAngleRad, 1e-9)
}

func TestTickDualGalvoDispatchesIndependentAxes(t *testing.T) {
	scene := scenegraph.NewScene()
	pose := core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion)
	dg := components.NewDualGalvo("scanner", pose, 5, 20)
	scene.Add(dg)

	a := NewAnimator()
	a.AddChannel(&Channel{
		ID: "x", ComponentID: dg.ID(), Prop: DualGalvoScanAngleXRad,
		From: 0, To: 0.2, PeriodMS: 1000, Easing: Linear,
	}, scene)
	a.AddChannel(&Channel{
		ID: "y", ComponentID: dg.ID(), Prop: DualGalvoScanAngleYRad,
		From: 0, To: 0.4, PeriodMS: 1000, Easing: Linear,
	}, scene)

	a.Tick(1000, scene)
	assert.InDelta(t, 0.2, dg.First.ScanAngleRad, 1e-9)
	assert.InDelta(t, 0.4, dg.Second.ScanAngleRad, 1e-9)
}

func TestTickPolygonScannerBumpsVersion(t *testing.T) {
	scene := scenegraph.NewScene()
	pose := core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion)
	ps := components.NewPolygonScanner("poly", pose, 8, 10, 3)
	scene.Add(ps)
	before := ps.Version()

	a := NewAnimator()
	a.AddChannel(&Channel{
		ID: "spin", ComponentID: ps.ID(), Prop: PolygonScannerRotationAngleRad,
		From: 0, To: math.Pi, PeriodMS: 1000, Repeat: true, Easing: Linear,
	}, scene)

	changed := a.Tick(500, scene)
	assert.True(t, changed)
	assert.InDelta(t, math.Pi/2, ps.RotationAngleRad, 1e-9)
	assert.Greater(t, ps.Version(), before)
}

func TestTickRotationEulerComposesAgainstRestRotation(t *testing.T) {
	scene, galvo := newTestScene()
	rest := galvo.Pose().Rotation
	a := NewAnimator()
	a.AddChannel(&Channel{
		ID: "rot-y", ComponentID: galvo.ID(), Prop: RotationEulerY,
		From: 0, To: math.Pi / 2, PeriodMS: 1000, Easing: Linear,
	}, scene)

	a.Tick(1000, scene)

	want := rest.Mul(core.FromAxisAngle(core.NewVec3(0, 1, 0), math.Pi/2))
	got := galvo.Pose().Rotation
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
	assert.InDelta(t, want.Z, got.Z, 1e-9)
	assert.InDelta(t, want.W, got.W, 1e-9)
}

func TestTickMissingComponentIsSkippedWithoutPanic(t *testing.T) {
	scene, _ := newTestScene()
	a := NewAnimator()
	a.AddChannel(&Channel{
		ID: "ghost", ComponentID: "does-not-exist", Prop: PositionX,
		From: 0, To: 1, PeriodMS: 1000, Easing: Linear,
	}, scene)

	changed := a.Tick(500, scene)
	assert.False(t, changed)
}

func TestRemoveChannelRestoresPreAnimationValue(t *testing.T) {
	scene, galvo := newTestScene()
	original := galvo.Pose().Position.X
	a := NewAnimator()

	a.AddChannel(&Channel{
		ID: "pos-x", ComponentID: galvo.ID(), Prop: PositionX,
		From: original, To: 99, PeriodMS: 1000, Easing: Linear, Restore: true,
	}, scene)

	a.Tick(1000, scene)
	assert.InDelta(t, 99.0, galvo.Pose().Position.X, 1e-9)

	removed := a.RemoveChannel("pos-x", scene)
	require.True(t, removed)
	assert.InDelta(t, original, galvo.Pose().Position.X, 1e-9)
}

func TestRemoveChannelWithoutRestoreLeavesValueInPlace(t *testing.T) {
	scene, galvo := newTestScene()
	a := NewAnimator()
	a.AddChannel(&Channel{
		ID: "pos-x", ComponentID: galvo.ID(), Prop: PositionX,
		From: 0, To: 99, PeriodMS: 1000, Easing: Linear, Restore: false,
	}, scene)

	a.Tick(1000, scene)
	assert.InDelta(t, 99.0, galvo.Pose().Position.X, 1e-9)

	removed := a.RemoveChannel("pos-x", scene)
	require.True(t, removed)
	assert.InDelta(t, 99.0, galvo.Pose().Position.X, 1e-9)
}

func TestRemoveChannelUnknownIDReturnsFalse(t *testing.T) {
	scene, _ := newTestScene()
	a := NewAnimator()
	assert.False(t, a.RemoveChannel("nope", scene))
}

func TestTickRepeatingChannelWrapsAcrossMultipleTicks(t *testing.T) {
	scene, galvo := newTestScene()
	a := NewAnimator()
	a.AddChannel(&Channel{
		ID: "pos-x", ComponentID: galvo.ID(), Prop: PositionX,
		From: 0, To: 10, PeriodMS: 1000, Repeat: true, Easing: Linear,
	}, scene)

	a.Tick(1200, scene)
	assert.InDelta(t, 2.0, galvo.Pose().Position.X, 1e-9)
}
