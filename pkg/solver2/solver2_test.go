package solver2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optobench/opticore/pkg/components"
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
	"github.com/optobench/opticore/pkg/solver1"
)

// collimatedSegment builds a single on-axis Segment standing in for a
// beam at its waist at the origin, for tests that only need one leg.
func collimatedSegment(waistMM, wavelengthM, powerW float64, polarization core.Jones) []Segment {
	lambdaMM := wavelengthM * 1000
	zR := math.Pi * waistMM * waistMM / lambdaMM
	q := complex(0, zR)
	return []Segment{{
		Origin:           core.NewVec3(0, 0, 0),
		Axis:             core.NewVec3(0, 0, 1),
		LengthMM:         100,
		QTangentialStart: q,
		QSagittalStart:   q,
		RefractiveIndex:  1,
		WavelengthM:      wavelengthM,
		PowerWStart:      powerW,
		Polarization:     polarization,
	}}
}

func TestMainRayPathFollowsMarkedBranch(t *testing.T) {
	mainChild := solver1.Segment{Ray: core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))}
	mainChild.Ray.IsMainRay = true
	otherChild := solver1.Segment{Ray: core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0))}

	root := solver1.Segment{
		Ray:      core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
		Children: []solver1.Segment{otherChild, mainChild},
	}
	root.Ray.IsMainRay = true

	path := MainRayPath(root)
	require.Len(t, path, 2)
	assert.Equal(t, core.NewVec3(0, 0, 1), path[1].Ray.Direction)
}

func TestMainRayPathStopsWhenNoChildIsMarked(t *testing.T) {
	child := solver1.Segment{Ray: core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))}
	root := solver1.Segment{
		Ray:      core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
		Children: []solver1.Segment{child},
	}
	root.Ray.IsMainRay = true

	path := MainRayPath(root)
	assert.Len(t, path, 1)
}

func TestQueryIntensityPeaksOnAxis(t *testing.T) {
	segs := collimatedSegment(1.0, 633e-9, 1.0, core.NewLinearJones(0))
	onAxis, _, _, ok := QueryIntensity(core.NewVec3(0, 0, 50), segs)
	require.True(t, ok)
	offAxis, _, _, ok := QueryIntensity(core.NewVec3(2, 0, 50), segs)
	require.True(t, ok)
	assert.Greater(t, onAxis, offAxis)
	assert.Greater(t, onAxis, 0.0)
}

func TestQueryIntensityRejectsFarOffAxisPoint(t *testing.T) {
	segs := collimatedSegment(0.1, 633e-9, 1.0, core.NewLinearJones(0))
	_, _, _, ok := QueryIntensity(core.NewVec3(50, 0, 50), segs)
	assert.False(t, ok)
}

func TestQueryIntensityMultiBeamOrthogonalPolarizationSumsIncoherently(t *testing.T) {
	point := core.NewVec3(0, 0, 0)
	branchA := collimatedSegment(1.0, 633e-9, 1.0, core.NewLinearJones(0))
	branchB := collimatedSegment(1.0, 633e-9, 1.0, core.NewLinearJones(math.Pi/2))

	single, _, _, ok := QueryIntensity(point, branchA)
	require.True(t, ok)

	combined := QueryIntensityMultiBeam(point, [][]Segment{branchA, branchB})
	assert.InDelta(t, 2*single, combined, 1e-9)
}

func TestQueryIntensityMultiBeamCoPolarizedInPhaseInterferesConstructively(t *testing.T) {
	point := core.NewVec3(0, 0, 0)
	branchA := collimatedSegment(1.0, 633e-9, 1.0, core.NewLinearJones(0))
	branchB := collimatedSegment(1.0, 633e-9, 1.0, core.NewLinearJones(0))

	single, _, _, ok := QueryIntensity(point, branchA)
	require.True(t, ok)

	combined := QueryIntensityMultiBeam(point, [][]Segment{branchA, branchB})
	assert.InDelta(t, 4*single, combined, 1e-6)
}

func TestQueryIntensityMultiBeamCoPolarizedOutOfPhaseInterferesDestructively(t *testing.T) {
	point := core.NewVec3(0, 0, 0)
	branchA := collimatedSegment(1.0, 633e-9, 1.0, core.NewLinearJones(0))
	branchB := collimatedSegment(1.0, 633e-9, 1.0, core.NewLinearJones(0))
	lambdaMM := 633e-9 * 1000
	branchB[0].OPLStartMM = lambdaMM / 2 // half-wave -> pi phase shift

	combined := QueryIntensityMultiBeam(point, [][]Segment{branchA, branchB})
	assert.InDelta(t, 0, combined, 1e-6)
}

// TestBeamExpanderScenario traces a real on-axis ray through two
// idealized lenses spaced so d = f1 + f2 (an afocal beam expander) and
// confirms the resulting Gaussian beam stays collimated with its waist
// magnified by f2/f1, per spec.md's beam-expander acceptance scenario.
func TestBeamExpanderScenario(t *testing.T) {
	scene := scenegraph.NewScene()
	lens1 := components.NewIdealLens("lens1", core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion), 10, 50)
	lens2 := components.NewIdealLens("lens2", core.NewPose(core.NewVec3(0, 0, 150), core.IdentityQuaternion), 10, 100)
	scene.Add(lens1)
	scene.Add(lens2)

	wavelengthM := 633e-9
	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	ray.WavelengthM = wavelengthM
	ray.IsMainRay = true

	root := solver1.Trace(scene, ray, solver1.DefaultConfig())
	path := MainRayPath(root)
	require.GreaterOrEqual(t, len(path), 3)

	segments := BuildSegments(2.0, wavelengthM, 1.0, core.NewLinearJones(0), path)
	require.Len(t, segments, len(path))

	final := segments[len(segments)-1]
	waistMM := waistRadiusMM(final.QTangentialStart, wavelengthM)
	assert.InDelta(t, 4.0, waistMM, 0.05)

	invQ := 1 / final.QTangentialStart
	assert.InDelta(t, 0, real(invQ), 1e-6, "expander output should be collimated (planar wavefront)")
}
