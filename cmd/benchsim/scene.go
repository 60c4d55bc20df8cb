package main

import (
	"math"

	"github.com/optobench/opticore/pkg/components"
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// demoScene assembles a small fixed bench: a collimated laser firing
// down +Z through an ideal lens, onto a fluorescent sample, imaged by a
// camera on the far side and a single-point PMT beside it — enough to exercise
// all three solvers without needing a scene file loader (spec.md §8
// explicitly leaves persistence to the external collaborator).
type demoScene struct {
	Scene  *scenegraph.Scene
	Laser  *components.Laser
	Lens   *components.IdealLens
	Sample *components.SampleChamber
	Camera *components.Camera
	PMT    *components.PMT
}

func buildDemoScene() *demoScene {
	scene := scenegraph.NewScene()

	laser := components.NewLaser(
		"laser1",
		core.NewPose(core.NewVec3(0, 0, 0), core.IdentityQuaternion),
		2.0, 488e-9, 0.02,
	)

	lens := components.NewIdealLens(
		"lens1",
		core.NewPose(core.NewVec3(0, 0, 40), core.IdentityQuaternion),
		6.0, 40.0,
	)

	sample := components.NewSampleChamber(
		"sample1",
		core.NewPose(core.NewVec3(0, 0, 100), core.IdentityQuaternion),
		core.NewVec3(5, 5, 2),
	)
	sample.FluorescenceYield = 0.6
	sample.EmissionWavelengthM = 520e-9

	// The camera looks back down -Z toward the sample; the PMT sits
	// beside the sample at x=20 and looks along -X toward it.
	facingBack := core.FromAxisAngle(core.NewVec3(0, 1, 0), math.Pi)

	camera := components.NewCamera(
		"camera1",
		core.NewPose(core.NewVec3(0, 0, 160), facingBack),
		10, 10, 64, 64, 4, 0.1,
	)

	pmt := components.NewPMT(
		"pmt1",
		core.NewPose(core.NewVec3(20, 0, 100), core.FromAxisAngle(core.NewVec3(0, 1, 0), -math.Pi/2)),
		3.0, 0.2,
	)

	scene.Add(laser)
	scene.Add(lens)
	scene.Add(sample)
	scene.Add(camera)
	scene.Add(pmt)

	return &demoScene{Scene: scene, Laser: laser, Lens: lens, Sample: sample, Camera: camera, PMT: pmt}
}
