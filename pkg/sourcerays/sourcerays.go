// Package sourcerays builds the initial ray set Solver 1/2/3 trace from
// a scene's emitters (spec.md §4.8): each Laser contributes an axial
// main ray plus a ring fan sized and positioned to uniformly sample its
// aperture, each Lamp contributes one main ray per emitted band at half
// ring density, and each PMT contributes a single preview ray for
// layout feedback. Grounded on the teacher's pkg/renderer/camera.go
// GetRay shape (a small, pure function mapping a sample parameter to a
// concrete core.Ray) generalized from "one ray per screen sample" to
// "one ray fan per scene emitter".
package sourcerays

import (
	"math"

	"github.com/optobench/opticore/pkg/components"
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Mode selects how much of an emitter's ray fan to generate. Center is
// the fast layout-feedback pass (main rays only); Full generates the
// complete ring set spec.md §4.8 describes.
type Mode int

const (
	Center Mode = iota
	Full
)

// OriginOffsetMM is how far outside its own housing a source ray
// starts, so it cannot immediately re-intersect the emitter that
// spawned it (spec.md §4.8's "origin offset" note).
const OriginOffsetMM = 2.0

// ringRotationStep is the per-ring rotation (spec.md §4.8) that keeps
// successive rings from projecting onto the same 2D lines in a
// side-view visualization.
const ringRotationStep = math.Pi / 7

// Generate walks every component in scene and produces the combined
// source ray set: one fan per Laser/Lamp/PMT found, in scene order.
func Generate(scene *scenegraph.Scene, requestedRingRayCount int, mode Mode) []core.Ray {
	var rays []core.Ray
	for _, c := range scene.Components {
		switch emitter := c.(type) {
		case *components.Laser:
			rays = append(rays, GenerateLaserRays(emitter, requestedRingRayCount, mode)...)
		case *components.Lamp:
			rays = append(rays, GenerateLampRays(emitter, requestedRingRayCount, mode)...)
		case *components.PMT:
			rays = append(rays, GeneratePMTPreviewRay(emitter))
		}
	}
	return rays
}

// snapRingCount rounds requested up to the next complete boundary
// 24 + 12k (k >= 0) so every ring spec.md §4.8 describes is full: one
// 24-ray outer ring plus k 12-ray inner rings.
func snapRingCount(requested int) (innerRings int, total int) {
	if requested <= 24 {
		return 0, 24
	}
	innerRings = (requested - 24 + 11) / 12
	return innerRings, 24 + 12*innerRings
}

// binarySubdivisionFractions returns the first n radius fractions of
// the breadth-first binary subdivision spec.md §4.8 names: level L
// (0-indexed) contributes 2^L fractions (2j+1)/2^(L+1) for
// j = 0..2^L-1 in ascending order, so successive inner rings fill the
// aperture uniformly without ever repeating a radius.
func binarySubdivisionFractions(n int) []float64 {
	fractions := make([]float64, 0, n)
	for level := 0; len(fractions) < n; level++ {
		count := 1 << uint(level)
		denom := float64(uint(1) << uint(level+1))
		for j := 0; j < count && len(fractions) < n; j++ {
			fractions = append(fractions, float64(2*j+1)/denom)
		}
	}
	return fractions
}

// ring builds one fan of rays at radiusFractionOfAperture, evenly
// spaced in angle and rotated by ringIndex*pi/7, parallel to the
// emitter's local +Z axis, starting OriginOffsetMM outside the
// housing.
func ring(pose *core.Pose, apertureRadiusMM, radiusFraction float64, count, ringIndex int, wavelengthM, intensityPerRay float64, coherent bool, sourceID string) []core.Ray {
	rays := make([]core.Ray, 0, count)
	radiusMM := radiusFraction * apertureRadiusMM
	rotation := float64(ringIndex) * ringRotationStep
	weight := intensityPerRay
	if coherent {
		weight *= math.Exp(-2 * radiusFraction * radiusFraction)
	}
	for j := 0; j < count; j++ {
		angle := 2*math.Pi*float64(j)/float64(count) + rotation
		localOrigin := core.NewVec3(radiusMM*math.Cos(angle), radiusMM*math.Sin(angle), OriginOffsetMM)
		worldOrigin := pose.LocalToWorld().TransformPoint(localOrigin)
		worldDirection := pose.Rotation.RotateVector(core.NewVec3(0, 0, 1)).Normalize()

		ray := core.NewRay(worldOrigin, worldDirection)
		ray.WavelengthM = wavelengthM
		ray.Intensity = weight
		ray.Coherence = coherenceOf(coherent)
		ray.Polarization = polarizationOf(coherent)
		ray.SourceID = sourceID
		rays = append(rays, ray)
	}
	return rays
}

func coherenceOf(coherent bool) core.Coherence {
	if coherent {
		return core.Coherent
	}
	return core.Incoherent
}

func polarizationOf(coherent bool) core.Jones {
	if coherent {
		return core.NewLinearJones(0)
	}
	return core.UnpolarizedJones()
}

// mainRay builds an emitter's single axial skeleton ray, the path
// Solver 2 propagates its Gaussian beam q-parameter along.
func mainRay(pose *core.Pose, wavelengthM, powerW float64, coherent bool, sourceID string) core.Ray {
	localOrigin := core.NewVec3(0, 0, OriginOffsetMM)
	worldOrigin := pose.LocalToWorld().TransformPoint(localOrigin)
	worldDirection := pose.Rotation.RotateVector(core.NewVec3(0, 0, 1)).Normalize()

	ray := core.NewRay(worldOrigin, worldDirection)
	ray.WavelengthM = wavelengthM
	ray.Intensity = powerW
	ray.Coherence = coherenceOf(coherent)
	ray.Polarization = polarizationOf(coherent)
	ray.SourceID = sourceID
	ray.IsMainRay = true
	return ray
}

// GenerateLaserRays builds a Laser's main ray plus ring fan (coherent
// source; rings receive the Gaussian apodization weighting spec.md
// §4.8 names).
func GenerateLaserRays(laser *components.Laser, requestedRingRayCount int, mode Mode) []core.Ray {
	rays := []core.Ray{mainRay(laser.Pose(), laser.WavelengthM, laser.PowerW, true, laser.ID())}
	if mode == Center {
		return rays
	}

	innerRings, total := snapRingCount(requestedRingRayCount)
	perRay := laser.PowerW / float64(total)
	rays = append(rays, ring(laser.Pose(), laser.ApertureRadiusMM_, 1.0, 24, 0, laser.WavelengthM, perRay, true, laser.ID())...)

	fractions := binarySubdivisionFractions(innerRings)
	for i, fraction := range fractions {
		rays = append(rays, ring(laser.Pose(), laser.ApertureRadiusMM_, fraction, 12, i+1, laser.WavelengthM, perRay, true, laser.ID())...)
	}
	return rays
}

// GenerateLampRays builds a Lamp's per-band main ray plus half-density
// ring fan (incoherent source; spec.md §4.8's "multi-band lamps halve
// ring density").
func GenerateLampRays(lamp *components.Lamp, requestedRingRayCount int, mode Mode) []core.Ray {
	var rays []core.Ray
	bands := lamp.BandsM
	if len(bands) == 0 {
		return rays
	}
	powerPerBand := lamp.PowerW / float64(len(bands))

	for _, wavelengthM := range bands {
		rays = append(rays, mainRay(lamp.Pose(), wavelengthM, powerPerBand, false, lamp.ID()))
		if mode == Center {
			continue
		}

		halvedRequest := requestedRingRayCount / 2
		innerRings, total := snapRingCount(halvedRequest)
		perRay := powerPerBand / float64(total)
		rays = append(rays, ring(lamp.Pose(), lamp.ApertureRadiusMM_, 1.0, 24, 0, wavelengthM, perRay, false, lamp.ID())...)

		fractions := binarySubdivisionFractions(innerRings)
		for i, fraction := range fractions {
			rays = append(rays, ring(lamp.Pose(), lamp.ApertureRadiusMM_, fraction, 12, i+1, wavelengthM, perRay, false, lamp.ID())...)
		}
	}
	return rays
}

// GeneratePMTPreviewRay builds the single axial layout-feedback ray a
// PMT contributes; it carries no real power, existing only so the
// scene preview shows where the detector is looking.
func GeneratePMTPreviewRay(pmt *components.PMT) core.Ray {
	ray := mainRay(pmt.Pose(), 0, 0, false, pmt.ID())
	ray.IsMainRay = true
	return ray
}
