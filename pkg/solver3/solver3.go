// Package solver3 implements the backward Monte Carlo imager (spec.md
// §4.7): for each sensor pixel it samples a cone of backward rays,
// traces them through the scene with the same chkIntersection/Interact
// machinery Solver 1 uses (Snell and Fresnel are reciprocal, so no
// separate physics is needed), and accumulates radiance from whatever
// light source or fluorescent sample the backward ray eventually
// reaches. Grounded on the teacher's pkg/integrator path-tracing shape
// generalized from "forward radiance accumulation with Russian
// roulette" to "backward per-pixel sampling with explicit light-source/
// sample special cases and a reciprocal-physics generic fallback".
package solver3

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/optobench/opticore/pkg/components"
	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
	"github.com/optobench/opticore/pkg/solver2"
	"github.com/optobench/opticore/pkg/spectral"
)

// Config bounds the backward trace exactly the way solver1.Config
// bounds the forward one, plus the per-pixel sample count spec.md §4.7
// step 3 names.
type Config struct {
	MaxDepth              int
	MinThroughput         float64
	EscapeDistanceMM      float64
	SamplesPerPixel       int
	MaxVisualizationPaths int
}

func DefaultConfig(samplesPerPixel int) Config {
	return Config{
		MaxDepth:              core.MaxDepth,
		MinThroughput:         core.MinThroughput,
		EscapeDistanceMM:      core.EscapeDistanceMM,
		SamplesPerPixel:       samplesPerPixel,
		MaxVisualizationPaths: 256,
	}
}

// Image is a single-channel float buffer, row-major, row 0 at the top.
type Image struct {
	Width, Height int
	Data          []float64
}

func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Data: make([]float64, width*height)}
}

func (img *Image) At(x, y int) float64    { return img.Data[y*img.Width+x] }
func (img *Image) Set(x, y int, v float64) { img.Data[y*img.Width+x] = v }

// Path is one collected visualization path: the polyline the backward
// ray traced through the scene, plus the radiance it resolved to.
type Path struct {
	Points   []core.Vec3
	Radiance float64
	Pixel    [2]int
}

// ExcitationField answers queryIntensityMultiBeam at a world point by
// deferring directly to solver2's point query — the forward-propagated
// Solver 2 beam segments a backward ray consults wherever spec.md §4.7
// calls for "the excitation field". Branches holds one []solver2.Segment
// per independent beam (e.g. a laser's main path and a lamp's), summed
// per solver2's coherent/incoherent superposition rules.
type ExcitationField struct {
	Branches [][]solver2.Segment
}

func (f ExcitationField) QueryAt(worldPoint core.Vec3) float64 {
	return solver2.QueryIntensityMultiBeam(worldPoint, f.Branches)
}

// pixelWorldPoint maps a pixel index to a world-space sensor point:
// local +Z is the optical axis, and the transverse frame is oriented
// (via the pose's own rotation, normally built through
// scenegraph.Base.PointAlong/core.LookRotation) so world up maps to
// image +V, i.e. increasing row index moves down in local +Y.
func pixelWorldPoint(pose *core.Pose, widthMM, heightMM float64, resolutionX, resolutionY, px, py int) core.Vec3 {
	u := (float64(px)+0.5)/float64(resolutionX) - 0.5
	v := 0.5 - (float64(py)+0.5)/float64(resolutionY)
	local := core.NewVec3(u*widthMM, v*heightMM, 0)
	return pose.LocalToWorld().TransformPoint(local)
}

// backwardDirection draws a direction inside the sensor's acceptance
// cone (about the sensor's own local +Z, independent of pixel
// position — spec.md §4.7 step 3 parameterizes the cone solely by
// sensorNA) and rotates it into world space.
func backwardDirection(pose *core.Pose, sinThetaMax float64, sampler core.Sampler) core.Vec3 {
	local := core.ConeSample(sampler, sinThetaMax)
	return pose.Rotation.RotateVector(local).Normalize()
}

// traceBackward walks one backward probe ray through the scene,
// applying spec.md §4.7's special cases, and returns the resolved
// radiance plus the polyline of world points it passed through.
func traceBackward(scene *scenegraph.Scene, ray core.Ray, cfg Config, sampler core.Sampler, ignore scenegraph.Component, excitation ExcitationField, emissionProfile *spectral.Profile) (float64, []core.Vec3) {
	current := ray
	throughput := 1.0
	accumulatedFluorescence := 0.0
	path := []core.Vec3{current.Origin}

	for depth := 0; depth < cfg.MaxDepth; depth++ {
		if !current.IsValid() || throughput < cfg.MinThroughput {
			return accumulatedFluorescence, path
		}

		component, hit, ok := scene.NearestHit(current, cfg.EscapeDistanceMM)
		if !ok {
			term := current.At(cfg.EscapeDistanceMM)
			path = append(path, term)
			return accumulatedFluorescence, path
		}

		if depth == 0 && component == ignore {
			// The sensor itself sits at the origin of every probe ray;
			// step past it and keep tracing rather than terminating.
			current.Origin = hit.WorldPoint.Add(current.Direction.Multiply(core.Epsilon * 2))
			continue
		}

		path = append(path, hit.WorldPoint)

		switch c := component.(type) {
		case *components.Laser:
			if math.Abs(core.MToNm(c.WavelengthM)-core.MToNm(current.WavelengthM)) > 15 {
				return accumulatedFluorescence, path
			}
			return throughput*c.PowerW + accumulatedFluorescence, path

		case *components.Lamp:
			// No wavelength gate: the ray's wavelength was already drawn
			// from one of the active illumination wavelengths before the
			// trace started, so a Lamp struck here is presumed to be the
			// source that wavelength came from.
			return throughput*c.PowerW + accumulatedFluorescence, path

		case *components.SampleChamber:
			radiance, keepPath := traceSample(c.Sample, current, throughput, accumulatedFluorescence, excitation, emissionProfile)
			return radiance, append(path, keepPath...)

		case *components.Sample:
			radiance, keepPath := traceSample(c, current, throughput, accumulatedFluorescence, excitation, emissionProfile)
			return radiance, append(path, keepPath...)

		default:
			result := component.Interact(current, hit)
			if len(result.Rays) == 0 {
				return accumulatedFluorescence, path
			}
			if result.Passthrough && len(result.Rays) == 1 {
				current = result.Rays[0]
				if current.InternalPolyline != nil {
					path = append(path, current.InternalPolyline...)
				}
				continue
			}

			weights := make([]float64, len(result.Rays))
			total := 0.0
			for i, r := range result.Rays {
				weights[i] = r.Intensity
				total += r.Intensity
			}
			idx, _ := core.WeightedChoice(weights, sampler.Float64())
			if idx < 0 {
				return accumulatedFluorescence, path
			}
			incoming := current.Intensity
			if incoming < core.MinDenominator {
				incoming = core.MinDenominator
			}
			throughput *= total / incoming
			current = result.Rays[idx]
		}
	}
	return accumulatedFluorescence, path
}

// traceSample resolves spec.md §4.7's fluorescent-volume special case:
// chord length through the sample, excitation query at the chord
// midpoint, background illumination at the far plane, combined into
// one exit radiance at the near plane. The sample terminates the
// backward trace — everything beyond the far plane is already folded
// into the excitation field's forward-propagated beam state.
func traceSample(sample *components.Sample, ray core.Ray, throughput, accumulatedFluorescence float64, excitation ExcitationField, emissionProfile *spectral.Profile) (float64, []core.Vec3) {
	localRay := sample.Pose().ToLocal(ray)
	tNear, tFar, ok := sample.VolumeIntersect(localRay)
	if !ok {
		return accumulatedFluorescence, nil
	}

	chordLengthMM := tFar - tNear
	transmission := math.Exp(-sample.AbsorptionCoefficient() * chordLengthMM)

	midpointWorld := sample.Pose().LocalToWorld().TransformPoint(localRay.At((tNear + tFar) / 2))
	farWorld := sample.Pose().LocalToWorld().TransformPoint(localRay.At(tFar))

	excitationAtMidpoint := excitation.QueryAt(midpointWorld)
	emissionTransmission := 1.0
	if emissionProfile != nil {
		emissionTransmission = emissionProfile.Transmission(core.MToNm(ray.WavelengthM))
	}
	integratedFluorescence := accumulatedFluorescence + throughput*excitationAtMidpoint*sample.FluorescenceYield*emissionTransmission*chordLengthMM

	background := excitation.QueryAt(farWorld)
	exitRadiance := throughput*(background*transmission) + integratedFluorescence

	return exitRadiance, []core.Vec3{midpointWorld, farWorld}
}

// pickWavelengthM selects one wavelength from the active set per
// spec.md §4.7 step 3: camera mode samples uniformly across the
// emission peak plus every illumination wavelength; PMT mode always
// uses the emission peak.
func pickWavelengthM(wavelengthsM []float64, sampler core.Sampler) float64 {
	if len(wavelengthsM) == 0 {
		return 0
	}
	idx := int(sampler.Float64() * float64(len(wavelengthsM)))
	if idx >= len(wavelengthsM) {
		idx = len(wavelengthsM) - 1
	}
	return wavelengthsM[idx]
}

// RenderCamera produces the emission and excitation images for a
// Camera sensor (spec.md §4.7), plus a golden-ratio-subsampled set of
// visualization paths capped at cfg.MaxVisualizationPaths.
func RenderCamera(ctx context.Context, scene *scenegraph.Scene, camera *components.Camera, excitation ExcitationField, wavelengthsM []float64, emissionProfile *spectral.Profile, seed int64, cfg Config) (emission, excitationImage *Image, paths []Path, err error) {
	emission = NewImage(camera.ResolutionX, camera.ResolutionY)
	excitationImage = NewImage(camera.ResolutionX, camera.ResolutionY)
	allPaths := make([][]Path, camera.ResolutionY)

	g, ctx := errgroup.WithContext(ctx)
	for row := 0; row < camera.ResolutionY; row++ {
		row := row
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			sampler := core.NewRandomSampler(seed + int64(row))
			rowPaths := make([]Path, 0, camera.ResolutionX)
			for px := 0; px < camera.ResolutionX; px++ {
				origin := pixelWorldPoint(camera.Pose(), camera.WidthMM, camera.HeightMM, camera.ResolutionX, camera.ResolutionY, px, row)
				excitationImage.Set(px, row, excitation.QueryAt(origin))

				var sum float64
				var brightestPath Path
				brightest := -1.0
				count := 0
				for _, wavelengthM := range wavelengthsM {
					for s := 0; s < cfg.SamplesPerPixel; s++ {
						direction := backwardDirection(camera.Pose(), camera.NA, sampler)
						probe := core.NewRay(origin, direction)
						probe.WavelengthM = wavelengthM
						probe.Polarization = core.NewLinearJones(core.UniformAngle(sampler))
						probe.Coherence = core.Incoherent

						radiance, pts := traceBackward(scene, probe, cfg, sampler, camera, excitation, emissionProfile)
						sum += radiance
						count++
						if radiance > brightest {
							brightest = radiance
							brightestPath = Path{Points: pts, Radiance: radiance, Pixel: [2]int{px, row}}
						}
					}
				}
				if count > 0 {
					emission.Set(px, row, sum/float64(count))
				}
				if brightest >= 0 {
					rowPaths = append(rowPaths, brightestPath)
				}
			}
			allPaths[row] = rowPaths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	var flat []Path
	for _, row := range allPaths {
		flat = append(flat, row...)
	}
	indices := core.GoldenRatioSubsample(len(flat), cfg.MaxVisualizationPaths)
	paths = make([]Path, len(indices))
	for i, idx := range indices {
		paths[i] = flat[idx]
	}
	return emission, excitationImage, paths, nil
}

// RenderPMT is Solver 3's single-pixel special case: a point detector
// with no resolution grid, always sampling the emission peak
// wavelength (spec.md §4.7's "in PMT mode use the emission peak").
func RenderPMT(scene *scenegraph.Scene, pmt *components.PMT, excitation ExcitationField, emissionPeakM float64, emissionProfile *spectral.Profile, seed int64, cfg Config) (emissionRadiance, excitationValue float64, path Path) {
	sampler := core.NewRandomSampler(seed)
	origin := pmt.Pose().Position
	excitationValue = excitation.QueryAt(origin)

	var sum float64
	brightest := -1.0
	for s := 0; s < cfg.SamplesPerPixel; s++ {
		direction := backwardDirection(pmt.Pose(), pmt.NA, sampler)
		probe := core.NewRay(origin, direction)
		probe.WavelengthM = emissionPeakM
		probe.Polarization = core.NewLinearJones(core.UniformAngle(sampler))
		probe.Coherence = core.Incoherent

		radiance, pts := traceBackward(scene, probe, cfg, sampler, pmt, excitation, emissionProfile)
		sum += radiance
		if radiance > brightest {
			brightest = radiance
			path = Path{Points: pts, Radiance: radiance}
		}
	}
	if cfg.SamplesPerPixel > 0 {
		emissionRadiance = sum / float64(cfg.SamplesPerPixel)
	}
	return emissionRadiance, excitationValue, path
}
