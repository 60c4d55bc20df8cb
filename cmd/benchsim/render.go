package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/solver1"
	"github.com/optobench/opticore/pkg/solver2"
	"github.com/optobench/opticore/pkg/solver3"
)

// newRenderCmd wires the full pipeline: Solver 2 builds the excitation
// field at the sample, then Solver 3 images it through the camera and
// samples it at the PMT, writing the camera's emission/excitation
// images as PNGs.
func newRenderCmd(maxDepth *int) *cobra.Command {
	var outDir string
	var samplesPerPixel int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run the full pipeline (Solver 2 + Solver 3) and write camera PNGs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLogger, err := newLogger()
			if err != nil {
				return err
			}
			defer closeLogger()

			bench := buildDemoScene()

			ray := core.NewRay(bench.Laser.Pose().Position, core.NewVec3(0, 0, 1))
			ray.WavelengthM = bench.Laser.WavelengthM
			ray.Intensity = 1
			ray.IsMainRay = true

			root := solver1.Trace(bench.Scene, ray, solver1.DefaultConfig())
			path := solver2.MainRayPath(root)
			segments := solver2.BuildSegments(
				bench.Laser.ApertureRadiusMM_, bench.Laser.WavelengthM, bench.Laser.PowerW,
				core.NewLinearJones(0), path,
			)

			excitation := solver3.ExcitationField{
				Branches: [][]solver2.Segment{segments},
			}

			cfg := solver3.DefaultConfig(samplesPerPixel)
			cfg.MaxDepth = *maxDepth

			emission, excitationImage, paths, err := solver3.RenderCamera(
				context.Background(), bench.Scene, bench.Camera, excitation,
				[]float64{bench.Laser.WavelengthM}, nil, 1, cfg,
			)
			if err != nil {
				return fmt.Errorf("render camera: %w", err)
			}
			logger.Printf("camera render collected %d visualization paths", len(paths))

			emissionRadiance, excitationValue, _ := solver3.RenderPMT(
				bench.Scene, bench.PMT, excitation, bench.Sample.EmissionWavelengthM, nil, 1, cfg,
			)
			logger.Printf("PMT: emission=%.6g excitation=%.6g", emissionRadiance, excitationValue)

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}
			tint := core.WavelengthToRGB(core.MToNm(bench.Laser.WavelengthM))
			if err := writeImagePNG(emission, tint, filepath.Join(outDir, "emission.png")); err != nil {
				return err
			}
			if err := writeImagePNG(excitationImage, tint, filepath.Join(outDir, "excitation.png")); err != nil {
				return err
			}
			fmt.Printf("wrote %s and %s\n", filepath.Join(outDir, "emission.png"), filepath.Join(outDir, "excitation.png"))
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "output/benchsim", "directory to write rendered PNGs to")
	cmd.Flags().IntVar(&samplesPerPixel, "samples-per-pixel", 8, "backward samples per pixel")
	return cmd
}

// writeImagePNG normalizes img's values to its own peak and tints them
// with the given color, the same "max-normalize then tint" approach the
// teacher's renderer uses for tonemapping before PNG encoding.
func writeImagePNG(img *solver3.Image, tint core.Vec3, path string) error {
	peak := 0.0
	for _, v := range img.Data {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			level := math.Sqrt(img.At(x, y) / peak) // gamma-ish tonemap
			out.Set(x, y, color.RGBA{
				R: uint8(255 * clamp01(level*tint.X)),
				G: uint8(255 * clamp01(level*tint.Y)),
				B: uint8(255 * clamp01(level*tint.Z)),
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, out)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
