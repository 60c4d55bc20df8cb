// Package solver2 builds the Gaussian beam envelope along a single
// traced main ray (spec.md §4.6): it walks the Solver 1 path the ray's
// IsMainRay branch actually took, turning it into a world-anchored
// chain of Segments (q-parameter, power, OPL, and Jones polarization
// all tracked per leg), and answers the two point queries callers
// need: queryIntensity (one beam) and queryIntensityMultiBeam
// (coherent/incoherent superposition of several branches at one
// point).
package solver2

import (
	"math"
	"math/cmplx"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/solver1"
)

// RefractiveBody is implemented by any component whose refractive
// index varies with wavelength (Prism, SphericalLens, CylindricalLens).
// Components that don't implement it are treated as non-dispersive air
// gaps for OPL purposes.
type RefractiveBody interface {
	RefractiveIndexAt(wavelengthM float64) float64
}

// Segment is one leg of a traced main-ray path: a straight run of
// length LengthMM starting at Origin along unit vector Axis, carrying
// the beam's q-parameters, power, and accumulated optical path length
// at the leg's start.
type Segment struct {
	Origin core.Vec3
	Axis   core.Vec3

	LengthMM float64

	QTangentialStart complex128
	QSagittalStart   complex128
	RefractiveIndex  float64
	WavelengthM      float64
	PowerWStart      float64
	AbsorptionPerMM  float64
	OPLStartMM       float64
	Polarization     core.Jones
}

// sample interpolates the segment's state at distance tMM from Origin
// along Axis (0 <= tMM <= LengthMM).
func (s Segment) sample(tMM float64) (qT, qS complex128, powerW, oplMM float64) {
	qT = s.QTangentialStart + complex(tMM, 0)
	qS = s.QSagittalStart + complex(tMM, 0)
	powerW = s.PowerWStart * math.Exp(-s.AbsorptionPerMM*tMM)
	oplMM = s.OPLStartMM + s.RefractiveIndex*tMM
	return
}

// WaistRadiiMM returns the segment's tangential and sagittal 1/e^2
// intensity radii and power at its start, for callers (such as a CLI
// segment table) that want the beam's state without touching q-space
// directly.
func (s Segment) WaistRadiiMM() (tangentialMM, sagittalMM, powerW float64) {
	return waistRadiusMM(s.QTangentialStart, s.WavelengthM), waistRadiusMM(s.QSagittalStart, s.WavelengthM), s.PowerWStart
}

// waistRadiusMM recovers the 1/e^2 intensity radius from a q-parameter:
// w = sqrt(-lambda / (pi * Im(1/q))).
func waistRadiusMM(q complex128, wavelengthM float64) float64 {
	lambdaMM := wavelengthM * 1000
	invQ := 1 / q
	imInvQ := imag(invQ)
	if imInvQ >= -1e-30 {
		return math.Inf(1)
	}
	return math.Sqrt(-lambdaMM / (math.Pi * imInvQ))
}

// initialQ builds the q-parameter for a beam at its waist, sized so the
// waist radius equals apertureRadiusMM — used to reset a beam's q when
// an aperture narrower than the current beam truncates it (spec.md
// §4.6 step 4).
func initialQ(apertureRadiusMM, wavelengthM float64) complex128 {
	lambdaMM := wavelengthM * 1000
	zR := math.Pi * apertureRadiusMM * apertureRadiusMM / lambdaMM
	return complex(0, zR)
}

// MainRayPath walks down from root following, at every branch point,
// the single child ray marked IsMainRay, returning the linear sequence
// of nodes from source to the path's end (a leaf or an unmarked
// branch). The walk stops if no child is marked main, since that means
// the skeleton path terminated at this node.
func MainRayPath(root solver1.Segment) []solver1.Segment {
	path := []solver1.Segment{root}
	node := root
	for len(node.Children) > 0 {
		var next *solver1.Segment
		for i := range node.Children {
			if node.Children[i].Ray.IsMainRay {
				next = &node.Children[i]
				break
			}
		}
		if next == nil {
			break
		}
		path = append(path, *next)
		node = *next
	}
	return path
}

// BuildSegments turns a main-ray path (as returned by MainRayPath) into
// a chain of world-anchored Segments carrying a Gaussian beam's state,
// per spec.md §4.6 steps 1-4: each node's ray supplies the leg's
// origin/axis/length; a node whose arriving ray has a non-nil
// EntryPoint is traveling inside that node's Component, so the leg's
// medium (refractive index via RefractiveBody, absorption via
// AbsorptionCoefficient) comes from there instead of air. At a node
// with a Component, that component's ABCD and aperture are applied at
// the leg's end before starting the next leg.
func BuildSegments(waistMM, wavelengthM, powerW float64, polarization core.Jones, path []solver1.Segment) []Segment {
	if len(path) == 0 {
		return nil
	}

	qT := initialQ(waistMM, wavelengthM)
	qS := qT
	powerWCurrent := powerW
	oplMM := 0.0

	var segments []Segment
	for i, node := range path {
		lengthMM := float64(core.DefaultTerminalSegmentMM)
		if node.Hit != nil {
			lengthMM = node.Ray.InteractionDistanceMM
		}
		if lengthMM < 0 {
			lengthMM = 0
		}

		index := 1.0
		absorptionPerMM := 0.0
		if node.Ray.EntryPoint != nil && node.Component != nil {
			absorptionPerMM = node.Component.AbsorptionCoefficient()
			if body, ok := node.Component.(RefractiveBody); ok {
				index = body.RefractiveIndexAt(wavelengthM)
			}
		}

		seg := Segment{
			Origin:           node.Ray.Origin,
			Axis:             node.Ray.Direction.Normalize(),
			LengthMM:         lengthMM,
			QTangentialStart: qT,
			QSagittalStart:   qS,
			RefractiveIndex:  index,
			WavelengthM:      wavelengthM,
			PowerWStart:      powerWCurrent,
			AbsorptionPerMM:  absorptionPerMM,
			OPLStartMM:       oplMM,
			Polarization:     polarization,
		}
		segments = append(segments, seg)

		qT, qS, powerWCurrent, oplMM = seg.sample(lengthMM)

		if i == len(path)-1 || node.Component == nil {
			continue
		}
		if abcd, ok := node.Component.ABCD(node.Ray); ok {
			qT = abcd.Tangential.Apply(qT)
			qS = abcd.Sagittal.Apply(qS)
		}
		if apertureRadiusMM, ok := node.Component.ApertureRadiusMM(); ok {
			wT := waistRadiusMM(qT, wavelengthM)
			wS := waistRadiusMM(qS, wavelengthM)
			if apertureRadiusMM < 2*math.Max(wT, wS) {
				reset := initialQ(apertureRadiusMM, wavelengthM)
				qT, qS = reset, reset
			}
		}
	}
	return segments
}

// worldUp is the fixed astigmatic-axis convention spec.md §9 uses: the
// tangential plane is the beam's Y axis.
var worldUp = core.NewVec3(0, 1, 0)

// axes returns the sagittal and tangential unit vectors perpendicular
// to a segment's propagation axis, falling back to world X when the
// axis is parallel to worldUp.
func axes(axis core.Vec3) (sagittal, tangential core.Vec3) {
	sagittal = axis.Cross(worldUp)
	if sagittal.LengthSquared() < 1e-12 {
		sagittal = axis.Cross(core.NewVec3(1, 0, 0))
	}
	sagittal = sagittal.Normalize()
	tangential = sagittal.Cross(axis).Normalize()
	return
}

// QueryIntensity finds the segment in segments whose axis passes
// nearest point, samples its Gaussian beam state there, and returns
// the relative intensity, polarization, and accumulated phase at that
// point. ok is false when point lies too far off every segment's axis
// (beyond 5x the larger waist) or no segment's waist is finite and
// positive there.
func QueryIntensity(point core.Vec3, segments []Segment) (intensity float64, polarization core.Jones, phaseRad float64, ok bool) {
	var best Segment
	var bestTMM, bestPerpMM float64
	found := false

	for _, seg := range segments {
		if seg.Axis.IsZero() {
			continue
		}
		offset := point.Subtract(seg.Origin)
		tMM := offset.Dot(seg.Axis)
		if tMM < 0 {
			tMM = 0
		}
		if tMM > seg.LengthMM {
			tMM = seg.LengthMM
		}
		closest := seg.Origin.Add(seg.Axis.Multiply(tMM))
		perpMM := point.Subtract(closest).Length()
		if !found || perpMM < bestPerpMM {
			best, bestTMM, bestPerpMM = seg, tMM, perpMM
			found = true
		}
	}
	if !found {
		return 0, core.Jones{}, 0, false
	}

	qT, qS, powerW, oplMM := best.sample(bestTMM)
	wT := waistRadiusMM(qT, best.WavelengthM)
	wS := waistRadiusMM(qS, best.WavelengthM)
	if math.IsInf(wT, 1) || math.IsInf(wS, 1) || wT <= 0 || wS <= 0 {
		return 0, core.Jones{}, 0, false
	}
	if bestPerpMM > 5*math.Max(wT, wS) {
		return 0, core.Jones{}, 0, false
	}

	sagittalAxis, tangentialAxis := axes(best.Axis)
	offset := point.Subtract(best.Origin.Add(best.Axis.Multiply(bestTMM)))
	x := offset.Dot(sagittalAxis)
	y := offset.Dot(tangentialAxis)

	peak := powerW / (math.Pi * wS * wT)
	exponent := -2 * (x*x/(wS*wS) + y*y/(wT*wT))
	intensity = peak * math.Exp(exponent)

	lambdaMM := best.WavelengthM * 1000
	phaseRad = 2 * math.Pi * oplMM / lambdaMM

	return intensity, best.Polarization, phaseRad, true
}

// QueryIntensityMultiBeam sums several branches' contributions at one
// point. Each branch's amplitude is reconstructed per Jones component
// (sqrt(intensity) at the branch's own phase, scaled by its
// polarization), so identical co-polarized in-phase branches add
// coherently while orthogonally-polarized branches land in disjoint
// Ex/Ey components and add incoherently — matching spec.md §4.1's
// Coherence semantics without any caller-supplied coherent/incoherent
// flag.
func QueryIntensityMultiBeam(point core.Vec3, branches [][]Segment) float64 {
	var sumEx, sumEy complex128
	for _, branch := range branches {
		intensity, polarization, phaseRad, ok := QueryIntensity(point, branch)
		if !ok || intensity <= 0 {
			continue
		}
		amplitude := cmplx.Rect(math.Sqrt(intensity), phaseRad)
		sumEx += amplitude * polarization.Ex
		sumEy += amplitude * polarization.Ey
	}
	return cmplx.Abs(sumEx)*cmplx.Abs(sumEx) + cmplx.Abs(sumEy)*cmplx.Abs(sumEy)
}
