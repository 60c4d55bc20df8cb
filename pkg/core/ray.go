package core

import "math"

// Coherence labels whether a ray's amplitude should be summed with phase
// (Coherent, used by laser sub-paths feeding Solver 2) or combined by
// intensity only (Incoherent, lamp/fluorescence contributions).
type Coherence int

const (
	Incoherent Coherence = iota
	Coherent
)

// Jones is a two-component complex polarization vector (Ex, Ey), each
// stored as a complex128; the zero value is the unpolarized
// bookkeeping default.
type Jones struct {
	Ex, Ey complex128
}

// NewLinearJones returns a unit-intensity Jones vector for light
// linearly polarized at angle theta (radians) from the local X axis.
func NewLinearJones(theta float64) Jones {
	return Jones{
		Ex: complex(math.Cos(theta), 0),
		Ey: complex(math.Sin(theta), 0),
	}
}

// UnpolarizedJones is the conventional stand-in used where a ray's
// polarization hasn't been resolved yet (e.g. freshly emitted from an
// incoherent lamp before any polarizing element).
func UnpolarizedJones() Jones {
	const invRt2 = 0.7071067811865476
	return Jones{Ex: complex(invRt2, 0), Ey: complex(invRt2, 0)}
}

// Negate flips the sign of both components — a metallic mirror's pi
// phase shift on reflection.
func (j Jones) Negate() Jones {
	return Jones{Ex: -j.Ex, Ey: -j.Ey}
}

// Intensity returns |Ex|^2 + |Ey|^2.
func (j Jones) Intensity() float64 {
	return real(j.Ex)*real(j.Ex) + imag(j.Ex)*imag(j.Ex) +
		real(j.Ey)*real(j.Ey) + imag(j.Ey)*imag(j.Ey)
}

// Ray carries one light sample through the scene. Direction is unit
// length by invariant. Wavelength is in meters (SI) as specified for
// the core's internal representation; component code that surfaces
// wavelength to a human (lamp bands, spectral profile cutoffs) converts
// to/from nanometers at that boundary, never internally.
type Ray struct {
	Origin    Vec3
	Direction Vec3

	WavelengthM float64   // wavelength in meters
	Intensity   float64   // power or relative amplitude
	Polarization Jones
	OpticalPathLengthMM float64 // accumulated OPL in millimeters
	FootprintRadiusMM   float64
	Coherence           Coherence

	// InteractionDistanceMM is set by the tracer once the nearest hit is
	// found; it marks this ray segment's visual length. Reset to 0 when
	// a child ray is spawned (see CloneForChild).
	InteractionDistanceMM float64

	// Visualization metadata. Authoritative only on the parent ray that
	// owns it; stripped when spawning children.
	EntryPoint      *Vec3    // where the ray entered a glass body
	InternalPolyline []Vec3  // internal bounce points inside a glass/prism body
	TerminationPoint *Vec3   // where an absorbed/trapped ray ends
	ExitSurfaceTag   string

	IsMainRay bool   // the single skeleton sub-path per source used by Solver 2
	SourceID  string // ties this ray back to its emitter
}

// NewRay creates a ray with sane non-visualization defaults; callers
// fill in the optical fields explicitly.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Intensity: 1}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// IsValid reports whether the ray can be traced: finite origin and
// direction, and a non-degenerate direction vector. Used by Solver 1/3
// entry points to silently skip malformed input (error handling §7).
func (r Ray) IsValid() bool {
	return r.Origin.IsFinite() && r.Direction.IsFinite() && r.Direction.LengthSquared() > 1e-20
}

// CloneForChild returns a copy of the ray with interaction distance and
// all visualization metadata cleared, ready to be repositioned at a hit
// point and handed to interact(). The invariant in the data model is
// that visualization fields are authoritative only on the parent ray;
// this is the single place that enforces it.
func (r Ray) CloneForChild(origin, direction Vec3) Ray {
	child := r
	child.Origin = origin
	child.Direction = direction
	child.InteractionDistanceMM = 0
	child.EntryPoint = nil
	child.InternalPolyline = nil
	child.TerminationPoint = nil
	child.ExitSurfaceTag = ""
	return child
}
