package core

import "math/cmplx"

// ABCD is a real ray-transfer matrix acting on a complex Gaussian beam
// q-parameter: q' = (A*q + B) / (C*q + D). Components report one (or,
// for astigmatic elements, two — see Astigmatic below) of these for
// Solver 2 to walk.
type ABCD struct {
	A, B, C, D float64
}

// IdentityABCD is the matrix of free space / a no-op interface.
var IdentityABCD = ABCD{A: 1, B: 0, C: 0, D: 1}

// Translation is the ABCD matrix for propagating length mm through a
// medium of refractive index n (the B term is the optical path length
// contribution for non-unit n).
func Translation(lengthMM, refractiveIndex float64) ABCD {
	return ABCD{A: 1, B: lengthMM / refractiveIndex, C: 0, D: 1}
}

// Apply transforms q through the matrix. Returns the zero-sentinel
// 0+0i when the denominator magnitude is below MinDenominator, per the
// numerical-underflow handling spec §7 requires of complex division.
func (m ABCD) Apply(q complex128) complex128 {
	denom := complex(m.C, 0)*q + complex(m.D, 0)
	if cmplx.Abs(denom) < MinDenominator {
		return 0
	}
	numer := complex(m.A, 0)*q + complex(m.B, 0)
	return numer / denom
}

// Mul composes two ABCD matrices: (m.Mul(n)) means "apply n first, then
// m" as real 2x2 matrix multiplication, used to build compound
// elements (objectives, thick lenses) from simpler stages.
func (m ABCD) Mul(n ABCD) ABCD {
	return ABCD{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
	}
}

// Astigmatic bundles the tangential/sagittal ABCD pair an astigmatic
// component (the cylindrical lens) reports. It carries no axis field:
// Solver 2 always takes the tangential plane as the beam's Y axis.
type Astigmatic struct {
	Tangential ABCD
	Sagittal   ABCD
}

// Symmetric returns an Astigmatic with the same matrix on both planes,
// the common case for rotationally symmetric elements (spherical
// lenses, curved mirrors, ideal lenses).
func Symmetric(m ABCD) Astigmatic {
	return Astigmatic{Tangential: m, Sagittal: m}
}
