package core

// Dispersion is a two-term Cauchy model n(lambda) = A + B/lambda^2
// (lambda in nanometers) used by the refractive components to vary
// their index with the ray's wavelength instead of holding it fixed.
type Dispersion struct {
	A float64
	B float64
}

// Standard spectral line wavelengths (nm) used to derive a Cauchy fit
// from a nominal index and an Abbe number, the same d/F/C lines glass
// catalogs quote V_d against.
const (
	fraunhoferFLineNM = 486.1
	fraunhoferDLineNM = 587.6
	fraunhoferCLineNM = 656.3
)

// NewDispersion derives a Cauchy dispersion curve from a nominal index
// at the d line and an Abbe number V_d = (n_d-1)/(n_F-n_C). An Abbe
// number <= 0 degenerates to a flat, non-dispersive index equal to
// indexAtDLine everywhere (B=0), for components that don't care to
// model dispersion.
func NewDispersion(indexAtDLine, abbeNumber float64) Dispersion {
	if abbeNumber <= 0 {
		return Dispersion{A: indexAtDLine, B: 0}
	}
	invFSq := 1 / (fraunhoferFLineNM * fraunhoferFLineNM)
	invCSq := 1 / (fraunhoferCLineNM * fraunhoferCLineNM)
	invDSq := 1 / (fraunhoferDLineNM * fraunhoferDLineNM)
	b := (indexAtDLine - 1) / (abbeNumber * (invFSq - invCSq))
	a := indexAtDLine - b*invDSq
	return Dispersion{A: a, B: b}
}

// IndexAt evaluates the Cauchy fit at the given wavelength in
// nanometers.
func (d Dispersion) IndexAt(wavelengthNM float64) float64 {
	if wavelengthNM <= 0 {
		return d.A
	}
	return d.A + d.B/(wavelengthNM*wavelengthNM)
}
