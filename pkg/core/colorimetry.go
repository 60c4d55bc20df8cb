package core

import "math"

// WavelengthToRGB maps a visible wavelength in nanometers to an
// approximate sRGB triple in [0,1], for tinting laser/lamp ray
// visualizations and the dominant-pass-wavelength tint used by the
// spectral profile package. Outside 380-750 nm the intensity taper
// pulls the result to black rather than clamping the hue, matching how
// the eye's sensitivity actually falls off at the edges of the band.
func WavelengthToRGB(nm float64) Vec3 {
	var r, g, b float64
	switch {
	case nm >= 380 && nm < 440:
		r = -(nm - 440) / (440 - 380)
		b = 1
	case nm >= 440 && nm < 490:
		g = (nm - 440) / (490 - 440)
		b = 1
	case nm >= 490 && nm < 510:
		g = 1
		b = -(nm - 510) / (510 - 490)
	case nm >= 510 && nm < 580:
		r = (nm - 510) / (580 - 510)
		g = 1
	case nm >= 580 && nm < 645:
		r = 1
		g = -(nm - 645) / (645 - 580)
	case nm >= 645 && nm <= 750:
		r = 1
	}

	var factor float64
	switch {
	case nm >= 380 && nm < 420:
		factor = 0.3 + 0.7*(nm-380)/(420-380)
	case nm >= 420 && nm < 701:
		factor = 1
	case nm >= 701 && nm <= 750:
		factor = 0.3 + 0.7*(750-nm)/(750-700)
	default:
		factor = 0
	}

	gamma := func(c float64) float64 {
		if c <= 0 {
			return 0
		}
		return math.Pow(c*factor, 0.8)
	}

	return Vec3{X: gamma(r), Y: gamma(g), Z: gamma(b)}
}

const (
	// MetersPerNanometer converts a visible wavelength expressed in
	// nanometers (the unit every user-facing field uses) to meters (the
	// unit Ray.WavelengthM carries internally, per the global SI
	// convention).
	MetersPerNanometer = 1e-9
	NanometersPerMeter  = 1e9
)

// NmToM converts a wavelength from nanometers to meters.
func NmToM(nm float64) float64 { return nm * MetersPerNanometer }

// MToNm converts a wavelength from meters to nanometers.
func MToNm(m float64) float64 { return m * NanometersPerMeter }
