package core

// Sentinel constants shared by every solver. Centralizing them here
// means Solver 1/2/3 agree on exactly what counts as "too small to
// trust" without each package redeclaring its own magic numbers.
const (
	// Epsilon is the minimum positive hit distance accepted by
	// chkIntersection; guards against shadow-acne re-intersection of a
	// child ray with the surface that spawned it.
	Epsilon = 1e-3 // mm

	// MaxDepth bounds the ray tree in Solver 1 and the backward walk in
	// Solver 3.
	MaxDepth = 20

	// MinThroughput terminates a Solver 3 backward path once its
	// accumulated throughput can no longer contribute visibly.
	MinThroughput = 1e-6

	// EscapeDistanceMM caps the length assigned to a ray segment that
	// never hits anything, so "escaped to infinity" paths still have a
	// finite visual/physical extent.
	EscapeDistanceMM = 2000

	// DefaultTerminalSegmentMM is the length Solver 2 assigns to a path's
	// final segment when no component bounds it.
	DefaultTerminalSegmentMM = 200

	// MinDenominator guards complex divisions in the Gaussian beam
	// propagator; a denominator smaller than this returns a zero
	// sentinel instead of dividing.
	MinDenominator = 1e-30

	// GrazingCosine is the |dir.n| threshold below which a ray is
	// treated as parallel to a plane (miss) rather than solved for t.
	GrazingCosine = 1e-6

	// CleanZeroThreshold is the magnitude below which CleanVec snaps a
	// component to exactly zero.
	CleanZeroThreshold = 1e-12
)
