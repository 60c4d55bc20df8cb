package core

// WeightedChoice selects an index into weights using a cumulative
// distribution walk, given a uniform draw u in [0,1). Used by Solver 3
// to pick a single child ray weighted by child.intensity/sum(intensity)
// (§4.7) — the cumulative-probability walk itself is grounded on the
// teacher's WeightedLightSampler.SampleLight, generalized from picking
// among scene lights to picking among a component's interaction
// children. Weights need not be pre-normalized; selected is -1 if
// weights is empty.
func WeightedChoice(weights []float64, u float64) (selected int, probability float64) {
	if len(weights) == 0 {
		return -1, 0
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		// Degenerate: fall back to uniform so a zero-intensity set of
		// children still resolves to something rather than panicking.
		p := 1.0 / float64(len(weights))
		idx := int(u * float64(len(weights)))
		if idx >= len(weights) {
			idx = len(weights) - 1
		}
		return idx, p
	}

	target := u * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target <= cumulative {
			return i, w / total
		}
	}
	last := len(weights) - 1
	return last, weights[last] / total
}
