package sampler

import "math"

// minTemperature is the floor applied after any temperature update so the
// acceptance-ratio exponent can never divide by zero.
const minTemperature = 1e-12

// computeSTUN applies the stochastic tunneling transform to a vector of
// scores: f(s) = 1 - exp(-gamma * (s - absMin)), with the global minimum
// shared across trajectories and a per-trajectory gamma. The transform is
// monotonic non-decreasing in (s - absMin) for gamma >= 0, which compresses
// deep minima and eases tunneling between basins.
func (s *Sampler) computeSTUN(scores []float64) []float64 {
	out := make([]float64, len(scores))
	absMin := s.tracker.absMin
	for i, score := range scores {
		out[i] = 1 - math.Exp(-s.cfg.Gammas[i]*(score-absMin))
	}
	return out
}

// deltaEnergy computes the per-trajectory energy difference driving the
// Metropolis test, either through the STUN transform or on raw scores.
// The returned transform values are nil in raw mode.
func (s *Sampler) deltaEnergy(propScores, curScores []float64) (de []float64, fProp []float64) {
	de = make([]float64, len(propScores))
	if s.stun {
		fProp = s.computeSTUN(propScores)
		fCur := s.computeSTUN(curScores)
		for i := range de {
			de[i] = fProp[i] - fCur[i]
		}
		return de, fProp
	}
	for i := range de {
		de[i] = propScores[i] - curScores[i]
	}
	return de, nil
}

// acceptanceRatios computes min(1, exp(-dE/T)) per trajectory. Temperatures
// are strictly positive by invariant; negative dE saturates the ratio at 1.
func (s *Sampler) acceptanceRatios(de []float64) []float64 {
	ratios := make([]float64, len(de))
	for i := range de {
		temp := s.temperature[i]
		if temp < minTemperature {
			temp = minTemperature
		}
		ratios[i] = math.Min(1, math.Exp(-de[i]/temp))
	}
	return ratios
}
