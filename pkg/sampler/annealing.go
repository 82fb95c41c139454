package sampler

import (
	"context"

	"github.com/XiaoConstantine/stun-go/pkg/core"
)

// updateAnnealing adapts per-trajectory temperatures toward the target
// acceptance rate and resets trajectories that have stagnated.
//
// Following "Adaptation in stochastic tunneling global optimization of
// complex potential energy landscapes": a rejection rate above target shifts
// a trajectory toward tunneling (heat up), one below target toward local
// search (cool down). A trajectory that has neither been reset nor found a
// new best within the stagnation threshold is re-randomized and its
// temperature restored to the initial value.
func (s *Sampler) updateAnnealing(ctx context.Context) {
	window := s.cfg.AcceptanceWindow
	for i := 0; i < s.trajectories; i++ {
		// Rolling acceptance rate: accepted iterations within the last window.
		recs := s.acceptedIters[i]
		start := len(recs) - window
		if start < 0 {
			start = 0
		}
		accepted := 0
		for _, r := range recs[start:] {
			if s.iter-r < window {
				accepted++
			}
		}
		s.acceptanceRate[i] = float64(accepted) / float64(window)

		// Modulate temperature semi-stochastically.
		if s.acceptanceRate[i] < s.cfg.TargetAcceptanceRate {
			s.temperature[i] *= 1 + s.rng.Float64()
		} else {
			s.temperature[i] *= 1 - s.rng.Float64()
		}
		if s.temperature[i] < minTemperature {
			s.temperature[i] = minTemperature
		}

		// Stagnation: no reset and no new best for too long means the
		// trajectory is stuck in an unproductive region.
		if s.iter-s.resetIter[i] > s.cfg.StagnationThreshold &&
			s.iter-s.tracker.lastNewBest[i] > s.cfg.StagnationThreshold {
			s.resetIter[i] = s.iter
			s.configs[i] = core.NewRandomSequence(s.rng, s.cfg)
			s.temperature[i] = s.cfg.InitialTemperature
			s.logger.Debug(ctx, "trajectory %d stagnated; re-randomized with temperature boost", i)
		}
	}
}
