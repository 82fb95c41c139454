// Package oracles provides self-contained toy ground-truth collaborators.
// They make the repository runnable end to end without a trained surrogate
// and give the tests cheap, deterministic objectives.
package oracles

import (
	"context"
	"math"

	"github.com/XiaoConstantine/stun-go/pkg/core"
)

// SumOracle scores a sequence by the plain sum of its symbol codes. The global
// minimum is the shortest admissible sequence of all-1 symbols.
type SumOracle struct{}

func (o *SumOracle) Score(ctx context.Context, batch []core.Sequence) ([]float64, error) {
	scores := make([]float64, len(batch))
	for i, seq := range batch {
		total := 0
		for _, v := range seq {
			total += v
		}
		scores[i] = float64(total)
	}
	return scores, nil
}

// TargetSumOracle scores |sum(symbols) - Target|. Many distinct sequences hit
// the target exactly, so the landscape has a large degenerate optimum set;
// useful for exercising the near-optimum dedup pool.
type TargetSumOracle struct {
	Target int
}

func (o *TargetSumOracle) Score(ctx context.Context, batch []core.Sequence) ([]float64, error) {
	scores := make([]float64, len(batch))
	for i, seq := range batch {
		total := 0
		for _, v := range seq {
			total += v
		}
		scores[i] = math.Abs(float64(total - o.Target))
	}
	return scores, nil
}

// AlternationOracle penalizes adjacent repeats within the active prefix. The
// minima are maximally alternating sequences; the landscape is multimodal
// enough to make tunneling observable in small experiments.
type AlternationOracle struct{}

func (o *AlternationOracle) Score(ctx context.Context, batch []core.Sequence) ([]float64, error) {
	scores := make([]float64, len(batch))
	for i, seq := range batch {
		repeats := 0
		n := seq.ActiveLength()
		for j := 1; j < n; j++ {
			if seq[j] == seq[j-1] {
				repeats++
			}
		}
		scores[i] = float64(repeats)
	}
	return scores, nil
}
