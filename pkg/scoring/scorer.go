// Package scoring adapts external scoring collaborators to the single
// evaluate-a-batch contract the sampler consumes. The adapter never inspects
// sequences itself; it assumes the collaborator enforces its own input
// contract, and it treats any collaborator failure or malformed batch shape
// as fatal for the run.
package scoring

import (
	"context"
	"math"

	"github.com/XiaoConstantine/stun-go/pkg/core"
	"github.com/XiaoConstantine/stun-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// Scorer evaluates ensembles through one of the collaborator modes, combining
// energy and uncertainty into a minimization score with fixed per-run weights.
type Scorer struct {
	mode      core.ScoringMode
	oracle    core.Oracle
	surrogate core.Surrogate
	value     core.ValueFunction

	energyWeight      float64
	uncertaintyWeight float64
}

// NewOracleScorer builds a scorer calling a ground-truth oracle directly.
// Uncertainty is zero in this mode; score = wEnergy*energy - wUncertainty*0.
func NewOracleScorer(oracle core.Oracle, wEnergy, wUncertainty float64) (*Scorer, error) {
	if oracle == nil {
		return nil, errors.New(errors.InvalidInput, "oracle collaborator is nil")
	}
	return &Scorer{
		mode:              core.ScoringModeOracle,
		oracle:            oracle,
		energyWeight:      wEnergy,
		uncertaintyWeight: wUncertainty,
	}, nil
}

// NewSurrogateScorer builds a scorer calling a surrogate model returning
// standardized (energy, variance) pairs; score = wEnergy*energy - wUncertainty*sqrt(variance).
func NewSurrogateScorer(surrogate core.Surrogate, wEnergy, wUncertainty float64) (*Scorer, error) {
	if surrogate == nil {
		return nil, errors.New(errors.InvalidInput, "surrogate collaborator is nil")
	}
	return &Scorer{
		mode:              core.ScoringModeSurrogateMeanVariance,
		surrogate:         surrogate,
		energyWeight:      wEnergy,
		uncertaintyWeight: wUncertainty,
	}, nil
}

// NewValueScorer builds a scorer calling a learned value function. The value
// is negated since the sampler minimizes; energy and uncertainty report zero.
func NewValueScorer(value core.ValueFunction) (*Scorer, error) {
	if value == nil {
		return nil, errors.New(errors.InvalidInput, "value function collaborator is nil")
	}
	return &Scorer{
		mode:  core.ScoringModeLearnedValue,
		value: value,
	}, nil
}

// Mode returns the collaborator mode this scorer was configured with.
func (s *Scorer) Mode() core.ScoringMode {
	return s.mode
}

// Score evaluates the proposed and current ensembles. Both batches are
// submitted to the collaborator concurrently; the call returns only when both
// evaluations are complete, keeping the sampler iteration synchronous.
func (s *Scorer) Score(ctx context.Context, proposed, current []core.Sequence) (core.Evaluation, core.Evaluation, error) {
	var propEval, curEval core.Evaluation
	var propErr, curErr error

	p := pool.New().WithMaxGoroutines(2)
	p.Go(func() {
		propEval, propErr = s.Evaluate(ctx, proposed)
	})
	p.Go(func() {
		curEval, curErr = s.Evaluate(ctx, current)
	})
	p.Wait()

	if propErr != nil {
		return core.Evaluation{}, core.Evaluation{}, propErr
	}
	if curErr != nil {
		return core.Evaluation{}, core.Evaluation{}, curErr
	}
	return propEval, curEval, nil
}

// Evaluate scores a single batch through the configured collaborator mode.
func (s *Scorer) Evaluate(ctx context.Context, batch []core.Sequence) (core.Evaluation, error) {
	switch s.mode {
	case core.ScoringModeOracle:
		return s.evaluateOracle(ctx, batch)
	case core.ScoringModeSurrogateMeanVariance:
		return s.evaluateSurrogate(ctx, batch)
	case core.ScoringModeLearnedValue:
		return s.evaluateValue(ctx, batch)
	default:
		return core.Evaluation{}, errors.WithFields(
			errors.New(errors.InvalidInput, "unknown scoring mode"),
			errors.Fields{"mode": int(s.mode)},
		)
	}
}

func (s *Scorer) evaluateOracle(ctx context.Context, batch []core.Sequence) (core.Evaluation, error) {
	energies, err := s.oracle.Score(ctx, batch)
	if err != nil {
		return core.Evaluation{}, errors.Wrap(err, errors.ScoringFailed, "oracle scoring failed")
	}
	if err := checkShape(len(energies), len(batch)); err != nil {
		return core.Evaluation{}, err
	}

	eval := core.Evaluation{
		Energies:      energies,
		Uncertainties: make([]float64, len(batch)),
		Scores:        make([]float64, len(batch)),
	}
	for i, en := range energies {
		eval.Scores[i] = s.energyWeight * en
	}
	return eval, nil
}

func (s *Scorer) evaluateSurrogate(ctx context.Context, batch []core.Sequence) (core.Evaluation, error) {
	energies, variances, err := s.surrogate.Predict(ctx, batch)
	if err != nil {
		return core.Evaluation{}, errors.Wrap(err, errors.ScoringFailed, "surrogate prediction failed")
	}
	if err := checkShape(len(energies), len(batch)); err != nil {
		return core.Evaluation{}, err
	}
	if err := checkShape(len(variances), len(batch)); err != nil {
		return core.Evaluation{}, err
	}

	eval := core.Evaluation{
		Energies:      energies,
		Uncertainties: variances,
		Scores:        make([]float64, len(batch)),
	}
	for i := range batch {
		eval.Scores[i] = s.energyWeight*energies[i] - s.uncertaintyWeight*math.Sqrt(variances[i])
	}
	return eval, nil
}

func (s *Scorer) evaluateValue(ctx context.Context, batch []core.Sequence) (core.Evaluation, error) {
	values, err := s.value.Value(ctx, batch)
	if err != nil {
		return core.Evaluation{}, errors.Wrap(err, errors.ScoringFailed, "value function evaluation failed")
	}
	if err := checkShape(len(values), len(batch)); err != nil {
		return core.Evaluation{}, err
	}

	eval := core.Evaluation{
		Energies:      make([]float64, len(batch)),
		Uncertainties: make([]float64, len(batch)),
		Scores:        make([]float64, len(batch)),
	}
	// The sampler is a minimizer; flip the sign of the learned values.
	for i, v := range values {
		eval.Scores[i] = -v
	}
	return eval, nil
}

func checkShape(got, want int) error {
	if got != want {
		return errors.WithFields(
			errors.New(errors.ScoringFailed, "collaborator returned malformed batch shape"),
			errors.Fields{"got": got, "want": want},
		)
	}
	return nil
}
