package core

import (
	"context"
)

// Oracle is a ground-truth scoring collaborator. It scores a whole batch of
// sequences in one call, with no uncertainty estimate.
type Oracle interface {
	Score(ctx context.Context, batch []Sequence) ([]float64, error)
}

// Surrogate is a trained scoring collaborator returning standardized
// (energy, variance) pairs for a whole batch of sequences.
type Surrogate interface {
	Predict(ctx context.Context, batch []Sequence) (energies []float64, variances []float64, err error)
}

// ValueFunction is a learned-value collaborator returning a directly usable
// scalar per sequence. Higher values are better; the sampler minimizes, so
// the adapter negates them.
type ValueFunction interface {
	Value(ctx context.Context, batch []Sequence) ([]float64, error)
}

// ScoringMode selects which collaborator capability the scoring adapter uses.
// It is fixed once at configuration time.
type ScoringMode int

const (
	ScoringModeOracle ScoringMode = iota
	ScoringModeSurrogateMeanVariance
	ScoringModeLearnedValue
)

func (m ScoringMode) String() string {
	switch m {
	case ScoringModeOracle:
		return "oracle"
	case ScoringModeSurrogateMeanVariance:
		return "surrogate"
	case ScoringModeLearnedValue:
		return "learned-value"
	default:
		return "unknown"
	}
}

// Evaluation holds batch scoring outputs, index-aligned with the evaluated
// ensemble. Scores drive minimization; energies and uncertainties are kept
// for recording alongside optima.
type Evaluation struct {
	Scores        []float64
	Energies      []float64
	Uncertainties []float64
}

// ProgressReporter receives optional per-iteration progress updates. The
// sampler functions identically with a no-op reporter.
type ProgressReporter interface {
	Report(stage string, processed, total int)
}
