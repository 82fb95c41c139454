// Package sampler implements parallel Markov Chain Monte Carlo optimization of
// discrete symbol sequences with a Stochastic Tunneling transform. All
// trajectories advance together inside one synchronous iteration: proposals
// are built from a stable snapshot of the current ensemble, scored in one
// batched collaborator call, then accepted or rejected per trajectory with
// draws from the same logical iteration index, so runs are reproducible under
// a fixed seed and batch schedule.
package sampler

import (
	"context"
	"math"
	"math/rand"

	"github.com/XiaoConstantine/stun-go/pkg/core"
	"github.com/XiaoConstantine/stun-go/pkg/errors"
	"github.com/XiaoConstantine/stun-go/pkg/logging"
	"github.com/google/uuid"
)

// relativeMarginEpsilon guards the (E0-score)/E0 relative-improvement check:
// when |E0| is below it, the proposal is treated as not near the old best.
const relativeMarginEpsilon = 1e-12

// Scorer evaluates the proposed and current ensembles in one synchronous call.
// pkg/scoring provides implementations over the collaborator modes.
type Scorer interface {
	Score(ctx context.Context, proposed, current []core.Sequence) (core.Evaluation, core.Evaluation, error)
}

// Option configures optional sampler collaborators.
type Option func(*Sampler)

// WithProgress installs a per-iteration progress reporter. The sampler
// functions identically without one.
func WithProgress(r core.ProgressReporter) Option {
	return func(s *Sampler) {
		s.progress = r
	}
}

// WithLogger overrides the global logger for this sampler.
func WithLogger(l *logging.Logger) Option {
	return func(s *Sampler) {
		s.logger = l
	}
}

// Sampler owns the full mutable state of one sampling run. It is not safe for
// concurrent use; parallelism is expressed as data-parallelism over the
// trajectory dimension inside each iteration, not as concurrent control flow.
type Sampler struct {
	cfg    core.SamplerConfig
	scorer Scorer

	runID    string
	logger   *logging.Logger
	progress core.ProgressReporter
	rng      *rand.Rand

	trajectories int
	stun         bool

	// Per-trajectory state. Each iteration reads the full previous-state
	// ensemble and constructs a new one before any trajectory is mutated.
	configs        []core.Sequence
	temperature    []float64
	acceptanceRate []float64
	resetIter      []int
	acceptedIters  [][]int

	stream  *randomStream
	tracker *tracker
	trace   *Trace

	iter int
}

// Results is the full optimum-tracker state of an exploratory run.
type Results struct {
	RunID             string
	AbsMin            float64
	BestScores        []float64
	Optima            [][]OptimumRecord
	NewBests          [][]OptimumRecord
	RecordedCount     int
	AcceptanceRates   []float64
	FinalTemperatures []float64
	Iterations        int
	Trace             *Trace
}

// AnnealedResult is the outcome of post-sample annealing for one trajectory.
type AnnealedResult struct {
	Sequence    core.Sequence
	Score       float64
	Energy      float64
	Uncertainty float64
}

// New creates a sampler for the given configuration. Configuration errors are
// fatal here, never mid-run.
func New(cfg core.SamplerConfig, scorer Scorer, opts ...Option) (*Sampler, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scorer == nil {
		return nil, errors.New(errors.InvalidInput, "scorer is required")
	}

	s := &Sampler{
		cfg:          cfg,
		scorer:       scorer,
		runID:        uuid.New().String(),
		logger:       logging.GetLogger(),
		rng:          rand.New(rand.NewSource(cfg.RunSeed())),
		trajectories: cfg.Trajectories(),
		stun:         cfg.STUN,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.configs = make([]core.Sequence, s.trajectories)
	for i := range s.configs {
		s.configs[i] = core.NewRandomSequence(s.rng, s.cfg)
	}
	s.temperature = make([]float64, s.trajectories)
	for i := range s.temperature {
		s.temperature[i] = cfg.InitialTemperature
	}
	s.tracker = newTracker(s.trajectories)
	s.acceptedIters = make([][]int, s.trajectories)
	if cfg.RecordHistory {
		s.trace = newTrace(s.trajectories)
	}

	return s, nil
}

// RunID identifies this sampler's run in logs and persisted results.
func (s *Sampler) RunID() string {
	return s.runID
}

// Ensemble returns a copy of the current trajectory ensemble.
func (s *Sampler) Ensemble() []core.Sequence {
	return core.CloneEnsemble(s.configs)
}

// Converge runs the exploratory sampling mode for the configured iteration
// budget: one full proposal+score+accept cycle across all trajectories per
// iteration, annealing adaptation every DeltaIter iterations, and periodic
// regeneration of the random stream.
func (s *Sampler) Converge(ctx context.Context) (*Results, error) {
	ctx = logging.WithRunID(ctx, s.runID)
	s.initConvergenceStats()
	s.stream = newRandomStream(s.rng, s.trajectories, s.cfg.ResampleInterval, s.cfg.AlphabetSize, s.cfg.MaxLength)

	iterations := s.cfg.SamplingIterations
	s.logger.Info(ctx, "starting exploratory run: trajectories=%d iterations=%d stun=%v",
		s.trajectories, iterations, s.stun)

	for it := 0; it < iterations; it++ {
		s.iter = it
		if err := errors.CheckContext(ctx, "sampling run"); err != nil {
			return nil, err
		}
		if it > 0 && it%s.cfg.ResampleInterval == 0 {
			s.stream = newRandomStream(s.rng, s.trajectories, s.cfg.ResampleInterval, s.cfg.AlphabetSize, s.cfg.MaxLength)
		}

		if err := s.iterate(ctx); err != nil {
			return nil, err
		}

		if it > 0 && it%s.cfg.DeltaIter == 0 {
			s.updateAnnealing(logging.WithIteration(ctx, int64(it)))
		}
		if s.progress != nil {
			s.progress.Report("converge", it+1, iterations)
		}
	}

	results := s.results(iterations)
	s.logger.Info(ctx, "%d near-optima were recorded on this run", results.RecordedCount)
	return results, nil
}

// PostSampleAnnealing crashes each caller-provided seed sequence to its local
// minimum: STUN disabled, a low fixed starting temperature, and a geometric
// temperature decay every iteration with no adaptive control. The final
// ensemble is scored once and returned as the annealed result set.
func (s *Sampler) PostSampleAnnealing(ctx context.Context, seeds []core.Sequence) ([]AnnealedResult, error) {
	if len(seeds) == 0 {
		return nil, errors.New(errors.InvalidInput, "post-sample annealing requires at least one seed sequence")
	}
	for i, seed := range seeds {
		if len(seed) != s.cfg.MaxLength {
			return nil, errors.WithFields(
				errors.New(errors.InvalidInput, "seed sequence capacity does not match max length"),
				errors.Fields{"seed": i, "capacity": len(seed), "max_length": s.cfg.MaxLength},
			)
		}
	}

	ctx = logging.WithRunID(ctx, s.runID)

	// Re-shape run state: many parallel initial configurations instead of
	// many parallel tunneling transforms.
	s.stun = false
	s.trajectories = len(seeds)
	s.configs = core.CloneEnsemble(seeds)
	s.temperature = make([]float64, s.trajectories)
	for i := range s.temperature {
		s.temperature[i] = s.cfg.PostAnnealTemperature
	}
	s.tracker = newTracker(s.trajectories)
	s.acceptedIters = make([][]int, s.trajectories)
	if s.cfg.RecordHistory {
		s.trace = newTrace(s.trajectories)
	}
	s.initConvergenceStats()
	s.stream = newRandomStream(s.rng, s.trajectories, s.cfg.ResampleInterval, s.cfg.AlphabetSize, s.cfg.MaxLength)

	iterations := s.cfg.PostAnnealingIterations
	s.logger.Info(ctx, "starting post-sample annealing: seeds=%d iterations=%d", s.trajectories, iterations)

	for it := 0; it < iterations; it++ {
		s.iter = it
		if err := errors.CheckContext(ctx, "post-sample annealing"); err != nil {
			return nil, err
		}
		if it > 0 && it%s.cfg.ResampleInterval == 0 {
			s.stream = newRandomStream(s.rng, s.trajectories, s.cfg.ResampleInterval, s.cfg.AlphabetSize, s.cfg.MaxLength)
		}

		if err := s.iterate(ctx); err != nil {
			return nil, err
		}

		// Cut temperature at every step.
		for i := range s.temperature {
			s.temperature[i] *= s.cfg.PostAnnealDecay
			if s.temperature[i] < minTemperature {
				s.temperature[i] = minTemperature
			}
		}
		if s.progress != nil {
			s.progress.Report("anneal", it+1, iterations)
		}
	}

	// One final evaluation of the annealed ensemble.
	finalEval, _, err := s.scorer.Score(ctx, s.configs, s.configs)
	if err != nil {
		return nil, errors.Wrap(err, errors.RunAborted, "final annealed evaluation failed")
	}

	out := make([]AnnealedResult, s.trajectories)
	for i := range out {
		out[i] = AnnealedResult{
			Sequence:    s.configs[i].Clone(),
			Score:       finalEval.Scores[i],
			Energy:      finalEval.Energies[i],
			Uncertainty: finalEval.Uncertainties[i],
		}
	}
	return out, nil
}

// initConvergenceStats resets the per-run convergence bookkeeping.
func (s *Sampler) initConvergenceStats() {
	s.resetIter = make([]int, s.trajectories)
	s.acceptanceRate = make([]float64, s.trajectories)
}

// iterate performs one Monte Carlo cycle: propose a state for every
// trajectory, score proposals against current, and accept or reject each
// move against the Metropolis ratio.
func (s *Sampler) iterate(ctx context.Context) error {
	ind := s.iter % s.stream.size

	prop := s.propose(ind)

	propEval, curEval, err := s.scorer.Score(ctx, prop, s.configs)
	if err != nil {
		// The run cannot make progress without scores.
		return errors.Wrap(err, errors.RunAborted, "scoring collaborator failed")
	}

	if !s.tracker.initialized {
		s.tracker.init(curEval, s.configs)
	}

	de, fProp := s.deltaEnergy(propEval.Scores, curEval.Scores)
	ratios := s.acceptanceRatios(de)
	s.updateConfigs(ind, prop, propEval, ratios, fProp)
	return nil
}

// updateConfigs checks the Metropolis condition per trajectory, swaps in
// accepted proposals, and records optimum statistics.
func (s *Sampler) updateConfigs(ind int, prop []core.Sequence, propEval core.Evaluation, ratios []float64, fProp []float64) {
	for i := 0; i < s.trajectories; i++ {
		if s.stream.acceptanceDraws[i][ind] < ratios[i] {
			s.configs[i] = prop[i].Clone()
			s.acceptedIters[i] = append(s.acceptedIters[i], s.iter)

			score := propEval.Scores[i]
			e0 := s.tracker.e0[i]
			newBest := score < e0
			nearBest := false
			if !newBest && math.Abs(e0) > relativeMarginEpsilon {
				nearBest = (e0-score)/e0 < s.cfg.RecordMargin
			}
			if newBest || nearBest {
				s.tracker.record(i, score, propEval.Energies[i], propEval.Uncertainties[i], prop[i], s.iter, newBest)
			}
		}
	}

	if s.trace != nil {
		for i := 0; i < s.trajectories; i++ {
			stunVal := 0.0
			if fProp != nil {
				stunVal = fProp[i]
			}
			s.trace.record(i, s.temperature[i], s.acceptanceRate[i],
				propEval.Scores[i], propEval.Energies[i], propEval.Uncertainties[i],
				stunVal, s.stun)
		}
	}
}

func (s *Sampler) results(iterations int) *Results {
	bestScores := make([]float64, s.trajectories)
	copy(bestScores, s.tracker.e0)
	finalTemps := make([]float64, s.trajectories)
	copy(finalTemps, s.temperature)
	rates := make([]float64, s.trajectories)
	copy(rates, s.acceptanceRate)

	return &Results{
		RunID:             s.runID,
		AbsMin:            s.tracker.absMin,
		BestScores:        bestScores,
		Optima:            s.tracker.optima,
		NewBests:          s.tracker.newBests,
		RecordedCount:     s.tracker.recordedCount(),
		AcceptanceRates:   rates,
		FinalTemperatures: finalTemps,
		Iterations:        iterations,
		Trace:             s.trace,
	}
}
