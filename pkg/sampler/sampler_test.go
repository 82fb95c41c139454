package sampler

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/stun-go/internal/testutil"
	"github.com/XiaoConstantine/stun-go/pkg/core"
	"github.com/XiaoConstantine/stun-go/pkg/errors"
	"github.com/XiaoConstantine/stun-go/pkg/logging"
	"github.com/XiaoConstantine/stun-go/pkg/oracles"
	"github.com/XiaoConstantine/stun-go/pkg/scoring"
)

func quietLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Severity: logging.FATAL})
}

func testConfig() core.SamplerConfig {
	return core.SamplerConfig{
		AlphabetSize:            3,
		MinLength:               2,
		MaxLength:               6,
		VariableLength:          true,
		Gammas:                  []float64{1.0},
		STUN:                    true,
		SamplingIterations:      200,
		PostAnnealingIterations: 50,
		Seed:                    7,
	}
}

func sumScorer(t *testing.T) Scorer {
	t.Helper()
	scorer, err := scoring.NewOracleScorer(&oracles.SumOracle{}, 1, 0)
	require.NoError(t, err)
	return scorer
}

// uniformStream builds a single-entry stream with fixed draws so iteration
// behavior can be pinned exactly.
func uniformStream(trajectories int, position, symbol, direction int, draw float64) *randomStream {
	s := &randomStream{
		size:              1,
		mutationSymbols:   make([][]int, trajectories),
		mutationPositions: make([][]int, trajectories),
		acceptanceDraws:   make([][]float64, trajectories),
		lengthDirections:  make([][]int, trajectories),
		extensionSymbols:  make([][]int, trajectories),
	}
	for i := 0; i < trajectories; i++ {
		s.mutationSymbols[i] = []int{symbol}
		s.mutationPositions[i] = []int{position}
		s.acceptanceDraws[i] = []float64{draw}
		s.lengthDirections[i] = []int{direction}
		s.extensionSymbols[i] = []int{symbol}
	}
	return s
}

func TestNew(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		s, err := New(testConfig(), sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)
		assert.NotEmpty(t, s.RunID())
		assert.Len(t, s.Ensemble(), 1)
	})

	t.Run("Invalid Config Rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Gammas = nil
		_, err := New(cfg, sumScorer(t))
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.New(errors.InvalidConfig, "")))
	})

	t.Run("Nil Scorer Rejected", func(t *testing.T) {
		_, err := New(testConfig(), nil)
		assert.Error(t, err)
	})

	t.Run("Initial Ensemble Respects Length Bounds", func(t *testing.T) {
		cfg := testConfig()
		cfg.Gammas = []float64{0.5, 1, 2}
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		ensemble := s.Ensemble()
		require.Len(t, ensemble, 3)
		for _, seq := range ensemble {
			assert.Len(t, seq, cfg.MaxLength)
			assert.GreaterOrEqual(t, seq.ActiveLength(), cfg.MinLength)
		}
	})
}

func TestConverge(t *testing.T) {
	t.Run("Best Scores Never Worsen", func(t *testing.T) {
		cfg := testConfig()
		cfg.Gammas = []float64{0.5, 1.0}
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		res, err := s.Converge(context.Background())
		require.NoError(t, err)

		for i, bests := range res.NewBests {
			require.NotEmpty(t, bests, "trajectory %d must at least record its start", i)
			for j := 1; j < len(bests); j++ {
				assert.Less(t, bests[j].Score, bests[j-1].Score,
					"trajectory %d new-best history must strictly improve", i)
			}
			assert.Equal(t, bests[len(bests)-1].Score, res.BestScores[i])
			assert.LessOrEqual(t, res.AbsMin, res.BestScores[i])
		}
		assert.Greater(t, res.RecordedCount, 0)
	})

	t.Run("Same Seed Reproduces The Run", func(t *testing.T) {
		cfg := testConfig()
		cfg.RecordHistory = true
		a, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)
		b, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		resA, err := a.Converge(context.Background())
		require.NoError(t, err)
		resB, err := b.Converge(context.Background())
		require.NoError(t, err)

		assert.Equal(t, resA.AbsMin, resB.AbsMin)
		assert.Equal(t, resA.BestScores, resB.BestScores)
		assert.Equal(t, resA.RecordedCount, resB.RecordedCount)
		// Step-level traces must agree at every iteration, not just at the end.
		assert.Equal(t, resA.Trace.Scores, resB.Trace.Scores)
		assert.Equal(t, resA.Trace.Temperatures, resB.Trace.Temperatures)

		ensA, ensB := a.Ensemble(), b.Ensemble()
		for i := range ensA {
			assert.True(t, ensA[i].Equal(ensB[i]))
		}
	})

	t.Run("Different Seed Index Changes The Run", func(t *testing.T) {
		cfg := testConfig()
		a, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		cfg.SeedIndex = 1
		b, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		ensA, ensB := a.Ensemble(), b.Ensemble()
		same := true
		for i := range ensA {
			if !ensA[i].Equal(ensB[i]) {
				same = false
			}
		}
		assert.False(t, same, "seed index must shift the run seed")
	})

	t.Run("Survives Stream Regeneration", func(t *testing.T) {
		cfg := testConfig()
		cfg.ResampleInterval = 16
		cfg.SamplingIterations = 50
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		res, err := s.Converge(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 50, res.Iterations)
	})

	t.Run("Scoring Failure Aborts The Run", func(t *testing.T) {
		oracle := new(testutil.MockOracle)
		oracle.On("Score", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("collaborator down"))
		scorer, err := scoring.NewOracleScorer(oracle, 1, 0)
		require.NoError(t, err)

		s, err := New(testConfig(), scorer, WithLogger(quietLogger()))
		require.NoError(t, err)

		_, err = s.Converge(context.Background())
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.New(errors.RunAborted, "")))
	})

	t.Run("Canceled Context Stops The Run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s, err := New(testConfig(), sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		_, err = s.Converge(ctx)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.New(errors.Canceled, "")))
	})

	t.Run("Progress Reporter Sees Every Iteration", func(t *testing.T) {
		cfg := testConfig()
		cfg.SamplingIterations = 25
		reporter := &testutil.CountingReporter{}
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()), WithProgress(reporter))
		require.NoError(t, err)

		_, err = s.Converge(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 25, reporter.Calls)
		assert.Equal(t, "converge", reporter.LastStage)
		assert.Equal(t, 25, reporter.LastDone)
		assert.Equal(t, 25, reporter.LastTotal)
	})

	t.Run("History Trace Covers Every Iteration", func(t *testing.T) {
		cfg := testConfig()
		cfg.SamplingIterations = 30
		cfg.RecordHistory = true
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		res, err := s.Converge(context.Background())
		require.NoError(t, err)
		require.NotNil(t, res.Trace)
		for i := 0; i < cfg.Trajectories(); i++ {
			assert.Len(t, res.Trace.Scores[i], 30)
			assert.Len(t, res.Trace.Temperatures[i], 30)
			assert.Len(t, res.Trace.STUN[i], 30, "tunneling values recorded while enabled")
		}
	})
}

func TestIterate(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejected Proposal Leaves State Untouched", func(t *testing.T) {
		cfg := testConfig()
		cfg.VariableLength = false
		cfg.MinLength, cfg.MaxLength = 4, 4
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)
		s.initConvergenceStats()

		before := s.Ensemble()
		// A draw of exactly 1 can never beat a ratio capped at 1.
		s.stream = uniformStream(1, 0, cfg.AlphabetSize, 0, 1.0)
		s.iter = 0
		require.NoError(t, s.iterate(ctx))

		after := s.Ensemble()
		assert.True(t, before[0].Equal(after[0]))
		assert.Empty(t, s.acceptedIters[0])
	})

	t.Run("Accepted Proposal Replaces State", func(t *testing.T) {
		cfg := testConfig()
		cfg.VariableLength = false
		cfg.MinLength, cfg.MaxLength = 4, 4
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)
		s.initConvergenceStats()

		// A draw of 0 always accepts: the ratio is strictly positive.
		s.stream = uniformStream(1, 0, 2, 0, 0.0)
		s.iter = 0
		require.NoError(t, s.iterate(ctx))

		after := s.Ensemble()
		assert.Equal(t, 2, after[0][0])
		assert.Equal(t, []int{0}, s.acceptedIters[0])
	})

	t.Run("First Evaluation Seeds The Tracker", func(t *testing.T) {
		cfg := testConfig()
		cfg.VariableLength = false
		cfg.MinLength, cfg.MaxLength = 4, 4
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)
		s.initConvergenceStats()

		assert.False(t, s.tracker.initialized)
		s.stream = uniformStream(1, 0, 1, 0, 1.0)
		s.iter = 0
		require.NoError(t, s.iterate(ctx))

		assert.True(t, s.tracker.initialized)
		require.Len(t, s.tracker.optima[0], 1)
		assert.Equal(t, 0, s.tracker.optima[0][0].Iteration)
		assert.Equal(t, s.tracker.e0[0], s.tracker.absMin)
	})
}

func TestPropose(t *testing.T) {
	newFixedSampler := func(t *testing.T, cfg core.SamplerConfig, seq core.Sequence) *Sampler {
		t.Helper()
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)
		s.configs = []core.Sequence{seq.Clone()}
		return s
	}

	t.Run("Point Mutation Only", func(t *testing.T) {
		cfg := testConfig()
		s := newFixedSampler(t, cfg, core.Sequence{1, 2, 3, 0, 0, 0})
		s.stream = uniformStream(1, 1, 3, 0, 0.5)

		prop := s.propose(0)
		assert.True(t, core.Sequence{1, 3, 3, 0, 0, 0}.Equal(prop[0]))
		// The current ensemble is never mutated by proposing.
		assert.True(t, core.Sequence{1, 2, 3, 0, 0, 0}.Equal(s.configs[0]))
	})

	t.Run("Extension Appends After Active Prefix", func(t *testing.T) {
		cfg := testConfig()
		s := newFixedSampler(t, cfg, core.Sequence{1, 2, 3, 0, 0, 0})
		s.stream = uniformStream(1, 0, 2, 1, 0.5)

		prop := s.propose(0)
		assert.True(t, core.Sequence{2, 2, 3, 2, 0, 0}.Equal(prop[0]))
	})

	t.Run("Extension Blocked At Max Length", func(t *testing.T) {
		cfg := testConfig()
		s := newFixedSampler(t, cfg, core.Sequence{1, 2, 3, 1, 2, 3})
		s.stream = uniformStream(1, 0, 2, 1, 0.5)

		prop := s.propose(0)
		assert.Equal(t, cfg.MaxLength, prop[0].ActiveLength())
	})

	t.Run("Contraction Zeroes Last Active Position", func(t *testing.T) {
		cfg := testConfig()
		s := newFixedSampler(t, cfg, core.Sequence{1, 2, 3, 1, 0, 0})
		s.stream = uniformStream(1, 0, 2, -1, 0.5)

		prop := s.propose(0)
		assert.True(t, core.Sequence{2, 2, 3, 0, 0, 0}.Equal(prop[0]))
	})

	t.Run("Contraction Blocked At Min Length", func(t *testing.T) {
		cfg := testConfig()
		s := newFixedSampler(t, cfg, core.Sequence{1, 2, 0, 0, 0, 0})
		s.stream = uniformStream(1, 0, 1, -1, 0.5)

		prop := s.propose(0)
		assert.Equal(t, cfg.MinLength, prop[0].ActiveLength())
	})

	t.Run("Fixed Length Ignores Direction Draws", func(t *testing.T) {
		cfg := testConfig()
		cfg.VariableLength = false
		s := newFixedSampler(t, cfg, core.Sequence{1, 2, 3, 1, 2, 3})
		s.stream = uniformStream(1, 2, 1, -1, 0.5)

		prop := s.propose(0)
		assert.Equal(t, cfg.MaxLength, prop[0].ActiveLength())
	})
}

func TestSTUNTransform(t *testing.T) {
	cfg := testConfig()
	cfg.Gammas = []float64{1.0, 1.0, 1.0}
	s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
	require.NoError(t, err)
	s.tracker.absMin = 2.0

	t.Run("Zero At The Global Minimum", func(t *testing.T) {
		out := s.computeSTUN([]float64{2.0, 2.0, 2.0})
		for _, v := range out {
			assert.InDelta(t, 0, v, 1e-12)
		}
	})

	t.Run("Monotonic And Bounded", func(t *testing.T) {
		out := s.computeSTUN([]float64{2.0, 5.0, 50.0})
		assert.Less(t, out[0], out[1])
		assert.Less(t, out[1], out[2])
		assert.Less(t, out[2], 1.0)
	})

	t.Run("Gamma Controls Compression", func(t *testing.T) {
		s.cfg.Gammas = []float64{0.1, 1.0, 10.0}
		out := s.computeSTUN([]float64{5.0, 5.0, 5.0})
		assert.Less(t, out[0], out[1])
		assert.Less(t, out[1], out[2])
	})
}

func TestDeltaEnergy(t *testing.T) {
	cfg := testConfig()
	cfg.Gammas = []float64{1.0, 1.0}
	s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
	require.NoError(t, err)
	s.tracker.absMin = 0

	t.Run("Raw Mode Uses Score Difference", func(t *testing.T) {
		s.stun = false
		de, fProp := s.deltaEnergy([]float64{3, 1}, []float64{1, 2})
		assert.Equal(t, []float64{2, -1}, de)
		assert.Nil(t, fProp)
	})

	t.Run("Tunneling Mode Uses Transformed Difference", func(t *testing.T) {
		s.stun = true
		de, fProp := s.deltaEnergy([]float64{3, 1}, []float64{1, 2})
		require.NotNil(t, fProp)

		wantProp := 1 - math.Exp(-3.0)
		wantCur := 1 - math.Exp(-1.0)
		assert.InDelta(t, wantProp-wantCur, de[0], 1e-12)
		// Transformed differences are compressed relative to raw ones.
		assert.Less(t, math.Abs(de[0]), 2.0)
	})
}

func TestAcceptanceRatios(t *testing.T) {
	cfg := testConfig()
	cfg.Gammas = []float64{1.0, 1.0, 1.0}
	s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
	require.NoError(t, err)
	s.temperature = []float64{1.0, 1.0, 0}

	ratios := s.acceptanceRatios([]float64{-0.5, 0.5, 1.0})
	assert.Equal(t, 1.0, ratios[0], "downhill moves always accepted")
	assert.InDelta(t, math.Exp(-0.5), ratios[1], 1e-12)
	assert.Equal(t, 0.0, ratios[2], "zero temperature clamps to the floor, rejecting uphill moves")
}

func TestUpdateAnnealing(t *testing.T) {
	ctx := context.Background()

	newAnnealingSampler := func(t *testing.T) *Sampler {
		t.Helper()
		cfg := testConfig()
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)
		s.initConvergenceStats()
		return s
	}

	t.Run("Low Acceptance Heats", func(t *testing.T) {
		s := newAnnealingSampler(t)
		s.iter = 150
		s.acceptedIters[0] = nil // nothing accepted in the window
		before := s.temperature[0]

		s.updateAnnealing(ctx)
		assert.Equal(t, 0.0, s.acceptanceRate[0])
		assert.GreaterOrEqual(t, s.temperature[0], before)
	})

	t.Run("High Acceptance Cools", func(t *testing.T) {
		s := newAnnealingSampler(t)
		s.iter = 150
		for it := 60; it < 150; it++ {
			s.acceptedIters[0] = append(s.acceptedIters[0], it)
		}
		before := s.temperature[0]

		s.updateAnnealing(ctx)
		assert.Greater(t, s.acceptanceRate[0], s.cfg.TargetAcceptanceRate)
		assert.LessOrEqual(t, s.temperature[0], before)
	})

	t.Run("Window Excludes Stale Acceptances", func(t *testing.T) {
		s := newAnnealingSampler(t)
		s.iter = 500
		// All acceptances happened long before the current window.
		for it := 0; it < 90; it++ {
			s.acceptedIters[0] = append(s.acceptedIters[0], it)
		}

		s.updateAnnealing(ctx)
		assert.Equal(t, 0.0, s.acceptanceRate[0])
	})

	t.Run("Stagnation Resets The Trajectory", func(t *testing.T) {
		s := newAnnealingSampler(t)
		s.iter = 2000
		s.temperature[0] = 5.0
		before := s.Ensemble()[0]

		s.updateAnnealing(ctx)
		assert.Equal(t, 2000, s.resetIter[0])
		assert.Equal(t, s.cfg.InitialTemperature, s.temperature[0])
		assert.Len(t, s.configs[0], s.cfg.MaxLength)
		assert.False(t, before.Equal(s.configs[0]), "stagnated trajectory must be re-randomized")

		// A second pass right after the reset must not reset again.
		s.iter = 2010
		s.tracker.lastNewBest[0] = 2005
		s.updateAnnealing(ctx)
		assert.Equal(t, 2000, s.resetIter[0])
	})

	t.Run("Recent New Best Prevents Reset", func(t *testing.T) {
		s := newAnnealingSampler(t)
		s.iter = 2000
		s.tracker.lastNewBest[0] = 1500
		s.temperature[0] = 5.0

		s.updateAnnealing(ctx)
		assert.Equal(t, 0, s.resetIter[0])
		assert.NotEqual(t, s.cfg.InitialTemperature, s.temperature[0])
	})
}

func TestTracker(t *testing.T) {
	eval := core.Evaluation{
		Scores:        []float64{3.0, 5.0},
		Energies:      []float64{3.0, 5.0},
		Uncertainties: []float64{0, 0},
	}
	ensemble := []core.Sequence{{1, 1, 0}, {2, 2, 0}}

	t.Run("Init Seeds Best Scores And Records", func(t *testing.T) {
		tr := newTracker(2)
		tr.init(eval, ensemble)

		assert.True(t, tr.initialized)
		assert.Equal(t, []float64{3.0, 5.0}, tr.e0)
		assert.Equal(t, 3.0, tr.absMin)
		assert.Len(t, tr.optima[0], 1)
		assert.Len(t, tr.newBests[1], 1)
	})

	t.Run("New Best Updates Minima", func(t *testing.T) {
		tr := newTracker(2)
		tr.init(eval, ensemble)

		tr.record(1, 2.0, 2.0, 0, core.Sequence{3, 0, 0}, 10, true)
		assert.Equal(t, 2.0, tr.e0[1])
		assert.Equal(t, 2.0, tr.absMin)
		assert.Equal(t, 10, tr.lastNewBest[1])
		assert.Len(t, tr.newBests[1], 2)
	})

	t.Run("Duplicates Are Pooled Once", func(t *testing.T) {
		tr := newTracker(2)
		tr.init(eval, ensemble)

		seq := core.Sequence{3, 1, 0}
		tr.record(0, 2.9, 2.9, 0, seq, 5, false)
		count := tr.recordedCount()

		// The same sequence near the optimum again: pool unchanged, not re-listed.
		tr.record(0, 2.9, 2.9, 0, seq, 8, false)
		assert.Equal(t, count, tr.recordedCount())
		assert.Len(t, tr.optima[0], 2)

		// As a new best it is re-listed even though the pool already has it.
		tr.record(0, 2.5, 2.5, 0, seq, 9, true)
		assert.Equal(t, count, tr.recordedCount())
		assert.Len(t, tr.optima[0], 3)
	})

	t.Run("Initial Ensemble Seeds The Pool", func(t *testing.T) {
		tr := newTracker(2)
		tr.init(eval, ensemble)

		// Re-recording a start sequence without improvement is a no-op.
		tr.record(0, 3.0, 3.0, 0, ensemble[0], 3, false)
		assert.Equal(t, 2, tr.recordedCount())
		assert.Len(t, tr.optima[0], 1)
	})
}

func TestPostSampleAnnealing(t *testing.T) {
	ctx := context.Background()

	t.Run("Temperature Decays Geometrically", func(t *testing.T) {
		cfg := testConfig()
		cfg.PostAnnealingIterations = 50
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		seeds := []core.Sequence{{1, 2, 3, 0, 0, 0}, {2, 2, 0, 0, 0, 0}}
		_, err = s.PostSampleAnnealing(ctx, seeds)
		require.NoError(t, err)

		want := core.DefaultPostAnnealTemp * math.Pow(core.DefaultPostAnnealDecay, 50)
		for i := range seeds {
			assert.InEpsilon(t, want, s.temperature[i], 1e-9)
		}
	})

	t.Run("Scores Never Worsen Under A Greedy Schedule", func(t *testing.T) {
		cfg := testConfig()
		cfg.PostAnnealingIterations = 200
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		seeds := []core.Sequence{{3, 3, 3, 3, 3, 3}}
		start, err := (&oracles.SumOracle{}).Score(ctx, seeds)
		require.NoError(t, err)

		annealed, err := s.PostSampleAnnealing(ctx, seeds)
		require.NoError(t, err)
		require.Len(t, annealed, 1)
		assert.LessOrEqual(t, annealed[0].Score, start[0])
		assert.Len(t, annealed[0].Sequence, cfg.MaxLength)
	})

	t.Run("Seed Capacity Must Match Max Length", func(t *testing.T) {
		s, err := New(testConfig(), sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		_, err = s.PostSampleAnnealing(ctx, []core.Sequence{{1, 2, 3}})
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.New(errors.InvalidInput, "")))
	})

	t.Run("Empty Seed Set Rejected", func(t *testing.T) {
		s, err := New(testConfig(), sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		_, err = s.PostSampleAnnealing(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("One Trajectory Per Seed", func(t *testing.T) {
		cfg := testConfig()
		cfg.PostAnnealingIterations = 10
		s, err := New(cfg, sumScorer(t), WithLogger(quietLogger()))
		require.NoError(t, err)

		seeds := []core.Sequence{
			{1, 0, 0, 0, 0, 0},
			{2, 2, 0, 0, 0, 0},
			{3, 3, 3, 0, 0, 0},
		}
		annealed, err := s.PostSampleAnnealing(ctx, seeds)
		require.NoError(t, err)
		assert.Len(t, annealed, 3)
		assert.False(t, s.stun, "tunneling stays off while crashing seeds")
	})
}
