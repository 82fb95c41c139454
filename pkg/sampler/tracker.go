package sampler

import (
	"github.com/XiaoConstantine/stun-go/pkg/core"
)

// OptimumRecord is one recorded near-optimal or strictly-improving sequence.
type OptimumRecord struct {
	Score       float64
	Energy      float64
	Uncertainty float64
	Sequence    core.Sequence
	Iteration   int
}

// tracker maintains, per trajectory and globally, the best score seen, the
// recorded distinct near-optimal sequences, and the history of new bests.
// Initialization is explicit: the first scoring pass of a run seeds E0 and
// the per-trajectory records before any acceptance bookkeeping happens.
type tracker struct {
	initialized bool

	e0     []float64 // best score so far per trajectory
	absMin float64   // best score across all trajectories

	optima      [][]OptimumRecord // distinct near-optimal sequences per trajectory
	newBests    [][]OptimumRecord // strict improvements per trajectory
	lastNewBest []int             // iteration of the most recent strict improvement
	pool        map[string]struct{}
	poolSeeded  bool
}

func newTracker(trajectories int) *tracker {
	return &tracker{
		e0:          make([]float64, trajectories),
		optima:      make([][]OptimumRecord, trajectories),
		newBests:    make([][]OptimumRecord, trajectories),
		lastNewBest: make([]int, trajectories),
		pool:        make(map[string]struct{}),
	}
}

// init seeds the tracker from the first evaluation of the current ensemble.
func (t *tracker) init(eval core.Evaluation, ensemble []core.Sequence) {
	copy(t.e0, eval.Scores)
	t.absMin = eval.Scores[0]
	for _, s := range eval.Scores {
		if s < t.absMin {
			t.absMin = s
		}
	}
	for i := range ensemble {
		rec := OptimumRecord{
			Score:       eval.Scores[i],
			Energy:      eval.Energies[i],
			Uncertainty: eval.Uncertainties[i],
			Sequence:    ensemble[i].Clone(),
			Iteration:   0,
		}
		t.optima[i] = append(t.optima[i], rec)
		t.newBests[i] = append(t.newBests[i], rec)
		t.lastNewBest[i] = 0
	}
	t.initialized = true
}

// seedPool fills the dedup pool once, from every trajectory's currently
// recorded samples, so run-start optima are not double-counted later.
func (t *tracker) seedPool() {
	if t.poolSeeded {
		return
	}
	for _, recs := range t.optima {
		for _, rec := range recs {
			t.pool[rec.Sequence.Key()] = struct{}{}
		}
	}
	t.poolSeeded = true
}

// record stores an accepted proposal that is either a strict improvement or
// within the record margin of the trajectory's best. Sequences already in the
// global pool are only re-recorded when they are a new best.
func (t *tracker) record(i int, score, energy, uncertainty float64, seq core.Sequence, iter int, newBest bool) {
	t.seedPool()

	key := seq.Key()
	_, duplicate := t.pool[key]

	rec := OptimumRecord{
		Score:       score,
		Energy:      energy,
		Uncertainty: uncertainty,
		Sequence:    seq.Clone(),
		Iteration:   iter,
	}
	if !duplicate || newBest {
		t.optima[i] = append(t.optima[i], rec)
		t.pool[key] = struct{}{}
	}
	if newBest {
		t.e0[i] = score
		if score < t.absMin {
			t.absMin = score
		}
		t.newBests[i] = append(t.newBests[i], rec)
		t.lastNewBest[i] = iter
	}
}

// recordedCount is the number of distinct sequences in the global pool.
func (t *tracker) recordedCount() int {
	return len(t.pool)
}
