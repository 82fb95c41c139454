// Package stun is a Go implementation of Markov Chain Monte Carlo sampling with
// Stochastic Tunneling (STUN) for combinatorial optimization over discrete,
// variable-length symbol sequences.
//
// Given a black-box (or surrogate-model) scoring collaborator over sequences
// drawn from a fixed-size alphabet, the sampler searches for sequences that
// minimize that score, advancing many trajectories in parallel and tracking the
// best and near-best distinct sequences found.
//
// Key Components:
//
//   - Core: Fundamental abstractions like Sequence, SamplerConfig and the
//     scoring collaborator interfaces (Oracle, Surrogate, ValueFunction).
//
//   - Sampler: The proposal/acceptance/annealing loop:
//     * RandomStream: pre-drawn batches of per-trajectory randomness
//     * Proposal engine: single-position mutation plus optional length change
//     * STUN/acceptance engine: tunneling transform and Metropolis test
//     * Optimum tracker: per-trajectory and global bests with deduplication
//     * Annealing controller: adaptive temperatures and stagnation resets
//
//   - Scoring: Adapters combining collaborator energy and uncertainty into a
//     single minimization score (Oracle, SurrogateMeanVariance, LearnedValue).
//
//   - Oracles: Self-contained toy objectives for experimentation and tests.
//
//   - Results: SQLite persistence of recorded near-optima.
//
//   - Datasets: Parquet loading of seed sequences for post-sample annealing.
//
// Simple Example:
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/XiaoConstantine/stun-go/pkg/core"
//	    "github.com/XiaoConstantine/stun-go/pkg/oracles"
//	    "github.com/XiaoConstantine/stun-go/pkg/sampler"
//	    "github.com/XiaoConstantine/stun-go/pkg/scoring"
//	)
//
//	func main() {
//	    cfg := core.SamplerConfig{
//	        AlphabetSize:       4,
//	        MinLength:          2,
//	        MaxLength:          12,
//	        VariableLength:     true,
//	        Gammas:             []float64{0.1, 1, 10},
//	        STUN:               true,
//	        SamplingIterations: 100000,
//	    }
//
//	    scorer, err := scoring.NewOracleScorer(&oracles.SumOracle{}, 1, 0)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    s, err := sampler.New(cfg, scorer)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    results, err := s.Converge(context.Background())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    log.Printf("best score %.4f, %d near-optima recorded", results.AbsMin, results.RecordedCount)
//	}
//
// For more examples and detailed documentation, visit:
// https://github.com/XiaoConstantine/stun-go
//
// stun-go is released under the MIT License.
package stun
