package core

import (
	"github.com/XiaoConstantine/stun-go/pkg/errors"
)

// Canonical defaults for the sampling loop. The target acceptance rate comes
// from optimal-Metropolis-scaling results; the rest follow the reference
// sampler settings.
const (
	DefaultTargetAcceptanceRate = 0.234
	DefaultRecordMargin         = 0.2
	DefaultDeltaIter            = 10
	DefaultResampleInterval     = 10000
	DefaultInitialTemperature   = 0.1
	DefaultPostAnnealTemp       = 0.01
	DefaultPostAnnealDecay      = 0.99
	DefaultAcceptanceWindow     = 100
	DefaultStagnationThreshold  = 1000
)

// SamplerConfig carries every named parameter of a sampling run. Zero values
// for the tunables are replaced by canonical defaults in ApplyDefaults.
type SamplerConfig struct {
	// Sequence representation
	AlphabetSize   int
	MinLength      int
	MaxLength      int
	VariableLength bool

	// One gamma per trajectory; the slice length is the trajectory count.
	// Distinct gammas give differently aggressive tunneling within one run.
	Gammas []float64

	// Score combination weights: score = EnergyWeight*energy - UncertaintyWeight*uncertainty
	EnergyWeight      float64
	UncertaintyWeight float64

	// Acceptance/annealing controls
	STUN                 bool
	TargetAcceptanceRate float64
	InitialTemperature   float64
	AcceptanceWindow     int
	StagnationThreshold  int
	DeltaIter            int

	// Iteration budgets
	SamplingIterations      int
	PostAnnealingIterations int

	// Post-sample annealing controls
	PostAnnealTemperature float64
	PostAnnealDecay       float64

	// Optimum recording
	RecordMargin float64

	// Randomness
	Seed             int64
	SeedIndex        int
	ResampleInterval int

	// Keep step-by-step trace records for debugging
	RecordHistory bool
}

// Trajectories returns the number of parallel trajectories.
func (c *SamplerConfig) Trajectories() int {
	return len(c.Gammas)
}

// RunSeed derives the effective random seed; the base seed is spread over
// pipeline iterations through the seed index.
func (c *SamplerConfig) RunSeed() int64 {
	return c.Seed + int64(c.SeedIndex)*1000
}

// ApplyDefaults fills canonical values for unset tunables.
func (c *SamplerConfig) ApplyDefaults() {
	if c.TargetAcceptanceRate == 0 {
		c.TargetAcceptanceRate = DefaultTargetAcceptanceRate
	}
	if c.RecordMargin == 0 {
		c.RecordMargin = DefaultRecordMargin
	}
	if c.DeltaIter == 0 {
		c.DeltaIter = DefaultDeltaIter
	}
	if c.ResampleInterval == 0 {
		c.ResampleInterval = DefaultResampleInterval
	}
	if c.InitialTemperature == 0 {
		c.InitialTemperature = DefaultInitialTemperature
	}
	if c.PostAnnealTemperature == 0 {
		c.PostAnnealTemperature = DefaultPostAnnealTemp
	}
	if c.PostAnnealDecay == 0 {
		c.PostAnnealDecay = DefaultPostAnnealDecay
	}
	if c.AcceptanceWindow == 0 {
		c.AcceptanceWindow = DefaultAcceptanceWindow
	}
	if c.StagnationThreshold == 0 {
		c.StagnationThreshold = DefaultStagnationThreshold
	}
	if c.EnergyWeight == 0 && c.UncertaintyWeight == 0 {
		c.EnergyWeight = 1
	}
}

// Validate fails fast on inconsistent parameters so a run can never start in
// a degenerate state.
func (c *SamplerConfig) Validate() error {
	if c.AlphabetSize <= 0 {
		return errors.WithFields(
			errors.New(errors.InvalidConfig, "alphabet size must be positive"),
			errors.Fields{"alphabet_size": c.AlphabetSize},
		)
	}
	if c.MinLength <= 0 || c.MaxLength <= 0 {
		return errors.WithFields(
			errors.New(errors.InvalidConfig, "length bounds must be positive"),
			errors.Fields{"min_length": c.MinLength, "max_length": c.MaxLength},
		)
	}
	if c.MinLength > c.MaxLength {
		return errors.WithFields(
			errors.New(errors.InvalidConfig, "min length exceeds max length"),
			errors.Fields{"min_length": c.MinLength, "max_length": c.MaxLength},
		)
	}
	if len(c.Gammas) == 0 {
		return errors.New(errors.InvalidConfig, "at least one trajectory (gamma) is required")
	}
	for i, g := range c.Gammas {
		if g < 0 {
			return errors.WithFields(
				errors.New(errors.InvalidConfig, "gamma must be non-negative"),
				errors.Fields{"trajectory": i, "gamma": g},
			)
		}
	}
	if c.TargetAcceptanceRate < 0 || c.TargetAcceptanceRate > 1 {
		return errors.WithFields(
			errors.New(errors.InvalidConfig, "target acceptance rate must lie in [0,1]"),
			errors.Fields{"target_acceptance_rate": c.TargetAcceptanceRate},
		)
	}
	if c.InitialTemperature < 0 || c.PostAnnealTemperature < 0 {
		return errors.New(errors.InvalidConfig, "temperatures must be non-negative")
	}
	if c.PostAnnealDecay < 0 || c.PostAnnealDecay > 1 {
		return errors.WithFields(
			errors.New(errors.InvalidConfig, "post-annealing decay must lie in [0,1]"),
			errors.Fields{"post_anneal_decay": c.PostAnnealDecay},
		)
	}
	return nil
}
