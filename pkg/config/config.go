// Package config loads and validates YAML run configurations and translates
// them into the runtime SamplerConfig the core consumes.
package config

import (
	"os"

	"github.com/XiaoConstantine/stun-go/pkg/core"
	"github.com/XiaoConstantine/stun-go/pkg/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for a sampling run.
type Config struct {
	// Sampler configuration
	Sampler SamplerSettings `yaml:"sampler" validate:"required"`

	// Logging configuration
	Logging LoggingSettings `yaml:"logging,omitempty" validate:"omitempty"`

	// Output configuration
	Output OutputSettings `yaml:"output,omitempty" validate:"omitempty"`
}

// SamplerSettings holds every named parameter of the sampling core.
type SamplerSettings struct {
	// Sequence representation
	AlphabetSize   int  `yaml:"alphabet_size" validate:"required,min=1"`
	MinLength      int  `yaml:"min_length" validate:"required,min=1"`
	MaxLength      int  `yaml:"max_length" validate:"required,min=1,gtefield=MinLength"`
	VariableLength bool `yaml:"variable_length"`

	// Trajectories: either explicit per-trajectory gammas, or a count with a
	// shared gamma applied to all of them.
	Trajectories int       `yaml:"trajectories,omitempty" validate:"omitempty,min=1"`
	Gamma        float64   `yaml:"gamma,omitempty" validate:"omitempty,min=0"`
	Gammas       []float64 `yaml:"gammas,omitempty" validate:"omitempty,min=1,dive,min=0"`

	// Score combination weights
	EnergyWeight      float64 `yaml:"energy_weight,omitempty"`
	UncertaintyWeight float64 `yaml:"uncertainty_weight,omitempty" validate:"omitempty,min=0"`

	// Acceptance/annealing controls
	STUN                 bool    `yaml:"stun"`
	TargetAcceptanceRate float64 `yaml:"target_acceptance_rate,omitempty" validate:"omitempty,gt=0,lt=1"`
	InitialTemperature   float64 `yaml:"initial_temperature,omitempty" validate:"omitempty,gt=0"`
	AcceptanceWindow     int     `yaml:"acceptance_window,omitempty" validate:"omitempty,min=1"`
	StagnationThreshold  int     `yaml:"stagnation_threshold,omitempty" validate:"omitempty,min=1"`
	DeltaIter            int     `yaml:"delta_iter,omitempty" validate:"omitempty,min=1"`

	// Iteration budgets
	SamplingIterations      int `yaml:"sampling_iterations" validate:"required,min=1"`
	PostAnnealingIterations int `yaml:"post_annealing_iterations,omitempty" validate:"omitempty,min=1"`

	// Post-sample annealing controls
	PostAnnealTemperature float64 `yaml:"post_anneal_temperature,omitempty" validate:"omitempty,gt=0"`
	PostAnnealDecay       float64 `yaml:"post_anneal_decay,omitempty" validate:"omitempty,gt=0,lte=1"`

	// Optimum recording
	RecordMargin float64 `yaml:"record_margin,omitempty" validate:"omitempty,gt=0"`

	// Randomness
	Seed             int64 `yaml:"seed"`
	SeedIndex        int   `yaml:"seed_index,omitempty" validate:"omitempty,min=0"`
	ResampleInterval int   `yaml:"resample_interval,omitempty" validate:"omitempty,min=1"`

	// Keep step-by-step trace records
	RecordHistory bool `yaml:"record_history"`
}

// LoggingSettings configures the structured logger.
type LoggingSettings struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN ERROR FATAL"`
	Color bool   `yaml:"color"`
}

// OutputSettings configures optional result persistence.
type OutputSettings struct {
	// Path of the SQLite database recorded optima are written to.
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// Load reads, parses, and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ResourceNotFound, "failed to read config file"),
			errors.Fields{"path": path},
		)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.InvalidConfig, "failed to parse config YAML")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills defaults the validator treats as optional.
func (c *Config) applyDefaults() {
	if c.Sampler.Trajectories == 0 && len(c.Sampler.Gammas) == 0 {
		c.Sampler.Trajectories = 1
	}
	if c.Sampler.Gamma == 0 {
		c.Sampler.Gamma = 1
	}
	if c.Sampler.EnergyWeight == 0 && c.Sampler.UncertaintyWeight == 0 {
		c.Sampler.EnergyWeight = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "INFO"
	}
}

// Validate checks the configuration against struct tags plus the cross-field
// constraints tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return errors.WithFields(
				errors.New(errors.InvalidConfig, "config validation failed"),
				errors.Fields{"field": first.Namespace(), "constraint": first.Tag()},
			)
		}
		return errors.Wrap(err, errors.InvalidConfig, "config validation failed")
	}

	if len(c.Sampler.Gammas) > 0 && c.Sampler.Trajectories > 0 && len(c.Sampler.Gammas) != c.Sampler.Trajectories {
		return errors.WithFields(
			errors.New(errors.InvalidConfig, "gammas length conflicts with trajectory count"),
			errors.Fields{"gammas": len(c.Sampler.Gammas), "trajectories": c.Sampler.Trajectories},
		)
	}
	return nil
}

// ToSamplerConfig translates the file settings into the runtime configuration.
func (c *Config) ToSamplerConfig() core.SamplerConfig {
	gammas := c.Sampler.Gammas
	if len(gammas) == 0 {
		gammas = make([]float64, c.Sampler.Trajectories)
		for i := range gammas {
			gammas[i] = c.Sampler.Gamma
		}
	}

	cfg := core.SamplerConfig{
		AlphabetSize:            c.Sampler.AlphabetSize,
		MinLength:               c.Sampler.MinLength,
		MaxLength:               c.Sampler.MaxLength,
		VariableLength:          c.Sampler.VariableLength,
		Gammas:                  gammas,
		EnergyWeight:            c.Sampler.EnergyWeight,
		UncertaintyWeight:       c.Sampler.UncertaintyWeight,
		STUN:                    c.Sampler.STUN,
		TargetAcceptanceRate:    c.Sampler.TargetAcceptanceRate,
		InitialTemperature:      c.Sampler.InitialTemperature,
		AcceptanceWindow:        c.Sampler.AcceptanceWindow,
		StagnationThreshold:     c.Sampler.StagnationThreshold,
		DeltaIter:               c.Sampler.DeltaIter,
		SamplingIterations:      c.Sampler.SamplingIterations,
		PostAnnealingIterations: c.Sampler.PostAnnealingIterations,
		PostAnnealTemperature:   c.Sampler.PostAnnealTemperature,
		PostAnnealDecay:         c.Sampler.PostAnnealDecay,
		RecordMargin:            c.Sampler.RecordMargin,
		Seed:                    c.Sampler.Seed,
		SeedIndex:               c.Sampler.SeedIndex,
		ResampleInterval:        c.Sampler.ResampleInterval,
		RecordHistory:           c.Sampler.RecordHistory,
	}
	cfg.ApplyDefaults()
	return cfg
}
