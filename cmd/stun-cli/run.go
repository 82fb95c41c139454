package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/XiaoConstantine/stun-go/pkg/config"
	"github.com/XiaoConstantine/stun-go/pkg/core"
	"github.com/XiaoConstantine/stun-go/pkg/logging"
	"github.com/XiaoConstantine/stun-go/pkg/oracles"
	"github.com/XiaoConstantine/stun-go/pkg/results"
	"github.com/XiaoConstantine/stun-go/pkg/sampler"
	"github.com/XiaoConstantine/stun-go/pkg/scoring"
)

var (
	runConfigPath string
	runOracleName string
	runTargetSum  int
	runDBPath     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an exploratory convergence against a toy oracle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvergence(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "stun.yaml", "path to YAML run configuration")
	runCmd.Flags().StringVar(&runOracleName, "oracle", "sum", "toy oracle to optimize: sum, target-sum, alternation")
	runCmd.Flags().IntVar(&runTargetSum, "target", 20, "target value for the target-sum oracle")
	runCmd.Flags().StringVar(&runDBPath, "db", "", "SQLite path for persisting recorded optima (overrides config)")
	rootCmd.AddCommand(runCmd)
}

func buildOracle() (core.Oracle, error) {
	switch runOracleName {
	case "sum":
		return &oracles.SumOracle{}, nil
	case "target-sum":
		return &oracles.TargetSumOracle{Target: runTargetSum}, nil
	case "alternation":
		return &oracles.AlternationOracle{}, nil
	default:
		return nil, fmt.Errorf("unknown oracle %q", runOracleName)
	}
}

func configureLogging(cfg *config.Config) {
	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: logging.ParseSeverity(cfg.Logging.Level),
		Outputs:  []logging.Output{logging.NewConsoleOutput(true, logging.WithColor(cfg.Logging.Color))},
	}))
}

func runConvergence(ctx context.Context) error {
	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}
	configureLogging(cfg)

	oracle, err := buildOracle()
	if err != nil {
		return err
	}
	samplerCfg := cfg.ToSamplerConfig()
	scorer, err := scoring.NewOracleScorer(oracle, samplerCfg.EnergyWeight, samplerCfg.UncertaintyWeight)
	if err != nil {
		return err
	}

	s, err := sampler.New(samplerCfg, scorer)
	if err != nil {
		return err
	}

	res, err := s.Converge(ctx)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Printf("run %s finished after %d iterations\n", res.RunID, res.Iterations)
	p.Printf("%d near-optima recorded, best score %.4f\n", res.RecordedCount, res.AbsMin)
	for i, best := range res.BestScores {
		p.Printf("  trajectory %d: best %.4f, acceptance rate %.3f, temperature %.4g\n",
			i, best, res.AcceptanceRates[i], res.FinalTemperatures[i])
	}

	dbPath := runDBPath
	if dbPath == "" {
		dbPath = cfg.Output.SQLitePath
	}
	if dbPath != "" {
		store, err := results.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveRun(ctx, res); err != nil {
			return err
		}
		p.Printf("persisted run %s to %s\n", res.RunID, dbPath)
	}
	return nil
}
