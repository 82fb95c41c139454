package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/XiaoConstantine/stun-go/pkg/config"
	"github.com/XiaoConstantine/stun-go/pkg/datasets"
	"github.com/XiaoConstantine/stun-go/pkg/sampler"
	"github.com/XiaoConstantine/stun-go/pkg/scoring"
)

var (
	annealConfigPath string
	annealSeedsPath  string
)

var annealCmd = &cobra.Command{
	Use:   "anneal",
	Short: "Crash Parquet-loaded seed sequences to their local minima",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnnealing(cmd.Context())
	},
}

func init() {
	annealCmd.Flags().StringVarP(&annealConfigPath, "config", "c", "stun.yaml", "path to YAML run configuration")
	annealCmd.Flags().StringVarP(&annealSeedsPath, "seeds", "s", "seeds.parquet", "parquet file of seed sequences")
	rootCmd.AddCommand(annealCmd)
}

func runAnnealing(ctx context.Context) error {
	cfg, err := config.Load(annealConfigPath)
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

	seeds, err := datasets.LoadSeedSequences(ctx, annealSeedsPath, samplerCfg.MaxLength)
	if err != nil {
		return err
	}

	s, err := sampler.New(samplerCfg, scorer)
	if err != nil {
		return err
	}

	annealed, err := s.PostSampleAnnealing(ctx, seeds)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Printf("annealed %d seeds over %d iterations\n", len(annealed), samplerCfg.PostAnnealingIterations)
	for i, r := range annealed {
		p.Printf("  seed %d: score %.4f sequence [%s]\n", i, r.Score, r.Sequence.Key())
	}
	return nil
}
