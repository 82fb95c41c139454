package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stun-cli",
	Short: "CLI for running STUN/MCMC sequence optimization",
	Long: `A command-line interface for the stun-go sampler that makes it easy to
run sequence optimization against the built-in toy oracles without writing
boilerplate code.

The CLI provides:
- Exploratory convergence runs from a YAML configuration
- Post-sample annealing of Parquet-loaded seed sequences
- Optional SQLite persistence of recorded near-optima`,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
