// SPDX-License-Identifier: MIT

// Command dpmm runs a collapsed Gibbs chain of a Dirichlet-process mixture
// over a CSV table and checks the sampler's invariants along the way.
//
// Usage:
//
//	dpmm -data table.csv.gz [-config run.yaml] [-iterations 21] [-seed 1]
//	     [-log-level info] [-progress]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/katalvlaran/dpmix/config"
)

func main() {
	var (
		flagConfig     = flag.String("config", "", "run configuration (.yaml, .yml or .toml)")
		flagData       = flag.String("data", "", "CSV table; .gz, .zst and .lz4 are decompressed")
		flagIterations = flag.Int("iterations", config.DefaultIterations, "number of sampler iterations")
		flagSeed       = flag.Int64("seed", 0, "random seed (0 selects the default seed)")
		flagLogLevel   = flag.String("log-level", config.DefaultLogLevel, "debug, info, warn or error")
		flagProgress   = flag.Bool("progress", false, "show a progress bar over iterations")
	)
	flag.Parse()

	cfg := config.Default()
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Data = *flagData
		case "iterations":
			cfg.Iterations = *flagIterations
		case "seed":
			cfg.Seed = *flagSeed
		case "log-level":
			cfg.Log.Level = *flagLogLevel
		case "progress":
			cfg.Progress = *flagProgress
		}
	})
	if cfg.Data == "" {
		fmt.Fprintln(os.Stderr, "dpmm: -data or a config with data is required")
		flag.Usage()
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sum, err := run(context.Background(), cfg, newLogger(cfg.Log, os.Stderr), os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, sum)
}
