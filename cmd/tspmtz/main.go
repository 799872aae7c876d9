// Command tspmtz solves the traveling salesman problem over the cities
// in a delimited file with the Miller-Tucker-Zemlin model on HiGHS.
//
// Without flags it reads TSP_Data.txt, writes the model to TSP_MTZ.lp
// and solves to a 1% relative gap.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tspmtz/tspmtz/internal/app"
	"github.com/tspmtz/tspmtz/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		input      = flag.String("input", "", "city file, overrides the config")
		modelFile  = flag.String("model", "", "model output file, overrides the config")
		gap        = flag.Float64("gap", -1, "relative MIP gap, overrides the config")
		arcs       = flag.String("arcs", "", `arc set, "upper" or "directed"`)
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *input != "" {
		cfg.Input = *input
	}
	if *modelFile != "" {
		cfg.ModelFile = *modelFile
	}
	if *gap >= 0 {
		cfg.MIPRelGap = *gap
	}
	if *arcs != "" {
		cfg.Arcs = *arcs
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	if _, err := app.Run(cfg, log, os.Stdout); err != nil {
		log.Error("run failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}
