// Package app runs one load, build, solve and report pass.
package app

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tspmtz/tspmtz/internal/cities"
	"github.com/tspmtz/tspmtz/internal/config"
	"github.com/tspmtz/tspmtz/internal/distmat"
	"github.com/tspmtz/tspmtz/internal/mtz"
	"github.com/tspmtz/tspmtz/internal/report"
)

// ErrNoCities is returned for an input file with a header and no rows.
var ErrNoCities = errors.New("app: no cities in input")

// Run executes the pipeline described by cfg and writes the report to
// w. Any failure ends the run.
func Run(cfg *config.Config, log *zap.Logger, w io.Writer) (*mtz.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	coords, err := cities.LoadFile(cfg.Input, cities.WithDelimiter(cfg.DelimiterRune()))
	if err != nil {
		return nil, err
	}
	if len(coords) == 0 {
		return nil, errors.Wrap(ErrNoCities, cfg.Input)
	}
	log.Info("loaded cities", zap.String("input", cfg.Input), zap.Int("cities", len(coords)))

	dist := distmat.Build(coords)
	f := mtz.New(dist, cfg.Kind())
	log.Info("built model",
		zap.Stringer("arcs", f.Arcs.Kind()),
		zap.Int("arc_vars", f.Arcs.Len()),
		zap.Int("cols", f.NumCols()),
		zap.String("model_file", cfg.ModelFile))

	start := time.Now()
	res, err := f.Solve(cfg.SolveOptions())
	if err != nil {
		log.Error("solve failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}
	log.Info("solved",
		zap.Stringer("status", res.Status),
		zap.Float64("objective", res.Objective),
		zap.Float64("mip_gap", res.MIPGap),
		zap.Duration("elapsed", time.Since(start)))
	if !res.Status.IsOptimal() {
		log.Warn("solver stopped before optimality, reporting the incumbent", zap.Stringer("status", res.Status))
	}

	if err := res.Check(); err != nil {
		return nil, errors.Wrap(err, "app: solution check")
	}
	log.Debug("solution checked", zap.Int("selected", len(res.Selected)))

	if err := report.Variables(w, res); err != nil {
		return nil, errors.Wrap(err, "app: report")
	}
	if err := report.Summary(w, res, dist); err != nil {
		return nil, errors.Wrap(err, "app: report")
	}
	return res, nil
}
