// Package report prints a solved tour.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/tspmtz/tspmtz/internal/mtz"
)

// Variables writes every nonzero variable as "name: value" followed by
// the objective value.
func Variables(w io.Writer, r *mtz.Result) error {
	var b strings.Builder
	b.WriteString("____________ solution ____________\n")
	for _, v := range r.Nonzero {
		fmt.Fprintf(&b, "%s: %s\n", v.Name, formatValue(v.Value))
	}
	fmt.Fprintf(&b, "objective: %s\n", formatValue(r.Objective))
	_, err := io.WriteString(w, b.String())
	return err
}

// Legs returns the distance of each leg of the tour through dist, depot
// leg last.
func Legs(r *mtz.Result, dist mat.Matrix) ([]float64, error) {
	tour, err := r.Tour()
	if err != nil {
		return nil, err
	}
	legs := make([]float64, 0, len(tour)-1)
	for i := 0; i+1 < len(tour); i++ {
		legs = append(legs, dist.At(tour[i], tour[i+1]))
	}
	return legs, nil
}

// Summary writes the closed city tour, the solver status and gap, and
// statistics over the tour legs.
func Summary(w io.Writer, r *mtz.Result, dist mat.Matrix) error {
	tour, err := r.CityTour()
	if err != nil {
		return err
	}
	legs, err := Legs(r, dist)
	if err != nil {
		return err
	}

	ids := make([]string, len(tour))
	for i, c := range tour {
		ids[i] = strconv.Itoa(c)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "tour: %s\n", strings.Join(ids, " -> "))
	fmt.Fprintf(&b, "status: %s, mip gap %.4f%%\n", r.Status, 100*r.MIPGap)

	total, err := stats.Sum(legs)
	if err != nil {
		return errors.Wrap(err, "report: legs")
	}
	mean, err := stats.Mean(legs)
	if err != nil {
		return errors.Wrap(err, "report: legs")
	}
	longest, err := stats.Max(legs)
	if err != nil {
		return errors.Wrap(err, "report: legs")
	}
	fmt.Fprintf(&b, "legs: %d, total %s km, mean %s km, longest %s km\n",
		len(legs),
		humanize.CommafWithDigits(total, 2),
		humanize.CommafWithDigits(mean, 2),
		humanize.CommafWithDigits(longest, 2))

	_, err = io.WriteString(w, b.String())
	return err
}

// formatValue prints integral values without a fraction.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
