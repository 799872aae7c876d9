package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tspmtz/tspmtz/internal/config"
	"github.com/tspmtz/tspmtz/internal/geo"
)

func setup(t *testing.T, data string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input = filepath.Join(dir, "TSP_Data.txt")
	cfg.ModelFile = filepath.Join(dir, "TSP_MTZ.lp")
	require.NoError(t, os.WriteFile(cfg.Input, []byte(data), 0o644))
	return cfg
}

func TestRun_UnitSquare(t *testing.T) {
	cfg := setup(t, "longitude,latitude\n0,0\n0,1\n1,1\n1,0\n")
	cfg.MIPRelGap = 0

	var out bytes.Buffer
	res, err := Run(cfg, zap.NewNop(), &out)
	require.NoError(t, err)

	square := []geo.Coord{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}, {Lon: 1, Lat: 1}, {Lon: 1, Lat: 0}}
	var perimeter float64
	for i := range square {
		perimeter += geo.Distance(square[i], square[(i+1)%4])
	}
	assert.InDelta(t, perimeter, res.Objective, 1e-3)

	assert.Contains(t, out.String(), "x[0,1]: 1")
	assert.Contains(t, out.String(), "objective: ")
	assert.Contains(t, out.String(), "tour: 0 -> 1 -> 2 -> 3 -> 0")

	info, err := os.Stat(cfg.ModelFile)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestRun_Directed(t *testing.T) {
	cfg := setup(t, "name;longitude;latitude\nA;0;0\nB;1;1\nC;0;1\nD;1;0\n")
	cfg.Delimiter = ";"
	cfg.Arcs = "directed"

	var out bytes.Buffer
	res, err := Run(cfg, zap.NewNop(), &out)
	require.NoError(t, err)
	require.NoError(t, res.Check())

	// The perimeter visits B between C and D.
	tour, err := res.CityTour()
	require.NoError(t, err)
	pos := map[int]int{}
	for i, c := range tour[:4] {
		pos[c] = i
	}
	assert.Equal(t, 2, pos[1])
}

func TestRun_NoCities(t *testing.T) {
	cfg := setup(t, "longitude,latitude\n")
	_, err := Run(cfg, zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, ErrNoCities, errors.Cause(err))
}

func TestRun_MissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.Input = filepath.Join(t.TempDir(), "missing.txt")
	_, err := Run(cfg, zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MIPRelGap = -1
	_, err := Run(cfg, zap.NewNop(), &bytes.Buffer{})
	assert.Error(t, err)
}
