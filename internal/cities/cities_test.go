package cities

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tspmtz/tspmtz/internal/geo"
)

func TestLoad(t *testing.T) {
	in := `id,longitude,latitude,name
0,116.4074,39.9042,Beijing
# skipped
1, 121.4737 ,31.2304,Shanghai
2,113.2644,23.1291,Guangzhou
`
	coords, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.Equal(t, geo.Coord{Lon: 116.4074, Lat: 39.9042}, coords[0])
	assert.Equal(t, geo.Coord{Lon: 121.4737, Lat: 31.2304}, coords[1])
	assert.Equal(t, geo.Coord{Lon: 113.2644, Lat: 23.1291}, coords[2])
}

func TestLoad_HeaderCaseAndOrder(t *testing.T) {
	in := "Latitude\t LONGITUDE\n1.5\t2.5\n"
	coords, err := Load(strings.NewReader(in), WithDelimiter('\t'))
	require.NoError(t, err)
	require.Equal(t, []geo.Coord{{Lon: 2.5, Lat: 1.5}}, coords)
}

func TestLoad_HeaderOnly(t *testing.T) {
	coords, err := Load(strings.NewReader("longitude,latitude\n"))
	require.NoError(t, err)
	assert.Empty(t, coords)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrNoHeader},
		{"no longitude", "lon,latitude\n1,2\n", ErrMissingColumn},
		{"no latitude", "longitude,lat\n1,2\n", ErrMissingColumn},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.Equal(t, tc.want, errors.Cause(err))
		})
	}
}

func TestLoad_BadNumber(t *testing.T) {
	_, err := Load(strings.NewReader("longitude,latitude\n1,2\nabc,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), ColLongitude)
}

func TestLoad_ShortRow(t *testing.T) {
	_, err := Load(strings.NewReader("longitude,latitude\n1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColLatitude)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TSP_Data.txt")
	require.NoError(t, os.WriteFile(path, []byte("longitude,latitude\n0,0\n0,1\n"), 0o644))

	coords, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, coords, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
