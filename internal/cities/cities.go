// Package cities loads city coordinates from a delimited text file.
//
// The first row is a header. The longitude and latitude columns are
// found by name; any other column is ignored. Row order gives the city
// id, starting at 0.
package cities

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tspmtz/tspmtz/internal/geo"
)

// Column names looked up in the header, case-insensitively.
const (
	ColLongitude = "longitude"
	ColLatitude  = "latitude"
)

var (
	// ErrNoHeader is returned for an input without a header row.
	ErrNoHeader = errors.New("cities: missing header row")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("cities: missing column")
)

type options struct {
	delimiter rune
}

// Option configures Load.
type Option func(*options)

// WithDelimiter sets the field delimiter. The default is ','.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.delimiter = r
		}
	}
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string, opts ...Option) ([]geo.Coord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cities: open")
	}
	defer f.Close()

	coords, err := Load(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return coords, nil
}

// Load reads a header row and then one city per row. Lines starting
// with '#' are skipped. The number of cities and their positions are
// not validated.
func Load(r io.Reader, opts ...Option) ([]geo.Coord, error) {
	o := options{delimiter: ','}
	for _, opt := range opts {
		opt(&o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, errors.Wrap(err, "cities: read header")
	}

	lonCol, latCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColLongitude:
			lonCol = i
		case ColLatitude:
			latCol = i
		}
	}
	if lonCol < 0 {
		return nil, errors.Wrap(ErrMissingColumn, ColLongitude)
	}
	if latCol < 0 {
		return nil, errors.Wrap(ErrMissingColumn, ColLatitude)
	}

	var coords []geo.Coord
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "cities: read")
		}
		line, _ := cr.FieldPos(0)

		lon, err := parseField(rec, lonCol)
		if err != nil {
			return nil, errors.Wrapf(err, "cities: line %d: %s", line, ColLongitude)
		}
		lat, err := parseField(rec, latCol)
		if err != nil {
			return nil, errors.Wrapf(err, "cities: line %d: %s", line, ColLatitude)
		}
		coords = append(coords, geo.Coord{Lon: lon, Lat: lat})
	}
	return coords, nil
}

func parseField(rec []string, col int) (float64, error) {
	if col >= len(rec) {
		return 0, errors.Errorf("row has %d fields", len(rec))
	}
	return strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
}
