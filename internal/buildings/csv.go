package buildings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Column names of the 3D massing export.
const (
	colLatitude  = "LATITUDE"
	colLongitude = "LONGITUDE"
	colMinHeight = "MIN_HEIGHT"
	colMaxHeight = "MAX_HEIGHT"
	colAvgHeight = "AVG_HEIGHT"
	colHeightMSL = "HEIGHT_MSL"
	colArea      = "SHAPE_AREA"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("building export is missing a required column")

// LoadCSV reads building records from a CSV export on disk.
func LoadCSV(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open building export: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses building records. LATITUDE, LONGITUDE and MAX_HEIGHT are
// required; the sea-level height is the largest of the height columns present.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read building export header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colLatitude, colLongitude, colMaxHeight} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, errRead := reader.Read()
		if errors.Is(errRead, io.EOF) {
			break
		}
		if errRead != nil {
			return nil, fmt.Errorf("failed to read building export line %d: %w", line, errRead)
		}

		record, errParse := parseRow(row, index)
		if errParse != nil {
			return nil, fmt.Errorf("invalid building on line %d: %w", line, errParse)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRow(row []string, index map[string]int) (Record, error) {
	field := func(name string) (float64, bool, error) {
		i, ok := index[name]
		if !ok || i >= len(row) || strings.TrimSpace(row[i]) == "" {
			return 0, false, nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return 0, false, fmt.Errorf("column %s: %w", name, err)
		}
		return v, true, nil
	}

	var rec Record
	var err error
	var ok bool

	if rec.Latitude, ok, err = field(colLatitude); err != nil || !ok {
		return Record{}, orMissing(err, colLatitude)
	}
	if rec.Longitude, ok, err = field(colLongitude); err != nil || !ok {
		return Record{}, orMissing(err, colLongitude)
	}
	if rec.MaxHeight, _, err = field(colMaxHeight); err != nil {
		return Record{}, err
	}
	if rec.Area, _, err = field(colArea); err != nil {
		return Record{}, err
	}

	rec.HeightMSL = rec.MaxHeight
	for _, col := range []string{colMinHeight, colAvgHeight, colHeightMSL} {
		v, present, errField := field(col)
		if errField != nil {
			return Record{}, errField
		}
		if present {
			rec.HeightMSL = math.Max(rec.HeightMSL, v)
		}
	}

	return rec, nil
}

func orMissing(err error, column string) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: %s is empty", ErrMissingColumn, column)
}
