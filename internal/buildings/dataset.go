// Package buildings holds the process-wide building footprint dataset and
// answers bounded-radius lookups against it.
package buildings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/UnknownOlympus/helios/internal/geo"
	"github.com/UnknownOlympus/helios/internal/models"
)

// Record is one row of the source dataset.
type Record struct {
	Latitude  float64 // Centroid latitude.
	Longitude float64 // Centroid longitude.
	MaxHeight float64 // Roof height above grade, meters.
	HeightMSL float64 // Roof height above sea level, meters.
	Area      float64 // Footprint area, square meters.
}

// Source answers nearby building lookups.
type Source interface {
	Nearby(ctx context.Context, center models.Coordinates, radius float64) ([]models.Building, error)
}

// ErrInvalidRadius is returned when a lookup radius is not a positive number.
var ErrInvalidRadius = errors.New("search radius must be positive")

// Dataset is an immutable, latitude-sorted index over building records.
// It is built once at startup and shared by all requests without locking.
type Dataset struct {
	records []Record
}

// NewDataset copies records into a new Dataset. Records with non-finite
// coordinates are skipped.
func NewDataset(records []Record) *Dataset {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if !isFinite(r.Latitude) || !isFinite(r.Longitude) {
			continue
		}
		kept = append(kept, r)
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Latitude < kept[j].Latitude
	})

	return &Dataset{records: kept}
}

// Len returns the number of indexed buildings.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Nearby returns every building within radius meters of center, closest first.
func (d *Dataset) Nearby(ctx context.Context, center models.Coordinates, radius float64) ([]models.Building, error) {
	if radius <= 0 || !isFinite(radius) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building lookup cancelled: %w", err)
	}

	latDelta := radius / geo.MetersPerDegree
	lo := sort.Search(len(d.records), func(i int) bool {
		return d.records[i].Latitude >= center.Latitude-latDelta
	})

	result := make([]models.Building, 0)
	for _, r := range d.records[lo:] {
		if r.Latitude > center.Latitude+latDelta {
			break
		}

		pos := models.Coordinates{Latitude: r.Latitude, Longitude: r.Longitude}
		distance := geo.Distance(center, pos)
		if distance > radius {
			continue
		}

		result = append(result, models.Building{
			Distance:  round1(distance),
			HeightMax: r.MaxHeight,
			Height:    r.HeightMSL,
			Area:      round1(r.Area),
			Lat:       r.Latitude,
			Lng:       r.Longitude,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})

	return result, nil
}

// FilterByDirection keeps the buildings whose bearing from observer lies within
// 90 degrees of the direction the windows face, i.e. the buildings on that side.
func FilterByDirection(observer models.Coordinates, direction models.Direction, list []models.Building) []models.Building {
	const halfWindow = 90.0

	filtered := make([]models.Building, 0, len(list))
	for _, b := range list {
		bearing := geo.Bearing(observer, models.Coordinates{Latitude: b.Lat, Longitude: b.Lng})
		if geo.AngularDifference(bearing, direction.Bearing()) < halfWindow {
			filtered = append(filtered, b)
		}
	}

	return filtered
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
