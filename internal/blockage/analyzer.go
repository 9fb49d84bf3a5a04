// Package blockage decides which nearby buildings stand between an observer
// and the sun, and how much of the direct sunlight they remove.
package blockage

import (
	"math"
	"sort"

	"github.com/UnknownOlympus/helios/internal/geo"
	"github.com/UnknownOlympus/helios/internal/models"
)

const (
	// DefaultFloorHeight is the assumed height of one story, in meters.
	DefaultFloorHeight = 3.0
	// DefaultGroundOffset is the eye level of an observer on the first floor, in meters.
	DefaultGroundOffset = 1.5
	// DefaultAzimuthTolerance is the widest azimuth difference at which a building can still block the sun.
	DefaultAzimuthTolerance = 90.0
	// DefaultDistanceScale is the distance, in meters, at which a building's proximity weight halves.
	DefaultDistanceScale = 100.0

	minDistance = 0.1
)

// Analyzer computes SunBlockage for an observer. The zero value is not usable;
// construct it with NewAnalyzer. An Analyzer holds no mutable state and is safe
// for concurrent use.
type Analyzer struct {
	floorHeight      float64
	groundOffset     float64
	azimuthTolerance float64
	distanceScale    float64
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithFloorHeight overrides the per-story height.
func WithFloorHeight(meters float64) Option {
	return func(a *Analyzer) { a.floorHeight = meters }
}

// WithGroundOffset overrides the first-floor eye level.
func WithGroundOffset(meters float64) Option {
	return func(a *Analyzer) { a.groundOffset = meters }
}

// WithAzimuthTolerance overrides the azimuth window, clamped to (0, 180).
func WithAzimuthTolerance(degrees float64) Option {
	return func(a *Analyzer) {
		if degrees > 0 && degrees < 180 {
			a.azimuthTolerance = degrees
		}
	}
}

// NewAnalyzer returns an Analyzer using the default geometry unless overridden.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		floorHeight:      DefaultFloorHeight,
		groundOffset:     DefaultGroundOffset,
		azimuthTolerance: DefaultAzimuthTolerance,
		distanceScale:    DefaultDistanceScale,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ObserverHeight returns the eye level, in meters above grade, of someone on the given floor.
func (a *Analyzer) ObserverHeight(floor int) float64 {
	if floor < 1 {
		floor = 1
	}
	return a.floorHeight*float64(floor-1) + a.groundOffset
}

// Analyze returns the combined blockage of buildings around observer for the
// given sun position. Buildings are never modified.
func (a *Analyzer) Analyze(
	sun models.SunPosition,
	observer models.Coordinates,
	floor int,
	buildings []models.Building,
) models.SunBlockage {
	observerHeight := a.ObserverHeight(floor)
	blocking := make([]models.BlockingBuilding, 0)

	for _, b := range buildings {
		if b.Distance <= 0 {
			continue
		}

		// A roof at or below eye level hides nothing, even with the sun under the horizon.
		relativeHeight := b.HeightMax - observerHeight
		if relativeHeight <= 0 {
			continue
		}

		angle := AngularHeight(relativeHeight, b.Distance)
		if angle <= sun.Elevation {
			continue
		}

		bearing := geo.Bearing(observer, models.Coordinates{Latitude: b.Lat, Longitude: b.Lng})
		azimuthDiff := geo.AngularDifference(bearing, sun.Azimuth)
		if azimuthDiff > a.azimuthTolerance {
			continue
		}

		impact := a.impact(angle, sun.Elevation, azimuthDiff, b.Distance)
		if impact <= 0 {
			continue
		}

		blocking = append(blocking, models.BlockingBuilding{
			Distance:    b.Distance,
			Height:      b.HeightMax,
			Angle:       angle,
			AzimuthDiff: azimuthDiff,
			Impact:      impact,
		})
	}

	sort.SliceStable(blocking, func(i, j int) bool {
		return blocking[i].Impact > blocking[j].Impact
	})

	percentage := Combine(blocking)

	return models.SunBlockage{
		IsBlocked:          percentage > 0,
		BlockagePercentage: percentage,
		BlockingBuildings:  blocking,
	}
}

// impact scores one candidate on a 0-100 scale. It grows with how far the
// roofline rises above the sun, and shrinks with azimuth misalignment and distance.
func (a *Analyzer) impact(angle, elevation, azimuthDiff, distance float64) float64 {
	// angle > elevation guarantees a positive span.
	overshoot := (angle - elevation) / (90 - elevation)
	alignment := 1 - azimuthDiff/a.azimuthTolerance
	proximity := 1 / (1 + distance/a.distanceScale)

	return clamp(100*overshoot*alignment*proximity, 0, 100)
}

// AngularHeight returns, in degrees, how high the top of a building rises above
// the observer's horizontal. Buildings lower than the observer have zero angular height.
func AngularHeight(relativeHeight, distance float64) float64 {
	return math.Atan(math.Max(0, relativeHeight)/math.Max(distance, minDistance)) * 180 / math.Pi
}

// Combine folds individual impacts into one percentage with diminishing
// returns: each building removes its share of the light that is still left.
func Combine(blocking []models.BlockingBuilding) float64 {
	remaining := 1.0
	for _, b := range blocking {
		remaining *= 1 - clamp(b.Impact, 0, 100)/100
	}
	return clamp(100*(1-remaining), 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
