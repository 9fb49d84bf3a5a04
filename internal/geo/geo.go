// Package geo holds the small amount of spherical geometry the light score needs:
// great-circle distance, initial bearing, destination points and angle normalization.
package geo

import (
	"math"

	"github.com/UnknownOlympus/helios/internal/models"
)

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// MetersPerDegree is the approximate length of one degree of latitude.
const MetersPerDegree = 111_000.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the great-circle distance in meters between two points.
func Distance(from, to models.Coordinates) float64 {
	lat1 := toRad(from.Latitude)
	lat2 := toRad(to.Latitude)
	dLat := toRad(to.Latitude - from.Latitude)
	dLon := toRad(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Bearing returns the initial compass bearing from one point to another,
// in degrees clockwise from north, normalized to [0, 360).
func Bearing(from, to models.Coordinates) float64 {
	lat1 := toRad(from.Latitude)
	lat2 := toRad(to.Latitude)
	dLon := toRad(to.Longitude - from.Longitude)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return NormalizeAzimuth(toDeg(math.Atan2(y, x)))
}

// Destination returns the point reached by travelling distance meters from origin
// along the given initial bearing.
func Destination(origin models.Coordinates, bearing, distance float64) models.Coordinates {
	lat1 := toRad(origin.Latitude)
	lon1 := toRad(origin.Longitude)
	brg := toRad(bearing)
	delta := distance / EarthRadiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(brg))
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)

	return models.Coordinates{
		Latitude:  toDeg(lat2),
		Longitude: math.Mod(toDeg(lon2)+540, 360) - 180,
	}
}

// NormalizeAzimuth maps any angle in degrees onto [0, 360).
func NormalizeAzimuth(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// AngularDifference returns the smallest circular difference between two
// bearings, in [0, 180].
func AngularDifference(a, b float64) float64 {
	diff := math.Abs(NormalizeAzimuth(a) - NormalizeAzimuth(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
