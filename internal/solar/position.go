// Package solar computes the apparent position of the sun for an observer.
//
// The implementation follows the NOAA solar calculator: declination and the
// equation of time are derived from the Julian century, the hour angle from
// true solar time at the observer's longitude, and elevation/azimuth from
// spherical trigonometry. Accuracy is well under a degree, which is far
// finer than the building data it is compared against.
package solar

import (
	"math"
	"time"

	"github.com/UnknownOlympus/helios/internal/geo"
	"github.com/UnknownOlympus/helios/internal/models"
	"github.com/soniakeys/meeus/v3/julian"
)

const (
	j2000         = 2451545.0
	daysInCentury = 36525.0
	minutesPerDay = 1440.0
)

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Compute returns the sun's elevation and azimuth seen from (lat, lng) at time t.
// A negative elevation means the sun is below the horizon; it is returned as is.
func Compute(lat, lng float64, t time.Time) models.SunPosition {
	t = t.UTC()
	jc := (julian.TimeToJD(t) - j2000) / daysInCentury

	decl, eqTime := declinationAndEquationOfTime(jc)

	// True solar time in minutes, longitude east positive.
	utcMinutes := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60 + float64(t.Nanosecond())/6e10
	trueSolarTime := math.Mod(utcMinutes+eqTime+4*lng, minutesPerDay)
	if trueSolarTime < 0 {
		trueSolarTime += minutesPerDay
	}
	hourAngle := degToRad(trueSolarTime/4 - 180)

	latRad := degToRad(clamp(lat, -90, 90))
	declRad := degToRad(decl)

	sinElev := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(hourAngle)
	elevation := radToDeg(math.Asin(clamp(sinElev, -1, 1)))

	// atan2 keeps the azimuth defined at the poles where cos(lat) vanishes.
	azimuth := radToDeg(math.Atan2(
		math.Sin(hourAngle),
		math.Cos(hourAngle)*math.Sin(latRad)-math.Tan(declRad)*math.Cos(latRad),
	)) + 180

	return models.SunPosition{
		Elevation: clamp(elevation, -90, 90),
		Azimuth:   geo.NormalizeAzimuth(azimuth),
	}
}

// declinationAndEquationOfTime returns the solar declination in degrees and the
// equation of time in minutes for the given Julian century.
func declinationAndEquationOfTime(jc float64) (float64, float64) {
	meanLong := math.Mod(280.46646+jc*(36000.76983+jc*0.0003032), 360)
	meanAnomaly := 357.52911 + jc*(35999.05029-0.0001537*jc)
	eccentricity := 0.016708634 - jc*(0.000042037+0.0000001267*jc)

	mRad := degToRad(meanAnomaly)
	center := math.Sin(mRad)*(1.914602-jc*(0.004817+0.000014*jc)) +
		math.Sin(2*mRad)*(0.019993-0.000101*jc) +
		math.Sin(3*mRad)*0.000289

	omega := 125.04 - 1934.136*jc
	apparentLong := meanLong + center - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	meanObliquity := 23 + (26+(21.448-jc*(46.815+jc*(0.00059-jc*0.001813)))/60)/60
	obliquity := meanObliquity + 0.00256*math.Cos(degToRad(omega))

	decl := radToDeg(math.Asin(math.Sin(degToRad(obliquity)) * math.Sin(degToRad(apparentLong))))

	y := math.Tan(degToRad(obliquity/2)) * math.Tan(degToRad(obliquity/2))
	l0 := degToRad(meanLong)
	eqTime := 4 * radToDeg(y*math.Sin(2*l0)-
		2*eccentricity*math.Sin(mRad)+
		4*eccentricity*y*math.Sin(mRad)*math.Cos(2*l0)-
		0.5*y*y*math.Sin(4*l0)-
		1.25*eccentricity*eccentricity*math.Sin(2*mRad))

	return decl, eqTime
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
