package solar_test

import (
	"math"
	"testing"
	"time"

	"github.com/UnknownOlympus/helios/internal/solar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	torontoLat = 43.6532
	torontoLng = -79.3832
)

func TestCompute_SummerSolsticeNoon(t *testing.T) {
	t.Parallel()

	// Solar noon in Toronto on the June solstice is close to 17:19 UTC.
	at := time.Date(2024, time.June, 21, 17, 19, 0, 0, time.UTC)
	pos := solar.Compute(torontoLat, torontoLng, at)

	// 90 - latitude + axial tilt.
	assert.InDelta(t, 69.8, pos.Elevation, 0.5)
	assert.InDelta(t, 180.0, pos.Azimuth, 5)
}

func TestCompute_Morning(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.June, 21, 12, 0, 0, 0, time.UTC) // 08:00 EDT
	pos := solar.Compute(torontoLat, torontoLng, at)

	assert.Greater(t, pos.Elevation, 0.0)
	assert.Less(t, pos.Elevation, 45.0)
	assert.Greater(t, pos.Azimuth, 45.0)
	assert.Less(t, pos.Azimuth, 135.0, "morning sun should be in the east")
}

func TestCompute_NightIsBelowHorizon(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.December, 21, 5, 0, 0, 0, time.UTC) // midnight EST
	pos := solar.Compute(torontoLat, torontoLng, at)

	assert.Less(t, pos.Elevation, 0.0)
	assert.GreaterOrEqual(t, pos.Azimuth, 0.0)
	assert.Less(t, pos.Azimuth, 360.0)
}

func TestCompute_TimezoneIndependent(t *testing.T) {
	t.Parallel()

	utc := time.Date(2024, time.March, 20, 15, 30, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("EDT", -4*3600))

	assert.Equal(t, solar.Compute(torontoLat, torontoLng, utc), solar.Compute(torontoLat, torontoLng, local))
}

func TestCompute_RangesAndNoNaN(t *testing.T) {
	t.Parallel()

	lats := []float64{-90, -89.999, -66.5, -23.4, 0, 23.4, 51.5, 66.5, 89.999, 90}
	lngs := []float64{-180, -79.38, 0, 45, 179.99}
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, lat := range lats {
		for _, lng := range lngs {
			for h := 0; h < 365*24; h += 97 {
				at := start.Add(time.Duration(h) * time.Hour)
				pos := solar.Compute(lat, lng, at)

				require.False(t, math.IsNaN(pos.Elevation), "elevation NaN at %v,%v %v", lat, lng, at)
				require.False(t, math.IsNaN(pos.Azimuth), "azimuth NaN at %v,%v %v", lat, lng, at)
				require.GreaterOrEqual(t, pos.Elevation, -90.0)
				require.LessOrEqual(t, pos.Elevation, 90.0)
				require.GreaterOrEqual(t, pos.Azimuth, 0.0)
				require.Less(t, pos.Azimuth, 360.0)
			}
		}
	}
}

func TestCompute_PolarNightAndDay(t *testing.T) {
	t.Parallel()

	// The north pole is in permanent daylight at the June solstice and
	// permanent darkness at the December one, with elevation close to the declination.
	june := solar.Compute(90, 0, time.Date(2024, time.June, 21, 6, 0, 0, 0, time.UTC))
	december := solar.Compute(90, 0, time.Date(2024, time.December, 21, 18, 0, 0, 0, time.UTC))

	assert.InDelta(t, 23.44, june.Elevation, 0.3)
	assert.InDelta(t, -23.44, december.Elevation, 0.3)
}
