package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/helios/internal/blockage"
	"github.com/UnknownOlympus/helios/internal/buildings"
	"github.com/UnknownOlympus/helios/internal/geocoding"
	"github.com/UnknownOlympus/helios/internal/metrics"
	"github.com/UnknownOlympus/helios/internal/models"
	"github.com/UnknownOlympus/helios/internal/scoring"
	"github.com/UnknownOlympus/helios/internal/solar"
)

// Request defaults applied by the transport when the client omits them.
const (
	DefaultFloor     = 1
	DefaultDirection = models.South
)

// Errors returned by Compute. Validation errors are reported before any external call.
var (
	ErrInvalidFloor            = errors.New("invalid floor")
	ErrInvalidDirection        = errors.New("invalid direction")
	ErrGeocodingFailure        = errors.New("geocoding failed")
	ErrBuildingDataUnavailable = errors.New("building data unavailable")
)

// Request is a single light score query.
type Request struct {
	Address   models.Address
	Floor     int
	Direction models.Direction
	At        time.Time // Moment the sun position is computed for; zero means now.
}

// LightScoreService turns an address, floor and window direction into a light score.
// It owns no state beyond the request in flight and is safe for concurrent use.
type LightScoreService struct {
	log              *slog.Logger       // Logger for logging service activities
	provider         geocoding.Provider // Geocoding provider for address resolution
	source           buildings.Source   // Nearby building lookups
	providerName     string             // Name of the provider for metrics labeling
	metrics          *metrics.Metrics   // Metrics for tracking service performance
	analyzer         *blockage.Analyzer // Building obstruction analysis
	searchRadius     float64            // Radius of the building lookup, meters
	geocodeTimeout   time.Duration      // Upper bound for a geocoding call
	buildingsTimeout time.Duration      // Upper bound for a building lookup
	now              func() time.Time
}

// NewLightScoreService creates a new instance of LightScoreService.
func NewLightScoreService(
	log *slog.Logger,
	provider geocoding.Provider,
	source buildings.Source,
	providerName string,
	metrics *metrics.Metrics,
	searchRadius float64,
	geocodeTimeout time.Duration,
	buildingsTimeout time.Duration,
) *LightScoreService {
	return &LightScoreService{
		log:              log,
		provider:         provider,
		source:           source,
		providerName:     providerName,
		metrics:          metrics,
		analyzer:         blockage.NewAnalyzer(),
		searchRadius:     searchRadius,
		geocodeTimeout:   geocodeTimeout,
		buildingsTimeout: buildingsTimeout,
		now:              time.Now,
	}
}

// Validate checks the request fields that do not need any external lookup and
// returns the normalized direction.
func Validate(req Request) (models.Direction, error) {
	if req.Floor < 1 {
		return "", fmt.Errorf("%w: floor must be at least 1, got %d", ErrInvalidFloor, req.Floor)
	}

	direction, ok := models.ParseDirection(string(req.Direction))
	if !ok {
		return "", fmt.Errorf("%w: %q is not one of N, NE, E, SE, S, SW, W, NW", ErrInvalidDirection, req.Direction)
	}

	return direction, nil
}

// Compute resolves the address, looks up the surrounding buildings and scores the unit.
func (s *LightScoreService) Compute(ctx context.Context, req Request) (*models.LightScoreResult, error) {
	s.metrics.InFlightRequest.Inc()
	defer s.metrics.InFlightRequest.Dec()

	direction, err := Validate(req)
	if err != nil {
		s.metrics.Requests.WithLabelValues("invalid_request").Inc()
		s.log.WarnContext(ctx, "Rejected light score request", "error", err)
		return nil, err
	}

	address := req.Address.String()
	s.log.InfoContext(ctx, "New light score request",
		"address", address, "floor", req.Floor, "direction", direction)

	coords, err := s.geocode(ctx, address)
	if err != nil {
		s.metrics.Requests.WithLabelValues("geocoding_failure").Inc()
		return nil, err
	}

	nearby, err := s.nearby(ctx, *coords)
	if err != nil {
		s.metrics.Requests.WithLabelValues("building_data_unavailable").Inc()
		return nil, err
	}
	facing := buildings.FilterByDirection(*coords, direction, nearby)

	at := req.At
	if at.IsZero() {
		at = s.now()
	}
	sun := solar.Compute(coords.Latitude, coords.Longitude, at)

	blk := s.analyzer.Analyze(sun, *coords, req.Floor, facing)
	score, details := scoring.Aggregate(req.Floor, direction, blk)

	s.metrics.Requests.WithLabelValues("success").Inc()
	s.metrics.LightScore.Observe(score)
	s.log.InfoContext(ctx, "Light score computed",
		"lat", coords.Latitude,
		"lng", coords.Longitude,
		"buildings", len(facing),
		"sun_elevation", sun.Elevation,
		"sun_azimuth", sun.Azimuth,
		"blockage", blk.BlockagePercentage,
		"light_score", score,
	)

	return &models.LightScoreResult{
		Coordinates:  *coords,
		LightScore:   score,
		Details:      details,
		SunPosition:  sun,
		BuildingData: facing,
	}, nil
}

// geocode resolves address under its own timeout and records provider metrics.
func (s *LightScoreService) geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gctx, cancel := context.WithTimeout(ctx, s.geocodeTimeout)
	defer cancel()

	startTime := time.Now()
	coords, err := s.provider.Geocode(gctx, address)
	s.metrics.RequestSeconds.WithLabelValues(s.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		s.metrics.APIErrors.Inc()
		s.log.ErrorContext(ctx, "Failed to geocode", "address", address, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGeocodingFailure, err)
	}
	if coords == nil {
		s.metrics.APIErrors.Inc()
		return nil, fmt.Errorf("%w: %w", ErrGeocodingFailure, geocoding.ErrAddressNotFound)
	}

	s.log.DebugContext(ctx, "Geocoded coordinates", "lat", coords.Latitude, "lng", coords.Longitude)

	return coords, nil
}

// nearby fetches the buildings around coords under its own timeout.
func (s *LightScoreService) nearby(ctx context.Context, coords models.Coordinates) ([]models.Building, error) {
	bctx, cancel := context.WithTimeout(ctx, s.buildingsTimeout)
	defer cancel()

	startTime := time.Now()
	list, err := s.source.Nearby(bctx, coords, s.searchRadius)
	s.metrics.LookupSeconds.Observe(time.Since(startTime).Seconds())

	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch nearby buildings", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrBuildingDataUnavailable, err)
	}

	s.log.DebugContext(ctx, "Nearby buildings found", "count", len(list), "radius", s.searchRadius)

	return list, nil
}
