package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/helios/internal/geocoding"
	"github.com/UnknownOlympus/helios/internal/models"
	"github.com/UnknownOlympus/helios/internal/service"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id assigned to every API request.
const RequestIDHeader = "X-Request-ID"

// ErrMissingParameter is returned when a required query parameter is absent.
var ErrMissingParameter = errors.New("missing query parameter")

// Scorer computes light scores. It is implemented by service.LightScoreService.
type Scorer interface {
	Compute(ctx context.Context, req service.Request) (*models.LightScoreResult, error)
}

// Server exposes the light score API over HTTP.
type Server struct {
	log    *slog.Logger
	scorer Scorer
}

// New creates a new API server.
func New(log *slog.Logger, scorer Scorer) *Server {
	return &Server{log: log, scorer: scorer}
}

// Handler returns the routes of the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /light_score/", s.handleLightScore)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return s.withRequestID(mux)
}

// withRequestID tags every request with an id, echoed back in the response headers.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.DebugContext(r.Context(), "Request served",
			"request_id", id, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleLightScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := ParseRequest(r)
	if err != nil {
		s.log.WarnContext(ctx, "Bad light score request",
			"request_id", w.Header().Get(RequestIDHeader), "error", err)
		s.writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.scorer.Compute(ctx, req)
	if err != nil {
		status, detail := StatusFor(err)
		s.log.ErrorContext(ctx, "Light score request failed",
			"request_id", w.Header().Get(RequestIDHeader), "status", status, "error", err)
		s.writeError(ctx, w, status, detail)
		return
	}

	s.writeJSON(ctx, w, http.StatusOK, res)
}

// ParseRequest builds a service request from the query string, applying the
// defaults for floor and direction.
func ParseRequest(r *http.Request) (service.Request, error) {
	query := r.URL.Query()

	var missing []string
	required := func(name string) string {
		v := strings.TrimSpace(query.Get(name))
		if v == "" {
			missing = append(missing, name)
		}
		return v
	}

	req := service.Request{
		Address: models.Address{
			Country:      required("country"),
			City:         required("city"),
			PostalCode:   required("postalCode"),
			StreetName:   required("streetName"),
			StreetNumber: required("streetNumber"),
		},
		Floor:     service.DefaultFloor,
		Direction: service.DefaultDirection,
	}
	if len(missing) > 0 {
		return service.Request{}, fmt.Errorf("%w: %s", ErrMissingParameter, strings.Join(missing, ", "))
	}

	if v := query.Get("floor"); v != "" {
		floor, err := strconv.Atoi(v)
		if err != nil {
			return service.Request{}, fmt.Errorf("%w: %q is not an integer", service.ErrInvalidFloor, v)
		}
		req.Floor = floor
	}

	if v := query.Get("direction"); v != "" {
		req.Direction = models.Direction(v)
	}

	if v := query.Get("timestamp"); v != "" {
		at, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return service.Request{}, fmt.Errorf("invalid timestamp %q, expected RFC 3339: %w", v, err)
		}
		req.At = at
	}

	return req, nil
}

// StatusFor maps a service error to an HTTP status code and a client facing message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidFloor), errors.Is(err, service.ErrInvalidDirection):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, geocoding.ErrAddressNotFound):
		return http.StatusNotFound, "Address not found"
	case errors.Is(err, service.ErrGeocodingFailure):
		return http.StatusBadGateway, "Geocoding provider unavailable"
	case errors.Is(err, service.ErrBuildingDataUnavailable):
		return http.StatusServiceUnavailable, "Building data unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, status int, detail string) {
	s.writeJSON(ctx, w, status, map[string]string{"detail": detail})
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}
}
