// Package handlers contains the HTTP handler implementations for the
// HuntCast API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"huntcast/internal/core"
	"huntcast/internal/engine"
	"huntcast/internal/types"
)

// WeatherSource is the weather dependency for the conditions handler. When a
// request omits the weather block, current conditions are fetched from here.
type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) (types.WeatherSnapshot, error)
}

// EvaluationObserver receives one callback per completed evaluation, used
// for metrics. A nil observer is allowed.
type EvaluationObserver func(species string, confidence types.ConfidenceLabel)

// ConditionsHandler maps HTTP requests onto engine evaluations.
type ConditionsHandler struct {
	engine   *engine.Engine
	source   WeatherSource
	lat      float64
	lon      float64
	logger   *slog.Logger
	observed EvaluationObserver
}

// NewConditionsHandler creates a ConditionsHandler. source may be nil, in
// which case every request must carry its own weather block.
func NewConditionsHandler(
	eng *engine.Engine,
	source WeatherSource,
	lat, lon float64,
	logger *slog.Logger,
	observed EvaluationObserver,
) *ConditionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if observed == nil {
		observed = func(string, types.ConfidenceLabel) {}
	}
	return &ConditionsHandler{
		engine:   eng,
		source:   source,
		lat:      lat,
		lon:      lon,
		logger:   logger,
		observed: observed,
	}
}

// RegisterRoutes mounts the conditions endpoints onto the mux.
func (h *ConditionsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/conditions/analyze", h.HandleAnalyze)
}

// analyzeRequest is the request body for POST /v1/conditions/analyze.
// Weather and At are optional: missing weather is fetched from the upstream
// provider, and a zero At defaults to the current time.
type analyzeRequest struct {
	Species  string                 `json:"species"`
	Location string                 `json:"location"`
	Weather  *types.WeatherSnapshot `json:"weather,omitempty"`
	At       *time.Time             `json:"at,omitempty"`
}

// HandleAnalyze handles POST /v1/conditions/analyze:
//  1. Decode and validate the request body.
//  2. Fetch current weather if the request omitted it.
//  3. Run the scoring engine and return the full conditions report.
func (h *ConditionsHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	if req.Species == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"species is required",
			nil,
		))
		return
	}
	if req.Location == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"location is required",
			nil,
		))
		return
	}

	var snapshot types.WeatherSnapshot
	if req.Weather != nil {
		snapshot = *req.Weather
	} else {
		if h.source == nil {
			core.Error(w, r, types.NewAppError(
				types.ErrCodeValidationMissingField,
				"weather is required; no weather provider is configured",
				nil,
			))
			return
		}
		fetched, err := h.source.Current(r.Context(), h.lat, h.lon)
		if err != nil {
			h.logger.Error("weather fetch failed",
				slog.String("request_id", types.GetRequestID(r.Context())),
				slog.Any("error", err),
			)
			core.Error(w, r, err)
			return
		}
		snapshot = fetched
	}

	at := time.Now().UTC()
	if req.At != nil && !req.At.IsZero() {
		at = req.At.UTC()
	}

	report, err := h.engine.Analyze(types.ScoringContext{
		Species:  req.Species,
		Location: req.Location,
		Weather:  snapshot,
		At:       at,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	h.observed(report.Species, report.Breakdown.Confidence)
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: report})
}
