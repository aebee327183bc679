package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"huntcast/internal/core"
	"huntcast/internal/outlook"
	"huntcast/internal/types"
)

// OutlookHandler exposes the multi-day outlook over HTTP.
type OutlookHandler struct {
	service         *outlook.Service
	defaultLocation string
}

// NewOutlookHandler creates an OutlookHandler. defaultLocation is used when
// the request omits the location query parameter.
func NewOutlookHandler(service *outlook.Service, defaultLocation string) *OutlookHandler {
	return &OutlookHandler{service: service, defaultLocation: defaultLocation}
}

// RegisterRoutes mounts the outlook endpoint onto the mux.
func (h *OutlookHandler) RegisterRoutes(r chi.Router) {
	r.Get("/outlook", h.HandleGet)
}

// HandleGet handles GET /v1/outlook?days=N&location=... and returns the
// scored multi-day outlook for the location.
func (h *OutlookHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	days := outlook.DefaultDays
	if daysStr := q.Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < outlook.MinDays || parsed > outlook.MaxDays {
			core.Error(w, r, types.NewAppError(
				types.ErrCodeValidationOutlookDays,
				fmt.Sprintf("days must be an integer between %d and %d", outlook.MinDays, outlook.MaxDays),
				nil,
			))
			return
		}
		days = parsed
	}

	location := q.Get("location")
	if location == "" {
		location = h.defaultLocation
	}

	result, err := h.service.Build(r.Context(), location, days)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: result})
}
