package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"huntcast/internal/core"
	"huntcast/internal/profile"
	"huntcast/internal/types"
)

// SpeciesHandler exposes the species catalog over HTTP.
type SpeciesHandler struct {
	catalog *profile.Catalog
}

// NewSpeciesHandler creates a SpeciesHandler backed by the given catalog.
func NewSpeciesHandler(catalog *profile.Catalog) *SpeciesHandler {
	return &SpeciesHandler{catalog: catalog}
}

// RegisterRoutes mounts the species endpoints onto the mux.
func (h *SpeciesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/species", h.HandleList)
	r.Get("/species/{name}", h.HandleGet)
}

// speciesSummary is the list-view projection of a profile.
type speciesSummary struct {
	Name            string               `json:"name"`
	Feeding         types.FeedingPattern `json:"feeding_pattern"`
	TempOptimalMinF float64              `json:"temp_optimal_min_f"`
	TempOptimalMaxF float64              `json:"temp_optimal_max_f"`
	HarvestRate     float64              `json:"harvest_rate"`
}

// HandleList handles GET /v1/species.
func (h *SpeciesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles := h.catalog.Species()
	out := make([]speciesSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, speciesSummary{
			Name:            p.Name,
			Feeding:         p.Feeding,
			TempOptimalMinF: p.TempOptimalMinF,
			TempOptimalMaxF: p.TempOptimalMaxF,
			HarvestRate:     p.HarvestRate,
		})
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: out})
}

// HandleGet handles GET /v1/species/{name}. The name match is
// case-insensitive; URL-encoded spaces are supported ("White-tailed%20Deer").
func (h *SpeciesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	p, err := h.catalog.Profile(name)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: p})
}
