package handler

import (
	"net/http"

	"github.com/olegiv/cafe-go/internal/cache"
	"github.com/olegiv/cafe-go/internal/render"
)

// HomeHandler serves the landing page.
type HomeHandler struct {
	renderer *render.Renderer
	cities   *cache.CityCache
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(renderer *render.Renderer, cities *cache.CityCache) *HomeHandler {
	return &HomeHandler{renderer: renderer, cities: cities}
}

// Home renders the homepage with the city index.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	cities, err := h.cities.List(r.Context())
	if err != nil {
		h.renderer.ServerError(w, r, err)
		return
	}
	h.renderer.Page(w, r, tmplHome, titleHome, cities)
}
