package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/platform/httpx"
)

// Handler exposes catalog HTTP endpoints. Routes expect auth.Middleware.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/nearby", h.nearbyStores)
		r.Get("/{store_id}/products", h.listProducts)
	})
}

func (h *Handler) nearbyStores(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	stores, err := h.service.NearbyStores(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, stores)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	storeID, err := httpx.PathID(r, "store_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	id, _ := auth.IdentityFrom(r.Context())
	products, err := h.service.ListProducts(r.Context(), id, storeID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, products)
}
