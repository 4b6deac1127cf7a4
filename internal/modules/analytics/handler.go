package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/platform/httpx"
)

// Handler exposes manager analytics. Routes expect auth.Middleware.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/popular-products", h.popularProducts)
		r.Get("/popular-customers", h.popularCustomers)
		r.Get("/orders", h.storeOrders)
	})
}

func (h *Handler) popularProducts(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	out, err := h.service.PopularProducts(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, out)
}

func (h *Handler) popularCustomers(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	out, err := h.service.PopularCustomers(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, out)
}

func (h *Handler) storeOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	out, err := h.service.StoreOrders(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, out)
}
