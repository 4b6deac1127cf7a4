package inventory

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/platform/httpx"
)

// Handler exposes inventory HTTP endpoints. Routes expect auth.Middleware.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Patch("/stores/{store_id}/products", h.updateProduct)
		r.Get("/updates/recent", h.recentUpdates)
	})
}

// UpdateProductRequest sets exactly one of Units or Price.
type UpdateProductRequest struct {
	ProductName string           `json:"product_name"`
	Units       *int             `json:"units,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// Edit converts the request into a product edit.
func (req UpdateProductRequest) Edit() (Edit, error) {
	switch {
	case req.Units != nil && req.Price == nil:
		return SetUnits(*req.Units), nil
	case req.Price != nil && req.Units == nil:
		return SetPrice(*req.Price), nil
	}
	return Edit{}, fmt.Errorf("%w: set exactly one of units or price", apperr.ErrInvalidInput)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	storeID, err := httpx.PathID(r, "store_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req UpdateProductRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	edit, err := req.Edit()
	if err != nil {
		httpx.Error(w, err)
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	p, err := h.service.UpdateProduct(r.Context(), id, storeID, req.ProductName, edit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) recentUpdates(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	updates, err := h.service.RecentUpdates(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, updates)
}
