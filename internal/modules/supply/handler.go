package supply

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/platform/httpx"
)

// Handler exposes supply request endpoints. Routes expect auth.Middleware.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/supply-requests", h.submit)
}

type submitResponse struct {
	Request *Request `json:"request"`
	Units   int      `json:"units_in_stock"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	id, _ := auth.IdentityFrom(r.Context())
	sr, p, err := h.service.Submit(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, submitResponse{Request: sr, Units: p.Units})
}
