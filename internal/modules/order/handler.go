package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/platform/httpx"
	"github.com/georgemunganga/retail-ordering/internal/platform/idempotency"
)

// IdempotencyHeader carries the client's key for a non-repeatable order.
const IdempotencyHeader = "Idempotency-Key"

// Handler exposes order HTTP endpoints. Routes expect auth.Middleware.
type Handler struct {
	service Service
	guard   *idempotency.Guard
	logger  *zap.Logger
}

// NewHandler creates an order handler. A nil guard disables idempotency keys.
func NewHandler(service Service, guard *idempotency.Guard, logger *zap.Logger) *Handler {
	return &Handler{service: service, guard: guard, logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.placeOrder)
		r.Get("/recent", h.recentOrders)
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	key := r.Header.Get(IdempotencyHeader)
	if h.guard == nil {
		key = ""
	}
	if key != "" {
		fresh, err := h.guard.Claim(r.Context(), key)
		if err != nil {
			h.logger.Error("claim idempotency key", zap.String("key", key), zap.Error(err))
			httpx.Error(w, err)
			return
		}
		if !fresh {
			httpx.Respond(w, http.StatusConflict, map[string]string{"error": "duplicate order request"})
			return
		}
	}

	id, _ := auth.IdentityFrom(r.Context())
	o, err := h.service.Place(r.Context(), id, req)
	if err != nil {
		if key != "" {
			if rerr := h.guard.Release(r.Context(), key); rerr != nil {
				h.logger.Warn("release idempotency key", zap.String("key", key), zap.Error(rerr))
			}
		}
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, o)
}

func (h *Handler) recentOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	orders, err := h.service.RecentOrders(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, orders)
}
