package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/platform/httpx"
)

// Handler exposes the admin directory. Routes expect auth.Middleware.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Post("/users", h.createUser)
		r.Get("/users", h.findUsers) // ?name=...
		r.Get("/users/{user_id}", h.getUser)
		r.Patch("/users/{user_id}", h.updateUser)
		r.Delete("/users/{user_id}", h.deleteUser)

		r.Post("/products", h.createProduct)
		r.Patch("/stores/{store_id}/products", h.updateProduct)
		r.Delete("/stores/{store_id}/products", h.deleteProduct) // ?name=...
	})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	id, _ := auth.IdentityFrom(r.Context())
	u, err := h.service.CreateUser(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, u)
}

func (h *Handler) findUsers(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	users, err := h.service.FindUsers(r.Context(), id, r.URL.Query().Get("name"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.PathID(r, "user_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	id, _ := auth.IdentityFrom(r.Context())
	u, err := h.service.GetUser(r.Context(), id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, u)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.PathID(r, "user_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var changes UserChanges
	if err := httpx.Decode(r, &changes); err != nil {
		httpx.Error(w, err)
		return
	}
	id, _ := auth.IdentityFrom(r.Context())
	u, err := h.service.UpdateUser(r.Context(), id, userID, changes)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, u)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.PathID(r, "user_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	id, _ := auth.IdentityFrom(r.Context())
	if err := h.service.DeleteUser(r.Context(), id, userID); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	id, _ := auth.IdentityFrom(r.Context())
	p, err := h.service.CreateProduct(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	storeID, err := httpx.PathID(r, "store_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req inventory.UpdateProductRequest
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

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	storeID, err := httpx.PathID(r, "store_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	id, _ := auth.IdentityFrom(r.Context())
	if err := h.service.DeleteProduct(r.Context(), id, storeID, r.URL.Query().Get("name")); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
