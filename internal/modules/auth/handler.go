package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/georgemunganga/retail-ordering/internal/platform/httpx"
)

// Login attempts allowed per account name.
const (
	loginRate  = rate.Limit(1)
	loginBurst = 5

	// limiterIdle must exceed loginBurst/loginRate so evicted limiters are full.
	limiterIdle = time.Minute
	sweepEvery  = time.Minute
)

type loginLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Handler struct {
	service Service
	now     func() time.Time

	mu        sync.Mutex
	limiters  map[string]*loginLimiter
	lastSweep time.Time
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service:   service,
		now:       time.Now,
		limiters:  make(map[string]*loginLimiter),
		lastSweep: time.Now(),
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/api/v1/auth/login", h.login)
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

func (h *Handler) limiterFor(name string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if now.Sub(h.lastSweep) >= sweepEvery {
		h.sweep(now)
	}
	l, ok := h.limiters[name]
	if !ok {
		l = &loginLimiter{limiter: rate.NewLimiter(loginRate, loginBurst)}
		h.limiters[name] = l
	}
	l.lastSeen = now
	return l.limiter
}

// sweep drops limiters not used for limiterIdle. Callers hold h.mu.
func (h *Handler) sweep(now time.Time) {
	for name, l := range h.limiters {
		if now.Sub(l.lastSeen) >= limiterIdle {
			delete(h.limiters, name)
		}
	}
	h.lastSweep = now
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if !h.limiterFor(req.Name).Allow() {
		httpx.Respond(w, http.StatusTooManyRequests, map[string]string{"error": "too many login attempts"})
		return
	}

	id, err := h.service.Login(r.Context(), req.Name, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		httpx.Error(w, err)
		return
	}

	token, err := h.service.IssueToken(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, loginResponse{Token: token, Name: id.Name})
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFrom returns the identity stored by Middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Middleware rejects requests without a valid bearer token.
func Middleware(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				return
			}
			id, err := service.ParseToken(raw)
			if err != nil {
				httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
