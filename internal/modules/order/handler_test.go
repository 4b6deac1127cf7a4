package order_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/app/apptest"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
)

func newRouter(f *apptest.Fixture) http.Handler {
	r := chi.NewRouter()
	r.Use(auth.Middleware(f.Services.Auth))
	order.NewHandler(f.Services.Orders, nil, zap.NewNop()).RegisterRoutes(r)
	return r
}

func do(t *testing.T, f *apptest.Fixture, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := f.Services.Auth.IssueToken(apptest.Customer)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(order.IdempotencyHeader, "ignored-without-redis")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_PlaceOrder(t *testing.T) {
	f := apptest.New(t)
	h := newRouter(f)

	rec := do(t, f, h, http.MethodPost, "/api/v1/orders/", `{"store_id":1,"product_name":"Gadget","units":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var o order.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, 2, o.UnitsOrdered)

	rec = do(t, f, h, http.MethodPost, "/api/v1/orders/", `{"store_id":1,"product_name":"Gadget","units":2}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, f, h, http.MethodPost, "/api/v1/orders/", `{"store_id":3,"product_name":"Gadget","units":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, f, h, http.MethodGet, "/api/v1/orders/recent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []order.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}
