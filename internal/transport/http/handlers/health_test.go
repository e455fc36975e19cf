package http_handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthz_ReturnsOK(t *testing.T) {
	h := NewHealthHandler(nil)
	rr := httptest.NewRecorder()

	h.Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestReadyz_StoreUp(t *testing.T) {
	h := NewHealthHandler(stubPinger{})
	rr := httptest.NewRecorder()

	h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rr.Body.String())
}

func TestReadyz_StoreDown(t *testing.T) {
	h := NewHealthHandler(stubPinger{err: errors.New("down")})
	rr := httptest.NewRecorder()

	h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"unavailable","error":"row store unavailable"}`, rr.Body.String())
}
