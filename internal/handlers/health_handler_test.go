package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Name() string                   { return "postgres" }
func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestHealthHandler_Healthcheck(t *testing.T) {
	tests := []struct {
		name     string
		deps     []Pinger
		wantCode int
		wantBody string
	}{
		{"no dependencies", nil, http.StatusOK, `{"status":"ok"}`},
		{"healthy store", []Pinger{fakePinger{}}, http.StatusOK, `{"status":"ok"}`},
		{
			"store down",
			[]Pinger{fakePinger{err: errors.New("connection refused")}},
			http.StatusServiceUnavailable,
			`{"status":"unavailable","reason":"postgres unreachable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/healthcheck", NewHealthHandler(tt.deps...).Healthcheck)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", http.NoBody))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "no-cache, no-store, max-age=0, must-revalidate", w.Header().Get("Cache-Control"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
