package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusmosca/brewery-orders-service/internal/api"
	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

type widgetRoutes struct{}

func (widgetRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/widgets", func(c *gin.Context) {
		_ = c.Error(apperr.NotFound("Widget", 1))
	})
	rg.GET("/panic", func(c *gin.Context) {
		var counts map[string]int
		counts["boom"]++
	})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	r := NewRouter(Options{ServiceName: "brewery-test", Pinger: stubPinger{}})

	w := get(r, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"brewery-test"}`, w.Body.String())
}

func TestHealth_DatabaseDown(t *testing.T) {
	r := NewRouter(Options{ServiceName: "brewery-test", Pinger: stubPinger{err: errors.New("connection refused")}})

	w := get(r, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_MountsHandlersUnderPrefix(t *testing.T) {
	r := NewRouter(Options{ServiceName: "brewery-test", Handlers: []RouteRegistrar{widgetRoutes{}, nil}})

	w := get(r, APIPrefix+"/widgets")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	r := NewRouter(Options{ServiceName: "brewery-test", Handlers: []RouteRegistrar{widgetRoutes{}}})

	w := get(r, APIPrefix+"/panic")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	var p api.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, http.StatusInternalServerError, p.Status)
	assert.Equal(t, "An unexpected error occurred", p.Detail)
	assert.Equal(t, "PanicError", p.Exception)
	assert.Contains(t, p.Instance, APIPrefix+"/panic")
	assert.NotContains(t, w.Body.String(), "nil map")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, addr, NewRouter(Options{ServiceName: "brewery-test"}))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
