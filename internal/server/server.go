// Package server assembles the gin engine and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/matheusmosca/brewery-orders-service/internal/api"
)

const (
	APIPrefix       = "/api/v1"
	shutdownTimeout = 15 * time.Second
	healthTimeout   = 2 * time.Second
)

// RouteRegistrar mounts a group of endpoints under the API prefix.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configure NewRouter.
type Options struct {
	ServiceName string
	// Debug turns on gin's request logger
	Debug    bool
	Pinger   Pinger
	Handlers []RouteRegistrar
}

// NewRouter builds the engine with recovery, request ids, tracing and the
// problem-detail translator, in that order.
func NewRouter(opts Options) *gin.Engine {
	api.SetupValidation()
	decimal.MarshalJSONWithoutQuotes = true

	r := gin.New()
	if opts.Debug {
		r.Use(gin.Logger())
	}
	r.Use(
		api.Recovery(),
		api.RequestIDMiddleware(),
		otelgin.Middleware(opts.ServiceName),
		api.ErrorHandler(),
	)

	r.GET("/health", healthCheck(opts.ServiceName, opts.Pinger))

	v1 := r.Group(APIPrefix)
	for _, h := range opts.Handlers {
		if h == nil {
			continue
		}
		h.RegisterRoutes(v1)
	}
	return r
}

func healthCheck(service string, pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()

			if err := pinger.Ping(ctx); err != nil {
				zap.S().Warnf("⚠️ Health check failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"service": service,
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": service,
		})
	}
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests before returning.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("🚀 Brewery service listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.S().Info("🛑 Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
