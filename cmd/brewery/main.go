package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matheusmosca/brewery-orders-service/internal/app"
	"github.com/matheusmosca/brewery-orders-service/internal/client"
	"github.com/matheusmosca/brewery-orders-service/internal/config"
	"github.com/matheusmosca/brewery-orders-service/internal/logger"
	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
	"github.com/matheusmosca/brewery-orders-service/internal/server"
	"github.com/matheusmosca/brewery-orders-service/internal/telemetry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "brewery",
		Short:         "Brewery catalog and order service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		serveCommand(),
		smokeCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	flush, err := logger.Init(cfg.LogLevel, cfg.GinMode == gin.DebugMode)
	if err != nil {
		return err
	}
	defer flush()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			zap.S().Errorf("Error shutting down telemetry: %v", err)
		}
	}()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DSN:             cfg.Database.DSN(),
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		ConnectAttempts: cfg.Database.ConnectAttempts,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	a := app.New(cfg, pool)
	if cfg.Database.EnsureSchema {
		if err := postgres.EnsureSchema(ctx, a.DB); err != nil {
			return err
		}
		zap.S().Info("✅ Database schema ready")
	}

	return server.Run(ctx, ":"+cfg.Port, a.Router)
}

func smokeCommand() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "run a create/read/delete scenario against a running service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flush, err := logger.Init("info", true)
			if err != nil {
				return err
			}
			defer flush()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return client.Smoke(ctx, client.New(baseURL))
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8080", "service base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall scenario timeout")
	return cmd
}
