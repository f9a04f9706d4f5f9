package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/holocron-api/api/v1"
	"github.com/holocron-api/metrics"
	"github.com/holocron-api/repositories"
	"github.com/holocron-api/routes"
	"github.com/holocron-api/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Migrate the schema, then serve the API on PORT until interrupted.
Revoked tokens are kept in Redis when REDIS_ADDR is set, in memory otherwise.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	denylist, closeDenylist, err := newDenylist(ctx, a)
	if err != nil {
		return err
	}
	defer closeDenylist()

	tokens, err := services.NewTokenService(a.cfg.JWTSecret, a.cfg.JWTExpiresIn, denylist)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterMetrics(reg)

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := a.conn.DB
	engine := routes.NewEngine(v1.Dependencies{
		Credentials: a.credentials(),
		Tokens:      tokens,
		Catalog:     services.NewCatalogService(repositories.NewCatalogRepository(db)),
		Favorites:   services.NewFavoriteService(repositories.NewFavoriteRepository(db), a.logger),
	}, routes.Options{
		Logger:      a.logger,
		CORSOrigins: a.cfg.CORSOrigins,
		Gatherer:    reg,
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "port", a.cfg.Port, "env", a.cfg.Env, "driver", a.cfg.DBDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return oops.Code("SERVER_FAILED").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").Wrap(err)
	}
	return nil
}

func newDenylist(ctx context.Context, a *app) (services.Denylist, func(), error) {
	if a.cfg.RedisAddr == "" {
		a.logger.Warn("REDIS_ADDR not set, revoked tokens are kept in process memory")
		return services.NewMemoryDenylist(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, oops.Code("REDIS_CONNECT_FAILED").With("addr", a.cfg.RedisAddr).Wrap(err)
	}
	a.logger.Info("using redis token denylist", "addr", a.cfg.RedisAddr)
	return services.NewRedisDenylist(client), func() { _ = client.Close() }, nil
}
