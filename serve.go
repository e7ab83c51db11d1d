package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"codecrew/database"
	"codecrew/handlers"
	"codecrew/middleware"
	"codecrew/repository/postgres"
	"codecrew/services"
	"codecrew/token"
	"codecrew/uploads"
)

func (a *app) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) openDatabase(ctx context.Context) (*gorm.DB, error) {
	db, err := database.Open(ctx, a.cfg.DatabaseURL, a.logger)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (a *app) serve(ctx context.Context) error {
	db, err := a.openDatabase(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			a.logger.Warn("close database", "err", err)
		}
	}()

	store, err := uploads.NewStore(a.cfg.UploadsDir)
	if err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	tokens := token.NewManager(a.cfg.JWTSecret, a.cfg.JWTExpiration)

	identity := services.NewIdentity(userRepo, tokens, store, a.cfg.BcryptCost, a.logger)
	teams := services.NewTeams(teamRepo, projectRepo, a.logger)
	projects := services.NewProjects(projectRepo, store, a.logger)

	if seed := a.cfg.Seed; seed.LeaderEmail != "" {
		if _, err := identity.EnsureLeader(ctx, seed.LeaderName, seed.LeaderEmail, seed.LeaderPassword); err != nil {
			return fmt.Errorf("seed team leader: %w", err)
		}
	}

	limiter := a.rateLimiter(ctx)
	defer limiter.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:        handlers.NewAuthHandler(identity, a.logger),
		Users:       handlers.NewUserHandler(identity, a.logger),
		Teams:       handlers.NewTeamHandler(teams, a.logger),
		Projects:    handlers.NewProjectHandler(projects, a.logger),
		Resolver:    identity,
		Limiter:     limiter,
		RateLimit:   a.cfg.RateLimit,
		Metrics:     middleware.NewMetrics(reg),
		Gatherer:    reg,
		UploadsDir:  store.Root(),
		CORSOrigins: a.cfg.CORSOrigins,
		Logger:      a.logger,
	})

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down", "timeout", a.cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}

// rateLimiter prefers Redis when configured and falls back to process memory
// when it cannot be reached.
func (a *app) rateLimiter(ctx context.Context) middleware.RateLimiter {
	rl := a.cfg.RateLimit
	if rl.RedisAddr == "" {
		return middleware.NewMemoryRateLimiter()
	}
	limiter, err := middleware.NewRedisRateLimiter(ctx, rl.RedisAddr, rl.RedisPassword, rl.RedisDB, a.logger)
	if err != nil {
		a.logger.Warn("redis unavailable, rate limiting in memory", "addr", rl.RedisAddr, "err", err)
		return middleware.NewMemoryRateLimiter()
	}
	return limiter
}
