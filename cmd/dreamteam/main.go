package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dreamteam-fund/dreamteam/internal/app"
	"github.com/dreamteam-fund/dreamteam/internal/auth"
	"github.com/dreamteam-fund/dreamteam/internal/categories"
	"github.com/dreamteam-fund/dreamteam/internal/contributions"
	"github.com/dreamteam-fund/dreamteam/internal/contributors"
	"github.com/dreamteam-fund/dreamteam/internal/entrepreneurs"
	"github.com/dreamteam-fund/dreamteam/internal/identity"
	"github.com/dreamteam-fund/dreamteam/internal/observability"
	"github.com/dreamteam-fund/dreamteam/internal/payments"
	"github.com/dreamteam-fund/dreamteam/internal/phones"
	"github.com/dreamteam-fund/dreamteam/internal/platform/cache"
	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/policy"
	"github.com/dreamteam-fund/dreamteam/internal/regions"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
	"github.com/dreamteam-fund/dreamteam/internal/startups"
	"github.com/dreamteam-fund/dreamteam/internal/users"
	"github.com/dreamteam-fund/dreamteam/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	table, err := policy.NewTable(policy.DefaultRoutes())
	if err != nil {
		logger.Error("build route table", slog.Any("error", err))
		os.Exit(1)
	}
	engine := policy.NewEngine(table)

	revocations := auth.NewRevocationList(redisClient)
	verifier := auth.NewVerifier(cfg.APIUser, cfg.APIPass, cfg.JWTSecret, revocations)
	authRepo := auth.NewRepository(pool)
	resolver := auth.NewResolver(authRepo)
	gate := auth.NewGate(verifier, resolver, engine, logger)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	auditLogger := shared.NewAuditLogger(pool)
	authService := auth.NewService(authRepo, issuer, revocations)
	authHandler := auth.NewHandler(logger, authService, auditLogger)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	identityRepo := identity.NewRepository()

	usersService := users.NewService(users.NewRepository(pool))
	usersHandler := users.NewHandler(logger, usersService, auditLogger)

	phonesHandler := phones.NewHandler(logger, phones.NewService(phones.NewRepository(pool)))
	categoriesHandler := categories.NewHandler(logger, categories.NewService(categories.NewRepository(pool)))
	regionsHandler := regions.NewHandler(logger, regions.NewService(regions.NewRepository(pool)))

	entrepreneursService := entrepreneurs.NewService(pool, entrepreneurs.NewRepository(pool), identityRepo)
	entrepreneursHandler := entrepreneurs.NewHandler(logger, entrepreneursService)

	contributorsService := contributors.NewService(pool, contributors.NewRepository(pool), identityRepo)
	contributorsHandler := contributors.NewHandler(logger, contributorsService)

	startupsService := startups.NewService(startups.NewRepository(pool))
	startupsHandler := startups.NewHandler(logger, startupsService)

	contributionsService := contributions.NewService(contributions.NewRepository(pool), jobClient, logger)
	contributionsHandler := contributions.NewHandler(logger, contributionsService)

	paymentsClient := payments.NewClient(cfg.PaymeBaseURL, cfg.PaymeKey)
	paymentsService := payments.NewService(payments.NewRepository(pool), paymentsClient, logger)
	paymentsService.OnPaid(contributionsService.NotifyPaid)
	paymentsHandler := payments.NewHandler(logger, paymentsService, cfg.PaymeKey)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()
	gate.OnReject(metrics.CountAuthRejection)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		Gate:                 gate,
		AuthHandler:          authHandler,
		UsersHandler:         usersHandler,
		PhonesHandler:        phonesHandler,
		EntrepreneursHandler: entrepreneursHandler,
		ContributorsHandler:  contributorsHandler,
		CategoriesHandler:    categoriesHandler,
		RegionsHandler:       regionsHandler,
		StartupsHandler:      startupsHandler,
		ContributionsHandler: contributionsHandler,
		PaymentsHandler:      paymentsHandler,
		JobHandler:           jobHandler,
		Metrics:              metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
