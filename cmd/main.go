package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "bookfans/docs"
	"bookfans/internal/config"
	"bookfans/internal/handlers"
	"bookfans/internal/logger"
	"bookfans/internal/repository"
	"bookfans/internal/repository/db"
	"bookfans/internal/server"
	"bookfans/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title                       Book Fans API
// @version                     1.0
// @description                 Users, books, categories and reviews with bcrypt passwords and JWT bearer tokens.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml + BOOKFANS_* env
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get().Fatalw("error reading config", "err", err)
	}

	log := logger.Init(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open DB and apply migrations
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	tokens, err := service.NewTokenService(cfg.Auth)
	if err != nil {
		log.Fatalw("failed to init token service", "err", err)
	}
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, log)

	apiHandler := handlers.NewHandler(services, log,
		handlers.WithPagination(cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit),
		handlers.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
		handlers.WithStreamIntervals(cfg.WS.DefaultInterval, cfg.WS.MaxInterval),
		handlers.WithMetrics(newRegistry()),
	)

	// start HTTP server
	srv := server.New(cfg.Server, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(srv, cfg.Server.ShutdownTimeout, log)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
