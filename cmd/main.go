package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "gridsense/docs"
	"gridsense/internal/config"
	"gridsense/internal/handlers"
	"gridsense/internal/logger"
	"gridsense/internal/metrics"
	"gridsense/internal/publish"
	"gridsense/internal/repository"
	"gridsense/internal/repository/db"
	"gridsense/internal/server"
	"gridsense/internal/service"

	"github.com/spf13/viper"
)

const configDir = "configs" // configs/config.yml

// @title                       GridSense API
// @version                     1.0
// @description                 Grid sensor status engine: signals, decisions, history.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, v, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.ErrorLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)

	// open DB
	sqlDB, err := openDB(cfg.DB.Path, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	registry := metrics.New()
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Deps{
		Publisher:      newPublisher(cfg.Publish, log),
		PublishTimeout: cfg.Publish.Timeout,
		Metrics:        registry,
		Log:            log,
		SigningKey:     cfg.Auth.SigningKey,
		TokenTTL:       cfg.Auth.TokenTTL,
		AllowSignUp:    cfg.Auth.AllowSignUp,
		CriticalRatio:  cfg.Simulator.CriticalRatio,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		Metrics:           registry.Handler(),
		StreamInterval:    cfg.Stream.Interval,
		MinStreamInterval: cfg.Stream.MinInterval,
	})

	watchConfig(v, services.Simulator, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Simulator.Enabled {
		log.Infow("simulator_started", "tick", cfg.Simulator.Tick, "critical_ratio", cfg.Simulator.CriticalRatio)
		go services.Simulator.Run(ctx, cfg.Simulator.Tick)
	}

	// start HTTP server
	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler.InitRoutes(), log)

	// graceful shutdown
	waitForShutdown(cancel, srv, cfg.Server.ShutdownTimeout, log)
}

// openDB initializes the SQLite database at path.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "gridsense.db")
		path = "gridsense.db"
	}
	return db.InitDB(path)
}

// newPublisher builds the fan-out over every enabled sink. A repository sink
// without a token is skipped with a warning rather than failing startup.
func newPublisher(cfg config.PublishConfig, log *logger.Logger) *publish.Fanout {
	var sinks []publish.Sink
	if cfg.File.Enabled {
		sinks = append(sinks, publish.NewFileSink(cfg.File.Path))
	}
	if rc := cfg.Repo; rc.Enabled {
		sink, err := publish.NewRepoSink(publish.RepoConfig{
			BaseURL:       rc.BaseURL,
			Owner:         rc.Owner,
			Repo:          rc.Repo,
			Path:          rc.Path,
			Branch:        rc.Branch,
			CommitMessage: rc.CommitMessage,
			Attempts:      rc.Attempts,
			Backoff:       rc.Backoff,
		}, os.Getenv(rc.TokenEnv), &http.Client{Timeout: rc.Timeout})
		if err != nil {
			log.Warnw("repo_publisher_disabled", "token_env", rc.TokenEnv, "err", err)
		} else {
			sinks = append(sinks, sink)
		}
	}
	log.Infow("publishers_configured", "count", len(sinks))
	return publish.NewFanout(log, sinks...)
}

// watchConfig applies simulator.critical_ratio changes without a restart.
func watchConfig(v *viper.Viper, sim service.Simulator, log *logger.Logger) {
	config.Watch(v, func(c config.Config) {
		sim.SetCriticalRatio(c.Simulator.CriticalRatio)
		log.Infow("config_reloaded", "critical_ratio", c.Simulator.CriticalRatio)
	}, func(err error) {
		log.Warnw("config_reload_failed", "err", err)
	})
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler http.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	_ = log.Sync()
}
