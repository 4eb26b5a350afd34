package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ComputerEndProgram/locutus/internal/config"
	"github.com/ComputerEndProgram/locutus/internal/database"
	"github.com/ComputerEndProgram/locutus/internal/domain/service"
	"github.com/ComputerEndProgram/locutus/internal/handlers"
	"github.com/ComputerEndProgram/locutus/internal/logger"
	"github.com/ComputerEndProgram/locutus/internal/metrics"
	"github.com/ComputerEndProgram/locutus/internal/notifier"
	"github.com/ComputerEndProgram/locutus/migrator/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("running migrations")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	sink := metrics.NewPrometheusSink(registry)

	discord := notifier.NewDiscord(cfg.DiscordBotToken)

	dm := database.NewInstance(db)
	services := service.New(dm, discord, log, sink,
		service.WithPollInterval(time.Duration(cfg.PollIntervalSecs)*time.Second),
		service.WithWorkers(cfg.DispatchWorkers),
		service.WithDispatchRate(cfg.DispatchRatePerSec),
	)

	services.Scheduler.Start()
	defer services.Scheduler.Stop()

	handler := handlers.New(services.Admin, handlers.AllowAllAuthorizer{}, log)

	adminMux := http.NewServeMux()
	handler.Register(adminMux)

	mux := http.NewServeMux()
	mux.Handle("/api/", handlers.RequireToken(cfg.AdminToken, adminMux))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
