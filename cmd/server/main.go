package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"

	"medassist/internal/config"
	"medassist/internal/core"
	"medassist/internal/db"
	httpserver "medassist/internal/http"
	"medassist/internal/llm"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "medassist",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	dsn, err := cfg.DSN()
	if err != nil {
		logger.Fatal("invalid database url", "err", err)
	}
	dbConn, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal("failed to open database", "err", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping database", "err", err)
	}
	if err := db.Migrate(context.Background(), dbConn); err != nil {
		logger.Fatal("failed to run migrations", "err", err)
	}
	store := db.NewStore(dbConn)

	client := llm.NewOpenAIClient(llm.Options{
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	service := core.NewService(store, client, logger, cfg.HistoryLimit)
	if cfg.PromptStyle == "flat" {
		service.UseFlatPrompts()
	}

	srv, err := httpserver.NewServer(service, httpserver.PersonaByName(cfg.Persona), logger)
	if err != nil {
		logger.Fatal("failed to construct server", "err", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("listening", "addr", cfg.Listen, "persona", cfg.Persona)
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
