package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/vendas/internal/auth"
	"github.com/MrJamesThe3rd/vendas/internal/config"
	"github.com/MrJamesThe3rd/vendas/internal/database"
	vendasHttp "github.com/MrJamesThe3rd/vendas/internal/http"
	"github.com/MrJamesThe3rd/vendas/internal/http/importsheet"
	salesHandler "github.com/MrJamesThe3rd/vendas/internal/http/sales"
	"github.com/MrJamesThe3rd/vendas/internal/importer"
	"github.com/MrJamesThe3rd/vendas/internal/sale"
	saleStore "github.com/MrJamesThe3rd/vendas/internal/sale/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		saleService   = sale.NewService(saleStore.New(db))
		importService = importer.NewService()
		authn         = auth.New(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	)

	var (
		importH = importsheet.NewHandler(importService, cfg.Server.MaxUploadBytes)
		salesH  = salesHandler.NewHandler(saleService)
	)

	router := vendasHttp.New(cfg.CORS.AllowedOrigins, authn, importH, salesH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
