package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/auth"
	"github.com/vbonduro/pantraqa/internal/config"
	"github.com/vbonduro/pantraqa/internal/db"
	"github.com/vbonduro/pantraqa/internal/logging"
	"github.com/vbonduro/pantraqa/internal/service"
	"github.com/vbonduro/pantraqa/internal/web"
	"github.com/vbonduro/pantraqa/internal/web/templates"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	store := sqlite3store.New(database)
	defer store.StopCleanup()

	sessions := scs.New()
	sessions.Store = store
	sessions.Lifetime = cfg.SessionLifetime
	sessions.Cookie.Name = "pantraqa_session"
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = !cfg.IsDevelopment()

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)

	server := web.NewServer(web.Deps{
		Sessions:       sessions,
		Auth:           auth.NewHolder(sessions, logger),
		Catalog:        service.NewCatalogService(client, logger),
		Stocks:         service.NewStockService(client, cfg.StockPageSize, logger),
		Logs:           service.NewLogService(client, logger),
		Accounts:       service.NewAccountService(client, logger),
		Templates:      templates.FS,
		Logger:         logger,
		TrustedOrigins: cfg.CSRFTrustedOrigins,
		LoginRate:      cfg.LoginRateLimit,
		LoginBurst:     cfg.LoginBurst,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("using stock API", "base_url", cfg.APIBaseURL, "env", cfg.Env)
	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
