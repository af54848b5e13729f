package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Skotchmaster/marketplace/internal/config"
	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/httpserver"
	"github.com/Skotchmaster/marketplace/internal/metrics"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
	pkgdb "github.com/Skotchmaster/marketplace/pkg/db"
	"github.com/Skotchmaster/marketplace/pkg/logging"
	"github.com/Skotchmaster/marketplace/pkg/tokens"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
		logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	r := &repo.GormRepo{DB: db}
	accounts := &service.AccountService{Repo: r, Events: publisher, Metrics: m}
	auth := &service.AuthService{
		Repo:    r,
		Tokens:  tokens.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL),
		Events:  publisher,
		Metrics: m,
	}
	products := &service.ProductService{Repo: r, Events: publisher, Metrics: m}

	if cfg.Admin.Enabled() {
		created, err := accounts.EnsureSuperuser(context.Background(), cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			log.Fatalf("admin bootstrap: %v", err)
		}
		if created {
			logger.Info("superuser created", "username", cfg.Admin.Username)
		}
	}

	e := httpserver.New(&httpserver.Deps{
		Logger:   logger,
		DB:       db,
		Accounts: accounts,
		Auth:     auth,
		Products: products,
		PageSize: cfg.PageSize,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("marketplace listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("close publisher", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("close db", "error", err)
	}

	logger.Info("marketplace stopped")
}
