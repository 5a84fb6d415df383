package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	advisor "HDDPull/internal/advisor"
	auth "HDDPull/internal/auth"
	"HDDPull/internal/calc/hdd"
	config "HDDPull/internal/config"
	repo "HDDPull/internal/repo"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config", zap.Error(err))
	}
	log, err := cfg.Logger()
	if err != nil {
		zap.NewExample().Fatal("logger", zap.Error(err))
	}
	defer log.Sync()

	calc, err := hdd.NewCalculator(cfg.Engine)
	if err != nil {
		log.Fatal("engine constants", zap.Error(err))
	}

	var store repo.Repository
	if cfg.DatabaseURL != "" {
		db, err := auth.InitDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("database", zap.Error(err))
		}
		defer db.Close()
		pg := repo.NewPostgresUserDB(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal("schema", zap.Error(err))
		}
		store = pg
	} else {
		log.Warn("DATABASE_URL not set, analyses and users are kept in memory")
		store = repo.NewMemoryRepository()
	}

	var adv *advisor.Advisor
	if a, err := advisor.New(cfg.AnthropicAPIKey, cfg.AdvisorModel); err == nil {
		adv = a
	} else {
		log.Info("advisory disabled", zap.Error(err))
	}

	router := NewRouter(Deps{
		Calculator: calc,
		Repo:       store,
		Advisor:    adv,
		Log:        log,
		TokenKey:   []byte(cfg.TokenKey),
		Limit:      rate.Limit(cfg.RateLimit),
		Burst:      cfg.RateBurst,
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: CORS(router),
	}

	log.Info("starting server", zap.String("addr", cfg.Addr))
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	wg.Wait()
	log.Info("server stopped")
}
