package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/tventura/mibot/internal/adapters/http"
	"github.com/tventura/mibot/internal/adapters/llm"
	"github.com/tventura/mibot/internal/adapters/storage"
	"github.com/tventura/mibot/internal/app/chat"
	"github.com/tventura/mibot/internal/config"
	"github.com/tventura/mibot/internal/creds"
	"github.com/tventura/mibot/internal/domain"
	"github.com/tventura/mibot/internal/observability"
)

func main() {
	ctx := context.Background()

	// .env is optional; deployments set real env vars.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	observability.Setup(cfg.LogLevel)
	log := observability.Logger()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize session store", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close session store", "error", err)
		}
	}()
	log.Info("session store ready", "backend", cfg.StorageBackend)

	keys := cfg.APIKeys
	if cfg.UseMockLLM && len(keys) == 0 {
		keys = []string{"mock"}
	}
	ring, err := creds.NewRing(keys)
	if err != nil {
		log.Error("credential pool is not usable", "error", err)
		os.Exit(1)
	}

	var gen domain.Generator
	if cfg.UseMockLLM {
		log.Info("using mock generation provider")
		gen = llm.NewMockLLM()
	} else {
		log.Info("using gemini generation provider", "model", cfg.ModelName, "credentials", ring.Size())
		gen, err = llm.NewGeminiClient(ctx, cfg.ModelName, keys)
		if err != nil {
			log.Error("failed to initialize generation provider", "error", err)
			os.Exit(1)
		}
	}

	svc := chat.NewService(gen, store, ring, cfg.Behavior)
	handler := httpadapter.NewServer(svc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
		// Generation calls can be slow; give writes generous room.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("mibot api listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-runCtx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	log.Info("server stopped")
}
