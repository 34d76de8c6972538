package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"warunggo/internal/bot"
	"warunggo/internal/config"
	"warunggo/internal/domain"
	"warunggo/internal/intent"
	"warunggo/internal/mqtt"
	"warunggo/internal/order"
	"warunggo/internal/reply"
	"warunggo/internal/sheets"
	"warunggo/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Error("connect db failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		logger.Error("migrate db failed", "error", err)
		os.Exit(1)
	}

	sheetSvc := sheets.NewService(sheets.Config{
		SpreadsheetID:   cfg.SheetsID,
		Range:           cfg.SheetsRange,
		CredentialsPath: cfg.CredentialsPath,
	}, logger)

	hintClient := intent.NewClient(cfg.AIServiceURL, cfg.AITimeout)
	if hintClient.Enabled() {
		logger.Info("intent service enabled", "url", cfg.AIServiceURL, "timeout", cfg.AITimeout)
	} else {
		logger.Info("intent service disabled, using local matching only")
	}

	handler := bot.NewHandler(bot.Config{
		OwnerIDs:    cfg.OwnerIDs,
		HintTimeout: cfg.AITimeout,
	}, st, hintClient, sheetSvc, logger)

	// Initial sync is best effort: the owner can run /sync once credentials
	// or connectivity are fixed.
	if _, err := handler.Sync(ctx); err != nil {
		logger.Warn("initial sheet sync failed", "error", err)
	}

	hub := mqtt.NewHub(mqtt.HubConfig{
		BrokerURL:   cfg.MQTTBrokerURL,
		ClientID:    cfg.MQTTClientID,
		Username:    cfg.MQTTUsername,
		Password:    cfg.MQTTPassword,
		TopicPrefix: cfg.MQTTTopicPrefix,
	}, handler, logger)
	if err := hub.Start(ctx); err != nil {
		logger.Error("start mqtt hub failed", "error", err)
		os.Exit(1)
	}
	handler.SetNotifier(hub)

	go runSyncLoop(ctx, handler, cfg.SyncInterval, logger)

	resolver := order.NewResolver()

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Post("/v1/resolve", func(w http.ResponseWriter, req *http.Request) {
		var resolveReq domain.ResolveRequest
		if err := json.NewDecoder(req.Body).Decode(&resolveReq); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			return
		}
		if strings.TrimSpace(resolveReq.Text) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "text is required"})
			return
		}

		snap, err := st.LoadSnapshot(req.Context())
		if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
			logger.Error("load snapshot failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "snapshot unavailable"})
			return
		}

		outcome := resolver.Resolve(resolveReq.Text, snap, resolveReq.Hints)
		writeJSON(w, http.StatusOK, domain.ResolveResponse{
			Outcome: outcome.Kind.String(),
			Reply:   reply.ForOutcome(outcome, ""),
			Lines:   outcome.Lines,
			Total:   outcome.Total,
		})
	})
	r.Post("/v1/sync", func(w http.ResponseWriter, req *http.Request) {
		snap, err := handler.Sync(req.Context())
		if err != nil {
			logger.Error("sync failed", "error", err)
			writeJSON(w, http.StatusBadGateway, map[string]any{"error": "sync failed, check credentials and connection"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"item_count": len(snap.Keys)})
	})
	r.Get("/v1/chats/{chatID}/orders/count", func(w http.ResponseWriter, req *http.Request) {
		n, err := st.OrderCount(req.Context(), chi.URLParam(req, "chatID"))
		if err != nil {
			logger.Error("order count failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "count unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": n})
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("warung server started", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func runSyncLoop(ctx context.Context, handler *bot.Handler, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := handler.Sync(ctx); err != nil {
				logger.Error("auto sync failed", "error", err)
			}
		}
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
