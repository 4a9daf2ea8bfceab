package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/moneymate/internal/auth"
	"github.com/mmynk/moneymate/internal/config"
	"github.com/mmynk/moneymate/internal/extract"
	"github.com/mmynk/moneymate/internal/metrics"
	"github.com/mmynk/moneymate/internal/middleware"
	"github.com/mmynk/moneymate/internal/service"
	"github.com/mmynk/moneymate/internal/storage/sqlite"
	"github.com/mmynk/moneymate/pkg/api"
	"github.com/mmynk/moneymate/pkg/logging"
)

// apiPrefix is the path prefix shared by all Connect services.
const apiPrefix = "/moneymate.v1."

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()

	extractor, err := extract.New(ctx, extract.Config{
		APIKey:   cfg.GeminiAPIKey,
		Model:    cfg.GeminiModel,
		Endpoint: cfg.GeminiEndpoint,
		OnBreakerStateChange: func(from, to string) {
			m.SetBreakerState(to)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize receipt analysis: %w", err)
	}
	slog.Info("Receipt analysis initialized", "backend", extractor.Backend(), "model", cfg.GeminiModel)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	interceptors := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	receiptSvc := service.NewReceiptService(extractor, m, cfg.AnalyzeTimeout, cfg.MaxImageBytes)
	sessionSvc := service.NewSessionService(store)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, slog.Default())

	mux := http.NewServeMux()
	mux.Handle(api.NewSessionServiceHandler(sessionSvc, interceptors, connect.WithReadMaxBytes(int(cfg.MaxImageBytes))))
	mux.Handle(api.NewReceiptServiceHandler(receiptSvc, interceptors, connect.WithReadMaxBytes(int(cfg.MaxImageBytes))))
	mux.Handle(api.NewAuthServiceHandler(authSvc, interceptors))
	mux.Handle("/api/analyze-receipt", receiptSvc)
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	mux.Handle("/", staticHandler(staticDir))
	slog.Info("Serving static files", "path", staticDir)

	// h2c serves HTTP/2 without TLS, which Connect and gRPC clients need.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(middleware.LogHTTP(middleware.CORS(mux)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", server.Addr, "url", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// staticHandler serves the frontend from dir. Unknown paths get index.html
// so client-side routes work; unknown API procedures get a 404.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) || strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}
