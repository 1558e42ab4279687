package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"librarymanager/internal/auth"
	"librarymanager/internal/authn"
	"librarymanager/internal/catalog"
	"librarymanager/internal/config"
	"librarymanager/internal/httpx"
	"librarymanager/internal/platform/googlebooks"
	"librarymanager/internal/platform/logging"
	"librarymanager/internal/savedbook"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load("")
	if err != nil {
		// The logger depends on config, so this is the one place we print raw.
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, cleanup, err := buildHandler(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     zap.NewStdLog(log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Addr), zap.String("db_driver", cfg.DBDriver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return <-errCh
}

// buildHandler opens the stores and assembles the full handler chain. The
// returned cleanup closes the stores.
func buildHandler(ctx context.Context, cfg *config.Config, log *zap.Logger) (http.Handler, func(), error) {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	verifier, err := authn.NewVerifier(cfg.JWTSecret, nil)
	if err != nil {
		st.close()
		return nil, nil, errors.Wrap(err, "create verifier")
	}

	binder := httpx.NewBinder()
	catalogClient := googlebooks.NewClient(googlebooks.Options{
		BaseURL:    cfg.Catalog.BaseURL,
		APIKey:     cfg.Catalog.APIKey,
		RPS:        cfg.Catalog.RPS,
		MaxRetries: cfg.Catalog.MaxRetries,
		Timeout:    cfg.Catalog.Timeout,
	})

	router := newRouter(routerDeps{
		log:       log,
		cfg:       cfg,
		verifier:  verifier,
		books:     savedbook.NewHTTPHandler(savedbook.NewService(st.books), binder),
		auth:      auth.NewHTTPHandler(auth.NewService(st.users, cfg.JWTSecret, cfg.JWTTTL), binder),
		catalog:   catalog.NewHTTPHandler(catalog.NewService(catalogClient)),
		ready:     st.books.Ping,
		rateLimit: httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
	})
	return router, st.close, nil
}
