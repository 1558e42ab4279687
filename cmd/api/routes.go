package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"librarymanager/internal/auth"
	"librarymanager/internal/catalog"
	"librarymanager/internal/config"
	"librarymanager/internal/httpx"
	"librarymanager/internal/savedbook"
)

type routerDeps struct {
	log       *zap.Logger
	cfg       *config.Config
	verifier  httpx.CredentialVerifier
	books     *savedbook.HTTPHandler
	auth      *auth.HTTPHandler
	catalog   *catalog.HTTPHandler
	ready     func(ctx context.Context) error
	rateLimit *httpx.RateLimitMiddleware
}

func newRouter(d routerDeps) http.Handler {
	router := http.NewServeMux()
	protect := httpx.AuthMiddleware(d.verifier)

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteMessage(w, http.StatusOK, "Personal Library Manager API")
	})
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.ready(ctx); err != nil {
			httpx.LoggerFrom(r.Context()).Warn("readiness check failed", zap.Error(err))
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /auth/signup", d.auth.Signup)
	router.HandleFunc("POST /auth/login", d.auth.Login)
	router.Handle("GET /auth/user", protect(http.HandlerFunc(d.auth.Me)))

	router.HandleFunc("GET /search", d.catalog.Search)

	router.Handle("GET /books", protect(http.HandlerFunc(d.books.List)))
	router.Handle("POST /books", protect(http.HandlerFunc(d.books.Create)))
	router.Handle("PUT /books/{id}", protect(http.HandlerFunc(d.books.Update)))
	router.Handle("DELETE /books/{id}", protect(http.HandlerFunc(d.books.Delete)))

	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes)(handler)
	handler = d.rateLimit.Middleware(handler)
	handler = httpx.CORSMiddleware(d.cfg.CORSAllowedOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(d.cfg.EnableHSTS)(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(d.log)(handler)
	return handler
}
