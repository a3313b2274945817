package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/avilov/bookshelf/internal/config"
	"github.com/avilov/bookshelf/internal/handlers"
	"github.com/avilov/bookshelf/internal/middleware"
	"github.com/avilov/bookshelf/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires the full handler chain over the given DB pool.
func newRouter(db *sql.DB, cfg config.Config) *chi.Mux {
	auditRepo := repo.NewAuditRepo(db)

	books := handlers.BookHandler{
		Repo:  repo.NewBookRepo(db),
		Audit: auditRepo,
	}
	auth := handlers.AuthHandler{
		Users:    repo.NewUserRepo(db),
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: time.Duration(cfg.JWTExpireHours) * time.Hour,
	}
	audit := handlers.AuditHandler{Repo: auditRepo}

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public
	r.Post("/api/register", auth.Register)
	r.Post("/api/login", auth.Login)
	r.Get("/books", books.ListBooks)
	r.Get("/books/{id}", books.GetBook)

	// Bearer token required
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWT([]byte(cfg.JWTSecret)))
		r.Post("/books", books.CreateBook)
		r.Put("/books/{id}", books.UpdateBook)
		r.Delete("/books/{id}", books.DeleteBook)
		r.Get("/audit", audit.ListAudit)
	})

	return r
}
