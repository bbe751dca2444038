// Package server is the HTTP presentation shell: a JSON API over
// independent per-learner sessions.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/sqlpractice/internal/submission"
)

// Options configures the router.
type Options struct {
	CORSOrigins []string
	Submitter   *submission.Submitter // nil disables /submit
	Timeout     time.Duration         // per-request; defaults to 30s
	Quiet       bool                  // skip request logging
}

// NewRouter builds the HTTP handler.
func NewRouter(reg *Registry, opts Options) http.Handler {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	a := &api{reg: reg, submitter: opts.Submitter}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if !opts.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(r chi.Router) {
		r.Get("/exercises", a.listExercises)

		r.Post("/sessions", a.createSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", a.getSession)
			r.Delete("/", a.deleteSession)
			r.Post("/query", a.query)
			r.Post("/reveal", a.reveal)
			r.Post("/jump", a.jump)
			r.Post("/reset", a.reset)
			r.Post("/submit", a.submit)
			r.Get("/hint", a.hint)
		})
	})

	return r
}
