package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Voters     *VoterHandler
	Candidates *CandidateHandler
	Ballots    *BallotHandler
	Results    *ResultHandler
	Health     Pinger
}

func NewHandler(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := h.Health.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Post("/voters", h.Voters.RegisterVoter)

		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", h.Candidates.ListCandidates)
			r.Post("/", h.Candidates.AddCandidate)
			r.Delete("/{name}", h.Candidates.RemoveCandidate)
		})

		r.Post("/ballots", h.Ballots.CastVote)

		r.Route("/results", func(r chi.Router) {
			r.Get("/", h.Results.ListResults)
			r.Get("/tally", h.Results.Tally)
		})
	})

	return r
}
