package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type CandidateHandler struct {
	service ports.CandidateService
}

func NewCandidateHandler(service ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{
		service: service,
	}
}

type addCandidateRequest struct {
	Name string `json:"name"`
}

// AddCandidate godoc
// @Summary      Adds a candidate
// @Description  Names are case-sensitive and must be unique.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /api/candidates [post]
func (h *CandidateHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req addCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	candidate, err := h.service.AddCandidate(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}

// ListCandidates godoc
// @Summary      Lists candidates
// @Description  Candidates are returned in the order they were added.
// @Tags         candidates
// @Produce      json
// @Success      200
// @Router       /api/candidates [get]
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.service.ListCandidates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

// RemoveCandidate godoc
// @Summary      Removes a candidate
// @Description  Votes already cast for the candidate are discarded with it.
// @Tags         candidates
// @Success      204
// @Failure      404
// @Router       /api/candidates/{name} [delete]
func (h *CandidateHandler) RemoveCandidate(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when it is set, leaving the param escaped;
	// otherwise the param is already decoded and must be used as is.
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			http.Error(w, "invalid candidate name", http.StatusBadRequest)
			return
		}
		name = unescaped
	}

	if err := h.service.RemoveCandidate(r.Context(), name); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
