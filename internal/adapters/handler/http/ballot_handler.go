package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type BallotHandler struct {
	service ports.BallotService
}

func NewBallotHandler(service ports.BallotService) *BallotHandler {
	return &BallotHandler{
		service: service,
	}
}

type castVoteRequest struct {
	Secret      string    `json:"secret"`
	CandidateID uuid.UUID `json:"candidate_id"`
}

// CastVote godoc
// @Summary      Casts a ballot
// @Description  Authenticates the voter by secret and records exactly one vote.
// @Tags         ballots
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      401
// @Failure      404
// @Failure      409
// @Failure      503
// @Router       /api/ballots [post]
func (h *BallotHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CastVoteInput{
		Secret:      req.Secret,
		CandidateID: req.CandidateID,
	}

	if err := h.service.CastVote(r.Context(), input); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
