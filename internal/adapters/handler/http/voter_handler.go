package http

import (
	"encoding/json"
	"net/http"

	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type VoterHandler struct {
	service ports.VoterService
}

func NewVoterHandler(service ports.VoterService) *VoterHandler {
	return &VoterHandler{
		service: service,
	}
}

type registerVoterRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// RegisterVoter godoc
// @Summary      Registers a voter
// @Description  Stores the voter with a hash of the secret. The secret itself is never persisted.
// @Tags         voters
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /api/voters [post]
func (h *VoterHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	var req registerVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	voter, err := h.service.RegisterVoter(r.Context(), ports.RegisterVoterInput{
		Name:   req.Name,
		Secret: req.Secret,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, voter)
}
