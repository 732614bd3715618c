package http

import (
	"net/http"

	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type ResultHandler struct {
	service ports.ResultService
}

func NewResultHandler(service ports.ResultService) *ResultHandler {
	return &ResultHandler{
		service: service,
	}
}

// ListResults godoc
// @Summary      Shows the tally board
// @Tags         results
// @Produce      json
// @Success      200
// @Router       /api/results [get]
func (h *ResultHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.ListResults(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

type tallyResponse struct {
	VotesCounted   int64 `json:"votes_counted"`
	VotersConsumed int64 `json:"voters_consumed"`
	Balanced       bool  `json:"balanced"`
}

// Tally godoc
// @Summary      Compares counted votes against consumed voters
// @Tags         results
// @Produce      json
// @Success      200
// @Router       /api/results/tally [get]
func (h *ResultHandler) Tally(w http.ResponseWriter, r *http.Request) {
	tally, err := h.service.Tally(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tallyResponse{
		VotesCounted:   tally.VotesCounted,
		VotersConsumed: tally.VotersConsumed,
		Balanced:       tally.Balanced(),
	})
}
