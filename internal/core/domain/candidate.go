package domain

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	VoteCount int64     `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Result is the read-only projection of a candidate shown on the tally board.
type Result struct {
	CandidateName string `json:"name"`
	VoteCount     int64  `json:"vote_count"`
}
