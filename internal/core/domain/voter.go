package domain

import (
	"time"

	"github.com/google/uuid"
)

type Voter struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	CredentialHash string    `json:"-"`
	HasVoted       bool      `json:"has_voted"`
	CreatedAt      time.Time `json:"created_at"`
}
