package domain

// Tally pairs both sides of the single-vote invariant: every consumed voter
// accounts for exactly one counted vote.
type Tally struct {
	VotesCounted   int64 `json:"votes_counted"`
	VotersConsumed int64 `json:"voters_consumed"`
}

func (t Tally) Balanced() bool {
	return t.VotesCounted == t.VotersConsumed
}
