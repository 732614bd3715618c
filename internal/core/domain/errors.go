package domain

import "errors"

var (
	ErrDuplicateCredential = errors.New("credential already registered")
	ErrDuplicateCandidate  = errors.New("candidate already exists")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrInvalidCredential   = errors.New("credential not recognized")
	ErrAlreadyVoted        = errors.New("voter has already voted")
	ErrStorageFailure      = errors.New("ballot could not be committed")
	ErrInvalidInput        = errors.New("invalid input")
)

// IsRejection reports whether err is one of the outcomes a ballot cast or an
// administrative operation may legitimately end in, as opposed to an
// infrastructure failure.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrDuplicateCredential,
		ErrDuplicateCandidate,
		ErrCandidateNotFound,
		ErrInvalidCredential,
		ErrAlreadyVoted,
		ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
