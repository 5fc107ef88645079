package domain

import (
	"errors"
	"fmt"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ErrProposalNotFound is returned when a referenced proposal id does not exist.
var ErrProposalNotFound = NotFoundError{Resource: "proposal"}

var (
	// ErrAlreadyRegistered: the caller already has a moderator record.
	ErrAlreadyRegistered = errors.New("identity is already registered")
	// ErrInsufficientStake: registration stake below the minimum.
	ErrInsufficientStake = errors.New("stake amount below minimum")
	// ErrNotModerator: the caller has no moderator record at all.
	ErrNotModerator = errors.New("identity is not a registered moderator")
	// ErrNotAuthorized: a moderator record exists but is inactive.
	ErrNotAuthorized = errors.New("moderator is not active")
	// ErrInvalidScore: score value outside [0,100].
	ErrInvalidScore = errors.New("score value out of range")
	// ErrProposalExpired: the proposal's validity window has passed.
	ErrProposalExpired = errors.New("proposal validity period has expired")
	// ErrAlreadyScored: the caller already scored this proposal.
	ErrAlreadyScored = errors.New("moderator has already scored this proposal")
	// ErrNotEnoughScores: finalize called before quorum.
	ErrNotEnoughScores = errors.New("not enough scores to finalize")
)
