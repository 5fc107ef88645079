package usecase

import (
	"context"

	"github.com/peergov/modgate"
	"github.com/peergov/modgate/internal/domain"
)

// ModeratorRepository defines persistence/lookup for the stake registry.
// Register assigns the next sequential moderator id and creates the zeroed
// performance record in the same transaction.
type ModeratorRepository interface {
	Register(ctx context.Context, moderator domain.Moderator) (domain.Moderator, error)
	Get(ctx context.Context, identity string) (domain.Moderator, error)
	List(ctx context.Context) ([]domain.Moderator, error)
	GetPerformance(ctx context.Context, identity string) (domain.ModeratorPerformance, error)
}

// ProposalRepository defines persistence/lookup for proposals.
// Create assigns the next sequential proposal id; Finalize merges the
// verdict fields and returns the updated proposal.
type ProposalRepository interface {
	Create(ctx context.Context, proposal domain.Proposal) (domain.Proposal, error)
	Get(ctx context.Context, id uint64) (domain.Proposal, error)
	Finalize(ctx context.Context, id uint64, status domain.ProposalStatus, average int64) (domain.Proposal, error)
}

// ScoreRepository defines the score ledger. Record atomically inserts the
// score and advances the proposal and moderator aggregates; it returns
// domain.ErrAlreadyScored when the (proposal, moderator) pair exists.
type ScoreRepository interface {
	Record(ctx context.Context, record domain.ScoreRecord) error
	Get(ctx context.Context, proposalID uint64, identity string) (domain.ScoreRecord, error)
	List(ctx context.Context, proposalID uint64) ([]domain.ScoreRecord, error)
}

// Clock resolves the host chain's current block height.
type Clock interface {
	Now(ctx context.Context) (int64, error)
}

// EventSink publishes advisory gate events after a mutation commits.
type EventSink interface {
	Publish(ctx context.Context, event modgate.Event) error
}
