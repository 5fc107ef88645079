package usecase

import (
	"context"

	"github.com/peergov/modgate"
	"github.com/peergov/modgate/internal/domain"
)

type ScoringUsecase struct {
	proposals  ProposalRepository
	moderators ModeratorRepository
	scores     ScoreRepository
	clock      Clock
	events     EventSink
	rules      domain.Rules
}

func NewScoringUsecase(
	proposals ProposalRepository,
	moderators ModeratorRepository,
	scores ScoreRepository,
	clock Clock,
	events EventSink,
	rules domain.Rules,
) *ScoringUsecase {
	return &ScoringUsecase{
		proposals:  proposals,
		moderators: moderators,
		scores:     scores,
		clock:      clock,
		events:     events,
		rules:      rules,
	}
}

// Score records one moderator's score for a proposal. Preconditions are
// checked in a fixed order: proposal exists, caller is a registered active
// moderator, value in range, proposal not expired, pair not yet scored.
// The stored status is deliberately not consulted: a finalized proposal
// keeps accepting scores until it expires.
func (uc *ScoringUsecase) Score(ctx context.Context, proposalID uint64, identity string, value int64, reasoningHash string) (domain.ScoreRecord, error) {
	proposal, err := uc.proposals.Get(ctx, proposalID)
	if err != nil {
		return domain.ScoreRecord{}, err
	}

	moderator, err := uc.moderators.Get(ctx, identity)
	if err != nil {
		return domain.ScoreRecord{}, err
	}
	if !moderator.IsActive {
		return domain.ScoreRecord{}, domain.ErrNotAuthorized
	}

	if !domain.ValidScore(value) {
		return domain.ScoreRecord{}, domain.ErrInvalidScore
	}

	height, err := uc.clock.Now(ctx)
	if err != nil {
		return domain.ScoreRecord{}, err
	}
	if proposal.IsExpired(height, uc.rules.ValidityPeriod) {
		return domain.ScoreRecord{}, domain.ErrProposalExpired
	}

	record := domain.ScoreRecord{
		ProposalID:    proposalID,
		Moderator:     identity,
		Score:         value,
		ScoredAt:      height,
		ReasoningHash: reasoningHash,
	}
	if err := uc.scores.Record(ctx, record); err != nil {
		return domain.ScoreRecord{}, err
	}

	if uc.events != nil {
		// advisory stream; a publish failure must not undo a committed score
		_ = uc.events.Publish(ctx, modgate.Event{
			Type:       modgate.EventScoreRecorded,
			ProposalID: proposalID,
			Moderator:  identity,
			Score:      &record.Score,
			Height:     height,
		})
	}

	return record, nil
}

func (uc *ScoringUsecase) List(ctx context.Context, proposalID uint64) ([]domain.ScoreRecord, error) {
	if _, err := uc.proposals.Get(ctx, proposalID); err != nil {
		return nil, err
	}
	return uc.scores.List(ctx, proposalID)
}
