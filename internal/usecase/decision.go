package usecase

import (
	"context"

	"github.com/peergov/modgate"
	"github.com/peergov/modgate/internal/domain"
)

type DecisionUsecase struct {
	proposals ProposalRepository
	clock     Clock
	events    EventSink
	rules     domain.Rules
}

func NewDecisionUsecase(proposals ProposalRepository, clock Clock, events EventSink, rules domain.Rules) *DecisionUsecase {
	return &DecisionUsecase{proposals: proposals, clock: clock, events: events, rules: rules}
}

// Finalize computes the truncating mean over the proposal's aggregates and
// commits the verdict. There is no repeat-finalization guard: a later call
// recomputes from the totals as they stand and overwrites the verdict.
func (uc *DecisionUsecase) Finalize(ctx context.Context, proposalID uint64) (domain.Verdict, error) {
	proposal, err := uc.proposals.Get(ctx, proposalID)
	if err != nil {
		return domain.Verdict{}, err
	}

	if proposal.ScoreCount < uc.rules.MinScores {
		return domain.Verdict{}, domain.ErrNotEnoughScores
	}

	height, err := uc.clock.Now(ctx)
	if err != nil {
		return domain.Verdict{}, err
	}
	if proposal.IsExpired(height, uc.rules.ValidityPeriod) {
		return domain.Verdict{}, domain.ErrProposalExpired
	}

	average := domain.Average(proposal.TotalScore, proposal.ScoreCount)
	status := domain.Decide(average, uc.rules.ScoreThreshold)

	if _, err := uc.proposals.Finalize(ctx, proposalID, status, average); err != nil {
		return domain.Verdict{}, err
	}

	if uc.events != nil {
		// advisory stream; a publish failure must not undo a committed verdict
		_ = uc.events.Publish(ctx, modgate.Event{
			Type:       modgate.EventProposalFinalized,
			ProposalID: proposalID,
			Status:     string(status),
			Average:    &average,
			Height:     height,
		})
	}

	return domain.Verdict{Status: status, Average: average}, nil
}
