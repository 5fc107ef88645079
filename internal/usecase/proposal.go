package usecase

import (
	"context"

	"github.com/peergov/modgate/internal/domain"
)

type ProposalUsecase struct {
	proposals ProposalRepository
	clock     Clock
}

func NewProposalUsecase(proposals ProposalRepository, clock Clock) *ProposalUsecase {
	return &ProposalUsecase{proposals: proposals, clock: clock}
}

// Submit creates a new pending proposal stamped with the current block
// height. Any caller with a valid identity may submit.
func (uc *ProposalUsecase) Submit(ctx context.Context, submitter string, contentHash string) (domain.Proposal, error) {
	height, err := uc.clock.Now(ctx)
	if err != nil {
		return domain.Proposal{}, err
	}

	return uc.proposals.Create(ctx, domain.Proposal{
		Submitter:      submitter,
		ContentHash:    contentHash,
		SubmissionTime: height,
		Status:         domain.StatusPending,
	})
}

func (uc *ProposalUsecase) Get(ctx context.Context, id uint64) (domain.Proposal, error) {
	return uc.proposals.Get(ctx, id)
}
