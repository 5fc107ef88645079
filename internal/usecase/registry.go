package usecase

import (
	"context"
	"errors"

	"github.com/peergov/modgate/internal/domain"
)

type RegistryUsecase struct {
	moderators ModeratorRepository
	rules      domain.Rules
}

func NewRegistryUsecase(moderators ModeratorRepository, rules domain.Rules) *RegistryUsecase {
	return &RegistryUsecase{moderators: moderators, rules: rules}
}

// Register onboards the caller as a moderator. One registration per
// identity; stake must meet the minimum. Both failures leave no state.
func (uc *RegistryUsecase) Register(ctx context.Context, identity string, stakeAmount uint64) (domain.Moderator, error) {
	_, err := uc.moderators.Get(ctx, identity)
	if err == nil {
		return domain.Moderator{}, domain.ErrAlreadyRegistered
	}
	if !errors.Is(err, domain.ErrNotModerator) {
		return domain.Moderator{}, err
	}

	if stakeAmount < uc.rules.MinStake {
		return domain.Moderator{}, domain.ErrInsufficientStake
	}

	return uc.moderators.Register(ctx, domain.Moderator{
		Identity:        identity,
		StakeAmount:     stakeAmount,
		ReputationScore: 100,
		IsActive:        true,
	})
}

func (uc *RegistryUsecase) Get(ctx context.Context, identity string) (domain.Moderator, error) {
	return uc.moderators.Get(ctx, identity)
}

func (uc *RegistryUsecase) List(ctx context.Context) ([]domain.Moderator, error) {
	return uc.moderators.List(ctx)
}

func (uc *RegistryUsecase) GetPerformance(ctx context.Context, identity string) (domain.ModeratorPerformance, error) {
	return uc.moderators.GetPerformance(ctx, identity)
}
