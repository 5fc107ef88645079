package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peergov/modgate/internal/domain"
	"github.com/peergov/modgate/internal/infrastructure/database/models"
)

type ModeratorRepository struct {
	db *gorm.DB
}

func NewModeratorRepository(db *gorm.DB) *ModeratorRepository {
	return &ModeratorRepository{
		db: db,
	}
}

func moderatorToDomain(model models.Moderator) domain.Moderator {
	return domain.Moderator{
		ID:                   model.ID,
		Identity:             model.Identity,
		StakeAmount:          model.StakeAmount,
		TotalScoresSubmitted: model.TotalScoresSubmitted,
		ReputationScore:      model.ReputationScore,
		IsActive:             model.IsActive,
	}
}

// Register creates the moderator row and its performance row in one
// transaction. The registry id is allocated from the moderators counter.
func (r *ModeratorRepository) Register(ctx context.Context, moderator domain.Moderator) (domain.Moderator, error) {

	var created models.Moderator
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		seq, err := nextSequence(tx, counterModerators)
		if err != nil {
			return err
		}

		created = models.Moderator{
			Identity:             moderator.Identity,
			ID:                   seq,
			StakeAmount:          moderator.StakeAmount,
			TotalScoresSubmitted: moderator.TotalScoresSubmitted,
			ReputationScore:      moderator.ReputationScore,
			IsActive:             moderator.IsActive,
		}

		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyRegistered
			}
			return err
		}

		if err := tx.Create(&models.ModeratorPerformance{Identity: moderator.Identity}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyRegistered
			}
			return err
		}

		return nil
	})
	if err != nil {
		return domain.Moderator{}, err
	}

	return moderatorToDomain(created), nil
}

func (r *ModeratorRepository) Get(ctx context.Context, identity string) (domain.Moderator, error) {

	var model models.Moderator
	err := r.db.WithContext(ctx).First(&model, "identity = ?", identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Moderator{}, domain.ErrNotModerator
		}
		return domain.Moderator{}, err
	}

	return moderatorToDomain(model), nil
}

func (r *ModeratorRepository) List(ctx context.Context) ([]domain.Moderator, error) {

	var records []models.Moderator
	err := r.db.WithContext(ctx).Order("id").Find(&records).Error
	if err != nil {
		return nil, err
	}

	moderators := make([]domain.Moderator, 0, len(records))
	for _, record := range records {
		moderators = append(moderators, moderatorToDomain(record))
	}

	return moderators, nil
}

func (r *ModeratorRepository) GetPerformance(ctx context.Context, identity string) (domain.ModeratorPerformance, error) {

	var model models.ModeratorPerformance
	err := r.db.WithContext(ctx).First(&model, "identity = ?", identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ModeratorPerformance{}, domain.ErrNotModerator
		}
		return domain.ModeratorPerformance{}, err
	}

	return domain.ModeratorPerformance{
		Identity:         model.Identity,
		AccurateScores:   model.AccurateScores,
		ChallengedScores: model.ChallengedScores,
		Penalties:        model.Penalties,
	}, nil
}

// AdjustReputation applies a signed delta to a moderator's reputation.
// Reserved for the dispute flow; nothing routes here yet.
func (r *ModeratorRepository) AdjustReputation(ctx context.Context, identity string, delta int64) (domain.Moderator, error) {

	var model models.Moderator
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&model, "identity = ?", identity).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotModerator
			}
			return err
		}

		model.ReputationScore += delta
		return tx.Model(&models.Moderator{}).
			Where("identity = ?", identity).
			Update("reputation_score", model.ReputationScore).Error
	})
	if err != nil {
		return domain.Moderator{}, err
	}

	return moderatorToDomain(model), nil
}
