package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peergov/modgate/internal/domain"
	"github.com/peergov/modgate/internal/infrastructure/database/models"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{
		db: db,
	}
}

func proposalToDomain(model models.Proposal) domain.Proposal {
	return domain.Proposal{
		ID:             model.ID,
		Submitter:      model.Submitter,
		ContentHash:    model.ContentHash,
		SubmissionTime: model.SubmissionTime,
		TotalScore:     model.TotalScore,
		ScoreCount:     model.ScoreCount,
		Status:         domain.ProposalStatus(model.Status),
		FinalAverage:   model.FinalAverage,
	}
}

func (r *ProposalRepository) Create(ctx context.Context, proposal domain.Proposal) (domain.Proposal, error) {

	var created models.Proposal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		seq, err := nextSequence(tx, counterProposals)
		if err != nil {
			return err
		}

		created = models.Proposal{
			ID:             seq,
			Submitter:      proposal.Submitter,
			ContentHash:    proposal.ContentHash,
			SubmissionTime: proposal.SubmissionTime,
			Status:         string(proposal.Status),
		}

		return tx.Create(&created).Error
	})
	if err != nil {
		return domain.Proposal{}, err
	}

	return proposalToDomain(created), nil
}

func (r *ProposalRepository) Get(ctx context.Context, id uint64) (domain.Proposal, error) {

	var model models.Proposal
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Proposal{}, domain.ErrProposalNotFound
		}
		return domain.Proposal{}, err
	}

	return proposalToDomain(model), nil
}

// Finalize overwrites the verdict. A proposal can be finalized again after
// late scores arrive; the newest verdict wins.
func (r *ProposalRepository) Finalize(ctx context.Context, id uint64, status domain.ProposalStatus, average int64) (domain.Proposal, error) {

	var model models.Proposal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&model, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProposalNotFound
			}
			return err
		}

		model.Status = string(status)
		model.FinalAverage = average

		return tx.Model(&models.Proposal{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":        string(status),
				"final_average": average,
			}).Error
	})
	if err != nil {
		return domain.Proposal{}, err
	}

	return proposalToDomain(model), nil
}
