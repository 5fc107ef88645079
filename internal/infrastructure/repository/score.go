package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/zeebo/xxh3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peergov/modgate/internal/domain"
	"github.com/peergov/modgate/internal/infrastructure/database/models"
)

type ScoreRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewScoreRepository(db *gorm.DB, mc *memcache.Client) *ScoreRepository {
	return &ScoreRepository{
		db: db,
		mc: mc,
	}
}

func scoreToDomain(model models.ScoreRecord) domain.ScoreRecord {
	return domain.ScoreRecord{
		ProposalID:    model.ProposalID,
		Moderator:     model.Moderator,
		Score:         model.Score,
		ScoredAt:      model.ScoredAt,
		ReasoningHash: model.ReasoningHash,
	}
}

// scoreCacheKey digests the pair so keys stay fixed-width under memcached's
// 250 byte limit.
func scoreCacheKey(proposalID uint64, identity string) string {
	digest := xxh3.HashString(fmt.Sprintf("%d/%s", proposalID, identity))
	return fmt.Sprintf("modgate:score:%016x", digest)
}

// Record inserts the score and advances the proposal and moderator
// aggregates in one transaction. The proposal row is locked first so
// concurrent scores on the same proposal serialize.
func (r *ScoreRepository) Record(ctx context.Context, record domain.ScoreRecord) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var proposal models.Proposal
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&proposal, "id = ?", record.ProposalID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProposalNotFound
			}
			return err
		}

		created := models.ScoreRecord{
			ProposalID:    record.ProposalID,
			Moderator:     record.Moderator,
			Score:         record.Score,
			ScoredAt:      record.ScoredAt,
			ReasoningHash: record.ReasoningHash,
		}
		if err := tx.Omit("Proposal").Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyScored
			}
			return err
		}

		err = tx.Model(&models.Proposal{}).
			Where("id = ?", record.ProposalID).
			UpdateColumns(map[string]any{
				"total_score": gorm.Expr("total_score + ?", record.Score),
				"score_count": gorm.Expr("score_count + 1"),
			}).Error
		if err != nil {
			return err
		}

		result := tx.Model(&models.Moderator{}).
			Where("identity = ?", record.Moderator).
			UpdateColumn("total_scores_submitted", gorm.Expr("total_scores_submitted + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotModerator
		}

		return nil
	})
}

// Get reads through memcached. Score records are write-once so cached
// entries never go stale.
func (r *ScoreRepository) Get(ctx context.Context, proposalID uint64, identity string) (domain.ScoreRecord, error) {

	key := scoreCacheKey(proposalID, identity)
	if r.mc != nil {
		item, err := r.mc.Get(key)
		if err == nil {
			var record domain.ScoreRecord
			if err := json.Unmarshal(item.Value, &record); err == nil {
				return record, nil
			}
		}
	}

	var model models.ScoreRecord
	err := r.db.WithContext(ctx).
		First(&model, "proposal_id = ? AND moderator = ?", proposalID, identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ScoreRecord{}, domain.NotFoundError{Resource: "score record"}
		}
		return domain.ScoreRecord{}, err
	}

	record := scoreToDomain(model)
	if r.mc != nil {
		if value, err := json.Marshal(record); err == nil {
			r.mc.Set(&memcache.Item{Key: key, Value: value})
		}
	}

	return record, nil
}

func (r *ScoreRepository) List(ctx context.Context, proposalID uint64) ([]domain.ScoreRecord, error) {

	var records []models.ScoreRecord
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("scored_at, moderator").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	scores := make([]domain.ScoreRecord, 0, len(records))
	for _, record := range records {
		scores = append(scores, scoreToDomain(record))
	}

	return scores, nil
}
