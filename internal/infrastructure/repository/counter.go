package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peergov/modgate/internal/infrastructure/database/models"
)

const (
	counterProposals  = "proposals"
	counterModerators = "moderators"
)

// nextSequence allocates the next id from a named counter. Must be called
// inside the transaction that consumes the id so a rollback returns it.
func nextSequence(tx *gorm.DB, name string) (uint64, error) {
	var counter models.Counter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", name).Take(&counter).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		// first allocation; another transaction may have raced the insert
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Counter{ID: name}).Error; err != nil {
			return 0, err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", name).Take(&counter).Error; err != nil {
			return 0, err
		}
	}

	counter.Value++
	err = tx.Model(&models.Counter{}).Where("id = ?", name).Update("value", counter.Value).Error
	if err != nil {
		return 0, err
	}

	return counter.Value, nil
}
