package sqlrepository

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// first maps gorm.ErrRecordNotFound to ok=false so repositories can return a
// zero-value entity for unknown ids.
func first(tx *gorm.DB, dest any) (bool, error) {
	err := tx.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func byLineOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

func now() time.Time {
	return time.Now().UTC()
}
