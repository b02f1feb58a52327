package database

import (
	"errors"

	"github.com/rpupo63/blogicum-backend/errs"
	"gorm.io/gorm"
)

// translate maps GORM errors onto the errs taxonomy.
func translate(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(entity)
	}
	return errs.NewDatabaseError(operation, entity, err)
}
