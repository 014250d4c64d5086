package repository

import (
	"errors"

	"fashion-cart/internal/model"

	"gorm.io/gorm"
)

// translate maps gorm's sentinel errors onto the model ones services match on.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return model.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return model.ErrInUse
	}
	return err
}
