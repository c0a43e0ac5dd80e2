package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrInvalidInput = errors.New("invalid input data")
)

// translate maps GORM errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
