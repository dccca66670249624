// Package app реализует сценарии трекера упражнений.
package app

import (
	"errors"
	"fmt"

	"exercisetracker/internal/tracker/domain/entities"
)

// Категории ошибок уровня бизнес-логики.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failure")
)

// Сообщения об ошибках.
const (
	ErrMsgCreateUser   = "failed to create user"
	ErrMsgListUsers    = "failed to list users"
	ErrMsgFindUser     = "failed to find user"
	ErrMsgSaveUser     = "failed to save user"
	ErrMsgInvalidInput = "invalid input"
)

func validation(err error) error {
	return fmt.Errorf("%s: %w: %w", ErrMsgInvalidInput, ErrValidation, err)
}

func persistence(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrPersistence, err)
}

// lookupError классифицирует ошибку поиска пользователя.
func lookupError(err error) error {
	if errors.Is(err, entities.ErrUserNotFound) || errors.Is(err, entities.ErrInvalidUserID) {
		return fmt.Errorf("%w: %w", ErrNotFound, entities.ErrUserNotFound)
	}
	return persistence(ErrMsgFindUser, err)
}

// saveError: пользователь мог исчезнуть между чтением и записью.
func saveError(err error) error {
	if errors.Is(err, entities.ErrUserNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return persistence(ErrMsgSaveUser, err)
}
