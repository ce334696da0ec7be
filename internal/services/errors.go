package services

import (
	"errors"

	"realestate_backend/internal/repositories"
	"realestate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

func handlePropertyError(err error) error {
	if errors.Is(err, repositories.ErrPropertyNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrPropertyNotFound.WithError(err)
	}
	return handleUserError(err)
}

func handleUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound.WithError(err)
	}
	if errors.Is(err, repositories.ErrUserAlreadyExists) {
		return apperrors.ErrEmailAlreadyExists.WithError(err)
	}
	return internalError(err)
}

func handleApplicationError(err error) error {
	if errors.Is(err, repositories.ErrApplicationNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrApplicationNotFound.WithError(err)
	}
	if errors.Is(err, repositories.ErrApplicationDuplicate) {
		return apperrors.ErrDuplicateApplication.WithError(err)
	}
	return handlePropertyError(err)
}

func handleViewingError(err error) error {
	if errors.Is(err, repositories.ErrViewingNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrViewingNotFound.WithError(err)
	}
	if errors.Is(err, repositories.ErrViewingDuplicate) {
		return apperrors.ErrDuplicateViewing.WithError(err)
	}
	return handlePropertyError(err)
}

func handleFavoriteError(err error) error {
	if errors.Is(err, repositories.ErrFavoriteExists) {
		return apperrors.ErrAlreadyFavorited.WithError(err)
	}
	return handlePropertyError(err)
}

// internalError keeps AppErrors raised deeper in the call chain intact.
func internalError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
