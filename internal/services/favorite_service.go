package services

import (
	"context"

	"realestate_backend/internal/logger"
	"realestate_backend/internal/models"
	"realestate_backend/internal/repositories"
	"realestate_backend/pkg/apperrors"

	"github.com/juju/clock"
	"gorm.io/gorm"
)

type FavoriteService interface {
	Add(ctx context.Context, db *gorm.DB, userID, propertyID string) (*models.Favorite, error)
	Remove(ctx context.Context, db *gorm.DB, userID, propertyID string) error
	IsFavorited(ctx context.Context, db *gorm.DB, userID, propertyID string) (bool, error)
	CountForUser(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	ListForUser(ctx context.Context, db *gorm.DB, userID string) ([]models.Property, error)
}

type favoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	propertyRepo repositories.PropertyRepository
	userRepo     repositories.UserRepository
	clock        clock.Clock
}

func NewFavoriteService(
	favoriteRepo repositories.FavoriteRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	clk clock.Clock,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		clock:        orWallClock(clk),
	}
}

func (s *favoriteService) Add(ctx context.Context, db *gorm.DB, userID, propertyID string) (*models.Favorite, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	exists, err := s.favoriteRepo.Exists(tx, userID, propertyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyFavorited
	}

	propertyExists, err := s.propertyRepo.Exists(tx, propertyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !propertyExists {
		return nil, apperrors.ErrPropertyOrUserNotFound
	}
	if _, err := s.userRepo.FindByID(tx, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrPropertyOrUserNotFound.WithError(err)
		}
		return nil, apperrors.InternalError(err)
	}

	favorite := &models.Favorite{UserID: userID, PropertyID: propertyID}
	favorite.CreatedAt = s.clock.Now().UTC()
	favorite.UpdatedAt = favorite.CreatedAt
	if err := s.favoriteRepo.Create(tx, favorite); err != nil {
		return nil, handleFavoriteError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "property favorited", "user_id", userID, "property_id", propertyID)
	return favorite, nil
}

// Remove ignores pairs that are not favorited.
func (s *favoriteService) Remove(ctx context.Context, db *gorm.DB, userID, propertyID string) error {
	if err := s.favoriteRepo.Delete(db, userID, propertyID); err != nil {
		if apperrors.Is(err, repositories.ErrFavoriteNotFound) {
			logger.CtxDebug(ctx, "remove skipped: not favorited", "user_id", userID, "property_id", propertyID)
			return nil
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "favorite removed", "user_id", userID, "property_id", propertyID)
	return nil
}

func (s *favoriteService) IsFavorited(ctx context.Context, db *gorm.DB, userID, propertyID string) (bool, error) {
	exists, err := s.favoriteRepo.Exists(db, userID, propertyID)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return exists, nil
}

func (s *favoriteService) CountForUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return wrapCount(s.favoriteRepo.CountByUser(db, userID))
}

// ListForUser returns favorited properties, most recently favorited first.
func (s *favoriteService) ListForUser(ctx context.Context, db *gorm.DB, userID string) ([]models.Property, error) {
	return wrapList(s.favoriteRepo.FindPropertiesByUser(db, userID))
}
