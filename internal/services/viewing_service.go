package services

import (
	"context"
	"time"

	"realestate_backend/internal/logger"
	"realestate_backend/internal/models"
	"realestate_backend/internal/repositories"
	"realestate_backend/pkg/apperrors"

	"github.com/juju/clock"
	"gorm.io/gorm"
)

type ViewingService interface {
	Request(ctx context.Context, db *gorm.DB, propertyID, userID string, viewingDate time.Time, message string) (*models.PropertyViewing, error)

	GetByID(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error)
	GetAll(ctx context.Context, db *gorm.DB) ([]models.PropertyViewing, error)
	GetUserViewings(ctx context.Context, db *gorm.DB, userID string) ([]models.PropertyViewing, error)
	GetPropertyViewings(ctx context.Context, db *gorm.DB, propertyID string) ([]models.PropertyViewing, error)
	GetOwnerRequests(ctx context.Context, db *gorm.DB, ownerID string) ([]models.PropertyViewing, error)
	GetPendingForOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]models.PropertyViewing, error)
	GetByStatus(ctx context.Context, db *gorm.DB, status models.ViewingStatus) ([]models.PropertyViewing, error)
	GetUpcoming(ctx context.Context, db *gorm.DB, userID string) ([]models.PropertyViewing, error)

	// Status changes return (nil, nil) when the viewing does not exist.
	Approve(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error)
	Reject(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error)
	Cancel(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error)
	Complete(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error)

	CountPendingForOwner(ctx context.Context, db *gorm.DB, ownerID string) (int64, error)
	CountUserViewings(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	IsPropertyOwner(ctx context.Context, db *gorm.DB, viewingID, userID string) (bool, error)
	IsRequester(ctx context.Context, db *gorm.DB, viewingID, userID string) (bool, error)
}

type viewingService struct {
	viewingRepo  repositories.ViewingRepository
	propertyRepo repositories.PropertyRepository
	userRepo     repositories.UserRepository
	clock        clock.Clock
	opts         Options
}

func NewViewingService(
	viewingRepo repositories.ViewingRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	clk clock.Clock,
	opts Options,
) ViewingService {
	return &viewingService{
		viewingRepo:  viewingRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		clock:        orWallClock(clk),
		opts:         opts,
	}
}

// Request books a PENDING viewing. Checks run in order: active request for
// the pair, existence of property and user, then viewingDate strictly after now.
func (s *viewingService) Request(ctx context.Context, db *gorm.DB, propertyID, userID string, viewingDate time.Time, message string) (*models.PropertyViewing, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	active, err := s.viewingRepo.HasActiveViewing(tx, userID, propertyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if active {
		return nil, apperrors.ErrDuplicateViewing
	}

	property, err := s.propertyRepo.FindByID(tx, propertyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrPropertyOrUserNotFound.WithError(err)
		}
		return nil, apperrors.InternalError(err)
	}
	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrPropertyOrUserNotFound.WithError(err)
		}
		return nil, apperrors.InternalError(err)
	}

	now := s.clock.Now().UTC()
	if !viewingDate.After(now) {
		return nil, apperrors.ErrViewingDateNotInFuture
	}

	viewing := &models.PropertyViewing{
		PropertyID:  property.ID,
		UserID:      user.ID,
		ViewingDate: viewingDate.UTC(),
		Message:     message,
		Status:      models.ViewingStatusPending,
	}
	viewing.CreatedAt = now
	viewing.UpdatedAt = now

	if err := s.viewingRepo.Create(tx, viewing); err != nil {
		return nil, handleViewingError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	viewing.Property = property
	viewing.User = user
	logger.CtxInfo(ctx, "viewing requested",
		"viewing_id", viewing.ID,
		"property_id", property.ID,
		"user_id", user.ID,
		"viewing_date", viewing.ViewingDate,
	)
	return viewing, nil
}

func (s *viewingService) GetByID(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error) {
	viewing, err := s.viewingRepo.FindByID(db, viewingID)
	if err != nil {
		return nil, handleViewingError(err)
	}
	return viewing, nil
}

func (s *viewingService) GetAll(ctx context.Context, db *gorm.DB) ([]models.PropertyViewing, error) {
	return wrapList(s.viewingRepo.FindAll(db))
}

func (s *viewingService) GetUserViewings(ctx context.Context, db *gorm.DB, userID string) ([]models.PropertyViewing, error) {
	return wrapList(s.viewingRepo.FindByUser(db, userID))
}

func (s *viewingService) GetPropertyViewings(ctx context.Context, db *gorm.DB, propertyID string) ([]models.PropertyViewing, error) {
	return wrapList(s.viewingRepo.FindByProperty(db, propertyID))
}

func (s *viewingService) GetOwnerRequests(ctx context.Context, db *gorm.DB, ownerID string) ([]models.PropertyViewing, error) {
	return wrapList(s.viewingRepo.FindByPropertyOwner(db, ownerID))
}

func (s *viewingService) GetPendingForOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]models.PropertyViewing, error) {
	return wrapList(s.viewingRepo.FindPendingByOwner(db, ownerID))
}

func (s *viewingService) GetByStatus(ctx context.Context, db *gorm.DB, status models.ViewingStatus) ([]models.PropertyViewing, error) {
	return wrapList(s.viewingRepo.FindByStatus(db, status))
}

// GetUpcoming lists APPROVED viewings after the current time, soonest first.
func (s *viewingService) GetUpcoming(ctx context.Context, db *gorm.DB, userID string) ([]models.PropertyViewing, error) {
	return wrapList(s.viewingRepo.FindUpcomingByUser(db, userID, s.clock.Now().UTC()))
}

func (s *viewingService) Approve(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error) {
	return s.changeStatus(ctx, db, viewingID, models.ViewingStatusApproved)
}

func (s *viewingService) Reject(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error) {
	return s.changeStatus(ctx, db, viewingID, models.ViewingStatusRejected)
}

func (s *viewingService) Cancel(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error) {
	return s.changeStatus(ctx, db, viewingID, models.ViewingStatusCancelled)
}

func (s *viewingService) Complete(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error) {
	return s.changeStatus(ctx, db, viewingID, models.ViewingStatusCompleted)
}

func (s *viewingService) CountPendingForOwner(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	return wrapCount(s.viewingRepo.CountPendingByOwner(db, ownerID))
}

func (s *viewingService) CountUserViewings(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return wrapCount(s.viewingRepo.CountByUser(db, userID))
}

func (s *viewingService) IsPropertyOwner(ctx context.Context, db *gorm.DB, viewingID, userID string) (bool, error) {
	viewing, err := s.findForCheck(db, viewingID)
	if viewing == nil || err != nil {
		return false, err
	}
	return viewing.Property != nil && viewing.Property.IsOwnedBy(userID), nil
}

func (s *viewingService) IsRequester(ctx context.Context, db *gorm.DB, viewingID, userID string) (bool, error) {
	viewing, err := s.findForCheck(db, viewingID)
	if viewing == nil || err != nil {
		return false, err
	}
	return viewing.UserID == userID, nil
}

func (s *viewingService) findForCheck(db *gorm.DB, viewingID string) (*models.PropertyViewing, error) {
	viewing, err := s.viewingRepo.FindByID(db, viewingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrViewingNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return viewing, nil
}

func (s *viewingService) changeStatus(ctx context.Context, db *gorm.DB, viewingID string, to models.ViewingStatus) (*models.PropertyViewing, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	viewing, err := s.viewingRepo.FindByID(tx, viewingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrViewingNotFound) {
			logger.CtxDebug(ctx, "status change skipped: viewing not found", "viewing_id", viewingID, "to", to)
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}

	from := viewing.Status
	if s.opts.StrictTransitions && !from.CanTransitionTo(to) {
		return nil, apperrors.ErrInvalidTransition("viewing", from, to)
	}

	viewing.Status = to
	viewing.UpdatedAt = s.clock.Now().UTC()
	if err := s.viewingRepo.Update(tx, viewing); err != nil {
		return nil, handleViewingError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "viewing status changed", "viewing_id", viewingID, "from", from, "to", to)
	return viewing, nil
}
