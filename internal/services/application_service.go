package services

import (
	"context"

	"realestate_backend/internal/logger"
	"realestate_backend/internal/models"
	"realestate_backend/internal/repositories"
	"realestate_backend/internal/services/dto"
	"realestate_backend/pkg/apperrors"

	"github.com/juju/clock"
	"gorm.io/gorm"
)

type ApplicationService interface {
	Submit(ctx context.Context, db *gorm.DB, propertyID, userID string, req *dto.SubmitApplicationRequest) (*models.Application, error)

	GetByID(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error)
	GetAll(ctx context.Context, db *gorm.DB) ([]models.Application, error)
	GetUserApplications(ctx context.Context, db *gorm.DB, userID string) ([]models.Application, error)
	GetPropertyApplications(ctx context.Context, db *gorm.DB, propertyID string) ([]models.Application, error)
	GetOwnerApplications(ctx context.Context, db *gorm.DB, ownerID string) ([]models.Application, error)
	GetPendingForOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]models.Application, error)
	GetByStatus(ctx context.Context, db *gorm.DB, status models.ApplicationStatus) ([]models.Application, error)

	// Status changes return (nil, nil) when the application does not exist.
	Approve(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error)
	Reject(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error)
	MarkUnderReview(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error)
	Withdraw(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error)

	CountPendingForOwner(ctx context.Context, db *gorm.DB, ownerID string) (int64, error)
	CountUserApplications(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	IsPropertyOwner(ctx context.Context, db *gorm.DB, applicationID, userID string) (bool, error)
	IsApplicant(ctx context.Context, db *gorm.DB, applicationID, userID string) (bool, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	propertyRepo    repositories.PropertyRepository
	userRepo        repositories.UserRepository
	clock           clock.Clock
	opts            Options
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	clk clock.Clock,
	opts Options,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		clock:           orWallClock(clk),
		opts:            opts,
	}
}

// Submit files a PENDING application. The type follows the listing:
// PURCHASE for SALE, RENTAL otherwise.
func (s *applicationService) Submit(ctx context.Context, db *gorm.DB, propertyID, userID string, req *dto.SubmitApplicationRequest) (*models.Application, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	active, err := s.applicationRepo.HasActiveApplication(tx, userID, propertyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if active {
		return nil, apperrors.ErrDuplicateApplication
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
	application := &models.Application{
		PropertyID:      property.ID,
		UserID:          user.ID,
		ApplicationType: models.ApplicationTypeFor(property.ListingType),
		Status:          models.ApplicationStatusPending,
	}
	application.CreatedAt = now
	application.UpdatedAt = now
	if req != nil {
		application.Message = req.Message
		application.OfferAmount = req.OfferAmount
		application.MoveInDate = req.MoveInDate
	}

	if err := s.applicationRepo.Create(tx, application); err != nil {
		return nil, handleApplicationError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	application.Property = property
	application.User = user
	logger.CtxInfo(ctx, "application submitted",
		"application_id", application.ID,
		"property_id", property.ID,
		"user_id", user.ID,
		"type", application.ApplicationType,
	)
	return application, nil
}

func (s *applicationService) GetByID(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	return application, nil
}

func (s *applicationService) GetAll(ctx context.Context, db *gorm.DB) ([]models.Application, error) {
	return wrapList(s.applicationRepo.FindAll(db))
}

func (s *applicationService) GetUserApplications(ctx context.Context, db *gorm.DB, userID string) ([]models.Application, error) {
	return wrapList(s.applicationRepo.FindByUser(db, userID))
}

func (s *applicationService) GetPropertyApplications(ctx context.Context, db *gorm.DB, propertyID string) ([]models.Application, error) {
	return wrapList(s.applicationRepo.FindByProperty(db, propertyID))
}

func (s *applicationService) GetOwnerApplications(ctx context.Context, db *gorm.DB, ownerID string) ([]models.Application, error) {
	return wrapList(s.applicationRepo.FindByPropertyOwner(db, ownerID))
}

func (s *applicationService) GetPendingForOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]models.Application, error) {
	return wrapList(s.applicationRepo.FindPendingByOwner(db, ownerID))
}

func (s *applicationService) GetByStatus(ctx context.Context, db *gorm.DB, status models.ApplicationStatus) ([]models.Application, error) {
	return wrapList(s.applicationRepo.FindByStatus(db, status))
}

func (s *applicationService) Approve(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error) {
	return s.changeStatus(ctx, db, applicationID, models.ApplicationStatusApproved)
}

func (s *applicationService) Reject(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error) {
	return s.changeStatus(ctx, db, applicationID, models.ApplicationStatusRejected)
}

func (s *applicationService) MarkUnderReview(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error) {
	return s.changeStatus(ctx, db, applicationID, models.ApplicationStatusUnderReview)
}

func (s *applicationService) Withdraw(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error) {
	return s.changeStatus(ctx, db, applicationID, models.ApplicationStatusWithdrawn)
}

func (s *applicationService) CountPendingForOwner(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	return wrapCount(s.applicationRepo.CountPendingByOwner(db, ownerID))
}

func (s *applicationService) CountUserApplications(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return wrapCount(s.applicationRepo.CountByUser(db, userID))
}

// IsPropertyOwner is false for a missing application.
func (s *applicationService) IsPropertyOwner(ctx context.Context, db *gorm.DB, applicationID, userID string) (bool, error) {
	application, err := s.findForCheck(db, applicationID)
	if application == nil || err != nil {
		return false, err
	}
	return application.Property != nil && application.Property.IsOwnedBy(userID), nil
}

// IsApplicant is false for a missing application.
func (s *applicationService) IsApplicant(ctx context.Context, db *gorm.DB, applicationID, userID string) (bool, error) {
	application, err := s.findForCheck(db, applicationID)
	if application == nil || err != nil {
		return false, err
	}
	return application.UserID == userID, nil
}

func (s *applicationService) findForCheck(db *gorm.DB, applicationID string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return application, nil
}

func (s *applicationService) changeStatus(ctx context.Context, db *gorm.DB, applicationID string, to models.ApplicationStatus) (*models.Application, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	application, err := s.applicationRepo.FindByID(tx, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			logger.CtxDebug(ctx, "status change skipped: application not found", "application_id", applicationID, "to", to)
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}

	from := application.Status
	if s.opts.StrictTransitions && !from.CanTransitionTo(to) {
		return nil, apperrors.ErrInvalidTransition("application", from, to)
	}

	application.Status = to
	application.UpdatedAt = s.clock.Now().UTC()
	if err := s.applicationRepo.Update(tx, application); err != nil {
		return nil, handleApplicationError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application status changed", "application_id", applicationID, "from", from, "to", to)
	return application, nil
}
