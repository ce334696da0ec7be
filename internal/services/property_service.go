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

type PropertyService interface {
	Create(ctx context.Context, db *gorm.DB, ownerID string, req *dto.PropertyRequest) (*models.Property, error)
	Update(ctx context.Context, db *gorm.DB, propertyID string, req *dto.PropertyRequest) (*models.Property, error)
	Delete(ctx context.Context, db *gorm.DB, propertyID string) error

	GetByID(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error)
	GetAll(ctx context.Context, db *gorm.DB) ([]models.Property, error)
	GetAllApproved(ctx context.Context, db *gorm.DB) ([]models.Property, error)
	GetByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]models.Property, error)
	GetByStatus(ctx context.Context, db *gorm.DB, status models.PropertyStatus) ([]models.Property, error)
	GetPending(ctx context.Context, db *gorm.DB) ([]models.Property, error)

	// Status changes return (nil, nil) when the property does not exist.
	Approve(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error)
	Reject(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error)
	MarkAsSold(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error)
	MarkAsRented(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error)

	GetForSale(ctx context.Context, db *gorm.DB) ([]models.Property, error)
	GetForRent(ctx context.Context, db *gorm.DB) ([]models.Property, error)
	GetByType(ctx context.Context, db *gorm.DB, propertyType models.PropertyType) ([]models.Property, error)
	GetByCity(ctx context.Context, db *gorm.DB, city string) ([]models.Property, error)
	GetByPriceRange(ctx context.Context, db *gorm.DB, minPrice, maxPrice float64) ([]models.Property, error)
	GetByMinBedrooms(ctx context.Context, db *gorm.DB, bedrooms int) ([]models.Property, error)
	Search(ctx context.Context, db *gorm.DB, filter repositories.PropertyFilter) ([]models.Property, error)

	CountByOwner(ctx context.Context, db *gorm.DB, ownerID string) (int64, error)
	CountPending(ctx context.Context, db *gorm.DB) (int64, error)
	IsOwner(ctx context.Context, db *gorm.DB, propertyID, userID string) (bool, error)
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
	userRepo     repositories.UserRepository
	clock        clock.Clock
	opts         Options
}

func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	clk clock.Clock,
	opts Options,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		clock:        orWallClock(clk),
		opts:         opts,
	}
}

// Create stores a new listing for ownerID. Any status in req is ignored.
func (s *propertyService) Create(ctx context.Context, db *gorm.DB, ownerID string, req *dto.PropertyRequest) (*models.Property, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	owner, err := s.userRepo.FindByID(tx, ownerID)
	if err != nil {
		return nil, handleUserError(err)
	}

	now := s.clock.Now().UTC()
	property := &models.Property{}
	if err := applyPropertyRequest(property, req); err != nil {
		return nil, apperrors.InternalError(err)
	}
	property.OwnerID = owner.ID
	property.Status = models.PropertyStatusPending
	property.CreatedAt = now
	property.UpdatedAt = now

	if err := s.propertyRepo.Create(tx, property); err != nil {
		return nil, handlePropertyError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	property.Owner = owner
	logger.CtxInfo(ctx, "property created", "property_id", property.ID, "owner_id", owner.ID)
	return property, nil
}

// Update replaces the editable fields. Id, owner and creation time come from
// the stored record and the listing goes back to PENDING for re-approval.
func (s *propertyService) Update(ctx context.Context, db *gorm.DB, propertyID string, req *dto.PropertyRequest) (*models.Property, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	property, err := s.propertyRepo.FindByID(tx, propertyID)
	if err != nil {
		return nil, handlePropertyError(err)
	}
	previous := property.Status

	if err := applyPropertyRequest(property, req); err != nil {
		return nil, apperrors.InternalError(err)
	}
	property.Status = models.PropertyStatusPending
	property.UpdatedAt = s.clock.Now().UTC()

	if err := s.propertyRepo.Update(tx, property); err != nil {
		return nil, handlePropertyError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "property updated", "property_id", property.ID, "previous_status", previous)
	return property, nil
}

// Delete removes the property and everything hanging off it. Missing ids are ignored.
func (s *propertyService) Delete(ctx context.Context, db *gorm.DB, propertyID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.propertyRepo.Delete(tx, propertyID); err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			logger.CtxDebug(ctx, "delete skipped: property not found", "property_id", propertyID)
			return nil
		}
		return handlePropertyError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "property deleted", "property_id", propertyID)
	return nil
}

func (s *propertyService) GetByID(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error) {
	property, err := s.propertyRepo.FindByID(db, propertyID)
	if err != nil {
		return nil, handlePropertyError(err)
	}
	return property, nil
}

func (s *propertyService) GetAll(ctx context.Context, db *gorm.DB) ([]models.Property, error) {
	return wrapList(s.propertyRepo.FindAll(db))
}

func (s *propertyService) GetAllApproved(ctx context.Context, db *gorm.DB) ([]models.Property, error) {
	return wrapList(s.propertyRepo.FindAllApproved(db))
}

func (s *propertyService) GetByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]models.Property, error) {
	return wrapList(s.propertyRepo.FindByOwner(db, ownerID))
}

func (s *propertyService) GetByStatus(ctx context.Context, db *gorm.DB, status models.PropertyStatus) ([]models.Property, error) {
	return wrapList(s.propertyRepo.FindByStatus(db, status))
}

func (s *propertyService) GetPending(ctx context.Context, db *gorm.DB) ([]models.Property, error) {
	return s.GetByStatus(ctx, db, models.PropertyStatusPending)
}

func (s *propertyService) Approve(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error) {
	return s.changeStatus(ctx, db, propertyID, models.PropertyStatusApproved)
}

func (s *propertyService) Reject(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error) {
	return s.changeStatus(ctx, db, propertyID, models.PropertyStatusRejected)
}

func (s *propertyService) MarkAsSold(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error) {
	return s.changeStatus(ctx, db, propertyID, models.PropertyStatusSold)
}

func (s *propertyService) MarkAsRented(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error) {
	return s.changeStatus(ctx, db, propertyID, models.PropertyStatusRented)
}

func (s *propertyService) GetForSale(ctx context.Context, db *gorm.DB) ([]models.Property, error) {
	return wrapList(s.propertyRepo.FindByListingType(db, models.ListingTypeSale))
}

func (s *propertyService) GetForRent(ctx context.Context, db *gorm.DB) ([]models.Property, error) {
	return wrapList(s.propertyRepo.FindByListingType(db, models.ListingTypeRent))
}

func (s *propertyService) GetByType(ctx context.Context, db *gorm.DB, propertyType models.PropertyType) ([]models.Property, error) {
	return wrapList(s.propertyRepo.FindByPropertyType(db, propertyType))
}

func (s *propertyService) GetByCity(ctx context.Context, db *gorm.DB, city string) ([]models.Property, error) {
	return wrapList(s.propertyRepo.FindByCity(db, city))
}

func (s *propertyService) GetByPriceRange(ctx context.Context, db *gorm.DB, minPrice, maxPrice float64) ([]models.Property, error) {
	if minPrice > maxPrice {
		return nil, apperrors.ErrInvalidPriceRange
	}
	return wrapList(s.propertyRepo.FindByPriceRange(db, minPrice, maxPrice))
}

func (s *propertyService) GetByMinBedrooms(ctx context.Context, db *gorm.DB, bedrooms int) ([]models.Property, error) {
	return wrapList(s.propertyRepo.FindByMinBedrooms(db, bedrooms))
}

func (s *propertyService) Search(ctx context.Context, db *gorm.DB, filter repositories.PropertyFilter) ([]models.Property, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, apperrors.ErrInvalidPriceRange
	}
	return wrapList(s.propertyRepo.Search(db, filter))
}

func (s *propertyService) CountByOwner(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	return wrapCount(s.propertyRepo.CountByOwner(db, ownerID))
}

func (s *propertyService) CountPending(ctx context.Context, db *gorm.DB) (int64, error) {
	return wrapCount(s.propertyRepo.CountByStatus(db, models.PropertyStatusPending))
}

// IsOwner is false for a missing property.
func (s *propertyService) IsOwner(ctx context.Context, db *gorm.DB, propertyID, userID string) (bool, error) {
	property, err := s.propertyRepo.FindByID(db, propertyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}
	return property.IsOwnedBy(userID), nil
}

func (s *propertyService) changeStatus(ctx context.Context, db *gorm.DB, propertyID string, to models.PropertyStatus) (*models.Property, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	property, err := s.propertyRepo.FindByID(tx, propertyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			logger.CtxDebug(ctx, "status change skipped: property not found", "property_id", propertyID, "to", to)
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}

	from := property.Status
	if s.opts.StrictTransitions && !from.CanTransitionTo(to) {
		return nil, apperrors.ErrInvalidTransition("property", from, to)
	}

	property.Status = to
	property.UpdatedAt = s.clock.Now().UTC()
	if err := s.propertyRepo.Update(tx, property); err != nil {
		return nil, handlePropertyError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "property status changed", "property_id", propertyID, "from", from, "to", to)
	return property, nil
}

func applyPropertyRequest(p *models.Property, req *dto.PropertyRequest) error {
	p.Title = req.Title
	p.Description = req.Description
	p.Address = req.Address
	p.City = req.City
	p.State = req.State
	p.ZipCode = req.ZipCode
	p.PropertyType = req.PropertyType
	p.ListingType = req.ListingType
	p.Price = req.Price
	p.Bedrooms = req.Bedrooms
	p.Bathrooms = req.Bathrooms
	p.AreaSqm = req.AreaSqm
	return p.SetAmenities(req.Amenities)
}

func wrapList[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}

func wrapCount(count int64, err error) (int64, error) {
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
