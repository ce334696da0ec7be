package repositories

import (
	"errors"
	"time"

	"realestate_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrViewingNotFound  = errors.New("viewing not found")
	ErrViewingDuplicate = errors.New("active viewing request already exists")
)

type ViewingRepository interface {
	Create(db *gorm.DB, viewing *models.PropertyViewing) error
	Update(db *gorm.DB, viewing *models.PropertyViewing) error
	FindByID(db *gorm.DB, id string) (*models.PropertyViewing, error)

	FindAll(db *gorm.DB) ([]models.PropertyViewing, error)
	FindByUser(db *gorm.DB, userID string) ([]models.PropertyViewing, error)
	FindByProperty(db *gorm.DB, propertyID string) ([]models.PropertyViewing, error)
	FindByPropertyOwner(db *gorm.DB, ownerID string) ([]models.PropertyViewing, error)
	FindByStatus(db *gorm.DB, status models.ViewingStatus) ([]models.PropertyViewing, error)
	FindPendingByOwner(db *gorm.DB, ownerID string) ([]models.PropertyViewing, error)
	FindUpcomingByUser(db *gorm.DB, userID string, now time.Time) ([]models.PropertyViewing, error)

	CountPendingByOwner(db *gorm.DB, ownerID string) (int64, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
	HasActiveViewing(db *gorm.DB, userID, propertyID string) (bool, error)
}

type ViewingRepositoryImpl struct{}

func NewViewingRepository() ViewingRepository {
	return &ViewingRepositoryImpl{}
}

func (r *ViewingRepositoryImpl) Create(db *gorm.DB, viewing *models.PropertyViewing) error {
	if err := db.Omit(clause.Associations).Create(viewing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrViewingDuplicate
		}
		return err
	}
	return nil
}

func (r *ViewingRepositoryImpl) Update(db *gorm.DB, viewing *models.PropertyViewing) error {
	err := db.Omit(clause.Associations).Save(viewing).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrViewingDuplicate
	}
	return err
}

func (r *ViewingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.PropertyViewing, error) {
	var viewing models.PropertyViewing
	err := db.Preload("Property.Owner").Preload("User").First(&viewing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrViewingNotFound
		}
		return nil, err
	}
	return &viewing, nil
}

func (r *ViewingRepositoryImpl) FindAll(db *gorm.DB) ([]models.PropertyViewing, error) {
	return r.find(db.Model(&models.PropertyViewing{}), "DESC")
}

func (r *ViewingRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.PropertyViewing, error) {
	return r.find(db.Where("property_viewings.user_id = ?", userID), "DESC")
}

func (r *ViewingRepositoryImpl) FindByProperty(db *gorm.DB, propertyID string) ([]models.PropertyViewing, error) {
	return r.find(db.Where("property_viewings.property_id = ?", propertyID), "DESC")
}

func (r *ViewingRepositoryImpl) FindByPropertyOwner(db *gorm.DB, ownerID string) ([]models.PropertyViewing, error) {
	return r.find(ownedBy(db, "property_viewings", ownerID), "DESC")
}

func (r *ViewingRepositoryImpl) FindByStatus(db *gorm.DB, status models.ViewingStatus) ([]models.PropertyViewing, error) {
	return r.find(db.Where("property_viewings.status = ?", status), "DESC")
}

// FindPendingByOwner lists the soonest requests first.
func (r *ViewingRepositoryImpl) FindPendingByOwner(db *gorm.DB, ownerID string) ([]models.PropertyViewing, error) {
	q := ownedBy(db, "property_viewings", ownerID).
		Where("property_viewings.status = ?", models.ViewingStatusPending)
	return r.find(q, "ASC")
}

func (r *ViewingRepositoryImpl) FindUpcomingByUser(db *gorm.DB, userID string, now time.Time) ([]models.PropertyViewing, error) {
	q := db.Where("property_viewings.user_id = ?", userID).
		Where("property_viewings.status = ?", models.ViewingStatusApproved).
		Where("property_viewings.viewing_date > ?", now)
	return r.find(q, "ASC")
}

func (r *ViewingRepositoryImpl) CountPendingByOwner(db *gorm.DB, ownerID string) (int64, error) {
	var count int64
	err := ownedBy(db.Model(&models.PropertyViewing{}), "property_viewings", ownerID).
		Where("property_viewings.status = ?", models.ViewingStatusPending).
		Count(&count).Error
	return count, err
}

func (r *ViewingRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.PropertyViewing{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// HasActiveViewing reports a PENDING or APPROVED request for the pair.
func (r *ViewingRepositoryImpl) HasActiveViewing(db *gorm.DB, userID, propertyID string) (bool, error) {
	var count int64
	err := db.Model(&models.PropertyViewing{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Where("status IN ?", models.ActiveViewingStatuses()).
		Count(&count).Error
	return count > 0, err
}

func (r *ViewingRepositoryImpl) find(q *gorm.DB, direction string) ([]models.PropertyViewing, error) {
	var viewings []models.PropertyViewing
	err := q.Preload("Property").Preload("User").
		Order("property_viewings.viewing_date " + direction).
		Find(&viewings).Error
	return viewings, err
}
