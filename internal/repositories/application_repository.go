package repositories

import (
	"errors"

	"realestate_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrApplicationDuplicate = errors.New("active application already exists")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.Application) error
	Update(db *gorm.DB, application *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)

	FindAll(db *gorm.DB) ([]models.Application, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Application, error)
	FindByProperty(db *gorm.DB, propertyID string) ([]models.Application, error)
	FindByPropertyOwner(db *gorm.DB, ownerID string) ([]models.Application, error)
	FindByStatus(db *gorm.DB, status models.ApplicationStatus) ([]models.Application, error)
	FindPendingByOwner(db *gorm.DB, ownerID string) ([]models.Application, error)

	CountPendingByOwner(db *gorm.DB, ownerID string) (int64, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
	HasActiveApplication(db *gorm.DB, userID, propertyID string) (bool, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.Application) error {
	if err := db.Omit(clause.Associations).Create(application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationDuplicate
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Update(db *gorm.DB, application *models.Application) error {
	err := db.Omit(clause.Associations).Save(application).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrApplicationDuplicate
	}
	return err
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.Preload("Property.Owner").Preload("User").First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindAll(db *gorm.DB) ([]models.Application, error) {
	return r.find(db.Model(&models.Application{}))
}

func (r *ApplicationRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Application, error) {
	return r.find(db.Where("applications.user_id = ?", userID))
}

func (r *ApplicationRepositoryImpl) FindByProperty(db *gorm.DB, propertyID string) ([]models.Application, error) {
	return r.find(db.Where("applications.property_id = ?", propertyID))
}

func (r *ApplicationRepositoryImpl) FindByPropertyOwner(db *gorm.DB, ownerID string) ([]models.Application, error) {
	return r.find(ownedBy(db, "applications", ownerID))
}

func (r *ApplicationRepositoryImpl) FindByStatus(db *gorm.DB, status models.ApplicationStatus) ([]models.Application, error) {
	return r.find(db.Where("applications.status = ?", status))
}

func (r *ApplicationRepositoryImpl) FindPendingByOwner(db *gorm.DB, ownerID string) ([]models.Application, error) {
	return r.find(ownedBy(db, "applications", ownerID).
		Where("applications.status = ?", models.ApplicationStatusPending))
}

func (r *ApplicationRepositoryImpl) CountPendingByOwner(db *gorm.DB, ownerID string) (int64, error) {
	var count int64
	err := ownedBy(db.Model(&models.Application{}), "applications", ownerID).
		Where("applications.status = ?", models.ApplicationStatusPending).
		Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// HasActiveApplication reports a PENDING, UNDER_REVIEW or APPROVED application for the pair.
func (r *ApplicationRepositoryImpl) HasActiveApplication(db *gorm.DB, userID, propertyID string) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Where("status IN ?", models.ActiveApplicationStatuses()).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) find(q *gorm.DB) ([]models.Application, error) {
	var applications []models.Application
	err := q.Preload("Property").Preload("User").
		Order("applications.created_at DESC").
		Find(&applications).Error
	return applications, err
}

// ownedBy restricts a request table to rows whose property belongs to ownerID.
func ownedBy(db *gorm.DB, table, ownerID string) *gorm.DB {
	return db.Joins("JOIN properties ON properties.id = "+table+".property_id").
		Where("properties.owner_id = ?", ownerID)
}
