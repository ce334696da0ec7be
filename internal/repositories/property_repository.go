package repositories

import (
	"errors"
	"strings"

	"realestate_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPropertyNotFound = errors.New("property not found")

// PropertyFilter combines optional criteria with AND semantics.
// Zero values mean "no constraint".
type PropertyFilter struct {
	City         string
	PropertyType models.PropertyType
	ListingType  models.ListingType
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
}

type PropertyRepository interface {
	Create(db *gorm.DB, property *models.Property) error
	Update(db *gorm.DB, property *models.Property) error
	Delete(db *gorm.DB, id string) error
	FindByID(db *gorm.DB, id string) (*models.Property, error)
	Exists(db *gorm.DB, id string) (bool, error)

	FindAll(db *gorm.DB) ([]models.Property, error)
	FindAllApproved(db *gorm.DB) ([]models.Property, error)
	FindByOwner(db *gorm.DB, ownerID string) ([]models.Property, error)
	FindByStatus(db *gorm.DB, status models.PropertyStatus) ([]models.Property, error)

	// Public queries, pinned to APPROVED.
	FindByListingType(db *gorm.DB, listingType models.ListingType) ([]models.Property, error)
	FindByPropertyType(db *gorm.DB, propertyType models.PropertyType) ([]models.Property, error)
	FindByCity(db *gorm.DB, city string) ([]models.Property, error)
	FindByPriceRange(db *gorm.DB, minPrice, maxPrice float64) ([]models.Property, error)
	FindByMinBedrooms(db *gorm.DB, bedrooms int) ([]models.Property, error)
	Search(db *gorm.DB, filter PropertyFilter) ([]models.Property, error)

	CountByOwner(db *gorm.DB, ownerID string) (int64, error)
	CountByStatus(db *gorm.DB, status models.PropertyStatus) (int64, error)
}

type PropertyRepositoryImpl struct{}

func NewPropertyRepository() PropertyRepository {
	return &PropertyRepositoryImpl{}
}

func (r *PropertyRepositoryImpl) Create(db *gorm.DB, property *models.Property) error {
	return db.Omit(clause.Associations).Create(property).Error
}

func (r *PropertyRepositoryImpl) Update(db *gorm.DB, property *models.Property) error {
	return db.Omit(clause.Associations).Save(property).Error
}

// Delete removes the property together with its applications, viewings and favorites.
func (r *PropertyRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if err := db.Where("property_id = ?", id).Delete(&models.Application{}).Error; err != nil {
		return err
	}
	if err := db.Where("property_id = ?", id).Delete(&models.PropertyViewing{}).Error; err != nil {
		return err
	}
	if err := db.Where("property_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Property{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Property, error) {
	var property models.Property
	if err := db.Preload("Owner").First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepositoryImpl) Exists(db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.Model(&models.Property{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PropertyRepositoryImpl) FindAll(db *gorm.DB) ([]models.Property, error) {
	var properties []models.Property
	err := db.Preload("Owner").Order("created_at DESC").Find(&properties).Error
	return properties, err
}

func (r *PropertyRepositoryImpl) FindAllApproved(db *gorm.DB) ([]models.Property, error) {
	return r.findApproved(db, func(q *gorm.DB) *gorm.DB { return q })
}

func (r *PropertyRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string) ([]models.Property, error) {
	var properties []models.Property
	err := db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

func (r *PropertyRepositoryImpl) FindByStatus(db *gorm.DB, status models.PropertyStatus) ([]models.Property, error) {
	var properties []models.Property
	err := db.Preload("Owner").Where("status = ?", status).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

func (r *PropertyRepositoryImpl) FindByListingType(db *gorm.DB, listingType models.ListingType) ([]models.Property, error) {
	return r.findApproved(db, func(q *gorm.DB) *gorm.DB {
		return q.Where("listing_type = ?", listingType)
	})
}

func (r *PropertyRepositoryImpl) FindByPropertyType(db *gorm.DB, propertyType models.PropertyType) ([]models.Property, error) {
	return r.findApproved(db, func(q *gorm.DB) *gorm.DB {
		return q.Where("property_type = ?", propertyType)
	})
}

func (r *PropertyRepositoryImpl) FindByCity(db *gorm.DB, city string) ([]models.Property, error) {
	return r.findApproved(db, func(q *gorm.DB) *gorm.DB {
		return whereCityContains(q, city)
	})
}

// FindByPriceRange is inclusive on both ends and ordered by price ascending.
func (r *PropertyRepositoryImpl) FindByPriceRange(db *gorm.DB, minPrice, maxPrice float64) ([]models.Property, error) {
	var properties []models.Property
	err := db.Where("status = ?", models.PropertyStatusApproved).
		Where("price BETWEEN ? AND ?", minPrice, maxPrice).
		Order("price ASC").
		Find(&properties).Error
	return properties, err
}

func (r *PropertyRepositoryImpl) FindByMinBedrooms(db *gorm.DB, bedrooms int) ([]models.Property, error) {
	return r.findApproved(db, func(q *gorm.DB) *gorm.DB {
		return q.Where("bedrooms >= ?", bedrooms)
	})
}

func (r *PropertyRepositoryImpl) Search(db *gorm.DB, filter PropertyFilter) ([]models.Property, error) {
	return r.findApproved(db, func(q *gorm.DB) *gorm.DB {
		if city := strings.TrimSpace(filter.City); city != "" {
			q = whereCityContains(q, city)
		}
		if filter.PropertyType != "" {
			q = q.Where("property_type = ?", filter.PropertyType)
		}
		if filter.ListingType != "" {
			q = q.Where("listing_type = ?", filter.ListingType)
		}
		if filter.MinPrice != nil {
			q = q.Where("price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			q = q.Where("price <= ?", *filter.MaxPrice)
		}
		if filter.MinBedrooms != nil {
			q = q.Where("bedrooms >= ?", *filter.MinBedrooms)
		}
		return q
	})
}

func (r *PropertyRepositoryImpl) CountByOwner(db *gorm.DB, ownerID string) (int64, error) {
	var count int64
	err := db.Model(&models.Property{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *PropertyRepositoryImpl) CountByStatus(db *gorm.DB, status models.PropertyStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Property{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *PropertyRepositoryImpl) findApproved(db *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]models.Property, error) {
	var properties []models.Property
	q := db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusApproved)
	err := scope(q).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// whereCityContains is a portable case-insensitive substring match.
func whereCityContains(q *gorm.DB, city string) *gorm.DB {
	return q.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
}
