package repositories

import (
	"errors"

	"realestate_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("property already favorited")
)

type FavoriteRepository interface {
	Create(db *gorm.DB, favorite *models.Favorite) error
	Delete(db *gorm.DB, userID, propertyID string) error
	FindByUserAndProperty(db *gorm.DB, userID, propertyID string) (*models.Favorite, error)
	Exists(db *gorm.DB, userID, propertyID string) (bool, error)
	FindPropertiesByUser(db *gorm.DB, userID string) ([]models.Property, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
}

type FavoriteRepositoryImpl struct{}

func NewFavoriteRepository() FavoriteRepository {
	return &FavoriteRepositoryImpl{}
}

func (r *FavoriteRepositoryImpl) Create(db *gorm.DB, favorite *models.Favorite) error {
	if err := db.Omit(clause.Associations).Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrFavoriteExists
		}
		return err
	}
	return nil
}

func (r *FavoriteRepositoryImpl) Delete(db *gorm.DB, userID, propertyID string) error {
	result := db.Where("user_id = ? AND property_id = ?", userID, propertyID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepositoryImpl) FindByUserAndProperty(db *gorm.DB, userID, propertyID string) (*models.Favorite, error) {
	var favorite models.Favorite
	err := db.Where("user_id = ? AND property_id = ?", userID, propertyID).First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepositoryImpl) Exists(db *gorm.DB, userID, propertyID string) (bool, error) {
	var count int64
	err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	return count > 0, err
}

// FindPropertiesByUser returns favorited properties, most recently favorited first.
func (r *FavoriteRepositoryImpl) FindPropertiesByUser(db *gorm.DB, userID string) ([]models.Property, error) {
	var properties []models.Property
	err := db.Model(&models.Property{}).
		Joins("JOIN favorites ON favorites.property_id = properties.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&properties).Error
	return properties, err
}

func (r *FavoriteRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
