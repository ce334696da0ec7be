package repositories

import (
	"errors"

	"realestate_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	EmailExists(db *gorm.DB, email string) (bool, error)
	FindAll(db *gorm.DB) ([]models.User, error)
	FindByRole(db *gorm.DB, role models.UserRole) ([]models.User, error)
	CountActive(db *gorm.DB) (int64, error)
	CountAll(db *gorm.DB) (int64, error)
	CountByRole(db *gorm.DB, role models.UserRole) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	err := db.Omit(clause.Associations).Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail matches the address exactly.
func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) EmailExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) FindAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) FindByRole(db *gorm.DB, role models.UserRole) ([]models.User, error) {
	var users []models.User
	err := db.Where("role = ?", role).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
