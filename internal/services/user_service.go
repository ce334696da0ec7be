package services

import (
	"context"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/logger"
	"realestate_backend/internal/models"
	"realestate_backend/internal/repositories"
	"realestate_backend/internal/services/dto"
	"realestate_backend/pkg/apperrors"

	"github.com/juju/clock"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, db *gorm.DB, email, password string) (*models.User, error)

	GetByID(ctx context.Context, db *gorm.DB, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error)
	GetAll(ctx context.Context, db *gorm.DB) ([]models.User, error)
	GetByRole(ctx context.Context, db *gorm.DB, role models.UserRole) ([]models.User, error)
	Update(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*models.User, error)

	// Deactivate and Activate return (nil, nil) when the user does not exist.
	Deactivate(ctx context.Context, db *gorm.DB, userID string) (*models.User, error)
	Activate(ctx context.Context, db *gorm.DB, userID string) (*models.User, error)

	EmailExists(ctx context.Context, db *gorm.DB, email string) (bool, error)
	IsAdmin(ctx context.Context, db *gorm.DB, userID string) (bool, error)
	CountAll(ctx context.Context, db *gorm.DB) (int64, error)
}

type userService struct {
	userRepo repositories.UserRepository
	clock    clock.Clock
}

func NewUserService(userRepo repositories.UserRepository, clk clock.Clock) UserService {
	return &userService{
		userRepo: userRepo,
		clock:    orWallClock(clk),
	}
}

// Register creates an active account. Emails are compared exactly.
func (s *userService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*models.User, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	exists, err := s.userRepo.EmailExists(tx, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.clock.Now().UTC()
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         req.Role,
		IsActive:     true,
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleUserError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login fails with NotFound, then InvalidCredentials, then AccountDeactivated.
func (s *userService) Login(ctx context.Context, db *gorm.DB, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		return nil, handleUserError(err)
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		logger.CtxWarn(ctx, "login rejected: wrong password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		logger.CtxWarn(ctx, "login rejected: account deactivated", "user_id", user.ID)
		return nil, apperrors.ErrAccountDeactivated
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		return nil, handleUserError(err)
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context, db *gorm.DB) ([]models.User, error) {
	return wrapList(s.userRepo.FindAll(db))
}

func (s *userService) GetByRole(ctx context.Context, db *gorm.DB, role models.UserRole) ([]models.User, error) {
	return wrapList(s.userRepo.FindByRole(db, role))
}

func (s *userService) Update(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*models.User, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	user.UpdatedAt = s.clock.Now().UTC()

	if err := s.userRepo.Update(tx, user); err != nil {
		return nil, handleUserError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, db *gorm.DB, userID string) (*models.User, error) {
	return s.setActive(ctx, db, userID, false)
}

func (s *userService) Activate(ctx context.Context, db *gorm.DB, userID string) (*models.User, error) {
	return s.setActive(ctx, db, userID, true)
}

func (s *userService) EmailExists(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	exists, err := s.userRepo.EmailExists(db, email)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return exists, nil
}

// IsAdmin is false for a missing user.
func (s *userService) IsAdmin(ctx context.Context, db *gorm.DB, userID string) (bool, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}
	return auth.IsAdmin(user.Role), nil
}

func (s *userService) CountAll(ctx context.Context, db *gorm.DB) (int64, error) {
	return wrapCount(s.userRepo.CountAll(db))
}

func (s *userService) setActive(ctx context.Context, db *gorm.DB, userID string, active bool) (*models.User, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxDebug(ctx, "activation change skipped: user not found", "user_id", userID)
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}

	user.IsActive = active
	user.UpdatedAt = s.clock.Now().UTC()
	if err := s.userRepo.Update(tx, user); err != nil {
		return nil, handleUserError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user activation changed", "user_id", userID, "is_active", active)
	return user, nil
}
