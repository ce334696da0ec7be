package services

import (
	"context"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/models"
	"realestate_backend/internal/repositories"
	"realestate_backend/internal/services/dto"

	"gorm.io/gorm"
)

type DashboardService interface {
	Stats(ctx context.Context, db *gorm.DB, userID string, role models.UserRole) (*dto.DashboardStats, error)
	AdminStats(ctx context.Context, db *gorm.DB) (*dto.AdminDashboardStats, error)
}

type dashboardService struct {
	propertyRepo    repositories.PropertyRepository
	applicationRepo repositories.ApplicationRepository
	viewingRepo     repositories.ViewingRepository
	favoriteRepo    repositories.FavoriteRepository
	userRepo        repositories.UserRepository
}

func NewDashboardService(
	propertyRepo repositories.PropertyRepository,
	applicationRepo repositories.ApplicationRepository,
	viewingRepo repositories.ViewingRepository,
	favoriteRepo repositories.FavoriteRepository,
	userRepo repositories.UserRepository,
) DashboardService {
	return &dashboardService{
		propertyRepo:    propertyRepo,
		applicationRepo: applicationRepo,
		viewingRepo:     viewingRepo,
		favoriteRepo:    favoriteRepo,
		userRepo:        userRepo,
	}
}

// Stats shows listing activity to owners and agents, request activity to
// buyers and renters, and zeros to everyone else.
func (s *dashboardService) Stats(ctx context.Context, db *gorm.DB, userID string, role models.UserRole) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}
	var err error

	switch {
	case auth.IsSeller(role):
		if stats.PropertyCount, err = wrapCount(s.propertyRepo.CountByOwner(db, userID)); err != nil {
			return nil, err
		}
		if stats.PendingViewings, err = wrapCount(s.viewingRepo.CountPendingByOwner(db, userID)); err != nil {
			return nil, err
		}
		if stats.PendingApplications, err = wrapCount(s.applicationRepo.CountPendingByOwner(db, userID)); err != nil {
			return nil, err
		}
	case auth.IsSeeker(role):
		if stats.FavoritesCount, err = wrapCount(s.favoriteRepo.CountByUser(db, userID)); err != nil {
			return nil, err
		}
		if stats.ViewingRequestsCount, err = wrapCount(s.viewingRepo.CountByUser(db, userID)); err != nil {
			return nil, err
		}
		if stats.ApplicationsCount, err = wrapCount(s.applicationRepo.CountByUser(db, userID)); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

func (s *dashboardService) AdminStats(ctx context.Context, db *gorm.DB) (*dto.AdminDashboardStats, error) {
	pending, err := wrapCount(s.propertyRepo.CountByStatus(db, models.PropertyStatusPending))
	if err != nil {
		return nil, err
	}
	totalUsers, err := wrapCount(s.userRepo.CountAll(db))
	if err != nil {
		return nil, err
	}
	active, err := wrapCount(s.userRepo.CountActive(db))
	if err != nil {
		return nil, err
	}

	byRole := make(map[models.UserRole]int64)
	for _, role := range models.AllUserRoles() {
		if byRole[role], err = wrapCount(s.userRepo.CountByRole(db, role)); err != nil {
			return nil, err
		}
	}

	return &dto.AdminDashboardStats{
		PendingCount:      pending,
		TotalUsers:        totalUsers,
		ActiveUsers:       active,
		UsersByRole:       byRole,
		PendingProperties: dto.NewPropertyListResponse(pending).Properties,
	}, nil
}
