package services_test

import (
	"context"
	"testing"

	"realestate_backend/internal/models"
	"realestate_backend/internal/services"
	"realestate_backend/internal/services/dto"
	"realestate_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_StatsPerRole(t *testing.T) {
	env := testutil.NewEnv(t)
	svcs := env.Services(services.Options{})
	ctx := context.Background()

	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	admin := env.CreateUser(t, models.UserRoleAdmin)
	first := env.CreateProperty(t, owner)
	second := env.CreateProperty(t, owner, testutil.WithStatus(models.PropertyStatusPending))

	env.CreateApplication(t, first, buyer, models.ApplicationStatusPending)
	env.CreateApplication(t, second, buyer, models.ApplicationStatusRejected)
	env.CreateViewing(t, first, buyer, env.Clock.Now().Add(day), models.ViewingStatusPending)
	_, err := svcs.FavoriteService.Add(ctx, env.DB, buyer.ID, first.ID)
	require.NoError(t, err)

	ownerStats, err := svcs.DashboardService.Stats(ctx, env.DB, owner.ID, owner.Role)
	require.NoError(t, err)
	assert.Equal(t, &dto.DashboardStats{
		PropertyCount:       2,
		PendingViewings:     1,
		PendingApplications: 1,
	}, ownerStats)

	buyerStats, err := svcs.DashboardService.Stats(ctx, env.DB, buyer.ID, buyer.Role)
	require.NoError(t, err)
	assert.Equal(t, &dto.DashboardStats{
		FavoritesCount:       1,
		ViewingRequestsCount: 1,
		ApplicationsCount:    2,
	}, buyerStats)

	adminStats, err := svcs.DashboardService.Stats(ctx, env.DB, admin.ID, admin.Role)
	require.NoError(t, err)
	assert.Equal(t, &dto.DashboardStats{}, adminStats)
}

func TestDashboardService_AdminStats(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := env.Services(services.Options{}).DashboardService
	ctx := context.Background()

	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	env.CreateUser(t, models.UserRoleBuyer)
	env.CreateProperty(t, owner)
	pending := env.CreateProperty(t, owner, testutil.WithStatus(models.PropertyStatusPending))

	_, err := env.Services(services.Options{}).UserService.Deactivate(ctx, env.DB, buyer.ID)
	require.NoError(t, err)

	stats, err := svc.AdminStats(ctx, env.DB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.PendingCount)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.ActiveUsers)
	assert.Equal(t, int64(2), stats.UsersByRole[models.UserRoleBuyer])
	assert.Equal(t, int64(1), stats.UsersByRole[models.UserRoleOwner])
	assert.Zero(t, stats.UsersByRole[models.UserRoleAdmin])
	require.Len(t, stats.PendingProperties, 1)
	assert.Equal(t, pending.ID, stats.PendingProperties[0].ID)
	require.NotNil(t, stats.PendingProperties[0].Owner)
}
