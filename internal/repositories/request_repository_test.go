package repositories_test

import (
	"testing"
	"time"

	"realestate_backend/internal/models"
	"realestate_backend/internal/repositories"
	"realestate_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepository_ActivePairIsUnique(t *testing.T) {
	env := testutil.NewEnv(t)
	repo := repositories.NewApplicationRepository()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	property := env.CreateProperty(t, owner)

	first := env.CreateApplication(t, property, buyer, models.ApplicationStatusUnderReview)

	active, err := repo.HasActiveApplication(env.DB, buyer.ID, property.ID)
	require.NoError(t, err)
	assert.True(t, active)

	second := &models.Application{
		PropertyID:      property.ID,
		UserID:          buyer.ID,
		ApplicationType: models.ApplicationTypePurchase,
		Status:          models.ApplicationStatusPending,
	}
	assert.ErrorIs(t, repo.Create(env.DB, second), repositories.ErrApplicationDuplicate)

	first.Status = models.ApplicationStatusRejected
	require.NoError(t, repo.Update(env.DB, first))

	active, err = repo.HasActiveApplication(env.DB, buyer.ID, property.ID)
	require.NoError(t, err)
	assert.False(t, active)

	second.ID = ""
	assert.NoError(t, repo.Create(env.DB, second), "a closed application frees the pair")
}

func TestApplicationRepository_OwnerQueries(t *testing.T) {
	env := testutil.NewEnv(t)
	repo := repositories.NewApplicationRepository()
	owner := env.CreateUser(t, models.UserRoleOwner)
	other := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	renter := env.CreateUser(t, models.UserRoleRenter)

	mine := env.CreateProperty(t, owner)
	theirs := env.CreateProperty(t, other)

	older := env.CreateApplication(t, mine, buyer, models.ApplicationStatusPending)
	newer := env.CreateApplication(t, mine, renter, models.ApplicationStatusApproved)
	env.CreateApplication(t, theirs, buyer, models.ApplicationStatusPending)

	received, err := repo.FindByPropertyOwner(env.DB, owner.ID)
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, newer.ID, received[0].ID, "newest first")
	assert.Equal(t, older.ID, received[1].ID)
	require.NotNil(t, received[0].Property)
	require.NotNil(t, received[0].User)
	assert.Equal(t, renter.ID, received[0].User.ID)

	pending, err := repo.FindPendingByOwner(env.DB, owner.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, older.ID, pending[0].ID)

	count, err := repo.CountPendingByOwner(env.DB, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByUser(env.DB, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	found, err := repo.FindByID(env.DB, older.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Property)
	require.NotNil(t, found.Property.Owner)
	assert.Equal(t, owner.ID, found.Property.Owner.ID)

	_, err = repo.FindByID(env.DB, "missing")
	assert.ErrorIs(t, err, repositories.ErrApplicationNotFound)
}

func TestViewingRepository_Ordering(t *testing.T) {
	env := testutil.NewEnv(t)
	repo := repositories.NewViewingRepository()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	renter := env.CreateUser(t, models.UserRoleRenter)
	first := env.CreateProperty(t, owner)
	second := env.CreateProperty(t, owner)

	day := 24 * time.Hour
	late := env.CreateViewing(t, first, buyer, testutil.Epoch.Add(5*day), models.ViewingStatusPending)
	soon := env.CreateViewing(t, second, buyer, testutil.Epoch.Add(2*day), models.ViewingStatusPending)
	env.CreateViewing(t, first, renter, testutil.Epoch.Add(3*day), models.ViewingStatusRejected)

	pending, err := repo.FindPendingByOwner(env.DB, owner.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, soon.ID, pending[0].ID, "soonest first")
	assert.Equal(t, late.ID, pending[1].ID)

	mine, err := repo.FindByUser(env.DB, buyer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, late.ID, mine[0].ID, "latest viewing date first")

	received, err := repo.FindByPropertyOwner(env.DB, owner.ID)
	require.NoError(t, err)
	assert.Len(t, received, 3)

	count, err := repo.CountPendingByOwner(env.DB, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestViewingRepository_UpcomingAndUniqueness(t *testing.T) {
	env := testutil.NewEnv(t)
	repo := repositories.NewViewingRepository()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	a := env.CreateProperty(t, owner)
	b := env.CreateProperty(t, owner)
	c := env.CreateProperty(t, owner)

	now := testutil.Epoch.Add(time.Hour)
	past := env.CreateViewing(t, a, buyer, now.Add(-time.Hour), models.ViewingStatusApproved)
	later := env.CreateViewing(t, b, buyer, now.Add(48*time.Hour), models.ViewingStatusApproved)
	sooner := env.CreateViewing(t, c, buyer, now.Add(24*time.Hour), models.ViewingStatusApproved)

	upcoming, err := repo.FindUpcomingByUser(env.DB, buyer.ID, now)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, sooner.ID, upcoming[0].ID)
	assert.Equal(t, later.ID, upcoming[1].ID)
	assert.NotEqual(t, past.ID, upcoming[0].ID)

	duplicate := &models.PropertyViewing{
		PropertyID:  b.ID,
		UserID:      buyer.ID,
		ViewingDate: now.Add(72 * time.Hour),
		Status:      models.ViewingStatusPending,
	}
	assert.ErrorIs(t, repo.Create(env.DB, duplicate), repositories.ErrViewingDuplicate)

	active, err := repo.HasActiveViewing(env.DB, buyer.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestFavoriteRepository(t *testing.T) {
	env := testutil.NewEnv(t)
	repo := repositories.NewFavoriteRepository()
	owner := env.CreateUser(t, models.UserRoleOwner)
	renter := env.CreateUser(t, models.UserRoleRenter)
	first := env.CreateProperty(t, owner)
	second := env.CreateProperty(t, owner)

	require.NoError(t, repo.Create(env.DB, &models.Favorite{UserID: renter.ID, PropertyID: second.ID}))
	env.Tick()
	require.NoError(t, repo.Create(env.DB, &models.Favorite{UserID: renter.ID, PropertyID: first.ID}))

	err := repo.Create(env.DB, &models.Favorite{UserID: renter.ID, PropertyID: first.ID})
	assert.ErrorIs(t, err, repositories.ErrFavoriteExists)

	properties, err := repo.FindPropertiesByUser(env.DB, renter.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, ids(properties), "most recently favorited first")

	count, err := repo.CountByUser(env.DB, renter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	favorite, err := repo.FindByUserAndProperty(env.DB, renter.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, favorite.PropertyID)

	require.NoError(t, repo.Delete(env.DB, renter.ID, first.ID))
	_, err = repo.FindByUserAndProperty(env.DB, renter.ID, first.ID)
	assert.ErrorIs(t, err, repositories.ErrFavoriteNotFound)
	assert.ErrorIs(t, repo.Delete(env.DB, renter.ID, first.ID), repositories.ErrFavoriteNotFound)

	exists, err := repo.Exists(env.DB, renter.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository(t *testing.T) {
	env := testutil.NewEnv(t)
	repo := repositories.NewUserRepository()
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	env.CreateUser(t, models.UserRoleOwner)

	found, err := repo.FindByEmail(env.DB, buyer.Email)
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, found.ID)

	exists, err := repo.EmailExists(env.DB, buyer.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByID(env.DB, "missing")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	clash := &models.User{Name: "Clash", Email: buyer.Email, PasswordHash: "x", Role: models.UserRoleBuyer, IsActive: true}
	assert.ErrorIs(t, repo.Create(env.DB, clash), repositories.ErrUserAlreadyExists)

	owners, err := repo.FindByRole(env.DB, models.UserRoleOwner)
	require.NoError(t, err)
	assert.Len(t, owners, 1)

	total, err := repo.CountAll(env.DB)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
