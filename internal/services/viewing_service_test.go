package services_test

import (
	"context"
	"testing"
	"time"

	"realestate_backend/internal/models"
	"realestate_backend/internal/services"
	"realestate_backend/internal/testutil"
	"realestate_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

// A completed viewing no longer blocks a new request for the same pair.
func TestViewingWorkflow_RequestApproveComplete(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := env.Services(services.Options{}).ViewingService
	ctx := context.Background()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	property := env.CreateProperty(t, owner)

	viewing, err := svc.Request(ctx, env.DB, property.ID, buyer.ID, env.Clock.Now().Add(day), "Saturday morning?")
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusPending, viewing.Status)
	assert.Equal(t, "Saturday morning?", viewing.Message)

	_, err = svc.Request(ctx, env.DB, property.ID, buyer.ID, env.Clock.Now().Add(2*day), "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateViewing)

	approved, err := svc.Approve(ctx, env.DB, viewing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusApproved, approved.Status)

	_, err = svc.Request(ctx, env.DB, property.ID, buyer.ID, env.Clock.Now().Add(2*day), "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateViewing, "approved is still active")

	completed, err := svc.Complete(ctx, env.DB, viewing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusCompleted, completed.Status)

	again, err := svc.Request(ctx, env.DB, property.ID, buyer.ID, env.Clock.Now().Add(3*day), "")
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusPending, again.Status)
}

func TestViewingService_DateMustBeInFuture(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := env.Services(services.Options{}).ViewingService
	ctx := context.Background()
	owner := env.CreateUser(t, models.UserRoleOwner)
	renter := env.CreateUser(t, models.UserRoleRenter)
	property := env.CreateProperty(t, owner)
	now := env.Clock.Now()

	_, err := svc.Request(ctx, env.DB, property.ID, renter.ID, now, "")
	assert.ErrorIs(t, err, apperrors.ErrViewingDateNotInFuture, "now is not in the future")

	_, err = svc.Request(ctx, env.DB, property.ID, renter.ID, now.Add(-time.Minute), "")
	assert.ErrorIs(t, err, apperrors.ErrViewingDateNotInFuture)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidArgument))

	viewing, err := svc.Request(ctx, env.DB, property.ID, renter.ID, now.Add(time.Second), "")
	require.NoError(t, err)
	assert.True(t, viewing.ViewingDate.Equal(now.Add(time.Second)))
}

func TestViewingService_RequestCheckOrder(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := env.Services(services.Options{}).ViewingService
	ctx := context.Background()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	property := env.CreateProperty(t, owner)
	past := env.Clock.Now().Add(-day)

	_, err := svc.Request(ctx, env.DB, "missing", buyer.ID, past, "")
	assert.ErrorIs(t, err, apperrors.ErrPropertyOrUserNotFound, "existence is checked before the date")

	_, err = svc.Request(ctx, env.DB, property.ID, "missing", past, "")
	assert.ErrorIs(t, err, apperrors.ErrPropertyOrUserNotFound)

	env.CreateViewing(t, property, buyer, env.Clock.Now().Add(day), models.ViewingStatusPending)
	_, err = svc.Request(ctx, env.DB, property.ID, buyer.ID, past, "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateViewing, "duplicates are checked first")
}

func TestViewingService_InactiveStatusesDoNotBlock(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := env.Services(services.Options{}).ViewingService
	ctx := context.Background()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	property := env.CreateProperty(t, owner)

	for _, closed := range []models.ViewingStatus{models.ViewingStatusRejected, models.ViewingStatusCancelled, models.ViewingStatusCompleted} {
		env.CreateViewing(t, property, buyer, env.Clock.Now().Add(day), closed)
	}

	_, err := svc.Request(ctx, env.DB, property.ID, buyer.ID, env.Clock.Now().Add(day), "")
	assert.NoError(t, err)
}

func TestViewingService_ReopenBlockedByActiveSibling(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := env.Services(services.Options{}).ViewingService
	ctx := context.Background()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	property := env.CreateProperty(t, owner)
	completed := env.CreateViewing(t, property, buyer, env.Clock.Now().Add(day), models.ViewingStatusCompleted)
	env.CreateViewing(t, property, buyer, env.Clock.Now().Add(2*day), models.ViewingStatusPending)

	_, err := svc.Approve(ctx, env.DB, completed.ID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateViewing)

	cancelled, err := svc.Cancel(ctx, env.DB, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusCancelled, cancelled.Status)
}

func TestViewingService_PermissiveAndStrict(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	property := env.CreateProperty(t, owner)

	loose := env.Services(services.Options{}).ViewingService
	pending := env.CreateViewing(t, property, buyer, env.Clock.Now().Add(day), models.ViewingStatusPending)
	completed, err := loose.Complete(ctx, env.DB, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusCompleted, completed.Status, "permissive mode completes a pending viewing")

	strict := env.Services(services.Options{StrictTransitions: true}).ViewingService
	other := env.CreateViewing(t, property, buyer, env.Clock.Now().Add(day), models.ViewingStatusPending)
	_, err = strict.Complete(ctx, env.DB, other.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidStatus))

	cancelled, err := strict.Cancel(ctx, env.DB, other.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusCancelled, cancelled.Status)

	for _, change := range []func(context.Context, string) (*models.PropertyViewing, error){
		func(ctx context.Context, id string) (*models.PropertyViewing, error) { return strict.Approve(ctx, env.DB, id) },
		func(ctx context.Context, id string) (*models.PropertyViewing, error) { return strict.Reject(ctx, env.DB, id) },
		func(ctx context.Context, id string) (*models.PropertyViewing, error) { return strict.Cancel(ctx, env.DB, id) },
		func(ctx context.Context, id string) (*models.PropertyViewing, error) { return strict.Complete(ctx, env.DB, id) },
	} {
		viewing, err := change(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, viewing)
	}
}

func TestViewingService_Upcoming(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := env.Services(services.Options{}).ViewingService
	ctx := context.Background()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	a := env.CreateProperty(t, owner)
	b := env.CreateProperty(t, owner)
	c := env.CreateProperty(t, owner)

	start := env.Clock.Now()
	inTwoDays := env.CreateViewing(t, a, buyer, start.Add(2*day), models.ViewingStatusApproved)
	tomorrow := env.CreateViewing(t, b, buyer, start.Add(day), models.ViewingStatusApproved)
	env.CreateViewing(t, c, buyer, start.Add(day), models.ViewingStatusPending)

	upcoming, err := svc.GetUpcoming(ctx, env.DB, buyer.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, tomorrow.ID, upcoming[0].ID)
	assert.Equal(t, inTwoDays.ID, upcoming[1].ID)

	env.Clock.Advance(36 * time.Hour)
	upcoming, err = svc.GetUpcoming(ctx, env.DB, buyer.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1, "past viewings drop out as time moves on")
	assert.Equal(t, inTwoDays.ID, upcoming[0].ID)
}

func TestViewingService_Predicates(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := env.Services(services.Options{}).ViewingService
	ctx := context.Background()
	owner := env.CreateUser(t, models.UserRoleOwner)
	buyer := env.CreateUser(t, models.UserRoleBuyer)
	property := env.CreateProperty(t, owner)
	viewing := env.CreateViewing(t, property, buyer, env.Clock.Now().Add(day), models.ViewingStatusPending)

	isOwner, err := svc.IsPropertyOwner(ctx, env.DB, viewing.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, isOwner)

	isOwner, err = svc.IsPropertyOwner(ctx, env.DB, viewing.ID, buyer.ID)
	require.NoError(t, err)
	assert.False(t, isOwner)

	isRequester, err := svc.IsRequester(ctx, env.DB, viewing.ID, buyer.ID)
	require.NoError(t, err)
	assert.True(t, isRequester)

	isRequester, err = svc.IsRequester(ctx, env.DB, "missing", buyer.ID)
	require.NoError(t, err)
	assert.False(t, isRequester)

	count, err := svc.CountPendingForOwner(ctx, env.DB, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = svc.CountUserViewings(ctx, env.DB, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
