package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestPropertyStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to PropertyStatus
		want     bool
	}{
		{PropertyStatusPending, PropertyStatusApproved, true},
		{PropertyStatusPending, PropertyStatusRejected, true},
		{PropertyStatusApproved, PropertyStatusSold, true},
		{PropertyStatusApproved, PropertyStatusRented, true},
		{PropertyStatusPending, PropertyStatusSold, false},
		{PropertyStatusRejected, PropertyStatusApproved, false},
		{PropertyStatusSold, PropertyStatusRented, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApplicationStatus_Transitions(t *testing.T) {
	assert.True(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusUnderReview))
	assert.True(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusWithdrawn))
	assert.True(t, ApplicationStatusUnderReview.CanTransitionTo(ApplicationStatusApproved))
	assert.False(t, ApplicationStatusUnderReview.CanTransitionTo(ApplicationStatusWithdrawn))
	assert.False(t, ApplicationStatusApproved.CanTransitionTo(ApplicationStatusRejected))

	for _, s := range []ApplicationStatus{ApplicationStatusApproved, ApplicationStatusRejected, ApplicationStatusWithdrawn} {
		assert.True(t, s.IsTerminal(), s)
	}
	assert.False(t, ApplicationStatusPending.IsTerminal())
}

func TestViewingStatus_Transitions(t *testing.T) {
	assert.True(t, ViewingStatusPending.CanTransitionTo(ViewingStatusCancelled))
	assert.True(t, ViewingStatusApproved.CanTransitionTo(ViewingStatusCompleted))
	assert.False(t, ViewingStatusPending.CanTransitionTo(ViewingStatusCompleted))
	assert.False(t, ViewingStatusCompleted.CanTransitionTo(ViewingStatusCancelled))
	assert.True(t, ViewingStatusRejected.IsTerminal())
}

func TestActiveStatuses(t *testing.T) {
	assert.True(t, ApplicationStatusPending.IsActive())
	assert.True(t, ApplicationStatusUnderReview.IsActive())
	assert.True(t, ApplicationStatusApproved.IsActive())
	assert.False(t, ApplicationStatusRejected.IsActive())
	assert.False(t, ApplicationStatusWithdrawn.IsActive())

	assert.True(t, ViewingStatusPending.IsActive())
	assert.True(t, ViewingStatusApproved.IsActive())
	assert.False(t, ViewingStatusCompleted.IsActive())
	assert.False(t, ViewingStatusCancelled.IsActive())
	assert.False(t, ViewingStatusRejected.IsActive())
}

func TestApplicationTypeFor(t *testing.T) {
	assert.Equal(t, ApplicationTypePurchase, ApplicationTypeFor(ListingTypeSale))
	assert.Equal(t, ApplicationTypeRental, ApplicationTypeFor(ListingTypeRent))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, UserRoleRenter.IsValid())
	assert.False(t, UserRole("GUEST").IsValid())
	assert.True(t, PropertyTypeCommercial.IsValid())
	assert.False(t, PropertyType("castle").IsValid())
	assert.Len(t, AllPropertyTypes(), 7)
	assert.Len(t, AllListingTypes(), 2)
}

func TestProperty_Amenities(t *testing.T) {
	p := &Property{}
	list, err := p.AmenityList()
	assert.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, p.SetAmenities([]string{"pool", "garage"}))
	list, err = p.AmenityList()
	assert.NoError(t, err)
	assert.Equal(t, []string{"pool", "garage"}, list)

	assert.NoError(t, p.SetAmenities(nil))
	assert.Equal(t, "[]", string(p.Amenities))

	p.Amenities = datatypes.JSON(`{"pool":true}`)
	list, err = p.AmenityList()
	assert.Error(t, err)
	assert.Empty(t, list)
}

func TestProperty_IsOwnedBy(t *testing.T) {
	p := &Property{OwnerID: "owner-1"}
	assert.True(t, p.IsOwnedBy("owner-1"))
	assert.False(t, p.IsOwnedBy("someone-else"))

	var missing *Property
	assert.False(t, missing.IsOwnedBy("owner-1"))
}
