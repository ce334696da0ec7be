package models

type UserRole string
type PropertyStatus string
type PropertyType string
type ListingType string
type ApplicationStatus string
type ApplicationType string
type ViewingStatus string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleOwner  UserRole = "OWNER"
	UserRoleAgent  UserRole = "AGENT"
	UserRoleBuyer  UserRole = "BUYER"
	UserRoleRenter UserRole = "RENTER"

	PropertyStatusPending  PropertyStatus = "PENDING"
	PropertyStatusApproved PropertyStatus = "APPROVED"
	PropertyStatusRejected PropertyStatus = "REJECTED"
	PropertyStatusSold     PropertyStatus = "SOLD"
	PropertyStatusRented   PropertyStatus = "RENTED"

	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeCondo      PropertyType = "CONDO"
	PropertyTypeTownhouse  PropertyType = "TOWNHOUSE"
	PropertyTypeVilla      PropertyType = "VILLA"
	PropertyTypeLand       PropertyType = "LAND"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"

	ListingTypeSale ListingType = "SALE"
	ListingTypeRent ListingType = "RENT"

	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatus = "APPROVED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"

	ApplicationTypePurchase ApplicationType = "PURCHASE"
	ApplicationTypeRental   ApplicationType = "RENTAL"

	ViewingStatusPending   ViewingStatus = "PENDING"
	ViewingStatusApproved  ViewingStatus = "APPROVED"
	ViewingStatusRejected  ViewingStatus = "REJECTED"
	ViewingStatusCompleted ViewingStatus = "COMPLETED"
	ViewingStatusCancelled ViewingStatus = "CANCELLED"
)

func AllUserRoles() []UserRole {
	return []UserRole{UserRoleAdmin, UserRoleOwner, UserRoleAgent, UserRoleBuyer, UserRoleRenter}
}

func AllPropertyStatuses() []PropertyStatus {
	return []PropertyStatus{
		PropertyStatusPending, PropertyStatusApproved, PropertyStatusRejected,
		PropertyStatusSold, PropertyStatusRented,
	}
}

func AllPropertyTypes() []PropertyType {
	return []PropertyType{
		PropertyTypeHouse, PropertyTypeApartment, PropertyTypeCondo, PropertyTypeTownhouse,
		PropertyTypeVilla, PropertyTypeLand, PropertyTypeCommercial,
	}
}

func AllListingTypes() []ListingType {
	return []ListingType{ListingTypeSale, ListingTypeRent}
}

func AllApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationStatusPending, ApplicationStatusUnderReview, ApplicationStatusApproved,
		ApplicationStatusRejected, ApplicationStatusWithdrawn,
	}
}

func AllViewingStatuses() []ViewingStatus {
	return []ViewingStatus{
		ViewingStatusPending, ViewingStatusApproved, ViewingStatusRejected,
		ViewingStatusCompleted, ViewingStatusCancelled,
	}
}

// ActiveApplicationStatuses count toward the one-active-application-per-pair rule.
func ActiveApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationStatusPending, ApplicationStatusUnderReview, ApplicationStatusApproved,
	}
}

// ActiveViewingStatuses count toward the one-active-viewing-per-pair rule.
func ActiveViewingStatuses() []ViewingStatus {
	return []ViewingStatus{ViewingStatusPending, ViewingStatusApproved}
}

func (r UserRole) String() string          { return string(r) }
func (s PropertyStatus) String() string    { return string(s) }
func (t PropertyType) String() string      { return string(t) }
func (t ListingType) String() string       { return string(t) }
func (s ApplicationStatus) String() string { return string(s) }
func (t ApplicationType) String() string   { return string(t) }
func (s ViewingStatus) String() string     { return string(s) }

func (r UserRole) IsValid() bool       { return contains(AllUserRoles(), r) }
func (s PropertyStatus) IsValid() bool { return contains(AllPropertyStatuses(), s) }
func (t PropertyType) IsValid() bool   { return contains(AllPropertyTypes(), t) }
func (t ListingType) IsValid() bool    { return contains(AllListingTypes(), t) }
func (s ApplicationStatus) IsValid() bool {
	return contains(AllApplicationStatuses(), s)
}
func (s ViewingStatus) IsValid() bool { return contains(AllViewingStatuses(), s) }

func (s ApplicationStatus) IsActive() bool {
	return contains(ActiveApplicationStatuses(), s)
}

func (s ViewingStatus) IsActive() bool {
	return contains(ActiveViewingStatuses(), s)
}

// ApplicationTypeFor derives the application type from the listing:
// PURCHASE for SALE listings, RENTAL otherwise.
func ApplicationTypeFor(listing ListingType) ApplicationType {
	if listing == ListingTypeSale {
		return ApplicationTypePurchase
	}
	return ApplicationTypeRental
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
