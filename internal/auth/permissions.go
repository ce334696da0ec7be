package auth

import "realestate_backend/internal/models"

func IsAdmin(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}

// CanListProperties reports roles allowed to publish listings.
func CanListProperties(role models.UserRole) bool {
	switch role {
	case models.UserRoleOwner, models.UserRoleAgent, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

// CanApply reports roles allowed to submit applications and request viewings.
func CanApply(role models.UserRole) bool {
	switch role {
	case models.UserRoleBuyer, models.UserRoleRenter:
		return true
	default:
		return false
	}
}

// IsSeller reports roles whose dashboard shows listing statistics.
func IsSeller(role models.UserRole) bool {
	return role == models.UserRoleOwner || role == models.UserRoleAgent
}

// IsSeeker reports roles whose dashboard shows request statistics.
func IsSeeker(role models.UserRole) bool {
	return role == models.UserRoleBuyer || role == models.UserRoleRenter
}

// RegistrableRoles excludes ADMIN, which is only seeded.
func RegistrableRoles() []models.UserRole {
	return []models.UserRole{
		models.UserRoleOwner, models.UserRoleAgent,
		models.UserRoleBuyer, models.UserRoleRenter,
	}
}
