package validator

import (
	"log"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-registrable-role", validateRegistrableRole)
	mustRegister("is-property-type", validatePropertyType)
	mustRegister("is-listing-type", validateListingType)
	mustRegister("is-property-status", validatePropertyStatus)
}

// Empty values pass; 'required' covers them.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.UserRole(value).IsValid()
}

func validateRegistrableRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, role := range auth.RegistrableRoles() {
		if models.UserRole(value) == role {
			return true
		}
	}
	return false
}

func validatePropertyType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.PropertyType(value).IsValid()
}

func validateListingType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ListingType(value).IsValid()
}

func validatePropertyStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.PropertyStatus(value).IsValid()
}
