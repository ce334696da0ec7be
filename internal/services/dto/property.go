package dto

import (
	"time"

	"realestate_backend/internal/logger"
	"realestate_backend/internal/models"
)

// PropertyRequest is the editable part of a listing, used for create and update.
// A status sent by the client is ignored; new and edited listings start PENDING.
type PropertyRequest struct {
	Title        string                `json:"title" validate:"required,max=200"`
	Description  string                `json:"description" validate:"omitempty,max=5000"`
	Address      string                `json:"address" validate:"required,max=255"`
	City         string                `json:"city" validate:"required,max=100"`
	State        string                `json:"state" validate:"omitempty,max=100"`
	ZipCode      string                `json:"zip_code" validate:"omitempty,max=20"`
	PropertyType models.PropertyType   `json:"property_type" validate:"required,is-property-type"`
	ListingType  models.ListingType    `json:"listing_type" validate:"required,is-listing-type"`
	Price        float64               `json:"price" validate:"gt=0"`
	Bedrooms     int                   `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int                   `json:"bathrooms" validate:"gte=0"`
	AreaSqm      float64               `json:"area_sqm" validate:"gte=0"`
	Amenities    []string              `json:"amenities" validate:"omitempty,max=50,dive,max=100"`
	Status       models.PropertyStatus `json:"status,omitempty" validate:"omitempty,is-property-status"`
}

type PropertySearchRequest struct {
	City         string              `form:"city" validate:"omitempty,max=100"`
	PropertyType models.PropertyType `form:"property_type" validate:"omitempty,is-property-type"`
	ListingType  models.ListingType  `form:"listing_type" validate:"omitempty,is-listing-type"`
	MinPrice     *float64            `form:"min_price" validate:"omitempty,gte=0"`
	MaxPrice     *float64            `form:"max_price" validate:"omitempty,gte=0"`
	MinBedrooms  *int                `form:"min_bedrooms" validate:"omitempty,gte=0"`
}

type OwnerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type PropertyResponse struct {
	ID           string                `json:"id"`
	OwnerID      string                `json:"owner_id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Address      string                `json:"address"`
	City         string                `json:"city"`
	State        string                `json:"state"`
	ZipCode      string                `json:"zip_code"`
	PropertyType models.PropertyType   `json:"property_type"`
	ListingType  models.ListingType    `json:"listing_type"`
	Price        float64               `json:"price"`
	Bedrooms     int                   `json:"bedrooms"`
	Bathrooms    int                   `json:"bathrooms"`
	AreaSqm      float64               `json:"area_sqm"`
	Amenities    []string              `json:"amenities"`
	Status       models.PropertyStatus `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`

	Owner *OwnerInfo `json:"owner,omitempty"`
}

type PropertyListResponse struct {
	Properties []*PropertyResponse `json:"properties"`
	Total      int                 `json:"total"`
}

type EnumsResponse struct {
	PropertyTypes       []models.PropertyType      `json:"property_types"`
	ListingTypes        []models.ListingType       `json:"listing_types"`
	PropertyStatuses    []models.PropertyStatus    `json:"property_statuses"`
	ApplicationStatuses []models.ApplicationStatus `json:"application_statuses"`
	ViewingStatuses     []models.ViewingStatus     `json:"viewing_statuses"`
	UserRoles           []models.UserRole          `json:"user_roles"`
}

func NewPropertyResponse(p *models.Property) *PropertyResponse {
	if p == nil {
		return nil
	}
	amenities, err := p.AmenityList()
	if err != nil {
		logger.Warn("Ignoring unreadable amenities", "property_id", p.ID, "error", err)
	}

	resp := &PropertyResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Description:  p.Description,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
		PropertyType: p.PropertyType,
		ListingType:  p.ListingType,
		Price:        p.Price,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		AreaSqm:      p.AreaSqm,
		Amenities:    amenities,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Owner != nil {
		resp.Owner = NewOwnerInfo(p.Owner)
	}
	return resp
}

func NewPropertyListResponse(properties []models.Property) *PropertyListResponse {
	list := make([]*PropertyResponse, 0, len(properties))
	for i := range properties {
		list = append(list, NewPropertyResponse(&properties[i]))
	}
	return &PropertyListResponse{Properties: list, Total: len(list)}
}

func NewOwnerInfo(u *models.User) *OwnerInfo {
	return &OwnerInfo{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
