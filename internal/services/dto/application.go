package dto

import (
	"time"

	"realestate_backend/internal/models"
)

type SubmitApplicationRequest struct {
	Message     string     `json:"message" validate:"omitempty,max=2000"`
	OfferAmount *float64   `json:"offer_amount,omitempty" validate:"omitempty,gt=0"`
	MoveInDate  *time.Time `json:"move_in_date,omitempty"`
}

type ApplicationResponse struct {
	ID              string                   `json:"id"`
	PropertyID      string                   `json:"property_id"`
	UserID          string                   `json:"user_id"`
	ApplicationType models.ApplicationType   `json:"application_type"`
	Status          models.ApplicationStatus `json:"status"`
	Message         string                   `json:"message"`
	OfferAmount     *float64                 `json:"offer_amount,omitempty"`
	MoveInDate      *time.Time               `json:"move_in_date,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`

	Property  *PropertyResponse `json:"property,omitempty"`
	Applicant *OwnerInfo        `json:"applicant,omitempty"`
}

func NewApplicationResponse(a *models.Application) *ApplicationResponse {
	if a == nil {
		return nil
	}
	resp := &ApplicationResponse{
		ID:              a.ID,
		PropertyID:      a.PropertyID,
		UserID:          a.UserID,
		ApplicationType: a.ApplicationType,
		Status:          a.Status,
		Message:         a.Message,
		OfferAmount:     a.OfferAmount,
		MoveInDate:      a.MoveInDate,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		Property:        NewPropertyResponse(a.Property),
	}
	if a.User != nil {
		resp.Applicant = NewOwnerInfo(a.User)
	}
	return resp
}

func NewApplicationList(applications []models.Application) []*ApplicationResponse {
	list := make([]*ApplicationResponse, 0, len(applications))
	for i := range applications {
		list = append(list, NewApplicationResponse(&applications[i]))
	}
	return list
}
