package dto

import (
	"time"

	"realestate_backend/internal/models"
)

type RequestViewingRequest struct {
	ViewingDate time.Time `json:"viewing_date" validate:"required"`
	Message     string    `json:"message" validate:"omitempty,max=2000"`
}

type ViewingResponse struct {
	ID          string               `json:"id"`
	PropertyID  string               `json:"property_id"`
	UserID      string               `json:"user_id"`
	ViewingDate time.Time            `json:"viewing_date"`
	Message     string               `json:"message"`
	Status      models.ViewingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`

	Property  *PropertyResponse `json:"property,omitempty"`
	Requester *OwnerInfo        `json:"requester,omitempty"`
}

func NewViewingResponse(v *models.PropertyViewing) *ViewingResponse {
	if v == nil {
		return nil
	}
	resp := &ViewingResponse{
		ID:          v.ID,
		PropertyID:  v.PropertyID,
		UserID:      v.UserID,
		ViewingDate: v.ViewingDate,
		Message:     v.Message,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Property:    NewPropertyResponse(v.Property),
	}
	if v.User != nil {
		resp.Requester = NewOwnerInfo(v.User)
	}
	return resp
}

func NewViewingList(viewings []models.PropertyViewing) []*ViewingResponse {
	list := make([]*ViewingResponse, 0, len(viewings))
	for i := range viewings {
		list = append(list, NewViewingResponse(&viewings[i]))
	}
	return list
}
