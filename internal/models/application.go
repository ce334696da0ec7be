package models

import "time"

type Application struct {
	BaseModel
	PropertyID      string            `gorm:"type:varchar(36);not null;index" json:"property_id"`
	UserID          string            `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ApplicationType ApplicationType   `gorm:"type:varchar(20);not null" json:"application_type"`
	Status          ApplicationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Message         string            `json:"message"`
	OfferAmount     *float64          `json:"offer_amount,omitempty"`
	MoveInDate      *time.Time        `json:"move_in_date,omitempty"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
