package models

import "time"

type PropertyViewing struct {
	BaseModel
	PropertyID  string        `gorm:"type:varchar(36);not null;index" json:"property_id"`
	UserID      string        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ViewingDate time.Time     `gorm:"not null;index" json:"viewing_date"`
	Message     string        `json:"message"`
	Status      ViewingStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PropertyViewing) TableName() string {
	return "property_viewings"
}
