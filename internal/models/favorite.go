package models

type Favorite struct {
	BaseModel
	UserID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_property" json:"user_id"`
	PropertyID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_property;index" json:"property_id"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}
