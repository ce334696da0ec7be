package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

type Property struct {
	BaseModel
	OwnerID      string         `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Address      string         `gorm:"not null" json:"address"`
	City         string         `gorm:"not null;index" json:"city"`
	State        string         `json:"state"`
	ZipCode      string         `json:"zip_code"`
	PropertyType PropertyType   `gorm:"type:varchar(20);not null;index" json:"property_type"`
	ListingType  ListingType    `gorm:"type:varchar(10);not null;index" json:"listing_type"`
	Price        float64        `gorm:"not null;index" json:"price"`
	Bedrooms     int            `json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	AreaSqm      float64        `json:"area_sqm"`
	Amenities    datatypes.JSON `json:"amenities"`
	Status       PropertyStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// SetAmenities stores the list as a JSON array.
func (p *Property) SetAmenities(amenities []string) error {
	if amenities == nil {
		amenities = []string{}
	}
	raw, err := json.Marshal(amenities)
	if err != nil {
		return err
	}
	p.Amenities = datatypes.JSON(raw)
	return nil
}

// AmenityList decodes the stored JSON array. An empty column is an empty list.
func (p *Property) AmenityList() ([]string, error) {
	list := []string{}
	if len(p.Amenities) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(p.Amenities, &list); err != nil {
		return []string{}, fmt.Errorf("decode amenities of property %s: %w", p.ID, err)
	}
	return list, nil
}

func (p *Property) IsOwnedBy(userID string) bool {
	return p != nil && p.OwnerID == userID
}
