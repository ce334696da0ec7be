package models

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Phone        string   `json:"phone,omitempty"`
	Role         UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive     bool     `gorm:"not null" json:"is_active"`
}
