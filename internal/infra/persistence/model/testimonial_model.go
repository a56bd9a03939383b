package model

import (
	"time"

	"github.com/google/uuid"
)

// TestimonialModel mirrors the 'testimonials' table.
type TestimonialModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	AvatarURL   string    `gorm:"type:text"`
	Comment     string    `gorm:"type:text;not null"`
	Rating      int       `gorm:"not null"`
	ProductType string    `gorm:"type:varchar(50)"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (TestimonialModel) TableName() string {
	return "testimonials"
}
