package model

import "github.com/google/uuid"

// PromoCodeModel mirrors the 'promo_codes' table. Codes are stored uppercase.
type PromoCodeModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code            string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	DiscountPercent int       `gorm:"not null;check:discount_percent BETWEEN 0 AND 100"`
	Active          bool      `gorm:"not null;default:true"`
}

// TableName explicitly sets the table name for GORM.
func (PromoCodeModel) TableName() string {
	return "promo_codes"
}
