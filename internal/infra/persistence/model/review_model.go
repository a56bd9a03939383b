package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. (product_id, user_id) is unique.
type ReviewModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	Product   *ProductModel `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	UserID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	User      *UserModel    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	UserName  string        `gorm:"type:varchar(100);not null"`
	Rating    int           `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   string        `gorm:"type:text;not null"`
	CreatedAt time.Time     `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
