package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name          string           `gorm:"type:varchar(200);not null;index"`
	Slug          string           `gorm:"type:varchar(255);uniqueIndex;not null"`
	Category      string           `gorm:"type:varchar(20);not null;index"`
	PetType       string           `gorm:"type:varchar(20);not null;index"`
	Brand         string           `gorm:"type:varchar(100);not null;index"`
	Price         decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	OriginalPrice *decimal.Decimal `gorm:"type:numeric(10,2)"`
	Image         string           `gorm:"type:text;not null"`
	Images        []string         `gorm:"type:jsonb;serializer:json;not null"`
	Description   string           `gorm:"type:text;not null"`
	Features      []string         `gorm:"type:jsonb;serializer:json;not null"`
	Weight        string           `gorm:"type:varchar(50);not null"`
	Dimensions    *string          `gorm:"type:varchar(100)"`
	Rating        float64          `gorm:"type:numeric(3,1);not null;default:0"`
	ReviewCount   int              `gorm:"not null;default:0"`
	Featured      bool             `gorm:"not null;default:false;index"`
	InStock       bool             `gorm:"not null;default:false"`
	StockCount    int              `gorm:"not null;default:0;check:stock_count >= 0"`
	SKU           string           `gorm:"column:sku;type:varchar(50);uniqueIndex;not null"`
	CreatedAt     time.Time        `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
