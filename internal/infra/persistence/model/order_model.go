package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingAddressModel is the JSON document stored in orders.shipping_address.
type ShippingAddressModel struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID              uuid.UUID            `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID            `gorm:"type:uuid;not null;index"`
	User            *UserModel           `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Status          string               `gorm:"type:varchar(20);not null;default:pending;index"`
	Subtotal        decimal.Decimal      `gorm:"type:numeric(10,2);not null"`
	Discount        decimal.Decimal      `gorm:"type:numeric(10,2);not null;default:0"`
	ShippingCost    decimal.Decimal      `gorm:"type:numeric(10,2);not null;default:0"`
	Total           decimal.Decimal      `gorm:"type:numeric(10,2);not null"`
	PromoCode       *string              `gorm:"type:varchar(50)"`
	ShippingAddress ShippingAddressModel `gorm:"type:jsonb;serializer:json;not null"`
	Items           []*OrderItemModel    `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Deleting a product that
// still has order items is rejected by the foreign key.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Product     *ProductModel   `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null;check:quantity >= 1"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
