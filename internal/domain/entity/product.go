package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups products in the storefront navigation.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryToys        Category = "toys"
	CategoryBeds        Category = "beds"
	CategoryAccessories Category = "accessories"
	CategoryGrooming    Category = "grooming"
	CategoryHealth      Category = "health"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryToys,
	CategoryBeds,
	CategoryAccessories,
	CategoryGrooming,
	CategoryHealth,
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryToys, CategoryBeds, CategoryAccessories, CategoryGrooming, CategoryHealth:
		return true
	default:
		return false
	}
}

// PetType is the animal a product is made for.
type PetType string

const (
	PetTypeDog     PetType = "dog"
	PetTypeCat     PetType = "cat"
	PetTypeBird    PetType = "bird"
	PetTypeFish    PetType = "fish"
	PetTypeReptile PetType = "reptile"
	// PetTypeAll matches every pet-type filter.
	PetTypeAll PetType = "all"
)

// IsValid checks if the PetType is a valid value.
func (p PetType) IsValid() bool {
	switch p {
	case PetTypeDog, PetTypeCat, PetTypeBird, PetTypeFish, PetTypeReptile, PetTypeAll:
		return true
	default:
		return false
	}
}

// Product is a catalog item. Rating, ReviewCount and InStock are derived
// and only written by the paths that change their inputs.
type Product struct {
	ID            uuid.UUID
	Name          string
	Slug          string
	Category      Category
	PetType       PetType
	Brand         string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Image         string
	Images        []string
	Description   string
	Features      []string
	Weight        string
	Dimensions    *string
	Rating        float64
	ReviewCount   int
	Featured      bool
	InStock       bool
	StockCount    int
	SKU           string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SetStockCount updates the stock level and keeps InStock consistent with it.
func (p *Product) SetStockCount(count int) {
	p.StockCount = count
	p.InStock = count > 0
}

// HasStock reports whether quantity units can be sold right now.
func (p *Product) HasStock(quantity int) bool {
	return p.InStock && p.StockCount >= quantity
}

// PriceRange is the cheapest and most expensive price in the catalog.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// InventoryItem is the admin stock view of a product.
type InventoryItem struct {
	ID         uuid.UUID
	Name       string
	SKU        string
	Category   Category
	Brand      string
	Price      decimal.Decimal
	StockCount int
	InStock    bool
}
