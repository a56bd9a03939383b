package handler

import (
	"time"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// money renders a decimal as a JSON number with two fraction digits.
type money decimal.Decimal

func (m money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

func optionalMoney(d *decimal.Decimal) *money {
	if d == nil {
		return nil
	}
	m := money(*d)

	return &m
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

type userPayload struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       entity.Role `json:"role"`
	Avatar     string      `json:"avatar"`
	JoinedDate string      `json:"joinedDate"`
}

func newUserPayload(user *entity.User) *userPayload {
	return &userPayload{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Avatar:     user.AvatarURL,
		JoinedDate: user.CreatedAt.UTC().Format(dateLayout),
	}
}

type productPayload struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Category      entity.Category `json:"category"`
	PetType       entity.PetType  `json:"petType"`
	Brand         string          `json:"brand"`
	Price         money           `json:"price"`
	OriginalPrice *money          `json:"originalPrice,omitempty"`
	Image         string          `json:"image"`
	Images        []string        `json:"images"`
	Description   string          `json:"description"`
	Features      []string        `json:"features"`
	Weight        string          `json:"weight"`
	Dimensions    *string         `json:"dimensions,omitempty"`
	Rating        float64         `json:"rating"`
	ReviewCount   int             `json:"reviewCount"`
	Featured      bool            `json:"featured"`
	InStock       bool            `json:"inStock"`
	StockCount    int             `json:"stockCount"`
	SKU           string          `json:"sku"`
	DateAdded     string          `json:"dateAdded"`
}

func newProductPayload(p *entity.Product) *productPayload {
	return &productPayload{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Category:      p.Category,
		PetType:       p.PetType,
		Brand:         p.Brand,
		Price:         money(p.Price),
		OriginalPrice: optionalMoney(p.OriginalPrice),
		Image:         p.Image,
		Images:        nonNil(p.Images),
		Description:   p.Description,
		Features:      nonNil(p.Features),
		Weight:        p.Weight,
		Dimensions:    p.Dimensions,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		Featured:      p.Featured,
		InStock:       p.InStock,
		StockCount:    p.StockCount,
		SKU:           p.SKU,
		DateAdded:     p.CreatedAt.UTC().Format(dateLayout),
	}
}

func newProductPayloads(products []*entity.Product) []*productPayload {
	out := make([]*productPayload, len(products))
	for i, p := range products {
		out[i] = newProductPayload(p)
	}

	return out
}

type orderItemPayload struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Price       money     `json:"price"`
}

type orderPayload struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"userId"`
	Status          entity.OrderStatus     `json:"status"`
	Subtotal        money                  `json:"subtotal"`
	Discount        money                  `json:"discount"`
	ShippingCost    money                  `json:"shippingCost"`
	Total           money                  `json:"total"`
	PromoCode       *string                `json:"promoCode"`
	ShippingAddress entity.ShippingAddress `json:"shippingAddress"`
	Items           []*orderItemPayload    `json:"items"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func newOrderPayload(o *entity.Order) *orderPayload {
	items := make([]*orderItemPayload, len(o.Items))
	for i, item := range o.Items {
		items[i] = &orderItemPayload{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       money(item.Price),
		}
	}

	return &orderPayload{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		Subtotal:        money(o.Subtotal),
		Discount:        money(o.Discount),
		ShippingCost:    money(o.ShippingCost),
		Total:           money(o.Total),
		PromoCode:       o.PromoCode,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// customer returns the buyer's name and email for admin views.
func customer(o *entity.Order) (string, string) {
	if o.Customer == nil {
		return "", ""
	}

	return o.Customer.Name, o.Customer.Email
}

type adminOrderItemPayload struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       money  `json:"price"`
}

type adminOrderPayload struct {
	ID              uuid.UUID                `json:"id"`
	Customer        string                   `json:"customer"`
	Email           string                   `json:"email"`
	Status          entity.OrderStatus       `json:"status"`
	Total           money                    `json:"total"`
	ItemCount       int                      `json:"itemCount"`
	Items           []*adminOrderItemPayload `json:"items"`
	ShippingAddress entity.ShippingAddress   `json:"shippingAddress"`
	CreatedAt       time.Time                `json:"createdAt"`
}

func newAdminOrderPayload(o *entity.Order) *adminOrderPayload {
	name, email := customer(o)
	items := make([]*adminOrderItemPayload, len(o.Items))
	for i, item := range o.Items {
		items[i] = &adminOrderItemPayload{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       money(item.Price),
		}
	}

	return &adminOrderPayload{
		ID:              o.ID,
		Customer:        name,
		Email:           email,
		Status:          o.Status,
		Total:           money(o.Total),
		ItemCount:       len(o.Items),
		Items:           items,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
	}
}

type recentOrderPayload struct {
	ID        uuid.UUID          `json:"id"`
	Customer  string             `json:"customer"`
	Email     string             `json:"email"`
	Total     money              `json:"total"`
	Status    entity.OrderStatus `json:"status"`
	ItemCount int                `json:"itemCount"`
	CreatedAt time.Time          `json:"createdAt"`
}

type reviewPayload struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func newReviewPayload(r *entity.Review) *reviewPayload {
	return &reviewPayload{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

type testimonialPayload struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	Comment     string    `json:"comment"`
	Rating      int       `json:"rating"`
	ProductType string    `json:"productType"`
}

type inventoryPayload struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Category   entity.Category `json:"category"`
	Brand      string          `json:"brand"`
	Price      money           `json:"price"`
	StockCount int             `json:"stockCount"`
	InStock    bool            `json:"inStock"`
}
