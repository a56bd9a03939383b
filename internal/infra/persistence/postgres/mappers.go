package postgres

import (
	"pawparadise/internal/domain/entity"
	"pawparadise/internal/infra/persistence/model"
)

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		AvatarURL:    data.AvatarURL,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         string(data.Role),
		AvatarURL:    data.AvatarURL,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:            data.ID,
		Name:          data.Name,
		Slug:          data.Slug,
		Category:      entity.Category(data.Category),
		PetType:       entity.PetType(data.PetType),
		Brand:         data.Brand,
		Price:         data.Price,
		OriginalPrice: data.OriginalPrice,
		Image:         data.Image,
		Images:        nonNilStrings(data.Images),
		Description:   data.Description,
		Features:      nonNilStrings(data.Features),
		Weight:        data.Weight,
		Dimensions:    data.Dimensions,
		Rating:        data.Rating,
		ReviewCount:   data.ReviewCount,
		Featured:      data.Featured,
		InStock:       data.InStock,
		StockCount:    data.StockCount,
		SKU:           data.SKU,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toProductsDomain(data []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(data))
	for _, m := range data {
		products = append(products, toProductDomain(m))
	}

	return products
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:            data.ID,
		Name:          data.Name,
		Slug:          data.Slug,
		Category:      string(data.Category),
		PetType:       string(data.PetType),
		Brand:         data.Brand,
		Price:         data.Price,
		OriginalPrice: data.OriginalPrice,
		Image:         data.Image,
		Images:        nonNilStrings(data.Images),
		Description:   data.Description,
		Features:      nonNilStrings(data.Features),
		Weight:        data.Weight,
		Dimensions:    data.Dimensions,
		Rating:        data.Rating,
		ReviewCount:   data.ReviewCount,
		Featured:      data.Featured,
		InStock:       data.StockCount > 0,
		StockCount:    data.StockCount,
		SKU:           data.SKU,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &entity.OrderItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	order := &entity.Order{
		ID:              data.ID,
		UserID:          data.UserID,
		Status:          entity.OrderStatus(data.Status),
		Subtotal:        data.Subtotal,
		Discount:        data.Discount,
		ShippingCost:    data.ShippingCost,
		Total:           data.Total,
		PromoCode:       data.PromoCode,
		ShippingAddress: entity.ShippingAddress(data.ShippingAddress),
		Items:           items,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
	if data.User != nil {
		order.Customer = &entity.OrderCustomer{Name: data.User.Name, Email: data.User.Email}
	}

	return order
}

func toOrdersDomain(data []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(data))
	for _, m := range data {
		orders = append(orders, toOrderDomain(m))
	}

	return orders
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ID:          item.ID,
			OrderID:     data.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		UserID:          data.UserID,
		Status:          string(data.Status),
		Subtotal:        data.Subtotal,
		Discount:        data.Discount,
		ShippingCost:    data.ShippingCost,
		Total:           data.Total,
		PromoCode:       data.PromoCode,
		ShippingAddress: model.ShippingAddressModel(data.ShippingAddress),
		Items:           items,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		UserName:  data.UserName,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}
}

func toPromoCodeDomain(data *model.PromoCodeModel) *entity.PromoCode {
	return &entity.PromoCode{
		ID:              data.ID,
		Code:            data.Code,
		DiscountPercent: data.DiscountPercent,
		Active:          data.Active,
	}
}

func toTestimonialDomain(data *model.TestimonialModel) *entity.Testimonial {
	return &entity.Testimonial{
		ID:          data.ID,
		Name:        data.Name,
		AvatarURL:   data.AvatarURL,
		Comment:     data.Comment,
		Rating:      data.Rating,
		ProductType: data.ProductType,
		CreatedAt:   data.CreatedAt,
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
