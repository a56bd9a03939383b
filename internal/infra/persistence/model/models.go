package model

// All lists every model in dependency order for migrations.
func All() []any {
	return []any{
		&UserModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
		&PromoCodeModel{},
		&TestimonialModel{},
	}
}
