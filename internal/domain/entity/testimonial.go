package entity

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is seeded marketing content shown on the storefront.
type Testimonial struct {
	ID          uuid.UUID
	Name        string
	AvatarURL   string
	Comment     string
	Rating      int
	ProductType string
	CreatedAt   time.Time
}
