package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating of a product. A user reviews a product at most once.
type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	UserName  string // Snapshot of the author's name at review time.
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// RatingSummary is the aggregate of every review of one product.
type RatingSummary struct {
	Average float64
	Count   int
}

// Rounded returns the average rounded to one decimal place.
func (s RatingSummary) Rounded() float64 {
	return math.Round(s.Average*10) / 10
}
