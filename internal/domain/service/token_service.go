package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pawparadise/internal/domain/entity"
)

// Claims defines the custom claims carried by an access token.
type Claims struct {
	UserID uuid.UUID   `json:"-"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken signs an access token for the user and role.
	GenerateToken(userID uuid.UUID, role entity.Role) (string, error)

	// ValidateToken checks signature, algorithm and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)
}
