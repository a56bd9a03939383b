// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
)

// AuthUsecase defines account and token operations.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)

	// Login fails with the same error for an unknown email and a wrong password.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// Authenticate verifies the token and confirms the user still exists.
	// The returned role is the one carried by the token.
	Authenticate(ctx context.Context, token string) (*entity.Principal, error)
}

// --- Input DTOs ---

// SignupInput defines the data required to create a customer account.
type SignupInput struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput defines the credentials for a login attempt.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput is returned by signup and login.
type AuthOutput struct {
	Token string
	User  *entity.User
}
