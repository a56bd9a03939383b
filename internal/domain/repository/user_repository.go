// Package repository declares the storage contracts of the shop. Lookups
// report a missing row with the package's Err*NotFound sentinels.
package repository

import (
	"context"
	"errors"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository stores shop accounts. Emails are stored lowercased and are unique.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByEmail expects an already normalized address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Create fails with a Conflict app error when the email is taken.
	Create(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
}
