// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a shop account. Customers and administrators share the same record.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Name         string    // Display name.
	Email        string    // Unique, stored lowercased.
	PasswordHash string    // bcrypt hash, never serialized.
	Role         Role      // customer or admin.
	AvatarURL    string    // Profile image.
	CreatedAt    time.Time // Rendered as joinedDate.
	UpdatedAt    time.Time
}

// DefaultAvatarURL builds the generated-initials avatar used for new accounts.
func DefaultAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + strings.ReplaceAll(url.QueryEscape(name), "+", "%20") + "&background=6366f1&color=fff"
}
