// Package service declares the ports the usecases need from infrastructure:
// hashing, tokens, caching, event publishing, QR rendering and metrics.
package service

// PasswordHasher hashes account passwords. Check never reports why a
// comparison failed so callers cannot leak it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
