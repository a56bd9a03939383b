package context

import (
	"pawparadise/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the echo.Context key of the authenticated caller.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal stores the authenticated caller in echo.Context.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(string(KeyPrincipal), principal)
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	principal, ok := c.Get(string(KeyPrincipal)).(*entity.Principal)

	return principal, ok && principal != nil
}
