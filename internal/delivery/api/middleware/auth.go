package middleware

import (
	"strings"

	deliverycontext "pawparadise/internal/delivery/context"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/usecase"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "bearer "

// AuthMiddleware guards routes behind a bearer token.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate resolves the bearer token to a principal and stores it on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrAuthenticationRequired
		}

		principal, err := m.authUC.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// RequireAdmin must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, ok := deliverycontext.GetPrincipal(c)
		if !ok {
			return domainerrors.ErrAuthenticationRequired
		}
		if !principal.IsAdmin() {
			return domainerrors.ErrAdminRequired
		}

		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}
