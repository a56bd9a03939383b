package middleware

import (
	"net/http"

	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/errors"

	"github.com/labstack/echo/v4"
)

// statusOf predicts the status the central error handler renders for err.
func statusOf(err error) int {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
