package handler

import (
	"strconv"
	"strings"

	deliverycontext "pawparadise/internal/delivery/context"
	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// uuidParam parses a path parameter. A malformed id cannot match any row, so
// it is reported as notFound.
func uuidParam(c echo.Context, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, notFound
	}

	return id, nil
}

func principal(c echo.Context) (*entity.Principal, error) {
	p, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return nil, domainerrors.ErrAuthenticationRequired
	}

	return p, nil
}

// queryInt returns 0 for a missing or malformed value; callers normalize it.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.QueryParam(name)))
	if err != nil {
		return 0
	}

	return value
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   name,
			Message: "Must be a number.",
		})
	}

	return &value, nil
}

// queryList splits a comma separated parameter, dropping empty entries.
func queryList(c echo.Context, name string) []string {
	var out []string
	for _, part := range strings.Split(c.QueryParam(name), ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}

	return out
}
