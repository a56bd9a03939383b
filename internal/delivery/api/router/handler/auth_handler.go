package handler

import (
	"log/slog"

	"pawparadise/internal/delivery/api/response"
	"pawparadise/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler holds dependencies for account handlers
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *userPayload `json:"user"`
}

type meResponse struct {
	User *userPayload `json:"user"`
}

// Signup handles customer registration
func (h *AuthHandler) Signup(c echo.Context) error {
	var req usecase.SignupInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.authUC.Signup(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Created(c, authResponse{Token: out.Token, User: newUserPayload(out.User)})
}

// Login handles credential login
func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.authUC.Login(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.OK(c, authResponse{Token: out.Token, User: newUserPayload(out.User)})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	user, err := h.authUC.Me(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}

	return response.OK(c, meResponse{User: newUserPayload(user)})
}
