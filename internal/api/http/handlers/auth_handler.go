package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kirinho/cloud-file/internal/api/dto"
	"github.com/kirinho/cloud-file/internal/auth"
	"github.com/kirinho/cloud-file/internal/events"
	"github.com/kirinho/cloud-file/internal/service"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	authenticator *auth.Authenticator
	users         *service.UserService
	dispatcher    events.Dispatcher
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authenticator *auth.Authenticator, users *service.UserService, dispatcher events.Dispatcher) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, users: users, dispatcher: dispatcher}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, err := h.users.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return err
	}

	_ = h.dispatcher.Publish(c.UserContext(), events.New(events.EventUserRegistered, user.ID,
		events.UserRegisteredPayload{Email: user.Email, Role: user.Role}))

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.FromUser(user),
	})
}

// Login handles POST /auth/login. Failures are translated by the error
// middleware: 401 for bad credentials, 403 for a disabled account.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	user, token, expiresAt, err := h.authenticator.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		_ = h.dispatcher.Publish(c.UserContext(), events.New(events.EventLoginFailed, "",
			events.LoginFailedPayload{Email: req.Email, Kind: string(auth.KindOf(err))}))
		return err
	}

	_ = h.dispatcher.Publish(c.UserContext(), events.New(events.EventLoginSucceeded, user.ID, nil))

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.FromUser(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}
