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

// UsersHandler exposes self-service profile endpoints. Every route runs
// behind the guard, so the principal is always present.
type UsersHandler struct {
	users      *service.UserService
	dispatcher events.Dispatcher
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService, dispatcher events.Dispatcher) *UsersHandler {
	return &UsersHandler{users: users, dispatcher: dispatcher}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.NewFailure(auth.FailureMissingToken)
	}
	return c.JSON(fiber.Map{"data": dto.FromUser(principal)})
}

// Update handles PATCH /users/me.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.NewFailure(auth.FailureMissingToken)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.users.Update(c.UserContext(), principal, service.UpdateParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromUser(updated)})
}

// Delete handles DELETE /users/me by disabling the account.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.NewFailure(auth.FailureMissingToken)
	}

	if err := h.users.Disable(c.UserContext(), principal); err != nil {
		if errors.Is(err, service.ErrAlreadyDisabled) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	_ = h.dispatcher.Publish(c.UserContext(), events.New(events.EventUserDisabled, principal.ID, nil))
	return c.SendStatus(http.StatusNoContent)
}
