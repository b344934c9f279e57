package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/kirinho/cloud-file/internal/api/dto"
	"github.com/kirinho/cloud-file/internal/events"
	"github.com/kirinho/cloud-file/internal/repository"
	"github.com/kirinho/cloud-file/internal/service"
)

// AdminHandler exposes admin-only user management. Routes are registered
// behind the guard plus an ADMIN role check.
type AdminHandler struct {
	users      *service.UserService
	dispatcher events.Dispatcher
}

// NewAdminHandler constructs handler.
func NewAdminHandler(users *service.UserService, dispatcher events.Dispatcher) *AdminHandler {
	return &AdminHandler{users: users, dispatcher: dispatcher}
}

// GetByID handles GET /admin/users/:id.
func (h *AdminHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromUser(user)})
}

// List handles GET /admin/users with sorting and pagination.
func (h *AdminHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "0"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))

	users, err := h.users.List(c.UserContext(), repository.ListOptions{
		SortBy:     c.Query("sortBy", "id"),
		Descending: strings.EqualFold(c.Query("orderBy", "asc"), "desc"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromUsers(users)})
}

// Create handles POST /admin/users.
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, err := h.users.Create(c.UserContext(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return err
	}

	_ = h.dispatcher.Publish(c.UserContext(), events.New(events.EventUserRegistered, user.ID,
		events.UserRegisteredPayload{Email: user.Email, Role: user.Role}))

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromUser(user)})
}

// Update handles PATCH /admin/users/:id.
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.users.Update(c.UserContext(), user, service.UpdateParams{
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

// Delete handles DELETE /admin/users/:id by disabling the account.
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return err
	}

	if err := h.users.Disable(c.UserContext(), user); err != nil {
		if errors.Is(err, service.ErrAlreadyDisabled) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	_ = h.dispatcher.Publish(c.UserContext(), events.New(events.EventUserDisabled, user.ID, nil))
	return c.SendStatus(http.StatusNoContent)
}
