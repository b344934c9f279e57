package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kirinho/cloud-file/internal/auth"
	"github.com/kirinho/cloud-file/internal/domain"
	"github.com/kirinho/cloud-file/internal/repository"
)

// ErrEmailTaken reports a registration or create against an existing email.
var ErrEmailTaken = errors.New("email already registered")

// ErrAlreadyDisabled reports a delete against an already disabled account.
var ErrAlreadyDisabled = errors.New("account already disabled")

// UpdateParams carries the optional fields of a profile update. Nil
// means keep the current value.
type UpdateParams struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService implements account CRUD around the repository. The auth
// core never calls into this service; it only shares the repository's
// read surface.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, logger: logger}
}

// GetByID fetches a single account.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns a page of accounts.
func (s *UserService) List(ctx context.Context, opts repository.ListOptions) ([]*domain.User, error) {
	return s.users.List(ctx, opts)
}

// Register creates a self-service account with the USER role.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.create(ctx, name, email, password, domain.RoleUser)
}

// Create creates an account with an explicit role; admin-driven.
func (s *UserService) Create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		role = domain.RoleUser
	}
	return s.create(ctx, name, email, password, role)
}

func (s *UserService) create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// Update applies the provided fields to the user and persists it.
func (s *UserService) Update(ctx context.Context, user *domain.User, params UpdateParams) (*domain.User, error) {
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Email != nil && *params.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, *params.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		user.Email = *params.Email
	}
	if params.Password != nil {
		hash, err := auth.HashPassword(*params.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Disable soft-deletes the account. Tokens already issued for it stop
// working on their next use because the guard checks the live record.
func (s *UserService) Disable(ctx context.Context, user *domain.User) error {
	if !user.Enabled {
		return ErrAlreadyDisabled
	}
	user.Enabled = false
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user disabled", zap.String("user_id", user.ID))
	return nil
}
