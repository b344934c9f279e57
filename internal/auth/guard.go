package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/kirinho/cloud-file/internal/domain"
)

const principalKey = "auth_principal"

// Guard validates bearer tokens on protected routes and resolves the
// live user record behind them.
type Guard struct {
	tokens *TokenManager
	users  UserStore
}

// NewGuard constructs the guard.
func NewGuard(tokens *TokenManager, users UserStore) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authorize runs the full per-request decision: bearer extraction, token
// validation, live subject resolution, enabled check, then role check.
// requiredRole may be empty, meaning any authenticated subject. The
// disabled and role checks run against the record resolved now, never
// against anything baked into the token.
func (g *Guard) Authorize(ctx context.Context, bearerHeader string, requiredRole domain.Role) (*domain.User, error) {
	token, err := extractBearer(bearerHeader)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := g.users.GetByID(ctx, claims.SubjectID())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewFailure(FailureSubjectNotFound)
		}
		return nil, WrapFailure(FailureLookup, err)
	}

	if !user.Enabled {
		return nil, NewFailure(FailureAccountDisabled)
	}
	if requiredRole != "" && user.Role != requiredRole {
		return nil, NewFailure(FailureForbidden)
	}
	return user, nil
}

// Handle is the fiber middleware enforcing authentication on protected
// routes. The resolved user is stored as the request principal.
func (g *Guard) Handle(c *fiber.Ctx) error {
	user, err := g.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization), "")
	if err != nil {
		return err
	}
	c.Locals(principalKey, user)
	return c.Next()
}

// RequireRole restricts a route to subjects holding exactly the given
// role. It must run after Handle.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return NewFailure(FailureMissingToken)
		}
		if principal.Role != role {
			return NewFailure(FailureForbidden)
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated user for the request.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.User)
	return principal, ok
}

func extractBearer(header string) (string, error) {
	if header == "" {
		return "", NewFailure(FailureMissingToken)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", NewFailure(FailureMissingToken)
	}
	return parts[1], nil
}
