package domain

import "time"

// Role is the closed set of authorization roles. Exactly one role per
// user; there is no hierarchy.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for an account. The auth core only reads it;
// mutation happens in the user service.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
