package domain

import "time"

type Role string

const (
	RoleAdmin            Role = "admin"
	RoleFranchiseManager Role = "franchise_manager"
	RoleManager          Role = "manager"
	RoleFactoryManager   Role = "factory_manager"
	RoleOther            Role = "other"
)

// ParseRole normalizes a claim string; anything unrecognized collapses to
// RoleOther so an unknown role can never widen access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleFranchiseManager, RoleManager, RoleFactoryManager:
		return Role(s)
	}
	return RoleOther
}

// StaffUser is a dashboard operator account. Customers never log in here;
// staff identities are the actors behind every ledger mutation.
type StaffUser struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FranchiseID  *int32    `json:"franchise_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor is the authenticated identity carried with every request. Built from
// validated JWT claims by the HTTP middleware, never from client-supplied
// body fields.
type Actor struct {
	UserID      int32
	Name        string
	Role        Role
	FranchiseID *int32
}

// Scope returns the franchise filter this actor's reads are limited to.
// Admins see everything; everyone else is pinned to their franchise.
func (a Actor) Scope() *int32 {
	if a.Role == RoleAdmin {
		return nil
	}
	return a.FranchiseID
}
