package service

import (
	"fmt"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
)

// mutationRoles is the closed policy for ledger mutations. Reads are open to
// any authenticated role (scoped by franchise in the queries themselves).
var mutationRoles = map[domain.TransactionType]map[domain.Role]bool{
	domain.TransactionTypeCredit: {
		domain.RoleAdmin: true, domain.RoleFranchiseManager: true, domain.RoleManager: true,
	},
	domain.TransactionTypePayment: {
		domain.RoleAdmin: true, domain.RoleFranchiseManager: true, domain.RoleManager: true,
	},
	domain.TransactionTypeUsage: {
		domain.RoleAdmin: true, domain.RoleFranchiseManager: true, domain.RoleManager: true,
	},
	domain.TransactionTypeDeposit: {
		domain.RoleAdmin: true, domain.RoleFranchiseManager: true, domain.RoleManager: true,
	},
	domain.TransactionTypeAdjustment: {
		domain.RoleAdmin: true,
	},
}

// authorizeMutation is the fail-closed gate in front of every write. It runs
// before validation and before any storage access.
func authorizeMutation(actor domain.Actor, txType domain.TransactionType) error {
	allowed, ok := mutationRoles[txType]
	if !ok || !allowed[actor.Role] {
		return fmt.Errorf("%w: role %q may not record %s transactions",
			domain.ErrUnauthorized, actor.Role, txType)
	}
	return nil
}
