// Package authz expresses the portal's access policy as small composable
// rules so it can be inspected and tested apart from the route handlers.
package authz

import (
	"github.com/taletique/tailor-portal/internal/domain"
)

// Rule is an authorization predicate over the authenticated caller.
type Rule func(caller *domain.User) error

// Role passes only callers holding the given role.
func Role(role domain.Role) Rule {
	return func(caller *domain.User) error {
		if caller.Role != role {
			return domain.ErrForbidden
		}
		return nil
	}
}

// Owner passes the customer who owns the resource. Admins always pass.
func Owner(customerID string) Rule {
	return func(caller *domain.User) error {
		if caller.IsAdmin() || caller.ID == customerID {
			return nil
		}
		return domain.ErrForbidden
	}
}

// Check evaluates rules in order and returns the first failure.
func Check(caller *domain.User, rules ...Rule) error {
	if caller == nil {
		return domain.ErrForbidden
	}
	for _, rule := range rules {
		if err := rule(caller); err != nil {
			return err
		}
	}
	return nil
}
