// Package authz decides which back-office actions a user may take.
//
// The role table below is the only place permissions are granted. Handlers never compare
// role names themselves; they ask HasPermission or CanPerformAction.
package authz

import (
	"reflect"
	"slices"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

var rolePermissions = map[domain.Role][]domain.Permission{
	domain.RoleAdmin: {
		domain.PermCreateUnclaimed,
		domain.PermUpdateUnclaimed,
		domain.PermDeleteUnclaimed,
		domain.PermMarkCollected,
		domain.PermViewUnclaimed,
		domain.PermCreateUser,
		domain.PermUpdateUser,
		domain.PermDeleteUser,
		domain.PermViewUsers,
		domain.PermViewReports,
		domain.PermExportReports,
	},
	domain.RoleSpecialist: {
		domain.PermCreateUnclaimed,
		domain.PermUpdateUnclaimed,
		domain.PermDeleteUnclaimed,
		domain.PermMarkCollected,
		domain.PermViewUnclaimed,
		domain.PermViewReports,
		domain.PermExportReports,
	},
	domain.RoleCollector: {
		domain.PermCreateUnclaimed,
		domain.PermUpdateUnclaimed,
		domain.PermViewUnclaimed,
		domain.PermMarkCollected,
	},
	domain.RoleChecker: {
		domain.PermCreateUnclaimed,
		domain.PermViewUnclaimed,
	},
	domain.RoleStaff: {
		domain.PermViewUnclaimed,
		domain.PermViewReports,
	},
	domain.RoleGeneralManager: {
		domain.PermViewUnclaimed,
		domain.PermViewUsers,
		domain.PermViewReports,
		domain.PermExportReports,
	},
	domain.RoleCashier: {
		domain.PermCreateUnclaimed,
		domain.PermViewUnclaimed,
		domain.PermMarkCollected,
		domain.PermViewReports,
	},
}

// IsKnownRole reports whether role has a row in the permission table.
func IsKnownRole(role domain.Role) bool {
	_, ok := rolePermissions[domain.NormalizeRole(string(role))]
	return ok
}

// Permissions returns a copy of the permissions granted to role. Unknown roles get none.
func Permissions(role domain.Role) []domain.Permission {
	return slices.Clone(rolePermissions[domain.NormalizeRole(string(role))])
}

// RolesWith lists, in domain.Roles order, every role granted p.
func RolesWith(p domain.Permission) []domain.Role {
	roles := make([]domain.Role, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		if slices.Contains(rolePermissions[role], p) {
			roles = append(roles, role)
		}
	}
	return roles
}

// HasPermission reports whether user's role grants p. A nil user, an empty role or a role
// missing from the table has no permissions.
func HasPermission(user *domain.User, p domain.Permission) bool {
	if user == nil || user.Role == "" {
		return false
	}
	return slices.Contains(rolePermissions[domain.NormalizeRole(string(user.Role))], p)
}

// CanPerformAction is HasPermission plus the collector ownership rule: a collector may only
// update an unclaimed record already attributed to them. item may be nil.
func CanPerformAction(user *domain.User, p domain.Permission, item domain.Attributed) bool {
	if !HasPermission(user, p) {
		return false
	}

	if domain.NormalizeRole(string(user.Role)) == domain.RoleCollector && supplied(item) && p == domain.PermUpdateUnclaimed {
		return item.AssignedCollector() == user.FullName
	}

	return true
}

// supplied treats a typed nil pointer wrapped in the interface the same as no item.
func supplied(item domain.Attributed) bool {
	if item == nil {
		return false
	}
	v := reflect.ValueOf(item)
	return !(v.Kind() == reflect.Pointer && v.IsNil())
}
