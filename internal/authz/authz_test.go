package authz

import (
	"slices"
	"testing"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestHasPermissionTable(t *testing.T) {
	expected := map[domain.Role][]domain.Permission{
		domain.RoleAdmin: domain.Permissions,
		domain.RoleSpecialist: {
			domain.PermCreateUnclaimed, domain.PermUpdateUnclaimed, domain.PermDeleteUnclaimed,
			domain.PermMarkCollected, domain.PermViewUnclaimed, domain.PermViewReports, domain.PermExportReports,
		},
		domain.RoleCollector: {
			domain.PermCreateUnclaimed, domain.PermUpdateUnclaimed, domain.PermViewUnclaimed, domain.PermMarkCollected,
		},
		domain.RoleChecker: {domain.PermCreateUnclaimed, domain.PermViewUnclaimed},
		domain.RoleStaff:   {domain.PermViewUnclaimed, domain.PermViewReports},
		domain.RoleGeneralManager: {
			domain.PermViewUnclaimed, domain.PermViewUsers, domain.PermViewReports, domain.PermExportReports,
		},
		domain.RoleCashier: {
			domain.PermCreateUnclaimed, domain.PermViewUnclaimed, domain.PermMarkCollected, domain.PermViewReports,
		},
	}

	for _, role := range domain.Roles {
		user := &domain.User{Role: role}
		for _, p := range domain.Permissions {
			want := slices.Contains(expected[role], p)
			require.Equal(t, want, HasPermission(user, p), "role %q permission %q", role, p)
		}
	}
}

func TestHasPermissionUnknownOrMissingRole(t *testing.T) {
	users := []*domain.User{
		nil,
		{},
		{Role: "owner"},
		{Role: "collector "},
	}

	for _, user := range users {
		for _, p := range domain.Permissions {
			require.False(t, HasPermission(user, p))
		}
	}
}

func TestHasPermissionNormalizesCase(t *testing.T) {
	require.True(t, HasPermission(&domain.User{Role: "ADMIN"}, domain.PermDeleteUser))
	require.True(t, HasPermission(&domain.User{Role: "General Manager"}, domain.PermViewUsers))
	require.False(t, HasPermission(&domain.User{Role: "Staff"}, domain.PermCreateUnclaimed))
}

func TestCanPerformActionCollectorOwnership(t *testing.T) {
	collector := &domain.User{Role: domain.RoleCollector, FullName: "Ana Cruz"}

	own := &domain.UnclaimedRecord{Collector: "Ana Cruz"}
	other := &domain.UnclaimedRecord{Collector: "Ben Reyes"}
	differentCase := &domain.UnclaimedRecord{Collector: "ana cruz"}
	padded := &domain.UnclaimedRecord{Collector: "Ana Cruz "}

	require.True(t, HasPermission(collector, domain.PermUpdateUnclaimed))
	require.True(t, CanPerformAction(collector, domain.PermUpdateUnclaimed, own))
	require.False(t, CanPerformAction(collector, domain.PermUpdateUnclaimed, other))
	require.False(t, CanPerformAction(collector, domain.PermUpdateUnclaimed, differentCase))
	require.False(t, CanPerformAction(collector, domain.PermUpdateUnclaimed, padded))

	// ownership only applies to updates
	require.True(t, CanPerformAction(collector, domain.PermMarkCollected, other))
	require.True(t, CanPerformAction(collector, domain.PermUpdateUnclaimed, nil))

	var missing *domain.UnclaimedRecord
	require.True(t, CanPerformAction(collector, domain.PermUpdateUnclaimed, missing))

	pending := &domain.PendingRecord{Collector: "Ben Reyes"}
	require.False(t, CanPerformAction(collector, domain.PermUpdateUnclaimed, pending))
}

func TestCanPerformActionOtherRolesIgnoreOwnership(t *testing.T) {
	record := &domain.UnclaimedRecord{Collector: "Someone Else"}

	require.True(t, CanPerformAction(&domain.User{Role: domain.RoleAdmin, FullName: "Root"}, domain.PermUpdateUnclaimed, record))
	require.True(t, CanPerformAction(&domain.User{Role: domain.RoleSpecialist}, domain.PermUpdateUnclaimed, record))
	require.False(t, CanPerformAction(&domain.User{Role: domain.RoleChecker}, domain.PermUpdateUnclaimed, record))
	require.False(t, CanPerformAction(nil, domain.PermViewUnclaimed, record))
}

func TestPermissionsReturnsCopy(t *testing.T) {
	perms := Permissions(domain.RoleStaff)
	require.Len(t, perms, 2)

	perms[0] = domain.PermDeleteUser
	require.False(t, HasPermission(&domain.User{Role: domain.RoleStaff}, domain.PermDeleteUser))

	require.Empty(t, Permissions("owner"))
	require.True(t, IsKnownRole("Cashier"))
	require.False(t, IsKnownRole("owner"))
}

func TestRolesWith(t *testing.T) {
	require.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleSpecialist, domain.RoleGeneralManager}, RolesWith(domain.PermExportReports))
	require.Equal(t, []domain.Role{domain.RoleAdmin}, RolesWith(domain.PermDeleteUser))
	require.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleSpecialist, domain.RoleCollector, domain.RoleCashier}, RolesWith(domain.PermMarkCollected))
}
