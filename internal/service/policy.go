package service

import "fleetledger-backend/internal/domain"

type Permission string

const (
	PermViewDashboard       Permission = "VIEW_DASHBOARD"
	PermManageUsers         Permission = "MANAGE_USERS"
	PermManageSales         Permission = "MANAGE_SALES"
	PermManageCosts         Permission = "MANAGE_COSTS"
	PermViewReports         Permission = "VIEW_REPORTS"
	PermViewActivityLogs    Permission = "VIEW_ACTIVITY_LOGS"
	PermManageSettings      Permission = "MANAGE_SETTINGS"
	PermViewLimitedReports  Permission = "VIEW_LIMITED_REPORTS"
	PermViewProfile         Permission = "VIEW_PROFILE"
	PermViewOwnTransactions Permission = "VIEW_OWN_TRANSACTIONS"
)

// rolePermissions is static policy data, not logic. Unknown roles map to
// nothing: the policy never grants on a role it does not know.
var rolePermissions = map[domain.UserRole][]Permission{
	domain.RoleSuperadmin: {
		PermViewDashboard,
		PermManageUsers,
		PermManageSales,
		PermManageCosts,
		PermViewReports,
		PermViewActivityLogs,
		PermManageSettings,
	},
	domain.RoleManager: {
		PermManageSales,
		PermManageCosts,
		PermViewLimitedReports,
	},
	domain.RoleUser: {
		PermViewProfile,
		PermViewOwnTransactions,
	},
}

var roleRank = map[domain.UserRole]int{
	domain.RoleUser:       0,
	domain.RoleManager:    1,
	domain.RoleSuperadmin: 2,
}

// HasPermission is a pure set-membership check; fail-closed.
func HasPermission(role domain.UserRole, p Permission) bool {
	for _, granted := range rolePermissions[role] {
		if granted == p {
			return true
		}
	}
	return false
}

// MeetsRole reports whether role ranks at least as high as required.
// Unknown roles rank lowest; an unknown required role denies everyone.
func MeetsRole(role, required domain.UserRole) bool {
	requiredRank, ok := roleRank[required]
	if !ok {
		return false
	}
	rank, ok := roleRank[role]
	if !ok {
		return false
	}
	return rank >= requiredRank
}

// Permissions returns the permission set of a role (empty for unknown roles).
func Permissions(role domain.UserRole) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}
