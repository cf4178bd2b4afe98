package service

import (
	"testing"

	"fleetledger-backend/internal/domain"
)

func TestMeetsRole(t *testing.T) {
	tests := []struct {
		role     domain.UserRole
		required domain.UserRole
		want     bool
	}{
		{domain.RoleUser, domain.RoleUser, true},
		{domain.RoleUser, domain.RoleManager, false},
		{domain.RoleUser, domain.RoleSuperadmin, false},
		{domain.RoleManager, domain.RoleUser, true},
		{domain.RoleManager, domain.RoleManager, true},
		{domain.RoleManager, domain.RoleSuperadmin, false},
		{domain.RoleSuperadmin, domain.RoleUser, true},
		{domain.RoleSuperadmin, domain.RoleManager, true},
		{domain.RoleSuperadmin, domain.RoleSuperadmin, true},
		{"ghost", domain.RoleUser, false},
		{domain.RoleSuperadmin, "ghost", false},
	}
	for _, tt := range tests {
		if got := MeetsRole(tt.role, tt.required); got != tt.want {
			t.Errorf("MeetsRole(%q, %q) = %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role domain.UserRole
		perm Permission
		want bool
	}{
		{domain.RoleSuperadmin, PermManageUsers, true},
		{domain.RoleSuperadmin, PermViewActivityLogs, true},
		{domain.RoleManager, PermManageSales, true},
		{domain.RoleManager, PermManageCosts, true},
		{domain.RoleManager, PermManageUsers, false},
		{domain.RoleManager, PermViewActivityLogs, false},
		{domain.RoleUser, PermViewProfile, true},
		{domain.RoleUser, PermManageSales, false},
		{"ghost", PermViewProfile, false},
	}
	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.perm); got != tt.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestPermissionsCopy(t *testing.T) {
	perms := Permissions(domain.RoleManager)
	if len(perms) != 3 {
		t.Fatalf("manager permissions = %v", perms)
	}
	perms[0] = "MUTATED"
	if !HasPermission(domain.RoleManager, PermManageSales) {
		t.Error("mutating the returned slice leaked into policy data")
	}

	if got := Permissions("ghost"); len(got) != 0 {
		t.Errorf("unknown role permissions = %v, want empty", got)
	}
}
