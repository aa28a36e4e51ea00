package model

import "testing"

func TestIdentityRoles(t *testing.T) {
	user := Identity{UserID: 2, Role: RoleUser}
	admin := Identity{UserID: 1, Role: RoleAdmin}

	if !user.HasRole(RoleUser) || user.HasRole(RoleAdmin) {
		t.Fatalf("user role checks wrong")
	}
	if !admin.HasRole(RoleUser) || !admin.HasRole(RoleAdmin) {
		t.Fatalf("admin must satisfy every role")
	}
	if !user.CanAccess(2) || user.CanAccess(3) {
		t.Fatalf("user ownership checks wrong")
	}
	if !admin.CanAccess(3) {
		t.Fatalf("admin must access any resource")
	}
	if UserRole("teacher").Valid() {
		t.Fatalf("teacher must not be a valid role")
	}
}
