package domain

import (
	"testing"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("alice@example.com", "digest", "Alice")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %s", user.Email)
	}

	if user.Name != "Alice" {
		t.Errorf("Expected name Alice, got %s", user.Name)
	}

	if user.Role != RoleUser {
		t.Errorf("Expected role %s, got %s", RoleUser, user.Role)
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Empty email is rejected
	_, err = NewUser("", "digest", "Alice")
	if err != ErrEmptyUserEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserEmail, err)
	}

	// Empty digest is rejected
	_, err = NewUser("alice@example.com", "", "Alice")
	if err != ErrEmptyUserDigest {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserDigest, err)
	}
}

func TestNewUserDefaultsNameToEmailLocalPart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email    string
		wantName string
	}{
		{"bob@example.com", "bob"},
		{"carol.smith@shop.example.org", "carol.smith"},
		{"no-at-sign", "no-at-sign"},
	}

	for _, tc := range tests {
		user, err := NewUser(tc.email, "digest", "")
		if err != nil {
			t.Fatalf("NewUser(%q): unexpected error %v", tc.email, err)
		}
		if user.Name != tc.wantName {
			t.Errorf("NewUser(%q): expected name %q, got %q", tc.email, tc.wantName, user.Name)
		}
	}
}

func TestUserIsAdmin(t *testing.T) {
	t.Parallel()

	admin := User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("Expected admin role to report IsAdmin")
	}

	regular := User{Role: RoleUser}
	if regular.IsAdmin() {
		t.Error("Expected user role to not report IsAdmin")
	}

	// Unknown role strings grant nothing
	other := User{Role: Role("moderator")}
	if other.IsAdmin() {
		t.Error("Expected unrecognized role to not report IsAdmin")
	}
}

func TestCanManageUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		callerID   int64
		callerRole Role
		targetID   int64
		want       bool
	}{
		{"owner manages self", 1, RoleUser, 1, true},
		{"non-owner denied", 1, RoleUser, 2, false},
		{"admin manages anyone", 9, RoleAdmin, 2, true},
		{"admin manages self", 9, RoleAdmin, 9, true},
		{"unknown role denied", 1, Role("moderator"), 2, false},
	}

	for _, tc := range tests {
		if got := CanManageUser(tc.callerID, tc.callerRole, tc.targetID); got != tc.want {
			t.Errorf("%s: CanManageUser(%d, %q, %d) = %v, want %v",
				tc.name, tc.callerID, tc.callerRole, tc.targetID, got, tc.want)
		}
	}
}
