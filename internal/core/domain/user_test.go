package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"":           RoleNone,
		"none":       RoleNone,
		"student":    RoleNone,
		"instructor": RoleInstructor,
		"admin":      RoleAdmin,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		if err != nil {
			t.Fatalf("ParseRole(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseRole("root"); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUser_HasRole(t *testing.T) {
	var nilUser *User
	if nilUser.HasRole(RoleAdmin) {
		t.Fatalf("nil user must not have a role")
	}

	u := &User{Email: "u@example.com"}
	if u.HasRole(RoleAdmin) || u.HasRole(RoleInstructor) {
		t.Fatalf("student must not hold admin or instructor")
	}

	u.Role = RoleAdmin
	if !u.HasRole(RoleAdmin) {
		t.Fatalf("expected admin")
	}
	if u.HasRole(RoleInstructor) {
		t.Fatalf("admin is not instructor")
	}
}
