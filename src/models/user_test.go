package models

import "testing"

var roster = []User{
	{ID: 1, Username: "ana", PasswordHash: "x", DisplayName: "Ana"},
	{ID: 2, Username: "bo", PasswordHash: "y", DisplayName: "Bo"},
}

func TestFindUserByID(t *testing.T) {
	u, ok := FindUserByID(roster, 2)
	if !ok || u.Username != "bo" {
		t.Fatalf("FindUserByID(2) = %+v, %v", u, ok)
	}
	if _, ok := FindUserByID(roster, 99); ok {
		t.Error("FindUserByID(99) found a user, want none")
	}
}

func TestFindUserByUsername(t *testing.T) {
	u, ok := FindUserByUsername(roster, "ana")
	if !ok || u.ID != 1 {
		t.Fatalf("FindUserByUsername(ana) = %+v, %v", u, ok)
	}
	if _, ok := FindUserByUsername(roster, "nobody"); ok {
		t.Error("FindUserByUsername(nobody) found a user, want none")
	}
}

func TestUserPublic(t *testing.T) {
	u := roster[0].Public()
	if u.PasswordHash != "" {
		t.Error("Public() must strip the password hash")
	}
	if u.ID != 1 || u.DisplayName != "Ana" {
		t.Errorf("Public() = %+v, identity fields changed", u)
	}
}
