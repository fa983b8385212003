package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeUsersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadUsers(t *testing.T) {
	path := writeUsersFile(t, `[
		{"id": 1, "username": "ana", "password_hash": "$2a$10$abc", "display_name": "Ana"},
		{"id": 2, "username": "bo", "password_hash": "$2a$10$def", "display_name": "Bo"}
	]`)

	users, err := LoadUsers(path)
	if err != nil {
		t.Fatalf("LoadUsers error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Username != "ana" || users[1].ID != 2 {
		t.Errorf("unexpected roster: %+v", users)
	}
}

func TestLoadUsers_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty roster", content: `[]`},
		{name: "not json", content: `nope`},
		{name: "missing hash", content: `[{"id": 1, "username": "ana"}]`},
		{name: "duplicate id", content: `[
			{"id": 1, "username": "ana", "password_hash": "x"},
			{"id": 1, "username": "bo", "password_hash": "y"}
		]`},
		{name: "duplicate username", content: `[
			{"id": 1, "username": "ana", "password_hash": "x"},
			{"id": 2, "username": "ana", "password_hash": "y"}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeUsersFile(t, tt.content)
			if _, err := LoadUsers(path); err == nil {
				t.Error("LoadUsers succeeded, want error")
			}
		})
	}
}

func TestLoadUsers_MissingFile(t *testing.T) {
	if _, err := LoadUsers(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadUsers succeeded on missing file, want error")
	}
}
