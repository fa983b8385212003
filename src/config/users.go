package config

import (
	"budget-tracker-server/src/models"
	"encoding/json"
	"fmt"
	"os"
)

// LoadUsers reads the static user roster from a JSON file. Each entry
// carries a bcrypt password hash; plaintext passwords never touch the
// repository or the environment.
func LoadUsers(path string) ([]models.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("users file %s contains no users", path)
	}

	seenIDs := make(map[int]bool)
	seenNames := make(map[string]bool)
	for _, u := range users {
		if u.ID <= 0 || u.Username == "" || u.PasswordHash == "" {
			return nil, fmt.Errorf("user %q: id, username and password_hash are required", u.Username)
		}
		if seenIDs[u.ID] {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		if seenNames[u.Username] {
			return nil, fmt.Errorf("duplicate username %q", u.Username)
		}
		seenIDs[u.ID] = true
		seenNames[u.Username] = true
	}

	return users, nil
}
