package models

// User is an entry in the static user roster loaded at startup.
// Users are configuration, not database rows: there is no signup.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash,omitempty"`
	DisplayName  string `json:"display_name"`
}

// Public strips the credential hash for API responses.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// The roster is small and fixed, so lookups are linear scans.

func FindUserByID(users []User, id int) (*User, bool) {
	for i := range users {
		if users[i].ID == id {
			return &users[i], true
		}
	}
	return nil, false
}

func FindUserByUsername(users []User, username string) (*User, bool) {
	for i := range users {
		if users[i].Username == username {
			return &users[i], true
		}
	}
	return nil, false
}
