package models

import "fmt"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a roster record. Password is only ever populated on records
// fetched from or sent to the API; anything held client-side goes through
// Sanitized first.
type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password,omitempty"`
	Role      Role    `json:"role"`
	IsDisable bool    `json:"isDisable"`
	Favorites []Movie `json:"favorites"`
}

// Sanitized returns a copy without the password and with its own
// favorites slice.
func (u User) Sanitized() User {
	u.Password = ""
	favs := make([]Movie, len(u.Favorites))
	copy(favs, u.Favorites)
	u.Favorites = favs
	return u
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) String() string {
	state := "active"
	if u.IsDisable {
		state = "disabled"
	}
	return fmt.Sprintf("[%s] %s <%s> %s %s", u.ID, u.Username, u.Email, u.Role, state)
}
