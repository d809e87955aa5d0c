package models

import "aparecida-web/app/dates"

// User is a back-office account.
type User struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Password  string       `json:"-"`
	Name      string       `json:"name"`
	Role      Role         `json:"role"`
	CreatedAt dates.Millis `json:"created_at"`
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
