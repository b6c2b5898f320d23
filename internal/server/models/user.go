// Package models contains the server-side domain records persisted by the
// repositories and the public projections returned to callers.
package models

import "time"

// User is the identity record. Created by registration, mutated only by
// activation, never deleted.
type User struct {
	ID             string
	Email          string
	Nickname       string
	PasswordHash   string
	IsActivated    bool
	ActivationLink string
	CreatedAt      time.Time
}

// UserView is the sanitized projection of a User. It never carries the
// password hash or the activation link and is built fresh for every
// response.
type UserView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Nickname    string `json:"nickname"`
	IsActivated bool   `json:"isActivated"`
}

// NewUserView builds the public projection of u.
func NewUserView(u *User) UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		Nickname:    u.Nickname,
		IsActivated: u.IsActivated,
	}
}
