package models

import "time"

// RefreshToken is the server-side record of the single live refresh token
// for a user. user_id is the unique key; saving for the same user replaces
// the previous value.
type RefreshToken struct {
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
