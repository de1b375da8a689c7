// Package model defines the transfer objects passed between layers.
package model

import "time"

// User is the transfer object for a user.
// A zero ID means the user has not been stored yet; an empty Email means
// the caller did not supply one.
type User struct {
	ID        int64     `json:"id,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasID reports whether the user carries a store-assigned identifier.
func (u *User) HasID() bool {
	return u.ID != 0
}

// HasEmail reports whether the user carries an email.
func (u *User) HasEmail() bool {
	return u.Email != ""
}

// Clone returns a shallow copy so callers can adjust fields without
// mutating the value they were handed.
func (u *User) Clone() *User {
	c := *u
	return &c
}
