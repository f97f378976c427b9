package models

import "time"

// User is an account known to the identity provider. UID is the stable
// identifier under which the user's document is stored.
type User struct {
	UID       string    `json:"uid"`
	Login     string    `json:"login"`
	Password  string    `json:"password,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Token is a signed session token together with the uid extracted from its
// subject claim.
type Token struct {
	SignedString string `json:"token"`
	UID          string `json:"uid"`
}
