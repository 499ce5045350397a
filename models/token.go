package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token is a session bearer token. The subject claim holds the GitHub user
// id the session is bound to.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// Login is informational; authorization uses UserID only.
	Login string `json:"login,omitempty"`

	SignedString string `json:"-"`
	UserID       int64  `json:"-"`
}

// String returns the compact signed form of the token.
func (t *Token) String() string {
	return t.SignedString
}
