package session

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StorageKey is the fixed key the single session blob lives under.
const StorageKey = "dab_auth_tokens"

// Tokens are treated as expired slightly before their actual expiry so a
// request does not race the boundary.
const expirySlack = 30 * time.Second

// AdminGroup is the group claim value that grants write access.
const AdminGroup = "admins"

// Session is the locally persisted authentication record. It is created on
// redirect-back from the hosted login and replaced wholesale on each
// successful login, never merged.
type Session struct {
	IDToken     string   `json:"id_token"`
	AccessToken string   `json:"access_token"`
	ExpiresAt   int64    `json:"expires_at"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Groups      []string `json:"groups"`
}

// Expired reports whether the session can no longer back an API call. A nil
// session counts as expired.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt == 0 {
		return true
	}
	return now.Add(expirySlack).Unix() >= s.ExpiresAt
}

// IsAdmin reports whether the session's groups contain the admin group.
func (s *Session) IsAdmin() bool {
	return s != nil && slices.Contains(s.Groups, AdminGroup)
}

// Who returns the display identity for the auth status line.
func (s *Session) Who() string {
	switch {
	case s == nil:
		return ""
	case s.Email != "":
		return s.Email
	case s.Name != "":
		return s.Name
	default:
		return "Signed in"
	}
}

// ClaimsFromToken decodes the payload segment of a JWT-like token without
// verifying its signature. Signature verification is delegated to the API
// backend; the claims extracted here only label the UI and gate controls.
// Decode failure yields empty claims rather than an error.
func ClaimsFromToken(tokenStr string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return jwt.MapClaims{}
	}
	return claims
}
