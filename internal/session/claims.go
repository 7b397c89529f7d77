// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/okunevich/petsearch/internal/platform/constants"
)

// AccessClaims is the decoded payload of the backend's JWT access token.
//
// # Trust Model
//
// The client cannot verify the HMAC signature (the key lives on the server),
// so claims are decoded without verification and used only for local
// decisions: expiry checks and diagnostics. Authorization always rests on
// the backend rejecting a bad token, never on these fields.
type AccessClaims struct {
	jwt.RegisteredClaims

	// SimpleJWT puts the numeric user ID in a custom claim.
	UserID int64 `json:"user_id,omitempty"`

	TokenType string `json:"token_type,omitempty"`
}

// unverifiedParser decodes without signature verification or claim validation.
var unverifiedParser = jwt.NewParser(jwt.WithoutClaimsValidation())

// ParseAccessClaims decodes the claims of an access token string.
func ParseAccessClaims(accessToken string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("session_parse_access_token: %w", err)
	}
	return claims, nil
}

// ExpiresSoon reports whether the token expires within the refresh leeway.
//
// Tokens without an exp claim are treated as non-expiring.
func (c *AccessClaims) ExpiresSoon(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return now.Add(constants.RefreshLeeway).After(c.ExpiresAt.Time)
}
