package types

import "github.com/google/uuid"

// TokenClaims is the decoded identity carried by a JWT.
type TokenClaims struct {
	UserID uuid.UUID
	Name   string
	Role   string
}
