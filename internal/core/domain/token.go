package domain

import "errors"

var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalidSignature = errors.New("token signature invalid")
var ErrTokenMalformed = errors.New("token malformed")

// TokenClaims is the verified content of a bearer token: the subject identity
// and role it was issued for. Tokens are not persisted; validity is purely a
// function of signature and expiry.
type TokenClaims struct {
	Email string
	Role  Role
}
