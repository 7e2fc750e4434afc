// Package usecases contains the user application use cases.
package usecases

import "errors"

// Token verification failure modes. Expired tokens can be renewed when the
// caller also supplies their telegram ID; invalid tokens never can.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenService issues and verifies user identity tokens.
type TokenService interface {
	Issue(telegramID string, role string) (string, error)
	// Verify returns the telegram ID the token was issued for, or
	// ErrTokenExpired / ErrTokenInvalid.
	Verify(token string) (string, error)
}
