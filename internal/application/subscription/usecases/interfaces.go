// Package usecases contains the subscription application use cases.
package usecases

// TokenIssuer signs identity tokens for subscription members.
type TokenIssuer interface {
	Issue(telegramID string, role string) (string, error)
}
