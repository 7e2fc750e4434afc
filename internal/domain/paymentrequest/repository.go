package paymentrequest

import (
	"context"
	"time"
)

// Repository defines persistence operations for payment requests.
type Repository interface {
	Create(ctx context.Context, request *PaymentRequest) error
	Update(ctx context.Context, request *PaymentRequest) error
	GetByCode(ctx context.Context, code string) (*PaymentRequest, error)
	// GetPending returns the user's sole pending request for the sale, or a
	// not-found error when none exists.
	GetPending(ctx context.Context, telegramID, saleName string) (*PaymentRequest, error)
	// CountBySale returns how many requests the user has ever created for
	// the sale, in any status. The count is the next sequence number.
	CountBySale(ctx context.Context, telegramID, saleName string) (int, error)
	// SumExpiredPending totals the reserved token amount of pending requests
	// for the sale whose expiry is at or before now. A zero method matches
	// every payment method.
	SumExpiredPending(ctx context.Context, saleName string, method Method, now time.Time) (int64, error)
	// CancelExpiredPending cancels all pending requests for the sale whose
	// expiry is at or before now, returning how many were cancelled. A zero
	// method matches every payment method.
	CancelExpiredPending(ctx context.Context, saleName string, method Method, now time.Time) (int64, error)
}
