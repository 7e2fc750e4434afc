package subscription

import "context"

// Repository defines persistence operations for subscriptions.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error
	GetByTelegramID(ctx context.Context, telegramID string) (*Subscription, error)
}
