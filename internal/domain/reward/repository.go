package reward

import "context"

// Repository defines persistence operations for rewards.
type Repository interface {
	CreateBatch(ctx context.Context, rewards []*Reward) error
	// ListByRefereeID returns the rewards credited to a referrer.
	ListByRefereeID(ctx context.Context, refereeID string) ([]*Reward, error)
}

// PurchaseRepository defines persistence operations for purchase records.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	ListByTelegramID(ctx context.Context, telegramID string) ([]*Purchase, error)
}
