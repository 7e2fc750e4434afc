package user

import "context"

// Repository defines persistence operations for users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByTelegramID(ctx context.Context, telegramID string) (*User, error)
	ExistsByTelegramID(ctx context.Context, telegramID string) (bool, error)
}
