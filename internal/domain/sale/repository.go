package sale

import "context"

// Repository persists sales. The ForUpdate variants lock the sale row for
// the duration of the surrounding transaction; all ledger mutations go
// through them so concurrent purchases cannot race on the counters.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	Update(ctx context.Context, s *Sale) error
	GetByName(ctx context.Context, name string) (*Sale, error)
	GetByNameForUpdate(ctx context.Context, name string) (*Sale, error)
	GetActive(ctx context.Context) (*Sale, error)
	GetActiveForUpdate(ctx context.Context) (*Sale, error)
}
