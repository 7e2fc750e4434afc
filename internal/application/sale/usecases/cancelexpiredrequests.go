package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type CancelExpiredRequestsCommand struct {
	// Method restricts the sweep to one payment method. Zero sweeps all.
	Method paymentrequest.Method
}

type CancelExpiredRequestsResult struct {
	Cancelled      int64
	ReleasedAmount int64
}

// CancelExpiredRequestsUseCase sweeps expired pending payment requests for
// the active sale, returning their reserved tokens to the open supply. It
// runs on a schedule and inline before each new reservation.
type CancelExpiredRequestsUseCase struct {
	saleRepo    sale.Repository
	requestRepo paymentrequest.Repository
	tx          db.Tx
	logger      logger.Interface
}

func NewCancelExpiredRequestsUseCase(
	saleRepo sale.Repository,
	requestRepo paymentrequest.Repository,
	tx db.Tx,
	logger logger.Interface,
) *CancelExpiredRequestsUseCase {
	return &CancelExpiredRequestsUseCase{
		saleRepo:    saleRepo,
		requestRepo: requestRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (uc *CancelExpiredRequestsUseCase) Execute(ctx context.Context, cmd CancelExpiredRequestsCommand) (*CancelExpiredRequestsResult, error) {
	result := &CancelExpiredRequestsResult{}

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		active, err := uc.saleRepo.GetActiveForUpdate(txCtx)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return nil
			}
			return err
		}

		released, cancelled, err := sweepExpired(txCtx, uc.saleRepo, uc.requestRepo, active, cmd.Method)
		if err != nil {
			return err
		}
		result.Cancelled = cancelled
		result.ReleasedAmount = released
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Cancelled > 0 {
		uc.logger.Infow("expired payment requests cancelled",
			"cancelled", result.Cancelled, "released_amount", result.ReleasedAmount)
	}
	return result, nil
}

// sweepExpired cancels the sale's expired pending requests and releases
// their reserved tokens. The caller must hold the sale row lock and persist
// runs inside the same transaction.
func sweepExpired(
	ctx context.Context,
	saleRepo sale.Repository,
	requestRepo paymentrequest.Repository,
	s *sale.Sale,
	method paymentrequest.Method,
) (released int64, cancelled int64, err error) {
	now := time.Now().UTC()

	released, err = requestRepo.SumExpiredPending(ctx, s.Name(), method, now)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum expired requests: %w", err)
	}
	if released == 0 {
		return 0, 0, nil
	}

	cancelled, err = requestRepo.CancelExpiredPending(ctx, s.Name(), method, now)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to cancel expired requests: %w", err)
	}

	s.Release(released)
	if err := saleRepo.Update(ctx, s); err != nil {
		return 0, 0, fmt.Errorf("failed to release reserved tokens: %w", err)
	}
	return released, cancelled, nil
}
