package usecases

import (
	"context"
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/subscription"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type UpdateSubscriptionCommand struct {
	TelegramID string
	Profile    subscription.Profile
}

type UpdateSubscriptionResult struct {
	Subscription *subscription.Subscription
}

// UpdateSubscriptionUseCase replaces an existing member profile.
type UpdateSubscriptionUseCase struct {
	subRepo subscription.Repository
	tx      db.Tx
	logger  logger.Interface
}

func NewUpdateSubscriptionUseCase(subRepo subscription.Repository, tx db.Tx, logger logger.Interface) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{subRepo: subRepo, tx: tx, logger: logger}
}

func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) (*UpdateSubscriptionResult, error) {
	var updated *subscription.Subscription

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.subRepo.GetByTelegramID(txCtx, cmd.TelegramID)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return apperrors.NewBadRequestError("Subscription not found",
					"Subscription to update not found")
			}
			return fmt.Errorf("failed to look up subscription: %w", err)
		}

		existing.UpdateProfile(cmd.Profile)
		if err := uc.subRepo.Update(txCtx, existing); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("subscription updated", "telegram_id", cmd.TelegramID)
	return &UpdateSubscriptionResult{Subscription: updated}, nil
}
