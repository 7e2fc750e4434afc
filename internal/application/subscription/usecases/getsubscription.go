package usecases

import (
	"context"

	"github.com/jubbslineu/tokensale/internal/domain/subscription"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type GetSubscriptionCommand struct {
	TelegramID string
}

type GetSubscriptionResult struct {
	Subscription *subscription.Subscription
}

// GetSubscriptionUseCase looks up a member profile by Telegram identity.
type GetSubscriptionUseCase struct {
	subRepo subscription.Repository
	logger  logger.Interface
}

func NewGetSubscriptionUseCase(subRepo subscription.Repository, logger logger.Interface) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{subRepo: subRepo, logger: logger}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, cmd GetSubscriptionCommand) (*GetSubscriptionResult, error) {
	sub, err := uc.subRepo.GetByTelegramID(ctx, cmd.TelegramID)
	if err != nil {
		return nil, err
	}
	return &GetSubscriptionResult{Subscription: sub}, nil
}
