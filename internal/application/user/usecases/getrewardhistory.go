package usecases

import (
	"context"
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/reward"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type GetRewardHistoryCommand struct {
	TelegramID string
}

type GetRewardHistoryResult struct {
	// Rewards credited to the user for purchases down their referral chain.
	Rewards []*reward.Reward
	// Purchases the user made themselves.
	Purchases []*reward.Purchase
}

// GetRewardHistoryUseCase returns a user's referral earnings alongside their
// own confirmed purchases.
type GetRewardHistoryUseCase struct {
	rewardRepo   reward.Repository
	purchaseRepo reward.PurchaseRepository
	logger       logger.Interface
}

func NewGetRewardHistoryUseCase(
	rewardRepo reward.Repository,
	purchaseRepo reward.PurchaseRepository,
	logger logger.Interface,
) *GetRewardHistoryUseCase {
	return &GetRewardHistoryUseCase{
		rewardRepo:   rewardRepo,
		purchaseRepo: purchaseRepo,
		logger:       logger,
	}
}

func (uc *GetRewardHistoryUseCase) Execute(ctx context.Context, cmd GetRewardHistoryCommand) (*GetRewardHistoryResult, error) {
	rewards, err := uc.rewardRepo.ListByRefereeID(ctx, cmd.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	purchases, err := uc.purchaseRepo.ListByTelegramID(ctx, cmd.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	return &GetRewardHistoryResult{Rewards: rewards, Purchases: purchases}, nil
}
