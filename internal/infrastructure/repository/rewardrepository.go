package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jubbslineu/tokensale/internal/domain/reward"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/mappers"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/models"
	"github.com/jubbslineu/tokensale/internal/shared/db"
)

type RewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

var _ reward.Repository = (*RewardRepository)(nil)

func (r *RewardRepository) CreateBatch(ctx context.Context, rewards []*reward.Reward) error {
	if len(rewards) == 0 {
		return nil
	}

	rewardModels := make([]*models.RewardModel, len(rewards))
	for i, rw := range rewards {
		rewardModels[i] = mappers.RewardToModel(rw)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(rewardModels).Error; err != nil {
		return fmt.Errorf("failed to create rewards: %w", err)
	}
	return nil
}

func (r *RewardRepository) ListByRefereeID(ctx context.Context, refereeID string) ([]*reward.Reward, error) {
	var rewardModels []models.RewardModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("referee_id = ?", refereeID).
		Order("created_at DESC").
		Find(&rewardModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	rewards := make([]*reward.Reward, len(rewardModels))
	for i := range rewardModels {
		rewards[i] = mappers.RewardToDomain(&rewardModels[i])
	}
	return rewards, nil
}

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

var _ reward.PurchaseRepository = (*PurchaseRepository)(nil)

func (r *PurchaseRepository) Create(ctx context.Context, p *reward.Purchase) error {
	model := mappers.PurchaseToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) ListByTelegramID(ctx context.Context, telegramID string) ([]*reward.Purchase, error) {
	var purchaseModels []models.PurchaseModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("telegram_id = ?", telegramID).
		Order("created_at DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	purchases := make([]*reward.Purchase, len(purchaseModels))
	for i := range purchaseModels {
		purchases[i] = mappers.PurchaseToDomain(&purchaseModels[i])
	}
	return purchases, nil
}
