package mappers

import (
	"github.com/jubbslineu/tokensale/internal/domain/reward"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/models"
)

func RewardToModel(r *reward.Reward) *models.RewardModel {
	return &models.RewardModel{
		TelegramID:    r.TelegramID(),
		SaleName:      r.SaleName(),
		RefereeID:     r.RefereeID(),
		Amount:        r.Amount(),
		ReferralLevel: r.ReferralLevel(),
		CreatedAt:     r.CreatedAt(),
	}
}

func RewardToDomain(model *models.RewardModel) *reward.Reward {
	return reward.ReconstructReward(reward.RewardReconstructParams{
		TelegramID:    model.TelegramID,
		SaleName:      model.SaleName,
		RefereeID:     model.RefereeID,
		Amount:        model.Amount,
		ReferralLevel: model.ReferralLevel,
		CreatedAt:     model.CreatedAt,
	})
}

func PurchaseToModel(p *reward.Purchase) *models.PurchaseModel {
	return &models.PurchaseModel{
		TelegramID:  p.TelegramID(),
		SaleName:    p.SaleName(),
		PaymentCode: p.PaymentCode(),
		Amount:      p.Amount(),
		Price:       p.Price(),
		CreatedAt:   p.CreatedAt(),
	}
}

func PurchaseToDomain(model *models.PurchaseModel) *reward.Purchase {
	return reward.ReconstructPurchase(reward.PurchaseReconstructParams{
		TelegramID:  model.TelegramID,
		SaleName:    model.SaleName,
		PaymentCode: model.PaymentCode,
		Amount:      model.Amount,
		Price:       model.Price,
		CreatedAt:   model.CreatedAt,
	})
}
