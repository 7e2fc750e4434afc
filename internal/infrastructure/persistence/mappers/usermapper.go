package mappers

import (
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/user"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/models"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		TelegramID:               u.TelegramID(),
		Role:                     string(u.Role()),
		ReferrerID:               u.ReferrerID(),
		ReferralRewardLevelRates: models.DecimalSlice(u.ReferralRewardLevelRates()),
		WalletAddress:            u.WalletAddress(),
		CreatedAt:                u.CreatedAt(),
		UpdatedAt:                u.UpdatedAt(),
	}
}

func UserToDomain(model *models.UserModel) (*user.User, error) {
	role := user.Role(model.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid user role: %s", model.Role)
	}

	return user.Reconstruct(user.ReconstructParams{
		TelegramID:               model.TelegramID,
		Role:                     role,
		ReferrerID:               model.ReferrerID,
		ReferralRewardLevelRates: model.ReferralRewardLevelRates,
		WalletAddress:            model.WalletAddress,
		CreatedAt:                model.CreatedAt,
		UpdatedAt:                model.UpdatedAt,
	}), nil
}
