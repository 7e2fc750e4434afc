package usecases

import (
	"context"
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/domain/user"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type EditReceivingAddressCommand struct {
	SaleName   string
	TelegramID string
	NewAddress string
}

type EditReceivingAddressResult struct {
	TelegramID    string
	WalletAddress string
}

// EditReceivingAddressUseCase updates the buyer's token receiving address.
// The sale must have address editing enabled.
type EditReceivingAddressUseCase struct {
	saleRepo sale.Repository
	userRepo user.Repository
	tx       db.Tx
	logger   logger.Interface
}

func NewEditReceivingAddressUseCase(
	saleRepo sale.Repository,
	userRepo user.Repository,
	tx db.Tx,
	logger logger.Interface,
) *EditReceivingAddressUseCase {
	return &EditReceivingAddressUseCase{
		saleRepo: saleRepo,
		userRepo: userRepo,
		tx:       tx,
		logger:   logger,
	}
}

func (uc *EditReceivingAddressUseCase) Execute(ctx context.Context, cmd EditReceivingAddressCommand) (*EditReceivingAddressResult, error) {
	if cmd.NewAddress == "" {
		return nil, apperrors.NewBadRequestError("Invalid address", "newReceivingAddress must not be empty")
	}

	var updated *user.User

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		s, err := uc.saleRepo.GetByName(txCtx, cmd.SaleName)
		if err != nil {
			return err
		}
		if !s.ReceivingAddressEditable() {
			return apperrors.NewBadRequestError("Address editing disabled",
				fmt.Sprintf("Receiving address editing is not enabled for sale %s", cmd.SaleName))
		}

		u, err := uc.userRepo.GetByTelegramID(txCtx, cmd.TelegramID)
		if err != nil {
			return err
		}

		u.SetWalletAddress(cmd.NewAddress)
		if err := uc.userRepo.Update(txCtx, u); err != nil {
			return fmt.Errorf("failed to update wallet address: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("receiving address updated",
		"telegram_id", cmd.TelegramID, "sale_name", cmd.SaleName)

	return &EditReceivingAddressResult{
		TelegramID:    updated.TelegramID(),
		WalletAddress: updated.WalletAddress(),
	}, nil
}
