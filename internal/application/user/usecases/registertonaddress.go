package usecases

import (
	"context"
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/user"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type RegisterTONAddressCommand struct {
	TelegramID string
	Address    string
}

type RegisterTONAddressResult struct {
	TelegramID    string
	WalletAddress string
}

// RegisterTONAddressUseCase records the wallet address token allocations
// will be sent to.
type RegisterTONAddressUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewRegisterTONAddressUseCase(userRepo user.Repository, logger logger.Interface) *RegisterTONAddressUseCase {
	return &RegisterTONAddressUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *RegisterTONAddressUseCase) Execute(ctx context.Context, cmd RegisterTONAddressCommand) (*RegisterTONAddressResult, error) {
	if cmd.Address == "" {
		return nil, apperrors.NewBadRequestError("Invalid address", "address must not be empty")
	}

	u, err := uc.userRepo.GetByTelegramID(ctx, cmd.TelegramID)
	if err != nil {
		return nil, err
	}

	u.SetWalletAddress(cmd.Address)
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update wallet address: %w", err)
	}

	uc.logger.Infow("TON address registered", "telegram_id", cmd.TelegramID)
	return &RegisterTONAddressResult{
		TelegramID:    u.TelegramID(),
		WalletAddress: u.WalletAddress(),
	}, nil
}
