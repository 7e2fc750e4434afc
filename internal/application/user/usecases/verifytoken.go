package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/user"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type VerifyTokenCommand struct {
	Token string
	// TelegramID enables renewal of an expired token. Optional.
	TelegramID string
}

type VerifyTokenResult struct {
	Token string
}

// VerifyTokenUseCase validates a token and re-issues a fresh one. An expired
// token can be renewed when the caller supplies their telegram ID alongside.
type VerifyTokenUseCase struct {
	userRepo user.Repository
	tokens   TokenService
	logger   logger.Interface
}

func NewVerifyTokenUseCase(userRepo user.Repository, tokens TokenService, logger logger.Interface) *VerifyTokenUseCase {
	return &VerifyTokenUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *VerifyTokenUseCase) Execute(ctx context.Context, cmd VerifyTokenCommand) (*VerifyTokenResult, error) {
	telegramID, err := uc.tokens.Verify(cmd.Token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) && cmd.TelegramID != "" {
			telegramID = cmd.TelegramID
		} else {
			return nil, apperrors.NewUnauthorizedError("Authentication Failed",
				"Invalid user JWT", err.Error())
		}
	}

	u, err := uc.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewUnauthorizedError("Authentication Failed",
				"Invalid user JWT", "User not registered")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if cmd.TelegramID != "" && cmd.TelegramID != u.TelegramID() {
		return nil, apperrors.NewUnauthorizedError("Authentication Failed",
			"Provided user and JWT doesn't match")
	}

	token, err := uc.tokens.Issue(u.TelegramID(), string(u.Role()))
	if err != nil {
		return nil, apperrors.NewInternalError("Authentication Failed", err.Error())
	}
	return &VerifyTokenResult{Token: token}, nil
}
