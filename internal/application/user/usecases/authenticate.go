package usecases

import (
	"context"
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/user"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type AuthenticateCommand struct {
	TelegramID string
	ReferrerID string
}

type AuthenticateResult struct {
	Token   string
	Created bool
}

// AuthenticateUseCase exchanges a Telegram identity for a signed token.
// First-time users must name a registered referrer; returning users just get
// a fresh token.
type AuthenticateUseCase struct {
	userRepo user.Repository
	tokens   TokenService
	tx       db.Tx
	logger   logger.Interface
}

func NewAuthenticateUseCase(userRepo user.Repository, tokens TokenService, tx db.Tx, logger logger.Interface) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		tx:       tx,
		logger:   logger,
	}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error) {
	if cmd.TelegramID == "" {
		return nil, apperrors.NewBadRequestError("Authentication Failed", "No user provided")
	}

	existing, err := uc.userRepo.GetByTelegramID(ctx, cmd.TelegramID)
	if err != nil && !apperrors.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if existing != nil {
		token, err := uc.tokens.Issue(existing.TelegramID(), string(existing.Role()))
		if err != nil {
			return nil, apperrors.NewInternalError("Authentication Failed", err.Error())
		}
		return &AuthenticateResult{Token: token}, nil
	}

	if cmd.ReferrerID == "" {
		return nil, apperrors.NewBadRequestError("Authentication Failed", "User ID not found")
	}

	var created *user.User
	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		referrer, err := uc.userRepo.GetByTelegramID(txCtx, cmd.ReferrerID)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return apperrors.NewBadRequestError("Authentication Failed", "Referrer not registered")
			}
			return fmt.Errorf("failed to look up referrer: %w", err)
		}

		referrerID := referrer.TelegramID()
		created, err = user.New(cmd.TelegramID, &referrerID, nil)
		if err != nil {
			return err
		}
		if err := uc.userRepo.Create(txCtx, created); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(created.TelegramID(), string(created.Role()))
	if err != nil {
		return nil, apperrors.NewInternalError("Authentication Failed", err.Error())
	}

	uc.logger.Infow("user registered",
		"telegram_id", created.TelegramID(), "referrer_id", cmd.ReferrerID)
	return &AuthenticateResult{Token: token, Created: true}, nil
}
