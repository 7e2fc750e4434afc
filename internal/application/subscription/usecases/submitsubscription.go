package usecases

import (
	"context"
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/subscription"
	"github.com/jubbslineu/tokensale/internal/domain/user"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type SubmitSubscriptionCommand struct {
	TelegramID string
	Profile    subscription.Profile
}

type SubmitSubscriptionResult struct {
	Token   string
	Created bool
}

// SubmitSubscriptionUseCase records a member profile and hands back a signed
// token for the member's Telegram identity. Subscriptions reference the users
// table, so an unknown identity gets a user row created implicitly, without
// a referrer.
type SubmitSubscriptionUseCase struct {
	subRepo  subscription.Repository
	userRepo user.Repository
	tokens   TokenIssuer
	tx       db.Tx
	logger   logger.Interface
}

func NewSubmitSubscriptionUseCase(
	subRepo subscription.Repository,
	userRepo user.Repository,
	tokens TokenIssuer,
	tx db.Tx,
	logger logger.Interface,
) *SubmitSubscriptionUseCase {
	return &SubmitSubscriptionUseCase{
		subRepo:  subRepo,
		userRepo: userRepo,
		tokens:   tokens,
		tx:       tx,
		logger:   logger,
	}
}

func (uc *SubmitSubscriptionUseCase) Execute(ctx context.Context, cmd SubmitSubscriptionCommand) (*SubmitSubscriptionResult, error) {
	if cmd.TelegramID == "" {
		return nil, apperrors.NewBadRequestError("Subscription failed", "No telegram ID provided")
	}

	result := &SubmitSubscriptionResult{}

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		exists, err := uc.userRepo.ExistsByTelegramID(txCtx, cmd.TelegramID)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if !exists {
			implicit, err := user.New(cmd.TelegramID, nil, nil)
			if err != nil {
				return err
			}
			if err := uc.userRepo.Create(txCtx, implicit); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
		}

		existing, err := uc.subRepo.GetByTelegramID(txCtx, cmd.TelegramID)
		if err != nil && !apperrors.IsNotFoundError(err) {
			return fmt.Errorf("failed to look up subscription: %w", err)
		}
		if existing != nil {
			return nil
		}

		sub, err := subscription.New(cmd.TelegramID, cmd.Profile)
		if err != nil {
			return err
		}
		if err := uc.subRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		result.Created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(cmd.TelegramID, string(user.RoleRegular))
	if err != nil {
		return nil, apperrors.NewInternalError("Subscription failed", err.Error())
	}
	result.Token = token

	if result.Created {
		uc.logger.Infow("subscription created", "telegram_id", cmd.TelegramID)
	}
	return result, nil
}
