package usecases

import (
	"context"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/domain/reward"
	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/domain/user"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

// Fiat order statuses reported by the provider.
const (
	FiatStatusCreated  = "created"
	FiatStatusPending  = "pending"
	FiatStatusHold     = "hold"
	FiatStatusRefunded = "refunded"
	FiatStatusExpired  = "expired"
	FiatStatusFailed   = "failed"
	FiatStatusComplete = "complete"
)

type HandleFiatCallbackCommand struct {
	Status      string
	PaymentCode string
}

// HandleFiatCallbackUseCase applies a verified fiat payment callback to the
// ledger. Non-final statuses are acknowledged without mutating anything so
// the provider stops retrying.
type HandleFiatCallbackUseCase struct {
	finalizer finalizer
}

func NewHandleFiatCallbackUseCase(
	saleRepo sale.Repository,
	requestRepo paymentrequest.Repository,
	userRepo user.Repository,
	rewardRepo reward.Repository,
	purchaseRepo reward.PurchaseRepository,
	tx db.Tx,
	logger logger.Interface,
) *HandleFiatCallbackUseCase {
	return &HandleFiatCallbackUseCase{
		finalizer: finalizer{
			saleRepo:     saleRepo,
			requestRepo:  requestRepo,
			userRepo:     userRepo,
			rewardRepo:   rewardRepo,
			purchaseRepo: purchaseRepo,
			tx:           tx,
			logger:       logger,
		},
	}
}

func (uc *HandleFiatCallbackUseCase) Execute(ctx context.Context, cmd HandleFiatCallbackCommand) error {
	if cmd.PaymentCode == "" {
		return apperrors.NewBadRequestError("Fiat callback failed",
			"No payment code (order_id) found in body")
	}

	switch cmd.Status {
	case FiatStatusComplete:
		return uc.finalizer.settle(ctx, cmd.PaymentCode)
	case FiatStatusFailed:
		return uc.finalizer.reject(ctx, cmd.PaymentCode, paymentrequest.StatusFailed)
	case FiatStatusExpired, FiatStatusRefunded:
		return uc.finalizer.reject(ctx, cmd.PaymentCode, paymentrequest.StatusCancelled)
	case FiatStatusCreated, FiatStatusPending, FiatStatusHold:
		uc.finalizer.logger.Debugw("fiat callback acknowledged",
			"status", cmd.Status, "payment_code", cmd.PaymentCode)
		return nil
	default:
		return apperrors.NewBadRequestError("Fiat callback failed",
			"Invalid status: "+cmd.Status)
	}
}
