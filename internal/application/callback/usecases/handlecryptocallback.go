package usecases

import (
	"context"
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/domain/reward"
	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/domain/user"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

// Crypto payment states reported by the provider.
const (
	CryptoStateCompleted = "COMPLETED"
	CryptoStateFailed    = "FAILED"
	CryptoStateCanceled  = "CANCELED"
)

type HandleCryptoCallbackCommand struct {
	State       string
	CustomerID  string
	PaymentCode string
}

// HandleCryptoCallbackUseCase applies a verified crypto payment callback to
// the ledger. The middleware has already checked the callback signature.
type HandleCryptoCallbackUseCase struct {
	finalizer finalizer
}

func NewHandleCryptoCallbackUseCase(
	saleRepo sale.Repository,
	requestRepo paymentrequest.Repository,
	userRepo user.Repository,
	rewardRepo reward.Repository,
	purchaseRepo reward.PurchaseRepository,
	tx db.Tx,
	logger logger.Interface,
) *HandleCryptoCallbackUseCase {
	return &HandleCryptoCallbackUseCase{
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

func (uc *HandleCryptoCallbackUseCase) Execute(ctx context.Context, cmd HandleCryptoCallbackCommand) error {
	if cmd.CustomerID == "" {
		return apperrors.NewBadRequestError("Crypto callback failed",
			"No telegramId (customer_id) found in body")
	}
	if cmd.PaymentCode == "" {
		return apperrors.NewBadRequestError("Crypto callback failed",
			"No payment code (order_id) found in body")
	}

	request, err := uc.finalizer.requestRepo.GetByCode(ctx, cmd.PaymentCode)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return apperrors.NewNotFoundError("Crypto callback failed",
				"No pending payment request with given code")
		}
		return err
	}
	if request.TelegramID() != cmd.CustomerID {
		return apperrors.NewBadRequestError("Crypto callback failed",
			"Mismatched telegramId (customer_id)")
	}

	switch cmd.State {
	case CryptoStateCompleted:
		return uc.finalizer.settle(ctx, cmd.PaymentCode)
	case CryptoStateFailed:
		return uc.finalizer.reject(ctx, cmd.PaymentCode, paymentrequest.StatusFailed)
	case CryptoStateCanceled:
		return uc.finalizer.reject(ctx, cmd.PaymentCode, paymentrequest.StatusCancelled)
	default:
		return apperrors.NewBadRequestError("Crypto callback failed",
			fmt.Sprintf("Invalid state: %s", cmd.State))
	}
}
