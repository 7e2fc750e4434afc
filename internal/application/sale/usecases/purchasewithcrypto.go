package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type PurchaseWithCryptoCommand struct {
	TelegramID string
	Amount     int64
}

type PurchaseWithCryptoResult struct {
	PaymentURL string
}

// PurchaseWithCryptoUseCase reserves tokens and creates a hosted crypto
// payment with the provider. If the provider call fails after the
// reservation committed, the request is cancelled and the tokens released
// so no reservation dangles.
type PurchaseWithCryptoUseCase struct {
	saleRepo    sale.Repository
	requestRepo paymentrequest.Repository
	provider    PaymentProvider
	tx          db.Tx
	logger      logger.Interface
	receiver    string
	requestTTL  time.Duration
}

func NewPurchaseWithCryptoUseCase(
	saleRepo sale.Repository,
	requestRepo paymentrequest.Repository,
	provider PaymentProvider,
	tx db.Tx,
	logger logger.Interface,
	receiver string,
	requestTTL time.Duration,
) *PurchaseWithCryptoUseCase {
	return &PurchaseWithCryptoUseCase{
		saleRepo:    saleRepo,
		requestRepo: requestRepo,
		provider:    provider,
		tx:          tx,
		logger:      logger,
		receiver:    receiver,
		requestTTL:  requestTTL,
	}
}

func (uc *PurchaseWithCryptoUseCase) Execute(ctx context.Context, cmd PurchaseWithCryptoCommand) (*PurchaseWithCryptoResult, error) {
	if cmd.Amount <= 0 {
		return nil, apperrors.NewBadRequestError("Invalid amount", "amount must be positive")
	}

	var request *paymentrequest.PaymentRequest

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		active, err := uc.saleRepo.GetActiveForUpdate(txCtx)
		if err != nil {
			return err
		}

		if _, _, err := sweepExpired(txCtx, uc.saleRepo, uc.requestRepo, active, ""); err != nil {
			return err
		}

		pending, err := uc.requestRepo.GetPending(txCtx, cmd.TelegramID, active.Name())
		if err != nil && !apperrors.IsNotFoundError(err) {
			return fmt.Errorf("failed to check pending requests: %w", err)
		}
		if pending != nil {
			return apperrors.NewBadRequestError("Payment request active",
				"Cancel ongoing requests to create a new one")
		}

		seqNo, err := uc.requestRepo.CountBySale(txCtx, cmd.TelegramID, active.Name())
		if err != nil {
			return fmt.Errorf("failed to determine sequence number: %w", err)
		}

		priceUSD, err := active.TotalPrice(cmd.Amount)
		if err != nil {
			return err
		}

		request, err = paymentrequest.New(
			cmd.TelegramID, active.Name(), seqNo,
			paymentrequest.MethodChangellyCrypto, cmd.Amount, priceUSD,
			uc.receiver, uc.requestTTL,
		)
		if err != nil {
			return err
		}

		if err := active.Reserve(cmd.Amount); err != nil {
			return err
		}
		if err := uc.saleRepo.Update(txCtx, active); err != nil {
			return fmt.Errorf("failed to reserve tokens: %w", err)
		}
		if err := uc.requestRepo.Create(txCtx, request); err != nil {
			return fmt.Errorf("failed to create payment request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	paymentURL, err := uc.provider.CreatePayment(ctx, CreatePaymentParams{
		OrderID:         request.Code(),
		CustomerID:      cmd.TelegramID,
		NominalAmount:   request.Price(),
		NominalCurrency: "USD",
		Title:           fmt.Sprintf("Token purchase: %s", request.SaleName()),
		Description:     fmt.Sprintf("%d tokens", request.Amount()),
	})
	if err != nil {
		uc.logger.Errorw("provider payment creation failed",
			"error", err,
			"telegram_id", cmd.TelegramID,
			"payment_code", request.Code())
		if compErr := uc.compensate(ctx, request); compErr != nil {
			uc.logger.Errorw("failed to roll back reservation",
				"error", compErr, "payment_code", request.Code())
		}
		return nil, apperrors.NewInternalError("Changelly API request failed", err.Error())
	}

	uc.logger.Infow("crypto payment created",
		"telegram_id", cmd.TelegramID,
		"sale_name", request.SaleName(),
		"seq_no", request.SeqNo(),
		"amount", request.Amount())

	return &PurchaseWithCryptoResult{PaymentURL: paymentURL}, nil
}

// compensate cancels the committed reservation after a provider failure.
func (uc *PurchaseWithCryptoUseCase) compensate(ctx context.Context, request *paymentrequest.PaymentRequest) error {
	return uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		s, err := uc.saleRepo.GetByNameForUpdate(txCtx, request.SaleName())
		if err != nil {
			return err
		}

		stored, err := uc.requestRepo.GetByCode(txCtx, request.Code())
		if err != nil {
			return err
		}
		if err := stored.MarkCancelled(); err != nil {
			return err
		}
		if err := uc.requestRepo.Update(txCtx, stored); err != nil {
			return err
		}

		s.Release(stored.Amount())
		return uc.saleRepo.Update(txCtx, s)
	})
}
