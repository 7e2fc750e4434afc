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

type GenerateTONPaymentCodeCommand struct {
	TelegramID string
	Amount     int64
}

type GenerateTONPaymentCodeResult struct {
	PaymentCode string
	Destination string
	PriceTON    string
	ExpireAt    time.Time
}

// GenerateTONPaymentCodeUseCase reserves tokens for a direct TON transfer.
// The buyer pays the quoted TON amount to the destination wallet with the
// payment code in the transfer comment.
type GenerateTONPaymentCodeUseCase struct {
	saleRepo      sale.Repository
	requestRepo   paymentrequest.Repository
	exchangeRates ExchangeRateService
	tx            db.Tx
	logger        logger.Interface
	destination   string
	requestTTL    time.Duration
}

func NewGenerateTONPaymentCodeUseCase(
	saleRepo sale.Repository,
	requestRepo paymentrequest.Repository,
	exchangeRates ExchangeRateService,
	tx db.Tx,
	logger logger.Interface,
	destination string,
	requestTTL time.Duration,
) *GenerateTONPaymentCodeUseCase {
	return &GenerateTONPaymentCodeUseCase{
		saleRepo:      saleRepo,
		requestRepo:   requestRepo,
		exchangeRates: exchangeRates,
		tx:            tx,
		logger:        logger,
		destination:   destination,
		requestTTL:    requestTTL,
	}
}

func (uc *GenerateTONPaymentCodeUseCase) Execute(ctx context.Context, cmd GenerateTONPaymentCodeCommand) (*GenerateTONPaymentCodeResult, error) {
	if cmd.Amount <= 0 {
		return nil, apperrors.NewBadRequestError("Invalid amount", "amount must be positive")
	}

	// Quote the TON rate before opening the transaction so no provider call
	// happens while the sale row is locked.
	tonPrice, err := uc.exchangeRates.USDPrice(ctx, "TON")
	if err != nil {
		uc.logger.Errorw("failed to fetch TON rate", "error", err)
		return nil, apperrors.NewInternalError("Currency conversion failed", err.Error())
	}
	if !tonPrice.IsPositive() {
		return nil, apperrors.NewInternalError("Currency conversion failed", "non-positive TON rate")
	}

	var request *paymentrequest.PaymentRequest

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
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
		priceTON := priceUSD.Div(tonPrice)

		request, err = paymentrequest.New(
			cmd.TelegramID, active.Name(), seqNo,
			paymentrequest.MethodTON, cmd.Amount, priceTON,
			uc.destination, uc.requestTTL,
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

	uc.logger.Infow("TON payment code generated",
		"telegram_id", cmd.TelegramID,
		"sale_name", request.SaleName(),
		"seq_no", request.SeqNo(),
		"amount", request.Amount())

	return &GenerateTONPaymentCodeResult{
		PaymentCode: request.Code(),
		Destination: request.Destination(),
		PriceTON:    request.Price().String(),
		ExpireAt:    request.ExpireAt(),
	}, nil
}
