// Package usecases contains the payment callback use cases. Callbacks are
// the only path that settles a payment request; both provider schemes funnel
// into the shared settlement logic here.
package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/domain/reward"
	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/domain/user"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

// userReferrerSource resolves referral chain links through the user
// repository for the reward distribution walk.
type userReferrerSource struct {
	users user.Repository
}

func (s userReferrerSource) GetReferrer(ctx context.Context, telegramID string) (*reward.Referrer, error) {
	u, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	if u.ReferrerID() == nil {
		return nil, nil
	}

	r, err := s.users.GetByTelegramID(ctx, *u.ReferrerID())
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &reward.Referrer{
		TelegramID: r.TelegramID(),
		ReferrerID: r.ReferrerID(),
		LevelRates: r.ReferralRewardLevelRates(),
	}, nil
}

// finalizer applies a verified payment outcome to the ledger. All mutations
// for one outcome run in a single transaction with the sale row locked.
type finalizer struct {
	saleRepo     sale.Repository
	requestRepo  paymentrequest.Repository
	userRepo     user.Repository
	rewardRepo   reward.Repository
	purchaseRepo reward.PurchaseRepository
	tx           db.Tx
	logger       logger.Interface
}

// pendingByCode loads the request for a callback and checks it is still
// PENDING. Requests in a final state cannot be settled again.
func (f *finalizer) pendingByCode(ctx context.Context, paymentCode string) (*paymentrequest.PaymentRequest, error) {
	request, err := f.requestRepo.GetByCode(ctx, paymentCode)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("Payment request not found",
				"No pending payment request with given code")
		}
		return nil, err
	}
	if request.Status() != paymentrequest.StatusPending {
		return nil, apperrors.NewConflictError("Payment request not pending",
			fmt.Sprintf("Payment request is %s", request.Status()))
	}
	return request, nil
}

// settle marks the request PAID, records the purchase, distributes referral
// rewards and confirms the sale ledger update.
func (f *finalizer) settle(ctx context.Context, paymentCode string) error {
	return f.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		request, err := f.pendingByCode(txCtx, paymentCode)
		if err != nil {
			return err
		}

		s, err := f.saleRepo.GetByNameForUpdate(txCtx, request.SaleName())
		if err != nil {
			return err
		}

		if err := request.MarkPaid(); err != nil {
			return err
		}
		if err := f.requestRepo.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to mark request paid: %w", err)
		}

		purchase, err := reward.NewPurchase(
			request.TelegramID(), request.SaleName(), request.Code(),
			request.Amount(), request.Price(),
		)
		if err != nil {
			return err
		}
		if err := f.purchaseRepo.Create(txCtx, purchase); err != nil {
			return fmt.Errorf("failed to record purchase: %w", err)
		}

		if _, err := f.userRepo.GetByTelegramID(txCtx, request.TelegramID()); err != nil {
			if apperrors.IsNotFoundError(err) {
				return apperrors.NewNotFoundError("Buyer not found",
					"No user found for the provided telegramId (customer_id)")
			}
			return err
		}

		distributor := reward.NewDistributor(userReferrerSource{users: f.userRepo})
		rewards, err := distributor.Distribute(txCtx,
			request.TelegramID(), request.SaleName(), decimal.NewFromInt(request.Amount()))
		if err != nil {
			return fmt.Errorf("reward distribution failed: %w", err)
		}
		if len(rewards) > 0 {
			if err := f.rewardRepo.CreateBatch(txCtx, rewards); err != nil {
				return fmt.Errorf("failed to persist rewards: %w", err)
			}
		}

		s.ConfirmPurchase(request.Amount(), reward.TotalAmount(rewards))
		if err := f.saleRepo.Update(txCtx, s); err != nil {
			return fmt.Errorf("failed to confirm purchase: %w", err)
		}

		f.logger.Infow("payment settled",
			"telegram_id", request.TelegramID(),
			"sale_name", request.SaleName(),
			"seq_no", request.SeqNo(),
			"amount", request.Amount(),
			"rewards", len(rewards))
		return nil
	})
}

// reject marks the request FAILED or CANCELLED and releases its reserved
// tokens back to the open supply.
func (f *finalizer) reject(ctx context.Context, paymentCode string, terminal paymentrequest.Status) error {
	return f.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		request, err := f.pendingByCode(txCtx, paymentCode)
		if err != nil {
			return err
		}

		s, err := f.saleRepo.GetByNameForUpdate(txCtx, request.SaleName())
		if err != nil {
			return err
		}

		switch terminal {
		case paymentrequest.StatusFailed:
			err = request.MarkFailed()
		case paymentrequest.StatusCancelled:
			err = request.MarkCancelled()
		default:
			err = fmt.Errorf("invalid terminal status: %s", terminal)
		}
		if err != nil {
			return err
		}
		if err := f.requestRepo.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}

		s.Release(request.Amount())
		if err := f.saleRepo.Update(txCtx, s); err != nil {
			return fmt.Errorf("failed to release reserved tokens: %w", err)
		}

		f.logger.Infow("payment rejected",
			"telegram_id", request.TelegramID(),
			"sale_name", request.SaleName(),
			"seq_no", request.SeqNo(),
			"status", terminal)
		return nil
	})
}
