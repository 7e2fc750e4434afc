package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type ResumeSaleCommand struct {
	SaleName string
}

type ResumeSaleResult struct {
	Sale SaleView
}

type ResumeSaleUseCase struct {
	saleRepo sale.Repository
	tx       db.Tx
	logger   logger.Interface
}

func NewResumeSaleUseCase(saleRepo sale.Repository, tx db.Tx, logger logger.Interface) *ResumeSaleUseCase {
	return &ResumeSaleUseCase{
		saleRepo: saleRepo,
		tx:       tx,
		logger:   logger,
	}
}

func (uc *ResumeSaleUseCase) Execute(ctx context.Context, cmd ResumeSaleCommand) (*ResumeSaleResult, error) {
	var resumed *sale.Sale

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		active, err := uc.saleRepo.GetActive(txCtx)
		if err != nil && !apperrors.IsNotFoundError(err) {
			return fmt.Errorf("failed to check for active sale: %w", err)
		}
		if active != nil {
			return apperrors.NewBadRequestError("Sale is ongoing",
				fmt.Sprintf("Sale with name %s is active", active.Name()),
				"Please pause ongoing sale before resuming another one")
		}

		target, err := uc.saleRepo.GetByNameForUpdate(txCtx, cmd.SaleName)
		if err != nil {
			return err
		}

		if err := target.Resume(time.Now()); err != nil {
			return err
		}

		if err := uc.saleRepo.Update(txCtx, target); err != nil {
			uc.logger.Errorw("failed to resume sale", "error", err, "sale_name", target.Name())
			return fmt.Errorf("failed to resume sale: %w", err)
		}
		resumed = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("sale resumed", "sale_name", resumed.Name(), "paused_time", resumed.PausedTime())
	return &ResumeSaleResult{Sale: NewSaleView(resumed)}, nil
}
