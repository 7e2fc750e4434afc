package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type PauseSaleResult struct {
	Sale SaleView
}

type PauseSaleUseCase struct {
	saleRepo sale.Repository
	tx       db.Tx
	logger   logger.Interface
}

func NewPauseSaleUseCase(saleRepo sale.Repository, tx db.Tx, logger logger.Interface) *PauseSaleUseCase {
	return &PauseSaleUseCase{
		saleRepo: saleRepo,
		tx:       tx,
		logger:   logger,
	}
}

func (uc *PauseSaleUseCase) Execute(ctx context.Context) (*PauseSaleResult, error) {
	var paused *sale.Sale

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		active, err := uc.saleRepo.GetActiveForUpdate(txCtx)
		if err != nil {
			return err
		}

		if err := active.Pause(time.Now()); err != nil {
			return err
		}

		if err := uc.saleRepo.Update(txCtx, active); err != nil {
			uc.logger.Errorw("failed to pause sale", "error", err, "sale_name", active.Name())
			return fmt.Errorf("failed to pause sale: %w", err)
		}
		paused = active
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("sale paused", "sale_name", paused.Name())
	return &PauseSaleResult{Sale: NewSaleView(paused)}, nil
}
