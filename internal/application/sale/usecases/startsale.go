package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type StartSaleCommand struct {
	Name           string
	Phases         int
	TokensPerPhase []int64
	InitialPrice   decimal.Decimal
	PriceIncrement []decimal.Decimal
}

type StartSaleResult struct {
	Sale ExtendedSaleView
}

type StartSaleUseCase struct {
	saleRepo sale.Repository
	tx       db.Tx
	logger   logger.Interface
}

func NewStartSaleUseCase(saleRepo sale.Repository, tx db.Tx, logger logger.Interface) *StartSaleUseCase {
	return &StartSaleUseCase{
		saleRepo: saleRepo,
		tx:       tx,
		logger:   logger,
	}
}

func (uc *StartSaleUseCase) Execute(ctx context.Context, cmd StartSaleCommand) (*StartSaleResult, error) {
	var started *sale.Sale

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		active, err := uc.saleRepo.GetActive(txCtx)
		if err != nil && !apperrors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to check for active sale", "error", err)
			return fmt.Errorf("failed to check for active sale: %w", err)
		}
		if active != nil {
			return apperrors.NewBadRequestError("Sale already ongoing",
				fmt.Sprintf("Sale with name %s is active", active.Name()),
				"Wait for current sale to finish or pause it before proceeding")
		}

		existing, err := uc.saleRepo.GetByName(txCtx, cmd.Name)
		if err != nil && !apperrors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to check sale name", "error", err, "sale_name", cmd.Name)
			return fmt.Errorf("failed to check sale name: %w", err)
		}
		if existing != nil {
			return apperrors.NewBadRequestError("Sale already exists",
				fmt.Sprintf("Sale with name %s already exists", cmd.Name))
		}

		started, err = sale.NewSale(cmd.Name, cmd.Phases, cmd.TokensPerPhase, cmd.InitialPrice, cmd.PriceIncrement)
		if err != nil {
			return err
		}

		if err := uc.saleRepo.Create(txCtx, started); err != nil {
			uc.logger.Errorw("failed to create sale", "error", err, "sale_name", cmd.Name)
			return fmt.Errorf("failed to create sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("sale started", "sale_name", started.Name(), "phases", started.Phases())
	return &StartSaleResult{Sale: NewExtendedSaleView(started)}, nil
}
