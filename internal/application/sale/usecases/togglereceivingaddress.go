package usecases

import (
	"context"
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type ToggleReceivingAddressCommand struct {
	SaleName string
	Allow    bool
}

// ToggleReceivingAddressUseCase enables or disables receiving address
// editing for a sale. Admin only.
type ToggleReceivingAddressUseCase struct {
	saleRepo sale.Repository
	tx       db.Tx
	logger   logger.Interface
}

func NewToggleReceivingAddressUseCase(saleRepo sale.Repository, tx db.Tx, logger logger.Interface) *ToggleReceivingAddressUseCase {
	return &ToggleReceivingAddressUseCase{
		saleRepo: saleRepo,
		tx:       tx,
		logger:   logger,
	}
}

func (uc *ToggleReceivingAddressUseCase) Execute(ctx context.Context, cmd ToggleReceivingAddressCommand) error {
	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		s, err := uc.saleRepo.GetByNameForUpdate(txCtx, cmd.SaleName)
		if err != nil {
			return err
		}

		s.SetReceivingAddressEditable(cmd.Allow)
		if err := uc.saleRepo.Update(txCtx, s); err != nil {
			return fmt.Errorf("failed to toggle address editing: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("receiving address editing toggled",
		"sale_name", cmd.SaleName, "allow", cmd.Allow)
	return nil
}
