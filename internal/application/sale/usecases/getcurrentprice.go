package usecases

import (
	"context"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type GetCurrentPriceResult struct {
	Price string
}

type GetCurrentPriceUseCase struct {
	saleRepo sale.Repository
	logger   logger.Interface
}

func NewGetCurrentPriceUseCase(saleRepo sale.Repository, logger logger.Interface) *GetCurrentPriceUseCase {
	return &GetCurrentPriceUseCase{
		saleRepo: saleRepo,
		logger:   logger,
	}
}

// Execute returns the active sale's current per-token price in USD.
func (uc *GetCurrentPriceUseCase) Execute(ctx context.Context) (*GetCurrentPriceResult, error) {
	active, err := uc.saleRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	return &GetCurrentPriceResult{Price: active.CurrentTokenPrice().StringFixed(2)}, nil
}
