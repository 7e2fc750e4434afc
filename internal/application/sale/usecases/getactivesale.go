package usecases

import (
	"context"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type GetActiveSaleResult struct {
	Sale ExtendedSaleView
}

type GetActiveSaleUseCase struct {
	saleRepo sale.Repository
	logger   logger.Interface
}

func NewGetActiveSaleUseCase(saleRepo sale.Repository, logger logger.Interface) *GetActiveSaleUseCase {
	return &GetActiveSaleUseCase{
		saleRepo: saleRepo,
		logger:   logger,
	}
}

func (uc *GetActiveSaleUseCase) Execute(ctx context.Context) (*GetActiveSaleResult, error) {
	active, err := uc.saleRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	return &GetActiveSaleResult{Sale: NewExtendedSaleView(active)}, nil
}
