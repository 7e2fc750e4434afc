// Package mappers converts between domain entities and persistence models.
package mappers

import (
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/models"
)

func SaleToModel(s *sale.Sale) *models.SaleModel {
	return &models.SaleModel{
		Name:                     s.Name(),
		Status:                   string(s.Status()),
		Phases:                   s.Phases(),
		TokensPerPhase:           models.Int64Slice(s.TokensPerPhase()),
		InitialPrice:             s.InitialPrice(),
		PriceIncrement:           models.DecimalSlice(s.PriceIncrement()),
		TotalSold:                s.TotalSold(),
		PendingOrderAmount:       s.PendingOrderAmount(),
		TotalRewards:             s.TotalRewards(),
		Start:                    s.Start(),
		End:                      s.End(),
		PausedAt:                 s.PausedAt(),
		PausedTime:               s.PausedTime(),
		ReceivingAddressEditable: s.ReceivingAddressEditable(),
		CreatedAt:                s.CreatedAt(),
		UpdatedAt:                s.UpdatedAt(),
	}
}

func SaleToDomain(model *models.SaleModel) (*sale.Sale, error) {
	status := sale.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid sale status: %s", model.Status)
	}

	return sale.Reconstruct(sale.ReconstructParams{
		Name:                     model.Name,
		Status:                   status,
		Phases:                   model.Phases,
		TokensPerPhase:           model.TokensPerPhase,
		InitialPrice:             model.InitialPrice,
		PriceIncrement:           model.PriceIncrement,
		TotalSold:                model.TotalSold,
		PendingOrderAmount:       model.PendingOrderAmount,
		TotalRewards:             model.TotalRewards,
		Start:                    model.Start,
		End:                      model.End,
		PausedAt:                 model.PausedAt,
		PausedTime:               model.PausedTime,
		ReceivingAddressEditable: model.ReceivingAddressEditable,
		CreatedAt:                model.CreatedAt,
		UpdatedAt:                model.UpdatedAt,
	}), nil
}
