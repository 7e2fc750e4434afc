package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/mappers"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/models"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

var _ sale.Repository = (*SaleRepository)(nil)

func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	model := mappers.SaleToModel(s)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	model := mappers.SaleToModel(s)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SaleModel{}).
		Where("name = ?", model.Name).
		Updates(map[string]interface{}{
			"status":                     model.Status,
			"total_sold":                 model.TotalSold,
			"pending_order_amount":       model.PendingOrderAmount,
			"total_rewards":              model.TotalRewards,
			"start":                      model.Start,
			"end":                        model.End,
			"paused_at":                  model.PausedAt,
			"paused_time":                model.PausedTime,
			"receiving_address_editable": model.ReceivingAddressEditable,
			"updated_at":                 model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update sale: %w", result.Error)
	}
	return nil
}

func (r *SaleRepository) GetByName(ctx context.Context, name string) (*sale.Sale, error) {
	return r.getByName(db.GetTxFromContext(ctx, r.db), name)
}

func (r *SaleRepository) GetByNameForUpdate(ctx context.Context, name string) (*sale.Sale, error) {
	tx := db.GetTxFromContext(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getByName(tx, name)
}

func (r *SaleRepository) GetActive(ctx context.Context) (*sale.Sale, error) {
	return r.getActive(db.GetTxFromContext(ctx, r.db))
}

func (r *SaleRepository) GetActiveForUpdate(ctx context.Context) (*sale.Sale, error) {
	tx := db.GetTxFromContext(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getActive(tx)
}

func (r *SaleRepository) getByName(tx *gorm.DB, name string) (*sale.Sale, error) {
	var model models.SaleModel

	if err := tx.Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Sale not found")
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return mappers.SaleToDomain(&model)
}

func (r *SaleRepository) getActive(tx *gorm.DB) (*sale.Sale, error) {
	var model models.SaleModel

	if err := tx.Where("status = ?", string(sale.StatusOnSale)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("No active sale")
		}
		return nil, fmt.Errorf("failed to get active sale: %w", err)
	}
	return mappers.SaleToDomain(&model)
}
