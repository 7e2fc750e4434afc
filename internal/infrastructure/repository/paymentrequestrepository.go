package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/mappers"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/models"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
)

type PaymentRequestRepository struct {
	db *gorm.DB
}

func NewPaymentRequestRepository(db *gorm.DB) *PaymentRequestRepository {
	return &PaymentRequestRepository{db: db}
}

var _ paymentrequest.Repository = (*PaymentRequestRepository)(nil)

func (r *PaymentRequestRepository) Create(ctx context.Context, request *paymentrequest.PaymentRequest) error {
	model := mappers.PaymentRequestToModel(request)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment request: %w", err)
	}
	return nil
}

func (r *PaymentRequestRepository) Update(ctx context.Context, request *paymentrequest.PaymentRequest) error {
	model := mappers.PaymentRequestToModel(request)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentRequestModel{}).
		Where("telegram_id = ? AND sale_name = ? AND seq_no = ?",
			model.TelegramID, model.SaleName, model.SeqNo).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update payment request: %w", result.Error)
	}
	return nil
}

func (r *PaymentRequestRepository) GetByCode(ctx context.Context, code string) (*paymentrequest.PaymentRequest, error) {
	var model models.PaymentRequestModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Payment request not found")
		}
		return nil, fmt.Errorf("failed to get payment request by code: %w", err)
	}
	return mappers.PaymentRequestToDomain(&model)
}

func (r *PaymentRequestRepository) GetPending(ctx context.Context, telegramID, saleName string) (*paymentrequest.PaymentRequest, error) {
	var model models.PaymentRequestModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("telegram_id = ? AND sale_name = ? AND status = ?",
			telegramID, saleName, string(paymentrequest.StatusPending)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("No pending payment request")
		}
		return nil, fmt.Errorf("failed to get pending payment request: %w", err)
	}
	return mappers.PaymentRequestToDomain(&model)
}

func (r *PaymentRequestRepository) CountBySale(ctx context.Context, telegramID, saleName string) (int, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentRequestModel{}).
		Where("telegram_id = ? AND sale_name = ?", telegramID, saleName).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count payment requests: %w", err)
	}
	return int(count), nil
}

func (r *PaymentRequestRepository) SumExpiredPending(ctx context.Context, saleName string, method paymentrequest.Method, now time.Time) (int64, error) {
	var total int64

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentRequestModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("sale_name = ? AND status = ? AND expire_at <= ?",
			saleName, string(paymentrequest.StatusPending), now)
	if method != "" {
		query = query.Where("method = ?", string(method))
	}
	if err := query.Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum expired payment requests: %w", err)
	}
	return total, nil
}

func (r *PaymentRequestRepository) CancelExpiredPending(ctx context.Context, saleName string, method paymentrequest.Method, now time.Time) (int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentRequestModel{}).
		Where("sale_name = ? AND status = ? AND expire_at <= ?",
			saleName, string(paymentrequest.StatusPending), now)
	if method != "" {
		query = query.Where("method = ?", string(method))
	}
	result := query.
		Updates(map[string]interface{}{
			"status":     string(paymentrequest.StatusCancelled),
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to cancel expired payment requests: %w", result.Error)
	}
	return result.RowsAffected, nil
}
