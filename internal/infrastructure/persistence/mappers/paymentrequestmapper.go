package mappers

import (
	"fmt"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/models"
)

func PaymentRequestToModel(r *paymentrequest.PaymentRequest) *models.PaymentRequestModel {
	return &models.PaymentRequestModel{
		TelegramID:  r.TelegramID(),
		SaleName:    r.SaleName(),
		SeqNo:       r.SeqNo(),
		Method:      string(r.Method()),
		Status:      string(r.Status()),
		Amount:      r.Amount(),
		Price:       r.Price(),
		Destination: r.Destination(),
		Code:        r.Code(),
		ExpireAt:    r.ExpireAt(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func PaymentRequestToDomain(model *models.PaymentRequestModel) (*paymentrequest.PaymentRequest, error) {
	method := paymentrequest.Method(model.Method)
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", model.Method)
	}

	status := paymentrequest.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid payment request status: %s", model.Status)
	}

	return paymentrequest.Reconstruct(paymentrequest.ReconstructParams{
		TelegramID:  model.TelegramID,
		SaleName:    model.SaleName,
		SeqNo:       model.SeqNo,
		Method:      method,
		Status:      status,
		Amount:      model.Amount,
		Price:       model.Price,
		Destination: model.Destination,
		Code:        model.Code,
		ExpireAt:    model.ExpireAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}), nil
}
