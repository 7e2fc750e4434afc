// Package usecases contains the sale application use cases.
package usecases

import (
	"context"

	"github.com/shopspring/decimal"
)

// ExchangeRateService quotes crypto market rates for settlement pricing.
type ExchangeRateService interface {
	// USDPrice returns the USD price of one unit of the given crypto
	// currency.
	USDPrice(ctx context.Context, currency string) (decimal.Decimal, error)
}

// CreatePaymentParams is the payload for the payment provider's hosted
// checkout. OrderID carries the deterministic payment code so the provider
// echoes it back in callbacks.
type CreatePaymentParams struct {
	OrderID         string
	CustomerID      string
	NominalAmount   decimal.Decimal
	NominalCurrency string
	Title           string
	Description     string
}

// PaymentProvider creates hosted payments with an external provider.
type PaymentProvider interface {
	CreatePayment(ctx context.Context, params CreatePaymentParams) (paymentURL string, err error)
}
