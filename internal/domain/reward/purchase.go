package reward

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records a settled payment request. It references the request by
// its payment code and freezes the amount and price at settlement time.
type Purchase struct {
	telegramID  string
	saleName    string
	paymentCode string
	amount      int64
	price       decimal.Decimal
	createdAt   time.Time
}

// NewPurchase creates a purchase record for a settled payment request.
func NewPurchase(telegramID, saleName, paymentCode string, amount int64, price decimal.Decimal) (*Purchase, error) {
	if telegramID == "" {
		return nil, fmt.Errorf("telegram ID is required")
	}
	if saleName == "" {
		return nil, fmt.Errorf("sale name is required")
	}
	if paymentCode == "" {
		return nil, fmt.Errorf("payment code is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	return &Purchase{
		telegramID:  telegramID,
		saleName:    saleName,
		paymentCode: paymentCode,
		amount:      amount,
		price:       price,
		createdAt:   time.Now().UTC(),
	}, nil
}

func (p *Purchase) TelegramID() string     { return p.telegramID }
func (p *Purchase) SaleName() string       { return p.saleName }
func (p *Purchase) PaymentCode() string    { return p.paymentCode }
func (p *Purchase) Amount() int64          { return p.amount }
func (p *Purchase) Price() decimal.Decimal { return p.price }
func (p *Purchase) CreatedAt() time.Time   { return p.createdAt }

// PurchaseReconstructParams carries persisted state back into the entity.
type PurchaseReconstructParams struct {
	TelegramID  string
	SaleName    string
	PaymentCode string
	Amount      int64
	Price       decimal.Decimal
	CreatedAt   time.Time
}

// ReconstructPurchase rebuilds a Purchase from persistence without validation.
func ReconstructPurchase(p PurchaseReconstructParams) *Purchase {
	return &Purchase{
		telegramID:  p.TelegramID,
		saleName:    p.SaleName,
		paymentCode: p.PaymentCode,
		amount:      p.Amount,
		price:       p.Price,
		createdAt:   p.CreatedAt,
	}
}
