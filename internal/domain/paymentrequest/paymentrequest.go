// Package paymentrequest contains the payment request entity: a reservation
// of tokens awaiting settlement through one of the supported payment methods.
package paymentrequest

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Method is the settlement channel for a payment request.
type Method string

const (
	MethodTON             Method = "TON"
	MethodChangellyCrypto Method = "CHANGELLY_CRYPTO"
	MethodChangellyFiat   Method = "CHANGELLY_FIAT"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodTON, MethodChangellyCrypto, MethodChangellyFiat:
		return true
	}
	return false
}

// Status is the lifecycle state of a payment request.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// IsFinal reports whether the status admits no further transitions.
func (s Status) IsFinal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusCancelled
}

// PaymentRequest is keyed by (telegramID, saleName, seqNo). seqNo is a
// per-(user, sale) counter that is never reused, even after cancellation.
type PaymentRequest struct {
	telegramID  string
	saleName    string
	seqNo       int
	method      Method
	status      Status
	amount      int64
	price       decimal.Decimal
	destination string
	code        string
	expireAt    time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// New creates a PENDING payment request expiring after ttl. The code is
// derived from the identifying triple, so it can always be recomputed.
func New(telegramID, saleName string, seqNo int, method Method, amount int64, price decimal.Decimal, destination string, ttl time.Duration) (*PaymentRequest, error) {
	if telegramID == "" {
		return nil, fmt.Errorf("telegram ID is required")
	}
	if saleName == "" {
		return nil, fmt.Errorf("sale name is required")
	}
	if seqNo < 0 {
		return nil, fmt.Errorf("sequence number must not be negative")
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", method)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	now := time.Now().UTC()
	return &PaymentRequest{
		telegramID:  telegramID,
		saleName:    saleName,
		seqNo:       seqNo,
		method:      method,
		status:      StatusPending,
		amount:      amount,
		price:       price,
		destination: destination,
		code:        Code(telegramID, saleName, seqNo),
		expireAt:    now.Add(ttl),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// MarkPaid transitions a pending request to PAID.
func (r *PaymentRequest) MarkPaid() error {
	if r.status != StatusPending {
		return fmt.Errorf("cannot mark request as paid with status %s", r.status)
	}
	r.status = StatusPaid
	r.updatedAt = time.Now().UTC()
	return nil
}

// MarkFailed transitions a pending request to FAILED.
func (r *PaymentRequest) MarkFailed() error {
	if r.status != StatusPending {
		return fmt.Errorf("cannot mark request as failed with status %s", r.status)
	}
	r.status = StatusFailed
	r.updatedAt = time.Now().UTC()
	return nil
}

// MarkCancelled transitions a pending request to CANCELLED.
func (r *PaymentRequest) MarkCancelled() error {
	if r.status != StatusPending {
		return fmt.Errorf("cannot cancel request with status %s", r.status)
	}
	r.status = StatusCancelled
	r.updatedAt = time.Now().UTC()
	return nil
}

// IsExpired reports whether the request's reservation has lapsed.
func (r *PaymentRequest) IsExpired(now time.Time) bool {
	return r.status == StatusPending && !r.expireAt.After(now)
}

func (r *PaymentRequest) TelegramID() string     { return r.telegramID }
func (r *PaymentRequest) SaleName() string       { return r.saleName }
func (r *PaymentRequest) SeqNo() int             { return r.seqNo }
func (r *PaymentRequest) Method() Method         { return r.method }
func (r *PaymentRequest) Status() Status         { return r.status }
func (r *PaymentRequest) Amount() int64          { return r.amount }
func (r *PaymentRequest) Price() decimal.Decimal { return r.price }
func (r *PaymentRequest) Destination() string    { return r.destination }
func (r *PaymentRequest) Code() string           { return r.code }
func (r *PaymentRequest) ExpireAt() time.Time    { return r.expireAt }
func (r *PaymentRequest) CreatedAt() time.Time   { return r.createdAt }
func (r *PaymentRequest) UpdatedAt() time.Time   { return r.updatedAt }

// ReconstructParams carries persisted state back into the entity.
type ReconstructParams struct {
	TelegramID  string
	SaleName    string
	SeqNo       int
	Method      Method
	Status      Status
	Amount      int64
	Price       decimal.Decimal
	Destination string
	Code        string
	ExpireAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reconstruct rebuilds a PaymentRequest from persistence without validation.
func Reconstruct(p ReconstructParams) *PaymentRequest {
	return &PaymentRequest{
		telegramID:  p.TelegramID,
		saleName:    p.SaleName,
		seqNo:       p.SeqNo,
		method:      p.Method,
		status:      p.Status,
		amount:      p.Amount,
		price:       p.Price,
		destination: p.Destination,
		code:        p.Code,
		expireAt:    p.ExpireAt,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}
}
