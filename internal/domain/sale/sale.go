// Package sale contains the token sale aggregate and its pricing engine.
package sale

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
)

// Status represents the lifecycle state of a sale.
type Status string

const (
	StatusOnSale Status = "ON_SALE"
	StatusPaused Status = "PAUSED"
)

func (s Status) IsValid() bool {
	return s == StatusOnSale || s == StatusPaused
}

// Sale is the aggregate root for a phased token sale. Token quantities are
// whole tokens (int64); prices and rewards are decimals.
type Sale struct {
	name                     string
	status                   Status
	phases                   int
	tokensPerPhase           []int64
	initialPrice             decimal.Decimal
	priceIncrement           []decimal.Decimal
	totalSold                int64
	pendingOrderAmount       int64
	totalRewards             decimal.Decimal
	start                    *time.Time
	end                      *time.Time
	pausedAt                 *time.Time
	pausedTime               int64 // cumulative paused seconds
	receivingAddressEditable bool
	createdAt                time.Time
	updatedAt                time.Time
}

// NewSale validates the phase layout and creates a sale in ON_SALE status.
func NewSale(name string, phases int, tokensPerPhase []int64, initialPrice decimal.Decimal, priceIncrement []decimal.Decimal) (*Sale, error) {
	if name == "" {
		return nil, apperrors.NewBadRequestError("Invalid sale", "name must not be empty")
	}
	if phases < 1 {
		return nil, apperrors.NewBadRequestError("Invalid sale", "phases must be at least 1")
	}
	if len(tokensPerPhase) != phases {
		return nil, apperrors.NewBadRequestError("Invalid sale",
			"tokensPerPhase length must equal the number of phases")
	}
	for _, quota := range tokensPerPhase {
		if quota <= 0 {
			return nil, apperrors.NewBadRequestError("Invalid sale",
				"every phase quota must be positive")
		}
	}
	if len(priceIncrement) != phases-1 {
		return nil, apperrors.NewBadRequestError("Invalid sale",
			"priceIncrement length must equal phases minus one")
	}
	if initialPrice.IsNegative() {
		return nil, apperrors.NewBadRequestError("Invalid sale", "initialPrice must not be negative")
	}

	now := time.Now().UTC()
	return &Sale{
		name:           name,
		status:         StatusOnSale,
		phases:         phases,
		tokensPerPhase: append([]int64(nil), tokensPerPhase...),
		initialPrice:   initialPrice,
		priceIncrement: append([]decimal.Decimal(nil), priceIncrement...),
		totalRewards:   decimal.Zero,
		start:          &now,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Pause records the pause timestamp. Only an active sale can be paused.
func (s *Sale) Pause(now time.Time) error {
	if s.status != StatusOnSale {
		return apperrors.NewBadRequestError("Sale not active",
			"only an active sale can be paused")
	}
	pausedAt := now.UTC()
	s.status = StatusPaused
	s.pausedAt = &pausedAt
	s.updatedAt = pausedAt
	return nil
}

// Resume accumulates the just-finished pause interval into the cumulative
// paused time and clears the pause marker.
func (s *Sale) Resume(now time.Time) error {
	if s.status != StatusPaused {
		return apperrors.NewBadRequestError("Sale not paused",
			"only a paused sale can be resumed")
	}
	if s.pausedAt != nil {
		s.pausedTime += int64(now.UTC().Sub(*s.pausedAt).Seconds())
	}
	s.status = StatusOnSale
	s.pausedAt = nil
	s.updatedAt = now.UTC()
	return nil
}

// TotalPausedTime returns the cumulative paused seconds, including the
// currently running pause interval if any.
func (s *Sale) TotalPausedTime(now time.Time) int64 {
	total := s.pausedTime
	if s.pausedAt != nil {
		total += int64(now.UTC().Sub(*s.pausedAt).Seconds())
	}
	return total
}

// ElapsedTime returns the seconds the sale has been running, excluding
// paused intervals.
func (s *Sale) ElapsedTime(now time.Time) (int64, error) {
	if s.start == nil {
		return 0, apperrors.NewInternalError("Sale not started")
	}
	return int64(now.UTC().Sub(*s.start).Seconds()) - s.TotalPausedTime(now), nil
}

// TotalSupply returns the sum of all phase quotas.
func (s *Sale) TotalSupply() int64 {
	var total int64
	for _, quota := range s.tokensPerPhase {
		total += quota
	}
	return total
}

// TotalLocked returns confirmed plus reserved tokens. Both count against
// phase capacity.
func (s *Sale) TotalLocked() int64 {
	return s.totalSold + s.pendingOrderAmount
}

// RemainingTokens returns the tokens not yet sold.
func (s *Sale) RemainingTokens() int64 {
	return s.TotalSupply() - s.totalSold
}

// Reserve adds amount to the pending order amount. The supply invariant
// totalSold + pendingOrderAmount <= totalSupply always holds afterwards.
func (s *Sale) Reserve(amount int64) error {
	if amount <= 0 {
		return apperrors.NewBadRequestError("Invalid amount", "amount must be positive")
	}
	if s.TotalLocked()+amount > s.TotalSupply() {
		return ErrInsufficientSupply
	}
	s.pendingOrderAmount += amount
	s.updatedAt = time.Now().UTC()
	return nil
}

// Release returns reserved tokens to the open supply, e.g. when a payment
// request expires or fails.
func (s *Sale) Release(amount int64) {
	if amount <= 0 {
		return
	}
	s.pendingOrderAmount -= amount
	if s.pendingOrderAmount < 0 {
		s.pendingOrderAmount = 0
	}
	s.updatedAt = time.Now().UTC()
}

// ConfirmPurchase moves amount from reserved to sold and accumulates the
// distributed referral rewards. One logically atomic update per confirmed
// payment.
func (s *Sale) ConfirmPurchase(amount int64, rewards decimal.Decimal) {
	s.pendingOrderAmount -= amount
	if s.pendingOrderAmount < 0 {
		s.pendingOrderAmount = 0
	}
	s.totalSold += amount
	s.totalRewards = s.totalRewards.Add(rewards)
	s.updatedAt = time.Now().UTC()
}

// SetReceivingAddressEditable toggles whether buyers may edit their
// receiving address for this sale.
func (s *Sale) SetReceivingAddressEditable(allow bool) {
	s.receivingAddressEditable = allow
	s.updatedAt = time.Now().UTC()
}

func (s *Sale) Name() string                      { return s.name }
func (s *Sale) Status() Status                    { return s.status }
func (s *Sale) Phases() int                       { return s.phases }
func (s *Sale) TokensPerPhase() []int64           { return s.tokensPerPhase }
func (s *Sale) InitialPrice() decimal.Decimal     { return s.initialPrice }
func (s *Sale) PriceIncrement() []decimal.Decimal { return s.priceIncrement }
func (s *Sale) TotalSold() int64                  { return s.totalSold }
func (s *Sale) PendingOrderAmount() int64         { return s.pendingOrderAmount }
func (s *Sale) TotalRewards() decimal.Decimal     { return s.totalRewards }
func (s *Sale) Start() *time.Time                 { return s.start }
func (s *Sale) End() *time.Time                   { return s.end }
func (s *Sale) PausedAt() *time.Time              { return s.pausedAt }
func (s *Sale) PausedTime() int64                 { return s.pausedTime }
func (s *Sale) ReceivingAddressEditable() bool    { return s.receivingAddressEditable }
func (s *Sale) CreatedAt() time.Time              { return s.createdAt }
func (s *Sale) UpdatedAt() time.Time              { return s.updatedAt }

// ReconstructParams carries persisted state back into the aggregate.
type ReconstructParams struct {
	Name                     string
	Status                   Status
	Phases                   int
	TokensPerPhase           []int64
	InitialPrice             decimal.Decimal
	PriceIncrement           []decimal.Decimal
	TotalSold                int64
	PendingOrderAmount       int64
	TotalRewards             decimal.Decimal
	Start                    *time.Time
	End                      *time.Time
	PausedAt                 *time.Time
	PausedTime               int64
	ReceivingAddressEditable bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Reconstruct rebuilds a Sale from persistence without validation.
func Reconstruct(p ReconstructParams) *Sale {
	return &Sale{
		name:                     p.Name,
		status:                   p.Status,
		phases:                   p.Phases,
		tokensPerPhase:           p.TokensPerPhase,
		initialPrice:             p.InitialPrice,
		priceIncrement:           p.PriceIncrement,
		totalSold:                p.TotalSold,
		pendingOrderAmount:       p.PendingOrderAmount,
		totalRewards:             p.TotalRewards,
		start:                    p.Start,
		end:                      p.End,
		pausedAt:                 p.PausedAt,
		pausedTime:               p.PausedTime,
		receivingAddressEditable: p.ReceivingAddressEditable,
		createdAt:                p.CreatedAt,
		updatedAt:                p.UpdatedAt,
	}
}
