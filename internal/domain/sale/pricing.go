package sale

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
)

// ErrInsufficientSupply is returned when an order cannot be filled from the
// remaining phase quotas. Orders are rejected whole, never partially filled.
var ErrInsufficientSupply = apperrors.NewBadRequestError("Insufficient supply",
	"order exceeds the remaining token supply")

// PhaseStats describes the phase the sale is currently in. Limits are token
// counts: the phase covers [LowerLimit, UpperLimit).
type PhaseStats struct {
	Phase      int
	LowerLimit int64
	UpperLimit int64
}

// CurrentPhaseStats walks the phase quotas cumulatively. The current phase is
// the first phase whose cumulative upper bound covers totalSold plus
// pendingOrderAmount, or the final phase once all bounds are exceeded. An
// untouched sale is in phase 1 with a lower limit of 0.
func (s *Sale) CurrentPhaseStats() PhaseStats {
	totalLocked := s.TotalLocked()

	phase := 1
	var lower, upper int64
	for i, quota := range s.tokensPerPhase {
		lower = upper
		upper += quota
		phase = i + 1
		if totalLocked <= upper {
			break
		}
	}

	return PhaseStats{
		Phase:      phase,
		LowerLimit: lower,
		UpperLimit: upper,
	}
}

// TokenPriceAt returns the per-token price at the given 1-based phase:
// the initial price plus all increments up to that phase.
func (s *Sale) TokenPriceAt(phase int) decimal.Decimal {
	price := s.initialPrice
	for i := 0; i < phase-1 && i < len(s.priceIncrement); i++ {
		price = price.Add(s.priceIncrement[i])
	}
	return price
}

// CurrentTokenPrice returns the per-token price at the current phase.
func (s *Sale) CurrentTokenPrice() decimal.Decimal {
	return s.TokenPriceAt(s.CurrentPhaseStats().Phase)
}

// TotalPrice prices an order of amount tokens by walking forward through the
// phases from the current one. Tokens within the current phase's remaining
// quota are priced at the current rate; overflow rolls into subsequent phases
// at their higher rates. The whole order is rejected when the final phase is
// exhausted before amount is fully allocated.
func (s *Sale) TotalPrice(amount int64) (decimal.Decimal, error) {
	if amount <= 0 {
		return decimal.Zero, apperrors.NewBadRequestError("Invalid amount",
			"amount must be positive")
	}

	stats := s.CurrentPhaseStats()
	phase := stats.Phase
	upper := stats.UpperLimit
	price := s.TokenPriceAt(phase)
	locked := s.TotalLocked()

	total := decimal.Zero
	for locked+amount > upper {
		if phase >= s.phases {
			return decimal.Zero, ErrInsufficientSupply
		}
		remaining := upper - locked
		total = total.Add(price.Mul(decimal.NewFromInt(remaining)))
		amount -= remaining
		locked = upper
		phase++
		upper += s.tokensPerPhase[phase-1]
		price = price.Add(s.priceIncrement[phase-2])
	}

	return total.Add(price.Mul(decimal.NewFromInt(amount))), nil
}
