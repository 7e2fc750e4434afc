package reward

import (
	"context"

	"github.com/shopspring/decimal"
)

// Referrer is the slice of a user the distribution walk needs.
type Referrer struct {
	TelegramID string
	ReferrerID *string
	LevelRates []decimal.Decimal
}

// ReferrerSource resolves a user's referrer by telegram ID. A nil result
// with no error means the user has no referrer.
type ReferrerSource interface {
	GetReferrer(ctx context.Context, telegramID string) (*Referrer, error)
}

// Distributor walks a buyer's referrer chain and computes the reward each
// ancestor earns from a purchase.
type Distributor struct {
	source ReferrerSource
}

func NewDistributor(source ReferrerSource) *Distributor {
	return &Distributor{source: source}
}

// Distribute computes rewards for the buyer's referrer chain on a purchase
// of amount tokens. Each ancestor earns amount multiplied by their own level
// rate for their distance from the buyer: the direct referrer uses rate
// index 0, the next ancestor index 1, and so on. The walk stops at the top
// of the chain or at the first ancestor whose rate schedule does not cover
// the current depth.
func (d *Distributor) Distribute(ctx context.Context, buyerID, saleName string, amount decimal.Decimal) ([]*Reward, error) {
	var rewards []*Reward

	current, err := d.source.GetReferrer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	for depth := 0; current != nil; depth++ {
		if depth >= len(current.LevelRates) {
			break
		}
		earned := amount.Mul(current.LevelRates[depth])
		if earned.IsPositive() {
			reward, err := NewReward(buyerID, saleName, current.TelegramID, earned, depth+1)
			if err != nil {
				return nil, err
			}
			rewards = append(rewards, reward)
		}

		if current.ReferrerID == nil {
			break
		}
		current, err = d.source.GetReferrer(ctx, current.TelegramID)
		if err != nil {
			return nil, err
		}
	}

	return rewards, nil
}

// TotalAmount sums the computed rewards.
func TotalAmount(rewards []*Reward) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rewards {
		total = total.Add(r.amount)
	}
	return total
}
