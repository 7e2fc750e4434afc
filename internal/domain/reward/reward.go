// Package reward contains referral rewards, purchase records, and the
// distribution walk that credits a buyer's referrer chain.
package reward

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Reward credits a referrer for a purchase made down their referral chain.
// telegramID identifies the buyer whose purchase earned the reward; refereeID
// identifies the referrer being rewarded. ReferralLevel is the distance
// between the two: 1 for a direct referrer.
type Reward struct {
	telegramID    string
	saleName      string
	refereeID     string
	amount        decimal.Decimal
	referralLevel int
	createdAt     time.Time
}

// NewReward creates a reward entry crediting refereeID for a purchase by
// telegramID.
func NewReward(telegramID, saleName, refereeID string, amount decimal.Decimal, referralLevel int) (*Reward, error) {
	if telegramID == "" {
		return nil, fmt.Errorf("telegram ID is required")
	}
	if saleName == "" {
		return nil, fmt.Errorf("sale name is required")
	}
	if refereeID == "" {
		return nil, fmt.Errorf("referee ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("reward amount must be positive")
	}
	if referralLevel < 1 {
		return nil, fmt.Errorf("referral level must be at least 1")
	}

	return &Reward{
		telegramID:    telegramID,
		saleName:      saleName,
		refereeID:     refereeID,
		amount:        amount,
		referralLevel: referralLevel,
		createdAt:     time.Now().UTC(),
	}, nil
}

func (r *Reward) TelegramID() string      { return r.telegramID }
func (r *Reward) SaleName() string        { return r.saleName }
func (r *Reward) RefereeID() string       { return r.refereeID }
func (r *Reward) Amount() decimal.Decimal { return r.amount }
func (r *Reward) ReferralLevel() int      { return r.referralLevel }
func (r *Reward) CreatedAt() time.Time    { return r.createdAt }

// RewardReconstructParams carries persisted state back into the entity.
type RewardReconstructParams struct {
	TelegramID    string
	SaleName      string
	RefereeID     string
	Amount        decimal.Decimal
	ReferralLevel int
	CreatedAt     time.Time
}

// ReconstructReward rebuilds a Reward from persistence without validation.
func ReconstructReward(p RewardReconstructParams) *Reward {
	return &Reward{
		telegramID:    p.TelegramID,
		saleName:      p.SaleName,
		refereeID:     p.RefereeID,
		amount:        p.Amount,
		referralLevel: p.ReferralLevel,
		createdAt:     p.CreatedAt,
	}
}
