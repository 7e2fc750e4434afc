// Package user contains the user entity and its repository contract.
package user

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Role determines the operations a user may perform.
type Role string

const (
	RoleRegular Role = "REGULAR"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleRegular || r == RoleAdmin
}

// User is identified by their Telegram ID. The referral reward level rates
// describe the share of a purchase the user earns for each referral depth
// below them: index 0 is a direct referee, index 1 a referee's referee, and
// so on.
type User struct {
	telegramID               string
	role                     Role
	referrerID               *string
	referralRewardLevelRates []decimal.Decimal
	walletAddress            string
	createdAt                time.Time
	updatedAt                time.Time
}

// New creates a regular user, optionally attached to a referrer.
func New(telegramID string, referrerID *string, rewardLevelRates []decimal.Decimal) (*User, error) {
	if telegramID == "" {
		return nil, fmt.Errorf("telegram ID is required")
	}
	if referrerID != nil && *referrerID == telegramID {
		return nil, fmt.Errorf("user cannot refer themselves")
	}
	for i, rate := range rewardLevelRates {
		if rate.IsNegative() {
			return nil, fmt.Errorf("reward rate at level %d must not be negative", i)
		}
	}

	now := time.Now().UTC()
	return &User{
		telegramID:               telegramID,
		role:                     RoleRegular,
		referrerID:               referrerID,
		referralRewardLevelRates: rewardLevelRates,
		walletAddress:            "",
		createdAt:                now,
		updatedAt:                now,
	}, nil
}

// SetWalletAddress records the address token allocations will be sent to.
func (u *User) SetWalletAddress(address string) {
	u.walletAddress = address
	u.updatedAt = time.Now().UTC()
}

// SetRewardLevelRates replaces the user's referral reward schedule.
func (u *User) SetRewardLevelRates(rates []decimal.Decimal) error {
	for i, rate := range rates {
		if rate.IsNegative() {
			return fmt.Errorf("reward rate at level %d must not be negative", i)
		}
	}
	u.referralRewardLevelRates = rates
	u.updatedAt = time.Now().UTC()
	return nil
}

func (u *User) IsAdmin() bool { return u.role == RoleAdmin }

func (u *User) TelegramID() string  { return u.telegramID }
func (u *User) Role() Role          { return u.role }
func (u *User) ReferrerID() *string { return u.referrerID }
func (u *User) ReferralRewardLevelRates() []decimal.Decimal {
	return u.referralRewardLevelRates
}
func (u *User) WalletAddress() string { return u.walletAddress }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }

// ReconstructParams carries persisted state back into the entity.
type ReconstructParams struct {
	TelegramID               string
	Role                     Role
	ReferrerID               *string
	ReferralRewardLevelRates []decimal.Decimal
	WalletAddress            string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Reconstruct rebuilds a User from persistence without validation.
func Reconstruct(p ReconstructParams) *User {
	return &User{
		telegramID:               p.TelegramID,
		role:                     p.Role,
		referrerID:               p.ReferrerID,
		referralRewardLevelRates: p.ReferralRewardLevelRates,
		walletAddress:            p.WalletAddress,
		createdAt:                p.CreatedAt,
		updatedAt:                p.UpdatedAt,
	}
}
