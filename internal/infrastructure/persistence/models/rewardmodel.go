package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RewardModel struct {
	ID            uint            `gorm:"primaryKey"`
	TelegramID    string          `gorm:"size:64;not null;index"`
	SaleName      string          `gorm:"size:64;not null;index"`
	RefereeID     string          `gorm:"size:64;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	ReferralLevel int             `gorm:"not null"`
	CreatedAt     time.Time
}

func (RewardModel) TableName() string {
	return "rewards"
}
