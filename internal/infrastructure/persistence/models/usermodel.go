package models

import "time"

type UserModel struct {
	TelegramID               string       `gorm:"primaryKey;size:64"`
	Role                     string       `gorm:"size:16;not null"`
	ReferrerID               *string      `gorm:"size:64;index"`
	ReferralRewardLevelRates DecimalSlice `gorm:"type:jsonb"`
	WalletAddress            string       `gorm:"size:128"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (UserModel) TableName() string {
	return "users"
}
