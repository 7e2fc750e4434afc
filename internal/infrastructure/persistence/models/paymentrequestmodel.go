package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRequestModel struct {
	TelegramID  string          `gorm:"primaryKey;size:64"`
	SaleName    string          `gorm:"primaryKey;size:64"`
	SeqNo       int             `gorm:"primaryKey;autoIncrement:false"`
	Method      string          `gorm:"size:32;not null"`
	Status      string          `gorm:"size:16;not null;index"`
	Amount      int64           `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Destination string          `gorm:"size:128;not null"`
	Code        string          `gorm:"uniqueIndex;size:64;not null"`
	ExpireAt    time.Time       `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PaymentRequestModel) TableName() string {
	return "payment_requests"
}
