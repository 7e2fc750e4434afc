package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseModel struct {
	ID          uint            `gorm:"primaryKey"`
	TelegramID  string          `gorm:"size:64;not null;index"`
	SaleName    string          `gorm:"size:64;not null;index"`
	PaymentCode string          `gorm:"uniqueIndex;size:64;not null"`
	Amount      int64           `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	CreatedAt   time.Time
}

func (PurchaseModel) TableName() string {
	return "purchases"
}
