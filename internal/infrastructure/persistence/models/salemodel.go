package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleModel struct {
	Name                     string          `gorm:"primaryKey;size:64"`
	Status                   string          `gorm:"size:16;not null;index"`
	Phases                   int             `gorm:"not null"`
	TokensPerPhase           Int64Slice      `gorm:"type:jsonb;not null"`
	InitialPrice             decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	PriceIncrement           DecimalSlice    `gorm:"type:jsonb;not null"`
	TotalSold                int64           `gorm:"not null;default:0"`
	PendingOrderAmount       int64           `gorm:"not null;default:0"`
	TotalRewards             decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	Start                    *time.Time
	End                      *time.Time
	PausedAt                 *time.Time
	PausedTime               int64 `gorm:"not null;default:0"`
	ReceivingAddressEditable bool  `gorm:"not null;default:false"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (SaleModel) TableName() string {
	return "sales"
}
