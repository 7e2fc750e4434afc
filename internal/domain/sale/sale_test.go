package sale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func validSale(t *testing.T) *Sale {
	t.Helper()
	s, err := NewSale(
		"seed",
		3,
		[]int64{1000, 2000, 3000},
		decimal.NewFromFloat(0.1),
		[]decimal.Decimal{decimal.NewFromFloat(0.05), decimal.NewFromFloat(0.05)},
	)
	require.NoError(t, err)
	return s
}

func TestNewSale_ValidInput(t *testing.T) {
	s := validSale(t)

	assert.Equal(t, "seed", s.Name())
	assert.Equal(t, StatusOnSale, s.Status())
	assert.Equal(t, 3, s.Phases())
	assert.Equal(t, int64(6000), s.TotalSupply())
	assert.Equal(t, int64(0), s.TotalSold())
	assert.Equal(t, int64(0), s.PendingOrderAmount())
	assert.True(t, s.TotalRewards().IsZero())
	assert.NotNil(t, s.Start())
}

func TestNewSale_InvalidInput(t *testing.T) {
	increment := []decimal.Decimal{decimal.NewFromFloat(0.05)}

	tests := []struct {
		name           string
		saleName       string
		phases         int
		tokensPerPhase []int64
		initialPrice   decimal.Decimal
		priceIncrement []decimal.Decimal
	}{
		{"empty name", "", 2, []int64{100, 100}, decimal.NewFromInt(1), increment},
		{"zero phases", "s", 0, nil, decimal.NewFromInt(1), nil},
		{"quota length mismatch", "s", 2, []int64{100}, decimal.NewFromInt(1), increment},
		{"non-positive quota", "s", 2, []int64{100, 0}, decimal.NewFromInt(1), increment},
		{"increment length mismatch", "s", 2, []int64{100, 100}, decimal.NewFromInt(1), nil},
		{"negative price", "s", 2, []int64{100, 100}, decimal.NewFromInt(-1), increment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSale(tt.saleName, tt.phases, tt.tokensPerPhase, tt.initialPrice, tt.priceIncrement)
			assert.Error(t, err)
		})
	}
}

func TestSale_PauseResume(t *testing.T) {
	s := validSale(t)
	start := time.Now().UTC()

	require.NoError(t, s.Pause(start))
	assert.Equal(t, StatusPaused, s.Status())

	// pausing twice is rejected
	assert.Error(t, s.Pause(start))

	require.NoError(t, s.Resume(start.Add(2*time.Minute)))
	assert.Equal(t, StatusOnSale, s.Status())
	assert.Equal(t, int64(120), s.TotalPausedTime(start.Add(2*time.Minute)))

	// resuming an active sale is rejected
	assert.Error(t, s.Resume(start.Add(3*time.Minute)))
}

func TestSale_TotalPausedTime_WhilePaused(t *testing.T) {
	s := validSale(t)
	start := time.Now().UTC()

	require.NoError(t, s.Pause(start))
	assert.Equal(t, int64(60), s.TotalPausedTime(start.Add(time.Minute)))
}

func TestSale_ReserveReleaseConfirm(t *testing.T) {
	s := validSale(t)

	require.NoError(t, s.Reserve(1500))
	assert.Equal(t, int64(1500), s.PendingOrderAmount())
	assert.Equal(t, int64(1500), s.TotalLocked())
	assert.Equal(t, int64(4500), s.RemainingTokens())

	s.Release(500)
	assert.Equal(t, int64(1000), s.PendingOrderAmount())

	rewards := decimal.NewFromFloat(12.5)
	s.ConfirmPurchase(1000, rewards)
	assert.Equal(t, int64(0), s.PendingOrderAmount())
	assert.Equal(t, int64(1000), s.TotalSold())
	assert.True(t, s.TotalRewards().Equal(rewards))
}

func TestSale_Reserve_InsufficientSupply(t *testing.T) {
	s := validSale(t)

	require.NoError(t, s.Reserve(6000))
	err := s.Reserve(1)
	assert.ErrorIs(t, err, ErrInsufficientSupply)
}

func TestSale_Release_ClampsAtZero(t *testing.T) {
	s := validSale(t)

	require.NoError(t, s.Reserve(100))
	s.Release(200)
	assert.Equal(t, int64(0), s.PendingOrderAmount())
}

func TestSale_Reconstruct(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-time.Hour)
	s := Reconstruct(ReconstructParams{
		Name:               "seed",
		Status:             StatusOnSale,
		Phases:             2,
		TokensPerPhase:     []int64{1000, 200},
		InitialPrice:       decimal.NewFromInt(10),
		PriceIncrement:     []decimal.Decimal{decimal.NewFromInt(10)},
		TotalSold:          300,
		PendingOrderAmount: 50,
		TotalRewards:       decimal.NewFromInt(3),
		Start:              &start,
		PausedTime:         30,
		CreatedAt:          now,
		UpdatedAt:          now,
	})

	assert.Equal(t, int64(350), s.TotalLocked())
	assert.Equal(t, int64(850), s.RemainingTokens())

	elapsed, err := s.ElapsedTime(now)
	require.NoError(t, err)
	assert.Equal(t, int64(3600-30), elapsed)
	assert.Equal(t, int64(30), s.TotalPausedTime(now))
}
