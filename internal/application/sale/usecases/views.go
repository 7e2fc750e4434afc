package usecases

import (
	"time"

	"github.com/jubbslineu/tokensale/internal/domain/sale"
)

// SaleView is the serializable projection of a sale.
type SaleView struct {
	Name               string     `json:"name"`
	Status             string     `json:"status"`
	Phases             int        `json:"phases"`
	TokensPerPhase     []int64    `json:"tokensPerPhase"`
	InitialPrice       string     `json:"initialPrice"`
	PriceIncrement     []string   `json:"priceIncrement"`
	TotalSold          int64      `json:"totalSold"`
	PendingOrderAmount int64      `json:"pendingOrderAmount"`
	TotalRewards       string     `json:"totalRewards"`
	Start              *time.Time `json:"start"`
	End                *time.Time `json:"end"`
	PausedAt           *time.Time `json:"pausedAt"`
	PausedTime         int64      `json:"pausedTime"`
}

// ExtendedSaleView adds the derived phase and supply figures.
type ExtendedSaleView struct {
	SaleView
	CurrentPhase         int    `json:"currentPhase"`
	LowerTokenLimit      int64  `json:"lowerTokenLimit"`
	UpperTokenLimit      int64  `json:"upperTokenLimit"`
	CurrentPrice         string `json:"currentPrice"`
	TokensForSale        int64  `json:"tokensForSale"`
	RemainingTokens      int64  `json:"remainingTokens"`
	RemainingPhaseTokens int64  `json:"remainingPhaseTokens"`
}

// NewSaleView projects a sale. Prices are rendered with two decimal places
// as the API has always done.
func NewSaleView(s *sale.Sale) SaleView {
	increments := make([]string, 0, len(s.PriceIncrement()))
	for _, inc := range s.PriceIncrement() {
		increments = append(increments, inc.StringFixed(2))
	}

	return SaleView{
		Name:               s.Name(),
		Status:             string(s.Status()),
		Phases:             s.Phases(),
		TokensPerPhase:     s.TokensPerPhase(),
		InitialPrice:       s.InitialPrice().StringFixed(2),
		PriceIncrement:     increments,
		TotalSold:          s.TotalSold(),
		PendingOrderAmount: s.PendingOrderAmount(),
		TotalRewards:       s.TotalRewards().String(),
		Start:              s.Start(),
		End:                s.End(),
		PausedAt:           s.PausedAt(),
		PausedTime:         s.PausedTime(),
	}
}

// NewExtendedSaleView projects a sale together with its current phase stats.
func NewExtendedSaleView(s *sale.Sale) ExtendedSaleView {
	stats := s.CurrentPhaseStats()

	return ExtendedSaleView{
		SaleView:             NewSaleView(s),
		CurrentPhase:         stats.Phase,
		LowerTokenLimit:      stats.LowerLimit,
		UpperTokenLimit:      stats.UpperLimit,
		CurrentPrice:         s.TokenPriceAt(stats.Phase).StringFixed(2),
		TokensForSale:        s.TotalSupply(),
		RemainingTokens:      s.RemainingTokens(),
		RemainingPhaseTokens: stats.UpperLimit - s.TotalSold(),
	}
}
