package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jubbslineu/tokensale/internal/domain/user"
)

func TestStartNew_RequiresAdmin(t *testing.T) {
	h := newHarness(t)
	buyerToken := h.addUser(t, "buyer", user.RoleRegular)
	adminToken := h.addUser(t, "admin", user.RoleAdmin)

	body := map[string]any{
		"name":           "seed",
		"phases":         2,
		"tokensPerPhase": []int64{1000, 500},
		"initialPrice":   "10",
		"priceIncrement": []string{"5"},
	}

	rec, _ := h.do(t, http.MethodPost, "/api/v1/sale/start-new", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = h.do(t, http.MethodPost, "/api/v1/sale/start-new", buyerToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp := h.do(t, http.MethodPost, "/api/v1/sale/start-new", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Sale started", resp.Message)
	assert.Equal(t, "seed", dataField(t, resp, "name"))
	assert.Equal(t, "ON_SALE", dataField(t, resp, "status"))
}

func TestStartNew_RejectsMalformedPrice(t *testing.T) {
	h := newHarness(t)
	adminToken := h.addUser(t, "admin", user.RoleAdmin)

	body := map[string]any{
		"name":           "seed",
		"phases":         1,
		"tokensPerPhase": []int64{1000},
		"initialPrice":   "ten dollars",
		"priceIncrement": []string{"5"},
	}

	rec, resp := h.do(t, http.MethodPost, "/api/v1/sale/start-new", adminToken, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestGetActiveSale(t *testing.T) {
	h := newHarness(t)

	rec, _ := h.do(t, http.MethodGet, "/api/v1/sale/get-active-sale", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h.addActiveSale(t, "seed")

	rec, resp := h.do(t, http.MethodGet, "/api/v1/sale/get-active-sale", "", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "Extended sale info", resp.Message)
	assert.Equal(t, "seed", dataField(t, resp, "name"))
	assert.Equal(t, "10.00", dataField(t, resp, "currentPrice"))
	assert.Equal(t, float64(1500), dataField(t, resp, "tokensForSale"))
}

func TestGetCurrentPrice(t *testing.T) {
	h := newHarness(t)
	h.addActiveSale(t, "seed")

	rec, resp := h.do(t, http.MethodGet, "/api/v1/sale/get-current-price", "", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "Sale ongoing", resp.Message)
	assert.Equal(t, "10.00", dataField(t, resp, "price"))
}

func TestGenerateTonPaymentCode(t *testing.T) {
	h := newHarness(t)
	buyerToken := h.addUser(t, "buyer", user.RoleRegular)
	h.addActiveSale(t, "seed")

	rec, resp := h.do(t, http.MethodPost, "/api/v1/sale/generate-ton-payment-code", buyerToken, map[string]any{"amount": 10})
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "Please proceed with the payment", resp.Message)
	assert.NotEmpty(t, dataField(t, resp, "paymentCode"))
	assert.Equal(t, "UQtest-destination", dataField(t, resp, "destination"))
	assert.NotEmpty(t, dataField(t, resp, "priceTon"))

	// a second pending order for the same buyer is refused
	rec, _ = h.do(t, http.MethodPost, "/api/v1/sale/generate-ton-payment-code", buyerToken, map[string]any{"amount": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPurchaseWithCrypto(t *testing.T) {
	h := newHarness(t)
	buyerToken := h.addUser(t, "buyer", user.RoleRegular)
	h.addActiveSale(t, "seed")

	rec, resp := h.do(t, http.MethodPost, "/api/v1/sale/purchase-with-crypto", buyerToken, map[string]any{"amount": 20})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Order created", resp.Message)
	assert.Equal(t, "https://pay.example.com/checkout/abc", dataField(t, resp, "paymentUrl"))

	require.Len(t, h.provider.params, 1)
	assert.Equal(t, "buyer", h.provider.params[0].CustomerID)
}

func TestPurchaseWithCrypto_RejectsNonPositiveAmount(t *testing.T) {
	h := newHarness(t)
	buyerToken := h.addUser(t, "buyer", user.RoleRegular)
	h.addActiveSale(t, "seed")

	rec, _ := h.do(t, http.MethodPost, "/api/v1/sale/purchase-with-crypto", buyerToken, map[string]any{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditReceivingAddress(t *testing.T) {
	h := newHarness(t)
	buyerToken := h.addUser(t, "buyer", user.RoleRegular)
	adminToken := h.addUser(t, "admin", user.RoleAdmin)
	h.addActiveSale(t, "seed")

	// editing is disabled until the admin enables it
	rec, _ := h.do(t, http.MethodPatch, "/api/v1/sale/seed/receiving-address", buyerToken, map[string]any{"newReceivingAddress": "UQbuyer-wallet"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = h.do(t, http.MethodPatch, "/api/v1/sale/seed/receiving-address/toggle", adminToken, map[string]any{"allow": true})
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec, resp := h.do(t, http.MethodPatch, "/api/v1/sale/seed/receiving-address", buyerToken, map[string]any{"newReceivingAddress": "UQbuyer-wallet"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "Receiving address updated for sale: seed", resp.Message)
	assert.Equal(t, "UQbuyer-wallet", dataField(t, resp, "walletAddress"))
}

func TestCryptoCallback_SettlesPurchase(t *testing.T) {
	h := newHarness(t)
	buyerToken := h.addUser(t, "buyer", user.RoleRegular)
	h.addActiveSale(t, "seed")

	rec, _ := h.do(t, http.MethodPost, "/api/v1/sale/purchase-with-crypto", buyerToken, map[string]any{"amount": 20})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, h.provider.params, 1)
	code := h.provider.params[0].OrderID

	callback := map[string]any{
		"payment_id":  "prov-1",
		"order_id":    code,
		"customer_id": "buyer",
		"state":       "COMPLETED",
	}
	rec, resp := h.do(t, http.MethodPost, "/api/v1/callback/changelly-crypto-api-callback", "", callback)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	s, err := h.saleRepo.GetByName(context.Background(), "seed")
	require.NoError(t, err)
	assert.Equal(t, int64(20), s.TotalSold())
	assert.Equal(t, int64(0), s.PendingOrderAmount())

	purchases, err := h.purchases.ListByTelegramID(context.Background(), "buyer")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, code, purchases[0].PaymentCode())
}

func TestCryptoCallback_UnknownCode(t *testing.T) {
	h := newHarness(t)
	h.addActiveSale(t, "seed")

	callback := map[string]any{
		"payment_id":  "prov-1",
		"order_id":    "no-such-code",
		"customer_id": "buyer",
		"state":       "COMPLETED",
	}
	rec, _ := h.do(t, http.MethodPost, "/api/v1/callback/changelly-crypto-api-callback", "", callback)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
