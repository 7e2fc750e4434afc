package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
)

func TestHandleFiatCallback_CompleteSettlesPayment(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", nil, []decimal.Decimal{decimal.NewFromFloat(0.2)})
	f.addUser(t, "buyer", ptr(alice.TelegramID()), nil)
	request := f.addPendingRequest(t, "buyer", 100)

	err := f.fiatUC().Execute(context.Background(), HandleFiatCallbackCommand{
		Status:      FiatStatusComplete,
		PaymentCode: request.Code(),
	})
	require.NoError(t, err)

	assert.Equal(t, paymentrequest.StatusPaid, request.Status())
	assert.Equal(t, int64(100), f.sale.TotalSold())
	require.Len(t, f.rewards.rewards, 1)
	assert.True(t, f.rewards.rewards[0].Amount().Equal(decimal.NewFromInt(20)))
	assert.Len(t, f.orders.purchases, 1)
}

func TestHandleFiatCallback_TerminalFailureStatuses(t *testing.T) {
	tests := []struct {
		status string
		want   paymentrequest.Status
	}{
		{FiatStatusFailed, paymentrequest.StatusFailed},
		{FiatStatusExpired, paymentrequest.StatusCancelled},
		{FiatStatusRefunded, paymentrequest.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			f := newFixture(t)
			f.addUser(t, "buyer", nil, nil)
			request := f.addPendingRequest(t, "buyer", 30)

			err := f.fiatUC().Execute(context.Background(), HandleFiatCallbackCommand{
				Status:      tt.status,
				PaymentCode: request.Code(),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.want, request.Status())
			assert.Equal(t, int64(0), f.sale.PendingOrderAmount())
			assert.Equal(t, int64(0), f.sale.TotalSold())
		})
	}
}

func TestHandleFiatCallback_NonFinalStatusesAreAcknowledged(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "buyer", nil, nil)
	request := f.addPendingRequest(t, "buyer", 30)

	for _, status := range []string{FiatStatusCreated, FiatStatusPending, FiatStatusHold} {
		err := f.fiatUC().Execute(context.Background(), HandleFiatCallbackCommand{
			Status:      status,
			PaymentCode: request.Code(),
		})
		require.NoError(t, err, status)
	}

	assert.Equal(t, paymentrequest.StatusPending, request.Status())
	assert.Equal(t, int64(30), f.sale.PendingOrderAmount())
}

func TestHandleFiatCallback_Validation(t *testing.T) {
	f := newFixture(t)

	err := f.fiatUC().Execute(context.Background(), HandleFiatCallbackCommand{
		Status: FiatStatusComplete,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsBadRequestError(err))

	err = f.fiatUC().Execute(context.Background(), HandleFiatCallbackCommand{
		Status:      "settling",
		PaymentCode: "some-code",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsBadRequestError(err))

	err = f.fiatUC().Execute(context.Background(), HandleFiatCallbackCommand{
		Status:      FiatStatusComplete,
		PaymentCode: "unknown-code",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}
