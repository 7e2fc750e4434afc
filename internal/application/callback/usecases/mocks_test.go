package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/domain/reward"
	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/domain/user"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

type nopTx struct{}

func (nopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockSaleRepo struct {
	sales map[string]*sale.Sale
}

func newMockSaleRepo(sales ...*sale.Sale) *mockSaleRepo {
	repo := &mockSaleRepo{sales: make(map[string]*sale.Sale)}
	for _, s := range sales {
		repo.sales[s.Name()] = s
	}
	return repo
}

func (m *mockSaleRepo) Create(_ context.Context, s *sale.Sale) error {
	m.sales[s.Name()] = s
	return nil
}

func (m *mockSaleRepo) Update(_ context.Context, s *sale.Sale) error {
	m.sales[s.Name()] = s
	return nil
}

func (m *mockSaleRepo) GetByName(_ context.Context, name string) (*sale.Sale, error) {
	s, ok := m.sales[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("Sale not found")
	}
	return s, nil
}

func (m *mockSaleRepo) GetByNameForUpdate(ctx context.Context, name string) (*sale.Sale, error) {
	return m.GetByName(ctx, name)
}

func (m *mockSaleRepo) GetActive(_ context.Context) (*sale.Sale, error) {
	for _, s := range m.sales {
		if s.Status() == sale.StatusOnSale {
			return s, nil
		}
	}
	return nil, apperrors.NewNotFoundError("No active sale")
}

func (m *mockSaleRepo) GetActiveForUpdate(ctx context.Context) (*sale.Sale, error) {
	return m.GetActive(ctx)
}

type mockRequestRepo struct {
	requests []*paymentrequest.PaymentRequest
}

func (m *mockRequestRepo) Create(_ context.Context, r *paymentrequest.PaymentRequest) error {
	m.requests = append(m.requests, r)
	return nil
}

func (m *mockRequestRepo) Update(_ context.Context, r *paymentrequest.PaymentRequest) error {
	for i, existing := range m.requests {
		if existing.Code() == r.Code() {
			m.requests[i] = r
			return nil
		}
	}
	return apperrors.NewNotFoundError("Payment request not found")
}

func (m *mockRequestRepo) GetByCode(_ context.Context, code string) (*paymentrequest.PaymentRequest, error) {
	for _, r := range m.requests {
		if r.Code() == code {
			return r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Payment request not found")
}

func (m *mockRequestRepo) GetPending(_ context.Context, telegramID, saleName string) (*paymentrequest.PaymentRequest, error) {
	for _, r := range m.requests {
		if r.TelegramID() == telegramID && r.SaleName() == saleName && r.Status() == paymentrequest.StatusPending {
			return r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("No pending payment request")
}

func (m *mockRequestRepo) CountBySale(_ context.Context, telegramID, saleName string) (int, error) {
	count := 0
	for _, r := range m.requests {
		if r.TelegramID() == telegramID && r.SaleName() == saleName {
			count++
		}
	}
	return count, nil
}

func (m *mockRequestRepo) SumExpiredPending(_ context.Context, saleName string, method paymentrequest.Method, now time.Time) (int64, error) {
	var total int64
	for _, r := range m.requests {
		if r.SaleName() == saleName && r.IsExpired(now) {
			if method != "" && r.Method() != method {
				continue
			}
			total += r.Amount()
		}
	}
	return total, nil
}

func (m *mockRequestRepo) CancelExpiredPending(_ context.Context, saleName string, method paymentrequest.Method, now time.Time) (int64, error) {
	var cancelled int64
	for _, r := range m.requests {
		if r.SaleName() == saleName && r.IsExpired(now) {
			if method != "" && r.Method() != method {
				continue
			}
			if err := r.MarkCancelled(); err != nil {
				return cancelled, err
			}
			cancelled++
		}
	}
	return cancelled, nil
}

type mockUserRepo struct {
	users map[string]*user.User
}

func newMockUserRepo(users ...*user.User) *mockUserRepo {
	repo := &mockUserRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		repo.users[u.TelegramID()] = u
	}
	return repo
}

func (m *mockUserRepo) Create(_ context.Context, u *user.User) error {
	m.users[u.TelegramID()] = u
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, u *user.User) error {
	m.users[u.TelegramID()] = u
	return nil
}

func (m *mockUserRepo) GetByTelegramID(_ context.Context, telegramID string) (*user.User, error) {
	u, ok := m.users[telegramID]
	if !ok {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByTelegramID(_ context.Context, telegramID string) (bool, error) {
	_, ok := m.users[telegramID]
	return ok, nil
}

type mockRewardRepo struct {
	rewards   []*reward.Reward
	createErr error
}

func (m *mockRewardRepo) CreateBatch(_ context.Context, rewards []*reward.Reward) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rewards = append(m.rewards, rewards...)
	return nil
}

func (m *mockRewardRepo) ListByRefereeID(_ context.Context, refereeID string) ([]*reward.Reward, error) {
	var out []*reward.Reward
	for _, r := range m.rewards {
		if r.RefereeID() == refereeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockPurchaseRepo struct {
	purchases []*reward.Purchase
}

func (m *mockPurchaseRepo) Create(_ context.Context, p *reward.Purchase) error {
	m.purchases = append(m.purchases, p)
	return nil
}

func (m *mockPurchaseRepo) ListByTelegramID(_ context.Context, telegramID string) ([]*reward.Purchase, error) {
	var out []*reward.Purchase
	for _, p := range m.purchases {
		if p.TelegramID() == telegramID {
			out = append(out, p)
		}
	}
	return out, nil
}

// fixture bundles the repositories a callback flow touches.
type fixture struct {
	sale     *sale.Sale
	saleRepo *mockSaleRepo
	requests *mockRequestRepo
	users    *mockUserRepo
	rewards  *mockRewardRepo
	orders   *mockPurchaseRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := sale.NewSale(
		"seed",
		2,
		[]int64{1000, 200},
		decimal.NewFromInt(10),
		[]decimal.Decimal{decimal.NewFromInt(10)},
	)
	require.NoError(t, err)

	return &fixture{
		sale:     s,
		saleRepo: newMockSaleRepo(s),
		requests: &mockRequestRepo{},
		users:    newMockUserRepo(),
		rewards:  &mockRewardRepo{},
		orders:   &mockPurchaseRepo{},
	}
}

// addUser registers a user, optionally with a referrer and reward rates.
func (f *fixture) addUser(t *testing.T, telegramID string, referrerID *string, rates []decimal.Decimal) *user.User {
	t.Helper()
	u, err := user.New(telegramID, referrerID, rates)
	require.NoError(t, err)
	f.users.users[telegramID] = u
	return u
}

// addPendingRequest reserves tokens on the sale and records a pending
// request, mirroring what the purchase use cases do.
func (f *fixture) addPendingRequest(t *testing.T, telegramID string, amount int64) *paymentrequest.PaymentRequest {
	t.Helper()
	seqNo, err := f.requests.CountBySale(context.Background(), telegramID, f.sale.Name())
	require.NoError(t, err)

	r, err := paymentrequest.New(telegramID, f.sale.Name(), seqNo,
		paymentrequest.MethodChangellyCrypto, amount, decimal.NewFromInt(amount*10),
		"merchant-wallet", time.Hour)
	require.NoError(t, err)
	require.NoError(t, f.sale.Reserve(amount))
	f.requests.requests = append(f.requests.requests, r)
	return r
}

func (f *fixture) cryptoUC() *HandleCryptoCallbackUseCase {
	return NewHandleCryptoCallbackUseCase(
		f.saleRepo, f.requests, f.users, f.rewards, f.orders,
		nopTx{}, logger.NewLogger(),
	)
}

func (f *fixture) fiatUC() *HandleFiatCallbackUseCase {
	return NewHandleFiatCallbackUseCase(
		f.saleRepo, f.requests, f.users, f.rewards, f.orders,
		nopTx{}, logger.NewLogger(),
	)
}
