package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/domain/user"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
)

// nopTx runs the transactional function directly. Use cases under test see
// the same behavior as with a real transaction that always commits.
type nopTx struct{}

func (nopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockSaleRepo struct {
	sales     map[string]*sale.Sale
	updateErr error
	updates   int
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
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates++
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
	requests  []*paymentrequest.PaymentRequest
	createErr error
}

func (m *mockRequestRepo) Create(_ context.Context, r *paymentrequest.PaymentRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
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

func newTestUser(t *testing.T, telegramID string, referrerID *string) *user.User {
	t.Helper()
	u, err := user.New(telegramID, referrerID, nil)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

type fixedRates struct {
	price decimal.Decimal
	err   error
}

func (f fixedRates) USDPrice(context.Context, string) (decimal.Decimal, error) {
	return f.price, f.err
}

type mockProvider struct {
	url   string
	err   error
	calls []CreatePaymentParams
}

func (m *mockProvider) CreatePayment(_ context.Context, params CreatePaymentParams) (string, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}
