package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	callbackUsecases "github.com/jubbslineu/tokensale/internal/application/callback/usecases"
	saleUsecases "github.com/jubbslineu/tokensale/internal/application/sale/usecases"
	subscriptionUsecases "github.com/jubbslineu/tokensale/internal/application/subscription/usecases"
	userUsecases "github.com/jubbslineu/tokensale/internal/application/user/usecases"
	"github.com/jubbslineu/tokensale/internal/domain/paymentrequest"
	"github.com/jubbslineu/tokensale/internal/domain/reward"
	"github.com/jubbslineu/tokensale/internal/domain/sale"
	"github.com/jubbslineu/tokensale/internal/domain/subscription"
	"github.com/jubbslineu/tokensale/internal/domain/user"
	"github.com/jubbslineu/tokensale/internal/infrastructure/auth"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/handlers"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/middleware"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/routes"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
	"github.com/jubbslineu/tokensale/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopTx struct{}

func (nopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales map[string]*sale.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*sale.Sale)}
}

func (r *fakeSaleRepo) Create(ctx context.Context, s *sale.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales[s.Name()] = s
	return nil
}

func (r *fakeSaleRepo) Update(ctx context.Context, s *sale.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales[s.Name()] = s
	return nil
}

func (r *fakeSaleRepo) GetByName(ctx context.Context, name string) (*sale.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("Sale not found")
	}
	return s, nil
}

func (r *fakeSaleRepo) GetByNameForUpdate(ctx context.Context, name string) (*sale.Sale, error) {
	return r.GetByName(ctx, name)
}

func (r *fakeSaleRepo) GetActive(ctx context.Context) (*sale.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.Status() == sale.StatusOnSale {
			return s, nil
		}
	}
	return nil, apperrors.NewNotFoundError("No active sale")
}

func (r *fakeSaleRepo) GetActiveForUpdate(ctx context.Context) (*sale.Sale, error) {
	return r.GetActive(ctx)
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests []*paymentrequest.PaymentRequest
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *paymentrequest.PaymentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, req *paymentrequest.PaymentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.requests {
		if existing.TelegramID() == req.TelegramID() && existing.SaleName() == req.SaleName() && existing.SeqNo() == req.SeqNo() {
			r.requests[i] = req
			return nil
		}
	}
	return apperrors.NewNotFoundError("Payment request not found")
}

func (r *fakeRequestRepo) GetByCode(ctx context.Context, code string) (*paymentrequest.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.Code() == code {
			return req, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Payment request not found")
}

func (r *fakeRequestRepo) GetPending(ctx context.Context, telegramID, saleName string) (*paymentrequest.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.TelegramID() == telegramID && req.SaleName() == saleName && req.Status() == paymentrequest.StatusPending {
			return req, nil
		}
	}
	return nil, apperrors.NewNotFoundError("No pending payment request")
}

func (r *fakeRequestRepo) CountBySale(ctx context.Context, telegramID, saleName string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, req := range r.requests {
		if req.TelegramID() == telegramID && req.SaleName() == saleName {
			count++
		}
	}
	return count, nil
}

func (r *fakeRequestRepo) SumExpiredPending(ctx context.Context, saleName string, method paymentrequest.Method, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, req := range r.requests {
		if req.SaleName() == saleName && req.Status() == paymentrequest.StatusPending && !req.ExpireAt().After(now) {
			if method != "" && req.Method() != method {
				continue
			}
			total += req.Amount()
		}
	}
	return total, nil
}

func (r *fakeRequestRepo) CancelExpiredPending(ctx context.Context, saleName string, method paymentrequest.Method, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cancelled int64
	for _, req := range r.requests {
		if req.SaleName() == saleName && req.Status() == paymentrequest.StatusPending && !req.ExpireAt().After(now) {
			if method != "" && req.Method() != method {
				continue
			}
			_ = req.MarkCancelled()
			cancelled++
		}
	}
	return cancelled, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.TelegramID()] = u
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.TelegramID()] = u
	return nil
}

func (r *fakeUserRepo) GetByTelegramID(ctx context.Context, telegramID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[telegramID]
	if !ok {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByTelegramID(ctx context.Context, telegramID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[telegramID]
	return ok, nil
}

type fakeRewardRepo struct {
	mu      sync.Mutex
	rewards []*reward.Reward
}

func (r *fakeRewardRepo) CreateBatch(ctx context.Context, rewards []*reward.Reward) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rewards = append(r.rewards, rewards...)
	return nil
}

func (r *fakeRewardRepo) ListByRefereeID(ctx context.Context, refereeID string) ([]*reward.Reward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*reward.Reward
	for _, rw := range r.rewards {
		if rw.RefereeID() == refereeID {
			out = append(out, rw)
		}
	}
	return out, nil
}

type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases []*reward.Purchase
}

func (r *fakePurchaseRepo) Create(ctx context.Context, p *reward.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchases = append(r.purchases, p)
	return nil
}

func (r *fakePurchaseRepo) ListByTelegramID(ctx context.Context, telegramID string) ([]*reward.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*reward.Purchase
	for _, p := range r.purchases {
		if p.TelegramID() == telegramID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[string]*subscription.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*subscription.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, s *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[s.TelegramID()] = s
	return nil
}

func (r *fakeSubscriptionRepo) Update(ctx context.Context, s *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[s.TelegramID()] = s
	return nil
}

func (r *fakeSubscriptionRepo) GetByTelegramID(ctx context.Context, telegramID string) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[telegramID]
	if !ok {
		return nil, apperrors.NewNotFoundError("Subscription Not Found")
	}
	return s, nil
}

// allowAllScheme accepts every callback so handler behavior can be tested
// without real signing keys.
type allowAllScheme struct{}

func (allowAllScheme) BaseURL() string         { return "https://pay.example.com" }
func (allowAllScheme) APIKey() string          { return "test-key" }
func (allowAllScheme) SignatureHeader() string { return "X-Signature" }

func (allowAllScheme) Sign(method, path string, body []byte, expiration int64) (string, error) {
	return "signed", nil
}

func (allowAllScheme) VerifyCallback(header http.Header, body []byte) error {
	return nil
}

type stubExchangeRates struct {
	price decimal.Decimal
}

func (s *stubExchangeRates) USDPrice(ctx context.Context, currency string) (decimal.Decimal, error) {
	return s.price, nil
}

type stubPaymentProvider struct {
	url    string
	params []saleUsecases.CreatePaymentParams
}

func (s *stubPaymentProvider) CreatePayment(ctx context.Context, params saleUsecases.CreatePaymentParams) (string, error) {
	s.params = append(s.params, params)
	return s.url, nil
}

const testAPIKey = "test-api-key"

// harness wires the full HTTP surface against in-memory storage.
type harness struct {
	engine        *gin.Engine
	saleRepo      *fakeSaleRepo
	userRepo      *fakeUserRepo
	requests      *fakeRequestRepo
	rewards       *fakeRewardRepo
	purchases     *fakePurchaseRepo
	subscriptions *fakeSubscriptionRepo
	provider      *stubPaymentProvider
	jwtService    *auth.JWTService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := logger.NewLogger()
	saleRepo := newFakeSaleRepo()
	userRepo := newFakeUserRepo()
	requests := &fakeRequestRepo{}
	rewards := &fakeRewardRepo{}
	purchases := &fakePurchaseRepo{}
	subscriptions := newFakeSubscriptionRepo()
	provider := &stubPaymentProvider{url: "https://pay.example.com/checkout/abc"}
	rates := &stubExchangeRates{price: decimal.NewFromInt(5)}
	tx := nopTx{}

	jwtService := auth.NewJWTService("handler-test-secret", time.Hour)

	saleHandler := handlers.NewSaleHandler(
		saleUsecases.NewStartSaleUseCase(saleRepo, tx, log),
		saleUsecases.NewPauseSaleUseCase(saleRepo, tx, log),
		saleUsecases.NewResumeSaleUseCase(saleRepo, tx, log),
		saleUsecases.NewGetActiveSaleUseCase(saleRepo, log),
		saleUsecases.NewGetCurrentPriceUseCase(saleRepo, log),
		saleUsecases.NewGenerateTONPaymentCodeUseCase(saleRepo, requests, rates, tx, log, "UQtest-destination", time.Hour),
		saleUsecases.NewPurchaseWithCryptoUseCase(saleRepo, requests, provider, tx, log, "receiver-wallet", time.Hour),
		saleUsecases.NewEditReceivingAddressUseCase(saleRepo, userRepo, tx, log),
		saleUsecases.NewToggleReceivingAddressUseCase(saleRepo, tx, log),
		log,
	)
	userHandler := handlers.NewUserHandler(
		userUsecases.NewAuthenticateUseCase(userRepo, jwtService, tx, log),
		userUsecases.NewVerifyTokenUseCase(userRepo, jwtService, log),
		userUsecases.NewRegisterTONAddressUseCase(userRepo, log),
		userUsecases.NewGetRewardHistoryUseCase(rewards, purchases, log),
		log,
	)
	subscriptionHandler := handlers.NewSubscriptionHandler(
		subscriptionUsecases.NewGetSubscriptionUseCase(subscriptions, log),
		subscriptionUsecases.NewSubmitSubscriptionUseCase(subscriptions, userRepo, jwtService, tx, log),
		subscriptionUsecases.NewUpdateSubscriptionUseCase(subscriptions, tx, log),
		log,
	)
	callbackHandler := handlers.NewCallbackHandler(
		callbackUsecases.NewHandleCryptoCallbackUseCase(saleRepo, requests, userRepo, rewards, purchases, tx, log),
		callbackUsecases.NewHandleFiatCallbackUseCase(saleRepo, requests, userRepo, rewards, purchases, tx, log),
		log,
	)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo, log)

	engine := gin.New()
	routes.SetupSaleRoutes(engine, &routes.SaleRouteConfig{
		SaleHandler:    saleHandler,
		AuthMiddleware: authMiddleware,
	})
	routes.SetupUserRoutes(engine, &routes.UserRouteConfig{
		UserHandler:    userHandler,
		AuthMiddleware: authMiddleware,
	})
	routes.SetupCallbackRoutes(engine, &routes.CallbackRouteConfig{
		CallbackHandler: callbackHandler,
		CryptoScheme:    allowAllScheme{},
		FiatScheme:      allowAllScheme{},
		Logger:          log,
	})
	routes.SetupSubscriptionRoutes(engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: subscriptionHandler,
		APIKeys:             []string{testAPIKey},
		Logger:              log,
	})

	return &harness{
		engine:        engine,
		saleRepo:      saleRepo,
		userRepo:      userRepo,
		requests:      requests,
		rewards:       rewards,
		purchases:     purchases,
		subscriptions: subscriptions,
		provider:      provider,
		jwtService:    jwtService,
	}
}

func (h *harness) addUser(t *testing.T, telegramID string, role user.Role) string {
	t.Helper()

	now := time.Now()
	u := user.Reconstruct(user.ReconstructParams{
		TelegramID: telegramID,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NoError(t, h.userRepo.Create(context.Background(), u))

	token, err := h.jwtService.Issue(telegramID, string(role))
	require.NoError(t, err)
	return token
}

func (h *harness) addActiveSale(t *testing.T, name string) *sale.Sale {
	t.Helper()

	s, err := sale.NewSale(name, 2, []int64{1000, 500}, decimal.NewFromInt(10), []decimal.Decimal{decimal.NewFromInt(5)})
	require.NoError(t, err)
	require.NoError(t, h.saleRepo.Create(context.Background(), s))
	return s
}

func (h *harness) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

// doWithAPIKey issues a partner-API request authenticated with an
// X-Api-Auth-Key header instead of a bearer token.
func (h *harness) doWithAPIKey(t *testing.T, method, path, key string, body any) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Api-Auth-Key", key)
	}

	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func dataField(t *testing.T, resp utils.APIResponse, key string) any {
	t.Helper()

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "response data is not an object: %v", resp.Data)
	return data[key]
}
