package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	callbackUsecases "github.com/jubbslineu/tokensale/internal/application/callback/usecases"
	saleUsecases "github.com/jubbslineu/tokensale/internal/application/sale/usecases"
	subscriptionUsecases "github.com/jubbslineu/tokensale/internal/application/subscription/usecases"
	userUsecases "github.com/jubbslineu/tokensale/internal/application/user/usecases"
	"github.com/jubbslineu/tokensale/internal/infrastructure/auth"
	"github.com/jubbslineu/tokensale/internal/infrastructure/config"
	"github.com/jubbslineu/tokensale/internal/infrastructure/exchangerate"
	"github.com/jubbslineu/tokensale/internal/infrastructure/gateway/changelly"
	"github.com/jubbslineu/tokensale/internal/infrastructure/repository"
	"github.com/jubbslineu/tokensale/internal/infrastructure/scheduler"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/handlers"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/middleware"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/routes"
	"github.com/jubbslineu/tokensale/internal/shared/db"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

// Router owns the gin engine and the wired handler graph.
type Router struct {
	engine              *gin.Engine
	saleHandler         *handlers.SaleHandler
	userHandler         *handlers.UserHandler
	callbackHandler     *handlers.CallbackHandler
	subscriptionHandler *handlers.SubscriptionHandler
	authMiddleware      *middleware.AuthMiddleware
	cryptoScheme        changelly.Scheme
	fiatScheme          changelly.Scheme
	sweepScheduler      *scheduler.SweepScheduler
	allowedOrigins      []string
	apiKeys             []string
	logger              logger.Interface
}

// NewRouter wires repositories, gateways, use cases and handlers from the
// database handle and configuration.
func NewRouter(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	saleRepo := repository.NewSaleRepository(gormDB)
	requestRepo := repository.NewPaymentRequestRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	rewardRepo := repository.NewRewardRepository(gormDB)
	purchaseRepo := repository.NewPurchaseRepository(gormDB)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB)
	txManager := db.NewTransactionManager(gormDB)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.ExpiresIn())

	cryptoScheme, err := changelly.NewCryptoScheme(cfg.Changelly.Crypto)
	if err != nil {
		return nil, fmt.Errorf("init crypto payment scheme: %w", err)
	}
	fiatScheme, err := changelly.NewFiatScheme(cfg.Changelly.Fiat)
	if err != nil {
		return nil, fmt.Errorf("init fiat payment scheme: %w", err)
	}
	paymentClient := changelly.NewClient(cryptoScheme, cfg.Changelly.HTTPTimeout(), cfg.Changelly.SignatureTTL(), log)

	exchangeRates := exchangerate.NewCoinGeckoService(cfg.ExchangeRate.APIKey, log)

	startSaleUC := saleUsecases.NewStartSaleUseCase(saleRepo, txManager, log)
	pauseSaleUC := saleUsecases.NewPauseSaleUseCase(saleRepo, txManager, log)
	resumeSaleUC := saleUsecases.NewResumeSaleUseCase(saleRepo, txManager, log)
	getActiveSaleUC := saleUsecases.NewGetActiveSaleUseCase(saleRepo, log)
	getCurrentPriceUC := saleUsecases.NewGetCurrentPriceUseCase(saleRepo, log)
	generateTonUC := saleUsecases.NewGenerateTONPaymentCodeUseCase(
		saleRepo, requestRepo, exchangeRates, txManager, log,
		cfg.Sale.TonDestinationAddress, cfg.Sale.PaymentRequestTTL(),
	)
	purchaseCryptoUC := saleUsecases.NewPurchaseWithCryptoUseCase(
		saleRepo, requestRepo, paymentClient, txManager, log,
		cfg.Changelly.PaymentReceiver, cfg.Sale.PaymentRequestTTL(),
	)
	editAddressUC := saleUsecases.NewEditReceivingAddressUseCase(saleRepo, userRepo, txManager, log)
	toggleAddressUC := saleUsecases.NewToggleReceivingAddressUseCase(saleRepo, txManager, log)
	sweepUC := saleUsecases.NewCancelExpiredRequestsUseCase(saleRepo, requestRepo, txManager, log)

	authenticateUC := userUsecases.NewAuthenticateUseCase(userRepo, jwtService, txManager, log)
	verifyTokenUC := userUsecases.NewVerifyTokenUseCase(userRepo, jwtService, log)
	registerAddressUC := userUsecases.NewRegisterTONAddressUseCase(userRepo, log)
	rewardHistoryUC := userUsecases.NewGetRewardHistoryUseCase(rewardRepo, purchaseRepo, log)

	getSubscriptionUC := subscriptionUsecases.NewGetSubscriptionUseCase(subscriptionRepo, log)
	submitSubscriptionUC := subscriptionUsecases.NewSubmitSubscriptionUseCase(subscriptionRepo, userRepo, jwtService, txManager, log)
	updateSubscriptionUC := subscriptionUsecases.NewUpdateSubscriptionUseCase(subscriptionRepo, txManager, log)

	cryptoCallbackUC := callbackUsecases.NewHandleCryptoCallbackUseCase(
		saleRepo, requestRepo, userRepo, rewardRepo, purchaseRepo, txManager, log,
	)
	fiatCallbackUC := callbackUsecases.NewHandleFiatCallbackUseCase(
		saleRepo, requestRepo, userRepo, rewardRepo, purchaseRepo, txManager, log,
	)

	saleHandler := handlers.NewSaleHandler(
		startSaleUC, pauseSaleUC, resumeSaleUC, getActiveSaleUC, getCurrentPriceUC,
		generateTonUC, purchaseCryptoUC, editAddressUC, toggleAddressUC, log,
	)
	userHandler := handlers.NewUserHandler(authenticateUC, verifyTokenUC, registerAddressUC, rewardHistoryUC, log)
	callbackHandler := handlers.NewCallbackHandler(cryptoCallbackUC, fiatCallbackUC, log)
	subscriptionHandler := handlers.NewSubscriptionHandler(getSubscriptionUC, submitSubscriptionUC, updateSubscriptionUC, log)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo, log)
	sweepScheduler := scheduler.NewSweepScheduler(sweepUC, cfg.Sale.SweepInterval(), log)

	return &Router{
		engine:              engine,
		saleHandler:         saleHandler,
		userHandler:         userHandler,
		callbackHandler:     callbackHandler,
		subscriptionHandler: subscriptionHandler,
		authMiddleware:      authMiddleware,
		cryptoScheme:        cryptoScheme,
		fiatScheme:          fiatScheme,
		sweepScheduler:      sweepScheduler,
		allowedOrigins:      cfg.Server.AllowedOrigins,
		apiKeys:             cfg.Auth.APIKeys,
		logger:              log,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestLogger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupSaleRoutes(r.engine, &routes.SaleRouteConfig{
		SaleHandler:    r.saleHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		UserHandler:    r.userHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupCallbackRoutes(r.engine, &routes.CallbackRouteConfig{
		CallbackHandler: r.callbackHandler,
		CryptoScheme:    r.cryptoScheme,
		FiatScheme:      r.fiatScheme,
		Logger:          r.logger,
	})

	routes.SetupSubscriptionRoutes(r.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: r.subscriptionHandler,
		APIKeys:             r.apiKeys,
		Logger:              r.logger,
	})
}

// SweepScheduler exposes the expired-request sweeper for lifecycle control.
func (r *Router) SweepScheduler() *scheduler.SweepScheduler {
	return r.sweepScheduler
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
