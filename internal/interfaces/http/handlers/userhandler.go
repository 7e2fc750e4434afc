package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	userUsecases "github.com/jubbslineu/tokensale/internal/application/user/usecases"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
	"github.com/jubbslineu/tokensale/internal/shared/utils"
)

type UserHandler struct {
	authenticateUC    *userUsecases.AuthenticateUseCase
	verifyTokenUC     *userUsecases.VerifyTokenUseCase
	registerAddressUC *userUsecases.RegisterTONAddressUseCase
	rewardHistoryUC   *userUsecases.GetRewardHistoryUseCase
	logger            logger.Interface
}

func NewUserHandler(
	authenticateUC *userUsecases.AuthenticateUseCase,
	verifyTokenUC *userUsecases.VerifyTokenUseCase,
	registerAddressUC *userUsecases.RegisterTONAddressUseCase,
	rewardHistoryUC *userUsecases.GetRewardHistoryUseCase,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		authenticateUC:    authenticateUC,
		verifyTokenUC:     verifyTokenUC,
		registerAddressUC: registerAddressUC,
		rewardHistoryUC:   rewardHistoryUC,
		logger:            logger,
	}
}

type AuthenticateRequest struct {
	TelegramID string `json:"telegramId" binding:"required"`
	ReferrerID string `json:"referrerId"`
}

type AuthenticateResponse struct {
	Token   string `json:"token"`
	Created bool   `json:"created"`
}

// @Summary		Authenticate
// @Description	Exchanges a Telegram identity for a signed token. First-time users must name a registered referrer.
// @Tags			user
// @Accept			json
// @Produce		json
// @Param			credentials	body		AuthenticateRequest								true	"Telegram identity"
// @Success		200			{object}	utils.APIResponse{data=AuthenticateResponse}	"Authenticated"
// @Failure		400			{object}	utils.APIResponse								"Bad request"
// @Failure		404			{object}	utils.APIResponse								"Unknown user without referrer"
// @Router			/users/authenticate [post]
func (h *UserHandler) Authenticate(c *gin.Context) {
	var req AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := userUsecases.AuthenticateCommand{
		TelegramID: req.TelegramID,
		ReferrerID: req.ReferrerID,
	}

	result, err := h.authenticateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("authentication failed", "error", err, "telegram_id", req.TelegramID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Authenticated", AuthenticateResponse{
		Token:   result.Token,
		Created: result.Created,
	})
}

type VerifyTokenRequest struct {
	Token      string `json:"token" binding:"required"`
	TelegramID string `json:"telegramId"`
}

type VerifyTokenResponse struct {
	Token string `json:"token"`
}

// @Summary		Verify token
// @Description	Validates a token and re-issues a fresh one. An expired token is renewed when the telegram ID is supplied.
// @Tags			user
// @Accept			json
// @Produce		json
// @Param			token	body		VerifyTokenRequest							true	"Token"
// @Success		200		{object}	utils.APIResponse{data=VerifyTokenResponse}	"Token valid"
// @Failure		401		{object}	utils.APIResponse							"Invalid or expired token"
// @Router			/users/verify-token [post]
func (h *UserHandler) VerifyToken(c *gin.Context) {
	var req VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := userUsecases.VerifyTokenCommand{
		Token:      req.Token,
		TelegramID: req.TelegramID,
	}

	result, err := h.verifyTokenUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token valid", VerifyTokenResponse{Token: result.Token})
}

type RegisterTonAddressRequest struct {
	Address string `json:"tonWalletAddress" binding:"required"`
}

// @Summary		Register TON address
// @Description	Records the wallet address token allocations will be sent to
// @Tags			user
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			address	body		RegisterTonAddressRequest	true	"Wallet address"
// @Success		200		{object}	utils.APIResponse			"Address registered"
// @Failure		400		{object}	utils.APIResponse			"Bad request"
// @Router			/users/register-ton-address [patch]
func (h *UserHandler) RegisterTonAddress(c *gin.Context) {
	telegramID := c.GetString("telegram_id")
	if telegramID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req RegisterTonAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := userUsecases.RegisterTONAddressCommand{
		TelegramID: telegramID,
		Address:    req.Address,
	}

	result, err := h.registerAddressUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to register TON address", "error", err, "telegram_id", telegramID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "TON address registered", gin.H{
		"telegramId":    result.TelegramID,
		"walletAddress": result.WalletAddress,
	})
}

type RewardView struct {
	TelegramID    string `json:"telegramId"`
	SaleName      string `json:"saleName"`
	Amount        string `json:"amount"`
	ReferralLevel int    `json:"referralLevel"`
	CreatedAt     string `json:"createdAt"`
}

type PurchaseView struct {
	SaleName    string `json:"saleName"`
	PaymentCode string `json:"paymentCode"`
	Amount      int64  `json:"amount"`
	Price       string `json:"price"`
	CreatedAt   string `json:"createdAt"`
}

type RewardHistoryResponse struct {
	Rewards   []RewardView   `json:"rewards"`
	Purchases []PurchaseView `json:"purchases"`
}

// @Summary		Reward history
// @Description	Lists the referral rewards credited to the caller and their own confirmed purchases
// @Tags			user
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=RewardHistoryResponse}	"Reward history"
// @Failure		401	{object}	utils.APIResponse								"Unauthorized"
// @Router			/users/reward-history [get]
func (h *UserHandler) GetRewardHistory(c *gin.Context) {
	telegramID := c.GetString("telegram_id")
	if telegramID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	cmd := userUsecases.GetRewardHistoryCommand{TelegramID: telegramID}

	result, err := h.rewardHistoryUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to load reward history", "error", err, "telegram_id", telegramID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := RewardHistoryResponse{
		Rewards:   make([]RewardView, 0, len(result.Rewards)),
		Purchases: make([]PurchaseView, 0, len(result.Purchases)),
	}
	for _, rw := range result.Rewards {
		resp.Rewards = append(resp.Rewards, RewardView{
			TelegramID:    rw.TelegramID(),
			SaleName:      rw.SaleName(),
			Amount:        rw.Amount().String(),
			ReferralLevel: rw.ReferralLevel(),
			CreatedAt:     rw.CreatedAt().Format(time.RFC3339),
		})
	}
	for _, p := range result.Purchases {
		resp.Purchases = append(resp.Purchases, PurchaseView{
			SaleName:    p.SaleName(),
			PaymentCode: p.PaymentCode(),
			Amount:      p.Amount(),
			Price:       p.Price().String(),
			CreatedAt:   p.CreatedAt().Format(time.RFC3339),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "Reward history", resp)
}
