package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	saleUsecases "github.com/jubbslineu/tokensale/internal/application/sale/usecases"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
	"github.com/jubbslineu/tokensale/internal/shared/utils"
)

type SaleHandler struct {
	startSaleUC       *saleUsecases.StartSaleUseCase
	pauseSaleUC       *saleUsecases.PauseSaleUseCase
	resumeSaleUC      *saleUsecases.ResumeSaleUseCase
	getActiveSaleUC   *saleUsecases.GetActiveSaleUseCase
	getCurrentPriceUC *saleUsecases.GetCurrentPriceUseCase
	generateTonUC     *saleUsecases.GenerateTONPaymentCodeUseCase
	purchaseCryptoUC  *saleUsecases.PurchaseWithCryptoUseCase
	editAddressUC     *saleUsecases.EditReceivingAddressUseCase
	toggleAddressUC   *saleUsecases.ToggleReceivingAddressUseCase
	logger            logger.Interface
}

func NewSaleHandler(
	startSaleUC *saleUsecases.StartSaleUseCase,
	pauseSaleUC *saleUsecases.PauseSaleUseCase,
	resumeSaleUC *saleUsecases.ResumeSaleUseCase,
	getActiveSaleUC *saleUsecases.GetActiveSaleUseCase,
	getCurrentPriceUC *saleUsecases.GetCurrentPriceUseCase,
	generateTonUC *saleUsecases.GenerateTONPaymentCodeUseCase,
	purchaseCryptoUC *saleUsecases.PurchaseWithCryptoUseCase,
	editAddressUC *saleUsecases.EditReceivingAddressUseCase,
	toggleAddressUC *saleUsecases.ToggleReceivingAddressUseCase,
	logger logger.Interface,
) *SaleHandler {
	return &SaleHandler{
		startSaleUC:       startSaleUC,
		pauseSaleUC:       pauseSaleUC,
		resumeSaleUC:      resumeSaleUC,
		getActiveSaleUC:   getActiveSaleUC,
		getCurrentPriceUC: getCurrentPriceUC,
		generateTonUC:     generateTonUC,
		purchaseCryptoUC:  purchaseCryptoUC,
		editAddressUC:     editAddressUC,
		toggleAddressUC:   toggleAddressUC,
		logger:            logger,
	}
}

type StartSaleRequest struct {
	Name           string   `json:"name" binding:"required,salename"`
	Phases         int      `json:"phases" binding:"required,min=1"`
	TokensPerPhase []int64  `json:"tokensPerPhase" binding:"required,min=1"`
	InitialPrice   string   `json:"initialPrice" binding:"required"`
	PriceIncrement []string `json:"priceIncrement" binding:"required,min=1"`
}

// @Summary		Start a new sale
// @Description	Create and start a sale with phased pricing
// @Tags			sale
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			sale	body		StartSaleRequest	true	"Sale parameters"
// @Success		201		{object}	utils.APIResponse	"Sale started"
// @Failure		400		{object}	utils.APIResponse	"Bad request"
// @Failure		409		{object}	utils.APIResponse	"Sale already exists or another sale is active"
// @Router			/sale/start-new [post]
func (h *SaleHandler) StartNew(c *gin.Context) {
	var req StartSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	initialPrice, err := decimal.NewFromString(req.InitialPrice)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid initialPrice: "+req.InitialPrice)
		return
	}

	increments := make([]decimal.Decimal, 0, len(req.PriceIncrement))
	for _, raw := range req.PriceIncrement {
		inc, err := decimal.NewFromString(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid priceIncrement: "+raw)
			return
		}
		increments = append(increments, inc)
	}

	cmd := saleUsecases.StartSaleCommand{
		Name:           req.Name,
		Phases:         req.Phases,
		TokensPerPhase: req.TokensPerPhase,
		InitialPrice:   initialPrice,
		PriceIncrement: increments,
	}

	result, err := h.startSaleUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to start sale", "error", err, "name", req.Name)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Sale started", result.Sale)
}

// @Summary		Pause the active sale
// @Tags			sale
// @Produce		json
// @Security		Bearer
// @Success		202	{object}	utils.APIResponse	"Sale paused"
// @Router			/sale/pause [post]
func (h *SaleHandler) Pause(c *gin.Context) {
	result, err := h.pauseSaleUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to pause sale", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Sale paused", result.Sale)
}

type ResumeSaleRequest struct {
	SaleName string `json:"saleName" binding:"required"`
}

// @Summary		Resume a paused sale
// @Tags			sale
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Success		202	{object}	utils.APIResponse	"Sale resumed"
// @Router			/sale/resume [post]
func (h *SaleHandler) Resume(c *gin.Context) {
	var req ResumeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.resumeSaleUC.Execute(c.Request.Context(), saleUsecases.ResumeSaleCommand{SaleName: req.SaleName})
	if err != nil {
		h.logger.Errorw("failed to resume sale", "error", err, "sale", req.SaleName)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Sale resumed", result.Sale)
}

// @Summary		Get the active sale
// @Description	Returns the active sale with derived phase and supply figures
// @Tags			sale
// @Produce		json
// @Success		202	{object}	utils.APIResponse{data=saleUsecases.ExtendedSaleView}	"Extended sale info"
// @Failure		404	{object}	utils.APIResponse										"No active sale"
// @Router			/sale/get-active-sale [get]
func (h *SaleHandler) GetActiveSale(c *gin.Context) {
	result, err := h.getActiveSaleUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Extended sale info", result.Sale)
}

// @Summary		Get the current token price
// @Tags			sale
// @Produce		json
// @Success		202	{object}	utils.APIResponse	"Sale ongoing"
// @Failure		404	{object}	utils.APIResponse	"No active sale"
// @Router			/sale/get-current-price [get]
func (h *SaleHandler) GetCurrentPrice(c *gin.Context) {
	result, err := h.getCurrentPriceUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Sale ongoing", gin.H{"price": result.Price})
}

type GenerateTonPaymentCodeRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

type GenerateTonPaymentCodeResponse struct {
	PaymentCode string `json:"paymentCode"`
	Destination string `json:"destination"`
	PriceTON    string `json:"priceTon"`
	ExpireAt    string `json:"expireAt"`
}

// @Summary		Generate a TON payment code
// @Description	Reserves tokens and returns the code to attach to the TON transfer
// @Tags			sale
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			order	body		GenerateTonPaymentCodeRequest							true	"Order"
// @Success		202		{object}	utils.APIResponse{data=GenerateTonPaymentCodeResponse}	"Please proceed with the payment"
// @Failure		400		{object}	utils.APIResponse										"Bad request"
// @Failure		409		{object}	utils.APIResponse										"Pending order already exists"
// @Router			/sale/generate-ton-payment-code [post]
func (h *SaleHandler) GenerateTonPaymentCode(c *gin.Context) {
	telegramID := c.GetString("telegram_id")
	if telegramID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req GenerateTonPaymentCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := saleUsecases.GenerateTONPaymentCodeCommand{
		TelegramID: telegramID,
		Amount:     req.Amount,
	}

	result, err := h.generateTonUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to generate payment code", "error", err, "telegram_id", telegramID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	response := GenerateTonPaymentCodeResponse{
		PaymentCode: result.PaymentCode,
		Destination: result.Destination,
		PriceTON:    result.PriceTON,
		ExpireAt:    result.ExpireAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Please proceed with the payment", response)
}

type PurchaseWithCryptoRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

type PurchaseWithCryptoResponse struct {
	PaymentURL string `json:"paymentUrl"`
}

// @Summary		Purchase with crypto
// @Description	Reserves tokens and creates a hosted crypto payment
// @Tags			sale
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			order	body		PurchaseWithCryptoRequest							true	"Order"
// @Success		201		{object}	utils.APIResponse{data=PurchaseWithCryptoResponse}	"Order created"
// @Failure		400		{object}	utils.APIResponse									"Bad request"
// @Failure		409		{object}	utils.APIResponse									"Pending order already exists"
// @Router			/sale/purchase-with-crypto [post]
func (h *SaleHandler) PurchaseWithCrypto(c *gin.Context) {
	telegramID := c.GetString("telegram_id")
	if telegramID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req PurchaseWithCryptoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := saleUsecases.PurchaseWithCryptoCommand{
		TelegramID: telegramID,
		Amount:     req.Amount,
	}

	result, err := h.purchaseCryptoUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to create crypto order", "error", err, "telegram_id", telegramID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Order created", PurchaseWithCryptoResponse{PaymentURL: result.PaymentURL})
}

type EditReceivingAddressRequest struct {
	NewAddress string `json:"newReceivingAddress" binding:"required"`
}

// @Summary		Edit receiving address
// @Description	Updates the buyer's token receiving address while the sale allows it
// @Tags			sale
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			saleName	path		string							true	"Sale name"
// @Param			address		body		EditReceivingAddressRequest		true	"New address"
// @Success		202			{object}	utils.APIResponse				"Receiving address updated"
// @Failure		403			{object}	utils.APIResponse				"Address editing disabled"
// @Router			/sale/{saleName}/receiving-address [patch]
func (h *SaleHandler) EditReceivingAddress(c *gin.Context) {
	telegramID := c.GetString("telegram_id")
	if telegramID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	saleName := c.Param("saleName")

	var req EditReceivingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := saleUsecases.EditReceivingAddressCommand{
		SaleName:   saleName,
		TelegramID: telegramID,
		NewAddress: req.NewAddress,
	}

	result, err := h.editAddressUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to edit receiving address", "error", err, "telegram_id", telegramID, "sale", saleName)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Receiving address updated for sale: "+saleName, gin.H{
		"telegramId":    result.TelegramID,
		"walletAddress": result.WalletAddress,
	})
}

type ToggleReceivingAddressRequest struct {
	Allow *bool `json:"allow" binding:"required"`
}

// @Summary		Toggle receiving address editing
// @Tags			sale
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			saleName	path		string							true	"Sale name"
// @Param			toggle		body		ToggleReceivingAddressRequest	true	"Toggle"
// @Success		202			{object}	utils.APIResponse				"Toggled"
// @Router			/sale/{saleName}/receiving-address/toggle [patch]
func (h *SaleHandler) ToggleEditReceivingAddress(c *gin.Context) {
	saleName := c.Param("saleName")

	var req ToggleReceivingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := saleUsecases.ToggleReceivingAddressCommand{
		SaleName: saleName,
		Allow:    *req.Allow,
	}

	if err := h.toggleAddressUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Errorw("failed to toggle receiving address editing", "error", err, "sale", saleName)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Receiving address editing updated for sale: "+saleName, gin.H{
		"allow": *req.Allow,
	})
}
