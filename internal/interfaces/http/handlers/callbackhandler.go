package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	callbackUsecases "github.com/jubbslineu/tokensale/internal/application/callback/usecases"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
	"github.com/jubbslineu/tokensale/internal/shared/utils"
)

// CallbackHandler receives Changelly payment callbacks. The signature
// middleware has already authenticated the request body before these
// handlers run.
type CallbackHandler struct {
	cryptoCallbackUC *callbackUsecases.HandleCryptoCallbackUseCase
	fiatCallbackUC   *callbackUsecases.HandleFiatCallbackUseCase
	logger           logger.Interface
}

func NewCallbackHandler(
	cryptoCallbackUC *callbackUsecases.HandleCryptoCallbackUseCase,
	fiatCallbackUC *callbackUsecases.HandleFiatCallbackUseCase,
	logger logger.Interface,
) *CallbackHandler {
	return &CallbackHandler{
		cryptoCallbackUC: cryptoCallbackUC,
		fiatCallbackUC:   fiatCallbackUC,
		logger:           logger,
	}
}

type CryptoCallbackRequest struct {
	PaymentID  string `json:"payment_id"`
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	State      string `json:"state"`
}

// @Summary		Changelly crypto callback
// @Tags			callbacks
// @Accept			json
// @Produce		json
// @Success		200	{object}	utils.APIResponse	"Callback processed"
// @Failure		400	{object}	utils.APIResponse	"Bad request"
// @Router			/callback/changelly-crypto-api-callback [post]
func (h *CallbackHandler) HandleCryptoCallback(c *gin.Context) {
	var req CryptoCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid callback body: "+err.Error())
		return
	}

	cmd := callbackUsecases.HandleCryptoCallbackCommand{
		State:       req.State,
		CustomerID:  req.CustomerID,
		PaymentCode: req.OrderID,
	}

	if err := h.cryptoCallbackUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Errorw("crypto callback rejected", "error", err, "order_id", req.OrderID, "state", req.State)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Callback processed", nil)
}

type FiatCallbackRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// @Summary		Changelly fiat callback
// @Tags			callbacks
// @Accept			json
// @Produce		json
// @Success		200	{object}	utils.APIResponse	"Callback processed"
// @Failure		400	{object}	utils.APIResponse	"Bad request"
// @Router			/callback/changelly-fiat-api-callback [post]
func (h *CallbackHandler) HandleFiatCallback(c *gin.Context) {
	var req FiatCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid callback body: "+err.Error())
		return
	}

	cmd := callbackUsecases.HandleFiatCallbackCommand{
		Status:      req.Status,
		PaymentCode: req.OrderID,
	}

	if err := h.fiatCallbackUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Errorw("fiat callback rejected", "error", err, "order_id", req.OrderID, "status", req.Status)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Callback processed", nil)
}
